// Package realtime provides the in-process change feed: repositories publish
// row-level insert/update events after successful writes, and consumers
// (realtime sessions, open chat threads) subscribe to a table with an
// optional filter. Events are delivered per subscription in publish order.
package realtime

import (
	"log"
	"sync"
)

// Op is the kind of row change carried by an event.
type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
)

// Table names used on the feed.
const (
	TableItems    = "items"
	TableMessages = "item_messages"
)

// Event is one row-level change. New carries the row after the write;
// Old is set for updates only.
type Event struct {
	Op    Op
	Table string
	New   interface{}
	Old   interface{}
}

// Filter narrows delivery for a subscription. A nil filter matches everything.
type Filter func(Event) bool

// subscription channel capacity; a subscriber that falls this far behind
// starts losing events, which the consumers tolerate (at-least-once signals,
// counters only increment).
const subscriptionBuffer = 64

// Subscription is one open channel onto the feed. Events arrive on C until
// Close is called, after which C is closed.
type Subscription struct {
	C      chan Event
	table  string
	filter Filter
	feed   *Feed
}

// Close detaches the subscription from the feed and closes C.
func (s *Subscription) Close() {
	s.feed.unsubscribe(s)
}

// Feed is the process-wide change feed. One instance is created at startup
// and shared by reference with every repository and handler that needs it.
type Feed struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[*Subscription]struct{})}
}

// Subscribe opens a channel scoped to one table. The filter may be nil.
func (f *Feed) Subscribe(table string, filter Filter) *Subscription {
	sub := &Subscription{
		C:      make(chan Event, subscriptionBuffer),
		table:  table,
		filter: filter,
		feed:   f,
	}
	f.mu.Lock()
	f.subs[sub] = struct{}{}
	f.mu.Unlock()
	return sub
}

// Publish delivers an event to every matching subscription. Delivery never
// blocks the writer: a full subscription drops the event and logs it.
func (f *Feed) Publish(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sub := range f.subs {
		if sub.table != ev.Table {
			continue
		}
		if sub.filter != nil && !sub.filter(ev) {
			continue
		}
		select {
		case sub.C <- ev:
		default:
			log.Printf("realtime: dropping %s event on %s, subscriber too slow", ev.Op, ev.Table)
		}
	}
}

func (f *Feed) unsubscribe(sub *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[sub]; !ok {
		return
	}
	delete(f.subs, sub)
	close(sub.C)
}
