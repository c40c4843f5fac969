package models

import "testing"

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to ItemStatus
		want     bool
	}{
		{ItemStatusLost, ItemStatusClaimed, true},
		{ItemStatusFound, ItemStatusResolved, true},
		{ItemStatusLost, ItemStatusResolved, false},
		{ItemStatusFound, ItemStatusClaimed, false},
		{ItemStatusClaimed, ItemStatusResolved, false},
		{ItemStatusResolved, ItemStatusClaimed, false},
		{ItemStatusLost, ItemStatusFound, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestImageListRoundTrip(t *testing.T) {
	list := ImageList{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}

	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var decoded ImageList
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(decoded) != 2 || decoded[0] != list[0] || decoded[1] != list[1] {
		t.Errorf("round trip mismatch: %v", decoded)
	}
}

func TestImageListScanNil(t *testing.T) {
	var list ImageList
	if err := list.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty list for NULL column, got %v", list)
	}
}
