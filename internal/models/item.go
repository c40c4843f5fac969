package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ItemStatus is the lifecycle state of a reported item.
type ItemStatus string

const (
	ItemStatusLost     ItemStatus = "lost"
	ItemStatusFound    ItemStatus = "found"
	ItemStatusClaimed  ItemStatus = "claimed"
	ItemStatusResolved ItemStatus = "resolved"
)

// CanTransitionTo reports whether a status change is allowed:
// lost items get claimed, found items get resolved.
func (s ItemStatus) CanTransitionTo(next ItemStatus) bool {
	switch s {
	case ItemStatusLost:
		return next == ItemStatusClaimed
	case ItemStatusFound:
		return next == ItemStatusResolved
	}
	return false
}

// ItemCategory classifies a reported item.
type ItemCategory string

const (
	CategoryElectronics ItemCategory = "electronics"
	CategoryStationery  ItemCategory = "stationery"
	CategoryClothing    ItemCategory = "clothing"
	CategoryAccessories ItemCategory = "accessories"
	CategoryBooks       ItemCategory = "books"
	CategoryDocuments   ItemCategory = "documents"
	CategoryOther       ItemCategory = "other"
)

// ImageList stores image URLs as a JSON array in a single text column.
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = ImageList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported type for ImageList: %T", value)
}

// Item represents a lost or found item report (PostgreSQL)
type Item struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Title        string       `json:"title" gorm:"size:120"`
	Description  string       `json:"description"`
	Category     ItemCategory `json:"category" gorm:"size:30;index"`
	Status       ItemStatus   `json:"status" gorm:"size:20;index"`
	Images       ImageList    `json:"images" gorm:"type:text"`
	Location     string       `json:"location" gorm:"size:120;index"`
	Department   string       `json:"department,omitempty" gorm:"size:40"`
	Date         time.Time    `json:"date"` // when the item was lost/found
	ReportedByID uint         `json:"reported_by_id" gorm:"index"`
	ReportedBy   *User        `json:"reported_by,omitempty" gorm:"foreignKey:ReportedByID"`
	CreatedAt    time.Time    `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// CreateItemRequest defines the request body for reporting an item
type CreateItemRequest struct {
	Title       string   `json:"title" validate:"required,min=2,max=120"`
	Description string   `json:"description" validate:"required,max=2000"`
	Category    string   `json:"category" validate:"required,oneof=electronics stationery clothing accessories books documents other"`
	Status      string   `json:"status" validate:"required,oneof=lost found"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Location    string   `json:"location" validate:"required,max=120"`
	Department  string   `json:"department,omitempty" validate:"omitempty,max=40"`
	Date        string   `json:"date" validate:"required"` // RFC 3339
}

// UpdateItemRequest defines the request body for editing an existing report
type UpdateItemRequest struct {
	Title       string   `json:"title,omitempty" validate:"omitempty,min=2,max=120"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    string   `json:"category,omitempty" validate:"omitempty,oneof=electronics stationery clothing accessories books documents other"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Location    string   `json:"location,omitempty" validate:"omitempty,max=120"`
	Department  string   `json:"department,omitempty" validate:"omitempty,max=40"`
}

// UpdateItemStatusRequest defines the request body for a status transition
type UpdateItemStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=claimed resolved"`
}

// ItemFilter narrows a listing query. Zero values mean "no filter".
type ItemFilter struct {
	Status   ItemStatus
	Category ItemCategory
	Location string // substring match, case-insensitive
	Query    string // matches title or description
}
