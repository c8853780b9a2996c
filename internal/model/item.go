package model

import "time"

// LostItem is a report filed by someone who lost something.
type LostItem struct {
	ID             int64      `json:"id"`
	ReferenceID    string     `json:"reference_id"`
	UserID         int64      `json:"user_id"`
	Category       string     `json:"category"`
	ItemName       string     `json:"item_name"`
	Brand          string     `json:"brand,omitempty"`
	Color          string     `json:"color"`
	Location       string     `json:"location"`
	DateLost       *time.Time `json:"date_lost,omitempty"`
	Description    string     `json:"description"`
	AdditionalInfo string     `json:"additional_info,omitempty"`
	ImageMime      string     `json:"image_mime,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

// FoundItem is a report filed by someone who found something.
type FoundItem struct {
	ID          int64      `json:"id"`
	ReferenceID string     `json:"reference_id"`
	UserID      int64      `json:"user_id"`
	Category    string     `json:"category"`
	ItemName    string     `json:"item_name"`
	Brand       string     `json:"brand,omitempty"`
	Color       string     `json:"color"`
	Location    string     `json:"location"`
	DateFound   *time.Time `json:"date_found,omitempty"`
	Description string     `json:"description"`
	ImageMime   string     `json:"image_mime,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Lost item statuses.
const (
	LostStatusSearching = "searching"
	LostStatusRecovered = "recovered"
	LostStatusClosed    = "closed"
)

// Found item statuses.
const (
	FoundStatusActive   = "active"
	FoundStatusReturned = "returned"
	FoundStatusClosed   = "closed"
)

// MaxDescriptionLength bounds the free-text description of a report.
const MaxDescriptionLength = 2000
