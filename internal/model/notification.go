package model

import "time"

// Notification is an in-app message for a user.
type Notification struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	MatchID   *int64     `json:"match_id,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Notification types.
const (
	NotifyMatchFound          = "match_found"
	NotifyVerificationSuccess = "verification_success"
	NotifyOwnerVerified       = "owner_verified"
	NotifyVerificationFailed  = "verification_failed"
	NotifyMatchRejected       = "match_rejected"
	NotifyItemReturned        = "item_returned"
)
