package notify

import (
	"context"
	"database/sql"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/store"
)

// StoreSink writes events to the notifications table.
type StoreSink struct {
	db *sql.DB
}

// NewStoreSink creates a StoreSink.
func NewStoreSink(db *sql.DB) *StoreSink {
	return &StoreSink{db: db}
}

func (s *StoreSink) Name() string { return "store" }

func (s *StoreSink) Deliver(ctx context.Context, e Event) error {
	n := &model.Notification{
		UserID:  e.UserID,
		Type:    e.Type,
		Title:   e.Title,
		Message: e.Message,
	}
	if e.MatchID != 0 {
		id := e.MatchID
		n.MatchID = &id
	}
	return store.CreateNotification(ctx, s.db, n)
}
