// Package notify fans match and verification events out to delivery sinks.
// Delivery is best effort: failures are logged and never reach the caller.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/metrics"
)

// Event is a notification addressed to one user.
type Event struct {
	Type    string         `json:"type"`
	UserID  int64          `json:"user_id"`
	MatchID int64          `json:"match_id,omitempty"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
	At      time.Time      `json:"at"`
}

// Sink delivers events somewhere.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, e Event) error
}

// Notifier accepts events for delivery.
type Notifier interface {
	Notify(ctx context.Context, events ...Event)
}

const defaultSinkTimeout = 5 * time.Second

// Dispatcher delivers every event to every sink in order.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
}

// NewDispatcher creates a Dispatcher over the given sinks.
func NewDispatcher(sinks ...Sink) *Dispatcher {
	return &Dispatcher{sinks: sinks, timeout: defaultSinkTimeout}
}

// Notify delivers events. It does not return errors; a failing sink is
// logged and the remaining sinks still run. Cancellation of ctx does not
// abort delivery.
func (d *Dispatcher) Notify(ctx context.Context, events ...Event) {
	ctx = context.WithoutCancel(ctx)
	for _, e := range events {
		if e.At.IsZero() {
			e.At = time.Now().UTC()
		}
		for _, s := range d.sinks {
			sctx, cancel := context.WithTimeout(ctx, d.timeout)
			err := s.Deliver(sctx, e)
			cancel()
			if err != nil {
				metrics.NotificationFailures.WithLabelValues(s.Name()).Inc()
				slog.Error("notification failed", "sink", s.Name(), "type", e.Type,
					"user", e.UserID, "match", e.MatchID, "error", err)
			}
		}
	}
}
