// Package service drives a match from discovery through ownership
// verification to the final hand-over.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/matching"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/notify"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/store"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/verify"
)

// Actor is the user performing an operation.
type Actor struct {
	UserID int64
	Admin  bool
}

// Service holds the long-lived dependencies shared by all requests.
type Service struct {
	db       *sql.DB
	engine   *matching.Engine
	verifier *verify.Verifier
	notifier notify.Notifier
}

// New creates a Service.
func New(db *sql.DB, engine *matching.Engine, verifier *verify.Verifier, notifier notify.Notifier) *Service {
	return &Service{db: db, engine: engine, verifier: verifier, notifier: notifier}
}

// SubmitLost stores a lost report and matches it against active found
// reports. A matching failure is logged and leaves the report without
// matches; an administrator can rerun matching later.
func (s *Service) SubmitLost(ctx context.Context, item *model.LostItem) (*model.LostItem, []matching.Candidate, error) {
	created, err := store.CreateLostItem(ctx, s.db, item)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("lost item reported", "lost_item", created.ID, "reference", created.ReferenceID, "category", created.Category)

	candidates, err := s.engine.ForLost(ctx, created)
	if err != nil {
		slog.Error("matching lost item failed", "lost_item", created.ID, "error", err)
		return created, nil, nil
	}
	s.announce(ctx, candidates)
	return created, candidates, nil
}

// SubmitFound stores a found report and matches it against searching lost
// reports.
func (s *Service) SubmitFound(ctx context.Context, item *model.FoundItem) (*model.FoundItem, []matching.Candidate, error) {
	created, err := store.CreateFoundItem(ctx, s.db, item)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("found item reported", "found_item", created.ID, "reference", created.ReferenceID, "category", created.Category)

	candidates, err := s.engine.ForFound(ctx, created)
	if err != nil {
		slog.Error("matching found item failed", "found_item", created.ID, "error", err)
		return created, nil, nil
	}
	s.announce(ctx, candidates)
	return created, candidates, nil
}

// ForceMatch creates a match between two reports regardless of score.
func (s *Service) ForceMatch(ctx context.Context, lostID, foundID int64) (*model.Match, error) {
	lost, err := store.GetLostItem(ctx, s.db, lostID)
	if err != nil {
		return nil, err
	}
	found, err := store.GetFoundItem(ctx, s.db, foundID)
	if err != nil {
		return nil, err
	}
	if lost == nil || found == nil {
		return nil, ErrNotFound
	}

	c, err := s.engine.Force(ctx, lost, found)
	if err != nil {
		return nil, err
	}
	s.announce(ctx, []matching.Candidate{c})
	return store.GetMatch(ctx, s.db, c.MatchID)
}

// Rematch rescans every active found report.
func (s *Service) Rematch(ctx context.Context) ([]matching.Candidate, error) {
	candidates, err := s.engine.RematchAll(ctx)
	s.announce(ctx, candidates)
	if err != nil {
		return candidates, fmt.Errorf("rematching: %w", err)
	}
	return candidates, nil
}

// announce tells both parties about newly created matches.
func (s *Service) announce(ctx context.Context, candidates []matching.Candidate) {
	var events []notify.Event
	for _, c := range candidates {
		if !c.Created {
			continue
		}
		m, err := store.GetMatch(ctx, s.db, c.MatchID)
		if err != nil || m == nil {
			slog.Error("loading match for notification", "match", c.MatchID, "error", err)
			continue
		}
		events = append(events,
			notify.Event{
				Type:    model.NotifyMatchFound,
				UserID:  m.OwnerID,
				MatchID: m.ID,
				Title:   "Possible match found",
				Message: fmt.Sprintf("A found %s matches your lost %s (%.1f%% similar). Answer the verification questions to claim it.", m.FoundItemName, m.LostItemName, m.SimilarityScore),
				Data:    map[string]any{"similarity_score": m.SimilarityScore},
			},
			notify.Event{
				Type:    model.NotifyMatchFound,
				UserID:  m.FinderID,
				MatchID: m.ID,
				Title:   "Your found item may have an owner",
				Message: fmt.Sprintf("The %s you reported matches a lost item report (%.1f%% similar). You will be notified once the owner is verified.", m.FoundItemName, m.SimilarityScore),
				Data:    map[string]any{"similarity_score": m.SimilarityScore},
			},
		)
	}
	if len(events) > 0 {
		s.notifier.Notify(ctx, events...)
	}
}

// participant loads a match and checks that the actor owns the lost item
// or found the found item. Administrators may read any match when
// allowAdmin is set.
func (s *Service) participant(ctx context.Context, matchID int64, actor Actor, allowAdmin bool) (*model.Match, error) {
	m, err := store.GetMatch(ctx, s.db, matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	if actor.UserID == m.OwnerID || actor.UserID == m.FinderID || (allowAdmin && actor.Admin) {
		return m, nil
	}
	return nil, ErrNotParticipant
}

// ListMatches returns the matches the actor takes part in.
func (s *Service) ListMatches(ctx context.Context, actor Actor) ([]model.Match, error) {
	return store.ListMatchesForUser(ctx, s.db, actor.UserID)
}

// MatchDetail is a match as seen by one user.
type MatchDetail struct {
	Match     *model.Match       `json:"match"`
	LostItem  *model.LostItem    `json:"lost_item"`
	FoundItem *model.FoundItem   `json:"found_item"`
	Role      string             `json:"role"`
	Contact   *model.ContactInfo `json:"contact,omitempty"`
}

// Viewer roles.
const (
	RoleOwner  = "owner"
	RoleFinder = "finder"
	RoleAdmin  = "admin"
)

// MatchView returns a match with both reports. The other party's contact
// details are included only once ownership has been verified.
func (s *Service) MatchView(ctx context.Context, matchID int64, actor Actor) (*MatchDetail, error) {
	m, err := s.participant(ctx, matchID, actor, true)
	if err != nil {
		return nil, err
	}
	lost, err := store.GetLostItem(ctx, s.db, m.LostItemID)
	if err != nil {
		return nil, err
	}
	found, err := store.GetFoundItem(ctx, s.db, m.FoundItemID)
	if err != nil {
		return nil, err
	}

	d := &MatchDetail{Match: m, LostItem: lost, FoundItem: found, Role: RoleAdmin}
	var counterpart int64
	switch actor.UserID {
	case m.OwnerID:
		d.Role, counterpart = RoleOwner, m.FinderID
	case m.FinderID:
		d.Role, counterpart = RoleFinder, m.OwnerID
	}
	forViewer(m, actor)

	if counterpart != 0 && model.ContactReleased(m.Status) {
		u, err := store.GetUser(ctx, s.db, counterpart)
		if err != nil {
			return nil, err
		}
		if u != nil {
			c := u.Contact()
			d.Contact = &c
		}
	}
	return d, nil
}

// forViewer hides the owner's answers from the finder.
func forViewer(m *model.Match, actor Actor) *model.Match {
	if m != nil && actor.UserID == m.FinderID && actor.UserID != m.OwnerID {
		m.Answers = nil
	}
	return m
}
