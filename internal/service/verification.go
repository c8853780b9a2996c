package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/metrics"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/notify"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/store"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/verify"
)

// Outcome is the result of one answer submission. Contact holds the
// finder's details and is set only when ownership was verified.
type Outcome struct {
	Match             *model.Match       `json:"match"`
	Result            *verify.Result     `json:"result"`
	AttemptsRemaining int                `json:"attempts_remaining"`
	Contact           *model.ContactInfo `json:"contact,omitempty"`
}

// GetQuestions returns the match's verification questions, generating and
// storing them on first use. Only the lost item's owner may see them.
func (s *Service) GetQuestions(ctx context.Context, matchID int64, actor Actor) ([]string, error) {
	m, err := s.participant(ctx, matchID, actor, false)
	if err != nil {
		return nil, err
	}
	if actor.UserID != m.OwnerID {
		return nil, ErrNotParticipant
	}
	if len(m.Questions) > 0 {
		return m.Questions, nil
	}
	if !model.AwaitingAnswers(m.Status) {
		return nil, ErrInvalidTransition
	}

	subject, err := s.subject(ctx, m)
	if err != nil {
		return nil, err
	}
	questions := s.verifier.Questions(ctx, subject)
	if err := store.SetQuestions(ctx, s.db, m.ID, questions); err != nil {
		return nil, err
	}
	slog.Info("verification questions generated", "match", m.ID, "count", len(questions))
	return questions, nil
}

func (s *Service) subject(ctx context.Context, m *model.Match) (verify.Subject, error) {
	found, err := store.GetFoundItem(ctx, s.db, m.FoundItemID)
	if err != nil {
		return verify.Subject{}, err
	}
	if found == nil {
		return verify.Subject{}, ErrNotFound
	}
	return verify.Subject{
		Description: found.Description,
		ItemName:    found.ItemName,
		Category:    found.Category,
	}, nil
}

// SubmitAnswers scores the owner's answers and moves the match to verified,
// verification_failed, or, once attempts run out, rejected. On success the
// finder's contact details are returned and both parties are notified with
// each other's details.
func (s *Service) SubmitAnswers(ctx context.Context, matchID int64, actor Actor, answers []string) (*Outcome, error) {
	m, err := s.participant(ctx, matchID, actor, false)
	if err != nil {
		return nil, err
	}
	if actor.UserID != m.OwnerID {
		return nil, ErrNotParticipant
	}
	if !model.AwaitingAnswers(m.Status) {
		if m.Status == model.MatchStatusRejected && m.VerificationAttempts >= model.MaxVerificationAttempts {
			return nil, ErrAttemptsExhausted
		}
		return nil, ErrInvalidTransition
	}
	if len(m.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	subject, err := s.subject(ctx, m)
	if err != nil {
		return nil, err
	}
	result := s.verifier.Verify(ctx, subject, m.Questions, answers)

	attempts := m.VerificationAttempts + 1
	next := model.MatchStatusVerificationFailed
	switch {
	case result.Verified:
		next = model.MatchStatusVerified
	case attempts >= model.MaxVerificationAttempts:
		next = model.MatchStatusRejected
	}
	if !model.CanTransition(m.Status, next) {
		return nil, ErrInvalidTransition
	}

	stored := answers[:min(len(answers), len(m.Questions))]
	ok, err := store.RecordVerification(ctx, s.db, m.ID, m.Status, store.VerificationRecord{
		Answers:     stored,
		Score:       result.OverallPercentage,
		Verified:    result.Verified,
		Explanation: result.Explanation,
		Method:      result.Method,
		Status:      next,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	metrics.VerificationOutcomes.WithLabelValues(next).Inc()
	slog.Info("verification completed", "match", m.ID, "status", next,
		"score", result.OverallPercentage, "method", result.Method, "attempt", attempts)

	updated, err := store.GetMatch(ctx, s.db, m.ID)
	if err != nil {
		return nil, err
	}
	out := &Outcome{
		Match:             updated,
		Result:            result,
		AttemptsRemaining: max(model.MaxVerificationAttempts-attempts, 0),
	}
	if next == model.MatchStatusVerified {
		out.AttemptsRemaining = 0
	}

	switch next {
	case model.MatchStatusVerified:
		contact, err := s.releaseContacts(ctx, updated)
		if err != nil {
			return nil, err
		}
		out.Contact = contact
	case model.MatchStatusVerificationFailed:
		s.notifier.Notify(ctx, notify.Event{
			Type:    model.NotifyVerificationFailed,
			UserID:  updated.OwnerID,
			MatchID: updated.ID,
			Title:   "Verification failed",
			Message: fmt.Sprintf("Your answers for the %s did not match closely enough (%.1f%%). You have %d attempt remaining.", updated.FoundItemName, result.OverallPercentage, out.AttemptsRemaining),
			Data:    map[string]any{"attempts_remaining": out.AttemptsRemaining},
		})
	case model.MatchStatusRejected:
		s.notifyRejected(ctx, updated, 0)
	}
	return out, nil
}

// releaseContacts sends each party the other's contact details and returns
// the finder's details for the owner.
func (s *Service) releaseContacts(ctx context.Context, m *model.Match) (*model.ContactInfo, error) {
	owner, err := store.GetUser(ctx, s.db, m.OwnerID)
	if err != nil {
		return nil, err
	}
	finder, err := store.GetUser(ctx, s.db, m.FinderID)
	if err != nil {
		return nil, err
	}
	if owner == nil || finder == nil {
		return nil, ErrNotFound
	}

	finderContact, ownerContact := finder.Contact(), owner.Contact()
	s.notifier.Notify(ctx,
		notify.Event{
			Type:    model.NotifyVerificationSuccess,
			UserID:  owner.ID,
			MatchID: m.ID,
			Title:   "Ownership verified",
			Message: fmt.Sprintf("You have been verified as the owner of the %s. Contact %s (%s, %s) to collect it.", m.FoundItemName, finderContact.Name, finderContact.Email, finderContact.Phone),
			Data:    map[string]any{"contact": finderContact},
		},
		notify.Event{
			Type:    model.NotifyOwnerVerified,
			UserID:  finder.ID,
			MatchID: m.ID,
			Title:   "Owner verified",
			Message: fmt.Sprintf("The owner of the %s you found has been verified. Contact %s (%s, %s) to return it.", m.FoundItemName, ownerContact.Name, ownerContact.Email, ownerContact.Phone),
			Data:    map[string]any{"contact": ownerContact},
		},
	)
	return &finderContact, nil
}

func (s *Service) notifyRejected(ctx context.Context, m *model.Match, by int64) {
	var events []notify.Event
	for _, uid := range []int64{m.OwnerID, m.FinderID} {
		if uid == by {
			continue
		}
		events = append(events, notify.Event{
			Type:    model.NotifyMatchRejected,
			UserID:  uid,
			MatchID: m.ID,
			Title:   "Match closed",
			Message: fmt.Sprintf("The match between the lost %s and the found %s has been closed.", m.LostItemName, m.FoundItemName),
		})
	}
	s.notifier.Notify(ctx, events...)
}

// RejectMatch lets either party decline a match that is still awaiting
// verification.
func (s *Service) RejectMatch(ctx context.Context, matchID int64, actor Actor) (*model.Match, error) {
	m, err := s.participant(ctx, matchID, actor, false)
	if err != nil {
		return nil, err
	}
	if !model.AwaitingAnswers(m.Status) || !model.CanTransition(m.Status, model.MatchStatusRejected) {
		return nil, ErrInvalidTransition
	}
	ok, err := store.SetMatchStatus(ctx, s.db, m.ID, m.Status, model.MatchStatusRejected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	slog.Info("match rejected", "match", m.ID, "user", actor.UserID)

	updated, err := store.GetMatch(ctx, s.db, m.ID)
	if err != nil {
		return nil, err
	}
	s.notifyRejected(ctx, updated, actor.UserID)
	return forViewer(updated, actor), nil
}

// ConfirmReturn records the hand-over of a verified match. The lost item's
// owner confirms with returned_to_owner, the finder with returned_by_finder.
// Both reports are closed in the same transaction.
func (s *Service) ConfirmReturn(ctx context.Context, matchID int64, actor Actor) (*model.Match, error) {
	m, err := s.participant(ctx, matchID, actor, false)
	if err != nil {
		return nil, err
	}

	status, other := model.MatchStatusReturnedToOwner, m.FinderID
	if actor.UserID != m.OwnerID {
		status, other = model.MatchStatusReturnedByFinder, m.OwnerID
	}
	if !model.CanTransition(m.Status, status) {
		return nil, ErrInvalidTransition
	}

	ok, err := store.ConfirmReturn(ctx, s.db, m.ID, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	slog.Info("return confirmed", "match", m.ID, "status", status, "user", actor.UserID)

	updated, err := store.GetMatch(ctx, s.db, m.ID)
	if err != nil {
		return nil, err
	}
	if other != actor.UserID {
		s.notifier.Notify(ctx, notify.Event{
			Type:    model.NotifyItemReturned,
			UserID:  other,
			MatchID: m.ID,
			Title:   "Return confirmed",
			Message: fmt.Sprintf("The return of the %s has been confirmed.", updated.LostItemName),
		})
	}
	return forViewer(updated, actor), nil
}
