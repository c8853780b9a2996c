package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
)

// ScoredPair is a scored (lost, found) combination ready to be persisted.
type ScoredPair struct {
	LostItemID  int64
	FoundItemID int64
	Score       float64
	Breakdown   model.Breakdown
}

// SavedMatch reports the outcome of persisting one ScoredPair.
type SavedMatch struct {
	ID          int64
	LostItemID  int64
	FoundItemID int64
	Score       float64
	// Created is false when the pair already had a match that was rescored.
	Created bool
}

// VerificationRecord is the outcome of one answer submission.
type VerificationRecord struct {
	Answers     []string
	Score       float64
	Verified    bool
	Explanation string
	Method      string
	Status      string
}

const matchSelect = `SELECT m.id, m.lost_item_id, m.found_item_id, m.similarity_score,
	m.category_score, m.brand_score, m.color_score, m.location_score, m.date_score,
	m.name_score, m.description_score, m.forced, m.status, m.verification_score,
	m.verification_verified, m.verification_explanation, m.verification_method,
	m.verification_attempts, m.created_at, m.updated_at, m.questions_generated_at,
	m.verification_completed_at, m.verified_at, m.returned_at,
	l.item_name, f.item_name, l.user_id, f.user_id
	FROM matches m
	JOIN lost_items l ON l.id = m.lost_item_id
	JOIN found_items f ON f.id = m.found_item_id`

func scanMatch(row interface{ Scan(...any) error }, m *model.Match) error {
	var explanation, method sql.NullString
	b := &m.Breakdown
	err := row.Scan(&m.ID, &m.LostItemID, &m.FoundItemID, &m.SimilarityScore,
		&b.Category, &b.Brand, &b.Color, &b.Location, &b.Date, &b.Name, &b.Description,
		&m.Forced, &m.Status, &m.VerificationScore, &m.VerificationVerified, &explanation,
		&method, &m.VerificationAttempts, &m.CreatedAt, &m.UpdatedAt, &m.QuestionsGeneratedAt,
		&m.VerificationCompletedAt, &m.VerifiedAt, &m.ReturnedAt,
		&m.LostItemName, &m.FoundItemName, &m.OwnerID, &m.FinderID)
	if err != nil {
		return err
	}
	m.VerificationExplanation = explanation.String
	m.VerificationMethod = method.String
	return nil
}

// SaveMatches persists scored pairs in a single transaction. Existing pairs
// are rescored in place and keep their status. If any write fails, nothing
// from this call is kept.
func SaveMatches(ctx context.Context, db *sql.DB, pairs []ScoredPair, forced bool) ([]SavedMatch, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	saved := make([]SavedMatch, 0, len(pairs))
	for _, p := range pairs {
		var existing int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM matches WHERE lost_item_id = ? AND found_item_id = ?`,
			p.LostItemID, p.FoundItemID,
		).Scan(&existing)
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("checking existing match: %w", err)
		}

		b := p.Breakdown
		var id int64
		err = tx.QueryRowContext(ctx,
			`INSERT INTO matches (lost_item_id, found_item_id, similarity_score, category_score,
			                      brand_score, color_score, location_score, date_score, name_score,
			                      description_score, forced)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (lost_item_id, found_item_id) DO UPDATE SET
			     similarity_score = excluded.similarity_score,
			     category_score = excluded.category_score,
			     brand_score = excluded.brand_score,
			     color_score = excluded.color_score,
			     location_score = excluded.location_score,
			     date_score = excluded.date_score,
			     name_score = excluded.name_score,
			     description_score = excluded.description_score,
			     forced = max(forced, excluded.forced),
			     updated_at = CURRENT_TIMESTAMP
			 RETURNING id`,
			p.LostItemID, p.FoundItemID, p.Score, b.Category, b.Brand, b.Color, b.Location,
			b.Date, b.Name, b.Description, forced,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("saving match %d/%d: %w", p.LostItemID, p.FoundItemID, err)
		}

		saved = append(saved, SavedMatch{
			ID:          id,
			LostItemID:  p.LostItemID,
			FoundItemID: p.FoundItemID,
			Score:       p.Score,
			Created:     existing == 0,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing matches: %w", err)
	}
	return saved, nil
}

// GetMatch returns a match by ID, including its questions and answers.
func GetMatch(ctx context.Context, db *sql.DB, id int64) (*model.Match, error) {
	m := &model.Match{}
	err := scanMatch(db.QueryRowContext(ctx, matchSelect+` WHERE m.id = ?`, id), m)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting match: %w", err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT question, answer FROM verification_questions WHERE match_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("getting match questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q string
		var a sql.NullString
		if err := rows.Scan(&q, &a); err != nil {
			return nil, fmt.Errorf("scanning match question: %w", err)
		}
		m.Questions = append(m.Questions, q)
		if a.Valid {
			m.Answers = append(m.Answers, a.String)
		}
	}
	return m, rows.Err()
}

// ListMatchesForUser returns every match where the user owns the lost item
// or found the found item, best score first.
func ListMatchesForUser(ctx context.Context, db *sql.DB, userID int64) ([]model.Match, error) {
	return queryMatches(ctx, db,
		matchSelect+` WHERE l.user_id = ? OR f.user_id = ?
		ORDER BY m.similarity_score DESC, m.id`, userID, userID,
	)
}

// ListMatches returns all matches, optionally filtered by status.
func ListMatches(ctx context.Context, db *sql.DB, status string) ([]model.Match, error) {
	if status != "" {
		return queryMatches(ctx, db,
			matchSelect+` WHERE m.status = ? ORDER BY m.similarity_score DESC, m.id`, status)
	}
	return queryMatches(ctx, db, matchSelect+` ORDER BY m.similarity_score DESC, m.id`)
}

func queryMatches(ctx context.Context, db *sql.DB, query string, args ...any) ([]model.Match, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		var m model.Match
		if err := scanMatch(rows, &m); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// SetQuestions replaces a match's verification questions and clears any
// previous answers.
func SetQuestions(ctx context.Context, db *sql.DB, matchID int64, questions []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM verification_questions WHERE match_id = ?`, matchID); err != nil {
		return fmt.Errorf("clearing questions: %w", err)
	}
	for i, q := range questions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO verification_questions (match_id, position, question) VALUES (?, ?, ?)`,
			matchID, i, q,
		)
		if err != nil {
			return fmt.Errorf("inserting question: %w", err)
		}
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE matches SET questions_generated_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`, matchID,
	)
	if err != nil {
		return fmt.Errorf("stamping questions: %w", err)
	}

	return tx.Commit()
}

// RecordVerification stores an answer submission and moves the match from
// status from to rec.Status. It reports false without writing anything if
// the match is no longer in status from.
func RecordVerification(ctx context.Context, db *sql.DB, matchID int64, from string, rec VerificationRecord) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE matches SET
		     status = ?,
		     verification_score = ?,
		     verification_verified = ?,
		     verification_explanation = ?,
		     verification_method = ?,
		     verification_attempts = verification_attempts + 1,
		     verification_completed_at = CURRENT_TIMESTAMP,
		     verified_at = CASE WHEN ? THEN CURRENT_TIMESTAMP ELSE verified_at END,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ?`,
		rec.Status, rec.Score, rec.Verified, rec.Explanation, rec.Method, rec.Verified,
		matchID, from,
	)
	if err != nil {
		return false, fmt.Errorf("recording verification: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE verification_questions SET answer = NULL WHERE match_id = ?`, matchID,
	); err != nil {
		return false, fmt.Errorf("clearing answers: %w", err)
	}
	for i, a := range rec.Answers {
		_, err := tx.ExecContext(ctx,
			`UPDATE verification_questions SET answer = ? WHERE match_id = ? AND position = ?`,
			a, matchID, i,
		)
		if err != nil {
			return false, fmt.Errorf("storing answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing verification: %w", err)
	}
	return true, nil
}

// SetMatchStatus moves a match from one status to another. It reports false
// if the match was not in status from.
func SetMatchStatus(ctx context.Context, db *sql.DB, id int64, from, to string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE matches SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`,
		to, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("setting match status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("setting match status: %w", err)
	}
	return n > 0, nil
}

// ConfirmReturn moves a verified match to a returned status and marks the
// lost item recovered and the found item returned, all in one transaction.
// It reports false if the match was not verified.
func ConfirmReturn(ctx context.Context, db *sql.DB, matchID int64, status string) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE matches SET status = ?, returned_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ?`,
		status, matchID, model.MatchStatusVerified,
	)
	if err != nil {
		return false, fmt.Errorf("confirming return: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE lost_items SET status = ? WHERE id = (SELECT lost_item_id FROM matches WHERE id = ?)`,
		model.LostStatusRecovered, matchID,
	); err != nil {
		return false, fmt.Errorf("marking lost item recovered: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE found_items SET status = ? WHERE id = (SELECT found_item_id FROM matches WHERE id = ?)`,
		model.FoundStatusReturned, matchID,
	); err != nil {
		return false, fmt.Errorf("marking found item returned: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing return: %w", err)
	}
	return true, nil
}
