package matching

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/metrics"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/store"
)

// Threshold is the lowest score at which a candidate pair becomes a match.
const Threshold = 60.0

// PairScorer scores one lost/found pair.
type PairScorer interface {
	Score(lost *model.LostItem, found *model.FoundItem) Result
}

// Candidate is a persisted match produced by the engine.
type Candidate struct {
	MatchID     int64           `json:"match_id"`
	LostItemID  int64           `json:"lost_item_id"`
	FoundItemID int64           `json:"found_item_id"`
	Score       float64         `json:"similarity_score"`
	Breakdown   model.Breakdown `json:"score_breakdown"`
	// Created is false when an existing match for the pair was rescored.
	Created bool `json:"created"`
}

// Engine finds and persists matches for new reports.
type Engine struct {
	db     *sql.DB
	scorer PairScorer
}

// NewEngine creates an Engine backed by db.
func NewEngine(db *sql.DB, scorer PairScorer) *Engine {
	return &Engine{db: db, scorer: scorer}
}

// Qualifies reports whether a rounded score clears the match threshold.
func Qualifies(score float64) bool {
	return score >= Threshold
}

// ForLost scores a lost report against every active found report in the
// same category and persists the qualifying pairs, best first.
func (e *Engine) ForLost(ctx context.Context, lost *model.LostItem) ([]Candidate, error) {
	found, err := store.ListFoundCandidates(ctx, e.db, lost.Category)
	if err != nil {
		return nil, fmt.Errorf("loading found candidates: %w", err)
	}

	var pairs []store.ScoredPair
	for i := range found {
		if p, ok := e.score(lost, &found[i]); ok {
			pairs = append(pairs, p)
		}
	}
	return e.save(ctx, pairs, false)
}

// ForFound scores a found report against every searching lost report in
// the same category and persists the qualifying pairs, best first.
func (e *Engine) ForFound(ctx context.Context, found *model.FoundItem) ([]Candidate, error) {
	lost, err := store.ListLostCandidates(ctx, e.db, found.Category)
	if err != nil {
		return nil, fmt.Errorf("loading lost candidates: %w", err)
	}

	var pairs []store.ScoredPair
	for i := range lost {
		if p, ok := e.score(&lost[i], found); ok {
			pairs = append(pairs, p)
		}
	}
	return e.save(ctx, pairs, false)
}

// Force persists a match for the pair regardless of its score. The computed
// breakdown is still stored.
func (e *Engine) Force(ctx context.Context, lost *model.LostItem, found *model.FoundItem) (Candidate, error) {
	r := e.scorer.Score(lost, found)
	metrics.CandidatesScored.Inc()

	saved, err := e.save(ctx, []store.ScoredPair{{
		LostItemID:  lost.ID,
		FoundItemID: found.ID,
		Score:       r.Total,
		Breakdown:   r.Breakdown,
	}}, true)
	if err != nil {
		return Candidate{}, err
	}
	return saved[0], nil
}

// RematchAll rescans every active found report. Pairs that already have a
// match are rescored without changing their status.
func (e *Engine) RematchAll(ctx context.Context) ([]Candidate, error) {
	found, err := store.ListFoundItems(ctx, e.db, 0, model.FoundStatusActive)
	if err != nil {
		return nil, fmt.Errorf("loading active found items: %w", err)
	}

	var all []Candidate
	for i := range found {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		c, err := e.ForFound(ctx, &found[i])
		if err != nil {
			return all, fmt.Errorf("rematching found item %d: %w", found[i].ID, err)
		}
		all = append(all, c...)
	}
	sortCandidates(all)
	return all, nil
}

func (e *Engine) score(lost *model.LostItem, found *model.FoundItem) (store.ScoredPair, bool) {
	r := e.scorer.Score(lost, found)
	metrics.CandidatesScored.Inc()
	metrics.SimilarityScore.Observe(r.Total)
	if !Qualifies(r.Total) {
		return store.ScoredPair{}, false
	}
	return store.ScoredPair{
		LostItemID:  lost.ID,
		FoundItemID: found.ID,
		Score:       r.Total,
		Breakdown:   r.Breakdown,
	}, true
}

func (e *Engine) save(ctx context.Context, pairs []store.ScoredPair, forced bool) ([]Candidate, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	saved, err := store.SaveMatches(ctx, e.db, pairs, forced)
	if err != nil {
		return nil, fmt.Errorf("saving matches: %w", err)
	}

	source := "auto"
	if forced {
		source = "forced"
	}

	out := make([]Candidate, len(saved))
	for i, s := range saved {
		out[i] = Candidate{
			MatchID:     s.ID,
			LostItemID:  s.LostItemID,
			FoundItemID: s.FoundItemID,
			Score:       s.Score,
			Breakdown:   pairs[i].Breakdown,
			Created:     s.Created,
		}
		if s.Created {
			metrics.MatchesCreated.WithLabelValues(source).Inc()
			slog.Info("match created", "match", s.ID, "lost_item", s.LostItemID,
				"found_item", s.FoundItemID, "score", s.Score, "forced", forced)
		}
	}
	sortCandidates(out)
	return out, nil
}

func sortCandidates(c []Candidate) {
	sort.SliceStable(c, func(i, j int) bool { return c[i].Score > c[j].Score })
}
