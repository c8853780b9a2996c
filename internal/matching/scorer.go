// Package matching scores lost/found report pairs and persists the pairs
// that look like the same physical item.
package matching

import (
	"math"
	"strings"
	"time"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
)

// Weights are the percentage contribution of each factor. They sum to 100.
type Weights struct {
	Category    float64
	Brand       float64
	Color       float64
	Location    float64
	Date        float64
	Name        float64
	Description float64
}

// DefaultWeights is the weighting used for all automatic matching.
var DefaultWeights = Weights{
	Category:    20,
	Brand:       15,
	Color:       15,
	Location:    15,
	Date:        10,
	Name:        10,
	Description: 15,
}

// Result is the outcome of scoring one pair.
type Result struct {
	// Total is the breakdown sum rounded to one decimal.
	Total     float64
	Breakdown model.Breakdown
}

// Scorer computes similarity between a lost and a found report. It has no
// state beyond its weights and is safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer returns a Scorer using DefaultWeights.
func NewScorer() *Scorer {
	return &Scorer{weights: DefaultWeights}
}

// Score compares two reports factor by factor. Each raw factor lies in
// [0, 100] and is scaled by its weight before summing.
func (s *Scorer) Score(lost *model.LostItem, found *model.FoundItem) Result {
	w := s.weights
	b := model.Breakdown{
		Category:    weigh(categoryScore(lost.Category, found.Category), w.Category),
		Brand:       weigh(brandScore(lost.Brand, found.Brand), w.Brand),
		Color:       weigh(colorScore(lost.Color, found.Color), w.Color),
		Location:    weigh(locationScore(lost.Location, found.Location), w.Location),
		Date:        weigh(dateScore(lost.DateLost, found.DateFound), w.Date),
		Name:        weigh(nameScore(lost.ItemName, found.ItemName), w.Name),
		Description: weigh(descriptionScore(lost.Description, found.Description), w.Description),
	}
	return Result{Total: round1(b.Sum()), Breakdown: b}
}

func weigh(raw, percent float64) float64 {
	return raw * percent / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func categoryScore(a, b string) float64 {
	if normalize(a) != "" && normalize(a) == normalize(b) {
		return 100
	}
	return 0
}

var missingBrands = map[string]bool{"": true, "unknown": true, "none": true, "n/a": true}

func brandScore(a, b string) float64 {
	a, b = normalize(a), normalize(b)
	switch {
	case missingBrands[a] || missingBrands[b]:
		return 50
	case a == b:
		return 100
	case Ratio(a, b) > 0.8:
		return 80
	}
	return 0
}

func colorScore(a, b string) float64 {
	a, b = normalize(a), normalize(b)
	switch {
	case a != "" && a == b:
		return 100
	case unknownColors[a] || unknownColors[b]:
		return 50
	}
	ga, oka := colorGroups[a]
	gb, okb := colorGroups[b]
	if oka && okb && ga == gb {
		return 70
	}
	return 0
}

func locationScore(a, b string) float64 {
	a, b = normalize(a), normalize(b)
	switch {
	case a != "" && a == b:
		return 100
	case unknownLocations[a] || unknownLocations[b]:
		return 40
	case adjacent(a, b):
		return 70
	}
	za, oka := zoneOf[a]
	zb, okb := zoneOf[b]
	if oka && okb && za == zb {
		return 80
	}
	return 20
}

var (
	zoneOf    = make(map[string]string)
	adjacency = make(map[[2]string]bool)
)

func init() {
	for zone, locations := range zoneLocations {
		for _, l := range locations {
			zoneOf[l] = zone
		}
	}
	for _, pair := range adjacentLocations {
		adjacency[pair] = true
		adjacency[[2]string{pair[1], pair[0]}] = true
	}
}

func adjacent(a, b string) bool {
	return adjacency[[2]string{a, b}]
}

func dateScore(a, b *time.Time) float64 {
	if a == nil || b == nil {
		return 0
	}
	days := math.Abs(civilDate(*a).Sub(civilDate(*b)).Hours() / 24)
	switch {
	case days == 0:
		return 100
	case days <= 1:
		return 90
	case days <= 3:
		return 70
	case days <= 7:
		return 50
	}
	return 20
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func nameScore(a, b string) float64 {
	if normalize(a) == "" || normalize(b) == "" {
		return 20
	}
	r := Ratio(a, b)
	switch {
	case r >= 0.8:
		return 100
	case r >= 0.5:
		return 80
	}
	return 20
}

func descriptionScore(a, b string) float64 {
	lost, found := Keywords(a), Keywords(b)
	if len(lost) == 0 || len(found) == 0 {
		return 0
	}
	return float64(keywordOverlap(lost, found)) / float64(max(len(lost), len(found))) * 100
}
