package model

import "time"

// Breakdown holds the weighted per-factor scores of a match. The fields sum
// to the match similarity score.
type Breakdown struct {
	Category    float64 `json:"category"`
	Brand       float64 `json:"brand"`
	Color       float64 `json:"color"`
	Location    float64 `json:"location"`
	Date        float64 `json:"date"`
	Name        float64 `json:"name"`
	Description float64 `json:"description"`
}

// Sum returns the total of all weighted factors.
func (b Breakdown) Sum() float64 {
	return b.Category + b.Brand + b.Color + b.Location + b.Date + b.Name + b.Description
}

// Match links one lost item to one found item.
type Match struct {
	ID                      int64      `json:"id"`
	LostItemID              int64      `json:"lost_item_id"`
	FoundItemID             int64      `json:"found_item_id"`
	SimilarityScore         float64    `json:"similarity_score"`
	Breakdown               Breakdown  `json:"score_breakdown"`
	Forced                  bool       `json:"forced,omitempty"`
	Status                  string     `json:"status"`
	Questions               []string   `json:"verification_questions,omitempty"`
	Answers                 []string   `json:"verification_answers,omitempty"`
	VerificationScore       *float64   `json:"verification_score,omitempty"`
	VerificationVerified    bool       `json:"verification_verified"`
	VerificationExplanation string     `json:"verification_explanation,omitempty"`
	VerificationMethod      string     `json:"verification_method,omitempty"`
	VerificationAttempts    int        `json:"verification_attempts"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
	QuestionsGeneratedAt    *time.Time `json:"questions_generated_at,omitempty"`
	VerificationCompletedAt *time.Time `json:"verification_completed_at,omitempty"`
	VerifiedAt              *time.Time `json:"verified_at,omitempty"`
	ReturnedAt              *time.Time `json:"returned_at,omitempty"`

	// Joined fields (not always populated).
	LostItemName  string `json:"lost_item_name,omitempty"`
	FoundItemName string `json:"found_item_name,omitempty"`
	OwnerID       int64  `json:"owner_id,omitempty"`
	FinderID      int64  `json:"finder_id,omitempty"`
}

// Match statuses.
const (
	MatchStatusPending            = "pending_verification"
	MatchStatusVerified           = "verified"
	MatchStatusVerificationFailed = "verification_failed"
	MatchStatusRejected           = "rejected"
	MatchStatusReturnedToOwner    = "returned_to_owner"
	MatchStatusReturnedByFinder   = "returned_by_finder"
)

// MaxVerificationAttempts is how many answer submissions a match allows.
const MaxVerificationAttempts = 2

var matchTransitions = map[string][]string{
	MatchStatusPending:            {MatchStatusVerified, MatchStatusVerificationFailed, MatchStatusRejected},
	MatchStatusVerificationFailed: {MatchStatusVerified, MatchStatusVerificationFailed, MatchStatusRejected},
	MatchStatusVerified:           {MatchStatusReturnedToOwner, MatchStatusReturnedByFinder},
}

// CanTransition reports whether a match may move from one status to another.
func CanTransition(from, to string) bool {
	for _, s := range matchTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AwaitingAnswers reports whether a match still accepts verification answers.
func AwaitingAnswers(status string) bool {
	return status == MatchStatusPending || status == MatchStatusVerificationFailed
}

// ContactReleased reports whether contact details may be shown for a status.
func ContactReleased(status string) bool {
	switch status {
	case MatchStatusVerified, MatchStatusReturnedToOwner, MatchStatusReturnedByFinder:
		return true
	}
	return false
}
