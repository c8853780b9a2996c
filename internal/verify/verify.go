// Package verify generates ownership challenge questions for a found item
// and scores a claimant's answers against the finder's description.
package verify

import (
	"context"
	"log/slog"
	"time"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/metrics"
)

// Answer statuses.
const (
	StatusCorrect   = "CORRECT"
	StatusPartial   = "PARTIALLY CORRECT"
	StatusIncorrect = "INCORRECT"
)

// Methods recorded on a verification result.
const (
	MethodGenerative = "generative"
	MethodTemplate   = "template"
	MethodNone       = "none"
)

const (
	// PassPercentage is the overall score needed to verify ownership.
	PassPercentage = 75.0
	// MaxQuestions caps any generated question list.
	MaxQuestions = 7
	// DefaultTimeout bounds a single generative call.
	DefaultTimeout = 10 * time.Second
)

// Subject is the found item being claimed.
type Subject struct {
	Description string
	ItemName    string
	Category    string
}

// AnswerResult is the assessment of one answer.
type AnswerResult struct {
	Question   int     `json:"question"`
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// Result is the outcome of checking a set of answers.
type Result struct {
	Answers           []AnswerResult `json:"answers"`
	OverallPercentage float64        `json:"overall_percentage"`
	Verified          bool           `json:"verified"`
	Explanation       string         `json:"explanation"`
	Method            string         `json:"method"`
}

// QuestionStrategy produces challenge questions for a subject.
type QuestionStrategy interface {
	Questions(ctx context.Context, s Subject) ([]string, error)
}

// AnswerStrategy scores answers to challenge questions. Questions and
// answers passed in always have the same length.
type AnswerStrategy interface {
	Verify(ctx context.Context, s Subject, questions, answers []string) (*Result, error)
}

// Verifier picks between a generative strategy and the template strategy.
// A failing or slow generative call falls back to the template.
type Verifier struct {
	questions QuestionStrategy
	answers   AnswerStrategy
	fallback  TemplateStrategy
	timeout   time.Duration
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithTimeout bounds each generative call.
func WithTimeout(d time.Duration) Option {
	return func(v *Verifier) {
		if d > 0 {
			v.timeout = d
		}
	}
}

// New creates a Verifier. A nil gen leaves only the template strategy.
func New(gen TextGenerator, opts ...Option) *Verifier {
	v := &Verifier{timeout: DefaultTimeout}
	if gen != nil {
		g := &GenerativeStrategy{gen: gen}
		v.questions = g
		v.answers = g
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Questions returns between one and MaxQuestions questions. It never fails.
func (v *Verifier) Questions(ctx context.Context, s Subject) []string {
	if v.questions != nil {
		cctx, cancel := context.WithTimeout(ctx, v.timeout)
		qs, err := v.questions.Questions(cctx, s)
		cancel()
		if err == nil && len(qs) > 0 {
			return qs
		}
		v.fellBack("questions", err)
	}
	qs, _ := v.fallback.Questions(ctx, s)
	return qs
}

// Verify scores answers against the subject. Answers and questions are
// paired up to the shorter list. With nothing to pair, the result is
// unverified at 0% and no strategy runs.
func (v *Verifier) Verify(ctx context.Context, s Subject, questions, answers []string) *Result {
	n := min(len(questions), len(answers))
	if n == 0 {
		return &Result{
			Answers:     []AnswerResult{},
			Explanation: "No answers provided",
			Method:      MethodNone,
		}
	}
	questions, answers = questions[:n], answers[:n]

	if v.answers != nil {
		cctx, cancel := context.WithTimeout(ctx, v.timeout)
		r, err := v.answers.Verify(cctx, s, questions, answers)
		cancel()
		if err == nil {
			return r
		}
		v.fellBack("answers", err)
	}
	r, _ := v.fallback.Verify(ctx, s, questions, answers)
	return r
}

func (v *Verifier) fellBack(operation string, err error) {
	metrics.StrategyFallbacks.WithLabelValues(operation).Inc()
	slog.Warn("generative strategy failed, falling back", "operation", operation, "error", err)
}
