package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// TextGenerator turns a prompt into text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerativeStrategy asks a text generation service for questions and for
// an assessment of the answers.
type GenerativeStrategy struct {
	gen TextGenerator
}

// NewGenerativeStrategy creates a GenerativeStrategy backed by gen.
func NewGenerativeStrategy(gen TextGenerator) *GenerativeStrategy {
	return &GenerativeStrategy{gen: gen}
}

const minQuestionLength = 10

var errNoQuestions = errors.New("no usable questions in response")

const questionsPrompt = `Generate verification questions for a found item so that only its real owner could answer them.

Rules:
- Generate 5 to 7 open-ended questions, not yes/no questions.
- Base every question only on details in the description.
- Each question targets one specific detail (color, damage, accessories, markings, contents).
- Avoid questions about obvious information such as the category.
- Output ONLY the questions, one per line, numbered.

Category: %s
Item: %s
Description: %q`

// Questions implements QuestionStrategy.
func (g *GenerativeStrategy) Questions(ctx context.Context, s Subject) ([]string, error) {
	text, err := g.gen.Generate(ctx, fmt.Sprintf(questionsPrompt, s.Category, s.ItemName, s.Description))
	if err != nil {
		return nil, err
	}
	qs := ParseQuestions(text)
	if len(qs) == 0 {
		return nil, errNoQuestions
	}
	return qs, nil
}

var numbering = regexp.MustCompile(`^(?:[Qq]?\d+\s*[.):-]|[-*•])\s*`)

// ParseQuestions extracts questions from generated text: one per line,
// numbering and bullets stripped, lines shorter than ten characters and
// heading lines dropped, at most MaxQuestions kept.
func ParseQuestions(text string) []string {
	var qs []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(numbering.ReplaceAllString(strings.TrimSpace(line), ""))
		if utf8.RuneCountInString(line) < minQuestionLength || strings.HasSuffix(line, ":") {
			continue
		}
		qs = append(qs, line)
		if len(qs) == MaxQuestions {
			break
		}
	}
	return qs
}

const answersPrompt = `Decide whether a claimant is the real owner of a found item.

ORIGINAL DESCRIPTION FROM FINDER:
%q

QUESTIONS ASKED:
%s
ANSWERS PROVIDED BY CLAIMANT:
%s
For each answer give CORRECT, PARTIALLY CORRECT or INCORRECT, a confidence from 0 to 100 and a brief reason.
Then give the overall match percentage (75 or more means verified) and a one sentence recommendation.

Respond ONLY with JSON in this shape:
{"answers":[{"question":1,"status":"CORRECT","confidence":100,"reason":"..."}],"overall_percentage":85,"verification_result":"VERIFIED","recommendation":"..."}`

type assessment struct {
	Answers            []AnswerResult `json:"answers"`
	OverallPercentage  *float64       `json:"overall_percentage"`
	VerificationResult string         `json:"verification_result"`
	Recommendation     string         `json:"recommendation"`
}

// Verify implements AnswerStrategy.
func (g *GenerativeStrategy) Verify(ctx context.Context, s Subject, questions, answers []string) (*Result, error) {
	var qb, ab strings.Builder
	for i := range answers {
		fmt.Fprintf(&qb, "%d. %s\n", i+1, questions[i])
		fmt.Fprintf(&ab, "%d. %q\n", i+1, answers[i])
	}

	text, err := g.gen.Generate(ctx, fmt.Sprintf(answersPrompt, s.Description, qb.String(), ab.String()))
	if err != nil {
		return nil, err
	}
	return parseAssessment(text)
}

func parseAssessment(text string) (*Result, error) {
	var a assessment
	if err := json.Unmarshal([]byte(stripFences(text)), &a); err != nil {
		return nil, fmt.Errorf("decoding assessment: %w", err)
	}
	if a.OverallPercentage == nil {
		return nil, errors.New("assessment missing overall_percentage")
	}
	overall := *a.OverallPercentage
	if overall < 0 || overall > 100 {
		return nil, fmt.Errorf("overall_percentage %v out of range", overall)
	}

	explanation := a.Recommendation
	if explanation == "" {
		explanation = a.VerificationResult
	}
	if a.Answers == nil {
		a.Answers = []AnswerResult{}
	}
	return &Result{
		Answers:           a.Answers,
		OverallPercentage: overall,
		Verified:          overall >= PassPercentage,
		Explanation:       explanation,
		Method:            MethodGenerative,
	}, nil
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.Index(text, "\n"); i >= 0 {
		text = text[i+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
