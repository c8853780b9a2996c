package verify

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
)

const maxTemplateQuestions = 5

// TemplateStrategy is the deterministic keyword-based strategy.
type TemplateStrategy struct{}

var (
	colorWords   = wordSet("color colour black white blue red green yellow grey gray brown pink purple orange silver gold navy")
	coverWords   = wordSet("case cover covers cases")
	damageWords  = wordSet("scratch scratches scratched dent dents dented damage damaged crack cracked")
	markingWords = wordSet("sticker stickers logo logos")
)

// Categories whose items usually hold other things.
var containerCategories = map[string]bool{
	"personal items":     true,
	"bags & accessories": true,
}

// Questions picks templated questions for trigger words in the description.
func (TemplateStrategy) Questions(_ context.Context, s Subject) ([]string, error) {
	name := strings.TrimSpace(s.ItemName)
	if name == "" {
		name = "item"
	}
	words := tokenize(s.Description)

	var qs []string
	if anyOf(words, colorWords) {
		qs = append(qs, fmt.Sprintf("What is the exact color of your %s?", name))
	}
	if anyOf(words, coverWords) {
		qs = append(qs, fmt.Sprintf("Describe the case or cover on your %s.", name))
	}
	if anyOf(words, damageWords) {
		qs = append(qs, "Describe any damage, scratches, or marks on your item.")
	}
	if anyOf(words, markingWords) {
		qs = append(qs, "Are there any stickers, logos, or markings on your item?")
	}
	qs = append(qs, "Where exactly did you lose this item?")
	if containerCategories[strings.ToLower(strings.TrimSpace(s.Category))] {
		qs = append(qs, "What was inside your item when you lost it?")
	}
	qs = append(qs, fmt.Sprintf("What brand is your %s?", name))

	if len(qs) > maxTemplateQuestions {
		qs = qs[:maxTemplateQuestions]
	}
	return qs, nil
}

// Verify credits each answer by how many of its words appear in the
// description: 20 confidence points per shared word, full credit at 60,
// half credit at 30.
func (TemplateStrategy) Verify(_ context.Context, s Subject, questions, answers []string) (*Result, error) {
	desc := tokenize(s.Description)

	results := make([]AnswerResult, 0, len(answers))
	var credit float64
	for i, a := range answers {
		common := 0
		for w := range tokenize(a) {
			if desc[w] {
				common++
			}
		}
		confidence := math.Min(float64(common*20), 100)

		r := AnswerResult{Question: i + 1, Confidence: confidence}
		switch {
		case confidence >= 60:
			r.Status, r.Reason = StatusCorrect, "Answer matches description details"
			credit++
		case confidence >= 30:
			r.Status, r.Reason = StatusPartial, "Answer partially matches description"
			credit += 0.5
		default:
			r.Status, r.Reason = StatusIncorrect, "Answer doesn't match description"
		}
		results = append(results, r)
	}

	overall := 0.0
	if len(answers) > 0 {
		overall = math.Round(credit/float64(len(answers))*1000) / 10
	}
	return &Result{
		Answers:           results,
		OverallPercentage: overall,
		Verified:          overall >= PassPercentage,
		Explanation:       fmt.Sprintf("Keyword verification: %.1f%% match", overall),
		Method:            MethodTemplate,
	}, nil
}

// Words may carry combining marks, as in Tamil and Sinhala script.
var wordPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

var stopwords = wordSet(`
	a an the and or but of in on at to for with by from is was are were it its
	my your i me this that there has have had be been very some
`)

// tokenize returns the distinct lower-cased non-stopword words of text.
func tokenize(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if !stopwords[w] {
			set[w] = true
		}
	}
	return set
}

func anyOf(words, triggers map[string]bool) bool {
	for w := range words {
		if triggers[w] {
			return true
		}
	}
	return false
}

func wordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}
