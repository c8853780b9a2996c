package matching

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minKeywordLength is the shortest token that counts as a description keyword.
const minKeywordLength = 4

// Words may carry combining marks, as in Tamil and Sinhala script.
var wordPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

// Keywords returns the distinct lower-cased description keywords of text.
func Keywords(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if stopwords[w] || utf8.RuneCountInString(w) < minKeywordLength {
			continue
		}
		set[w] = true
	}
	return set
}

// keywordOverlap counts how many of the lost keywords appear in the found
// keywords, directly or through a shared synonym group.
func keywordOverlap(lost, found map[string]bool) int {
	foundGroups := make(map[string]bool)
	for w := range found {
		if g, ok := synonymGroups[w]; ok {
			foundGroups[g] = true
		}
	}

	n := 0
	for w := range lost {
		if found[w] {
			n++
			continue
		}
		if g, ok := synonymGroups[w]; ok && foundGroups[g] {
			n++
		}
	}
	return n
}
