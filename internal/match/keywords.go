// Package match implements keyword-based local answer matching: query
// tokenization, per-line scoring, answer-block extraction and confidence
// classification.
package match

import (
	"strings"
	"unicode"
)

// Keywords normalizes a query into its significant search tokens: lowercase,
// split on whitespace runs, non-alphanumeric runes stripped, tokens of two or
// fewer characters discarded, duplicates collapsed (first occurrence wins).
// An empty result means the query has no searchable content.
func Keywords(query string) []string {
	var keywords []string
	seen := make(map[string]bool)

	for _, field := range strings.Fields(strings.ToLower(query)) {
		token := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return r
			}
			return -1
		}, field)

		if len([]rune(token)) <= 2 || seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
	}

	return keywords
}
