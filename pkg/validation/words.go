package validation

import "strings"

// WordCount returns the number of whitespace separated tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// WithinWordLimit reports whether text may be stored in a field limited to
// max words. The empty string is always accepted so a field can be cleared.
func WithinWordLimit(text string, max int) bool {
	if text == "" {
		return true
	}
	return WordCount(text) <= max
}
