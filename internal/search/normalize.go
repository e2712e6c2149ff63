package search

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	// Matches every character in the punctuation set that separates or
	// decorates product names on labels and in the catalog.
	punctuationRegex = regexp.MustCompile(`[-_.,!@#$%^&*()+={}\[\]|\\:";'<>?/]`)

	// Multiple spaces cleanup
	multiSpaceRegex = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes raw text for matching: lowercases, replaces
// punctuation with single spaces, collapses whitespace runs, and trims the
// ends. Pure and idempotent; empty in, empty out.
func Normalize(text string) string {
	cleaned := strings.ToLower(text)
	cleaned = punctuationRegex.ReplaceAllString(cleaned, " ")
	cleaned = multiSpaceRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// NormalizedWords returns the whitespace-separated tokens of the normalized
// form of text. Returns nil for empty or punctuation-only input.
func NormalizedWords(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}
