package utils

import "strings"

// StripMarker removes footnote asterisks from a header label,
// "Close*" -> "Close", "Adj Close**" -> "Adj Close".
func StripMarker(label string) string {
	return strings.TrimSpace(strings.ReplaceAll(label, "*", ""))
}

// StripSeparators removes thousands separators, "25,000,000" -> "25000000".
// Row dates lose their comma as well: "Jan 05, 2018" -> "Jan 05 2018".
func StripSeparators(text string) string {
	return strings.ReplaceAll(text, ",", "")
}

// CleanText collapses runs of whitespace into single spaces.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Part returns the i-th space separated part of text, counting from the end
// when i is negative. Consecutive spaces produce empty parts, so the index of
// a word depends on the exact rendering of the text.
func Part(text string, i int) (string, bool) {
	parts := strings.Split(text, " ")
	if i < 0 {
		i += len(parts)
	}
	if i < 0 || i >= len(parts) {
		return "", false
	}
	return parts[i], true
}
