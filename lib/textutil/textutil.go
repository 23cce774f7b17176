package textutil

import (
	"strings"
	"unicode"
)

// NormalizeLabel lowercases and trims a label or label-bearing snippet so it
// can be compared against configured vote labels.
func NormalizeLabel(s string) string {
	return strings.ToLower(strings.Trim(s, " \t\n"))
}

// HasLabelPrefix reports whether text starts with label followed by a
// non-letter boundary. "voor (20)" matches "voor", "voorstel" does not.
func HasLabelPrefix(text, label string) bool {
	text = NormalizeLabel(text)
	label = NormalizeLabel(label)
	if label == "" || !strings.HasPrefix(text, label) {
		return false
	}
	if len(text) == len(label) {
		return true
	}
	next := []rune(text[len(label):])[0]
	return !unicode.IsLetter(next) && !unicode.IsDigit(next)
}

// SplitNames tokenizes a block of voter names on the given separator. Each
// token is trimmed and has inner whitespace collapsed (names may wrap across
// source lines); empty tokens are dropped. Tokens are otherwise opaque, a
// malformed name passes through as-is.
func SplitNames(block, separator string) []string {
	names := []string{}
	for _, token := range strings.Split(block, separator) {
		token = strings.Join(strings.Fields(token), " ")
		if token == "" {
			continue
		}
		names = append(names, token)
	}
	return names
}
