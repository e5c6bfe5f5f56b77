package extract

import (
	"regexp"
	"strings"
)

var (
	reNonAlnum   = regexp.MustCompile(`[^ a-zA-Z0-9]+`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// Normalize reduces text to ASCII letters, digits and single spaces with no
// leading or trailing space. Non-ASCII letters count as punctuation.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = reNonAlnum.ReplaceAllString(strings.TrimSpace(text), " ")
	text = reWhitespace.ReplaceAllString(text, " ")
	// punctuation at either end leaves a single space behind
	return strings.Trim(text, " ")
}
