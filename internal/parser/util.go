package parser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentFolder decomposes characters and strips combining marks, so that
// OCR output with dropped or garbled accents ("cle" vs "clé") matches the
// same anchors.
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldAccents removes diacritics. On transform failure the input is
// returned unchanged; matching then simply degrades to exact.
func foldAccents(s string) string {
	out, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return out
}

var horizontalSpace = regexp.MustCompile(`[ \t]+`)

// cleanText removes carriage returns and collapses runs of horizontal
// whitespace. Newlines are kept: line structure drives domiciliation and
// BIC extraction.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return horizontalSpace.ReplaceAllString(s, " ")
}

// nonEmptyLines returns trimmed, non-blank lines in original order.
func nonEmptyLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// containsDigit reports whether s has at least one ASCII digit. Account
// number candidates without any digit are almost always a name or label
// word caught by a loose anchor.
func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}
