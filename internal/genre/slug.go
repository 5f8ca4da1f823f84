// Package genre turns free-form subject strings from book metadata into reader-facing tags.
package genre

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches any non-alphanumeric character.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches multiple hyphens.
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Slugify converts a string to a comparison key.
// "Science Fiction" -> "science-fiction".
// "Café Noir" -> "cafe-noir".
// "Sci-Fi/Fantasy" -> "sci-fi-fantasy".
func Slugify(s string) string {
	// Decompose accented characters so the base letter survives.
	s = norm.NFKD.String(s)

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// SameTag reports whether two tags name the same thing, ignoring case, accents and punctuation.
func SameTag(a, b string) bool {
	sa, sb := Slugify(a), Slugify(b)
	if sa == "" || sb == "" {
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
	return sa == sb
}
