// Package category canonicalizes free-text business category labels and
// classifies them into coarse business verticals.
package category

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// genericLabels lists type tags attached to nearly every place. They carry no
// discriminating signal, so normalization treats them as "no category".
var genericLabels = map[string]struct{}{
	"point of interest": {},
	"establishment":     {},
	"store":             {},
	"food":              {},
	"shopping mall":     {},
}

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// foldMarks strips combining diacritical marks so "Café" and "Cafe" compare equal.
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a free-text category label into a comparable token by:
//  1. Lower-casing and trimming whitespace
//  2. Replacing underscores and ampersands with spaces
//  3. Stripping diacritics
//  4. Collapsing internal whitespace
//
// Returns "" when the label is empty after cleanup or matches a generic tag;
// callers treat "" as "no usable signal".
func Normalize(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	if s == "" {
		return ""
	}

	s = strings.NewReplacer("_", " ", "&", " ").Replace(s)

	if folded, _, err := transform.String(foldMarks, s); err == nil {
		s = folded
	}

	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}
	if _, generic := genericLabels[s]; generic {
		return ""
	}
	return s
}

// NormalizeAll normalizes every label, dropping those without signal and
// de-duplicating while preserving first-seen order.
func NormalizeAll(labels []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		n := Normalize(l)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
