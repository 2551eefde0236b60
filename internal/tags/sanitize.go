package tags

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Printable ASCII range the player's font can render.
const (
	minPrintable = 0x20
	maxPrintable = 0x7e
)

// typography maps common typographic characters to ASCII look-alikes.
var typography = strings.NewReplacer(
	"\u2013", "-",   // en dash
	"\u2014", "-",   // em dash
	"\u2018", "'",   // left single quote
	"\u2019", "'",   // right single quote
	"\u201c", `"`,   // left double quote
	"\u201d", `"`,   // right double quote
	"\u2026", "...", // ellipsis
	"\u00a0", " ",   // non-breaking space
	"\t", " ",
	"\n", " ",
	"\r", " ",
)

// SanitizeText reduces s to printable ASCII for the player display:
// accents are stripped ("Café" -> "Cafe"), typographic punctuation is
// replaced by its ASCII equivalent, anything else outside the printable
// range becomes a space, and whitespace is collapsed and trimmed.
// Empty input is returned unchanged. SanitizeText is idempotent.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}

	// Chained transformers keep state, so build one per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	if decomposed, _, err := transform.String(stripMarks, s); err == nil {
		s = decomposed
	}

	s = typography.Replace(s)

	s = strings.Map(func(r rune) rune {
		if r < minPrintable || r > maxPrintable {
			return ' '
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// Sanitize applies SanitizeText to the free-text fields.
func (t *Tag) Sanitize() {
	t.Title = SanitizeText(t.Title)
	t.Artist = SanitizeText(t.Artist)
	t.Album = SanitizeText(t.Album)
}
