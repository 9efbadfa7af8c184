package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Catalog search and text sorting are accent- and case-insensitive: users
// type "ep" and expect "Épinards". Fold decomposes to NFD, strips combining
// marks, recomposes and lowercases.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func Fold(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// FoldContains reports whether substr occurs in s under folding.
func FoldContains(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// FoldCompare orders a and b under folding; ties fall back to the raw
// strings so sorts stay deterministic.
func FoldCompare(a, b string) int {
	if c := strings.Compare(Fold(a), Fold(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
