package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns a case-folded form of value suitable for caseless comparison
// and index lookups. Folding handles characters that simple lowercasing does
// not, such as the dotless i and the final sigma.
func Fold(value string) string {
	// cases.Caser carries state, so it cannot be shared across goroutines.
	return cases.Fold().String(value)
}

// NormalizeName canonicalizes a patch name for display and indexing. The
// result is NFC-normalized with runs of whitespace collapsed to single spaces
// and leading/trailing whitespace removed.
func NormalizeName(name string) string {
	name = norm.NFC.String(name)
	return strings.Join(strings.Fields(name), " ")
}
