package css

import (
	"golang.org/x/text/cases"
)

// foldCaser performs Unicode case folding for the case-insensitive keyword
// matching CSS Syntax requires (at-rule names, "not"/"only"/"and"/"or",
// pseudo names, property names). Using golang.org/x/text/cases instead of
// strings.ToLower/EqualFold handles the general Unicode case-folding rules
// the ASCII-only stdlib helpers don't, and matches how this repo's module
// graph already pulls in golang.org/x/text (see DESIGN.md).
var foldCaser = cases.Fold()

// fold returns the case-folded form of s, suitable for comparing against a
// lowercase keyword constant.
func fold(s string) string {
	return foldCaser.String(s)
}

// foldEquals reports whether s case-insensitively equals the (already
// lowercase) keyword.
func foldEquals(s, keyword string) bool {
	return fold(s) == keyword
}
