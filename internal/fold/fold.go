// Package fold provides case-insensitive string comparison for game data.
//
// All comparisons go through Unicode case folding (golang.org/x/text/cases)
// applied to NFC-normalized input, so "GO", "go" and "Go" are equal and
// precomposed/decomposed accents compare the same.
//
// A cases.Caser is stateful, so every call builds its own. The cost is small
// compared to the allocations of the folded strings themselves.
package fold

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// String returns the case-folded, NFC-normalized form of s.
func String(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Equal reports whether a and b are equal under case folding.
func Equal(a, b string) bool {
	if a == b {
		return true
	}
	return String(a) == String(b)
}

// Compare orders a and b lexicographically after case folding.
// Returns -1, 0 or +1 like strings.Compare.
func Compare(a, b string) int {
	return strings.Compare(String(a), String(b))
}

// Contains reports whether sub occurs in s under case folding.
func Contains(s, sub string) bool {
	return strings.Contains(String(s), String(sub))
}
