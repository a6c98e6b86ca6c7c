package store

import (
	"strings"

	"golang.org/x/text/cases"
)

// fold returns the case-folded form of s used for name keys and substring
// filters. A Caser holds state, so each call builds its own.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// containsFold reports whether needle occurs in haystack ignoring case.
// needle must already be folded.
func containsFold(haystack, foldedNeedle string) bool {
	return strings.Contains(fold(haystack), foldedNeedle)
}
