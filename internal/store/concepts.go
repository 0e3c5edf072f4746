package store

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

const conceptSep = ", "

// JoinConcepts deduplicates concept labels case-insensitively, keeping the
// first spelling seen, and joins them in sorted order so the stored text does
// not depend on the order the analysis returned them in.
func JoinConcepts(concepts []string) string {
	fold := cases.Fold()
	seen := make(map[string]bool, len(concepts))
	unique := make([]string, 0, len(concepts))

	for _, c := range concepts {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		key := fold.String(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}

	slices.SortFunc(unique, func(a, b string) int {
		return strings.Compare(fold.String(a), fold.String(b))
	})
	return strings.Join(unique, conceptSep)
}

// SplitConcepts is the inverse of JoinConcepts.
func SplitConcepts(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, conceptSep)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
