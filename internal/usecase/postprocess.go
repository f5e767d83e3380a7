package usecase

import (
	"cmp"
	"slices"
	"strings"

	"seedrec/internal/domain/entity"
)

// RemoveDuplicates keeps the first item for each case-insensitive
// (title, creator) pair and preserves the order of the survivors.
func RemoveDuplicates(items []entity.Recommendation) []entity.Recommendation {
	type dedupKey struct{ title, creator string }
	seen := make(map[dedupKey]struct{}, len(items))
	out := make([]entity.Recommendation, 0, len(items))
	for _, it := range items {
		key := dedupKey{strings.ToLower(it.Title), strings.ToLower(it.Creator)}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

// SortByConfidence returns a copy sorted by descending confidence. Ties keep
// their input order.
func SortByConfidence(items []entity.Recommendation) []entity.Recommendation {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b entity.Recommendation) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	return out
}
