package analyzer

import "sort"

// Rank orders duplicates by count, highest first. The sort is stable, so
// links with equal counts stay in the order they were first seen. The
// slice is sorted in place and returned.
func Rank(duplicates []DuplicateLink) []DuplicateLink {
	sort.SliceStable(duplicates, func(i, j int) bool {
		return duplicates[i].Count > duplicates[j].Count
	})

	return duplicates
}
