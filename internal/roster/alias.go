package roster

import (
	"github.com/antzucaro/matchr"
)

// AliasCandidate is a pair of distinct names that may refer to the same player.
type AliasCandidate struct {
	Left       string
	Right      string
	Similarity float64
}

// FindAliases compares every pair of names and returns the pairs at or above the
// threshold, in the order the names were given. A threshold of zero or less
// disables the comparison.
func FindAliases(names []string, threshold float64) []AliasCandidate {
	if threshold <= 0 {
		return nil
	}
	var result []AliasCandidate
	for i, left := range names {
		for _, right := range names[i+1:] {
			if left == right {
				continue
			}
			similarity := matchr.JaroWinkler(left, right, false)
			if similarity >= threshold {
				result = append(result, AliasCandidate{
					Left:       left,
					Right:      right,
					Similarity: similarity,
				})
			}
		}
	}
	return result
}
