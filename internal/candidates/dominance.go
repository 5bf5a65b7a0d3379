package candidates

import "github.com/jonathan/craft-cover/internal/types"

// RemoveDominated returns the candidates that are not a strict subset of any
// other candidate, in their original order. The input must already be
// deduplicated by item set.
func RemoveDominated(candidates []types.Candidate) []types.Candidate {
	kept := make([]types.Candidate, 0, len(candidates))
	for i, c := range candidates {
		if !isDominated(i, c.Items, candidates) {
			kept = append(kept, c)
		}
	}
	return kept
}

// isDominated compares against the full input rather than the survivors;
// strict containment is transitive so the result is the same.
func isDominated(self int, set types.ItemSet, candidates []types.Candidate) bool {
	for j, other := range candidates {
		if j != self && set.IsStrictSubsetOf(other.Items) {
			return true
		}
	}
	return false
}
