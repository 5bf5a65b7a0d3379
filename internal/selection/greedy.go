package selection

import (
	"fmt"

	"github.com/jonathan/craft-cover/internal/types"
)

// Strategy names a cover selection algorithm.
type Strategy string

const (
	// StrategyLazy re-scores candidates lazily through a priority queue.
	StrategyLazy Strategy = "lazy"
	// StrategyNaive re-scores every candidate every round.
	StrategyNaive Strategy = "naive"
)

// ParseStrategy validates a strategy name; an empty name means StrategyLazy.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", StrategyLazy:
		return StrategyLazy, nil
	case StrategyNaive:
		return StrategyNaive, nil
	}
	return "", &Error{Message: fmt.Sprintf("unknown strategy %q (want %q or %q)", name, StrategyLazy, StrategyNaive)}
}

// CoverResult is an ordered cover: Sets[i] is candidates[Indices[i]].
type CoverResult struct {
	Indices []int
	Sets    []types.ItemSet
}

// Len returns the number of chosen sets
func (r *CoverResult) Len() int {
	return len(r.Indices)
}

// Select runs the named strategy.
func Select(strategy Strategy, universe types.ItemSet, candidates []types.ItemSet) (*CoverResult, error) {
	switch strategy {
	case StrategyNaive:
		return SelectCoverNaive(universe, candidates)
	case StrategyLazy, "":
		return SelectCover(universe, candidates)
	}
	return nil, &Error{Message: fmt.Sprintf("unknown strategy %q", strategy)}
}

// SelectCover picks candidates greedily by marginal coverage until the union
// of the chosen sets equals universe.
//
// Candidates live in a min-queue keyed by (score, insertion index) where
// score = |universe| - gain. A popped entry's stale score never overstates its
// gain, since gains only shrink as coverage grows. So once a popped key is no
// better than the current round's re-scored best, nothing left in the queue
// can beat it. Entries examined but not chosen go back with fresh scores.
//
// Items outside the universe are never credited. The selection sequence is the
// same as SelectCoverNaive's.
func SelectCover(universe types.ItemSet, candidates []types.ItemSet) (*CoverResult, error) {
	if err := validateCandidates(candidates); err != nil {
		return nil, err
	}

	total := universe.Len()
	queue := make(entryQueue, 0, len(candidates))
	for i, c := range candidates {
		queue.push(entry{score: total - c.Intersect(universe).Len(), index: i, set: c})
	}

	covered := make(map[string]struct{}, total)
	result := &CoverResult{}
	unused := make([]entry, 0)

	for len(covered) < total {
		var best *entry
		unused = unused[:0]

		for queue.Len() > 0 {
			e := queue.pop()
			if best == nil {
				e.score = total - gain(e.set, universe, covered)
				best = &e
				continue
			}
			if !e.less(*best) {
				// Re-scoring never lowers a score, so nothing left in the
				// queue can win this round.
				queue.push(e)
				break
			}
			e.score = total - gain(e.set, universe, covered)
			if e.less(*best) {
				unused = append(unused, *best)
				best = &e
			} else {
				unused = append(unused, e)
			}
		}

		if best == nil || best.score == total {
			return nil, &NoFeasibleCoverError{
				Missing: uncovered(universe, covered),
				Chosen:  result.Len(),
			}
		}

		result.Indices = append(result.Indices, best.index)
		result.Sets = append(result.Sets, best.set)
		markCovered(best.set, universe, covered)

		for _, e := range unused {
			queue.push(e)
		}
	}

	return result, nil
}

// SelectCoverNaive recomputes every remaining candidate's gain each round and
// takes the largest, lowest insertion index first on ties.
func SelectCoverNaive(universe types.ItemSet, candidates []types.ItemSet) (*CoverResult, error) {
	if err := validateCandidates(candidates); err != nil {
		return nil, err
	}

	total := universe.Len()
	covered := make(map[string]struct{}, total)
	used := make([]bool, len(candidates))
	result := &CoverResult{}

	for len(covered) < total {
		bestIdx, bestGain := -1, 0
		for i, c := range candidates {
			if used[i] {
				continue
			}
			if g := gain(c, universe, covered); g > bestGain {
				bestIdx, bestGain = i, g
			}
		}
		if bestIdx < 0 {
			return nil, &NoFeasibleCoverError{
				Missing: uncovered(universe, covered),
				Chosen:  result.Len(),
			}
		}

		used[bestIdx] = true
		result.Indices = append(result.Indices, bestIdx)
		result.Sets = append(result.Sets, candidates[bestIdx])
		markCovered(candidates[bestIdx], universe, covered)
	}

	return result, nil
}

// VerifyCover reports whether the union of sets contains every universe element.
func VerifyCover(universe types.ItemSet, sets []types.ItemSet) bool {
	covered := make(map[string]struct{}, universe.Len())
	for _, s := range sets {
		markCovered(s, universe, covered)
	}
	return len(covered) == universe.Len()
}

func validateCandidates(candidates []types.ItemSet) error {
	for i, c := range candidates {
		if c.Len() == 0 {
			return &InvalidCandidateError{Index: i}
		}
	}
	return nil
}

// gain counts the universe elements in set that are not yet covered.
func gain(set, universe types.ItemSet, covered map[string]struct{}) int {
	n := 0
	for _, item := range set {
		if _, done := covered[item]; done {
			continue
		}
		if universe.Contains(item) {
			n++
		}
	}
	return n
}

func markCovered(set, universe types.ItemSet, covered map[string]struct{}) {
	for _, item := range set {
		if universe.Contains(item) {
			covered[item] = struct{}{}
		}
	}
}

func uncovered(universe types.ItemSet, covered map[string]struct{}) []string {
	missing := make([]string, 0, universe.Len()-len(covered))
	for _, item := range universe {
		if _, ok := covered[item]; !ok {
			missing = append(missing, item)
		}
	}
	return missing
}
