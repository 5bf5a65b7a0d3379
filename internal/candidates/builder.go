package candidates

import (
	"math"
	"sort"

	"github.com/jonathan/craft-cover/internal/types"
)

// TagResolver expands a tag name into the items it stands for.
type TagResolver interface {
	Resolve(name string) ([]string, error)
}

// Options configures Build.
type Options struct {
	// MaxCombinations caps the ingredient combinations a single recipe may
	// expand to. Zero means no limit.
	MaxCombinations int
}

// Build expands every recipe into its concrete ingredient combinations
// restricted to universe, then deduplicates them and drops every
// combination that another one strictly contains.
//
// A recipe with a slot that has no alternative inside universe cannot be
// crafted from target items alone and contributes nothing.
func Build(recipes []*types.Recipe, resolver TagResolver, universe types.ItemSet, opts Options) (*types.CandidateSet, error) {
	stats := &types.BuildStats{Recipes: len(recipes)}

	makeup := make(map[string]int, universe.Len())
	for _, item := range universe {
		makeup[item] = 0
	}

	var unique []types.Candidate
	byKey := make(map[string]int)

	for _, recipe := range recipes {
		slots, err := expandSlots(recipe, resolver, universe)
		if err != nil {
			return nil, err
		}
		if slots == nil {
			continue
		}
		stats.EligibleRecipes++

		total := productSize(slots)
		if opts.MaxCombinations > 0 && total > opts.MaxCombinations {
			return nil, &CombinationLimitError{Recipe: recipe.Name(), Combinations: total, Limit: opts.MaxCombinations}
		}

		source := recipe.Name()
		forEachCombination(slots, func(combo []string) {
			set := types.NewItemSet(combo...)
			stats.Combinations++
			for _, item := range set {
				makeup[item]++
			}

			key := set.Key()
			if i, ok := byKey[key]; ok {
				unique[i].Sources = addSource(unique[i].Sources, source)
				return
			}
			byKey[key] = len(unique)
			unique = append(unique, types.Candidate{Items: set, Sources: []string{source}})
		})
	}
	stats.Unique = len(unique)

	kept := RemoveDominated(unique)
	stats.NonDominated = len(kept)

	return &types.CandidateSet{
		Universe:   universe,
		Candidates: kept,
		Makeup:     makeup,
		Stats:      stats,
	}, nil
}

// expandSlots resolves each slot of recipe to the distinct universe items it
// accepts, in first-seen order. It returns nil when some slot accepts none.
func expandSlots(recipe *types.Recipe, resolver TagResolver, universe types.ItemSet) ([][]string, error) {
	if len(recipe.Slots) == 0 {
		return nil, nil
	}

	slots := make([][]string, 0, len(recipe.Slots))
	for _, slot := range recipe.Slots {
		var accepted []string
		seen := make(map[string]struct{})
		accept := func(item string) {
			if !universe.Contains(item) {
				return
			}
			if _, dup := seen[item]; dup {
				return
			}
			seen[item] = struct{}{}
			accepted = append(accepted, item)
		}

		for _, ref := range slot {
			if !ref.IsTag() {
				accept(ref.Item)
				continue
			}
			items, err := resolver.Resolve(ref.Tag)
			if err != nil {
				return nil, &BuildError{Recipe: recipe.Name(), Message: "failed to resolve tag " + ref.Tag, Cause: err}
			}
			for _, item := range items {
				accept(item)
			}
		}

		if len(accepted) == 0 {
			return nil, nil
		}
		slots = append(slots, accepted)
	}
	return slots, nil
}

// productSize returns the number of combinations across slots, saturating at
// math.MaxInt.
func productSize(slots [][]string) int {
	total := 1
	for _, slot := range slots {
		if total > math.MaxInt/len(slot) {
			return math.MaxInt
		}
		total *= len(slot)
	}
	return total
}

// forEachCombination calls fn once per element of the cartesian product of
// slots. The last slot varies fastest. fn must not retain combo.
func forEachCombination(slots [][]string, fn func(combo []string)) {
	idx := make([]int, len(slots))
	combo := make([]string, len(slots))
	for {
		for i, slot := range slots {
			combo[i] = slot[idx[i]]
		}
		fn(combo)

		i := len(slots) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(slots[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return
		}
	}
}

func addSource(sources []string, source string) []string {
	i := sort.SearchStrings(sources, source)
	if i < len(sources) && sources[i] == source {
		return sources
	}
	sources = append(sources, "")
	copy(sources[i+1:], sources[i:])
	sources[i] = source
	return sources
}
