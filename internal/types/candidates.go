package types

// Candidate is one deduplicated ingredient combination eligible for the cover.
type Candidate struct {
	Items   ItemSet  `json:"items"`
	Sources []string `json:"sources,omitempty"` // recipe results that accept exactly this combination
}

// CandidateSet is the builder's output and the solver's input artifact.
type CandidateSet struct {
	Universe   ItemSet        `json:"universe"`
	Candidates []Candidate    `json:"candidates"`
	Makeup     map[string]int `json:"makeup,omitempty"` // element -> raw combinations containing it
	Stats      *BuildStats    `json:"stats,omitempty"`
}

// BuildStats counts what survived each stage of candidate building.
type BuildStats struct {
	Recipes         int `json:"recipes"`
	EligibleRecipes int `json:"eligible_recipes"` // every slot has an alternative in the universe
	Combinations    int `json:"combinations"`
	Unique          int `json:"unique"`
	NonDominated    int `json:"non_dominated"`
}

// ItemSets returns the candidate item sets in candidate order.
func (cs *CandidateSet) ItemSets() []ItemSet {
	sets := make([]ItemSet, len(cs.Candidates))
	for i, c := range cs.Candidates {
		sets[i] = c.Items
	}
	return sets
}
