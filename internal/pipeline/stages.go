package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/craft-cover/internal/candidates"
	"github.com/jonathan/craft-cover/internal/recipes"
	"github.com/jonathan/craft-cover/internal/selection"
	"github.com/jonathan/craft-cover/internal/tags"
	"github.com/jonathan/craft-cover/internal/types"
)

// BuildOptions holds the inputs of the candidate-building stages.
type BuildOptions struct {
	RecipesDir      string
	TagsDir         string
	Targets         []string
	Strict          bool
	MaxCombinations int
	Workers         int
}

// LoadRecipes reads every crafting recipe under dir.
func LoadRecipes(ctx context.Context, opts BuildOptions) ([]*types.Recipe, *recipes.LoadStats, error) {
	loaded, stats, err := recipes.LoadDir(ctx, opts.RecipesDir, recipes.LoadOptions{
		Workers: opts.Workers,
		Strict:  opts.Strict,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("recipe loading failed: %w", err)
	}
	return loaded, stats, nil
}

// BuildCandidates expands loaded recipes into the candidate set for the targets.
func BuildCandidates(loaded []*types.Recipe, opts BuildOptions) (*types.CandidateSet, error) {
	if len(opts.Targets) == 0 {
		return nil, fmt.Errorf("candidate building failed: no target items")
	}
	resolver := tags.NewResolver(opts.TagsDir, tags.WithStrict(opts.Strict))
	universe := types.NewItemSet(opts.Targets...)

	set, err := candidates.Build(loaded, resolver, universe, candidates.Options{
		MaxCombinations: opts.MaxCombinations,
	})
	if err != nil {
		return nil, fmt.Errorf("candidate building failed: %w", err)
	}
	return set, nil
}

// Solve picks a cover from the candidate set and wraps it in a report.
func Solve(set *types.CandidateSet, strategy selection.Strategy) (*types.CoverReport, error) {
	if strategy == "" {
		strategy = selection.StrategyLazy
	}
	result, err := selection.Select(strategy, set.Universe, set.ItemSets())
	if err != nil {
		return nil, fmt.Errorf("set cover failed: %w", err)
	}
	if !selection.VerifyCover(set.Universe, result.Sets) {
		return nil, fmt.Errorf("set cover failed: %s strategy returned an incomplete cover", strategy)
	}

	chosen := make([]types.Candidate, len(result.Indices))
	for i, idx := range result.Indices {
		chosen[i] = set.Candidates[idx]
	}
	return types.NewCoverReport(string(strategy), set.Universe, len(set.Candidates), chosen), nil
}
