package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/craft-cover/internal/config"
	"github.com/jonathan/craft-cover/internal/pipeline"
	"github.com/spf13/cobra"
)

var buildCandidatesCmd = &cobra.Command{
	Use:   "build-candidates",
	Short: "Build the candidate sets for a list of target items",
	Long: `Loads crafting recipes, resolves their tags, and writes every non-dominated
ingredient combination made only of target items as a CandidateSet JSON.`,
	RunE: runBuildCandidates,
}

var (
	buildRecipesDir      string
	buildTagsDir         string
	buildTargets         []string
	buildTargetsFile     string
	buildOutput          string
	buildStrict          bool
	buildMaxCombinations int
	buildWorkers         int
)

func init() {
	defaults := config.Defaults()

	buildCandidatesCmd.Flags().StringVarP(&buildRecipesDir, "recipes", "r", defaults.RecipesDir, "Directory of recipe JSON files (env "+config.EnvRecipesDir+")")
	buildCandidatesCmd.Flags().StringVarP(&buildTagsDir, "tags", "t", defaults.TagsDir, "Directory of item tag JSON files (env "+config.EnvTagsDir+")")
	buildCandidatesCmd.Flags().StringSliceVar(&buildTargets, "targets", nil, "Comma-separated target items (defaults to the built-in list)")
	buildCandidatesCmd.Flags().StringVar(&buildTargetsFile, "targets-file", "", "File listing target items, one per line (mutually exclusive with --targets)")
	buildCandidatesCmd.Flags().StringVarP(&buildOutput, "out", "o", "", "Path to output CandidateSet JSON file (required)")
	buildCandidatesCmd.Flags().BoolVar(&buildStrict, "strict", false, "Validate recipe and tag documents against their schemas")
	buildCandidatesCmd.Flags().IntVar(&buildMaxCombinations, "max-combinations", 0, "Fail when one recipe expands to more combinations (0 = unlimited)")
	buildCandidatesCmd.Flags().IntVar(&buildWorkers, "workers", defaults.Workers, "Concurrent recipe readers")

	if err := buildCandidatesCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(buildCandidatesCmd)
}

func runBuildCandidates(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		RecipesDir:      buildRecipesDir,
		TagsDir:         buildTagsDir,
		Targets:         buildTargets,
		TargetsFile:     buildTargetsFile,
		MaxCombinations: buildMaxCombinations,
		Workers:         buildWorkers,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	targets, err := cfg.ResolveTargets()
	if err != nil {
		return fmt.Errorf("failed to resolve targets: %w", err)
	}

	opts := pipeline.BuildOptions{
		RecipesDir:      cfg.RecipesDir,
		TagsDir:         cfg.TagsDir,
		Targets:         targets,
		Strict:          buildStrict,
		MaxCombinations: cfg.MaxCombinations,
		Workers:         cfg.Workers,
	}

	loaded, stats, err := pipeline.LoadRecipes(context.Background(), opts)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "%d recipes initially, %d shaped or shapeless\n", stats.Documents, stats.Crafting)

	set, err := pipeline.BuildCandidates(loaded, opts)
	if err != nil {
		return err
	}

	if err := writeJSON(buildOutput, set); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully wrote %d candidate sets to %s\n", len(set.Candidates), buildOutput)
	return nil
}
