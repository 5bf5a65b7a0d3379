package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/craft-cover/internal/observability"
	"github.com/jonathan/craft-cover/internal/pipeline"
	"github.com/jonathan/craft-cover/internal/schemas"
	"github.com/jonathan/craft-cover/internal/selection"
	"github.com/jonathan/craft-cover/internal/types"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Pick a greedy set cover from a CandidateSet",
	Long: `Reads a CandidateSet JSON (as written by build-candidates), chooses candidates
greedily until every universe item is covered, and prints the chosen sets.`,
	RunE: runSolve,
}

var (
	solveInput    string
	solveOutput   string
	solveStrategy string
)

func init() {
	solveCmd.Flags().StringVarP(&solveInput, "in", "i", "", "Path to input CandidateSet JSON file (required)")
	solveCmd.Flags().StringVarP(&solveOutput, "out", "o", "", "Path to output CoverReport JSON file (optional)")
	solveCmd.Flags().StringVarP(&solveStrategy, "strategy", "s", string(selection.StrategyLazy), "Selection strategy: lazy or naive")

	if err := solveCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(solveCmd)
}

func runSolve(_ *cobra.Command, _ []string) error {
	strategy, err := selection.ParseStrategy(solveStrategy)
	if err != nil {
		return err
	}

	set, err := loadCandidateSet(solveInput)
	if err != nil {
		return err
	}

	report, err := pipeline.Solve(set, strategy)
	if err != nil {
		return err
	}

	observability.WriteReport(os.Stdout, report)

	if solveOutput != "" {
		if err := writeJSON(solveOutput, report); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Successfully wrote cover report to %s\n", solveOutput)
	}
	return nil
}

// loadCandidateSet reads and schema-checks a CandidateSet file, then puts
// every item set into canonical form.
func loadCandidateSet(path string) (*types.CandidateSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate set file %s: %w", path, err)
	}
	if err := schemas.ValidateDocument(schemas.KindCandidateSet, path, content); err != nil {
		return nil, err
	}

	var set types.CandidateSet
	if err := json.Unmarshal(content, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal candidate set JSON: %w", err)
	}

	set.Universe = types.NewItemSet(set.Universe...)
	for i := range set.Candidates {
		set.Candidates[i].Items = types.NewItemSet(set.Candidates[i].Items...)
	}
	return &set, nil
}
