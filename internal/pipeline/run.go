// Package pipeline provides the high-level orchestration for the set cover run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/jonathan/craft-cover/internal/observability"
	"github.com/jonathan/craft-cover/internal/pipeline/steps"
	"github.com/jonathan/craft-cover/internal/recipes"
	"github.com/jonathan/craft-cover/internal/selection"
	"github.com/jonathan/craft-cover/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	BuildOptions
	Strategy   selection.Strategy
	Verbose    bool
	Output     io.Writer // progress and verbose output; defaults to os.Stdout
	OnProgress ProgressCallback
}

// Result holds everything a run produced.
type Result struct {
	RunID      uuid.UUID
	LoadStats  *recipes.LoadStats
	Candidates *types.CandidateSet
	Report     *types.CoverReport
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID uuid.UUID, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: steps.StepRegistry[step].Category,
			Message:  message,
			RunID:    runID.String(),
			Content:  content,
		})
	}
}

// RunPipeline loads recipes, builds candidates and solves the cover.
//
//nolint:errcheck // progress lines go to stdout; errors are not recoverable
func RunPipeline(ctx context.Context, opts RunOptions) (*Result, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	printer := observability.NewPrinter(out)
	tracker := steps.NewTracker()
	result := &Result{RunID: uuid.New()}

	// Step 1: Load recipes
	if err := tracker.Start(steps.StepLoadRecipes); err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Step 1/3: Loading recipes from %s...\n", opts.RecipesDir)
	loaded, stats, err := LoadRecipes(ctx, opts.BuildOptions)
	if err != nil {
		tracker.Fail(steps.StepLoadRecipes)
		return nil, err
	}
	tracker.Complete(steps.StepLoadRecipes)
	result.LoadStats = stats
	fmt.Fprintf(out, "  %d recipes initially, %d shaped or shapeless\n", stats.Documents, stats.Crafting)
	emitProgress(&opts, result.RunID, steps.StepLoadRecipes,
		fmt.Sprintf("Loaded %d crafting recipes", stats.Crafting), stats)
	if opts.Verbose {
		printer.PrintLoadStats(stats)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: Resolve tags and build candidate sets
	if err := tracker.Start(steps.StepBuildCandidates); err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Step 2/3: Building candidate sets for %d targets...\n", len(opts.Targets))
	set, err := BuildCandidates(loaded, opts.BuildOptions)
	if err != nil {
		tracker.Fail(steps.StepBuildCandidates)
		return nil, err
	}
	tracker.Complete(steps.StepBuildCandidates)
	result.Candidates = set
	fmt.Fprintf(out, "  %d recipes have exclusively our %d ingredients, %d candidate sets\n",
		set.Stats.EligibleRecipes, set.Universe.Len(), len(set.Candidates))
	emitProgress(&opts, result.RunID, steps.StepBuildCandidates,
		fmt.Sprintf("Built %d candidate sets", len(set.Candidates)), set.Stats)
	if opts.Verbose {
		printer.PrintMakeup(set)
		printer.PrintCandidates(set)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: Solve
	if err := tracker.Start(steps.StepSolve); err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Step 3/3: Solving set cover (%s)...\n", strategyName(opts.Strategy))
	report, err := Solve(set, opts.Strategy)
	if err != nil {
		tracker.Fail(steps.StepSolve)
		return nil, err
	}
	tracker.Complete(steps.StepSolve)
	report.RunID = result.RunID
	result.Report = report
	emitProgress(&opts, result.RunID, steps.StepSolve,
		fmt.Sprintf("Chose %d sets", report.Count), report)
	if opts.Verbose {
		printer.PrintSolution(report)
	}

	return result, nil
}

func strategyName(s selection.Strategy) string {
	if s == "" {
		return string(selection.StrategyLazy)
	}
	return string(s)
}
