package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/craft-cover/internal/config"
	"github.com/jonathan/craft-cover/internal/observability"
	"github.com/jonathan/craft-cover/internal/pipeline"
	"github.com/jonathan/craft-cover/internal/selection"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline end-to-end",
	Long: `Loads recipes, builds candidate sets and solves the cover in one go: recipes -> tags -> candidates -> cover.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath      string
	runRecipesDir      string
	runTagsDir         string
	runTargets         []string
	runTargetsFile     string
	runOutput          string
	runStrategy        string
	runStrict          bool
	runVerbose         bool
	runMaxCombinations int
	runWorkers         int
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runRecipesDir, "recipes", "r", "", "Directory of recipe JSON files (defaults to "+config.EnvRecipesDir+" or "+config.DefaultRecipesDir+")")
	runCommand.Flags().StringVarP(&runTagsDir, "tags", "t", "", "Directory of item tag JSON files (defaults to "+config.EnvTagsDir+" or "+config.DefaultTagsDir+")")
	runCommand.Flags().StringSliceVar(&runTargets, "targets", nil, "Comma-separated target items (defaults to the built-in list)")
	runCommand.Flags().StringVar(&runTargetsFile, "targets-file", "", "File listing target items, one per line")
	runCommand.Flags().StringVarP(&runOutput, "out", "o", "", "Path to output CoverReport JSON file (optional)")
	runCommand.Flags().StringVarP(&runStrategy, "strategy", "s", "", "Selection strategy: lazy or naive")
	runCommand.Flags().BoolVar(&runStrict, "strict", false, "Validate recipe and tag documents against their schemas")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed summaries")
	runCommand.Flags().IntVar(&runMaxCombinations, "max-combinations", 0, "Fail when one recipe expands to more combinations (0 = unlimited)")
	runCommand.Flags().IntVar(&runWorkers, "workers", 0, "Concurrent recipe readers")

	rootCmd.AddCommand(runCommand)
}

// resolveRunConfig builds the run configuration: explicitly set flags
// override the config file, and defaults fill whatever is still unset.
func resolveRunConfig(changed func(name string) bool) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if changed("recipes") {
		cfg.RecipesDir = runRecipesDir
	}
	if changed("tags") {
		cfg.TagsDir = runTagsDir
	}
	if changed("targets") {
		cfg.Targets = runTargets
		cfg.TargetsFile = ""
	}
	if changed("targets-file") {
		cfg.TargetsFile = runTargetsFile
		cfg.Targets = nil
	}
	if changed("out") {
		cfg.Out = runOutput
	}
	if changed("strategy") {
		cfg.Strategy = runStrategy
	}
	if changed("strict") {
		cfg.Strict = runStrict
	}
	if changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if changed("max-combinations") {
		cfg.MaxCombinations = runMaxCombinations
	}
	if changed("workers") {
		cfg.Workers = runWorkers
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Defaults())

	// Step 4: Validate the merged result
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveRunConfig(cmd.Flags().Changed)
	if err != nil {
		return err
	}
	if cfg.Verbose && runConfigPath != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
	}

	targets, err := cfg.ResolveTargets()
	if err != nil {
		return fmt.Errorf("failed to resolve targets: %w", err)
	}
	strategy, err := selection.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}

	opts := pipeline.RunOptions{
		BuildOptions: pipeline.BuildOptions{
			RecipesDir:      cfg.RecipesDir,
			TagsDir:         cfg.TagsDir,
			Targets:         targets,
			Strict:          cfg.Strict,
			MaxCombinations: cfg.MaxCombinations,
			Workers:         cfg.Workers,
		},
		Strategy: strategy,
		Verbose:  cfg.Verbose,
		Output:   os.Stdout,
	}

	result, err := pipeline.RunPipeline(ctx, opts)
	if err != nil {
		return err
	}

	observability.WriteReport(os.Stdout, result.Report)

	if cfg.Out != "" {
		if err := writeJSON(cfg.Out, result.Report); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Successfully wrote cover report to %s\n", cfg.Out)
	}
	return nil
}
