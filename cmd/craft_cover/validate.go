package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/craft-cover/internal/recipes"
	"github.com/jonathan/craft-cover/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate recipe and tag documents against their schemas",
	Long: `Checks every crafting recipe in --recipes and every tag document under --tags
against the embedded JSON Schemas and lists each file that does not conform.
Non-crafting recipes (smelting, smithing, ...) are ignored.

--candidates checks a CandidateSet artifact. --in with --schema checks any JSON
document against a schema file on disk.`,
	RunE: runValidate,
}

var (
	validateRecipesDir string
	validateTagsDir    string
	validateCandidates string
	validateInput      string
	validateSchema     string
)

func init() {
	validateCmd.Flags().StringVarP(&validateRecipesDir, "recipes", "r", "", "Directory of recipe JSON files")
	validateCmd.Flags().StringVarP(&validateTagsDir, "tags", "t", "", "Directory of item tag JSON files")
	validateCmd.Flags().StringVar(&validateCandidates, "candidates", "", "CandidateSet JSON file")
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "JSON document to check against --schema")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "JSON Schema file for --in")
	validateCmd.MarkFlagsRequiredTogether("in", "schema")

	rootCmd.AddCommand(validateCmd)
}

// validationSummary counts checked documents and collects failures.
type validationSummary struct {
	checked  int
	failures []error
}

func (s *validationSummary) check(err error) {
	s.checked++
	if err != nil {
		s.failures = append(s.failures, err)
	}
}

func runValidate(_ *cobra.Command, _ []string) error {
	if validateRecipesDir == "" && validateTagsDir == "" && validateCandidates == "" && validateInput == "" {
		return fmt.Errorf("at least one of --recipes, --tags, --candidates or --in must be provided")
	}
	if (validateInput == "") != (validateSchema == "") {
		return fmt.Errorf("--in and --schema must be provided together")
	}

	summary := &validationSummary{}

	if validateRecipesDir != "" {
		if err := validateRecipes(validateRecipesDir, summary); err != nil {
			return err
		}
	}
	if validateTagsDir != "" {
		if err := validateTags(validateTagsDir, summary); err != nil {
			return err
		}
	}

	if validateCandidates != "" {
		summary.check(schemas.ValidateFile(schemas.KindCandidateSet, validateCandidates))
	}
	if validateInput != "" {
		summary.check(schemas.ValidateJSON(validateSchema, validateInput))
	}

	for _, failure := range summary.failures {
		_, _ = fmt.Fprintf(os.Stdout, "✗ %v\n", failure)
	}

	if len(summary.failures) > 0 {
		return fmt.Errorf("validation failed: %d of %d documents are invalid", len(summary.failures), summary.checked)
	}

	_, _ = fmt.Fprintf(os.Stdout, "✓ All %d documents are valid\n", summary.checked)
	return nil
}

func validateRecipes(dir string, summary *validationSummary) error {
	paths, err := recipes.ListDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list recipes: %w", err)
	}

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read recipe %s: %w", path, err)
		}
		if !recipes.IsCrafting(content) {
			continue
		}
		summary.check(schemas.ValidateDocument(schemas.KindRecipe, path, content))
	}
	return nil
}

func validateTags(dir string, summary *validationSummary) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		err = schemas.ValidateFile(schemas.KindTag, path)
		var validationErr *schemas.ValidationError
		if err != nil && !errors.As(err, &validationErr) {
			err = fmt.Errorf("%s: %w", path, err)
		}
		summary.check(err)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk tags: %w", err)
	}
	return nil
}
