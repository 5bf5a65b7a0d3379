// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Environment variables consulted when a directory is not configured.
const (
	EnvRecipesDir = "CRAFT_COVER_RECIPES"
	EnvTagsDir    = "CRAFT_COVER_TAGS"
)

// Default locations match the layout of an extracted data pack.
const (
	DefaultRecipesDir = "./recipe"
	DefaultTagsDir    = "./tags/item"
	DefaultStrategy   = "lazy"
	DefaultWorkers    = 8
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	RecipesDir  string `json:"recipes_dir,omitempty"`  // Directory of recipe JSON documents
	TagsDir     string `json:"tags_dir,omitempty"`     // Directory of item tag documents
	TargetsFile string `json:"targets_file,omitempty"` // File listing target items, one per line
	Out         string `json:"out,omitempty"`          // Path for the cover report JSON

	// Targets
	Targets []string `json:"targets,omitempty" validate:"omitempty,dive,required"` // Target items; overrides the defaults

	// Limits
	MaxCombinations int `json:"max_combinations,omitempty" validate:"gte=0"` // Per-recipe combination cap, 0 = unlimited
	Workers         int `json:"workers,omitempty" validate:"gte=0,lte=256"`  // Concurrent recipe readers

	// Behavior
	Strategy string `json:"strategy,omitempty" validate:"omitempty,oneof=lazy naive"` // Solver strategy
	Strict   bool   `json:"strict,omitempty"`                                         // Validate inputs against embedded schemas
	Verbose  bool   `json:"verbose,omitempty"`                                        // Print detailed summaries
}

// DefaultTargets returns the items a cover must include when none are configured.
func DefaultTargets() []string {
	return []string{
		"minecraft:oak_planks",
		"minecraft:cobblestone",
		"minecraft:stone",
		"minecraft:glass",
		"minecraft:white_wool",
		"minecraft:stick",
		"minecraft:coal",
		"minecraft:diamond",
		"minecraft:gold_ingot",
		"minecraft:iron_ingot",
		"minecraft:redstone",
		"minecraft:quartz",
		"minecraft:oak_slab",
		"minecraft:oak_log",
		"minecraft:iron_nugget",
		"minecraft:redstone_torch",
		"minecraft:string",
		"minecraft:leather",
	}
}

// Defaults returns the fallback configuration, honoring the environment.
func Defaults() Config {
	recipes := os.Getenv(EnvRecipesDir)
	if recipes == "" {
		recipes = DefaultRecipesDir
	}
	tags := os.Getenv(EnvTagsDir)
	if tags == "" {
		tags = DefaultTagsDir
	}
	return Config{
		RecipesDir: recipes,
		TagsDir:    tags,
		Strategy:   DefaultStrategy,
		Workers:    DefaultWorkers,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' validation", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	// Validate mutually exclusive fields
	if len(c.Targets) > 0 && c.TargetsFile != "" {
		return fmt.Errorf("config error: 'targets' and 'targets_file' are mutually exclusive")
	}

	// Validate paths exist (if specified)
	if c.TargetsFile != "" {
		if _, err := os.Stat(c.TargetsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: targets file not found: %s", c.TargetsFile)
		}
	}
	if c.RecipesDir != "" {
		if _, err := os.Stat(c.RecipesDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: recipes directory not found: %s", c.RecipesDir)
		}
	}
	if c.TagsDir != "" {
		if _, err := os.Stat(c.TagsDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: tags directory not found: %s", c.TagsDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.RecipesDir == "" {
		result.RecipesDir = defaults.RecipesDir
	}
	if result.TagsDir == "" {
		result.TagsDir = defaults.TagsDir
	}
	if result.TargetsFile == "" {
		result.TargetsFile = defaults.TargetsFile
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}
	if result.Strategy == "" {
		result.Strategy = defaults.Strategy
	}

	// Targets: a file on either side counts as a target source
	if len(result.Targets) == 0 && result.TargetsFile == "" {
		result.Targets = defaults.Targets
	}

	// Int fields: use default if zero
	if result.MaxCombinations == 0 {
		result.MaxCombinations = defaults.MaxCombinations
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ResolveTargets returns the configured target items: the explicit list,
// then the targets file, then DefaultTargets.
func (c *Config) ResolveTargets() ([]string, error) {
	if len(c.Targets) > 0 {
		return c.Targets, nil
	}
	if c.TargetsFile != "" {
		return LoadTargets(c.TargetsFile)
	}
	return DefaultTargets(), nil
}
