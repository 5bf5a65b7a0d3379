package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/craft-cover/internal/config"
	"github.com/jonathan/craft-cover/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// changedSet reports the named flags as explicitly set.
func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func resetRunFlags(t *testing.T) {
	t.Helper()
	runConfigPath = ""
	runRecipesDir = ""
	runTagsDir = ""
	runTargets = nil
	runTargetsFile = ""
	runOutput = ""
	runStrategy = ""
	runStrict = false
	runVerbose = false
	runMaxCombinations = 0
	runWorkers = 0
}

func writeConfig(t *testing.T, cfg map[string]any) string {
	t.Helper()
	content, err := json.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestResolveRunConfig_Precedence(t *testing.T) {
	resetRunFlags(t)
	t.Setenv(config.EnvRecipesDir, fixtureRecipes())
	t.Setenv(config.EnvTagsDir, "")

	runConfigPath = writeConfig(t, map[string]any{
		"tags_dir":         fixtureTags(),
		"strategy":         "naive",
		"max_combinations": 10,
		"targets":          []string{"minecraft:stick"},
	})
	runStrategy = "lazy"
	runWorkers = 2

	cfg, err := resolveRunConfig(changedSet("strategy", "workers"))
	require.NoError(t, err)

	// Flags beat the file
	assert.Equal(t, "lazy", cfg.Strategy)
	assert.Equal(t, 2, cfg.Workers)
	// File beats defaults
	assert.Equal(t, fixtureTags(), cfg.TagsDir)
	assert.Equal(t, 10, cfg.MaxCombinations)
	assert.Equal(t, []string{"minecraft:stick"}, cfg.Targets)
	// Defaults (from the environment) fill the rest
	assert.Equal(t, fixtureRecipes(), cfg.RecipesDir)
}

func TestResolveRunConfig_TargetsFileFlagReplacesFileTargets(t *testing.T) {
	resetRunFlags(t)
	runConfigPath = writeConfig(t, map[string]any{
		"recipes_dir": fixtureRecipes(),
		"tags_dir":    fixtureTags(),
		"targets":     []string{"minecraft:stick"},
	})
	runTargetsFile = fixtureTargets()

	cfg, err := resolveRunConfig(changedSet("targets-file"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Targets)
	targets, err := cfg.ResolveTargets()
	require.NoError(t, err)
	assert.Len(t, targets, 4)
}

func TestResolveRunConfig_InvalidConfigValue(t *testing.T) {
	resetRunFlags(t)
	runConfigPath = writeConfig(t, map[string]any{
		"recipes_dir": fixtureRecipes(),
		"tags_dir":    fixtureTags(),
		"strategy":    "exhaustive",
	})

	_, err := resolveRunConfig(changedSet())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'strategy' failed 'oneof'")
}

func TestResolveRunConfig_MissingConfigFile(t *testing.T) {
	resetRunFlags(t)
	runConfigPath = filepath.Join(t.TempDir(), "missing.json")

	_, err := resolveRunConfig(changedSet())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRunCommand_EndToEnd(t *testing.T) {
	resetRunFlags(t)
	out := filepath.Join(t.TempDir(), "report.json")
	runRecipesDir = fixtureRecipes()
	runTagsDir = fixtureTags()
	runTargetsFile = fixtureTargets()
	runOutput = out
	runVerbose = true

	flags := runCommand.Flags()
	require.NoError(t, flags.Set("recipes", runRecipesDir))
	require.NoError(t, flags.Set("tags", runTagsDir))
	require.NoError(t, flags.Set("targets-file", runTargetsFile))
	require.NoError(t, flags.Set("out", out))
	require.NoError(t, flags.Set("verbose", "true"))

	require.NoError(t, runPipelineCmd(runCommand, nil))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	var report types.CoverReport
	require.NoError(t, json.Unmarshal(content, &report))
	assert.Equal(t, 3, report.Count)
	assert.Equal(t, "lazy", report.Strategy)
}
