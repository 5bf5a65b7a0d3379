package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/craft-cover/internal/candidates"
	"github.com/jonathan/craft-cover/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBuildFlags(t *testing.T, out string) {
	t.Helper()
	buildRecipesDir = fixtureRecipes()
	buildTagsDir = fixtureTags()
	buildTargets = nil
	buildTargetsFile = fixtureTargets()
	buildOutput = out
	buildStrict = false
	buildMaxCombinations = 0
	buildWorkers = 4
}

func TestBuildCandidatesCommand_ValidInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "candidates.json")
	setBuildFlags(t, out)

	require.NoError(t, runBuildCandidates(nil, nil))

	content, err := os.ReadFile(out)
	require.NoError(t, err)

	var set types.CandidateSet
	require.NoError(t, json.Unmarshal(content, &set))
	assert.Equal(t, types.NewItemSet("minecraft:cobblestone", "minecraft:oak_planks", "minecraft:stick", "minecraft:string"), set.Universe)
	assert.Len(t, set.Candidates, 3)
	assert.Equal(t, 3, set.Makeup["minecraft:stick"])
	require.NotNil(t, set.Stats)
	assert.Equal(t, 3, set.Stats.NonDominated)
}

func TestBuildCandidatesCommand_ExplicitTargets(t *testing.T) {
	out := filepath.Join(t.TempDir(), "candidates.json")
	setBuildFlags(t, out)
	buildTargetsFile = ""
	buildTargets = []string{"minecraft:stick", "minecraft:cobblestone"}
	buildStrict = true

	require.NoError(t, runBuildCandidates(nil, nil))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	var set types.CandidateSet
	require.NoError(t, json.Unmarshal(content, &set))
	assert.Equal(t, types.NewItemSet("minecraft:cobblestone", "minecraft:stick"), set.Universe)
}

func TestBuildCandidatesCommand_CombinationLimit(t *testing.T) {
	setBuildFlags(t, filepath.Join(t.TempDir(), "candidates.json"))
	buildMaxCombinations = 1

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "door.json"),
		[]byte(`{"type": "minecraft:crafting_shapeless", "ingredients": [["minecraft:stick", "minecraft:string"], ["minecraft:stick", "minecraft:string"]]}`), 0644))
	buildRecipesDir = dir

	err := runBuildCandidates(nil, nil)
	var limitErr *candidates.CombinationLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 4, limitErr.Combinations)
}

func TestBuildCandidatesCommand_MissingRecipesDir(t *testing.T) {
	setBuildFlags(t, filepath.Join(t.TempDir(), "candidates.json"))
	buildRecipesDir = filepath.Join(t.TempDir(), "missing")

	err := runBuildCandidates(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipes directory not found")
}

func TestBuildCandidatesCommand_ConflictingTargets(t *testing.T) {
	setBuildFlags(t, filepath.Join(t.TempDir(), "candidates.json"))
	buildTargets = []string{"minecraft:stick"}

	err := runBuildCandidates(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}
