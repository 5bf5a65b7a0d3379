package recipes

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/craft-cover/internal/schemas"
	"github.com/jonathan/craft-cover/internal/types"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// defaultWorkers bounds concurrent file reads when LoadOptions.Workers is unset
const defaultWorkers = 8

// LoadOptions controls how a recipe directory is read.
type LoadOptions struct {
	Workers int  // concurrent file readers, 0 means defaultWorkers
	Strict  bool // validate crafting documents against the recipe schema
}

// LoadStats summarizes a directory load.
type LoadStats struct {
	Documents int `json:"documents"` // every *.json file read
	Crafting  int `json:"crafting"`  // shaped or shapeless recipes
	Skipped   int `json:"skipped"`   // other recipe types
}

// ListDir returns the *.json files directly inside dir, sorted by name.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Message: "failed to list directory", Cause: err}
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadDir reads every recipe document in dir and returns the crafting recipes
// in file-name order. Files are read concurrently; the first error cancels
// the rest.
func LoadDir(ctx context.Context, dir string, opts LoadOptions) ([]*types.Recipe, *LoadStats, error) {
	paths, err := ListDir(dir)
	if err != nil {
		return nil, nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	// Each worker writes only its own slot, so no locking is needed.
	loaded := make([]*types.Recipe, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			recipe, err := LoadFile(path, opts.Strict)
			if err != nil {
				return err
			}
			loaded[i] = recipe
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats := &LoadStats{Documents: len(paths)}
	recipes := make([]*types.Recipe, 0, len(paths))
	for _, r := range loaded {
		if r == nil {
			stats.Skipped++
			continue
		}
		recipes = append(recipes, r)
	}
	stats.Crafting = len(recipes)

	return recipes, stats, nil
}

// LoadFile reads one recipe document. It returns nil without error when the
// document is not a crafting-table recipe.
func LoadFile(path string, strict bool) (*types.Recipe, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	if !gjson.ValidBytes(content) {
		return nil, &LoadError{Path: path, Message: "invalid JSON"}
	}
	if !IsCrafting(content) {
		return nil, nil
	}

	if strict {
		if err := schemas.ValidateDocument(schemas.KindRecipe, path, content); err != nil {
			return nil, err
		}
	}

	id := strings.TrimSuffix(filepath.Base(path), ".json")
	return Parse(id, path, content)
}
