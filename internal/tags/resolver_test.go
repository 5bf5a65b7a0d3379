package tags

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jonathan/craft-cover/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTags(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestResolve_PlainValues(t *testing.T) {
	dir := writeTags(t, map[string]string{
		"wool.json": `{"values": ["minecraft:white_wool", "minecraft:black_wool"]}`,
	})
	r := NewResolver(dir)

	items, err := r.Resolve("minecraft:wool")
	require.NoError(t, err)
	assert.Equal(t, []string{"minecraft:white_wool", "minecraft:black_wool"}, items)
}

func TestResolve_NestedTagsKeepOrderAndDedup(t *testing.T) {
	dir := writeTags(t, map[string]string{
		"logs.json":     `{"values": ["#minecraft:oak_logs", "minecraft:birch_log", "minecraft:oak_log"]}`,
		"oak_logs.json": `{"values": ["minecraft:oak_log", {"id": "minecraft:oak_wood", "required": false}]}`,
	})
	r := NewResolver(dir)

	items, err := r.Resolve("#minecraft:logs")
	require.NoError(t, err)
	assert.Equal(t, []string{"minecraft:oak_log", "minecraft:oak_wood", "minecraft:birch_log"}, items)
}

func TestResolve_SubdirectoryPath(t *testing.T) {
	dir := writeTags(t, map[string]string{
		"mineable/axe.json": `{"values": ["minecraft:oak_planks"]}`,
	})
	r := NewResolver(dir)

	assert.Equal(t, filepath.Join(dir, "mineable", "axe.json"), r.Path("minecraft:mineable/axe"))
	items, err := r.Resolve("minecraft:mineable/axe")
	require.NoError(t, err)
	assert.Equal(t, []string{"minecraft:oak_planks"}, items)
}

func TestResolve_MemoizesReads(t *testing.T) {
	dir := writeTags(t, map[string]string{
		"planks.json":     `{"values": ["#minecraft:oak_planks", "minecraft:birch_planks"]}`,
		"oak_planks.json": `{"values": ["minecraft:oak_planks"]}`,
		"wooden.json":     `{"values": ["#minecraft:planks", "#minecraft:oak_planks"]}`,
	})
	r := NewResolver(dir)

	_, err := r.Resolve("minecraft:planks")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Reads())

	// Namespace-less and namespaced names share a document.
	_, err = r.Resolve("planks")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Reads())

	items, err := r.Resolve("minecraft:wooden")
	require.NoError(t, err)
	assert.Equal(t, 3, r.Reads())
	assert.Equal(t, []string{"minecraft:oak_planks", "minecraft:birch_planks"}, items)
}

func TestResolve_Cycle(t *testing.T) {
	dir := writeTags(t, map[string]string{
		"a.json": `{"values": ["minecraft:stone", "#minecraft:b"]}`,
		"b.json": `{"values": ["#minecraft:c"]}`,
		"c.json": `{"values": ["#minecraft:a"]}`,
	})
	r := NewResolver(dir)

	_, err := r.Resolve("minecraft:a")
	require.Error(t, err)

	var cycleErr *CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []string{"minecraft:a", "minecraft:b", "minecraft:c", "minecraft:a"}, cycleErr.Path)
	assert.Contains(t, err.Error(), "minecraft:a -> minecraft:b")
}

func TestResolve_SelfReference(t *testing.T) {
	dir := writeTags(t, map[string]string{
		"loop.json": `{"values": ["#minecraft:loop"]}`,
	})
	r := NewResolver(dir)

	_, err := r.Resolve("minecraft:loop")
	var cycleErr *CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []string{"minecraft:loop", "minecraft:loop"}, cycleErr.Path)
}

func TestResolve_NotFound(t *testing.T) {
	dir := writeTags(t, map[string]string{
		"planks.json": `{"values": ["#minecraft:missing"]}`,
	})
	r := NewResolver(dir)

	_, err := r.Resolve("minecraft:planks")
	var notFound *TagNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "minecraft:missing", notFound.Tag)
	assert.Equal(t, filepath.Join(dir, "missing.json"), notFound.Path)
}

func TestResolve_MalformedDocuments(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "invalid json", content: `{"values": [`, wantMsg: "invalid JSON"},
		{name: "missing values", content: `{"entries": []}`, wantMsg: "could not find JSON array"},
		{name: "numeric value", content: `{"values": [5]}`, wantMsg: "unexpected value 5"},
		{name: "object without id", content: `{"values": [{"required": true}]}`, wantMsg: "unexpected value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeTags(t, map[string]string{"bad.json": tt.content})
			_, err := NewResolver(dir).Resolve("minecraft:bad")

			var resolveErr *ResolveError
			require.True(t, errors.As(err, &resolveErr))
			assert.Equal(t, "minecraft:bad", resolveErr.Tag)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestResolve_Strict(t *testing.T) {
	dir := writeTags(t, map[string]string{
		"empty_id.json": `{"values": [""]}`,
	})

	items, err := NewResolver(dir).Resolve("minecraft:empty_id")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, items)

	_, err = NewResolver(dir, WithStrict(true)).Resolve("minecraft:empty_id")
	require.Error(t, err)
	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestResolve_FailedResolutionIsNotCached(t *testing.T) {
	dir := writeTags(t, map[string]string{
		"planks.json": `{"values": ["#minecraft:oak_planks"]}`,
	})
	r := NewResolver(dir)

	_, err := r.Resolve("minecraft:planks")
	require.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "oak_planks.json"), []byte(`{"values": ["minecraft:oak_planks"]}`), 0644))
	items, err := r.Resolve("minecraft:planks")
	require.NoError(t, err)
	assert.Equal(t, []string{"minecraft:oak_planks"}, items)
}

func TestResolve_ConcurrentCallers(t *testing.T) {
	dir := writeTags(t, map[string]string{
		"planks.json": `{"values": ["minecraft:oak_planks", "minecraft:spruce_planks"]}`,
	})
	r := NewResolver(dir)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := r.Resolve("minecraft:planks")
			assert.NoError(t, err)
			assert.Len(t, items, 2)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, r.Reads())
}
