package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTargets(t *testing.T) {
	content := "# starting kit\nminecraft:stick\n\n  minecraft:string  \nminecraft:coal # fuel\n#minecraft:diamond\n"
	path := filepath.Join(t.TempDir(), "targets.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	targets, err := LoadTargets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"minecraft:stick", "minecraft:string", "minecraft:coal"}, targets)
}

func TestLoadTargets_OnlyComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.txt")
	require.NoError(t, os.WriteFile(path, []byte("# nothing here\n\n"), 0644))

	_, err := LoadTargets(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lists no items")
}

func TestLoadTargets_Missing(t *testing.T) {
	_, err := LoadTargets(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open targets file")
}
