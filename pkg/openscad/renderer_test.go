package openscad

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolveDependencies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scad"), `use <lib/walls.scad>
include <./floor.scad>
// use <ignored.scad>
corridor();
`)
	writeFile(t, filepath.Join(dir, "lib", "walls.scad"), "include <../floor.scad>\n")
	writeFile(t, filepath.Join(dir, "floor.scad"), "cube([8, 1, 1]);\n")

	deps, err := NewRenderer(dir).ResolveDependencies("main.scad")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "main.scad"),
		filepath.Join(dir, "lib", "walls.scad"),
		filepath.Join(dir, "floor.scad"),
	}, deps)
}

func TestResolveMissingDependency(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scad"), "use <missing.scad>\n")

	_, err := NewRenderer(dir).ResolveDependencies("main.scad")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderWithoutBinary(t *testing.T) {
	old := Binary
	Binary = "meshgraph-no-such-openscad"
	t.Cleanup(func() { Binary = old })

	assert.False(t, Available())
	_, err := NewRenderer(t.TempDir()).RenderToTemp(context.Background(), "main.scad")
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestRenderToSTL(t *testing.T) {
	if !Available() {
		t.Skip("openscad is not installed")
	}
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "box.scad"), "cube([2, 1, 1]);\n")

	path, err := NewRenderer(dir).RenderToTemp(context.Background(), "box.scad")
	require.NoError(t, err)
	defer os.Remove(path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
