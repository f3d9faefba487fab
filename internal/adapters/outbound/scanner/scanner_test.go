package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ntbtools/glbcheck/internal/adapters/outbound/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		p := filepath.Join(root, filepath.FromSlash(r))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestFileScanner_FindsModelsSorted(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "zebra.glb", "furniture/chair.glb", "apple.glb", "readme.md", "furniture/chair.gltf")

	models, err := scanner.New().FindModels(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple.glb", "furniture/chair.glb", "zebra.glb"}, rel(t, root, models))
}

func TestFileScanner_ExtensionCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "LOUD.GLB", "quiet.glb")

	models, err := scanner.New().FindModels(root, ".glb")
	require.NoError(t, err)
	assert.Len(t, models, 2)
}

func TestFileScanner_CustomExtensions(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.glb", "b.vrm")

	models, err := scanner.New().FindModels(root, ".vrm")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.vrm"}, rel(t, root, models))
}

func TestFileScanner_ExcludesVendorAndGit(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "keep.glb", "node_modules/pkg/a.glb", ".git/objects/b.glb", "vendor/c.glb", ".glbcheck/d.glb")

	models, err := scanner.New().FindModels(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.glb"}, rel(t, root, models))
}

func TestFileScanner_CustomExcludeDirs(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "keep.glb", "drafts/wip.glb", "archive/old.glb")

	models, err := scanner.New("drafts", "archive/").FindModels(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.glb"}, rel(t, root, models))
}

func TestFileScanner_MissingBaseDir(t *testing.T) {
	_, err := scanner.New().FindModels(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileScanner_EmptyDir(t *testing.T) {
	models, err := scanner.New().FindModels(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, models)
}
