package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Discovery:
// - Include patterns match both nested and root-level files
// - Ignore patterns skip files and whole directories
// - Golden files and unsupported extensions are excluded
// - Results come back sorted

func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, rel := range paths {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("fn f() {}\n"), 0o644))
	}
}

// Test: nested and root files match, noise is excluded
func TestDiscovery_Discover(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root,
		"lib.rs",
		"src/parser.rs",
		"src/util.py",
		"src/parser.rs.symbols",
		"docs/readme.md",
		"vendor/dep.rs",
	)

	d, err := NewDiscovery(root, []string{"**/*.rs", "**/*.py"}, []string{"vendor/**"}, ".symbols")
	require.NoError(t, err)

	files, err := d.Discover()
	require.NoError(t, err)

	want := []string{
		filepath.Join(root, "lib.rs"),
		filepath.Join(root, "src", "parser.rs"),
		filepath.Join(root, "src", "util.py"),
	}
	assert.Equal(t, want, files)
}

// Test: ignore patterns prune whole directories
func TestDiscovery_IgnoresDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root,
		"keep/a.rs",
		"node_modules/dep/index.ts",
	)

	d, err := NewDiscovery(root, []string{"**/*.rs", "**/*.ts"}, []string{"node_modules/**"}, ".symbols")
	require.NoError(t, err)

	files, err := d.Discover()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "keep", "a.rs")}, files)
}

// Test: invalid glob patterns fail construction
func TestDiscovery_BadPattern(t *testing.T) {
	t.Parallel()

	_, err := NewDiscovery(t.TempDir(), []string{"[unclosed"}, nil, ".symbols")
	require.Error(t, err)
}
