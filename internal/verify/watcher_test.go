package verify

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Watcher:
// - Only watched extensions and golden files are relevant
// - A write burst fires the callback once with the changed files
// - Stop is safe to call more than once

func TestWatcher_Relevant(t *testing.T) {
	t.Parallel()

	w := &Watcher{
		extensions:   map[string]bool{".rs": true, ".py": true},
		goldenSuffix: ".symbols",
	}

	assert.True(t, w.relevant("src/lib.rs"))
	assert.True(t, w.relevant("app/main.py"))
	assert.True(t, w.relevant("src/lib.rs.symbols"))
	assert.False(t, w.relevant("README.md"))
	assert.False(t, w.relevant("src/lib.go"))
}

// Test: a burst of writes collapses into one callback
func TestWatcher_DebouncedCallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewWatcher([]string{dir}, []string{".rs"}, ".symbols", 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	changed := make(chan []string, 1)
	require.NoError(t, w.Start(context.Background(), func(files []string) {
		select {
		case changed <- files:
		default:
		}
	}))

	path := filepath.Join(dir, "lib.rs")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("fn f() {}\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case files := <-changed:
		assert.Contains(t, files, path)
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired")
	}
}

func TestWatcher_StopTwice(t *testing.T) {
	t.Parallel()

	w, err := NewWatcher([]string{t.TempDir()}, []string{".rs"}, ".symbols", time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), func([]string) {}))

	w.Stop()
	w.Stop()
}
