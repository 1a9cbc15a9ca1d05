package verify

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches fixture directories and invokes a callback with the
// changed files after a debounce quiet period, so a save burst triggers one
// re-verification instead of many.
type Watcher struct {
	watcher      *fsnotify.Watcher
	dirs         []string
	extensions   map[string]bool
	goldenSuffix string
	debounceTime time.Duration
	callback     func(files []string)

	ctx    context.Context
	cancel context.CancelFunc

	accumulated   map[string]bool
	accumulatedMu sync.Mutex
	debounceTimer *time.Timer
	timerMu       sync.Mutex
	stopOnce      sync.Once
	doneCh        chan struct{}
}

// NewWatcher creates a watcher over the given directories for the given
// extensions. Changes to golden files (goldenSuffix) also trigger the
// callback, since editing a golden changes the verification outcome.
func NewWatcher(dirs []string, extensions []string, goldenSuffix string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	extMap := make(map[string]bool)
	for _, ext := range extensions {
		extMap[ext] = true
	}

	w := &Watcher{
		watcher:      fsw,
		dirs:         dirs,
		extensions:   extMap,
		goldenSuffix: goldenSuffix,
		debounceTime: debounce,
		accumulated:  make(map[string]bool),
		doneCh:       make(chan struct{}),
	}

	for _, dir := range dirs {
		if err := w.addDirectoriesRecursively(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	return w, nil
}

// Start begins watching. The callback receives the accumulated changed
// files after each quiet period.
func (w *Watcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return nil
	}

	w.callback = callback
	w.ctx, w.cancel = context.WithCancel(ctx)

	go w.watch()
	return nil
}

// Stop stops watching. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.doneCh
		}
		w.watcher.Close()

		w.timerMu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.timerMu.Unlock()
	})
}

func (w *Watcher) addDirectoriesRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if info.Name() == ".git" || info.Name() == "node_modules" {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) watch() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	// New directories need to be added to the watch set.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addDirectoriesRecursively(event.Name)
			return
		}
	}

	if !w.relevant(event.Name) {
		return
	}

	w.accumulatedMu.Lock()
	w.accumulated[event.Name] = true
	w.accumulatedMu.Unlock()

	w.resetDebounceTimer()
}

func (w *Watcher) relevant(path string) bool {
	if w.goldenSuffix != "" && strings.HasSuffix(path, w.goldenSuffix) {
		return true
	}
	return w.extensions[filepath.Ext(path)]
}

func (w *Watcher) resetDebounceTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceTime, w.fireCallback)
}

func (w *Watcher) fireCallback() {
	if w.ctx.Err() != nil {
		return
	}

	w.accumulatedMu.Lock()
	files := make([]string, 0, len(w.accumulated))
	for f := range w.accumulated {
		files = append(files, f)
	}
	w.accumulated = make(map[string]bool)
	w.accumulatedMu.Unlock()

	if len(files) > 0 {
		w.callback(files)
	}
}
