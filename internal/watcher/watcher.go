package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher collects change notifications and triggers a single callback
// after a quiet period.
type FileWatcher struct {
	debounceDelay time.Duration

	timer        *time.Timer
	timerMu      sync.Mutex
	pendingPaths map[string]struct{}
	stopped      bool

	// Callback when changes are ready
	onChange func([]string)
}

// NewWatcher creates a file watcher with the specified debounce delay.
// The onChange callback is called with the changed paths, sorted.
func NewWatcher(debounceDelay time.Duration, onChange func([]string)) *FileWatcher {
	return &FileWatcher{
		debounceDelay: debounceDelay,
		pendingPaths:  make(map[string]struct{}),
		onChange:      onChange,
	}
}

// FileChanged notifies the watcher of a file change.
// Multiple rapid calls are debounced into a single onChange callback.
func (w *FileWatcher) FileChanged(path string) {
	w.FilesChanged([]string{path})
}

// FilesChanged notifies the watcher of multiple file changes.
func (w *FileWatcher) FilesChanged(paths []string) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.stopped {
		return
	}

	added := false
	for _, path := range paths {
		if !shouldIgnore(path) {
			w.pendingPaths[path] = struct{}{}
			added = true
		}
	}
	if !added {
		return
	}

	// Reset timer
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.processPending)
}

// Stop drops pending changes. No callback runs after Stop returns, unless one
// was already running.
func (w *FileWatcher) Stop() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pendingPaths = make(map[string]struct{})
}

// processPending is called after debounce delay.
func (w *FileWatcher) processPending() {
	w.timerMu.Lock()
	if w.stopped {
		w.timerMu.Unlock()
		return
	}

	paths := make([]string, 0, len(w.pendingPaths))
	for path := range w.pendingPaths {
		paths = append(paths, path)
	}
	w.pendingPaths = make(map[string]struct{})
	w.timer = nil

	w.timerMu.Unlock()

	// Trigger callback (outside lock)
	if len(paths) > 0 && w.onChange != nil {
		slices.Sort(paths)
		w.onChange(paths)
	}
}

// shouldIgnore filters editor swap and backup files.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasSuffix(base, "~") {
		return true
	}
	switch filepath.Ext(base) {
	case ".tmp", ".swp", ".swo", ".swx":
		return true
	}
	return false
}

// Watch feeds fsnotify events about files into w until ctx is done. The parent
// directories are watched rather than the files, so a file replaced by rename
// is still followed.
func Watch(ctx context.Context, w *FileWatcher, files ...string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	wanted := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		wanted[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !wanted[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.FileChanged(event.Name)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("file watcher error", "error", err)
		}
	}
}
