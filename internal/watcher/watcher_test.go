package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
	ch    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan struct{}, 16)}
}

func (r *recorder) onChange(paths []string) {
	r.mu.Lock()
	r.calls = append(r.calls, paths)
	r.mu.Unlock()
	r.ch <- struct{}{}
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.ch:
	case <-time.After(3 * time.Second):
		t.Fatal("onChange was not called")
	}
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func TestFileWatcher_Debounces(t *testing.T) {
	rec := newRecorder()
	w := NewWatcher(20*time.Millisecond, rec.onChange)
	defer w.Stop()

	w.FileChanged("b.json")
	w.FileChanged("a.json")
	w.FileChanged("b.json")
	w.FileChanged("db.json.swp")
	rec.wait(t)

	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"a.json", "b.json"}, calls[0])
}

func TestFileWatcher_IgnoredOnly(t *testing.T) {
	rec := newRecorder()
	w := NewWatcher(5*time.Millisecond, rec.onChange)
	defer w.Stop()

	w.FilesChanged([]string{"x.tmp", "db.json~"})
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestFileWatcher_StopDropsPending(t *testing.T) {
	rec := newRecorder()
	w := NewWatcher(20*time.Millisecond, rec.onChange)

	w.FileChanged("db.json")
	w.Stop()
	w.FileChanged("db.json")
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestWatch_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "db.json")
	other := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(seed, []byte(`{"products":[]}`), 0o644))

	rec := newRecorder()
	w := NewWatcher(20*time.Millisecond, rec.onChange)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, w, seed) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(seed, []byte(`{"products":[{"id":1}]}`), 0o644))
	rec.wait(t)

	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{seed}, calls[0])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	w := NewWatcher(time.Millisecond, nil)
	err := Watch(context.Background(), w, filepath.Join(t.TempDir(), "nope", "db.json"))
	assert.Error(t, err)
}
