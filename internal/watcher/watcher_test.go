package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_DebouncesMatchingEvents(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w, err := New([]string{dir}, Options{Debounce: 50 * time.Millisecond, Exts: []string{".md"}}, func() {
		calls.Add(1)
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	for i := range 5 {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "001-task.md"), []byte{byte(i)}, 0o600))
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.EqualValues(t, 1, calls.Load())
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w, err := New([]string{dir}, Options{Debounce: 20 * time.Millisecond, Exts: []string{".md"}}, func() {
		calls.Add(1)
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "planner.db"), []byte("x"), 0o600))
	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "nope")}, Options{}, func() {})
	assert.Error(t, err)
}
