package filelock

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLock_SerializesCriticalSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
		counter int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := WithLock(path, func() error {
				mu.Lock()
				inside++
				maxSeen = max(maxSeen, inside)
				mu.Unlock()

				counter++

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, counter)
	assert.Equal(t, 1, maxSeen)
}

func TestWithLock_ReturnsCallbackError(t *testing.T) {
	boom := errors.New("boom")
	err := WithLock(filepath.Join(t.TempDir(), ".lock"), func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestLock_MissingDirectory(t *testing.T) {
	_, err := Lock(filepath.Join(t.TempDir(), "missing", ".lock"))
	require.Error(t, err)
}
