// Package compliance holds the behavior every store.KV implementation must share.
package compliance

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/studytrack/internal/store"
)

// Run runs the KV contract tests. setup returns a fresh, empty store and a
// teardown func.
func Run(t *testing.T, setup func() (store.KV, func())) {
	t.Run("MissingKey", func(t *testing.T) {
		kv, teardown := setup()
		defer teardown()

		_, err := kv.Get(uuid.NewString())
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("SetThenGet", func(t *testing.T) {
		kv, teardown := setup()
		defer teardown()

		require.NoError(t, kv.Set("learning_goals", []byte(`[{"title":"Go"}]`)))
		got, err := kv.Get("learning_goals")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"title":"Go"}]`, string(got))
	})

	t.Run("Overwrite", func(t *testing.T) {
		kv, teardown := setup()
		defer teardown()

		require.NoError(t, kv.Set("k", []byte("one")))
		require.NoError(t, kv.Set("k", []byte("two")))
		got, err := kv.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "two", string(got))
	})

	t.Run("ReturnedValueIsACopy", func(t *testing.T) {
		kv, teardown := setup()
		defer teardown()

		value := []byte("abc")
		require.NoError(t, kv.Set("k", value))
		value[0] = 'x'

		got, err := kv.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))

		got[1] = 'y'
		again, err := kv.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})

	t.Run("ConcurrentWriters", func(t *testing.T) {
		kv, teardown := setup()
		defer teardown()

		var wg sync.WaitGroup
		for i := range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, kv.Set(fmt.Sprintf("key-%d", i), []byte{byte(i)}))
			}()
		}
		wg.Wait()

		for i := range 10 {
			got, err := kv.Get(fmt.Sprintf("key-%d", i))
			require.NoError(t, err)
			assert.Equal(t, []byte{byte(i)}, got)
		}
	})
}
