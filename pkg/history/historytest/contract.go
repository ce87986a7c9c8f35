// Package historytest holds the behaviour every history.Store must share.
package historytest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/hazyhaar/wordcalc/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreContract runs a suite of tests against store. The store must start
// empty; the suite leaves it cleared.
func RunStoreContract(t *testing.T, store history.Store) {
	ctx := context.Background()

	r1 := history.Record{Input: "два плюс три", Expression: "2 + 3", Outcome: "5"}
	r2 := history.Record{Input: "4 поделить на 0", Expression: "4 / 0", Outcome: "На ноль делить нельзя!"}

	t.Run("Empty", func(t *testing.T) {
		got, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Append preserves order", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, r1))
		require.NoError(t, store.Append(ctx, r2))

		got, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []history.Record{r1, r2}, got)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))

		got, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)

		// Clearing an empty store is fine.
		require.NoError(t, store.Clear(ctx))
	})

	t.Run("Append after Clear", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, r2))
		got, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []history.Record{r2}, got)
		require.NoError(t, store.Clear(ctx))
	})

	t.Run("Duplicates kept", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, r1))
		require.NoError(t, store.Append(ctx, r1))
		got, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		require.NoError(t, store.Clear(ctx))
	})

	t.Run("Concurrent appends", func(t *testing.T) {
		const writers, each = 8, 25
		var wg sync.WaitGroup
		for w := 0; w < writers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < each; i++ {
					r := history.Record{Input: fmt.Sprintf("%d-%d", w, i), Expression: "1 + 1", Outcome: "2"}
					assert.NoError(t, store.Append(ctx, r))
				}
			}(w)
		}
		wg.Wait()

		got, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, writers*each)

		// Each writer's records appear in the order it appended them.
		next := make(map[int]int)
		for _, r := range got {
			var w, i int
			_, err := fmt.Sscanf(r.Input, "%d-%d", &w, &i)
			require.NoError(t, err)
			assert.Equal(t, next[w], i, "writer %d out of order", w)
			next[w] = i + 1
		}
		require.NoError(t, store.Clear(ctx))
	})
}
