package history_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hazyhaar/wordcalc/pkg/history"
	"github.com/hazyhaar/wordcalc/pkg/history/historytest"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newMiniredis(t)
	historytest.RunStoreContract(t, history.NewRedisStoreFromClient(client))
}

func TestRedisStore_Key(t *testing.T) {
	mr, client := newMiniredis(t)
	ctx := context.Background()

	store := history.NewRedisStoreFromClient(client, history.WithKey("custom:log"))
	require.NoError(t, store.Append(ctx, history.Record{Input: "1 plus 1", Expression: "1 + 1", Outcome: "2"}))

	assert.True(t, mr.Exists("custom:log"), "expected list under the custom key")
	assert.False(t, mr.Exists(history.DefaultRedisKey))

	items, err := mr.List("custom:log")
	require.NoError(t, err)
	assert.JSONEq(t, `{"input":"1 plus 1","expression":"1 + 1","outcome":"2"}`, items[0])

	require.NoError(t, store.Clear(ctx))
	assert.False(t, mr.Exists("custom:log"))
}

func TestRedisStore_CorruptRecord(t *testing.T) {
	mr, client := newMiniredis(t)
	_, err := mr.Push(history.DefaultRedisKey, "not json")
	require.NoError(t, err)

	_, err = history.NewRedisStoreFromClient(client).List(context.Background())
	assert.Error(t, err)
}

func TestRedisStore_Ping(t *testing.T) {
	mr, client := newMiniredis(t)
	store := history.NewRedisStoreFromClient(client)
	require.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
