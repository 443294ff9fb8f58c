package statestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Minute)

	err := store.Put(ctx, "state-1", Data{Nonce: "nonce-1", ReturnTo: "/posts"})
	require.NoError(t, err)

	data, ok, err := store.Get(ctx, "state-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "nonce-1", data.Nonce)
	require.Equal(t, "/posts", data.ReturnTo)
	require.False(t, data.CreatedAt.IsZero())
}

func TestMemoryStoreUnknownState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Minute)

	_, ok, err := store.Get(ctx, "never-stored")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreExpiration(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Minute)

	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, "state-1", Data{Nonce: "n"}))

	store.now = func() time.Time { return now.Add(9 * time.Minute) }
	_, ok, err := store.Get(ctx, "state-1")
	require.NoError(t, err)
	require.True(t, ok)

	store.now = func() time.Time { return now.Add(11 * time.Minute) }
	_, ok, err = store.Get(ctx, "state-1")
	require.NoError(t, err)
	require.False(t, ok)

	// The expired entry must be gone even if the clock goes back.
	store.now = func() time.Time { return now }
	_, ok, err = store.Get(ctx, "state-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Minute)

	require.NoError(t, store.Put(ctx, "state-1", Data{Nonce: "n"}))
	require.NoError(t, store.Delete(ctx, "state-1"))

	_, ok, err := store.Get(ctx, "state-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreCleaner(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewMemoryStore(time.Millisecond)
	require.NoError(t, store.Put(ctx, "state-1", Data{Nonce: "n"}))

	store.StartCleaner(ctx, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := store.states.Load("state-1")
		return !ok
	}, time.Second, 5*time.Millisecond)
}
