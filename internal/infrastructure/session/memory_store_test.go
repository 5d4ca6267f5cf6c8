package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebookstore/backend/internal/domain/cart"
	"github.com/ebookstore/backend/internal/domain/shared/valueobject"
)

func cartWithOneEntry(t *testing.T) *cart.Cart {
	c := cart.New()
	require.NoError(t, c.AddItem(uuid.New(), "Stored Book", "Author", valueobject.NewMoneyUSDFromFloat(9.99), 2))
	return c
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(30 * time.Minute)

	t.Run("missing session yields an empty cart", func(t *testing.T) {
		c, err := store.Get(ctx, "nope")
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("put then get returns the stored cart", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "s1", cartWithOneEntry(t)))

		c, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, c.Entries, 1)
		assert.Equal(t, "Stored Book", c.Entries[0].Title)
		assert.Equal(t, 1, c.ItemCount)
	})

	t.Run("remove deletes the cart", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "s2", cartWithOneEntry(t)))
		require.NoError(t, store.Remove(ctx, "s2"))

		c, err := store.Get(ctx, "s2")
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(30 * time.Minute)

	require.NoError(t, store.Put(ctx, "s1", cartWithOneEntry(t)))

	// Mutating a returned cart must not leak into the store
	c, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	c.Clear()

	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, again.Entries, 1)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(30 * time.Minute)

	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Put(ctx, "s1", cartWithOneEntry(t)))

	t.Run("cart survives within the idle window", func(t *testing.T) {
		current = current.Add(29 * time.Minute)
		c, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, c.Entries, 1)
	})

	t.Run("put refreshes the idle expiry", func(t *testing.T) {
		c, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		require.NoError(t, store.Put(ctx, "s1", c))

		current = current.Add(29 * time.Minute)
		c, err = store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, c.Entries, 1)
	})

	t.Run("idle cart expires", func(t *testing.T) {
		current = current.Add(31 * time.Minute)
		c, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})
}
