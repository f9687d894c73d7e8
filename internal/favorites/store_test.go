package favorites_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"tastetrail/internal/favorites"
	"tastetrail/internal/restaurants"
)

func newStore() *favorites.Store {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return favorites.NewStore(nil, logger)
}

func TestAddPreservesOrderAndDeduplicates(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	store.Add(ctx, restaurants.Restaurant{ID: "a", Name: "First"})
	store.Add(ctx, restaurants.Restaurant{ID: "b", Name: "Second"})
	store.Add(ctx, restaurants.Restaurant{ID: "a", Name: "First again"})

	items := store.List()
	require.Len(t, items, 2)
	require.Equal(t, "a", items[0].ID)
	require.Equal(t, "First", items[0].Name)
	require.Equal(t, "b", items[1].ID)
}

func TestRemove(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	store.Add(ctx, restaurants.Restaurant{ID: "a"})
	store.Add(ctx, restaurants.Restaurant{ID: "b"})

	store.Remove(ctx, "a")

	items := store.List()
	require.Len(t, items, 1)
	require.Equal(t, "b", items[0].ID)
}

func TestRemoveAbsentIDIsNoOp(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	store.Add(ctx, restaurants.Restaurant{ID: "a"})
	store.Remove(ctx, "missing")

	items := store.List()
	require.Len(t, items, 1)
	require.Equal(t, "a", items[0].ID)
}

func TestListReturnsACopy(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	store.Add(ctx, restaurants.Restaurant{ID: "a", Name: "First"})

	items := store.List()
	items[0].Name = "mutated"

	require.Equal(t, "First", store.List()[0].Name)
}
