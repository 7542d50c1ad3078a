package service_test

import (
	"context"
	"testing"

	"moviematrix/internal/models"
	"moviematrix/internal/service"
	"moviematrix/internal/service/servicetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchlistService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := service.NewWatchlistService(f.stores.Watchlist, f.stores.Movies)

	heat := f.addMovie(t, "Heat", "Crime", 8)
	alien := f.addMovie(t, "Alien", "Horror", 9)

	_, err := svc.Add(ctx, &models.WatchlistAddRequest{Email: "a@example.com", MovieID: heat})
	require.NoError(t, err)
	_, err = svc.Add(ctx, &models.WatchlistAddRequest{Email: "a@example.com", MovieID: alien})
	require.NoError(t, err)

	t.Run("duplicate add conflicts", func(t *testing.T) {
		_, err := svc.Add(ctx, &models.WatchlistAddRequest{Email: "a@example.com", MovieID: heat})
		assert.ErrorIs(t, err, service.ErrConflict)
		assert.EqualError(t, err, "Movie already in watchlist")
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Add(ctx, &models.WatchlistAddRequest{Email: "a@example.com"})
		assert.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("list resolves movies", func(t *testing.T) {
		got, err := svc.List(ctx, "a@example.com")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Heat", "Alien"}, titles(got))

		n, err := svc.Count(ctx, "a@example.com")
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
	})

	t.Run("remove", func(t *testing.T) {
		n, err := svc.Remove(ctx, "a@example.com", heat)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		_, err = svc.Remove(ctx, "a@example.com", heat)
		assert.ErrorIs(t, err, service.ErrNotFound)
		assert.EqualError(t, err, "Movie not found in watchlist")
	})
}

func TestWatchlistService_SkipsInvalidIDs(t *testing.T) {
	st := servicetest.NewStores()
	ctx := context.Background()
	svc := service.NewWatchlistService(st.Watchlist, st.Movies)

	id, err := st.Movies.Insert(ctx, &models.Movie{Title: "Heat", Genre: "Crime"})
	require.NoError(t, err)

	for _, movieID := range []string{"garbage", id.Hex(), "65a1b2c3d4e5f60718293a4b"} {
		_, err := svc.Add(ctx, &models.WatchlistAddRequest{Email: "a@example.com", MovieID: movieID})
		require.NoError(t, err)
	}

	got, err := svc.List(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"Heat"}, titles(got))

	empty, err := svc.List(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.List(ctx, "")
	assert.ErrorIs(t, err, service.ErrValidation)
}
