package service_test

import (
	"context"
	"testing"
	"time"

	"moviematrix/internal/keylock"
	"moviematrix/internal/models"
	"moviematrix/internal/service"
	"moviematrix/internal/service/servicetest"

	"github.com/stretchr/testify/require"
)

var (
	_ service.MovieStore     = (*servicetest.Movies)(nil)
	_ service.ReviewStore    = (*servicetest.Reviews)(nil)
	_ service.WatchlistStore = (*servicetest.Watchlist)(nil)
	_ service.UserStore      = (*servicetest.Users)(nil)
	_ service.ListCache      = (*servicetest.MapCache)(nil)
)

type fixture struct {
	stores   *servicetest.Stores
	cache    *servicetest.MapCache
	notifier *servicetest.Notifier
	reviews  *service.ReviewService
	movies   *service.MovieService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := servicetest.NewStores()
	c := servicetest.NewMapCache()
	n := &servicetest.Notifier{}
	locks := keylock.New()

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	return &fixture{
		stores:   st,
		cache:    c,
		notifier: n,
		reviews: service.NewReviewService(st.Reviews, st.Movies, locks,
			service.WithNotifier(n),
			service.WithReviewCache(c),
			service.WithClock(tick),
		),
		movies: service.NewMovieService(st.Movies, st.Reviews, locks, c),
	}
}

func (f *fixture) addMovie(t *testing.T, title, genre string, rating float64) string {
	t.Helper()
	id, err := f.movies.Create(context.Background(), &models.MovieCreateRequest{
		Title:  title,
		Genre:  genre,
		Rating: rating,
	})
	require.NoError(t, err)
	return id.Hex()
}

func (f *fixture) addReview(t *testing.T, movieID, email string, rating float64) *models.Review {
	t.Helper()
	rv, err := f.reviews.Create(context.Background(), &models.ReviewCreateRequest{
		MovieID:   movieID,
		Rating:    rating,
		UserEmail: email,
	})
	require.NoError(t, err)
	return rv
}

func (f *fixture) movie(t *testing.T, id string) models.Movie {
	t.Helper()
	d, err := f.movies.Get(context.Background(), id)
	require.NoError(t, err)
	return d.Movie
}

func ptr[T any](v T) *T { return &v }
