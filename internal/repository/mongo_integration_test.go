//go:build integration

package repository_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"moviematrix/internal/config"
	"moviematrix/internal/db"
	"moviematrix/internal/models"
	"moviematrix/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
)

func skipIfNoDocker(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// startMongo runs a throwaway mongo:7 and returns a database with the
// production indexes in place.
func startMongo(t *testing.T) *mongo.Database {
	t.Helper()
	skipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("27017/tcp"),
				wait.ForLog("Waiting for connections"),
			),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	cfg := &config.Config{
		MongoURI: "mongodb://" + host + ":" + port.Port() + "/?directConnection=true",
		MongoDB:  config.DatabaseName,
	}
	client, database, err := db.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	require.NoError(t, db.EnsureIndexes(ctx, database))
	return database
}

func TestMongo_Repositories(t *testing.T) {
	database := startMongo(t)
	ctx := context.Background()

	movies := repository.NewMovieRepository(database)
	reviews := repository.NewReviewRepository(database)
	watchlist := repository.NewWatchlistRepository(database)
	users := repository.NewUserRepository(database)

	t.Run("movie queries", func(t *testing.T) {
		for _, m := range []models.Movie{
			{Title: "The Dark Knight", Genre: "Action", Rating: 9},
			{Title: "Dark City", Genre: "Sci-Fi", Rating: 7},
			{Title: "Amelie", Genre: "Romance", Rating: 8.3, AddedBy: "a@example.com"},
		} {
			m := m
			_, err := movies.Insert(ctx, &m)
			require.NoError(t, err)
		}

		got, err := movies.Find(ctx, models.MovieQuery{TitleContains: "dark"})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		lo, hi := 7.0, 8.3
		got, err = movies.Find(ctx, models.MovieQuery{MinRating: &lo, MaxRating: &hi})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = movies.Find(ctx, models.MovieQuery{Genres: []string{"sci-fi", "ROMANCE"}})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = movies.Find(ctx, models.MovieQuery{Sort: models.SortRatingDesc, Limit: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "The Dark Knight", got[0].Title)

		got, err = movies.Find(ctx, models.MovieQuery{Sort: models.SortNewest, Limit: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Amelie", got[0].Title)

		none, err := movies.Find(ctx, models.MovieQuery{AddedBy: "nobody@example.com"})
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("partial update and aggregate", func(t *testing.T) {
		m := &models.Movie{Title: "Heat", Genre: "Crime", Rating: 5, Director: "Michael Mann"}
		id, err := movies.Insert(ctx, m)
		require.NoError(t, err)

		matched, modified, err := movies.Update(ctx, id, map[string]any{"title": "Heat (1995)"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, matched)
		assert.EqualValues(t, 1, modified)

		require.NoError(t, movies.SetAggregate(ctx, id, 7.5, 2))

		stored, err := movies.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "Heat (1995)", stored.Title)
		assert.Equal(t, "Michael Mann", stored.Director)
		assert.Equal(t, 7.5, stored.Rating)
		assert.Equal(t, 2, stored.ReviewCount)
	})

	t.Run("review uniqueness and moderation", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Millisecond)
		require.NoError(t, reviews.Insert(ctx, &models.Review{MovieID: "m1", Rating: 8, UserEmail: "a@example.com", CreatedAt: now, Moderated: true}))
		require.NoError(t, reviews.Insert(ctx, &models.Review{MovieID: "m1", Rating: 6, UserEmail: "b@example.com", CreatedAt: now.Add(time.Second), Moderated: true}))
		require.NoError(t, reviews.Insert(ctx, &models.Review{MovieID: "m1", Rating: 1, UserEmail: "c@example.com", CreatedAt: now, Moderated: false}))

		err := reviews.Insert(ctx, &models.Review{MovieID: "m1", Rating: 2, UserEmail: "a@example.com", Moderated: true})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		list, err := reviews.FindModeratedByMovie(ctx, "m1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "b@example.com", list[0].UserEmail)

		n, err := reviews.DeleteByMovie(ctx, "m1")
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)
	})

	t.Run("watchlist and users", func(t *testing.T) {
		require.NoError(t, watchlist.Insert(ctx, &models.WatchlistEntry{Email: "a@example.com", MovieID: "m1", AddedAt: time.Now()}))
		err := watchlist.Insert(ctx, &models.WatchlistEntry{Email: "a@example.com", MovieID: "m1", AddedAt: time.Now()})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		n, err := watchlist.CountByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		_, err = users.Insert(ctx, &models.UserDoc{Email: "a@example.com", Profile: map[string]any{"name": "Ann"}})
		require.NoError(t, err)
		_, err = users.Insert(ctx, &models.UserDoc{Email: "a@example.com"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		u, err := users.FindByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "Ann", u.Profile["name"])

		missing, err := users.FindByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}
