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

func TestUserService_RegisterIsIdempotent(t *testing.T) {
	st := servicetest.NewStores()
	ctx := context.Background()
	svc := service.NewUserService(st.Users)

	id, created, err := svc.Register(ctx, map[string]any{
		"email":    "ada@example.com",
		"name":     "Ada",
		"photoURL": "https://example.com/ada.png",
		"_id":      "client-supplied",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, id.IsZero())

	u, err := st.Users.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Ada", u.Profile["name"])
	assert.NotContains(t, u.Profile, "_id")
	assert.NotContains(t, u.Profile, "email")

	id, created, err = svc.Register(ctx, map[string]any{"email": "ada@example.com", "name": "Other"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, id.IsZero())

	n, err := st.Users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUserService_RegisterRequiresEmail(t *testing.T) {
	svc := service.NewUserService(servicetest.NewUsers())

	for _, profile := range []map[string]any{
		{},
		{"email": "   "},
		{"email": 42},
	} {
		_, _, err := svc.Register(context.Background(), profile)
		assert.ErrorIs(t, err, service.ErrValidation)
	}
}

func TestStatsService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := service.NewStatsService(f.stores.Movies, f.stores.Users, f.stores.Reviews)

	m := f.addMovie(t, "Heat", "Crime", 8)
	f.addMovie(t, "Alien", "Horror", 9)
	f.addReview(t, m, "a@example.com", 7)
	_, err := f.stores.Users.Insert(ctx, &models.UserDoc{Email: "a@example.com"})
	require.NoError(t, err)

	movies, err := svc.MoviesCount(ctx)
	require.NoError(t, err)
	users, err := svc.UsersCount(ctx)
	require.NoError(t, err)
	reviews, err := svc.ReviewsCount(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, movies)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 1, reviews)
}
