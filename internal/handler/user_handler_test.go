package handler_test

import (
	"net/http"
	"testing"

	"moviematrix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_Register(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/users", map[string]any{"email": "ada@example.com", "name": "Ada"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[models.InsertResult](t, rec)
	assert.True(t, res.Acknowledged)
	assert.Len(t, res.InsertedID, 24)

	rec = s.do(http.MethodPost, "/users", map[string]any{"email": "ada@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User already exists","insertedId":null}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/users", map[string]any{"name": "nobody"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/users", `["not","an","object"]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStats(t *testing.T) {
	s := newTestServer(t)
	movieID := s.createMovie("Heat", "Crime", 8)
	s.createMovie("Alien", "Horror", 9)
	s.do(http.MethodPost, "/users", map[string]any{"email": "ada@example.com"})
	s.do(http.MethodPost, "/reviews", map[string]any{"movieId": movieID, "rating": 7, "userEmail": "ada@example.com"})

	for path, want := range map[string]string{
		"/stats/movies-count":  `{"totalMovies":2}`,
		"/stats/users-count":   `{"totalUsers":1}`,
		"/stats/reviews-count": `{"totalReviews":1}`,
	} {
		rec := s.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, want, rec.Body.String(), path)
	}
}
