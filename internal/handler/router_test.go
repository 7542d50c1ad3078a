package handler_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviematrix/internal/handler"
	"moviematrix/internal/keylock"
	"moviematrix/internal/models"
	"moviematrix/internal/realtime"
	"moviematrix/internal/service"
	"moviematrix/internal/service/servicetest"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	stores *servicetest.Stores
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st := servicetest.NewStores()
	locks := keylock.New()
	c := servicetest.NewMapCache()
	hub := realtime.NewHub()

	svc := handler.Services{
		Movies:    service.NewMovieService(st.Movies, st.Reviews, locks, c),
		Reviews:   service.NewReviewService(st.Reviews, st.Movies, locks, service.WithNotifier(hub), service.WithReviewCache(c)),
		Watchlist: service.NewWatchlistService(st.Watchlist, st.Movies),
		Users:     service.NewUserService(st.Users),
		Stats:     service.NewStatsService(st.Movies, st.Users, st.Reviews),
		Hub:       hub,
	}
	return &testServer{
		t:      t,
		stores: st,
		router: handler.NewRouter(svc, handler.RouterConfig{}),
	}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) createMovie(title, genre string, rating float64) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/movies", map[string]any{"title": title, "genre": genre, "rating": rating})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[models.InsertResult](s.t, rec)
	require.True(s.t, res.Acknowledged)
	return res.InsertedID
}

func TestRoot(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Movie Matrix Server Is running", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDPassthrough(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/movies", nil)
	req.Header.Set("Origin", "https://frontend.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodGet, "/movies", nil)

	rec := s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "moviematrix_http_requests_total")
}

func TestRateLimit(t *testing.T) {
	st := servicetest.NewStores()
	locks := keylock.New()
	router := handler.NewRouter(handler.Services{
		Movies: service.NewMovieService(st.Movies, st.Reviews, locks, nil),
	}, handler.RouterConfig{RateLimitRPM: 2})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
