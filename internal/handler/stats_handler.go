package handler

import (
	"context"
	"net/http"

	"moviematrix/internal/service"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(s *service.StatsService) *StatsHandler { return &StatsHandler{svc: s} }

// @Summary Number of movies
// @Tags stats
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /stats/movies-count [get]
func (h *StatsHandler) Movies(w http.ResponseWriter, r *http.Request) {
	h.count(w, r, "totalMovies", h.svc.MoviesCount)
}

// @Summary Number of users
// @Tags stats
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /stats/users-count [get]
func (h *StatsHandler) Users(w http.ResponseWriter, r *http.Request) {
	h.count(w, r, "totalUsers", h.svc.UsersCount)
}

// @Summary Number of reviews
// @Tags stats
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /stats/reviews-count [get]
func (h *StatsHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	h.count(w, r, "totalReviews", h.svc.ReviewsCount)
}

func (h *StatsHandler) count(w http.ResponseWriter, r *http.Request, key string, fn func(ctx context.Context) (int64, error)) {
	n, err := fn(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{key: n})
}
