package handler

import (
	"net/http"

	"moviematrix/internal/models"
	"moviematrix/internal/service"
)

type WatchlistHandler struct {
	svc *service.WatchlistService
}

func NewWatchlistHandler(s *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{svc: s}
}

type watchlistCountResponse struct {
	WatchlistCount int64 `json:"watchlistCount"`
}

// @Summary Movies on a user's watchlist
// @Tags watchlist
// @Produce json
// @Param email path string true "user email"
// @Success 200 {array} models.Movie
// @Router /watchlist/{email} [get]
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	email, err := pathParam(r, "email")
	if err != nil {
		writeError(w, r, err)
		return
	}
	movies, err := h.svc.List(r.Context(), email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// @Summary Add a movie to a watchlist
// @Tags watchlist
// @Accept json
// @Produce json
// @Param body body models.WatchlistAddRequest true "entry"
// @Success 201 {object} models.InsertResult
// @Failure 400 {object} messageResponse
// @Failure 409 {object} messageResponse
// @Router /watchlist [post]
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.WatchlistAddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.svc.Add(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.InsertResult{Acknowledged: true, InsertedID: id.Hex()})
}

// @Summary Remove a movie from a watchlist
// @Tags watchlist
// @Produce json
// @Param email path string true "user email"
// @Param movieId path string true "movie id"
// @Success 200 {object} models.DeleteResult
// @Failure 404 {object} messageResponse
// @Router /watchlist/{email}/{movieId} [delete]
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	email, err := pathParam(r, "email")
	if err != nil {
		writeError(w, r, err)
		return
	}
	movieID, err := pathParam(r, "movieId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	n, err := h.svc.Remove(r.Context(), email, movieID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.DeleteResult{Acknowledged: true, DeletedCount: n})
}

// @Summary Watchlist size
// @Tags stats
// @Produce json
// @Param email path string true "user email"
// @Success 200 {object} watchlistCountResponse
// @Router /stats/watchlist-count/{email} [get]
func (h *WatchlistHandler) Count(w http.ResponseWriter, r *http.Request) {
	email, err := pathParam(r, "email")
	if err != nil {
		writeError(w, r, err)
		return
	}
	n, err := h.svc.Count(r.Context(), email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, watchlistCountResponse{WatchlistCount: n})
}
