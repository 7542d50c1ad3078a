package handler

import (
	"net/http"

	"moviematrix/internal/models"
	"moviematrix/internal/service"
)

type ReviewHandler struct {
	svc *service.ReviewService
}

func NewReviewHandler(s *service.ReviewService) *ReviewHandler { return &ReviewHandler{svc: s} }

type reviewUpdatedResponse struct {
	Message       string `json:"message"`
	ModifiedCount int64  `json:"modifiedCount"`
}

type reviewDeletedResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// @Summary Approved reviews of a movie, newest first
// @Tags reviews
// @Produce json
// @Param movieId path string true "movie id"
// @Success 200 {array} models.Review
// @Router /reviews/{movieId} [get]
func (h *ReviewHandler) ListForMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathParam(r, "movieId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.svc.ListForMovie(r.Context(), movieID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// @Summary Reviews written by a user
// @Tags reviews
// @Produce json
// @Param email query string true "author email"
// @Success 200 {array} models.Review
// @Router /my-reviews [get]
func (h *ReviewHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListByUser(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// @Summary Submit a review
// @Description One review per movie and user. The movie rating is recomputed.
// @Tags reviews
// @Accept json
// @Produce json
// @Param body body models.ReviewCreateRequest true "review"
// @Success 201 {object} models.Review
// @Failure 400 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Failure 409 {object} messageResponse
// @Router /reviews [post]
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	rv, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

// @Summary Edit own review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "review id"
// @Param body body models.ReviewUpdateRequest true "changes"
// @Success 200 {object} reviewUpdatedResponse
// @Failure 400 {object} messageResponse
// @Failure 403 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Router /reviews/{id} [put]
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := pathParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	n, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewUpdatedResponse{Message: "Review updated", ModifiedCount: n})
}

// @Summary Delete own review
// @Tags reviews
// @Produce json
// @Param id path string true "review id"
// @Param email query string true "author email"
// @Success 200 {object} reviewDeletedResponse
// @Failure 400 {object} messageResponse
// @Failure 403 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	n, err := h.svc.Delete(r.Context(), id, r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewDeletedResponse{Message: "Review deleted", DeletedCount: n})
}
