// internal/handler/movie_handler.go
package handler

import (
	"net/http"
	"strconv"

	"moviematrix/internal/models"
	"moviematrix/internal/service"
)

type MovieHandler struct {
	svc *service.MovieService
}

func NewMovieHandler(s *service.MovieService) *MovieHandler { return &MovieHandler{svc: s} }

// @Summary List movies
// @Tags movies
// @Produce json
// @Success 200 {array} models.Movie
// @Router /movies [get]
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	movies, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// @Summary Get movie with its reviews
// @Tags movies
// @Produce json
// @Param id path string true "movie id"
// @Success 200 {object} models.MovieDetail
// @Failure 400 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// @Summary Movies added by a user
// @Tags movies
// @Produce json
// @Param email query string true "owner email"
// @Success 200 {array} models.Movie
// @Router /my-movies [get]
func (h *MovieHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	movies, err := h.svc.ListByOwner(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// @Summary Top 5 movies by rating
// @Tags movies
// @Produce json
// @Success 200 {array} models.Movie
// @Router /movies-top-rated [get]
func (h *MovieHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	movies, err := h.svc.TopRated(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// @Summary Latest 6 movies
// @Tags movies
// @Produce json
// @Success 200 {array} models.Movie
// @Router /movies-recent [get]
func (h *MovieHandler) Recent(w http.ResponseWriter, r *http.Request) {
	movies, err := h.svc.Recent(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// @Summary Create movie
// @Tags movies
// @Accept json
// @Produce json
// @Param body body models.MovieCreateRequest true "movie"
// @Success 201 {object} models.InsertResult
// @Failure 400 {object} messageResponse
// @Router /movies [post]
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.MovieCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.InsertResult{Acknowledged: true, InsertedID: id.Hex()})
}

// @Summary Update movie fields
// @Description Only the supplied fields are changed. A rating is not applied while the movie has reviews.
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "movie id"
// @Param body body models.MovieUpdateRequest true "fields to change"
// @Success 200 {object} models.UpdateResult
// @Failure 400 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Failure 409 {object} messageResponse
// @Router /movies/{id} [put]
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.MovieUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := pathParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Delete movie and its reviews
// @Tags movies
// @Produce json
// @Param id path string true "movie id"
// @Success 200 {object} models.DeleteResult
// @Failure 404 {object} messageResponse
// @Router /movies/{id} [delete]
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	n, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.DeleteResult{Acknowledged: true, DeletedCount: n})
}

// @Summary Search movies by title
// @Tags movies
// @Produce json
// @Param query path string true "substring, case-insensitive"
// @Success 200 {array} models.Movie
// @Router /movies/search/{query} [get]
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	query, err := pathParam(r, "query")
	if err != nil {
		writeError(w, r, err)
		return
	}
	movies, err := h.svc.Search(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// @Summary Movies whose genre contains the text
// @Tags movies
// @Produce json
// @Param genre path string true "genre"
// @Success 200 {array} models.Movie
// @Router /movies/genre/{genre} [get]
func (h *MovieHandler) ByGenre(w http.ResponseWriter, r *http.Request) {
	genre, err := pathParam(r, "genre")
	if err != nil {
		writeError(w, r, err)
		return
	}
	movies, err := h.svc.ByGenre(r.Context(), genre)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// @Summary Movies in any of the genres
// @Tags movies
// @Accept json
// @Produce json
// @Param body body models.GenreFilterRequest true "genres"
// @Success 200 {array} models.Movie
// @Router /movies/filter/genres [post]
func (h *MovieHandler) FilterGenres(w http.ResponseWriter, r *http.Request) {
	var req models.GenreFilterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	movies, err := h.svc.FilterGenres(r.Context(), req.Genres)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// @Summary Movies in a rating range
// @Tags movies
// @Produce json
// @Param min query number false "lower bound (default 0)"
// @Param max query number false "upper bound (default 10)"
// @Success 200 {array} models.Movie
// @Failure 400 {object} messageResponse
// @Router /movies/filter/rating [get]
func (h *MovieHandler) FilterRating(w http.ResponseWriter, r *http.Request) {
	minRating, err := floatParam(r, "min")
	if err != nil {
		writeError(w, r, err)
		return
	}
	maxRating, err := floatParam(r, "max")
	if err != nil {
		writeError(w, r, err)
		return
	}

	movies, err := h.svc.FilterRating(r.Context(), minRating, maxRating)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// @Summary Genre set and rating range combined
// @Tags movies
// @Accept json
// @Produce json
// @Param body body models.AdvancedFilterRequest true "filter"
// @Success 200 {array} models.Movie
// @Router /movies/filter/advanced [post]
func (h *MovieHandler) FilterAdvanced(w http.ResponseWriter, r *http.Request) {
	var req models.AdvancedFilterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	movies, err := h.svc.FilterAdvanced(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// floatParam returns nil when the query parameter is absent.
func floatParam(r *http.Request, key string) (*float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &service.Error{Kind: service.ErrValidation, Msg: key + " must be a number"}
	}
	return &v, nil
}
