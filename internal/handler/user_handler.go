package handler

import (
	"net/http"

	"moviematrix/internal/models"
	"moviematrix/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler { return &UserHandler{svc: s} }

type userExistsResponse struct {
	Message    string  `json:"message"`
	InsertedID *string `json:"insertedId"`
}

// @Summary Register a user
// @Description Idempotent on email. Any other fields are stored as given.
// @Tags users
// @Accept json
// @Produce json
// @Param body body object true "profile with email"
// @Success 200 {object} userExistsResponse
// @Success 201 {object} models.InsertResult
// @Failure 400 {object} messageResponse
// @Router /users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	profile := map[string]any{}
	if err := decodeJSON(r, &profile); err != nil {
		writeError(w, r, err)
		return
	}

	id, created, err := h.svc.Register(r.Context(), profile)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, userExistsResponse{Message: "User already exists"})
		return
	}
	writeJSON(w, http.StatusCreated, models.InsertResult{Acknowledged: true, InsertedID: id.Hex()})
}
