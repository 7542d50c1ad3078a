package service

import (
	"context"
	"errors"
	"strings"

	"moviematrix/internal/models"
	"moviematrix/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Register is idempotent on email. created is false, with a nil id, when the
// email was already registered; nothing is written in that case.
func (s *UserService) Register(ctx context.Context, profile map[string]any) (id primitive.ObjectID, created bool, err error) {
	email, _ := profile["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		return primitive.NilObjectID, false, newErr(ErrValidation, "email is required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	if existing != nil {
		return primitive.NilObjectID, false, nil
	}

	rest := make(map[string]any, len(profile))
	for k, v := range profile {
		if k == "email" || k == "_id" {
			continue
		}
		rest[k] = v
	}

	id, err = s.users.Insert(ctx, &models.UserDoc{Email: email, Profile: rest})
	if err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, repository.ErrDuplicate) {
			return primitive.NilObjectID, false, nil
		}
		return primitive.NilObjectID, false, err
	}
	return id, true, nil
}
