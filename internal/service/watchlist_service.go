package service

import (
	"context"
	"errors"
	"time"

	"moviematrix/internal/logging"
	"moviematrix/internal/models"
	"moviematrix/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WatchlistService struct {
	entries WatchlistStore
	movies  MovieStore
	now     func() time.Time
}

func NewWatchlistService(entries WatchlistStore, movies MovieStore) *WatchlistService {
	return &WatchlistService{entries: entries, movies: movies, now: time.Now}
}

func (s *WatchlistService) Add(ctx context.Context, req *models.WatchlistAddRequest) (primitive.ObjectID, error) {
	if err := validate(req); err != nil {
		return primitive.NilObjectID, err
	}

	existing, err := s.entries.Find(ctx, req.Email, req.MovieID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if existing != nil {
		return primitive.NilObjectID, newErr(ErrConflict, "Movie already in watchlist")
	}

	e := &models.WatchlistEntry{
		Email:   req.Email,
		MovieID: req.MovieID,
		AddedAt: s.now().UTC(),
	}
	if err := s.entries.Insert(ctx, e); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return primitive.NilObjectID, newErr(ErrConflict, "Movie already in watchlist")
		}
		return primitive.NilObjectID, err
	}
	return e.ID, nil
}

func (s *WatchlistService) Remove(ctx context.Context, email, movieID string) (int64, error) {
	if email == "" || movieID == "" {
		return 0, newErr(ErrValidation, "email and movieId are required")
	}

	deleted, err := s.entries.Delete(ctx, email, movieID)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, newErr(ErrNotFound, "Movie not found in watchlist")
	}
	return deleted, nil
}

// List resolves the user's entries to movie documents. Entries whose movieId
// is not a valid ObjectID are logged and skipped; ids with no movie simply
// do not match. Order is whatever the store returns.
func (s *WatchlistService) List(ctx context.Context, email string) ([]models.Movie, error) {
	if email == "" {
		return nil, newErr(ErrValidation, "email is required")
	}

	entries, err := s.entries.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(entries))
	for _, e := range entries {
		oid, err := primitive.ObjectIDFromHex(e.MovieID)
		if err != nil {
			logging.Ctx(ctx).Warn().
				Str("email", email).
				Str("movieId", e.MovieID).
				Msg("watchlist entry has an invalid movie id, skipping")
			continue
		}
		ids = append(ids, oid)
	}
	if len(ids) == 0 {
		return []models.Movie{}, nil
	}

	return s.movies.Find(ctx, models.MovieQuery{IDs: ids})
}

func (s *WatchlistService) Count(ctx context.Context, email string) (int64, error) {
	if email == "" {
		return 0, newErr(ErrValidation, "email is required")
	}
	return s.entries.CountByEmail(ctx, email)
}
