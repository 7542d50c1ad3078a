package service

import (
	"context"

	"moviematrix/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Persistence contracts, satisfied by the Mongo repositories and by the
// in-memory stores in servicetest.

type MovieStore interface {
	Insert(ctx context.Context, m *models.Movie) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Movie, error)
	Find(ctx context.Context, q models.MovieQuery) ([]models.Movie, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (matched, modified int64, err error)
	SetAggregate(ctx context.Context, id primitive.ObjectID, rating float64, count int) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type ReviewStore interface {
	Insert(ctx context.Context, rv *models.Review) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	FindByMovieAndUser(ctx context.Context, movieID, email string) (*models.Review, error)
	FindModeratedByMovie(ctx context.Context, movieID string) ([]models.Review, error)
	FindByUser(ctx context.Context, email string) ([]models.Review, error)
	Update(ctx context.Context, id primitive.ObjectID, upd models.ReviewUpdate) (matched, modified int64, err error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteByMovie(ctx context.Context, movieID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type WatchlistStore interface {
	Find(ctx context.Context, email, movieID string) (*models.WatchlistEntry, error)
	Insert(ctx context.Context, e *models.WatchlistEntry) error
	Delete(ctx context.Context, email, movieID string) (int64, error)
	FindByEmail(ctx context.Context, email string) ([]models.WatchlistEntry, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.UserDoc, error)
	Insert(ctx context.Context, u *models.UserDoc) (primitive.ObjectID, error)
	Count(ctx context.Context) (int64, error)
}

// ListCache caches derived movie lists. *cache.Cache satisfies it, nil included.
type ListCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// AggregateNotifier is told about every recomputed movie rating.
type AggregateNotifier interface {
	RatingUpdated(agg models.RatingAggregate)
}
