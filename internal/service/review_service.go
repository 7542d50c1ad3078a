package service

import (
	"context"
	"errors"
	"time"

	"moviematrix/internal/cache"
	"moviematrix/internal/keylock"
	"moviematrix/internal/logging"
	"moviematrix/internal/metrics"
	"moviematrix/internal/models"
	"moviematrix/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewService owns reviews and keeps each movie's cached rating and
// reviewCount equal to the aggregate of its moderated reviews. Every
// mutation and its recompute run under the movie's key lock.
type ReviewService struct {
	reviews  ReviewStore
	movies   MovieStore
	locks    *keylock.Locker
	cache    ListCache
	notifier AggregateNotifier
	now      func() time.Time
}

type ReviewOption func(*ReviewService)

func WithNotifier(n AggregateNotifier) ReviewOption {
	return func(s *ReviewService) { s.notifier = n }
}

func WithReviewCache(c ListCache) ReviewOption {
	return func(s *ReviewService) { s.cache = c }
}

func WithClock(now func() time.Time) ReviewOption {
	return func(s *ReviewService) { s.now = now }
}

func NewReviewService(reviews ReviewStore, movies MovieStore, locks *keylock.Locker, opts ...ReviewOption) *ReviewService {
	s := &ReviewService{
		reviews: reviews,
		movies:  movies,
		locks:   locks,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores an auto-approved review and refreshes the movie aggregate.
// The movie must exist; the check runs under the same lock a movie delete
// takes, so a review cannot outlive its cascade.
func (s *ReviewService) Create(ctx context.Context, req *models.ReviewCreateRequest) (*models.Review, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	oid, err := parseID(req.MovieID, "movie")
	if err != nil {
		return nil, err
	}
	movieID := oid.Hex()

	unlock := s.locks.Lock(movieID)
	defer unlock()

	m, err := s.movies.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, newErr(ErrNotFound, "Movie not found")
	}

	existing, err := s.reviews.FindByMovieAndUser(ctx, movieID, req.UserEmail)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, newErr(ErrConflict, "You have already reviewed this movie")
	}

	rv := &models.Review{
		MovieID:   movieID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		UserEmail: req.UserEmail,
		UserName:  req.UserName,
		UserPhoto: req.UserPhoto,
		CreatedAt: s.now().UTC(),
		Moderated: true,
	}
	if err := s.reviews.Insert(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newErr(ErrConflict, "You have already reviewed this movie")
		}
		return nil, err
	}

	// the review is stored; a failed recompute is repaired by the next one
	_, _ = s.recompute(ctx, movieID)
	return rv, nil
}

// Update edits rating and/or comment of the caller's own review.
func (s *ReviewService) Update(ctx context.Context, id string, req *models.ReviewUpdateRequest) (int64, error) {
	oid, err := parseID(id, "review")
	if err != nil {
		return 0, err
	}
	if err := validate(req); err != nil {
		return 0, err
	}

	rv, err := s.owned(ctx, oid, req.UserEmail)
	if err != nil {
		return 0, err
	}

	unlock := s.locks.Lock(rv.MovieID)
	defer unlock()

	matched, modified, err := s.reviews.Update(ctx, oid, models.ReviewUpdate{
		Rating:    req.Rating,
		Comment:   req.Comment,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return 0, err
	}
	if matched == 0 {
		return 0, newErr(ErrNotFound, "Review not found")
	}

	_, _ = s.recompute(ctx, rv.MovieID)
	return modified, nil
}

// Delete removes the caller's own review. The movie falls back to 0/0 when
// it was the last moderated one.
func (s *ReviewService) Delete(ctx context.Context, id, email string) (int64, error) {
	oid, err := parseID(id, "review")
	if err != nil {
		return 0, err
	}
	if email == "" {
		return 0, newErr(ErrValidation, "email is required")
	}

	rv, err := s.owned(ctx, oid, email)
	if err != nil {
		return 0, err
	}

	unlock := s.locks.Lock(rv.MovieID)
	defer unlock()

	deleted, err := s.reviews.Delete(ctx, oid)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, newErr(ErrNotFound, "Review not found")
	}

	_, _ = s.recompute(ctx, rv.MovieID)
	return deleted, nil
}

// ListForMovie returns the moderated reviews of a movie, newest first.
func (s *ReviewService) ListForMovie(ctx context.Context, movieID string) ([]models.Review, error) {
	return s.reviews.FindModeratedByMovie(ctx, movieID)
}

func (s *ReviewService) ListByUser(ctx context.Context, email string) ([]models.Review, error) {
	if email == "" {
		return nil, newErr(ErrValidation, "email is required")
	}
	return s.reviews.FindByUser(ctx, email)
}

// Recompute rebuilds the aggregate of one movie from a full scan of its
// moderated reviews.
func (s *ReviewService) Recompute(ctx context.Context, movieID string) (models.RatingAggregate, error) {
	unlock := s.locks.Lock(movieID)
	defer unlock()
	return s.recompute(ctx, movieID)
}

func (s *ReviewService) owned(ctx context.Context, id primitive.ObjectID, email string) (*models.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, newErr(ErrNotFound, "Review not found")
	}
	if rv.UserEmail != email {
		return nil, newErr(ErrForbidden, "You can only modify your own reviews")
	}
	return rv, nil
}

// recompute must be called with the movie's lock held.
func (s *ReviewService) recompute(ctx context.Context, movieID string) (agg models.RatingAggregate, err error) {
	log := logging.Ctx(ctx)
	defer func() {
		metrics.RecordRecompute(err)
		if err != nil {
			log.Error().Err(err).Str("movieId", movieID).Msg("rating recompute failed")
		}
	}()

	reviews, err := s.reviews.FindModeratedByMovie(ctx, movieID)
	if err != nil {
		return agg, err
	}
	agg = AggregateRatings(movieID, reviews)

	oid, perr := primitive.ObjectIDFromHex(movieID)
	if perr != nil {
		log.Warn().Str("movieId", movieID).Msg("reviews reference a movie id that is not an ObjectID, aggregate not stored")
		return agg, nil
	}
	if err = s.movies.SetAggregate(ctx, oid, agg.Rating, agg.ReviewCount); err != nil {
		return agg, err
	}

	if s.cache != nil {
		if cerr := s.cache.Delete(ctx, cache.KeyTopRated, cache.KeyRecent); cerr != nil {
			log.Warn().Err(cerr).Msg("cache invalidation failed")
		}
	}
	if s.notifier != nil {
		s.notifier.RatingUpdated(agg)
	}

	log.Debug().Str("movieId", movieID).Float64("rating", agg.Rating).Int("reviewCount", agg.ReviewCount).Msg("rating recomputed")
	return agg, nil
}

func parseID(id, what string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, newErr(ErrValidation, "invalid %s id", what)
	}
	return oid, nil
}
