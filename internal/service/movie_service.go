// internal/service/movie_service.go
package service

import (
	"context"

	"moviematrix/internal/cache"
	"moviematrix/internal/keylock"
	"moviematrix/internal/logging"
	"moviematrix/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TopRatedLimit = 5
	RecentLimit   = 6

	MinRating = 0.0
	MaxRating = 10.0
)

type MovieService struct {
	movies  MovieStore
	reviews ReviewStore
	locks   *keylock.Locker
	cache   ListCache
}

// NewMovieService shares locks with the ReviewService so that a cascade
// delete never interleaves with a recompute of the same movie.
func NewMovieService(movies MovieStore, reviews ReviewStore, locks *keylock.Locker, c ListCache) *MovieService {
	return &MovieService{movies: movies, reviews: reviews, locks: locks, cache: c}
}

func (s *MovieService) List(ctx context.Context) ([]models.Movie, error) {
	return s.movies.Find(ctx, models.MovieQuery{})
}

// Get returns the movie with its moderated reviews and the live average.
func (s *MovieService) Get(ctx context.Context, id string) (*models.MovieDetail, error) {
	oid, err := parseID(id, "movie")
	if err != nil {
		return nil, err
	}

	m, err := s.movies.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, newErr(ErrNotFound, "Movie not found")
	}

	reviews, err := s.reviews.FindModeratedByMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	agg := AggregateRatings(id, reviews)

	return &models.MovieDetail{
		Movie:         *m,
		Reviews:       reviews,
		AverageRating: agg.Rating,
		ReviewCount:   agg.ReviewCount,
	}, nil
}

func (s *MovieService) ListByOwner(ctx context.Context, email string) ([]models.Movie, error) {
	if email == "" {
		return nil, newErr(ErrValidation, "email is required")
	}
	return s.movies.Find(ctx, models.MovieQuery{AddedBy: email})
}

func (s *MovieService) TopRated(ctx context.Context) ([]models.Movie, error) {
	return s.cachedList(ctx, cache.KeyTopRated, models.MovieQuery{Sort: models.SortRatingDesc, Limit: TopRatedLimit})
}

func (s *MovieService) Recent(ctx context.Context) ([]models.Movie, error) {
	return s.cachedList(ctx, cache.KeyRecent, models.MovieQuery{Sort: models.SortNewest, Limit: RecentLimit})
}

func (s *MovieService) cachedList(ctx context.Context, key string, q models.MovieQuery) ([]models.Movie, error) {
	log := logging.Ctx(ctx)

	var out []models.Movie
	if s.cache != nil {
		ok, err := s.cache.GetJSON(ctx, key, &out)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		if ok && out != nil {
			return out, nil
		}
	}

	out, err := s.movies.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, out); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return out, nil
}

func (s *MovieService) Create(ctx context.Context, req *models.MovieCreateRequest) (primitive.ObjectID, error) {
	if err := validate(req); err != nil {
		return primitive.NilObjectID, err
	}

	m := req.ToMovie()
	m.ReviewCount = 0
	id, err := s.movies.Insert(ctx, m)
	if err != nil {
		return primitive.NilObjectID, err
	}

	s.invalidate(ctx)
	return id, nil
}

// Update sets only the supplied allow-listed fields. While the movie has
// moderated reviews its rating belongs to the aggregate: a rating sent with
// other fields is dropped and listed in IgnoredFields, a rating sent alone
// is a conflict.
func (s *MovieService) Update(ctx context.Context, id string, req *models.MovieUpdateRequest) (models.UpdateResult, error) {
	oid, err := parseID(id, "movie")
	if err != nil {
		return models.UpdateResult{}, err
	}
	if err := validate(req); err != nil {
		return models.UpdateResult{}, err
	}

	fields := req.Fields()
	if len(fields) == 0 {
		return models.UpdateResult{}, newErr(ErrValidation, "no updatable fields supplied")
	}

	unlock := s.locks.Lock(oid.Hex())
	defer unlock()

	var ignored []string
	if _, ok := fields["rating"]; ok {
		reviews, err := s.reviews.FindModeratedByMovie(ctx, oid.Hex())
		if err != nil {
			return models.UpdateResult{}, err
		}
		if len(reviews) > 0 {
			if len(fields) == 1 {
				return models.UpdateResult{}, newErr(ErrConflict, "Rating is derived from reviews and cannot be set directly")
			}
			delete(fields, "rating")
			ignored = append(ignored, "rating")
		}
	}

	matched, modified, err := s.movies.Update(ctx, oid, fields)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if matched == 0 {
		return models.UpdateResult{}, newErr(ErrNotFound, "Movie not found")
	}

	s.invalidate(ctx)
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  matched,
		ModifiedCount: modified,
		IgnoredFields: ignored,
	}, nil
}

// Delete cascades to the movie's reviews first, then removes the movie.
// Watchlist entries are left dangling.
func (s *MovieService) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id, "movie")
	if err != nil {
		return 0, err
	}

	unlock := s.locks.Lock(oid.Hex())
	defer unlock()

	removed, err := s.reviews.DeleteByMovie(ctx, oid.Hex())
	if err != nil {
		return 0, err
	}

	deleted, err := s.movies.Delete(ctx, oid)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, newErr(ErrNotFound, "Movie not found")
	}

	logging.Ctx(ctx).Info().Str("movieId", id).Int64("reviewsRemoved", removed).Msg("movie deleted")
	s.invalidate(ctx)
	return deleted, nil
}

func (s *MovieService) Search(ctx context.Context, query string) ([]models.Movie, error) {
	return s.movies.Find(ctx, models.MovieQuery{TitleContains: query})
}

func (s *MovieService) ByGenre(ctx context.Context, genre string) ([]models.Movie, error) {
	return s.movies.Find(ctx, models.MovieQuery{GenreContains: genre})
}

// FilterGenres matches movies whose genre is one of genres. An empty set
// matches everything.
func (s *MovieService) FilterGenres(ctx context.Context, genres []string) ([]models.Movie, error) {
	return s.movies.Find(ctx, models.MovieQuery{Genres: compact(genres)})
}

// FilterRating is inclusive at both bounds; nil bounds default to 0 and 10.
func (s *MovieService) FilterRating(ctx context.Context, minRating, maxRating *float64) ([]models.Movie, error) {
	lo, hi := ratingBounds(minRating, maxRating)
	return s.movies.Find(ctx, models.MovieQuery{MinRating: &lo, MaxRating: &hi})
}

func (s *MovieService) FilterAdvanced(ctx context.Context, req *models.AdvancedFilterRequest) ([]models.Movie, error) {
	lo, hi := ratingBounds(req.MinRating, req.MaxRating)
	return s.movies.Find(ctx, models.MovieQuery{
		Genres:    compact(req.Genres),
		MinRating: &lo,
		MaxRating: &hi,
	})
}

func (s *MovieService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.KeyTopRated, cache.KeyRecent); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("cache invalidation failed")
	}
}

func ratingBounds(minRating, maxRating *float64) (float64, float64) {
	lo, hi := MinRating, MaxRating
	if minRating != nil {
		lo = *minRating
	}
	if maxRating != nil {
		hi = *maxRating
	}
	return lo, hi
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
