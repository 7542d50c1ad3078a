package service

import "context"

// StatsService answers the /stats counters.
type StatsService struct {
	movies  MovieStore
	users   UserStore
	reviews ReviewStore
}

func NewStatsService(movies MovieStore, users UserStore, reviews ReviewStore) *StatsService {
	return &StatsService{movies: movies, users: users, reviews: reviews}
}

func (s *StatsService) MoviesCount(ctx context.Context) (int64, error) {
	return s.movies.Count(ctx)
}

func (s *StatsService) UsersCount(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

func (s *StatsService) ReviewsCount(ctx context.Context) (int64, error) {
	return s.reviews.Count(ctx)
}
