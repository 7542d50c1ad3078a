// Package servicetest provides in-memory implementations of the service
// store interfaces for tests.
package servicetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"moviematrix/internal/models"
	"moviematrix/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stores bundles one of each store.
type Stores struct {
	Movies    *Movies
	Reviews   *Reviews
	Watchlist *Watchlist
	Users     *Users
}

func NewStores() *Stores {
	return &Stores{
		Movies:    NewMovies(),
		Reviews:   NewReviews(),
		Watchlist: NewWatchlist(),
		Users:     NewUsers(),
	}
}

// ===== movies =====

type Movies struct {
	mu    sync.Mutex
	docs  map[primitive.ObjectID]models.Movie
	order []primitive.ObjectID

	// Err, when set, is returned by every call.
	Err error
}

func NewMovies() *Movies {
	return &Movies{docs: make(map[primitive.ObjectID]models.Movie)}
}

func (s *Movies) Insert(_ context.Context, m *models.Movie) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return primitive.NilObjectID, s.Err
	}
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if _, ok := s.docs[m.ID]; ok {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	s.docs[m.ID] = *m
	s.order = append(s.order, m.ID)
	return m.ID, nil
}

func (s *Movies) GetByID(_ context.Context, id primitive.ObjectID) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	m, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *Movies) Find(_ context.Context, q models.MovieQuery) ([]models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	var idSet map[primitive.ObjectID]bool
	if q.IDs != nil {
		idSet = make(map[primitive.ObjectID]bool, len(q.IDs))
		for _, id := range q.IDs {
			idSet[id] = true
		}
	}

	out := make([]models.Movie, 0)
	for _, id := range s.order {
		m := s.docs[id]
		if idSet != nil && !idSet[id] {
			continue
		}
		if matchMovie(m, q) {
			out = append(out, m)
		}
	}

	switch q.Sort {
	case models.SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case models.SortNewest:
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func matchMovie(m models.Movie, q models.MovieQuery) bool {
	if q.AddedBy != "" && m.AddedBy != q.AddedBy {
		return false
	}
	if q.TitleContains != "" && !containsFold(m.Title, q.TitleContains) {
		return false
	}
	if q.GenreContains != "" && !containsFold(m.Genre, q.GenreContains) {
		return false
	}
	if len(q.Genres) > 0 {
		found := false
		for _, g := range q.Genres {
			if strings.EqualFold(m.Genre, g) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.MinRating != nil && m.Rating < *q.MinRating {
		return false
	}
	if q.MaxRating != nil && m.Rating > *q.MaxRating {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (s *Movies) Update(_ context.Context, id primitive.ObjectID, fields map[string]any) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, 0, s.Err
	}
	m, ok := s.docs[id]
	if !ok {
		return 0, 0, nil
	}

	before := m
	for k, v := range fields {
		switch k {
		case "title":
			m.Title = v.(string)
		case "genre":
			m.Genre = v.(string)
		case "releaseYear":
			m.ReleaseYear = v.(int)
		case "director":
			m.Director = v.(string)
		case "cast":
			m.Cast = v.(string)
		case "rating":
			m.Rating = v.(float64)
		case "duration":
			m.Duration = v.(int)
		case "plotSummary":
			m.PlotSummary = v.(string)
		case "posterUrl":
			m.PosterURL = v.(string)
		case "language":
			m.Language = v.(string)
		case "country":
			m.Country = v.(string)
		}
	}
	s.docs[id] = m

	if m == before {
		return 1, 0, nil
	}
	return 1, 1, nil
}

func (s *Movies) SetAggregate(_ context.Context, id primitive.ObjectID, rating float64, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	m, ok := s.docs[id]
	if !ok {
		return nil
	}
	m.Rating = rating
	m.ReviewCount = count
	s.docs[id] = m
	return nil
}

func (s *Movies) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	if _, ok := s.docs[id]; !ok {
		return 0, nil
	}
	delete(s.docs, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (s *Movies) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.docs)), nil
}

// ===== reviews =====

type Reviews struct {
	mu    sync.Mutex
	docs  map[primitive.ObjectID]models.Review
	order []primitive.ObjectID

	Err error
}

func NewReviews() *Reviews {
	return &Reviews{docs: make(map[primitive.ObjectID]models.Review)}
}

func (s *Reviews) Insert(_ context.Context, rv *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, d := range s.docs {
		if d.MovieID == rv.MovieID && d.UserEmail == rv.UserEmail {
			return repository.ErrDuplicate
		}
	}
	if rv.ID.IsZero() {
		rv.ID = primitive.NewObjectID()
	}
	s.docs[rv.ID] = *rv
	s.order = append(s.order, rv.ID)
	return nil
}

func (s *Reviews) GetByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	rv, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	return &rv, nil
}

func (s *Reviews) FindByMovieAndUser(_ context.Context, movieID, email string) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, id := range s.order {
		rv := s.docs[id]
		if rv.MovieID == movieID && rv.UserEmail == email {
			return &rv, nil
		}
	}
	return nil, nil
}

func (s *Reviews) FindModeratedByMovie(_ context.Context, movieID string) ([]models.Review, error) {
	return s.filter(func(rv models.Review) bool { return rv.MovieID == movieID && rv.Moderated })
}

func (s *Reviews) FindByUser(_ context.Context, email string) ([]models.Review, error) {
	return s.filter(func(rv models.Review) bool { return rv.UserEmail == email })
}

// filter returns matches newest first.
func (s *Reviews) filter(keep func(models.Review) bool) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.Review, 0)
	for i := len(s.order) - 1; i >= 0; i-- {
		rv := s.docs[s.order[i]]
		if keep(rv) {
			out = append(out, rv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Reviews) Update(_ context.Context, id primitive.ObjectID, upd models.ReviewUpdate) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, 0, s.Err
	}
	rv, ok := s.docs[id]
	if !ok {
		return 0, 0, nil
	}
	if upd.Rating != nil {
		rv.Rating = *upd.Rating
	}
	if upd.Comment != nil {
		rv.Comment = *upd.Comment
	}
	at := upd.UpdatedAt
	rv.UpdatedAt = &at
	s.docs[id] = rv
	return 1, 1, nil
}

func (s *Reviews) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	if _, ok := s.docs[id]; !ok {
		return 0, nil
	}
	s.removeLocked(id)
	return 1, nil
}

func (s *Reviews) DeleteByMovie(_ context.Context, movieID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for id, rv := range s.docs {
		if rv.MovieID == movieID {
			s.removeLocked(id)
			n++
		}
	}
	return n, nil
}

func (s *Reviews) removeLocked(id primitive.ObjectID) {
	delete(s.docs, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func (s *Reviews) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.docs)), nil
}

// ===== watchlist =====

type Watchlist struct {
	mu      sync.Mutex
	entries []models.WatchlistEntry

	Err error
}

func NewWatchlist() *Watchlist {
	return &Watchlist{}
}

func (s *Watchlist) Find(_ context.Context, email, movieID string) (*models.WatchlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, e := range s.entries {
		if e.Email == email && e.MovieID == movieID {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (s *Watchlist) Insert(_ context.Context, e *models.WatchlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, x := range s.entries {
		if x.Email == e.Email && x.MovieID == e.MovieID {
			return repository.ErrDuplicate
		}
	}
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	s.entries = append(s.entries, *e)
	return nil
}

func (s *Watchlist) Delete(_ context.Context, email, movieID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	for i, e := range s.entries {
		if e.Email == email && e.MovieID == movieID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *Watchlist) FindByEmail(_ context.Context, email string) ([]models.WatchlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.WatchlistEntry, 0)
	for _, e := range s.entries {
		if e.Email == email {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Watchlist) CountByEmail(ctx context.Context, email string) (int64, error) {
	list, err := s.FindByEmail(ctx, email)
	return int64(len(list)), err
}

// ===== users =====

type Users struct {
	mu   sync.Mutex
	docs []models.UserDoc

	Err error
}

func NewUsers() *Users {
	return &Users{}
}

func (s *Users) FindByEmail(_ context.Context, email string) (*models.UserDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.docs {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Users) Insert(_ context.Context, u *models.UserDoc) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return primitive.NilObjectID, s.Err
	}
	for _, x := range s.docs {
		if x.Email == u.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.docs = append(s.docs, *u)
	return u.ID, nil
}

func (s *Users) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.docs)), nil
}
