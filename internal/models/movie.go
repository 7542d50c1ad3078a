package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Movie is a document of the movies collection. Rating and ReviewCount are
// overwritten by the review aggregate once the movie has approved reviews.
type Movie struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Genre       string             `json:"genre" bson:"genre"`
	ReleaseYear int                `json:"releaseYear,omitempty" bson:"releaseYear,omitempty"`
	Director    string             `json:"director,omitempty" bson:"director,omitempty"`
	Cast        string             `json:"cast,omitempty" bson:"cast,omitempty"`
	Rating      float64            `json:"rating" bson:"rating"`
	Duration    int                `json:"duration,omitempty" bson:"duration,omitempty"`
	PlotSummary string             `json:"plotSummary,omitempty" bson:"plotSummary,omitempty"`
	PosterURL   string             `json:"posterUrl,omitempty" bson:"posterUrl,omitempty"`
	Language    string             `json:"language,omitempty" bson:"language,omitempty"`
	Country     string             `json:"country,omitempty" bson:"country,omitempty"`
	AddedBy     string             `json:"addedBy,omitempty" bson:"addedBy,omitempty"`
	ReviewCount int                `json:"reviewCount" bson:"reviewCount"`
}

// MovieDetail is the GET /movies/{id} payload. The outer ReviewCount shadows
// the cached one on Movie.
type MovieDetail struct {
	Movie
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
}

// MovieCreateRequest is the POST /movies body.
type MovieCreateRequest struct {
	Title       string  `json:"title" validate:"required"`
	Genre       string  `json:"genre" validate:"required"`
	ReleaseYear int     `json:"releaseYear,omitempty"`
	Director    string  `json:"director,omitempty"`
	Cast        string  `json:"cast,omitempty"`
	Rating      float64 `json:"rating" validate:"required,gte=0,lte=10"`
	Duration    int     `json:"duration,omitempty"`
	PlotSummary string  `json:"plotSummary,omitempty"`
	PosterURL   string  `json:"posterUrl,omitempty"`
	Language    string  `json:"language,omitempty"`
	Country     string  `json:"country,omitempty"`
	AddedBy     string  `json:"addedBy,omitempty"`
}

func (r *MovieCreateRequest) ToMovie() *Movie {
	return &Movie{
		Title:       r.Title,
		Genre:       r.Genre,
		ReleaseYear: r.ReleaseYear,
		Director:    r.Director,
		Cast:        r.Cast,
		Rating:      r.Rating,
		Duration:    r.Duration,
		PlotSummary: r.PlotSummary,
		PosterURL:   r.PosterURL,
		Language:    r.Language,
		Country:     r.Country,
		AddedBy:     r.AddedBy,
	}
}

// MovieUpdateRequest holds the allow-listed editable fields. Nil means "keep
// the stored value".
type MovieUpdateRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1"`
	Genre       *string  `json:"genre,omitempty" validate:"omitempty,min=1"`
	ReleaseYear *int     `json:"releaseYear,omitempty"`
	Director    *string  `json:"director,omitempty"`
	Cast        *string  `json:"cast,omitempty"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Duration    *int     `json:"duration,omitempty"`
	PlotSummary *string  `json:"plotSummary,omitempty"`
	PosterURL   *string  `json:"posterUrl,omitempty"`
	Language    *string  `json:"language,omitempty"`
	Country     *string  `json:"country,omitempty"`
}

// Fields returns the supplied fields keyed by their document name.
func (r *MovieUpdateRequest) Fields() map[string]any {
	out := map[string]any{}
	setStr := func(k string, v *string) {
		if v != nil {
			out[k] = *v
		}
	}
	setInt := func(k string, v *int) {
		if v != nil {
			out[k] = *v
		}
	}
	setStr("title", r.Title)
	setStr("genre", r.Genre)
	setInt("releaseYear", r.ReleaseYear)
	setStr("director", r.Director)
	setStr("cast", r.Cast)
	if r.Rating != nil {
		out["rating"] = *r.Rating
	}
	setInt("duration", r.Duration)
	setStr("plotSummary", r.PlotSummary)
	setStr("posterUrl", r.PosterURL)
	setStr("language", r.Language)
	setStr("country", r.Country)
	return out
}

type MovieSort int

const (
	SortNone MovieSort = iota
	SortRatingDesc
	SortNewest
)

// MovieQuery is the store-agnostic description of every canned movie view.
// Zero values mean "no constraint".
type MovieQuery struct {
	AddedBy       string
	TitleContains string
	GenreContains string
	Genres        []string
	MinRating     *float64
	MaxRating     *float64
	IDs           []primitive.ObjectID
	Sort          MovieSort
	Limit         int64
}

type GenreFilterRequest struct {
	Genres []string `json:"genres"`
}

type AdvancedFilterRequest struct {
	Genres    []string `json:"genres"`
	MinRating *float64 `json:"minRating"`
	MaxRating *float64 `json:"maxRating"`
}
