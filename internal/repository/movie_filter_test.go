package repository

import (
	"testing"

	"moviematrix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func fp(v float64) *float64 { return &v }

func TestMovieFilter_Empty(t *testing.T) {
	assert.Equal(t, bson.M{}, movieFilter(models.MovieQuery{}))
}

func TestMovieFilter_TitleIsEscaped(t *testing.T) {
	f := movieFilter(models.MovieQuery{TitleContains: "Se7en (1995)"})
	assert.Equal(t, bson.M{"$regex": `Se7en \(1995\)`, "$options": "i"}, f["title"])
}

func TestMovieFilter_GenreSet(t *testing.T) {
	f := movieFilter(models.MovieQuery{Genres: []string{"Sci-Fi", "Drama"}})

	cond, ok := f["genre"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, bson.A{
		primitive.Regex{Pattern: `^Sci-Fi$`, Options: "i"},
		primitive.Regex{Pattern: `^Drama$`, Options: "i"},
	}, cond["$in"])
}

func TestMovieFilter_GenreSubstringAndSet(t *testing.T) {
	f := movieFilter(models.MovieQuery{GenreContains: "act", Genres: []string{"Action"}})

	assert.NotContains(t, f, "genre")
	and, ok := f["$and"].([]bson.M)
	require.True(t, ok)
	assert.Len(t, and, 2)
}

func TestMovieFilter_RatingRange(t *testing.T) {
	f := movieFilter(models.MovieQuery{MinRating: fp(7), MaxRating: fp(9)})
	assert.Equal(t, bson.M{"$gte": 7.0, "$lte": 9.0}, f["rating"])

	f = movieFilter(models.MovieQuery{MinRating: fp(7)})
	assert.Equal(t, bson.M{"$gte": 7.0}, f["rating"])
}

func TestMovieFilter_OwnerAndIDs(t *testing.T) {
	ids := []primitive.ObjectID{primitive.NewObjectID()}
	f := movieFilter(models.MovieQuery{AddedBy: "a@example.com", IDs: ids})

	assert.Equal(t, "a@example.com", f["addedBy"])
	assert.Equal(t, bson.M{"$in": ids}, f["_id"])
}

func TestMovieSort(t *testing.T) {
	assert.Nil(t, movieSort(models.SortNone))
	assert.Equal(t, bson.D{{Key: "rating", Value: -1}}, movieSort(models.SortRatingDesc))
	assert.Equal(t, bson.D{{Key: "_id", Value: -1}}, movieSort(models.SortNewest))
}
