// internal/repository/movie_repo.go
package repository

import (
	"context"
	"regexp"

	"moviematrix/internal/config"
	"moviematrix/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(database *mongo.Database) *MovieRepository {
	return &MovieRepository{col: database.Collection(config.MoviesCollection)}
}

func (r *MovieRepository) Insert(ctx context.Context, m *models.Movie) (primitive.ObjectID, error) {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return primitive.NilObjectID, translate(err)
	}
	return m.ID, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Movie, error) {
	var m models.Movie
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MovieRepository) Find(ctx context.Context, q models.MovieQuery) ([]models.Movie, error) {
	opts := options.Find()
	if s := movieSort(q.Sort); s != nil {
		opts.SetSort(s)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cur, err := r.col.Find(ctx, movieFilter(q), opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Movie](ctx, cur)
}

// Update applies a $set with the supplied fields only.
func (r *MovieRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (matched, modified int64, err error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// SetAggregate stores the recomputed review aggregate on the movie.
func (r *MovieRepository) SetAggregate(ctx context.Context, id primitive.ObjectID, rating float64, count int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"rating": rating, "reviewCount": count}},
	)
	return err
}

func (r *MovieRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func movieFilter(q models.MovieQuery) bson.M {
	filter := bson.M{}

	if q.AddedBy != "" {
		filter["addedBy"] = q.AddedBy
	}
	if q.TitleContains != "" {
		filter["title"] = containsRegex(q.TitleContains)
	}

	// genre: substring match and set membership can both apply
	var genreConds []bson.M
	if q.GenreContains != "" {
		genreConds = append(genreConds, bson.M{"genre": containsRegex(q.GenreContains)})
	}
	if len(q.Genres) > 0 {
		in := make(bson.A, 0, len(q.Genres))
		for _, g := range q.Genres {
			in = append(in, primitive.Regex{Pattern: "^" + regexp.QuoteMeta(g) + "$", Options: "i"})
		}
		genreConds = append(genreConds, bson.M{"genre": bson.M{"$in": in}})
	}
	switch len(genreConds) {
	case 0:
	case 1:
		filter["genre"] = genreConds[0]["genre"]
	default:
		filter["$and"] = genreConds
	}

	if q.MinRating != nil || q.MaxRating != nil {
		cond := bson.M{}
		if q.MinRating != nil {
			cond["$gte"] = *q.MinRating
		}
		if q.MaxRating != nil {
			cond["$lte"] = *q.MaxRating
		}
		filter["rating"] = cond
	}

	if q.IDs != nil {
		filter["_id"] = bson.M{"$in": q.IDs}
	}
	return filter
}

func movieSort(s models.MovieSort) bson.D {
	switch s {
	case models.SortRatingDesc:
		return bson.D{{Key: "rating", Value: -1}}
	case models.SortNewest:
		// ObjectIDs grow with insertion time
		return bson.D{{Key: "_id", Value: -1}}
	default:
		return nil
	}
}

func containsRegex(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}
