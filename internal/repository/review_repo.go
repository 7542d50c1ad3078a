package repository

import (
	"context"

	"moviematrix/internal/config"
	"moviematrix/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(database *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: database.Collection(config.ReviewsCollection)}
}

// Insert assigns the id. A second review for the same (movieId, userEmail)
// fails with ErrDuplicate once the unique index exists.
func (r *ReviewRepository) Insert(ctx context.Context, rv *models.Review) error {
	if rv.ID.IsZero() {
		rv.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, rv)
	return translate(err)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ReviewRepository) FindByMovieAndUser(ctx context.Context, movieID, email string) (*models.Review, error) {
	return r.findOne(ctx, bson.M{"movieId": movieID, "userEmail": email})
}

func (r *ReviewRepository) findOne(ctx context.Context, filter bson.M) (*models.Review, error) {
	var rv models.Review
	err := r.col.FindOne(ctx, filter).Decode(&rv)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// FindModeratedByMovie returns the approved reviews of a movie, newest first.
func (r *ReviewRepository) FindModeratedByMovie(ctx context.Context, movieID string) ([]models.Review, error) {
	return r.find(ctx, bson.M{"movieId": movieID, "moderated": true})
}

func (r *ReviewRepository) FindByUser(ctx context.Context, email string) ([]models.Review, error) {
	return r.find(ctx, bson.M{"userEmail": email})
}

func (r *ReviewRepository) find(ctx context.Context, filter bson.M) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Review](ctx, cur)
}

func (r *ReviewRepository) Update(ctx context.Context, id primitive.ObjectID, upd models.ReviewUpdate) (int64, int64, error) {
	set := bson.M{"updatedAt": upd.UpdatedAt}
	if upd.Rating != nil {
		set["rating"] = *upd.Rating
	}
	if upd.Comment != nil {
		set["comment"] = *upd.Comment
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByMovie removes every review of a movie, moderated or not.
func (r *ReviewRepository) DeleteByMovie(ctx context.Context, movieID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"movieId": movieID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
