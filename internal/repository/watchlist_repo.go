package repository

import (
	"context"

	"moviematrix/internal/config"
	"moviematrix/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type WatchlistRepository struct {
	col *mongo.Collection
}

func NewWatchlistRepository(database *mongo.Database) *WatchlistRepository {
	return &WatchlistRepository{col: database.Collection(config.WatchlistCollection)}
}

func (r *WatchlistRepository) Find(ctx context.Context, email, movieID string) (*models.WatchlistEntry, error) {
	var e models.WatchlistEntry
	err := r.col.FindOne(ctx, bson.M{"email": email, "movieId": movieID}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *WatchlistRepository) Insert(ctx context.Context, e *models.WatchlistEntry) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, e)
	return translate(err)
}

func (r *WatchlistRepository) Delete(ctx context.Context, email, movieID string) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"email": email, "movieId": movieID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *WatchlistRepository) FindByEmail(ctx context.Context, email string) ([]models.WatchlistEntry, error) {
	cur, err := r.col.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.WatchlistEntry](ctx, cur)
}

func (r *WatchlistRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"email": email})
}
