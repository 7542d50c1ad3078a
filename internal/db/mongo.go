package db

import (
	"context"
	"time"

	"moviematrix/internal/config"
	"moviematrix/internal/logging"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Connect opens the client and pings the deployment. A failed ping is
// returned alongside a usable handle: the driver reconnects lazily, so the
// caller may keep serving and let individual requests fail.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1).
			SetStrict(true).
			SetDeprecationErrors(true)).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	database := client.Database(cfg.MongoDB)

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return client, database, err
	}

	logging.Info().Str("db", cfg.MongoDB).Msg("[mongo] pinged deployment, connected")
	return client, database, nil
}

// EnsureIndexes creates the unique keys that back the one-per-pair invariants.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		config.ReviewsCollection: {
			{
				Keys:    bson.D{{Key: "movieId", Value: 1}, {Key: "userEmail", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "userEmail", Value: 1}}},
		},
		config.WatchlistCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}, {Key: "movieId", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		config.UsersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		config.MoviesCollection: {
			{Keys: bson.D{{Key: "rating", Value: -1}}},
			{Keys: bson.D{{Key: "addedBy", Value: 1}}},
		},
	}

	for coll, models := range specs {
		if _, err := database.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
