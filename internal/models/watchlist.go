package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WatchlistEntry struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email   string             `json:"email" bson:"email"`
	MovieID string             `json:"movieId" bson:"movieId"`
	AddedAt time.Time          `json:"addedAt" bson:"addedAt"`
}

type WatchlistAddRequest struct {
	Email   string `json:"email" validate:"required"`
	MovieID string `json:"movieId" validate:"required"`
}
