package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a document of the reviews collection. MovieID holds the movie
// ObjectID as hex text.
type Review struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	MovieID   string             `json:"movieId" bson:"movieId"`
	Rating    float64            `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	UserEmail string             `json:"userEmail" bson:"userEmail"`
	UserName  string             `json:"userName,omitempty" bson:"userName,omitempty"`
	UserPhoto string             `json:"userPhoto,omitempty" bson:"userPhoto,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	Moderated bool               `json:"moderated" bson:"moderated"`
}

type ReviewCreateRequest struct {
	MovieID   string  `json:"movieId" validate:"required"`
	Rating    float64 `json:"rating" validate:"required,gte=1,lte=10"`
	Comment   string  `json:"comment"`
	UserEmail string  `json:"userEmail" validate:"required"`
	UserName  string  `json:"userName"`
	UserPhoto string  `json:"userPhoto"`
}

type ReviewUpdateRequest struct {
	Rating    *float64 `json:"rating,omitempty" validate:"omitempty,gte=1,lte=10"`
	Comment   *string  `json:"comment,omitempty"`
	UserEmail string   `json:"userEmail" validate:"required"`
}

// ReviewUpdate is the set of fields an owner edit writes.
type ReviewUpdate struct {
	Rating    *float64
	Comment   *string
	UpdatedAt time.Time
}

// RatingAggregate is the cached rating state of a movie after a recompute.
type RatingAggregate struct {
	MovieID     string  `json:"movieId"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
}
