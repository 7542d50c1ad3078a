package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserDoc keeps the email as the unique key; every other client supplied
// field lives in Profile and is stored inline.
type UserDoc struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email   string             `json:"email" bson:"email"`
	Profile map[string]any     `json:"-" bson:",inline"`
}
