package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tag names are unique within a user's tag set, not globally. Notes reference
// tags by name, so deleting a tag cascades by name string.
type Tag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
