package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is owned by exactly one user; every storage filter pairs the note id
// with the owner id. Tags are stored as plain name strings, not tag ids.
//
// Lifecycle: created active, archived via soft delete, then either restored
// or removed permanently.
type Note struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title      string             `bson:"title" json:"title"`
	Content    string             `bson:"content" json:"content"`
	Tags       []string           `bson:"tags" json:"tags"`
	IsArchived bool               `bson:"is_archived" json:"is_archived"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// NoteUpdate carries the fields a partial update may set. Nil means "leave
// untouched", so an explicit empty tag list still clears the tags.
type NoteUpdate struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags"`
	IsArchived *bool     `json:"is_archived"`
}

// IsEmpty reports whether the update would change nothing.
func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Tags == nil && u.IsArchived == nil
}
