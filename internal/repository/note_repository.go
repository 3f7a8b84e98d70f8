package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"snapnote/backend/internal/models"
)

// NoteQuery narrows a note listing. Search matches title or content
// case-insensitively; Tags require all named tags to be present.
type NoteQuery struct {
	Limit    int64
	Archived bool
	Search   string
	Tags     []string
}

// NoteRepository stores notes. Every lookup and mutation filters by both note
// id and owner id, so a note that exists but belongs to someone else is
// indistinguishable from a missing one.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	List(ctx context.Context, userID primitive.ObjectID, q NoteQuery) ([]models.Note, error)
	FindOwned(ctx context.Context, userID, noteID primitive.ObjectID) (*models.Note, error)
	SetFields(ctx context.Context, userID, noteID primitive.ObjectID, fields bson.M) (*models.Note, error)
	Delete(ctx context.Context, userID, noteID primitive.ObjectID) (bool, error)
	DeleteArchived(ctx context.Context, userID primitive.ObjectID) (int64, error)
	PullTag(ctx context.Context, userID primitive.ObjectID, name string) error
}

type noteRepository struct {
	coll *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) NoteRepository {
	return &noteRepository{coll: db.Collection(notesCollection)}
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	res, err := r.coll.InsertOne(ctx, note)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		note.ID = id
	}
	return nil
}

func (r *noteRepository) List(ctx context.Context, userID primitive.ObjectID, q NoteQuery) ([]models.Note, error) {
	filter := bson.M{
		"user_id":     userID,
		"is_archived": q.Archived,
	}
	if q.Search != "" {
		// Quote the term so it matches as a literal substring, not a pattern.
		pattern := regexp.QuoteMeta(q.Search)
		filter["$or"] = bson.A{
			bson.M{"title": primitive.Regex{Pattern: pattern, Options: "i"}},
			bson.M{"content": primitive.Regex{Pattern: pattern, Options: "i"}},
		}
	}
	if len(q.Tags) > 0 {
		filter["tags"] = bson.M{"$all": q.Tags}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(q.Limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	notes := []models.Note{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) FindOwned(ctx context.Context, userID, noteID primitive.ObjectID) (*models.Note, error) {
	note := &models.Note{}
	err := r.coll.FindOne(ctx, ownedFilter(userID, noteID)).Decode(note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return note, nil
}

func (r *noteRepository) SetFields(ctx context.Context, userID, noteID primitive.ObjectID, fields bson.M) (*models.Note, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	note := &models.Note{}
	err := r.coll.FindOneAndUpdate(ctx, ownedFilter(userID, noteID), bson.M{"$set": fields}, opts).Decode(note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return note, nil
}

func (r *noteRepository) Delete(ctx context.Context, userID, noteID primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, ownedFilter(userID, noteID))
	if err != nil {
		return false, fmt.Errorf("failed to delete note: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *noteRepository) DeleteArchived(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID, "is_archived": true})
	if err != nil {
		return 0, fmt.Errorf("failed to clear archive: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *noteRepository) PullTag(ctx context.Context, userID primitive.ObjectID, name string) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"user_id": userID, "tags": name},
		bson.M{"$pull": bson.M{"tags": name}},
	)
	if err != nil {
		return fmt.Errorf("failed to pull tag from notes: %w", err)
	}
	return nil
}

func ownedFilter(userID, noteID primitive.ObjectID) bson.M {
	return bson.M{"_id": noteID, "user_id": userID}
}
