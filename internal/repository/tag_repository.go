package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"snapnote/backend/internal/models"
)

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	FindByName(ctx context.Context, userID primitive.ObjectID, name string) (*models.Tag, error)
	FindOwned(ctx context.Context, userID, tagID primitive.ObjectID) (*models.Tag, error)
	List(ctx context.Context, userID primitive.ObjectID) ([]models.Tag, error)
	Delete(ctx context.Context, userID, tagID primitive.ObjectID) (bool, error)
}

type tagRepository struct {
	coll *mongo.Collection
}

func NewTagRepository(db *mongo.Database) TagRepository {
	return &tagRepository{coll: db.Collection(tagsCollection)}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	res, err := r.coll.InsertOne(ctx, tag)
	if err != nil {
		if IsDuplicateKey(err) {
			return err
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		tag.ID = id
	}
	return nil
}

func (r *tagRepository) FindByName(ctx context.Context, userID primitive.ObjectID, name string) (*models.Tag, error) {
	tag := &models.Tag{}
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "name": name}).Decode(tag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find tag by name: %w", err)
	}
	return tag, nil
}

func (r *tagRepository) FindOwned(ctx context.Context, userID, tagID primitive.ObjectID) (*models.Tag, error) {
	tag := &models.Tag{}
	err := r.coll.FindOne(ctx, bson.M{"_id": tagID, "user_id": userID}).Decode(tag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return tag, nil
}

func (r *tagRepository) List(ctx context.Context, userID primitive.ObjectID) ([]models.Tag, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	tags := []models.Tag{}
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}

func (r *tagRepository) Delete(ctx context.Context, userID, tagID primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": tagID, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete tag: %w", err)
	}
	return res.DeletedCount > 0, nil
}
