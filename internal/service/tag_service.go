package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"snapnote/backend/internal/models"
	"snapnote/backend/internal/repository"
)

type TagService interface {
	Create(ctx context.Context, userID primitive.ObjectID, name string) (*models.Tag, error)
	List(ctx context.Context, userID primitive.ObjectID) ([]models.Tag, error)
	Delete(ctx context.Context, userID primitive.ObjectID, id string) error
}

type tagService struct {
	tagRepo  repository.TagRepository
	noteRepo repository.NoteRepository
}

func NewTagService(tagRepo repository.TagRepository, noteRepo repository.NoteRepository) TagService {
	return &tagService{
		tagRepo:  tagRepo,
		noteRepo: noteRepo,
	}
}

// Create rejects a name the user already has (exact, case-sensitive match).
// The unique index on (user_id, name) backs the check against races.
func (s *tagService) Create(ctx context.Context, userID primitive.ObjectID, name string) (*models.Tag, error) {
	existing, err := s.tagRepo.FindByName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check tag name: %w", err)
	}
	if existing != nil {
		return nil, ErrTagExists
	}

	tag := &models.Tag{
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrTagExists
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Tag, error) {
	return s.tagRepo.List(ctx, userID)
}

// Delete removes the tag document and then pulls its name from every note of
// the same user that lists it. The cascade is best-effort: it is not
// transactional with the tag deletion.
func (s *tagService) Delete(ctx context.Context, userID primitive.ObjectID, id string) error {
	tagID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	tag, err := s.tagRepo.FindOwned(ctx, userID, tagID)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrTagNotFound
	}

	deleted, err := s.tagRepo.Delete(ctx, userID, tagID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTagNotFound
	}

	return s.noteRepo.PullTag(ctx, userID, tag.Name)
}
