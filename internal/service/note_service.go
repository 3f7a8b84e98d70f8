package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"snapnote/backend/internal/models"
	"snapnote/backend/internal/repository"
)

// NoteService owns the note lifecycle state machine:
//
//	active --Archive--> archived --Restore--> active
//	active|archived --Purge--> gone
//	archived --ClearArchive--> gone
//
// Every operation takes the authenticated owner's id; ownership failures are
// reported as ErrNoteNotFound, identical to a missing note.
type NoteService interface {
	Create(ctx context.Context, userID primitive.ObjectID, title, content string, tags []string) (*models.Note, error)
	List(ctx context.Context, userID primitive.ObjectID, limit int64, archived bool, search, tags string) ([]models.Note, error)
	Get(ctx context.Context, userID primitive.ObjectID, id string) (*models.Note, error)
	Update(ctx context.Context, userID primitive.ObjectID, id string, update models.NoteUpdate) (*models.Note, error)
	Archive(ctx context.Context, userID primitive.ObjectID, id string) error
	Restore(ctx context.Context, userID primitive.ObjectID, id string) (*models.Note, error)
	Purge(ctx context.Context, userID primitive.ObjectID, id string) error
	ClearArchive(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

type noteService struct {
	noteRepo repository.NoteRepository
}

func NewNoteService(noteRepo repository.NoteRepository) NoteService {
	return &noteService{noteRepo: noteRepo}
}

func (s *noteService) Create(ctx context.Context, userID primitive.ObjectID, title, content string, tags []string) (*models.Note, error) {
	if tags == nil {
		tags = []string{}
	}
	now := time.Now().UTC()
	note := &models.Note{
		UserID:     userID,
		Title:      title,
		Content:    content,
		Tags:       tags,
		IsArchived: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) List(ctx context.Context, userID primitive.ObjectID, limit int64, archived bool, search, tags string) ([]models.Note, error) {
	return s.noteRepo.List(ctx, userID, repository.NoteQuery{
		Limit:    limit,
		Archived: archived,
		Search:   search,
		Tags:     splitTags(tags),
	})
}

func (s *noteService) Get(ctx context.Context, userID primitive.ObjectID, id string) (*models.Note, error) {
	noteID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	note, err := s.noteRepo.FindOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// Update applies only the supplied fields. An empty update returns the note
// as-is without advancing its updated timestamp.
func (s *noteService) Update(ctx context.Context, userID primitive.ObjectID, id string, update models.NoteUpdate) (*models.Note, error) {
	if update.IsEmpty() {
		return s.Get(ctx, userID, id)
	}

	noteID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Content != nil {
		fields["content"] = *update.Content
	}
	if update.Tags != nil {
		fields["tags"] = *update.Tags
	}
	if update.IsArchived != nil {
		fields["is_archived"] = *update.IsArchived
	}

	note, err := s.noteRepo.SetFields(ctx, userID, noteID, fields)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func (s *noteService) Archive(ctx context.Context, userID primitive.ObjectID, id string) error {
	_, err := s.setArchived(ctx, userID, id, true)
	return err
}

func (s *noteService) Restore(ctx context.Context, userID primitive.ObjectID, id string) (*models.Note, error) {
	return s.setArchived(ctx, userID, id, false)
}

func (s *noteService) Purge(ctx context.Context, userID primitive.ObjectID, id string) error {
	noteID, err := parseObjectID(id)
	if err != nil {
		return err
	}
	deleted, err := s.noteRepo.Delete(ctx, userID, noteID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoteNotFound
	}
	return nil
}

func (s *noteService) ClearArchive(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.noteRepo.DeleteArchived(ctx, userID)
}

func (s *noteService) setArchived(ctx context.Context, userID primitive.ObjectID, id string, archived bool) (*models.Note, error) {
	noteID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	note, err := s.noteRepo.SetFields(ctx, userID, noteID, bson.M{
		"is_archived": archived,
		"updated_at":  time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return objID, nil
}

func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
