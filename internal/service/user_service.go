package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"snapnote/backend/internal/models"
	"snapnote/backend/internal/repository"
)

type UserService interface {
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update models.UserUpdate) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// UpdateProfile applies the supplied mutable fields; only the display name is
// editable. An empty update returns the current profile unchanged.
func (s *userService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update models.UserUpdate) (*models.User, error) {
	if update.IsEmpty() {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		return user, nil
	}

	user, err := s.userRepo.UpdateFields(ctx, userID, bson.M{"name": *update.Name})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
