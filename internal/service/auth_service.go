package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"snapnote/backend/internal/models"
	"snapnote/backend/internal/repository"
	"snapnote/backend/pkg/auth"
)

// AuthService owns credential verification, token issuance and identity
// resolution. CurrentUser is the single authorization gate: every protected
// operation requires the user it returns.
type AuthService interface {
	Signup(ctx context.Context, email, name, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository // nil disables revocation
	hasher    *auth.PasswordHasher
	tokens    *auth.TokenManager
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		hasher:    hasher,
		tokens:    tokens,
	}
}

// Signup registers a fresh account and issues a session token (auto-login).
// The existence check gives the descriptive conflict error; the unique index
// on email catches the race where two signups pass the check concurrently.
func (s *authService) Signup(ctx context.Context, email, name, password string) (*models.User, string, error) {
	email = normalizeEmail(email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and issues a session token. A missing user and a
// wrong password produce the same error.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Logout adds the presented token to the revocation denylist for its
// remaining lifetime. Without a token repository, or with an already invalid
// token, there is nothing to do; the handler clears the cookie regardless.
func (s *authService) Logout(ctx context.Context, token string) error {
	if s.tokenRepo == nil || token == "" {
		return nil
	}
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil
	}
	return s.tokenRepo.Revoke(ctx, token, time.Until(claims.ExpiresAt.Time))
}

// CurrentUser resolves a session token to the acting user. Every failure mode
// collapses to ErrUnauthenticated so callers learn nothing about which check
// failed; storage errors pass through separately.
func (s *authService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	if s.tokenRepo != nil {
		revoked, err := s.tokenRepo.IsRevoked(ctx, token)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrUnauthenticated
		}
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		// Deleted after token issuance; fail closed.
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
