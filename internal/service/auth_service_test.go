package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"snapnote/backend/internal/models"
	"snapnote/backend/pkg/auth"
)

type fakeUserRepository struct {
	users     map[string]*models.User // keyed by email
	createErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*models.User{}}
}

func (f *fakeUserRepository) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := f.users[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			if name, ok := fields["name"].(string); ok {
				user.Name = name
			}
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeTokenRepository struct {
	revoked map[string]time.Duration
}

func newFakeTokenRepository() *fakeTokenRepository {
	return &fakeTokenRepository{revoked: map[string]time.Duration{}}
}

func (f *fakeTokenRepository) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	f.revoked[token] = ttl
	return nil
}

func (f *fakeTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, ok := f.revoked[token]
	return ok, nil
}

func newTestAuthService(userRepo *fakeUserRepository, tokenRepo *fakeTokenRepository) AuthService {
	hasher := auth.NewPasswordHasher()
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)
	if tokenRepo == nil {
		// Pass a typed nil through as "revocation disabled".
		return NewAuthService(userRepo, nil, hasher, tokens)
	}
	return NewAuthService(userRepo, tokenRepo, hasher, tokens)
}

func TestSignupThenLogin(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepository()
	svc := newTestAuthService(userRepo, nil)

	user, token, err := svc.Signup(ctx, "a@x.com", "A", "pw")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.ID.IsZero() {
		t.Error("expected generated user id")
	}
	if user.Email != "a@x.com" {
		t.Errorf("expected email a@x.com, got %q", user.Email)
	}
	if user.PasswordHash == "pw" || user.PasswordHash == "" {
		t.Error("expected a real password hash")
	}
	if token == "" {
		t.Error("expected signup to issue a token (auto-login)")
	}

	loggedIn, token, err := svc.Login(ctx, "a@x.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Error("expected login to return the signed up user")
	}
	if token == "" {
		t.Error("expected login to issue a token")
	}
}

func TestSignupNormalizesEmail(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepository()
	svc := newTestAuthService(userRepo, nil)

	user, _, err := svc.Signup(ctx, "  A@X.com ", "A", "pw")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}

	if _, _, err := svc.Login(ctx, "A@X.COM", "pw"); err != nil {
		t.Errorf("expected case-insensitive login, got %v", err)
	}

	if _, _, err := svc.Signup(ctx, "A@X.COM", "B", "pw2"); err != ErrEmailTaken {
		t.Errorf("expected ErrEmailTaken for differently cased duplicate, got %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepository()
	svc := newTestAuthService(userRepo, nil)

	if _, _, err := svc.Signup(ctx, "a@x.com", "A", "pw"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, _, err := svc.Signup(ctx, "a@x.com", "B", "other"); err != ErrEmailTaken {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignupDuplicateKeyRace(t *testing.T) {
	// The existence check passed but the insert hit the unique index: the
	// caller still sees the conflict error, not an internal failure.
	ctx := context.Background()
	userRepo := newFakeUserRepository()
	userRepo.createErr = mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	svc := newTestAuthService(userRepo, nil)

	if _, _, err := svc.Signup(ctx, "a@x.com", "A", "pw"); err != ErrEmailTaken {
		t.Errorf("expected ErrEmailTaken on duplicate key, got %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepository()
	svc := newTestAuthService(userRepo, nil)

	if _, _, err := svc.Signup(ctx, "a@x.com", "A", "pw"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	t.Run("wrong password", func(t *testing.T) {
		if _, _, err := svc.Login(ctx, "a@x.com", "nope"); err != ErrInvalidCredentials {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, _, err := svc.Login(ctx, "b@x.com", "pw"); err != ErrInvalidCredentials {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepository()
	svc := newTestAuthService(userRepo, nil)

	user, token, err := svc.Signup(ctx, "a@x.com", "A", "pw")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	t.Run("valid token resolves user", func(t *testing.T) {
		resolved, err := svc.CurrentUser(ctx, token)
		if err != nil {
			t.Fatalf("CurrentUser returned error: %v", err)
		}
		if resolved.ID != user.ID {
			t.Error("expected the token's user")
		}
	})

	t.Run("empty token", func(t *testing.T) {
		if _, err := svc.CurrentUser(ctx, ""); err != ErrUnauthenticated {
			t.Errorf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		if _, err := svc.CurrentUser(ctx, "not.a.token"); err != ErrUnauthenticated {
			t.Errorf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("user deleted after issuance", func(t *testing.T) {
		delete(userRepo.users, "a@x.com")
		if _, err := svc.CurrentUser(ctx, token); err != ErrUnauthenticated {
			t.Errorf("expected ErrUnauthenticated, got %v", err)
		}
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepository()
	tokenRepo := newFakeTokenRepository()
	svc := newTestAuthService(userRepo, tokenRepo)

	_, token, err := svc.Signup(ctx, "a@x.com", "A", "pw")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := svc.CurrentUser(ctx, token); err != nil {
		t.Fatalf("expected token to be valid before logout: %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if _, err := svc.CurrentUser(ctx, token); err != ErrUnauthenticated {
		t.Errorf("expected revoked token to be rejected, got %v", err)
	}

	ttl := tokenRepo.revoked[token]
	if ttl <= 0 || ttl > 30*time.Minute {
		t.Errorf("expected denylist ttl within the token's remaining life, got %v", ttl)
	}
}

func TestLogoutInvalidTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	tokenRepo := newFakeTokenRepository()
	svc := newTestAuthService(newFakeUserRepository(), tokenRepo)

	if err := svc.Logout(ctx, "garbage"); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if len(tokenRepo.revoked) != 0 {
		t.Error("expected nothing revoked for an invalid token")
	}
}
