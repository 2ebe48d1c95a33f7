package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/novastreet/storefront/app/models"
	"github.com/novastreet/storefront/app/repositories"
	"github.com/novastreet/storefront/app/services"
	"github.com/novastreet/storefront/pkg/auth"
)

type fakeUserStore struct {
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return models.User{}, repositories.ErrNoUser
}

func (s *fakeUserStore) Insert(_ context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.Email] = *u
	return nil
}

func registerInput() services.RegisterInput {
	return services.RegisterInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "correct-horse",
	}
}

func TestRegisterIssuesToken(t *testing.T) {
	svc := services.NewAuthService(newFakeUserStore())

	user, token, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID.IsZero() {
		t.Error("expected generated user ID")
	}
	if user.Password == "correct-horse" {
		t.Error("password must be stored hashed")
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != user.ID.Hex() {
		t.Errorf("token user_id = %q, want %q", claims.UserID, user.ID.Hex())
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := services.NewAuthService(store)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, registerInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, _, err := svc.Register(ctx, registerInput())
	if !errors.Is(err, services.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc := services.NewAuthService(newFakeUserStore())
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, token, err := svc.Login(ctx, services.LoginInput{
		Email:    "asha@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != registered.ID {
		t.Error("login returned a different user")
	}
	if token == "" {
		t.Error("expected a token")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := services.NewAuthService(newFakeUserStore())
	ctx := context.Background()

	svc.Register(ctx, registerInput()) //nolint:errcheck

	_, _, err := svc.Login(ctx, services.LoginInput{
		Email:    "asha@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := services.NewAuthService(newFakeUserStore())

	_, _, err := svc.Login(context.Background(), services.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
