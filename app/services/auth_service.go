package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/novastreet/storefront/app/models"
	"github.com/novastreet/storefront/app/repositories"
	"github.com/novastreet/storefront/pkg/auth"
)

// UserStore is the record-store surface authentication needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Insert(ctx context.Context, u *models.User) error
}

// AuthService registers shoppers and signs them in.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// RegisterInput is the sign-up request body.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput is the sign-in request body.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a user and returns it with a fresh API token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, string, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return models.User{}, "", ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNoUser) {
		return models.User{}, "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Name: in.Name, Email: in.Email, Password: hash}
	if err := s.users.Insert(ctx, &user); err != nil {
		return models.User{}, "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		return models.User{}, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh API token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNoUser) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		return models.User{}, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}
