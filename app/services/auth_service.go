package services

import (
	"context"
	"errors"
	"fmt"

	"blog/app/models"
	"blog/app/repositories"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a user with a hashed password
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	user := &models.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return user, nil
}

// Login returns the user when the password matches
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
