package service

import (
	"context"
	"fmt"

	"github.com/teamhq/userauth/internal/domain"
	"github.com/teamhq/userauth/internal/store"
	"github.com/teamhq/userauth/pkg/cryptox"
	"github.com/teamhq/userauth/pkg/idx"
)

type UserService struct {
	Store store.Store

	// BcryptCost is the work factor for every hash this service produces.
	BcryptCost int
}

// CreateUserInput carries the submitted fields for a new account. The
// password is always generated server-side, never submitted.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Role      string
	Email     string
}

// UpdateUserInput mutates name and email, matching by id.
type UpdateUserInput struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// Create generates a random credential, merges it with the submitted
// fields, and inserts the record. The generated plaintext is returned for
// one-time display to the administrator and is never persisted.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (string, error) {
	if in.Email == "" {
		return "", ErrValidation
	}

	plaintext, hash, err := cryptox.GenerateCredential(s.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("create user: generate credential: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.Store.Users().Create(ctx, u); err != nil {
		return "", err
	}
	return plaintext, nil
}

// GetByID fetches a user by id.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetByID(ctx, id)
}

// Update mutates the user's name and email.
func (s *UserService) Update(ctx context.Context, in UpdateUserInput) error {
	if in.ID == "" || in.Email == "" {
		return ErrValidation
	}
	return s.Store.Users().Update(ctx, domain.User{
		ID:        in.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	})
}

// ChangePassword hashes the submitted password and stores it for the user.
func (s *UserService) ChangePassword(ctx context.Context, email, newPassword string) error {
	if email == "" || newPassword == "" {
		return ErrValidation
	}
	hash, err := cryptox.HashPassword(s.BcryptCost, newPassword)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return s.Store.Users().SetPassword(ctx, email, hash)
}

// ResetPassword replaces the user's password with a freshly generated one
// and returns the plaintext for one-time display.
func (s *UserService) ResetPassword(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", ErrValidation
	}
	plaintext, hash, err := cryptox.GenerateCredential(s.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("reset password: generate credential: %w", err)
	}
	if err := s.Store.Users().SetPassword(ctx, email, hash); err != nil {
		return "", err
	}
	return plaintext, nil
}

// Delete hard-deletes the account.
func (s *UserService) Delete(ctx context.Context, email string) error {
	if email == "" {
		return ErrValidation
	}
	return s.Store.Users().DeleteByEmail(ctx, email)
}
