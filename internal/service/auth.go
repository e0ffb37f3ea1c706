package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/teamhq/userauth/internal/store"
	"github.com/teamhq/userauth/pkg/cryptox"
	"github.com/teamhq/userauth/pkg/jwtx"
	"github.com/teamhq/userauth/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong
	// password" so login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrValidation reports a request that is structurally fine but
	// missing required fields.
	ErrValidation = errors.New("invalid_input")
)

type AuthService struct {
	Store     store.Store
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// Login checks the credential pair against the stored hash and issues a
// bearer token. The token claims are a sanitized copy of the user record;
// the password hash is never signed into a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: fetch user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return "", ErrInvalidCredentials
		}
		// A malformed stored hash is an internal failure, not a mismatch.
		slogx.FromContext(ctx).Error("password verification failed", "user_id", user.ID, "err", err)
		return "", fmt.Errorf("login: verify password: %w", err)
	}

	claims := jwtx.NewAccessClaims(
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Role,
		s.Issuer,
		s.AccessTTL,
		time.Now().UTC(),
	)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("login: sign token: %w", err)
	}
	return token, nil
}
