package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt work factor used everywhere unless
	// overridden via configuration. Higher is slower and more resistant
	// to brute force.
	DefaultCost = 12

	// GeneratedPasswordLength is the fixed length of generated passwords.
	GeneratedPasswordLength = 12

	passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ErrPasswordMismatch is returned by VerifyPassword when the plaintext does
// not match the stored hash. Any other error from VerifyPassword means the
// stored hash is malformed or the engine failed, which callers must surface
// rather than treat as a plain mismatch.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// HashPassword hashes a plaintext password with bcrypt at the given cost.
// A zero cost selects DefaultCost.
func HashPassword(cost int, password string) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
// Returns nil on match and ErrPasswordMismatch on mismatch.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("cryptox: verify password: %w", err)
	}
}

// GeneratePassword returns a random password of GeneratedPasswordLength
// characters drawn from the mixed-case alphanumeric charset.
func GeneratePassword() (string, error) {
	password := make([]byte, GeneratedPasswordLength)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordCharset))))
		if err != nil {
			return "", fmt.Errorf("cryptox: generate password: %w", err)
		}
		password[i] = passwordCharset[n.Int64()]
	}
	return string(password), nil
}

// GenerateCredential produces a fresh random password together with its
// bcrypt hash. The plaintext is intended for one-time display to an
// administrator; only the hash is ever stored.
func GenerateCredential(cost int) (plaintext, hash string, err error) {
	plaintext, err = GeneratePassword()
	if err != nil {
		return "", "", err
	}
	hash, err = HashPassword(cost, plaintext)
	if err != nil {
		return "", "", err
	}
	return plaintext, hash, nil
}
