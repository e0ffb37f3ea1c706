package store

import (
	"context"
	"errors"

	"github.com/teamhq/userauth/internal/domain"
)

var (
	// ErrNotFound is the domain error for a missing row: a lookup miss, or
	// a mutation that matched zero rows. Distinct from transport failures,
	// which pass through unwrapped.
	ErrNotFound = errors.New("store: not found")

	// ErrAlreadyExists reports a uniqueness violation, e.g. a duplicate
	// email on create.
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. Constructed once at process start and passed by
// handle into each service; there is no process-wide singleton.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// Users is the user-record repository. Every operation issues a single
// parameterized statement; parameters are always bound, never concatenated.
type Users interface {
	// GetByEmail fetches a user by email (the login username).
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByID fetches a user by id.
	GetByID(ctx context.Context, id string) (domain.User, error)

	// Create inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, u domain.User) error

	// Update mutates name and email, matching by id, and bumps updated_at.
	// Returns ErrNotFound when no row matched.
	Update(ctx context.Context, u domain.User) error

	// SetPassword replaces the password hash for the given email and bumps
	// updated_at. Returns ErrNotFound when no such user exists.
	SetPassword(ctx context.Context, email, newHash string) error

	// DeleteByEmail hard-deletes the user row.
	// Returns ErrNotFound when no row matched.
	DeleteByEmail(ctx context.Context, email string) error
}
