package store

import (
	"context"

	"github.com/tasktrack/tasktrack-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. It hashes the user's plaintext
	// Password into HashedPassword before persistence and assigns the
	// store-generated ID and creation timestamp to the passed user.
	// Returns ErrEmailExists if the email is already taken; the uniqueness
	// check is backed by a storage-level constraint, so a race between two
	// concurrent registrations yields exactly one success.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address. The email is
	// normalized before lookup, so the match is case-insensitive.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Delete removes a user from the store by their ID. Owned tasks are
	// removed with it (cascade), and any outstanding tokens bound to the
	// user become unusable since identity lookup fails afterwards.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error
}
