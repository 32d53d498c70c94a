package repositories

import (
	"context"

	"github.com/SscSPs/banking_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByLocalID retrieves a user by the uid issued by the identity provider.
	FindUserByLocalID(ctx context.Context, localID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateEmail changes the stored email and returns the number of rows affected.
	UpdateEmail(ctx context.Context, userID string, email string) (int64, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
