package repositories

import (
	"context"

	"github.com/playware/game_lounge_app/internal/core/domain"
)

// UserReader defines read operations for operator account data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their login name.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for operator account data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
