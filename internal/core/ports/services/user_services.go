package services

import (
	"context"

	"github.com/playware/game_lounge_app/internal/core/domain"
	"github.com/playware/game_lounge_app/internal/dto"
)

// UserSvcFacade defines operator account operations.
type UserSvcFacade interface {
	// Authenticate verifies a username/password pair and returns the operator
	// on success, apperrors.ErrNotFound on unknown user or bad password.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// CreateUser registers a new operator account.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves an operator by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
