package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/playware/game_lounge_app/internal/apperrors"
	"github.com/playware/game_lounge_app/internal/core/domain"
	portsrepo "github.com/playware/game_lounge_app/internal/core/ports/repositories"
	portssvc "github.com/playware/game_lounge_app/internal/core/ports/services"
	"github.com/playware/game_lounge_app/internal/dto"
	"github.com/playware/game_lounge_app/internal/utils"
)

// userService implements operator account operations.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(repo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: repo,
	}
}

// Ensure userService implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// Authenticate verifies a username/password pair. Unknown usernames and bad
// passwords are indistinguishable to the caller.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to look up user", slog.String("username", username))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrNotFound)
	}

	return user, nil
}

// CreateUser registers a new operator account with a bcrypt password hash.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         domain.UserRole(req.Role),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", req.Username))
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", req.Role))
	return &user, nil
}

// GetUserByID retrieves an operator by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}
