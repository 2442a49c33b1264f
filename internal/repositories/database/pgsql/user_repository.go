package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playware/game_lounge_app/internal/apperrors"
	"github.com/playware/game_lounge_app/internal/core/domain"
	portsrepo "github.com/playware/game_lounge_app/internal/core/ports/repositories"
	"github.com/playware/game_lounge_app/internal/models"
)

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// newPgxUserRepository creates a new repository for operator account data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{pool: pool}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// SaveUser inserts a new operator account.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (user_id, username, password_hash, role, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		user.UserID,
		user.Username,
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt,
		user.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, user.Username)
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// FindUserByID retrieves an operator by ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, `WHERE user_id = $1`, userID)
}

// FindUserByUsername retrieves an operator by login name.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUser(ctx, `WHERE username = $1`, username)
}

func (r *PgxUserRepository) findUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT user_id, username, password_hash, role, created_at, last_updated_at FROM users ` + where + `;`

	var m models.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Role,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: user", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user := toDomainUser(m)
	return &user, nil
}
