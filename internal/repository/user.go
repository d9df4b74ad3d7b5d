package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/harvesthub/agrismart-backend/pkg/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// UserRepository manages user accounts
type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// GetByPhoneHash looks up a user by the SHA-256 hash of their phone number.
// Returns nil without error when no account exists yet.
func (r *UserRepository) GetByPhoneHash(ctx context.Context, phoneHash string) (*model.User, error) {
	query := `
		SELECT id, phone_encrypted, phone_hash, language, created_at, last_login_at
		FROM users
		WHERE phone_hash = $1
	`

	var user model.User
	err := r.db.QueryRow(ctx, query, phoneHash).Scan(
		&user.ID,
		&user.PhoneEncrypted,
		&user.PhoneHash,
		&user.Language,
		&user.CreatedAt,
		&user.LastLoginAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("failed to get user by phone hash", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// Create creates a new user account
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, phone_encrypted, phone_hash, language, created_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.PhoneEncrypted,
		user.PhoneHash,
		user.Language,
		user.CreatedAt,
		user.LastLoginAt,
	)

	if err != nil {
		r.logger.Error("failed to create user",
			zap.Error(err),
			zap.String("user_id", user.ID),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// TouchLogin records the time of a successful login
func (r *UserRepository) TouchLogin(ctx context.Context, userID string, at time.Time) error {
	query := `UPDATE users SET last_login_at = $1 WHERE id = $2`

	result, err := r.db.Exec(ctx, query, at, userID)
	if err != nil {
		r.logger.Error("failed to record login",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("failed to record login: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}

	return nil
}
