// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// PostgreSQL implementation of the user storage contract.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types via the dberr translator to avoid leaking storage
// implementation details.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ukj0ng/bookstore-api/internal/platform/dberr"
)

const userColumns = "id, username, email, password_hash, role, created_at, updated_at"

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new user record and fills in the generated ID.
//
// # Parameters
//   - ctx: Context for the database operation.
//   - user: The user entity to persist.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := repository.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		return dberr.Translate(err, "User", "Username or email is already in use")
	}

	return nil
}

// FindByID retrieves a user record by its primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	const query = "SELECT " + userColumns + " FROM users WHERE id = $1"
	return repository.queryOne(ctx, query, id)
}

// FindByUsername retrieves a user record by their unique username.
//
// # Returns
//
// Returns [*User] if found, or [apperr.NotFound] if no account exists.
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = "SELECT " + userColumns + " FROM users WHERE username = $1"
	return repository.queryOne(ctx, query, username)
}

// FindByEmail retrieves a user record by their unique email address.
//
// # Returns
//
// Returns [*User] if found, or [apperr.NotFound] if no account exists.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = "SELECT " + userColumns + " FROM users WHERE email = $1"
	return repository.queryOne(ctx, query, email)
}

// ExistsByUsername reports whether the username is already taken.
func (repository *PostgresUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return repository.exists(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)", username)
}

// ExistsByEmail reports whether the email is already registered.
func (repository *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return repository.exists(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email)
}

// ExistsByID reports whether an account with this ID is still present.
func (repository *PostgresUserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return repository.exists(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", id)
}

// UpdateEmail replaces the account's email address.
func (repository *PostgresUserRepository) UpdateEmail(ctx context.Context, userID int64, email string) error {
	const query = "UPDATE users SET email = $2, updated_at = $3 WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, userID, email, time.Now())
	if err != nil {
		return dberr.Translate(err, "User", "Email is already in use")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Translate(pgx.ErrNoRows, "User", "")
	}

	return nil
}

// UpdatePassword updates only the password hash for a specific user.
func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, userID int64, newHash string) error {
	const query = "UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, userID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Translate(pgx.ErrNoRows, "User", "")
	}

	return nil
}

// queryOne runs a single-row lookup and scans it into a User.
func (repository *PostgresUserRepository) queryOne(ctx context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Translate(err, "User", "")
	}

	return user, nil
}

// exists runs an EXISTS query with a single argument.
func (repository *PostgresUserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var found bool
	if err := repository.pool.QueryRow(ctx, query, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("postgres_user_repo_exists_failed: %w", err)
	}
	return found, nil
}
