// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antonkh/kritika/internal/platform/apperr"
	"github.com/antonkh/kritika/internal/platform/dberr"
	"github.com/antonkh/kritika/internal/users/auth"
)

const userColumns = `id, username, email, firstname, lastname, bio, role, issuperuser, createdat, updatedat`

// PostgresRepository implements the account [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL-backed account repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List returns a page of users matching the username search, with the total count.
func (repository *PostgresRepository) List(ctx context.Context, search string, limit, offset int) ([]*auth.User, int, error) {
	const query = `
		SELECT ` + userColumns + `, COUNT(*) OVER() AS total
		FROM users.account
		WHERE ($1 = '' OR username ILIKE '%' || $1 || '%')
		ORDER BY username
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "user_list")
	}
	defer rows.Close()

	users := make([]*auth.User, 0)
	total := 0

	for rows.Next() {
		user := &auth.User{}
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
			&user.Bio, &user.Role, &user.IsSuperuser, &user.CreatedAt, &user.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "user_list_scan")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "user_list_rows")
	}

	return users, total, nil
}

// FindByUsername returns the account with the given username.
func (repository *PostgresRepository) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users.account WHERE username = $1`
	return repository.scanOne(ctx, query, username)
}

// FindByID returns the account with the given ID.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users.account WHERE id = $1`
	return repository.scanOne(ctx, query, id)
}

// Create persists an admin-provisioned account.
func (repository *PostgresRepository) Create(ctx context.Context, user *auth.User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, firstname, lastname, bio, role, issuperuser, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName,
		user.Bio, user.Role, user.IsSuperuser, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "user_admin_create")
	}

	return nil
}

// Update persists profile (and, on the admin path, role) changes.
func (repository *PostgresRepository) Update(ctx context.Context, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET email = $2, firstname = $3, lastname = $4, bio = $5, role = $6, updatedat = $7
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName, user.Bio, user.Role, user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "user_update")
	}

	return nil
}

// Delete removes the account row. Reviews and comments cascade at the
// database level.
func (repository *PostgresRepository) Delete(ctx context.Context, username string) error {
	const query = `DELETE FROM users.account WHERE username = $1`

	if _, err := repository.pool.Exec(ctx, query, username); err != nil {
		return dberr.Wrap(err, "user_delete")
	}

	return nil
}

// scanOne runs a single-row user query and hydrates the entity.
func (repository *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*auth.User, error) {
	user := &auth.User{}
	err := repository.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&user.Bio, &user.Role, &user.IsSuperuser, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_failed: %w", err)
	}

	return user, nil
}
