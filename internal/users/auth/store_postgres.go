// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

/*
Package auth (Postgres) implements the storage layer for user accounts.

# Schema Table Mapping
  - users.account: Master identity, credentials, role, and region assignment.

# err Mapping

Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
[apperr.AppError] types to avoid leaking storage implementation details.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/narkhlab/narkh/internal/platform/apperr"
	"github.com/narkhlab/narkh/internal/platform/database/schema"
	"github.com/narkhlab/narkh/internal/platform/dberr"
	"github.com/narkhlab/narkh/internal/platform/sec"
)

// # User Repository

// PostgresUserRepository implements the [UserRepository] interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func userColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.FullName,
		schema.UserAccount.PasswordHash, schema.UserAccount.Role, schema.UserAccount.ProvinceID,
		schema.UserAccount.MarketID, schema.UserAccount.AvatarURL, schema.UserAccount.IsActive,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.Role,
		&user.ProvinceID,
		&user.MarketID,
		&user.AvatarURL,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account metadata, ensuring timestamps are
initialized if not provided.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on a duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		schema.UserAccount.Table, userColumns(),
	)

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.Role,
		user.ProvinceID,
		user.MarketID,
		user.AvatarURL,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_create_failed")
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Description: Case-insensitive lookup used by login and password recovery.
Deactivated accounts are still returned; callers decide whether the account
may authenticate.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE LOWER(%s) = LOWER($1)`,
		userColumns(), schema.UserAccount.Table, schema.UserAccount.Email,
	)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		userColumns(), schema.UserAccount.Table, schema.UserAccount.ID,
	)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
FindPrincipal resolves an active account into its request-scoped view.

Description: Backs the cookie authenticator. Only active accounts resolve;
a deactivated account behaves exactly like a missing one, so holding a valid
token is never enough on its own.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *sec.Principal: Context-safe identity snapshot
  - error: apperr.NotFound for missing or deactivated accounts
*/
func (repository *PostgresUserRepository) FindPrincipal(context context.Context, userID string) (*sec.Principal, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = TRUE`,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.FullName,
		schema.UserAccount.Role, schema.UserAccount.ProvinceID, schema.UserAccount.MarketID,
		schema.UserAccount.AvatarURL, schema.UserAccount.CreatedAt,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.IsActive,
	)

	principal := &sec.Principal{}
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&principal.ID,
		&principal.Email,
		&principal.FullName,
		&principal.Role,
		&principal.ProvinceID,
		&principal.MarketID,
		&principal.AvatarURL,
		&principal.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_principal_failed: %w", err)
	}

	return principal, nil
}

/*
List returns a page of accounts plus the unpaged total.

Description: Administrative listing with optional role, province, and
active-only filters.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*User: Page of accounts, newest first
  - int: Total matching rows before pagination
  - error: Execution errors
*/
func (repository *PostgresUserRepository) List(context context.Context, filter Filter, limit, offset int) ([]*User, int, error) {
	where := "TRUE"
	args := []any{}

	if filter.Role != "" {
		args = append(args, filter.Role)
		where += fmt.Sprintf(" AND %s = $%d", schema.UserAccount.Role, len(args))
	}
	if filter.ProvinceID != "" {
		args = append(args, filter.ProvinceID)
		where += fmt.Sprintf(" AND %s = $%d", schema.UserAccount.ProvinceID, len(args))
	}
	if filter.ActiveOnly {
		where += fmt.Sprintf(" AND %s = TRUE", schema.UserAccount.IsActive)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", schema.UserAccount.Table, where)

	total := 0
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_count_failed: %w", err)
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d`,
		userColumns(), schema.UserAccount.Table, where,
		schema.UserAccount.CreatedAt, len(args)-1, len(args),
	)

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_user_repo_list_scan_failed: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_list_rows_failed: %w", err)
	}

	return users, total, nil
}

/*
Update persists changes to a user's mutable fields.

Description: Synchronizes full name, avatar, role, region assignment, and the
active flag, refreshing the updatedat timestamp.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Update failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.FullName, schema.UserAccount.AvatarURL, schema.UserAccount.Role,
		schema.UserAccount.ProvinceID, schema.UserAccount.MarketID, schema.UserAccount.IsActive,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.FullName,
		user.AvatarURL,
		user.Role,
		user.ProvinceID,
		user.MarketID,
		user.IsActive,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_update_failed")
	}

	return nil
}

/*
UpdatePassword updates only the password hash for a specific user.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.PasswordHash, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	_, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}

	return nil
}
