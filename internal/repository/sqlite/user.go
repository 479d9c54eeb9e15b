package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/asif/userstore/internal/apperror"
	"github.com/asif/userstore/internal/model"
	"github.com/asif/userstore/internal/repository"
)

// Compile-time check that *DB implements repository.UserRepository.
var _ repository.UserRepository = (*DB)(nil)

// List returns every user record. An empty store yields an empty slice —
// the handler layer decides whether that is a 404.
func (db *DB) List(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username, email, password, created_at, updated_at
		 FROM users
		 ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.Password,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	return users, nil
}

// GetByID retrieves a user by its internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (db *DB) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password, created_at, updated_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(
		&u.ID, &u.Username, &u.Email, &u.Password,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by email, the secondary lookup key used by
// login and the duplicate-registration check.
func (db *DB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password, created_at, updated_at
		 FROM users WHERE email = ?`,
		email,
	).Scan(
		&u.ID, &u.Username, &u.Email, &u.Password,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: fmt.Sprintf("user not found with email %s", email),
			}
		}
		return nil, fmt.Errorf("sqlite: getting user by email %s: %w", email, err)
	}

	return &u, nil
}

// Create inserts a new user, assigning an xid and timestamps in place.
//
// The duplicate-email check and the insert are ONE conditional INSERT
// statement, so the check-then-act pair has no window between check and
// act: the statement holds the write lock for both. A registration that
// finds the email taken inserts zero rows and gets apperror.ErrConflict.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password, created_at, updated_at)
		 SELECT ?, ?, ?, ?, ?, ?
		 WHERE NOT EXISTS (SELECT 1 FROM users WHERE email = ?)`,
		user.ID, user.Username, user.Email, user.Password,
		user.CreatedAt, user.UpdatedAt,
		user.Email,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.Conflict("user", fmt.Sprintf("email %s", user.Email))
	}

	return nil
}

// Update replaces all mutable fields of an existing user. The UPDATE itself
// is the existence check — RowsAffected == 0 means the id was absent, so no
// separate read precedes the write. On success the row is read back so the
// caller gets the canonical timestamps.
func (db *DB) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE users
		 SET username = ?, email = ?, password = ?, updated_at = ?
		 WHERE id = ?`,
		user.Username, user.Email, user.Password, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", user.ID)
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT created_at FROM users WHERE id = ?`, user.ID,
	).Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: reading back user %s: %w", user.ID, err)
	}

	return nil
}

// Delete removes a user by ID. Same single-statement pattern as Update —
// RowsAffected detects "not found".
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM users WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", id)
	}

	return nil
}

// ComparePassword looks up the account by email and compares the stored
// password to the supplied one by direct string equality — that is the
// credential contract of this service, there is no hashing layer.
// Returns apperror.ErrNotFound if no account has that email.
func (db *DB) ComparePassword(ctx context.Context, email, password string) (bool, error) {
	var stored string

	err := db.conn.QueryRowContext(ctx,
		`SELECT password FROM users WHERE email = ?`, email,
	).Scan(&stored)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: fmt.Sprintf("user not found with email %s", email),
			}
		}
		return false, fmt.Errorf("sqlite: reading password for %s: %w", email, err)
	}

	return stored == password, nil
}
