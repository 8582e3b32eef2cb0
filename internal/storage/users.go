package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
)

// CreateUser inserts a new user account. The email must be unique across
// all accounts, active or not.
func (s *SQLiteStorage) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user: %w", ErrNilParameter)
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO users (name, email, password_hash, role, is_active, created_at)
		VALUES (?, ?, ?, ?, 1, ?)`

	result, err := s.db.ExecContext(ctx, query,
		user.Name, strings.ToLower(user.Email), user.PasswordHash, string(user.Role), now)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, common.Conflictf("email %q is already registered", user.Email)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}

	created := *user
	created.ID = id
	created.Email = strings.ToLower(user.Email)
	created.IsActive = true
	created.CreatedAt = now

	slog.Info("created user", "id", created.ID, "email", created.Email, "role", created.Role)
	return &created, nil
}

// GetUserByEmail returns the active user with the given email, or (nil, nil)
// when no such account exists.
func (s *SQLiteStorage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(email, "email"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, email, password_hash, role, is_active, created_at
		FROM users
		WHERE email = ? AND is_active = 1`

	var user model.User
	err := s.db.QueryRowContext(ctx, query, strings.ToLower(email)).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.IsActive, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	return &user, nil
}

// GetUsers returns every active account, oldest first.
func (s *SQLiteStorage) GetUsers(ctx context.Context) ([]model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, email, password_hash, role, is_active, created_at
		FROM users
		WHERE is_active = 1
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.IsActive, &user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// GetUserByID returns the active user with the given id, or (nil, nil).
func (s *SQLiteStorage) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("user id must be positive, got %d", id)
	}

	query := `
		SELECT id, name, email, password_hash, role, is_active, created_at
		FROM users
		WHERE id = ? AND is_active = 1`

	var user model.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.IsActive, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by id: %w", err)
	}

	return &user, nil
}
