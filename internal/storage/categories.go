package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
)

const categoryColumns = `id, name, kind, owner_id, is_active, created_at`

func scanCategory(row interface{ Scan(...any) error }) (*model.Category, error) {
	var cat model.Category
	err := row.Scan(&cat.ID, &cat.Name, &cat.Kind, &cat.OwnerID, &cat.IsActive, &cat.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateCategory inserts a new category for its owner.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if err := validateCategory(ctx, category); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO categories (name, kind, owner_id, is_active, created_at)
		VALUES (?, ?, ?, 1, ?)`

	result, err := s.db.ExecContext(ctx, query,
		category.Name, string(category.Kind), category.OwnerID, now)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, common.Conflictf("category %q already exists", category.Name)
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category id: %w", err)
	}

	created := *category
	created.ID = id
	created.IsActive = true
	created.CreatedAt = now

	slog.Debug("created category", "id", created.ID, "name", created.Name, "kind", created.Kind)
	return &created, nil
}

// GetCategories returns all live categories for the owner, ordered by name.
func (s *SQLiteStorage) GetCategories(ctx context.Context, ownerID int64) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE owner_id = ? AND is_active = 1
		ORDER BY name`

	return s.queryCategories(ctx, query, ownerID)
}

// GetCategoriesByKind returns the owner's live categories of one kind.
func (s *SQLiteStorage) GetCategoriesByKind(ctx context.Context, ownerID int64, kind model.CategoryKind) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE owner_id = ? AND kind = ? AND is_active = 1
		ORDER BY name`

	return s.queryCategories(ctx, query, ownerID, string(kind))
}

// GetCategoryByID returns the owner's live category, or (nil, nil) when the
// id is missing, retired, or belongs to someone else.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id, ownerID int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = ? AND owner_id = ? AND is_active = 1`

	cat, err := scanCategory(s.db.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return cat, nil
}

// SearchCategories returns live categories whose name contains the query,
// case-insensitively.
func (s *SQLiteStorage) SearchCategories(ctx context.Context, ownerID int64, query string) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	if err := validateString(query, "search query"); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE owner_id = ? AND is_active = 1 AND name LIKE ? COLLATE NOCASE
		ORDER BY name`

	return s.queryCategories(ctx, sqlQuery, ownerID, "%"+query+"%")
}

// CategoryNameExists reports whether the owner already has a live category
// with this exact name. excludeID skips one row, so a rename does not
// collide with itself; pass 0 to check all rows.
func (s *SQLiteStorage) CategoryNameExists(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateOwner(ownerID); err != nil {
		return false, err
	}
	if err := validateString(name, "category name"); err != nil {
		return false, err
	}

	query := `
		SELECT COUNT(*)
		FROM categories
		WHERE owner_id = ? AND name = ? AND is_active = 1 AND id != ?`

	var count int64
	err := s.db.QueryRowContext(ctx, query, ownerID, name, excludeID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}

	return count > 0, nil
}

// UpdateCategory persists name and kind changes to a live category.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, category *model.Category) error {
	if err := validateCategory(ctx, category); err != nil {
		return err
	}
	if category.ID <= 0 {
		return fmt.Errorf("category id must be positive, got %d", category.ID)
	}

	query := `
		UPDATE categories
		SET name = ?, kind = ?
		WHERE id = ? AND owner_id = ? AND is_active = 1`

	result, err := s.db.ExecContext(ctx, query,
		category.Name, string(category.Kind), category.ID, category.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return common.NotFoundf("category %d", category.ID)
	}

	slog.Debug("updated category", "id", category.ID, "name", category.Name)
	return nil
}

// DeleteCategory retires a live category. The row is kept so past
// transactions can still resolve their category.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id, ownerID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOwner(ownerID); err != nil {
		return err
	}

	query := `
		UPDATE categories
		SET is_active = 0
		WHERE id = ? AND owner_id = ? AND is_active = 1`

	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return common.NotFoundf("category %d", id)
	}

	slog.Debug("retired category", "id", id)
	return nil
}

func (s *SQLiteStorage) queryCategories(ctx context.Context, query string, args ...any) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}
