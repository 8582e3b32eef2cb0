// Package ledger implements the core bookkeeping rules: category management,
// income and expense records, savings goals, and aggregate reports. All
// operations are scoped to the calling owner; a record outside that scope is
// reported as absent.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
	"github.com/caiorodriguesslv/planwise-backend/internal/service"
)

// CategoryService manages income and expense categories.
type CategoryService struct {
	store service.Storage
}

// NewCategoryService creates a category service backed by the given storage.
func NewCategoryService(store service.Storage) *CategoryService {
	return &CategoryService{store: store}
}

// Create registers a new category. The name must be unique among the owner's
// live categories of any kind.
func (s *CategoryService) Create(ctx context.Context, ownerID int64, name string, kind model.CategoryKind) (*model.Category, error) {
	name = strings.TrimSpace(name)

	cat := &model.Category{
		Name:    name,
		Kind:    kind,
		OwnerID: ownerID,
	}
	if err := cat.Validate(); err != nil {
		return nil, common.Validationf("%v", err)
	}

	taken, err := s.store.CategoryNameExists(ctx, ownerID, name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if taken {
		return nil, common.Conflictf("category name %q is already in use", name)
	}

	created, err := s.store.CreateCategory(ctx, cat)
	if err != nil {
		return nil, err
	}

	slog.Info("category created", "id", created.ID, "kind", created.Kind)
	return created, nil
}

// List returns all the owner's live categories.
func (s *CategoryService) List(ctx context.Context, ownerID int64) ([]model.Category, error) {
	return s.store.GetCategories(ctx, ownerID)
}

// ListByKind returns the owner's live categories of one kind.
func (s *CategoryService) ListByKind(ctx context.Context, ownerID int64, kind model.CategoryKind) ([]model.Category, error) {
	return s.store.GetCategoriesByKind(ctx, ownerID, kind)
}

// Get returns one of the owner's live categories.
func (s *CategoryService) Get(ctx context.Context, ownerID, id int64) (*model.Category, error) {
	cat, err := s.store.GetCategoryByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, common.NotFoundf("category %d", id)
	}
	return cat, nil
}

// Search returns the owner's live categories matching a name fragment.
func (s *CategoryService) Search(ctx context.Context, ownerID int64, query string) ([]model.Category, error) {
	return s.store.SearchCategories(ctx, ownerID, query)
}

// Rename changes a category's name. The kind is fixed for the life of the
// category; transactions filed under it rely on the kind never moving.
// The new name must be free among the owner's other live categories, the
// row being renamed excluded.
func (s *CategoryService) Rename(ctx context.Context, ownerID, id int64, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)

	cat, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	cat.Name = name
	if err := cat.Validate(); err != nil {
		return nil, common.Validationf("%v", err)
	}

	taken, err := s.store.CategoryNameExists(ctx, ownerID, name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if taken {
		return nil, common.Conflictf("category name %q is already in use", name)
	}

	if err := s.store.UpdateCategory(ctx, cat); err != nil {
		return nil, err
	}

	slog.Info("category renamed", "id", id)
	return cat, nil
}

// Delete retires a category. Transactions already filed under it keep their
// reference; nothing is removed from history.
func (s *CategoryService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.store.DeleteCategory(ctx, id, ownerID); err != nil {
		return err
	}
	slog.Info("category retired", "id", id)
	return nil
}
