package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/caiorodriguesslv/planwise-backend/internal/model"
	"github.com/caiorodriguesslv/planwise-backend/internal/storage"
)

// newTestStore opens a migrated throwaway database and registers an owner.
func newTestStore(t *testing.T) (*storage.SQLiteStorage, int64) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	user, err := store.CreateUser(ctx, &model.User{
		Name:         "Test Owner",
		Email:        "owner@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	return store, user.ID
}

func newSecondOwner(t *testing.T, store *storage.SQLiteStorage) int64 {
	t.Helper()

	user, err := store.CreateUser(context.Background(), &model.User{
		Name:         "Other Owner",
		Email:        "other@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("Failed to create second user: %v", err)
	}
	return user.ID
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
