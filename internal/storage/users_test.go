package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
)

func TestCreateUser(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	user, err := store.CreateUser(ctx, &model.User{
		Name:         "Alice",
		Email:        "Alice@Example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         model.RoleUser,
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email, "emails are stored lowercased")
	assert.True(t, user.IsActive)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, store, "alice@example.com")

	_, err := store.CreateUser(ctx, &model.User{
		Name:         "Impostor",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         model.RoleUser,
	})
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestGetUserByEmail(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	id := createTestUser(t, store, "alice@example.com")

	got, err := store.GetUserByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)

	missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetUserByID(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	id := createTestUser(t, store, "alice@example.com")

	got, err := store.GetUserByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice@example.com", got.Email)

	missing, err := store.GetUserByID(ctx, id+99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
