package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
	"github.com/caiorodriguesslv/planwise-backend/internal/service"
)

func seedTransactions(t *testing.T, store *SQLiteStorage, txns []model.Transaction) {
	t.Helper()
	ctx := context.Background()
	for i := range txns {
		if _, err := store.CreateTransaction(ctx, &txns[i]); err != nil {
			t.Fatalf("Failed to seed transaction %d: %v", i, err)
		}
	}
}

func TestCreateAndGetTransaction(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := createTestUser(t, store, "owner@example.com")
	cat := createTestCategory(t, store, ownerID, "Groceries", model.KindExpense)

	txns := createTestTransactions(ownerID, cat.ID, model.TransactionExpense, 1)
	seedTransactions(t, store, txns)

	got, err := store.GetTransactionByID(ctx, txns[0].ID, ownerID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, txns[0].Description, got.Description)
	assert.Equal(t, int64(1050), got.Amount.Cents)
	assert.Equal(t, cat.ID, got.CategoryID)
	assert.True(t, got.IsActive)
}

func TestGetTransactionsFiltering(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := createTestUser(t, store, "owner@example.com")
	expCat := createTestCategory(t, store, ownerID, "Groceries", model.KindExpense)
	incCat := createTestCategory(t, store, ownerID, "Salary", model.KindIncome)

	// Five expenses on consecutive days starting 2025-06-01, one income.
	seedTransactions(t, store, createTestTransactions(ownerID, expCat.ID, model.TransactionExpense, 5))
	seedTransactions(t, store, createTestTransactions(ownerID, incCat.ID, model.TransactionIncome, 1))

	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		kind   model.TransactionKind
		filter service.TransactionFilter
		want   int
	}{
		{name: "all expenses", kind: model.TransactionExpense, want: 5},
		{name: "all incomes", kind: model.TransactionIncome, want: 1},
		{name: "date window", kind: model.TransactionExpense, filter: service.TransactionFilter{StartDate: &start, EndDate: &end}, want: 3},
		{name: "limit", kind: model.TransactionExpense, filter: service.TransactionFilter{Limit: 2}, want: 2},
		{name: "limit and offset", kind: model.TransactionExpense, filter: service.TransactionFilter{Limit: 10, Offset: 4}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.GetTransactions(ctx, ownerID, tt.kind, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestGetTransactionsOrdering(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := createTestUser(t, store, "owner@example.com")
	cat := createTestCategory(t, store, ownerID, "Groceries", model.KindExpense)

	seedTransactions(t, store, createTestTransactions(ownerID, cat.ID, model.TransactionExpense, 3))

	got, err := store.GetTransactions(ctx, ownerID, model.TransactionExpense, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i-1].Date.Before(got[i].Date))
	}
}

func TestTransactionOwnerScoping(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	alice := createTestUser(t, store, "alice@example.com")
	bob := createTestUser(t, store, "bob@example.com")
	cat := createTestCategory(t, store, alice, "Groceries", model.KindExpense)

	txns := createTestTransactions(alice, cat.ID, model.TransactionExpense, 2)
	seedTransactions(t, store, txns)

	got, err := store.GetTransactionByID(ctx, txns[0].ID, bob)
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err := store.GetTransactions(ctx, bob, model.TransactionExpense, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	err = store.DeleteTransaction(ctx, txns[0].ID, bob)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestUpdateTransaction(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := createTestUser(t, store, "owner@example.com")
	cat := createTestCategory(t, store, ownerID, "Groceries", model.KindExpense)

	txns := createTestTransactions(ownerID, cat.ID, model.TransactionExpense, 1)
	seedTransactions(t, store, txns)

	txns[0].Description = "Updated description"
	txns[0].Amount = model.Money{Cents: 9999}
	require.NoError(t, store.UpdateTransaction(ctx, &txns[0]))

	got, err := store.GetTransactionByID(ctx, txns[0].ID, ownerID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Updated description", got.Description)
	assert.Equal(t, int64(9999), got.Amount.Cents)
}

func TestDeleteTransactionHidesRow(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := createTestUser(t, store, "owner@example.com")
	cat := createTestCategory(t, store, ownerID, "Groceries", model.KindExpense)

	txns := createTestTransactions(ownerID, cat.ID, model.TransactionExpense, 2)
	seedTransactions(t, store, txns)

	require.NoError(t, store.DeleteTransaction(ctx, txns[0].ID, ownerID))

	got, err := store.GetTransactionByID(ctx, txns[0].ID, ownerID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Aggregates skip the retired row.
	sum, err := store.SumTransactions(ctx, ownerID, model.TransactionExpense, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2100), sum.Cents)
}

func TestSumTransactions(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := createTestUser(t, store, "owner@example.com")
	cat := createTestCategory(t, store, ownerID, "Groceries", model.KindExpense)

	// No rows yet: the sum normalizes to zero.
	sum, err := store.SumTransactions(ctx, ownerID, model.TransactionExpense, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum.Cents)

	seedTransactions(t, store, createTestTransactions(ownerID, cat.ID, model.TransactionExpense, 3))

	sum, err = store.SumTransactions(ctx, ownerID, model.TransactionExpense, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1050+2100+3150), sum.Cents)

	// Window covering only the first two days.
	dr := &service.DateRange{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	}
	sum, err = store.SumTransactions(ctx, ownerID, model.TransactionExpense, dr)
	require.NoError(t, err)
	assert.Equal(t, int64(1050+2100), sum.Cents)
}

func TestSumTransactionsInvalidRange(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := createTestUser(t, store, "owner@example.com")

	dr := &service.DateRange{
		Start: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := store.SumTransactions(ctx, ownerID, model.TransactionExpense, dr)
	assert.True(t, errors.Is(err, ErrInvalidDateRange))
}

func TestGetTransactionsByCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := createTestUser(t, store, "owner@example.com")
	groceries := createTestCategory(t, store, ownerID, "Groceries", model.KindExpense)
	rent := createTestCategory(t, store, ownerID, "Rent", model.KindExpense)

	seedTransactions(t, store, createTestTransactions(ownerID, groceries.ID, model.TransactionExpense, 2))
	seedTransactions(t, store, createTestTransactions(ownerID, rent.ID, model.TransactionExpense, 1))

	got, err := store.GetTransactionsByCategory(ctx, ownerID, model.TransactionExpense, groceries.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSearchTransactions(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := createTestUser(t, store, "owner@example.com")
	cat := createTestCategory(t, store, ownerID, "Groceries", model.KindExpense)

	txns := createTestTransactions(ownerID, cat.ID, model.TransactionExpense, 2)
	txns[0].Description = "Weekly market run"
	txns[1].Description = "Pharmacy"
	seedTransactions(t, store, txns)

	got, err := store.SearchTransactions(ctx, ownerID, model.TransactionExpense, "MARKET")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Weekly market run", got[0].Description)
}

func TestCountTransactions(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := createTestUser(t, store, "owner@example.com")
	cat := createTestCategory(t, store, ownerID, "Groceries", model.KindExpense)

	seedTransactions(t, store, createTestTransactions(ownerID, cat.ID, model.TransactionExpense, 4))

	count, err := store.CountTransactions(ctx, ownerID, model.TransactionExpense, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
