package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
	"github.com/caiorodriguesslv/planwise-backend/internal/storage"
)

// seedLedger files a handful of incomes and expenses across two months.
func seedLedger(t *testing.T, store *storage.SQLiteStorage, ownerID int64) {
	t.Helper()
	ctx := context.Background()

	categories := NewCategoryService(store)
	transactions := NewTransactionService(store)

	salary, err := categories.Create(ctx, ownerID, "Salary", model.KindIncome)
	require.NoError(t, err)
	groceries, err := categories.Create(ctx, ownerID, "Groceries", model.KindExpense)
	require.NoError(t, err)

	entries := []struct {
		date   time.Time
		kind   model.TransactionKind
		catID  int64
		amount int64
	}{
		{date: date(2024, time.February, 1), kind: model.TransactionIncome, catID: salary.ID, amount: 500000},
		{date: date(2024, time.February, 29), kind: model.TransactionIncome, catID: salary.ID, amount: 50000},
		{date: date(2024, time.February, 10), kind: model.TransactionExpense, catID: groceries.ID, amount: 120000},
		{date: date(2024, time.March, 1), kind: model.TransactionExpense, catID: groceries.ID, amount: 80000},
	}
	for _, e := range entries {
		_, err := transactions.Create(ctx, ownerID, e.kind, TransactionInput{
			Description: "Seed entry",
			Amount:      model.Money{Cents: e.amount},
			Date:        e.date,
			CategoryID:  e.catID,
		})
		require.NoError(t, err)
	}
}

func TestReportSummary(t *testing.T) {
	store, ownerID := newTestStore(t)
	seedLedger(t, store, ownerID)

	svc := NewReportService(store)
	summary, err := svc.Summary(context.Background(), ownerID, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(550000), summary.TotalIncomes.Cents)
	assert.Equal(t, int64(200000), summary.TotalExpenses.Cents)
	assert.Equal(t, int64(350000), summary.Balance.Cents)
}

func TestReportSummaryEmptyLedger(t *testing.T) {
	store, ownerID := newTestStore(t)

	svc := NewReportService(store)
	summary, err := svc.Summary(context.Background(), ownerID, nil)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalIncomes.Cents)
	assert.Zero(t, summary.TotalExpenses.Cents)
	assert.Zero(t, summary.Balance.Cents)
}

func TestReportNegativeBalance(t *testing.T) {
	store, ownerID := newTestStore(t)
	ctx := context.Background()

	categories := NewCategoryService(store)
	transactions := NewTransactionService(store)
	groceries, err := categories.Create(ctx, ownerID, "Groceries", model.KindExpense)
	require.NoError(t, err)

	_, err = transactions.Create(ctx, ownerID, model.TransactionExpense, TransactionInput{
		Description: "Big spend",
		Amount:      model.Money{Cents: 75000},
		Date:        date(2024, time.February, 5),
		CategoryID:  groceries.ID,
	})
	require.NoError(t, err)

	svc := NewReportService(store)
	summary, err := svc.Summary(ctx, ownerID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-75000), summary.Balance.Cents)
	assert.True(t, summary.Balance.IsNegative())
}

func TestReportMonthly(t *testing.T) {
	store, ownerID := newTestStore(t)
	seedLedger(t, store, ownerID)

	svc := NewReportService(store)
	ctx := context.Background()

	// 2024 is a leap year: February 29 belongs to February.
	feb, err := svc.Monthly(ctx, ownerID, 2024, time.February)
	require.NoError(t, err)
	assert.Equal(t, int64(550000), feb.TotalIncomes.Cents)
	assert.Equal(t, int64(120000), feb.TotalExpenses.Cents)
	assert.Equal(t, int64(2), feb.IncomeCount)
	assert.Equal(t, int64(1), feb.ExpenseCount)
	assert.Equal(t, date(2024, time.February, 29), feb.End)

	mar, err := svc.Monthly(ctx, ownerID, 2024, time.March)
	require.NoError(t, err)
	assert.Zero(t, mar.TotalIncomes.Cents)
	assert.Equal(t, int64(80000), mar.TotalExpenses.Cents)
	assert.Equal(t, int64(-80000), mar.Balance.Cents)
}

func TestReportMonthlyIncludesIntradayLastDay(t *testing.T) {
	store, ownerID := newTestStore(t)
	ctx := context.Background()

	categories := NewCategoryService(store)
	transactions := NewTransactionService(store)
	salary, err := categories.Create(ctx, ownerID, "Salary", model.KindIncome)
	require.NoError(t, err)

	// Statement imports carry posting times. A record posted mid-afternoon
	// on the last day of March still belongs to March.
	created, err := transactions.Create(ctx, ownerID, model.TransactionIncome, TransactionInput{
		Description: "Posted mid-day",
		Amount:      model.Money{Cents: 300000},
		Date:        time.Date(2024, time.March, 31, 15, 0, 0, 0, time.UTC),
		CategoryID:  salary.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 31), created.Date)

	svc := NewReportService(store)
	mar, err := svc.Monthly(ctx, ownerID, 2024, time.March)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), mar.TotalIncomes.Cents)
	assert.Equal(t, int64(1), mar.IncomeCount)

	year, err := svc.Yearly(ctx, ownerID, 2024)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), year.TotalIncomes.Cents)
}

func TestReportMonthlyValidation(t *testing.T) {
	store, ownerID := newTestStore(t)
	svc := NewReportService(store)
	ctx := context.Background()

	_, err := svc.Monthly(ctx, ownerID, 2024, time.Month(13))
	assert.True(t, errors.Is(err, common.ErrValidation))

	_, err = svc.Monthly(ctx, ownerID, 0, time.January)
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestReportYearly(t *testing.T) {
	store, ownerID := newTestStore(t)
	seedLedger(t, store, ownerID)

	svc := NewReportService(store)
	report, err := svc.Yearly(context.Background(), ownerID, 2024)
	require.NoError(t, err)

	assert.Equal(t, int64(550000), report.TotalIncomes.Cents)
	assert.Equal(t, int64(200000), report.TotalExpenses.Cents)
	assert.Equal(t, int64(2), report.IncomeCount)
	assert.Equal(t, int64(2), report.ExpenseCount)

	empty, err := svc.Yearly(context.Background(), ownerID, 2023)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalIncomes.Cents)
	assert.Zero(t, empty.ExpenseCount)
}

func TestReportGoals(t *testing.T) {
	store, ownerID := newTestStore(t)
	ctx := context.Background()

	goals := newGoalService(store, date(2025, time.June, 1))

	// One of each persisted status.
	_, err := goals.Create(ctx, ownerID, GoalInput{
		Description: "In flight",
		TargetValue: model.Money{Cents: 10000},
		Deadline:    date(2025, time.December, 31),
	})
	require.NoError(t, err)

	achieved, err := goals.Create(ctx, ownerID, GoalInput{
		Description: "Done",
		TargetValue: model.Money{Cents: 5000},
		Deadline:    date(2025, time.December, 31),
	})
	require.NoError(t, err)
	_, err = goals.SetProgress(ctx, ownerID, achieved.ID, model.Money{Cents: 5000})
	require.NoError(t, err)

	_, err = goals.Create(ctx, ownerID, GoalInput{
		Description: "Missed",
		TargetValue: model.Money{Cents: 5000},
		Deadline:    date(2025, time.January, 31),
	})
	require.NoError(t, err)

	svc := NewReportService(store)
	summary, err := svc.Goals(ctx, ownerID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.Total)
	assert.Equal(t, int64(1), summary.InProgress)
	assert.Equal(t, int64(1), summary.Achieved)
	assert.Equal(t, int64(1), summary.Expired)

	// Another owner sees an empty board.
	otherID := newSecondOwner(t, store)
	other, err := svc.Goals(ctx, otherID)
	require.NoError(t, err)
	assert.Zero(t, other.Total)
}
