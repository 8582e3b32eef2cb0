package ledger

import (
	"context"
	"time"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
	"github.com/caiorodriguesslv/planwise-backend/internal/service"
)

// Summary totals the owner's live records. The balance is incomes minus
// expenses and goes negative when spending outruns earning.
type Summary struct {
	TotalIncomes  model.Money `json:"totalIncomes"`
	TotalExpenses model.Money `json:"totalExpenses"`
	Balance       model.Money `json:"balance"`
}

// PeriodReport is a summary over one calendar period, with record counts.
type PeriodReport struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Summary
	IncomeCount  int64 `json:"incomeCount"`
	ExpenseCount int64 `json:"expenseCount"`
}

// GoalsSummary tallies the owner's live goals by their persisted status.
// Statuses are counted as stored; the report does not re-derive them.
type GoalsSummary struct {
	Total      int64 `json:"total"`
	InProgress int64 `json:"inProgress"`
	Achieved   int64 `json:"achieved"`
	Expired    int64 `json:"expired"`
}

// ReportService computes aggregates over the owner's ledger.
type ReportService struct {
	store service.Storage
}

// NewReportService creates a report service backed by the given storage.
func NewReportService(store service.Storage) *ReportService {
	return &ReportService{store: store}
}

// Summary totals all the owner's live records, optionally restricted to a
// date range. Empty sets total to zero.
func (s *ReportService) Summary(ctx context.Context, ownerID int64, dateRange *service.DateRange) (*Summary, error) {
	incomes, err := s.store.SumTransactions(ctx, ownerID, model.TransactionIncome, dateRange)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.SumTransactions(ctx, ownerID, model.TransactionExpense, dateRange)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalIncomes:  incomes,
		TotalExpenses: expenses,
		Balance:       incomes.Sub(expenses),
	}, nil
}

// TotalByKind sums one side of the ledger, optionally over a date range.
func (s *ReportService) TotalByKind(ctx context.Context, ownerID int64, kind model.TransactionKind, dateRange *service.DateRange) (model.Money, error) {
	return s.store.SumTransactions(ctx, ownerID, kind, dateRange)
}

// Monthly reports on one calendar month. Month lengths follow the calendar,
// February included.
func (s *ReportService) Monthly(ctx context.Context, ownerID int64, year int, month time.Month) (*PeriodReport, error) {
	if month < time.January || month > time.December {
		return nil, common.Validationf("month must be between 1 and 12, got %d", month)
	}
	if year <= 0 {
		return nil, common.Validationf("year must be positive, got %d", year)
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC) // day 0: last day of month
	return s.period(ctx, ownerID, start, end)
}

// Yearly reports on one calendar year.
func (s *ReportService) Yearly(ctx context.Context, ownerID int64, year int) (*PeriodReport, error) {
	if year <= 0 {
		return nil, common.Validationf("year must be positive, got %d", year)
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return s.period(ctx, ownerID, start, end)
}

// Goals tallies the owner's live goals by status.
func (s *ReportService) Goals(ctx context.Context, ownerID int64) (*GoalsSummary, error) {
	total, err := s.store.CountGoals(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary := &GoalsSummary{Total: total}
	counts := []struct {
		status model.GoalStatus
		dest   *int64
	}{
		{model.GoalInProgress, &summary.InProgress},
		{model.GoalAchieved, &summary.Achieved},
		{model.GoalExpired, &summary.Expired},
	}
	for _, c := range counts {
		n, err := s.store.CountGoalsByStatus(ctx, ownerID, c.status)
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	return summary, nil
}

func (s *ReportService) period(ctx context.Context, ownerID int64, start, end time.Time) (*PeriodReport, error) {
	dateRange := &service.DateRange{Start: start, End: end}

	summary, err := s.Summary(ctx, ownerID, dateRange)
	if err != nil {
		return nil, err
	}

	incomeCount, err := s.store.CountTransactions(ctx, ownerID, model.TransactionIncome, dateRange)
	if err != nil {
		return nil, err
	}
	expenseCount, err := s.store.CountTransactions(ctx, ownerID, model.TransactionExpense, dateRange)
	if err != nil {
		return nil, err
	}

	return &PeriodReport{
		Start:        start,
		End:          end,
		Summary:      *summary,
		IncomeCount:  incomeCount,
		ExpenseCount: expenseCount,
	}, nil
}
