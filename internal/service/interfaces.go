// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/caiorodriguesslv/planwise-backend/internal/model"
)

// DateRange is an inclusive [Start, End] calendar interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// Storage defines the contract for our persistence layer.
//
// Every query below is owner-scoped and excludes soft-deleted rows: a record
// that is absent, owned by another user, or retired looks identical to the
// caller. Lookups return (nil, nil) when no live match exists; mutations
// return a not-found failure when the scoped row has vanished between read
// and write.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)

	// Category operations
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	GetCategories(ctx context.Context, ownerID int64) ([]model.Category, error)
	GetCategoriesByKind(ctx context.Context, ownerID int64, kind model.CategoryKind) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id, ownerID int64) (*model.Category, error)
	SearchCategories(ctx context.Context, ownerID int64, query string) ([]model.Category, error)
	CategoryNameExists(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id, ownerID int64) error

	// Transaction operations
	CreateTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	GetTransactions(ctx context.Context, ownerID int64, kind model.TransactionKind, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string, ownerID int64) (*model.Transaction, error)
	GetTransactionsByCategory(ctx context.Context, ownerID int64, kind model.TransactionKind, categoryID int64) ([]model.Transaction, error)
	SearchTransactions(ctx context.Context, ownerID int64, kind model.TransactionKind, query string) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, id string, ownerID int64) error
	SumTransactions(ctx context.Context, ownerID int64, kind model.TransactionKind, dateRange *DateRange) (model.Money, error)
	CountTransactions(ctx context.Context, ownerID int64, kind model.TransactionKind, dateRange *DateRange) (int64, error)

	// Goal operations
	CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error)
	GetGoals(ctx context.Context, ownerID int64) ([]model.Goal, error)
	GetGoalsByStatus(ctx context.Context, ownerID int64, status model.GoalStatus) ([]model.Goal, error)
	GetUnachievedGoalsPastDeadline(ctx context.Context, ownerID int64, before time.Time) ([]model.Goal, error)
	GetGoalByID(ctx context.Context, id string, ownerID int64) (*model.Goal, error)
	SearchGoals(ctx context.Context, ownerID int64, query string) ([]model.Goal, error)
	UpdateGoal(ctx context.Context, goal *model.Goal) error
	DeleteGoal(ctx context.Context, id string, ownerID int64) error
	CountGoals(ctx context.Context, ownerID int64) (int64, error)
	CountGoalsByStatus(ctx context.Context, ownerID int64, status model.GoalStatus) (int64, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
