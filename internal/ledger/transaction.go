package ledger

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
	"github.com/caiorodriguesslv/planwise-backend/internal/service"
)

// TransactionInput carries the caller-supplied fields of an income or
// expense record.
type TransactionInput struct {
	Date        time.Time
	Description string
	Amount      model.Money
	CategoryID  int64
}

// TransactionService manages income and expense records.
type TransactionService struct {
	store service.Storage
}

// NewTransactionService creates a transaction service backed by the given
// storage.
func NewTransactionService(store service.Storage) *TransactionService {
	return &TransactionService{store: store}
}

// Create files a new record of the given kind. The referenced category must
// be live, belong to the owner, and carry the matching kind: an income can
// only be filed under an income category, an expense under an expense one.
func (s *TransactionService) Create(ctx context.Context, ownerID int64, kind model.TransactionKind, input TransactionInput) (*model.Transaction, error) {
	txn := &model.Transaction{
		ID:          uuid.NewString(),
		Kind:        kind,
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Date:        dateOnly(input.Date),
		CategoryID:  input.CategoryID,
		OwnerID:     ownerID,
	}
	if err := txn.Validate(); err != nil {
		return nil, common.Validationf("%v", err)
	}

	if err := s.checkCategory(ctx, ownerID, kind, input.CategoryID); err != nil {
		return nil, err
	}

	created, err := s.store.CreateTransaction(ctx, txn)
	if err != nil {
		return nil, err
	}

	slog.Info("transaction recorded",
		"id", created.ID, "kind", created.Kind, "amount", created.Amount)
	return created, nil
}

// List returns the owner's live records of one kind, newest first.
func (s *TransactionService) List(ctx context.Context, ownerID int64, kind model.TransactionKind, filter service.TransactionFilter) ([]model.Transaction, error) {
	return s.store.GetTransactions(ctx, ownerID, kind, filter)
}

// Get returns one of the owner's live records of the given kind.
func (s *TransactionService) Get(ctx context.Context, ownerID int64, kind model.TransactionKind, id string) (*model.Transaction, error) {
	txn, err := s.store.GetTransactionByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if txn == nil || txn.Kind != kind {
		return nil, common.NotFoundf("%s %s", strings.ToLower(string(kind)), id)
	}
	return txn, nil
}

// ListByCategory returns the owner's live records of one kind filed under
// the given category.
func (s *TransactionService) ListByCategory(ctx context.Context, ownerID int64, kind model.TransactionKind, categoryID int64) ([]model.Transaction, error) {
	// The category itself must be visible to the owner.
	cat, err := s.store.GetCategoryByID(ctx, categoryID, ownerID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, common.NotFoundf("category %d", categoryID)
	}
	return s.store.GetTransactionsByCategory(ctx, ownerID, kind, categoryID)
}

// Search returns the owner's live records of one kind whose description
// matches a fragment.
func (s *TransactionService) Search(ctx context.Context, ownerID int64, kind model.TransactionKind, query string) ([]model.Transaction, error) {
	return s.store.SearchTransactions(ctx, ownerID, kind, query)
}

// Update rewrites a record's description, amount, date, and category. The
// category check applies on update just as on create: moving an expense
// under an income category is a conflict.
func (s *TransactionService) Update(ctx context.Context, ownerID int64, kind model.TransactionKind, id string, input TransactionInput) (*model.Transaction, error) {
	txn, err := s.Get(ctx, ownerID, kind, id)
	if err != nil {
		return nil, err
	}

	txn.Description = strings.TrimSpace(input.Description)
	txn.Amount = input.Amount
	txn.Date = dateOnly(input.Date)
	txn.CategoryID = input.CategoryID
	if err := txn.Validate(); err != nil {
		return nil, common.Validationf("%v", err)
	}

	if err := s.checkCategory(ctx, ownerID, kind, input.CategoryID); err != nil {
		return nil, err
	}

	if err := s.store.UpdateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	slog.Info("transaction updated", "id", id, "kind", kind)
	return txn, nil
}

// Delete retires a record of the given kind.
func (s *TransactionService) Delete(ctx context.Context, ownerID int64, kind model.TransactionKind, id string) error {
	// Resolve first so a wrong-kind id reads as absent.
	if _, err := s.Get(ctx, ownerID, kind, id); err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, id, ownerID); err != nil {
		return err
	}
	slog.Info("transaction retired", "id", id, "kind", kind)
	return nil
}

// dateOnly pins a record's date to its UTC calendar day. Statement imports
// carry posting times; range filters compare whole days.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// checkCategory enforces the category rules for filing a record: the
// category must resolve inside the owner's scope and its kind must match
// the record's kind.
func (s *TransactionService) checkCategory(ctx context.Context, ownerID int64, kind model.TransactionKind, categoryID int64) error {
	cat, err := s.store.GetCategoryByID(ctx, categoryID, ownerID)
	if err != nil {
		return err
	}
	if cat == nil {
		return common.NotFoundf("category %d", categoryID)
	}
	if cat.Kind != kind.CategoryKind() {
		return common.Conflictf("category %q is a %s category, cannot file a %s under it",
			cat.Name, cat.Kind, strings.ToLower(string(kind)))
	}
	return nil
}
