package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
	"github.com/caiorodriguesslv/planwise-backend/internal/service"
)

const transactionColumns = `id, kind, description, amount_cents, date, category_id, owner_id, is_active, created_at`

func scanTransaction(row interface{ Scan(...any) error }) (*model.Transaction, error) {
	var (
		txn   model.Transaction
		cents int64
	)
	err := row.Scan(&txn.ID, &txn.Kind, &txn.Description, &cents,
		&txn.Date, &txn.CategoryID, &txn.OwnerID, &txn.IsActive, &txn.CreatedAt)
	if err != nil {
		return nil, err
	}
	txn.Amount = model.Money{Cents: cents}
	return &txn, nil
}

// CreateTransaction inserts a new income or expense record.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	if err := validateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO transactions (id, kind, description, amount_cents, date, category_id, owner_id, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)`

	_, err := s.db.ExecContext(ctx, query,
		txn.ID, string(txn.Kind), txn.Description, txn.Amount.Cents,
		txn.Date.UTC(), txn.CategoryID, txn.OwnerID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	created := *txn
	created.IsActive = true
	created.CreatedAt = now

	slog.Debug("created transaction",
		"id", created.ID, "kind", created.Kind, "amount", created.Amount)
	return &created, nil
}

// GetTransactions returns the owner's live transactions of one kind,
// newest first, with optional date and paging filters.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, ownerID int64, kind model.TransactionKind, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = ? AND kind = ? AND is_active = 1`)
	args := []any{ownerID, string(kind)}

	if filter.StartDate != nil {
		sb.WriteString(" AND date >= ?")
		args = append(args, filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		sb.WriteString(" AND date <= ?")
		args = append(args, filter.EndDate.UTC())
	}

	sb.WriteString(" ORDER BY date DESC, created_at DESC")

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			sb.WriteString(" OFFSET ?")
			args = append(args, filter.Offset)
		}
	}

	return s.queryTransactions(ctx, sb.String(), args...)
}

// GetTransactionByID returns the owner's live transaction, or (nil, nil).
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string, ownerID int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "transaction id"); err != nil {
		return nil, err
	}
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = ? AND owner_id = ? AND is_active = 1`

	txn, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}

	return txn, nil
}

// GetTransactionsByCategory returns the owner's live transactions of one
// kind that point at the given category.
func (s *SQLiteStorage) GetTransactionsByCategory(ctx context.Context, ownerID int64, kind model.TransactionKind, categoryID int64) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	if categoryID <= 0 {
		return nil, fmt.Errorf("category id must be positive, got %d", categoryID)
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = ? AND kind = ? AND category_id = ? AND is_active = 1
		ORDER BY date DESC, created_at DESC`

	return s.queryTransactions(ctx, query, ownerID, string(kind), categoryID)
}

// SearchTransactions returns live transactions whose description contains
// the query, case-insensitively.
func (s *SQLiteStorage) SearchTransactions(ctx context.Context, ownerID int64, kind model.TransactionKind, query string) ([]model.Transaction, error) {
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
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = ? AND kind = ? AND is_active = 1 AND description LIKE ? COLLATE NOCASE
		ORDER BY date DESC, created_at DESC`

	return s.queryTransactions(ctx, sqlQuery, ownerID, string(kind), "%"+query+"%")
}

// UpdateTransaction persists changes to a live transaction's description,
// amount, date, and category.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateTransaction(ctx, txn); err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET description = ?, amount_cents = ?, date = ?, category_id = ?
		WHERE id = ? AND owner_id = ? AND kind = ? AND is_active = 1`

	result, err := s.db.ExecContext(ctx, query,
		txn.Description, txn.Amount.Cents, txn.Date.UTC(), txn.CategoryID,
		txn.ID, txn.OwnerID, string(txn.Kind))
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return common.NotFoundf("transaction %s", txn.ID)
	}

	slog.Debug("updated transaction", "id", txn.ID)
	return nil
}

// DeleteTransaction retires a live transaction.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string, ownerID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "transaction id"); err != nil {
		return err
	}
	if err := validateOwner(ownerID); err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET is_active = 0
		WHERE id = ? AND owner_id = ? AND is_active = 1`

	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return common.NotFoundf("transaction %s", id)
	}

	slog.Debug("retired transaction", "id", id)
	return nil
}

// SumTransactions totals the owner's live transactions of one kind. A nil
// dateRange sums everything; an empty result set sums to zero.
func (s *SQLiteStorage) SumTransactions(ctx context.Context, ownerID int64, kind model.TransactionKind, dateRange *service.DateRange) (model.Money, error) {
	if err := validateContext(ctx); err != nil {
		return model.Money{}, err
	}
	if err := validateOwner(ownerID); err != nil {
		return model.Money{}, err
	}
	if err := validateDateRange(dateRange); err != nil {
		return model.Money{}, err
	}

	query := `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM transactions
		WHERE owner_id = ? AND kind = ? AND is_active = 1`
	args := []any{ownerID, string(kind)}

	if dateRange != nil {
		query += " AND date >= ? AND date <= ?"
		args = append(args, dateRange.Start.UTC(), dateRange.End.UTC())
	}

	var cents int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&cents); err != nil {
		return model.Money{}, fmt.Errorf("failed to sum transactions: %w", err)
	}

	return model.Money{Cents: cents}, nil
}

// CountTransactions counts the owner's live transactions of one kind.
func (s *SQLiteStorage) CountTransactions(ctx context.Context, ownerID int64, kind model.TransactionKind, dateRange *service.DateRange) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateOwner(ownerID); err != nil {
		return 0, err
	}
	if err := validateDateRange(dateRange); err != nil {
		return 0, err
	}

	query := `
		SELECT COUNT(*)
		FROM transactions
		WHERE owner_id = ? AND kind = ? AND is_active = 1`
	args := []any{ownerID, string(kind)}

	if dateRange != nil {
		query += " AND date >= ? AND date <= ?"
		args = append(args, dateRange.Start.UTC(), dateRange.End.UTC())
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return count, nil
}

func (s *SQLiteStorage) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
