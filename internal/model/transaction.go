package model

import (
	"fmt"
	"strings"
	"time"
)

// TransactionKind distinguishes incomes from expenses. A transaction's kind
// must match the kind of the category it references.
type TransactionKind string

const (
	// TransactionIncome is money coming in.
	TransactionIncome TransactionKind = "INCOME"
	// TransactionExpense is money going out.
	TransactionExpense TransactionKind = "EXPENSE"
)

// CategoryKind returns the category kind a transaction of this kind must
// reference.
func (k TransactionKind) CategoryKind() CategoryKind {
	if k == TransactionIncome {
		return KindIncome
	}
	return KindExpense
}

// Transaction is a single income or expense record in an owner's ledger.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	ID          string
	Description string
	Kind        TransactionKind
	Amount      Money
	CategoryID  int64
	OwnerID     int64
	IsActive    bool
}

// Validate checks the transaction's own field invariants. Category ownership
// and kind compatibility are enforced by the ledger service, not here.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if len(t.Description) > 200 {
		return fmt.Errorf("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return fmt.Errorf("amount must be positive: %w", err)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if t.CategoryID <= 0 {
		return fmt.Errorf("category is required")
	}
	if t.Kind != TransactionIncome && t.Kind != TransactionExpense {
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
	return nil
}
