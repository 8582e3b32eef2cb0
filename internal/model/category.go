package model

import (
	"fmt"
	"strings"
	"time"
)

// CategoryKind indicates whether a category classifies income or expense
// transactions. The set is closed: persisting a new variant is a breaking
// change for the transaction guard and the report aggregation.
type CategoryKind string

const (
	// KindIncome marks categories for income transactions.
	KindIncome CategoryKind = "INCOME"
	// KindExpense marks categories for expense transactions.
	KindExpense CategoryKind = "EXPENSE"
)

// ParseCategoryKind converts user input to a CategoryKind.
func ParseCategoryKind(s string) (CategoryKind, error) {
	switch CategoryKind(strings.ToUpper(strings.TrimSpace(s))) {
	case KindIncome:
		return KindIncome, nil
	case KindExpense:
		return KindExpense, nil
	default:
		return "", fmt.Errorf("unknown category kind %q", s)
	}
}

// Category groups an owner's transactions under a named kind.
// The (name, owner, active) triple is unique: no two live categories of the
// same owner share a name. Kind is immutable once transactions reference it.
type Category struct {
	CreatedAt time.Time
	Name      string
	Kind      CategoryKind
	ID        int64
	OwnerID   int64
	IsActive  bool
}

// Validate checks the category's own field invariants.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category name is required")
	}
	if len(c.Name) > 100 {
		return fmt.Errorf("category name too long (max 100 characters)")
	}
	if c.Kind != KindIncome && c.Kind != KindExpense {
		return fmt.Errorf("unknown category kind %q", c.Kind)
	}
	return nil
}
