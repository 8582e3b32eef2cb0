// Package storage provides the data persistence layer for the planwise backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/caiorodriguesslv/planwise-backend/internal/model"
	"github.com/caiorodriguesslv/planwise-backend/internal/service"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidOwner     = errors.New("owner id must be positive")
	ErrInvalidDateRange = errors.New("start date must be before end date")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateOwner ensures an owner id is usable as a scope.
func validateOwner(ownerID int64) error {
	if ownerID <= 0 {
		return ErrInvalidOwner
	}
	return nil
}

// validateDateRange ensures a date range, when given, is well ordered.
func validateDateRange(r *service.DateRange) error {
	if r == nil {
		return nil
	}
	if r.End.Before(r.Start) {
		return ErrInvalidDateRange
	}
	return nil
}

// validateCategory validates a category before persisting it.
func validateCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if err := validateOwner(category.OwnerID); err != nil {
		return err
	}
	return category.Validate()
}

// validateTransaction validates a transaction before persisting it.
func validateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if err := validateOwner(txn.OwnerID); err != nil {
		return err
	}
	if err := validateString(txn.ID, "id"); err != nil {
		return err
	}
	return txn.Validate()
}

// validateGoal validates a goal before persisting it.
func validateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if err := validateOwner(goal.OwnerID); err != nil {
		return err
	}
	if err := validateString(goal.ID, "id"); err != nil {
		return err
	}
	return goal.Validate()
}
