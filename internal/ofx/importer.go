package ofx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/ledger"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
)

// Importer files parsed statement entries into an owner's ledger.
type Importer struct {
	categories   *ledger.CategoryService
	transactions *ledger.TransactionService
}

// NewImporter creates an importer over the ledger services.
func NewImporter(categories *ledger.CategoryService, transactions *ledger.TransactionService) *Importer {
	return &Importer{categories: categories, transactions: transactions}
}

// Result summarizes one import run.
type Result struct {
	Imported int
	Skipped  int
}

// Import files each entry under a per-kind catch-all category, creating the
// category on first use. Entries that fail validation are skipped, not
// fatal; the caller gets the tally. The progress callback, when set, fires
// once per entry.
func (im *Importer) Import(ctx context.Context, ownerID int64, entries []Entry, progress func()) (Result, error) {
	var result Result
	categoryIDs := make(map[model.TransactionKind]int64, 2)

	for _, entry := range entries {
		if progress != nil {
			progress()
		}

		categoryID, ok := categoryIDs[entry.Kind]
		if !ok {
			id, err := im.ensureCategory(ctx, ownerID, entry.Kind)
			if err != nil {
				return result, err
			}
			categoryIDs[entry.Kind] = id
			categoryID = id
		}

		_, err := im.transactions.Create(ctx, ownerID, entry.Kind, ledger.TransactionInput{
			Description: entry.Description,
			Amount:      entry.Amount,
			Date:        entry.Date,
			CategoryID:  categoryID,
		})
		if err != nil {
			if errors.Is(err, common.ErrValidation) {
				slog.Warn("skipped statement entry",
					"description", entry.Description, "error", err)
				result.Skipped++
				continue
			}
			return result, err
		}
		result.Imported++
	}

	return result, nil
}

// ensureCategory finds or creates the catch-all category for a kind.
func (im *Importer) ensureCategory(ctx context.Context, ownerID int64, kind model.TransactionKind) (int64, error) {
	name := "Imported income"
	if kind == model.TransactionExpense {
		name = "Imported expenses"
	}

	existing, err := im.categories.ListByKind(ctx, ownerID, kind.CategoryKind())
	if err != nil {
		return 0, err
	}
	for _, cat := range existing {
		if cat.Name == name {
			return cat.ID, nil
		}
	}

	created, err := im.categories.Create(ctx, ownerID, name, kind.CategoryKind())
	if err != nil {
		return 0, fmt.Errorf("failed to create import category: %w", err)
	}
	return created.ID, nil
}
