package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/caiorodriguesslv/planwise-backend/internal/auth"
	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/config"
	"github.com/caiorodriguesslv/planwise-backend/internal/ledger"
	"github.com/caiorodriguesslv/planwise-backend/internal/storage"
)

// initStorage opens the configured database and brings it to the current
// schema.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// services bundles the core built over one storage handle.
type services struct {
	store        *storage.SQLiteStorage
	issuer       *auth.TokenIssuer
	auth         *auth.Service
	categories   *ledger.CategoryService
	transactions *ledger.TransactionService
	goals        *ledger.GoalService
	reports      *ledger.ReportService
}

func (s *services) close() {
	_ = s.store.Close()
}

// initServices wires every core service over the configured database.
func initServices(ctx context.Context) (*services, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}

	secret := viper.GetString("auth.token_secret")
	if secret == "" {
		_ = store.Close()
		return nil, fmt.Errorf("%w: auth.token_secret (PLANWISE_AUTH_TOKEN_SECRET)", common.ErrMissingConfig)
	}

	validity := viper.GetDuration("auth.token_validity")
	if validity == 0 {
		validity = 24 * time.Hour
	}

	issuer, err := auth.NewTokenIssuer([]byte(secret), validity)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &services{
		store:        store,
		issuer:       issuer,
		auth:         auth.NewService(store, issuer),
		categories:   ledger.NewCategoryService(store),
		transactions: ledger.NewTransactionService(store),
		goals:        ledger.NewGoalService(store),
		reports:      ledger.NewReportService(store),
	}, nil
}

// resolveOwner maps the --user flag to an account id for local commands.
func resolveOwner(ctx context.Context, svcs *services, email string) (int64, error) {
	if email == "" {
		return 0, fmt.Errorf("%w: --user is required", common.ErrMissingConfig)
	}

	user, err := svcs.store.GetUserByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, common.NotFoundf("user %s", email)
	}
	return user.ID, nil
}
