package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caiorodriguesslv/planwise-backend/internal/api"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		RunE:  runServe,
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	svcs, err := initServices(ctx)
	if err != nil {
		return err
	}
	defer svcs.close()

	// A fresh install gets an admin account when the credentials are set.
	adminEmail := viper.GetString("auth.admin_email")
	adminPassword := viper.GetString("auth.admin_password")
	if adminEmail != "" && adminPassword != "" {
		if err := svcs.auth.EnsureAdmin(ctx, "Administrator", adminEmail, adminPassword); err != nil {
			return err
		}
	}

	server := api.NewServer(svcs.issuer, svcs.auth, svcs.categories, svcs.transactions, svcs.goals, svcs.reports)

	addr := viper.GetString("server.addr")
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
