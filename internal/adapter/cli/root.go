package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yelagiri_booking/internal/adapter/http/routes"
	"yelagiri_booking/internal/infrastructure/config"
	"yelagiri_booking/internal/infrastructure/database"
	"yelagiri_booking/internal/infrastructure/telemetry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCommand returns the yelagiri-booking command tree. Running it with
// no subcommand starts the HTTP server.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "yelagiri-booking",
		Short:         "Yelagiri booking and payment service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(newServeCommand(), newMigrateCommand())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the DynamoDB tables and indexes",
		RunE:  runMigrate,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if err := telemetry.InitLogger(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := telemetry.InitTracing(ctx, cfg.ServiceName, cfg.OTLPEndpoint); err != nil {
		telemetry.Logger.Warn("[telemetry] tracing disabled", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		telemetry.Shutdown(shutdownCtx)
	}()

	telemetry.Logger.Info("[server] starting",
		zap.String("service", cfg.ServiceName),
		zap.String("payment_provider", cfg.PaymentProvider))
	return routes.Run(ctx, cfg)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if err := telemetry.InitLogger(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ddb, err := database.ConnectDynamoDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if err := database.CreateTables(cmd.Context(), ddb, cfg); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	telemetry.Logger.Info("[migrate] tables ready")
	return nil
}
