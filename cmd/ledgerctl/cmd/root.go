// Package cmd provides the ledgerctl commands.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledgerbook/internal/adapters/database/pgsql"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/core/services"
	"github.com/SscSPs/ledgerbook/internal/platform/config"
	"github.com/SscSPs/ledgerbook/internal/platform/lock"
	"github.com/SscSPs/ledgerbook/pkg/database"
)

var (
	debug  bool
	actor  string
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operate a ledgerbook database from the command line",
	Long: `ledgerctl reads and maintains a ledgerbook Postgres database directly,
using the same configuration as the API server (PGSQL_URL, .env).

Example:
  ledgerctl migrate up
  ledgerctl report pnl --from 2024-01-01 --to 2024-01-31
  ledgerctl entry reverse 5f0c...`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
		slog.SetDefault(logger)
	},
}

// Execute runs the root command. It is called once by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&actor, "user", "ledgerctl", "user recorded on entries changed by this command")

	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(entryCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(budgetCmd)
}

// openServices connects to the configured database and builds the service container.
func openServices(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, errors.New("PGSQL_URL is not set")
	}
	chart, err := services.LoadChartOfAccounts(cfg.ChartOfAccountsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load chart of accounts: %w", err)
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("Connected to database")
	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), chart, lock.NewKeyedMutex())
	return container, func() { database.ClosePgxPool(pool) }, nil
}

// withServices runs fn against a freshly opened service container.
func withServices(cmd *cobra.Command, fn func(ctx context.Context, svc *portssvc.ServiceContainer) (any, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, closeFn, err := openServices(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	out, err := fn(ctx, svc)
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
