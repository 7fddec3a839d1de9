package commands

import (
	"context"
	"fmt"
	"os"

	"freshcart/internal/config"
	"freshcart/internal/repositories"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "freshcart",
	Short: "freshcart - grocery storefront API",
	Long: `freshcart serves the grocery storefront REST API: catalog, carts, checkout,
payments and the admin dashboard.

Configuration is read from a .env file, an optional CONFIG_FILE and the
environment. JWT_SECRET is always required.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore loads the configuration and connects to the configured backend.
func openStore(ctx context.Context) (*config.Config, *repositories.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	store, err := repositories.Open(ctx, repositories.StoreConfig{
		Driver:   cfg.DBDriver,
		DSN:      cfg.DatabaseDSN,
		MongoURI: cfg.MongoURI,
		MongoDB:  cfg.MongoDB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	return cfg, store, nil
}
