package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"TechMart/internal/catalog"
	"TechMart/internal/config"
)

const service = "catalog"

var envFile string

var rootCmd = &cobra.Command{
	Use:           "catalog",
	Short:         "TechMart catalog service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file read before the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(schemaCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}

	if f := cmd.Flags().Lookup("port"); f != nil && f.Changed {
		cfg.Port = f.Value.String()
	}
	if f := cmd.Flags().Lookup("seed-dsn"); f != nil && f.Changed {
		cfg.SeedDatabaseURL = f.Value.String()
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadStore seeds from Postgres when a DSN is configured, otherwise from the
// built-in catalog.
func loadStore(ctx context.Context, cfg config.Config, log *zap.Logger) (*catalog.MemStore, error) {
	if cfg.SeedDatabaseURL == "" {
		log.Info("seeding from built-in catalog")
		return catalog.LoadMemStore(ctx, catalog.StaticSeed{})
	}

	src, err := catalog.OpenPostgresSeed(ctx, cfg.SeedDatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open seed database: %w", err)
	}
	defer func() { _ = src.Close() }()

	log.Info("seeding from postgres")
	return catalog.LoadMemStore(ctx, src)
}
