package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/gigdex/internal/config"
	logpkg "github.com/kailas-cloud/gigdex/internal/logger"
)

var errNothingToSeed = errors.New("no fixtures file given")

func newSeedCmd(env *string) *cobra.Command {
	var (
		file    string
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Migrate the schema and load profiles from a fixtures file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), *env, file, migrate)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Fixtures YAML file (default database.fixtures from config)")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Create or update the schema first")
	return cmd
}

func runSeed(ctx context.Context, env, file string, migrate bool) error {
	cfg, err := loadConfig(env)
	if err != nil {
		return err
	}
	if cfg.Database.Driver == config.DriverMemory {
		return fmt.Errorf("seeding the %q driver has no lasting effect", config.DriverMemory)
	}
	if file == "" {
		file = cfg.Database.Fixtures
	}
	if file == "" {
		return errNothingToSeed
	}

	logger, err := logpkg.NewCLILogger("info")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// newApp does the work: it migrates and loads cfg.Database.Fixtures.
	cfg.Database.Fixtures = file
	cfg.Database.AutoMigrate = migrate

	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	logger.Info("Seed complete", zap.String("driver", cfg.Database.Driver), zap.String("file", file))
	return nil
}
