package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/gigdex/internal/config"
	"github.com/kailas-cloud/gigdex/internal/db"
	"github.com/kailas-cloud/gigdex/internal/db/memory"
	"github.com/kailas-cloud/gigdex/internal/db/relational"
	"github.com/kailas-cloud/gigdex/internal/domain/search/stem"
	"github.com/kailas-cloud/gigdex/internal/domain/search/text"
	"github.com/kailas-cloud/gigdex/internal/fixtures"
	profilerepo "github.com/kailas-cloud/gigdex/internal/repository/profile"
	healthuc "github.com/kailas-cloud/gigdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/gigdex/internal/usecase/search"
)

// app is the composition root shared by every command.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	store  db.Store
	search *searchuc.Service
	health *healthuc.Service
}

// migrator is implemented by stores that own a schema.
type migrator interface {
	Migrate(ctx context.Context) error
}

// newApp opens the configured store, waits for it, migrates and seeds it when
// configured, and wires the search pipeline on top.
func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	store, err := openStore(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	ready := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, ready); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}

	if m, ok := store.(migrator); ok && cfg.Database.AutoMigrate {
		if err := m.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		logger.Info("Schema migrated")
	}

	if cfg.Database.Fixtures != "" {
		n, err := seedFixtures(ctx, store, cfg.Database.Fixtures)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		logger.Info("Fixtures loaded", zap.String("file", cfg.Database.Fixtures), zap.Int("profiles", n))
	}

	repo := profilerepo.New(store, profilerepo.WithQueryTimeout(cfg.Database.QueryTimeout()))
	exec := searchuc.NewInstrumentedExecutor(repo, cfg.Database.Driver, logger)
	normalizer := text.NewNormalizer(stem.New(roleTable(cfg.Search.ExtraRoles)))

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		search: searchuc.New(exec, normalizer),
		health: healthuc.New(store, cfg.Database.QueryTimeout()),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func openStore(cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverSQLite, config.DriverPostgres, config.DriverMySQL:
		s, err := relational.Open(relational.Config{
			Driver:          cfg.Driver,
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetimeSec) * time.Second,
			SlowQuery:       cfg.SlowQuery(),
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func seedFixtures(ctx context.Context, w db.Writer, path string) (int, error) {
	profiles, err := fixtures.LoadFile(path)
	if err != nil {
		return 0, err
	}
	if err := w.Upsert(ctx, profiles); err != nil {
		return 0, fmt.Errorf("seed fixtures: %w", err)
	}
	return len(profiles), nil
}

// roleTable extends the built-in role table with configured entries.
func roleTable(extra map[string]string) stem.Table {
	return stem.Merge(stem.DefaultRoles, stem.Table(extra))
}

// loadConfig loads config for env; errors name the environment.
func loadConfig(env string) (config.Config, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %q: %w", env, err)
	}
	return cfg, nil
}
