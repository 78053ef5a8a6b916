// Package relational implements the profile store on a SQL database through
// gorm. sqlite, postgres and mysql are supported.
package relational

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kailas-cloud/gigdex/internal/db"
	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/rank"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds connection parameters for a relational store.
type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowQuery       time.Duration
}

// Store implements db.Store on gorm.
type Store struct {
	gdb    *gorm.DB
	driver string
}

// Open connects to the database. It does not migrate the schema.
func Open(cfg Config, log *zap.Logger) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DriverMySQL:
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newGormLogger(log, cfg.SlowQuery),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &Store{gdb: gdb, driver: cfg.Driver}, nil
}

// Driver returns the configured driver name.
func (s *Store) Driver() string { return s.driver }

// Migrate creates or updates the schema.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.gdb.WithContext(ctx).AutoMigrate(models()...); err != nil {
		return db.Wrap(db.OpMigrate, err)
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.gdb.DB()
	if err != nil {
		return db.Wrap(db.OpPing, err)
	}
	return db.Wrap(db.OpPing, sqlDB.PingContext(ctx))
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.PollReady(ctx, s, timeout)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.gdb.DB()
	if err != nil {
		return fmt.Errorf("sql handle: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// Count returns the number of profiles matching p.
func (s *Store) Count(ctx context.Context, p predicate.Predicate) (int, error) {
	where, args, err := compile(p)
	if err != nil {
		return 0, db.Wrap(db.OpCount, err)
	}

	var n int64
	err = s.gdb.WithContext(ctx).
		Model(&profileRow{}).
		Where(where, args...).
		Count(&n).Error
	if err != nil {
		return 0, db.Wrap(db.OpCount, err)
	}
	return int(n), nil
}

// FetchIDPage returns ids of matching profiles in rank order.
func (s *Store) FetchIDPage(
	ctx context.Context, p predicate.Predicate, order rank.Spec, offset, limit int,
) ([]profile.ID, error) {
	if limit <= 0 {
		return []profile.ID{}, nil
	}
	where, args, err := compile(p)
	if err != nil {
		return nil, db.Wrap(db.OpFetchIDPage, err)
	}
	orderClause, err := orderBy(order)
	if err != nil {
		return nil, db.Wrap(db.OpFetchIDPage, err)
	}

	var raw []uint64
	err = s.gdb.WithContext(ctx).
		Model(&profileRow{}).
		Where(where, args...).
		Order(orderClause).
		Offset(max(offset, 0)).
		Limit(limit).
		Pluck("profiles.id", &raw).Error
	if err != nil {
		return nil, db.Wrap(db.OpFetchIDPage, err)
	}

	ids := make([]profile.ID, len(raw))
	for i, id := range raw {
		ids[i] = profile.ID(id)
	}
	return ids, nil
}

// Hydrate loads full profiles with their terms and relations.
// Rows come back in no particular order.
func (s *Store) Hydrate(ctx context.Context, ids []profile.ID) ([]profile.Profile, error) {
	if len(ids) == 0 {
		return []profile.Profile{}, nil
	}
	raw := make([]uint64, len(ids))
	for i, id := range ids {
		raw[i] = uint64(id)
	}

	byName := func(tx *gorm.DB) *gorm.DB { return tx.Order("name") }

	var rows []profileRow
	err := s.gdb.WithContext(ctx).
		Preload("Terms", func(tx *gorm.DB) *gorm.DB { return tx.Order("field, position") }).
		Preload("Genres", byName).
		Preload("Instruments", byName).
		Preload("Skills", byName).
		Where("id IN ?", raw).
		Find(&rows).Error
	if err != nil {
		return nil, db.Wrap(db.OpHydrate, err)
	}

	out := make([]profile.Profile, len(rows))
	for i := range rows {
		out[i] = fromRow(&rows[i])
	}
	return out, nil
}
