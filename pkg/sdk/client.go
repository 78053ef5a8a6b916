package gigdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/gigdex/internal/db"
	"github.com/kailas-cloud/gigdex/internal/db/memory"
	"github.com/kailas-cloud/gigdex/internal/db/relational"
	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/request"
	"github.com/kailas-cloud/gigdex/internal/domain/search/result"
	"github.com/kailas-cloud/gigdex/internal/domain/search/stem"
	"github.com/kailas-cloud/gigdex/internal/domain/search/text"
	profilerepo "github.com/kailas-cloud/gigdex/internal/repository/profile"
	healthuc "github.com/kailas-cloud/gigdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/gigdex/internal/usecase/search"
)

const (
	driverSQLite   = relational.DriverSQLite
	driverPostgres = relational.DriverPostgres
	driverMySQL    = relational.DriverMySQL
	driverMemory   = "memory"

	defaultReadinessTimeout = 10 * time.Second
	defaultQueryTimeout     = 5 * time.Second
)

// Internal interfaces, swapped out in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (result.Page, error)
}

type profileWriter interface {
	Upsert(ctx context.Context, profiles []profile.Profile) error
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the gigdex SDK entry point. It is safe for concurrent use.
type Client struct {
	store       db.Store
	writer      profileWriter
	searchSvc   searchUseCase
	healthSvc   healthUseCase
	maxPageSize int
	obs         *observer
}

// New opens the configured store, creates its schema, upserts any
// WithProfiles entries and returns a ready client.
// The provided context is used for the readiness check and the initial upsert.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		queryTimeout: defaultQueryTimeout,
		maxPageSize:  request.MaxPageSize,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("gigdex: store required (use WithSQLite, WithPostgres, WithMySQL or WithMemory)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := prepareStore(ctx, store); err != nil {
		_ = store.Close()
		return nil, err
	}

	c := wireClient(store, cfg, obs)
	if len(cfg.profiles) > 0 {
		if err := c.Upsert(ctx, cfg.profiles...); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverMemory:
		return memory.New(), nil
	case driverSQLite, driverPostgres, driverMySQL:
		s, err := relational.Open(relational.Config{Driver: cfg.driver, DSN: cfg.dsn}, zap.NewNop())
		if err != nil {
			return nil, fmt.Errorf("gigdex: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("gigdex: unknown driver %q", cfg.driver)
	}
}

func prepareStore(ctx context.Context, store db.Store) error {
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		return fmt.Errorf("gigdex: database not ready: %w", err)
	}
	if m, ok := store.(interface{ Migrate(context.Context) error }); ok {
		if err := m.Migrate(ctx); err != nil {
			return fmt.Errorf("gigdex: migrate: %w", err)
		}
	}
	return nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	roles := stem.DefaultRoles
	if len(cfg.roles) > 0 {
		roles = stem.Merge(stem.DefaultRoles, stem.Table(cfg.roles))
	}

	repo := profilerepo.New(store, profilerepo.WithQueryTimeout(cfg.queryTimeout))
	searchSvc := searchuc.New(repo, text.NewNormalizer(stem.New(roles)))

	return &Client{
		store:       store,
		writer:      store,
		searchSvc:   searchSvc,
		healthSvc:   healthuc.New(store, cfg.queryTimeout),
		maxPageSize: cfg.maxPageSize,
		obs:         obs,
	}
}

// Close releases all resources.
func (c *Client) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Upsert inserts or replaces profiles by ID. Every profile needs a non-zero ID.
// A zero CreatedAt becomes the current time.
func (c *Client) Upsert(ctx context.Context, profiles ...Profile) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("upsert", start, err, "profiles", len(profiles)) }()

	rows := make([]profile.Profile, 0, len(profiles))
	for i := range profiles {
		if k := profiles[i].Kind; k != "" && !profile.Kind(k).IsValid() {
			return fmt.Errorf("%w: profile %d has unknown kind %q", ErrInvalidProfile, profiles[i].ID, k)
		}
		rows = append(rows, profileToDomain(&profiles[i]))
	}
	if err = c.writer.Upsert(ctx, rows); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

// Search starts a fluent search query.
func (c *Client) Search() *SearchBuilder {
	return &SearchBuilder{client: c, page: 1}
}
