package gigdex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver string // "sqlite", "postgres", "mysql" or "memory"
	dsn    string

	profiles     []Profile
	roles        map[string]string
	queryTimeout time.Duration
	maxPageSize  int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithSQLite stores profiles in a SQLite database file.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverSQLite
		c.dsn = path
	})
}

// WithPostgres stores profiles in PostgreSQL.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverPostgres
		c.dsn = dsn
	})
}

// WithMySQL stores profiles in MySQL. The DSN should set parseTime=true.
func WithMySQL(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverMySQL
		c.dsn = dsn
	})
}

// WithMemory keeps profiles in process memory. Nothing survives Close.
func WithMemory() Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverMemory
		c.dsn = ""
	})
}

// WithProfiles upserts the given profiles when the client starts.
func WithProfiles(profiles ...Profile) Option {
	return optionFunc(func(c *clientConfig) {
		c.profiles = append(c.profiles, profiles...)
	})
}

// WithRoles extends the built-in performer -> instrument table
// (e.g. "arpista" -> "arpa"). Later entries win.
func WithRoles(roles map[string]string) Option {
	return optionFunc(func(c *clientConfig) {
		if c.roles == nil {
			c.roles = make(map[string]string, len(roles))
		}
		for k, v := range roles {
			c.roles[k] = v
		}
	})
}

// WithQueryTimeout bounds every store call made by a search. Default: 5s.
func WithQueryTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.queryTimeout = d
	})
}

// WithMaxPageSize caps the page size a search may request. Default: 100.
func WithMaxPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxPageSize = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
