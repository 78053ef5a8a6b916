package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: DriverSQLite, DSN: "gigdex.db"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
	if !strings.Contains(err.Error(), "http.port") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "valkey"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestValidate_MissingDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.DSN = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing dsn")
	}
	expected := `database.dsn is required for driver "sqlite"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_MemoryNeedsNoDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = DriverMemory
	cfg.Database.DSN = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_PageSizes(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultPageSize = 50
	cfg.Search.MaxPageSize = 20

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when default page size exceeds max")
	}
}

func TestValidate_MaxQueryLengthCapped(t *testing.T) {
	cfg := validConfig()
	cfg.Search.MaxQueryLength = 4096

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for max_query_length above engine limit")
	}
}

func TestValidate_ShortAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.APIKeys = []string{"short"}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short api key")
	}
}

func TestValidate_EmptyExtraRole(t *testing.T) {
	cfg := validConfig()
	cfg.Search.ExtraRoles = map[string]string{"arpista": ""}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty role target")
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("expected Driver=sqlite, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Database.QueryTimeout() != 5*time.Second {
		t.Errorf("expected QueryTimeout=5s, got %s", cfg.Database.QueryTimeout())
	}
	if cfg.Database.SlowQuery() != 200*time.Millisecond {
		t.Errorf("expected SlowQuery=200ms, got %s", cfg.Database.SlowQuery())
	}
	if cfg.Search.DefaultPageSize != 12 {
		t.Errorf("expected DefaultPageSize=12, got %d", cfg.Search.DefaultPageSize)
	}
	if cfg.Search.MaxPageSize != 100 {
		t.Errorf("expected MaxPageSize=100, got %d", cfg.Search.MaxPageSize)
	}
	if cfg.Search.MaxQueryLength != 512 {
		t.Errorf("expected MaxQueryLength=512, got %d", cfg.Search.MaxQueryLength)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: DriverPostgres, ReadinessTimeout: 15, QueryTimeoutMs: 250},
		Search:   SearchConfig{DefaultPageSize: 24, MaxPageSize: 48, MaxQueryLength: 128},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected Driver=postgres, got %q", cfg.Database.Driver)
	}
	if cfg.Database.QueryTimeoutMs != 250 {
		t.Errorf("expected QueryTimeoutMs=250, got %d", cfg.Database.QueryTimeoutMs)
	}
	if cfg.Search.DefaultPageSize != 24 || cfg.Search.MaxPageSize != 48 || cfg.Search.MaxQueryLength != 128 {
		t.Errorf("search defaults overrode explicit values: %+v", cfg.Search)
	}
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("GIGDEX_TEST_DSN", "file:test.db")

	cfg, err := Parse([]byte(`
http:
  port: ${GIGDEX_TEST_PORT:-9090}
database:
  driver: sqlite
  dsn: ${GIGDEX_TEST_DSN}
search:
  extra_roles:
    arpista: arpa
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.DSN != "file:test.db" {
		t.Errorf("expected dsn from env, got %q", cfg.Database.DSN)
	}
	if cfg.Search.ExtraRoles["arpista"] != "arpa" {
		t.Errorf("extra roles = %v", cfg.Search.ExtraRoles)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
}
