package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/gigdex/internal/config"
	"github.com/kailas-cloud/gigdex/internal/domain/search/request"
	"github.com/kailas-cloud/gigdex/internal/domain/search/stem"
	logpkg "github.com/kailas-cloud/gigdex/internal/logger"
	chiTransport "github.com/kailas-cloud/gigdex/internal/transport/chi"
)

const fixturesPath = "../../config/profiles.yaml"

func testConfig(driver, dsn string) config.Config {
	cfg := config.Config{
		HTTP: config.HTTPConfig{Port: 8080},
		Database: config.DatabaseConfig{
			Driver:      driver,
			DSN:         dsn,
			Fixtures:    fixturesPath,
			AutoMigrate: true,
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func searchIDs(t *testing.T, a *app, q string) []uint64 {
	t.Helper()
	req, err := request.New(q, "", "", 1, 20)
	require.NoError(t, err)
	page, err := a.search.Search(context.Background(), &req)
	require.NoError(t, err)

	var ids []uint64
	for _, r := range chiTransport.NewSearchResponse(page).Results {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestNewApp(t *testing.T) {
	drivers := map[string]config.Config{
		"memory": testConfig(config.DriverMemory, ""),
		"sqlite": testConfig(config.DriverSQLite, filepath.Join(t.TempDir(), "gigdex.db")),
	}
	for name, cfg := range drivers {
		t.Run(name, func(t *testing.T) {
			a, err := newApp(context.Background(), cfg, zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { _ = a.Close() })

			assert.Contains(t, searchIDs(t, a, "guitarrista folk parana"), uint64(1))
			assert.NotContains(t, searchIDs(t, a, ""), uint64(6), "hidden fixture must never surface")
			assert.Equal(t, "ok", string(a.health.Check(context.Background()).Status))
		})
	}
}

func TestNewApp_ExtraRoles(t *testing.T) {
	cfg := testConfig(config.DriverMemory, "")
	cfg.Search.ExtraRoles = map[string]string{"Júglar": "Voz"}

	a, err := newApp(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.Contains(t, searchIDs(t, a, "juglar"), uint64(1))
}

func TestNewApp_BadFixtures(t *testing.T) {
	cfg := testConfig(config.DriverMemory, "")
	cfg.Database.Fixtures = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := newApp(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := openStore(config.DatabaseConfig{Driver: "oracle"}, zap.NewNop())
	require.ErrorContains(t, err, "oracle")
}

func TestRoleTable(t *testing.T) {
	table := roleTable(map[string]string{"Arpísta": "Árpa"})
	assert.Equal(t, "arpa", table["arpista"])
	assert.Equal(t, stem.DefaultRoles["guitarrista"], table["guitarrista"])
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	err := printTable(&buf, chiTransport.SearchResponse{
		TotalCount: 1, Page: 1, PageSize: 12, TotalPages: 1,
		Results: []chiTransport.ProfileSummary{{
			ID: 1, DisplayName: "Ana Folk", Kind: "musician", City: "Paraná",
			Instruments: []string{"Guitarra", "Voz"}, Genres: []string{"Folk"},
		}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Ana Folk")
	assert.Contains(t, buf.String(), "Guitarra, Voz")
	assert.Contains(t, buf.String(), "page 1 of 1 (1 matches)")
}

func TestJSONRecoverer(t *testing.T) {
	h := jsonRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/search", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var body chiTransport.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, chiTransport.ErrorCodeInternalError, body.Code)
}

func TestWideEventMiddleware(t *testing.T) {
	var sawLogger bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = logpkg.FromContext(r.Context()) != nil
		w.WriteHeader(http.StatusTeapot)
	})
	h := chiMiddleware.RequestID(wideEventMiddleware(zap.NewNop())(inner))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/search?q=folk", http.NoBody))

	assert.True(t, sawLogger)
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}
