package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/gigdex/internal/db/memory"
	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/rank"
	"github.com/kailas-cloud/gigdex/internal/domain/search/stem"
	"github.com/kailas-cloud/gigdex/internal/domain/search/text"
	healthuc "github.com/kailas-cloud/gigdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/gigdex/internal/usecase/search"
)

var created = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, ps ...profile.Profile) *memory.Store {
	t.Helper()
	s := memory.New()
	if err := s.Upsert(context.Background(), ps); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func newTestHandler(exec searchuc.Executor, pinger healthuc.DBPinger, limits Limits) http.Handler {
	svc := searchuc.New(exec, text.NewNormalizer(stem.New(nil)))
	return NewServer(svc, healthuc.New(pinger, time.Second), limits, nil).Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func anaFolk() profile.Profile {
	return profile.Profile{
		ID:           1,
		Visible:      true,
		Kind:         profile.Musician,
		StageName:    "Ana Folk",
		City:         "Córdoba",
		Genres:       []profile.Ref{{Name: "Folk"}},
		Instruments:  []profile.Ref{{Name: "Guitarra"}},
		Completeness: 90,
		CreatedAt:    created,
	}
}

func numbered(n int) []profile.Profile {
	out := make([]profile.Profile, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, profile.Profile{
			ID:           profile.ID(i),
			Visible:      true,
			Kind:         profile.Band,
			StageName:    "Banda",
			Completeness: 50,
			CreatedAt:    created,
		})
	}
	return out
}

func TestSearchProfiles_EndToEnd(t *testing.T) {
	store := newTestStore(t, anaFolk(), profile.Profile{
		ID: 2, Visible: true, Kind: profile.Musician, StageName: "Beto Rock",
		Genres: []profile.Ref{{Name: "Rock"}}, CreatedAt: created,
	})
	h := newTestHandler(store, store, Limits{})

	rr := get(t, h, "/search?q=guitarrista+folk+cordoba")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}

	resp := decode[SearchResponse](t, rr)
	if resp.TotalCount != 1 || resp.TotalPages != 1 || resp.Page != 1 || resp.PageSize != 12 {
		t.Errorf("page meta: got %+v", resp)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results: got %d, want 1", len(resp.Results))
	}
	got := resp.Results[0]
	if got.ID != 1 || got.DisplayName != "Ana Folk" || got.Slug != "ana-folk-1" {
		t.Errorf("summary: got %+v", got)
	}
	if len(got.Instruments) != 1 || got.Instruments[0] != "Guitarra" {
		t.Errorf("instruments: got %v", got.Instruments)
	}
	if got.Skills == nil {
		t.Error("skills must encode as an empty array")
	}
}

func TestSearchProfiles_Pagination(t *testing.T) {
	store := newTestStore(t, numbered(25)...)
	h := newTestHandler(store, store, Limits{})

	resp := decode[SearchResponse](t, get(t, h, "/search?page=3&page_size=12"))
	if resp.TotalCount != 25 || resp.TotalPages != 3 {
		t.Errorf("totals: got %d/%d, want 25/3", resp.TotalCount, resp.TotalPages)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != 25 {
		t.Errorf("last page: got %+v", resp.Results)
	}
}

func TestSearchProfiles_HugePageIsEmpty(t *testing.T) {
	store := newTestStore(t, numbered(3)...)
	h := newTestHandler(store, store, Limits{})

	rr := get(t, h, "/search?page=768614336404564652")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	resp := decode[SearchResponse](t, rr)
	if resp.TotalCount != 3 || resp.TotalPages != 1 {
		t.Errorf("totals: got %d/%d, want 3/1", resp.TotalCount, resp.TotalPages)
	}
	if len(resp.Results) != 0 {
		t.Errorf("expected empty page, got %d results", len(resp.Results))
	}
}

func TestSearchProfiles_ClampsPaging(t *testing.T) {
	store := newTestStore(t, numbered(5)...)
	h := newTestHandler(store, store, Limits{DefaultPageSize: 2, MaxPageSize: 3})

	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
	}{
		{"defaults", "", 1, 2},
		{"page below one", "?page=-4", 1, 2},
		{"size above max", "?page_size=50", 1, 3},
		{"size zero", "?page_size=0", 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, h, "/search"+tt.query)
			if rr.Code != http.StatusOK {
				t.Fatalf("status: got %d", rr.Code)
			}
			resp := decode[SearchResponse](t, rr)
			if resp.Page != tt.page || resp.PageSize != tt.pageSize {
				t.Errorf("got page %d size %d, want %d/%d", resp.Page, resp.PageSize, tt.page, tt.pageSize)
			}
		})
	}
}

func TestSearchProfiles_BadRequests(t *testing.T) {
	store := newTestStore(t)
	h := newTestHandler(store, store, Limits{MaxQueryLength: 8})

	tests := []struct {
		name string
		url  string
		code ErrorCode
	}{
		{"unknown kind", "/search?kind=orchestra", ErrorCodeValidationFailed},
		{"query too long", "/search?q=" + strings.Repeat("a", 9), ErrorCodeValidationFailed},
		{"non-numeric page", "/search?page=two", ErrorCodeBadRequest},
		{"non-numeric size", "/search?page_size=x", ErrorCodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, h, tt.url)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
			}
			if resp := decode[ErrorResponse](t, rr); resp.Code != tt.code {
				t.Errorf("code: got %s, want %s", resp.Code, tt.code)
			}
		})
	}
}

func TestSearchProfiles_KindIsCaseInsensitive(t *testing.T) {
	store := newTestStore(t, anaFolk())
	h := newTestHandler(store, store, Limits{})

	resp := decode[SearchResponse](t, get(t, h, "/search?kind=MUSICIAN"))
	if resp.TotalCount != 1 {
		t.Errorf("total: got %d, want 1", resp.TotalCount)
	}
}

type failingExecutor struct{}

func (failingExecutor) Count(context.Context, predicate.Predicate) (int, error) {
	return 0, errors.New("connection refused to 10.0.0.7")
}

func (failingExecutor) FetchIDPage(context.Context, predicate.Predicate, rank.Spec, int, int) ([]profile.ID, error) {
	return nil, nil
}

func (failingExecutor) Hydrate(context.Context, []profile.ID) ([]profile.Profile, error) {
	return nil, nil
}

func TestSearchProfiles_ExecutionFailure(t *testing.T) {
	h := newTestHandler(failingExecutor{}, memory.New(), Limits{})

	rr := get(t, h, "/search?q=folk")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadGateway)
	}
	resp := decode[ErrorResponse](t, rr)
	if resp.Code != ErrorCodeExecutionFailed {
		t.Errorf("code: got %s", resp.Code)
	}
	if strings.Contains(resp.Message, "10.0.0.7") {
		t.Errorf("message leaks internals: %q", resp.Message)
	}
}

func TestHealthCheck(t *testing.T) {
	store := memory.New()
	h := newTestHandler(store, store, Limits{})

	rr := get(t, h, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	resp := decode[HealthResponse](t, rr)
	if resp.Status != "ok" || resp.Checks["database"] != "ok" {
		t.Errorf("healthy report: got %+v", resp)
	}

	_ = store.Close()
	rr = get(t, h, "/health")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("closed store status: got %d", rr.Code)
	}
	if resp := decode[HealthResponse](t, rr); resp.Checks["database"] != "error" {
		t.Errorf("unhealthy report: got %+v", resp)
	}
}

func TestMetrics(t *testing.T) {
	store := memory.New()
	h := newTestHandler(store, store, Limits{})

	_ = get(t, h, "/search")
	rr := get(t, h, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "gigdex_search_requests_total") {
		t.Error("search metrics missing from exposition")
	}
}
