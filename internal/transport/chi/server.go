package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/gigdex/internal/domain"
	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/gigdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/gigdex/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements ServerInterface.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	limits Limits,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search: search,
		health: health,
		limits: limits.withDefaults(),
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		// request errors carry the offending parameter, safe to echo
		detailHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrExecutionFailure, http.StatusBadGateway, ErrorCodeExecutionFailed),
	}
	return s
}

// Handler mounts the API routes on a new chi router behind middlewares,
// the first one outermost.
func (s *Server) Handler(middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)
	return HandlerWithOptions(s, ServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: BindErrorHandler,
	})
}

// SearchProfiles handles GET /search.
func (s *Server) SearchProfiles(w http.ResponseWriter, r *http.Request, params SearchParams) {
	req, err := searchRequestFromParams(params, s.limits)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	page, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NewSearchResponse(page))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// BindErrorHandler answers query parameters that fail to bind.
func BindErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, invalidParamMessage(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error
// and answers with the sentinel's own message.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// detailHandler is like sentinelHandler but answers with the full error text.
func detailHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

// NewSearchResponse converts an engine page to its wire form.
func NewSearchResponse(page result.Page) SearchResponse {
	results := make([]ProfileSummary, 0, len(page.Results()))
	for i := range page.Results() {
		results = append(results, summaryToResponse(&page.Results()[i]))
	}
	return SearchResponse{
		TotalCount: page.TotalCount(),
		Page:       page.Page(),
		PageSize:   page.PageSize(),
		TotalPages: page.TotalPages(),
		Results:    results,
	}
}

func summaryToResponse(s *profile.Summary) ProfileSummary {
	return ProfileSummary{
		ID:              uint64(s.ID),
		DisplayName:     s.DisplayName,
		Slug:            s.Slug,
		City:            s.City,
		Province:        s.Province,
		ProfileImage:    s.ProfileImage,
		Kind:            string(s.Kind),
		ExperienceLevel: s.ExperienceLevel,
		Instruments:     nonNil(s.Instruments),
		Genres:          nonNil(s.Genres),
		Skills:          nonNil(s.Skills),
	}
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
