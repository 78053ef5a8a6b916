package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ErrorCode is the machine-readable error code returned to clients.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeExecutionFailed  ErrorCode = "execution_failed"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ProfileSummary is one search hit.
type ProfileSummary struct {
	ID              uint64   `json:"id"`
	DisplayName     string   `json:"display_name"`
	Slug            string   `json:"slug"`
	City            string   `json:"city,omitempty"`
	Province        string   `json:"province,omitempty"`
	ProfileImage    string   `json:"profile_image,omitempty"`
	Kind            string   `json:"kind"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	Instruments     []string `json:"instruments"`
	Genres          []string `json:"genres"`
	Skills          []string `json:"skills"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	Results    []ProfileSummary `json:"results"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// SearchParams are the query parameters of GET /search.
type SearchParams struct {
	Q               *string `form:"q" json:"q,omitempty"`
	Kind            *string `form:"kind" json:"kind,omitempty"`
	ExperienceLevel *string `form:"experience_level" json:"experience_level,omitempty"`
	Page            *int    `form:"page" json:"page,omitempty"`
	PageSize        *int    `form:"page_size" json:"page_size,omitempty"`
}

// ServerInterface is implemented by the HTTP handlers.
type ServerInterface interface {
	// (GET /search)
	SearchProfiles(w http.ResponseWriter, r *http.Request, params SearchParams)
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// InvalidParamFormatError reports a query parameter that could not be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// ServerOptions configures route registration.
type ServerOptions struct {
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions mounts si on options.BaseRouter (a new router when nil).
func HandlerWithOptions(si ServerInterface, options ServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}

	r.Get("/search", func(w http.ResponseWriter, r *http.Request) {
		params, err := bindSearchParams(r)
		if err != nil {
			options.ErrorHandlerFunc(w, r, err)
			return
		}
		si.SearchProfiles(w, r, params)
	})
	r.Get("/health", si.HealthCheck)
	r.Get("/metrics", si.Metrics)

	return r
}

func bindSearchParams(r *http.Request) (SearchParams, error) {
	var params SearchParams
	query := r.URL.Query()

	bindings := []struct {
		name string
		dest any
	}{
		{"q", &params.Q},
		{"kind", &params.Kind},
		{"experience_level", &params.ExperienceLevel},
		{"page", &params.Page},
		{"page_size", &params.PageSize},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			return SearchParams{}, &InvalidParamFormatError{ParamName: b.name, Err: err}
		}
	}
	return params, nil
}
