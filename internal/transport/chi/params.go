package chi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/gigdex/internal/domain"
	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/request"
)

// Limits bounds the search parameters accepted over HTTP.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
	MaxQueryLength  int
}

func (l Limits) withDefaults() Limits {
	if l.DefaultPageSize <= 0 {
		l.DefaultPageSize = request.DefaultPageSize
	}
	if l.MaxPageSize <= 0 {
		l.MaxPageSize = request.MaxPageSize
	}
	if l.MaxQueryLength <= 0 || l.MaxQueryLength > request.MaxQueryLength {
		l.MaxQueryLength = request.MaxQueryLength
	}
	return l
}

var validate = validator.New()

// searchRequestFromParams validates bound parameters and builds the engine request.
// Page and page size are clamped; only an over-long query or an unknown kind fail.
func searchRequestFromParams(params SearchParams, limits Limits) (request.Request, error) {
	q := deref(params.Q)
	if err := validate.Var(q, fmt.Sprintf("max=%d", limits.MaxQueryLength)); err != nil {
		return request.Request{}, fmt.Errorf("%w: q must be at most %d characters",
			domain.ErrInvalidRequest, limits.MaxQueryLength)
	}

	kind, ok := profile.ParseKind(deref(params.Kind))
	if !ok {
		return request.Request{}, fmt.Errorf("%w: kind must be one of %s, %s",
			domain.ErrInvalidRequest, profile.Musician, profile.Band)
	}

	page := 1
	if params.Page != nil {
		page = *params.Page
	}
	pageSize := limits.DefaultPageSize
	if params.PageSize != nil && *params.PageSize > 0 {
		pageSize = request.ClampPageSize(*params.PageSize, limits.MaxPageSize)
	}

	return request.New(q, kind, deref(params.ExperienceLevel), page, pageSize)
}

// invalidParamMessage describes a binding failure without echoing raw input.
func invalidParamMessage(err error) string {
	var ipe *InvalidParamFormatError
	if errors.As(err, &ipe) {
		return "invalid value for parameter " + ipe.ParamName
	}
	return "invalid request"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
