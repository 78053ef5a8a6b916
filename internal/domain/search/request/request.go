package request

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/gigdex/internal/domain"
	"github.com/kailas-cloud/gigdex/internal/domain/profile"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed free-text query length in runes.
	MaxQueryLength  = 512
	DefaultPageSize = 12
	// MaxPageSize is the clamp applied by callers; the engine itself only
	// replaces non-positive sizes.
	MaxPageSize = 100
)

// Request is a validated search query.
type Request struct {
	query           string
	kind            profile.Kind
	experienceLevel string
	page            int
	pageSize        int
}

// New validates and normalizes search parameters.
// The query may be empty (browse all visible profiles). Page < 1 becomes 1
// and pageSize <= 0 becomes DefaultPageSize; neither is an error.
func New(query string, kind profile.Kind, experienceLevel string, page, pageSize int) (Request, error) {
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if kind != "" && !kind.IsValid() {
		return Request{}, fmt.Errorf("%w: invalid kind %q", domain.ErrInvalidRequest, kind)
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return Request{
		query:           query,
		kind:            kind,
		experienceLevel: strings.TrimSpace(experienceLevel),
		page:            page,
		pageSize:        pageSize,
	}, nil
}

// Query returns the raw free-text query.
func (r *Request) Query() string { return r.query }

// Kind returns the kind filter ("" when unset).
func (r *Request) Kind() profile.Kind { return r.kind }

// ExperienceLevel returns the experience level filter ("" when unset).
func (r *Request) ExperienceLevel() string { return r.experienceLevel }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PageSize returns the number of results per page.
func (r *Request) PageSize() int { return r.pageSize }

// Offset returns the number of ranked results skipped before this page.
// ok is false when the offset does not fit in an int; such a page lies past
// the end of any result set.
func (r *Request) Offset() (offset int, ok bool) {
	page, size := max(r.page, 1), r.pageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if page-1 > math.MaxInt/size {
		return 0, false
	}
	return (page - 1) * size, true
}

// ClampPageSize limits n to [1, max]; non-positive n becomes DefaultPageSize.
// Callers facing untrusted input use it before New.
func ClampPageSize(n, max int) int {
	if n <= 0 {
		n = DefaultPageSize
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}
