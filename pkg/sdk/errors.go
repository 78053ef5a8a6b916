package gigdex

import (
	"github.com/kailas-cloud/gigdex/internal/db"
	"github.com/kailas-cloud/gigdex/internal/domain"
)

// Sentinel errors re-exported from the domain and storage layers.
// Use errors.Is() to check.
var (
	// ErrInvalidRequest: an unknown kind or an over-long query.
	ErrInvalidRequest = domain.ErrInvalidRequest
	// ErrExecutionFailure: the store failed while answering a search.
	ErrExecutionFailure = domain.ErrExecutionFailure
	// ErrInvalidProfile: a profile rejected by Upsert.
	ErrInvalidProfile = db.ErrInvalidProfile
	// ErrClosed: the client's store was closed.
	ErrClosed = db.ErrClosed
)
