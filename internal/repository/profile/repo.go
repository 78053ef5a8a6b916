package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/gigdex/internal/domain"
	domprofile "github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/rank"
)

// store is the consumer interface for profile search operations (ISP).
type store interface {
	Count(ctx context.Context, p predicate.Predicate) (int, error)
	FetchIDPage(ctx context.Context, p predicate.Predicate, order rank.Spec, offset, limit int) ([]domprofile.ID, error)
	Hydrate(ctx context.Context, ids []domprofile.ID) ([]domprofile.Profile, error)
}

// Repo implements usecase/search.Executor over a profile store.
type Repo struct {
	store   store
	timeout time.Duration
}

// Option configures a Repo.
type Option func(*Repo)

// WithQueryTimeout bounds every store call. Zero leaves the caller's deadline in charge.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *Repo) { r.timeout = d }
}

// New creates a profile repository.
func New(s store, opts ...Option) *Repo {
	r := &Repo{store: s}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Count returns the number of profiles matching p.
func (r *Repo) Count(ctx context.Context, p predicate.Predicate) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.store.Count(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("%w: count profiles: %w", domain.ErrExecutionFailure, err)
	}
	return n, nil
}

// FetchIDPage returns one ranked window of matching profile ids.
func (r *Repo) FetchIDPage(
	ctx context.Context, p predicate.Predicate, order rank.Spec, offset, limit int,
) ([]domprofile.ID, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	ids, err := r.store.FetchIDPage(ctx, p, order, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch profile ids (offset %d, limit %d): %w",
			domain.ErrExecutionFailure, offset, limit, err)
	}
	return ids, nil
}

// Hydrate loads full profiles for ids.
func (r *Repo) Hydrate(ctx context.Context, ids []domprofile.ID) ([]domprofile.Profile, error) {
	if len(ids) == 0 {
		return []domprofile.Profile{}, nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.store.Hydrate(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: hydrate %d profiles: %w", domain.ErrExecutionFailure, len(ids), err)
	}
	return rows, nil
}

func (r *Repo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}
