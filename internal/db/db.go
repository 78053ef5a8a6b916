package db

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/rank"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	Querier
	Writer
	Close() error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Querier evaluates search predicates.
// Text comparisons run against values folded with text.Fold.
type Querier interface {
	Count(ctx context.Context, p predicate.Predicate) (int, error)
	FetchIDPage(ctx context.Context, p predicate.Predicate, order rank.Spec, offset, limit int) ([]profile.ID, error)
	Hydrate(ctx context.Context, ids []profile.ID) ([]profile.Profile, error)
}

// Writer inserts or replaces profiles, including their relations.
type Writer interface {
	Upsert(ctx context.Context, profiles []profile.Profile) error
}

// PollReady polls p until it responds or timeout expires.
func PollReady(ctx context.Context, p Pinger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.Ping(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := p.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
