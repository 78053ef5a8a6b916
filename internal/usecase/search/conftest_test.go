package search

import (
	"context"
	"time"

	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/rank"
	"github.com/kailas-cloud/gigdex/internal/domain/search/stem"
	"github.com/kailas-cloud/gigdex/internal/domain/search/text"
)

// mockExecutor implements Executor for tests.
type mockExecutor struct {
	countFn   func(ctx context.Context, p predicate.Predicate) (int, error)
	fetchFn   func(ctx context.Context, p predicate.Predicate, order rank.Spec, offset, limit int) ([]profile.ID, error)
	hydrateFn func(ctx context.Context, ids []profile.ID) ([]profile.Profile, error)

	fetchCalls   int
	hydrateCalls int
	lastOffset   int
	lastLimit    int
	lastOrder    rank.Spec
	lastPred     predicate.Predicate
}

func (m *mockExecutor) Count(ctx context.Context, p predicate.Predicate) (int, error) {
	m.lastPred = p
	if m.countFn != nil {
		return m.countFn(ctx, p)
	}
	return 0, nil
}

func (m *mockExecutor) FetchIDPage(
	ctx context.Context, p predicate.Predicate, order rank.Spec, offset, limit int,
) ([]profile.ID, error) {
	m.fetchCalls++
	m.lastOffset, m.lastLimit, m.lastOrder = offset, limit, order
	if m.fetchFn != nil {
		return m.fetchFn(ctx, p, order, offset, limit)
	}
	return nil, nil
}

func (m *mockExecutor) Hydrate(ctx context.Context, ids []profile.ID) ([]profile.Profile, error) {
	m.hydrateCalls++
	if m.hydrateFn != nil {
		return m.hydrateFn(ctx, ids)
	}
	return nil, nil
}

func newNormalizer() *text.Normalizer {
	return text.NewNormalizer(stem.New(nil))
}

func visibleProfile(id profile.ID, name string) profile.Profile {
	return profile.Profile{
		ID:        id,
		Visible:   true,
		Kind:      profile.Musician,
		StageName: name,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// rangeIDs returns ids from..to inclusive.
func rangeIDs(from, to int) []profile.ID {
	out := make([]profile.ID, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, profile.ID(i))
	}
	return out
}
