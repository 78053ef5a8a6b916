package profile

import (
	"context"
	"testing"

	domprofile "github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/rank"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	countFn   func(ctx context.Context, p predicate.Predicate) (int, error)
	fetchFn   func(ctx context.Context, p predicate.Predicate, order rank.Spec, offset, limit int) ([]domprofile.ID, error)
	hydrateFn func(ctx context.Context, ids []domprofile.ID) ([]domprofile.Profile, error)
}

func (m *mockStore) Count(ctx context.Context, p predicate.Predicate) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, p)
	}
	return 0, nil
}

func (m *mockStore) FetchIDPage(
	ctx context.Context, p predicate.Predicate, order rank.Spec, offset, limit int,
) ([]domprofile.ID, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, p, order, offset, limit)
	}
	return nil, nil
}

func (m *mockStore) Hydrate(ctx context.Context, ids []domprofile.ID) ([]domprofile.Profile, error) {
	if m.hydrateFn != nil {
		return m.hydrateFn(ctx, ids)
	}
	return nil, nil
}

func newTestRepo(t *testing.T, opts ...Option) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, opts...), ms
}
