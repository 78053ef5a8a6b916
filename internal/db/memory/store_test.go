package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/gigdex/internal/db"
	"github.com/kailas-cloud/gigdex/internal/db/dbtest"
	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/rank"
)

func TestStore_Suite(t *testing.T) {
	dbtest.Run(t, func(t *testing.T) db.Store {
		s := New()
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestStore_ClosedFails(t *testing.T) {
	s := New()
	require.NoError(t, s.Close())

	err := s.Ping(context.Background())
	assert.ErrorIs(t, err, db.ErrClosed)

	_, err = s.Count(context.Background(), predicate.And())
	var dbErr *db.Error
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, db.OpCount, dbErr.Op)
}

func TestStore_UpsertRequiresID(t *testing.T) {
	s := New()
	err := s.Upsert(context.Background(), []profile.Profile{{StageName: "sin id"}})
	assert.ErrorIs(t, err, db.ErrInvalidProfile)
}

func TestStore_CancelledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FetchIDPage(ctx, predicate.And(), rank.Default, 0, 10)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestStore_UnsupportedPredicate(t *testing.T) {
	s := New()
	require.NoError(t, s.Upsert(context.Background(), []profile.Profile{{ID: 1, Visible: true}}))

	_, err := s.Count(context.Background(), predicate.Predicate{})
	assert.ErrorIs(t, err, db.ErrUnsupportedPredicate)
	assert.ErrorContains(t, err, "unset predicate")
}

func TestStore_HydrateReturnsCopies(t *testing.T) {
	s := New()
	require.NoError(t, s.Upsert(context.Background(), []profile.Profile{
		{ID: 1, Visible: true, Services: []string{"Clases"}},
	}))

	rows, err := s.Hydrate(context.Background(), []profile.ID{1})
	require.NoError(t, err)
	rows[0].Services[0] = "mutated"

	again, err := s.Hydrate(context.Background(), []profile.ID{1})
	require.NoError(t, err)
	assert.Equal(t, "Clases", again[0].Services[0])
}

func TestStore_Delete(t *testing.T) {
	s := New()
	require.NoError(t, s.Upsert(context.Background(), []profile.Profile{{ID: 1, Visible: true}, {ID: 2, Visible: true}}))

	s.Delete(context.Background(), 1, 42)

	n, err := s.Count(context.Background(), predicate.And())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
