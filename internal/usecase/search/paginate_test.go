package search

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/rank"
)

func TestPaginate_OffsetAndLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset int
		wantLimit  int
	}{
		{"first page", 1, 12, 0, 12},
		{"third page", 3, 12, 24, 12},
		{"page clamped", 0, 12, 0, 12},
		{"size defaulted", 2, 0, 12, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockExecutor{
				countFn: func(context.Context, predicate.Predicate) (int, error) { return 100, nil },
			}
			_, _, err := paginate(context.Background(), m, predicate.And(), mustRequest(t, "", tt.page, tt.size))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.lastOffset != tt.wantOffset || m.lastLimit != tt.wantLimit {
				t.Errorf("offset/limit = %d/%d, want %d/%d", m.lastOffset, m.lastLimit, tt.wantOffset, tt.wantLimit)
			}
			if len(m.lastOrder) != len(rank.Default) {
				t.Errorf("expected default rank order, got %v", m.lastOrder)
			}
		})
	}
}

func TestPaginate_PastEndSkipsFetch(t *testing.T) {
	m := &mockExecutor{
		countFn: func(context.Context, predicate.Predicate) (int, error) { return 25, nil },
	}
	total, ids, err := paginate(context.Background(), m, predicate.And(), mustRequest(t, "", 4, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 25 {
		t.Errorf("total = %d, want 25", total)
	}
	if len(ids) != 0 {
		t.Errorf("expected no ids, got %v", ids)
	}
	if m.fetchCalls != 0 {
		t.Errorf("expected no fetch, got %d calls", m.fetchCalls)
	}
}

func TestPaginate_HugePageIsPastEnd(t *testing.T) {
	m := &mockExecutor{
		countFn: func(context.Context, predicate.Predicate) (int, error) { return 3, nil },
	}
	for _, page := range []int{math.MaxInt/12 + 2, math.MaxInt} {
		total, ids, err := paginate(context.Background(), m, predicate.And(), mustRequest(t, "", page, 12))
		if err != nil {
			t.Fatalf("page %d: unexpected error: %v", page, err)
		}
		if total != 3 {
			t.Errorf("page %d: total = %d, want 3", page, total)
		}
		if len(ids) != 0 {
			t.Errorf("page %d: expected no ids, got %v", page, ids)
		}
	}
	if m.fetchCalls != 0 {
		t.Errorf("expected no fetch, got %d calls", m.fetchCalls)
	}
}

func TestPaginate_ZeroMatches(t *testing.T) {
	m := &mockExecutor{}
	total, ids, err := paginate(context.Background(), m, predicate.Or(), mustRequest(t, "", 1, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 || len(ids) != 0 || m.fetchCalls != 0 {
		t.Errorf("total=%d ids=%v fetches=%d", total, ids, m.fetchCalls)
	}
}

func TestPaginate_CountError(t *testing.T) {
	boom := errors.New("boom")
	m := &mockExecutor{
		countFn: func(context.Context, predicate.Predicate) (int, error) { return 0, boom },
	}
	_, _, err := paginate(context.Background(), m, predicate.And(), mustRequest(t, "", 1, 12))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestPaginate_FetchError(t *testing.T) {
	boom := errors.New("boom")
	m := &mockExecutor{
		countFn: func(context.Context, predicate.Predicate) (int, error) { return 3, nil },
		fetchFn: func(context.Context, predicate.Predicate, rank.Spec, int, int) ([]profile.ID, error) {
			return nil, boom
		},
	}
	_, _, err := paginate(context.Background(), m, predicate.And(), mustRequest(t, "", 1, 12))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
