package result

import (
	"testing"

	"github.com/kailas-cloud/gigdex/internal/domain/profile"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{25, 12, 3},
		{24, 12, 2},
		{1, 12, 1},
		{0, 12, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		p := New(tt.total, nil, 1, tt.size)
		if got := p.TotalPages(); got != tt.want {
			t.Errorf("TotalPages(total=%d, size=%d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestNew_Accessors(t *testing.T) {
	rs := []profile.Summary{{ID: 1}, {ID: 2}}
	p := New(2, rs, 1, 12)

	if p.TotalCount() != 2 {
		t.Errorf("TotalCount() = %d", p.TotalCount())
	}
	if len(p.Results()) != 2 || p.Results()[0].ID != 1 {
		t.Errorf("Results() = %+v", p.Results())
	}
	if p.Page() != 1 || p.PageSize() != 12 {
		t.Errorf("Page/PageSize = %d/%d", p.Page(), p.PageSize())
	}
}

func TestNew_NilResultsBecomeEmpty(t *testing.T) {
	p := New(0, nil, 1, 12)
	if p.Results() == nil {
		t.Error("Results() should be non-nil for JSON encoding")
	}
}

func TestNew_NegativeTotalClamped(t *testing.T) {
	p := New(-1, nil, 1, 12)
	if p.TotalCount() != 0 {
		t.Errorf("TotalCount() = %d", p.TotalCount())
	}
}
