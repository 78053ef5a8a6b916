package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/rank"
	"github.com/kailas-cloud/gigdex/internal/domain/search/request"
)

// paginate counts all matches and fetches the ranked id window for req's page.
// Count and page are separate reads; a concurrent write between them may make
// the total slightly inconsistent with the page, which is accepted.
func paginate(
	ctx context.Context, exec Executor, p predicate.Predicate, req *request.Request,
) (int, []profile.ID, error) {
	total, err := exec.Count(ctx, p)
	if err != nil {
		return 0, nil, fmt.Errorf("count: %w", err)
	}

	offset, ok := req.Offset()
	if !ok || offset >= total {
		return total, nil, nil
	}

	ids, err := exec.FetchIDPage(ctx, p, rank.Default, offset, req.PageSize())
	if err != nil {
		return 0, nil, fmt.Errorf("fetch id page: %w", err)
	}
	return total, ids, nil
}
