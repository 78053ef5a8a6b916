package gigdex

import (
	"context"
	"time"

	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/request"
)

// SearchBuilder is a fluent builder for profile searches.
// An empty builder browses every visible profile in rank order.
type SearchBuilder struct {
	client *Client

	query    string
	kind     Kind
	level    string
	page     int
	pageSize int
}

// Query sets the free-text query. Every word must match some profile field.
func (b *SearchBuilder) Query(q string) *SearchBuilder {
	b.query = q
	return b
}

// Kind restricts results to musicians or bands.
func (b *SearchBuilder) Kind(k Kind) *SearchBuilder {
	b.kind = k
	return b
}

// ExperienceLevel restricts results to one experience level (exact match).
func (b *SearchBuilder) ExperienceLevel(level string) *SearchBuilder {
	b.level = level
	return b
}

// Page sets the 1-based page number. Values below 1 mean 1.
func (b *SearchBuilder) Page(n int) *SearchBuilder {
	b.page = n
	return b
}

// PageSize sets the page size, capped by WithMaxPageSize. Zero means 12.
func (b *SearchBuilder) PageSize(n int) *SearchBuilder {
	b.pageSize = n
	return b
}

// Do executes the search.
func (b *SearchBuilder) Do(ctx context.Context) (page Page, err error) {
	start := time.Now()
	defer func() {
		b.client.obs.observe("search", start, err,
			"query", b.query, "page", page.Page, "total", page.TotalCount)
	}()

	pageSize := b.pageSize
	if pageSize > 0 {
		pageSize = request.ClampPageSize(pageSize, b.client.maxPageSize)
	}
	req, err := request.New(b.query, profile.Kind(b.kind), b.level, b.page, pageSize)
	if err != nil {
		return Page{}, err
	}

	res, err := b.client.searchSvc.Search(ctx, &req)
	if err != nil {
		return Page{}, err
	}
	b.client.obs.observeMatches(res.TotalCount())
	return pageFromDomain(&res), nil
}
