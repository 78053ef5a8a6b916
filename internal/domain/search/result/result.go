package result

import "github.com/kailas-cloud/gigdex/internal/domain/profile"

// Page is one page of ranked search results plus the total match count.
type Page struct {
	totalCount int
	results    []profile.Summary
	page       int
	pageSize   int
}

// New creates a result page.
func New(totalCount int, results []profile.Summary, page, pageSize int) Page {
	if totalCount < 0 {
		totalCount = 0
	}
	if results == nil {
		results = []profile.Summary{}
	}
	return Page{totalCount: totalCount, results: results, page: page, pageSize: pageSize}
}

// TotalCount returns the number of matching profiles, independent of paging.
func (p *Page) TotalCount() int { return p.totalCount }

// Results returns the page's summaries in rank order.
func (p *Page) Results() []profile.Summary { return p.results }

// Page returns the 1-based page number.
func (p *Page) Page() int { return p.page }

// PageSize returns the requested page size.
func (p *Page) PageSize() int { return p.pageSize }

// TotalPages returns ceil(TotalCount / PageSize).
func (p *Page) TotalPages() int {
	if p.pageSize <= 0 || p.totalCount == 0 {
		return 0
	}
	return (p.totalCount + p.pageSize - 1) / p.pageSize
}
