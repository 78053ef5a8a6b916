package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/gigdex/internal/domain"
	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/request"
	"github.com/kailas-cloud/gigdex/internal/domain/search/result"
	"github.com/kailas-cloud/gigdex/internal/logger"
	"github.com/kailas-cloud/gigdex/internal/metrics"
)

// Service runs public profile searches.
type Service struct {
	exec       Executor
	normalizer Normalizer
}

// New creates a search service.
func New(exec Executor, normalizer Normalizer) *Service {
	return &Service{exec: exec, normalizer: normalizer}
}

// Search normalizes the query, composes the predicate, and returns one ranked
// page of visible profiles together with the total match count.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	start := time.Now()
	log := logger.FromContext(ctx)

	page, err := s.search(ctx, req)

	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		log.Error("Search failed",
			zap.String("query", req.Query()),
			zap.Int("page", req.Page()),
			zap.Error(err),
		)
		return result.Page{}, err
	}
	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	return page, nil
}

func (s *Service) search(ctx context.Context, req *request.Request) (result.Page, error) {
	log := logger.FromContext(ctx)

	tokens := s.normalizer.Normalize(req.Query())
	p := Compose(tokens, Filters{Kind: req.Kind(), ExperienceLevel: req.ExperienceLevel()})

	total, ids, err := paginate(ctx, s.exec, p, req)
	if err != nil {
		return result.Page{}, executionError(err)
	}

	var summaries []profile.Summary
	if len(ids) > 0 {
		rows, err := s.exec.Hydrate(ctx, ids)
		if err != nil {
			return result.Page{}, executionError(fmt.Errorf("hydrate: %w", err))
		}
		summaries = Assemble(ids, rows)
	}

	dropped := len(ids) - len(summaries)
	if dropped > 0 {
		metrics.SearchStaleDropsTotal.Add(float64(dropped))
	}

	log.Debug("Search completed",
		zap.Int("tokens", len(tokens)),
		zap.Stringer("predicate", p),
		zap.Int("total", total),
		zap.Int("page", req.Page()),
		zap.Int("page_size", req.PageSize()),
		zap.Int("returned", len(summaries)),
		zap.Int("stale_dropped", dropped),
	)

	return result.New(total, summaries, req.Page(), req.PageSize()), nil
}

// executionError guarantees Executor failures carry ErrExecutionFailure.
func executionError(err error) error {
	if errors.Is(err, domain.ErrExecutionFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrExecutionFailure, err)
}
