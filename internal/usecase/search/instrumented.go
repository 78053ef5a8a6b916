package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/rank"
	"github.com/kailas-cloud/gigdex/internal/metrics"
)

// InstrumentedExecutor wraps an Executor with per-call metrics and logging.
type InstrumentedExecutor struct {
	inner   Executor
	backend string
	logger  *zap.Logger
}

// NewInstrumentedExecutor wraps inner; backend labels the metrics (e.g. "sqlite").
func NewInstrumentedExecutor(inner Executor, backend string, logger *zap.Logger) *InstrumentedExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedExecutor{inner: inner, backend: backend, logger: logger}
}

// Count delegates to the inner executor.
func (e *InstrumentedExecutor) Count(ctx context.Context, p predicate.Predicate) (int, error) {
	start := time.Now()
	n, err := e.inner.Count(ctx, p)
	e.observe("count", start, err)
	return n, err //nolint:wrapcheck // decorator is transparent
}

// FetchIDPage delegates to the inner executor.
func (e *InstrumentedExecutor) FetchIDPage(
	ctx context.Context, p predicate.Predicate, order rank.Spec, offset, limit int,
) ([]profile.ID, error) {
	start := time.Now()
	ids, err := e.inner.FetchIDPage(ctx, p, order, offset, limit)
	e.observe("fetch_id_page", start, err)
	return ids, err //nolint:wrapcheck // decorator is transparent
}

// Hydrate delegates to the inner executor.
func (e *InstrumentedExecutor) Hydrate(ctx context.Context, ids []profile.ID) ([]profile.Profile, error) {
	start := time.Now()
	rows, err := e.inner.Hydrate(ctx, ids)
	e.observe("hydrate", start, err)
	return rows, err //nolint:wrapcheck // decorator is transparent
}

func (e *InstrumentedExecutor) observe(call string, start time.Time, err error) {
	duration := time.Since(start)
	metrics.ExecutorCallDuration.WithLabelValues(e.backend, call).Observe(duration.Seconds())
	if err != nil {
		metrics.ExecutorErrorsTotal.WithLabelValues(e.backend, call).Inc()
		e.logger.Error("Executor call failed",
			zap.String("backend", e.backend),
			zap.String("call", call),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	}
}
