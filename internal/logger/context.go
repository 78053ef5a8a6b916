package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger returns ctx carrying logger. The search pipeline reads it
// back with FromContext, so request-scoped fields reach every log line.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithFields derives a child of base with fields and stores it in ctx.
// A nil base is treated as a no-op logger.
func WithFields(ctx context.Context, base *zap.Logger, fields ...zap.Field) (context.Context, *zap.Logger) {
	if base == nil {
		base = zap.NewNop()
	}
	child := base.With(fields...)
	return ContextWithLogger(ctx, child), child
}

// FromContext returns the logger stored in ctx, or a no-op logger, so callers
// never need a nil check.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}
