package search

import (
	"context"

	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/rank"
	"github.com/kailas-cloud/gigdex/internal/domain/search/text"
)

// Executor evaluates predicates against the profile store.
// Implementations must compare against stored text folded with text.Fold.
type Executor interface {
	// Count returns the number of profiles matching p.
	Count(ctx context.Context, p predicate.Predicate) (int, error)
	// FetchIDPage returns up to limit ids of matching profiles, ordered by
	// order and starting at offset.
	FetchIDPage(
		ctx context.Context, p predicate.Predicate,
		order rank.Spec, offset, limit int,
	) ([]profile.ID, error)
	// Hydrate loads full profiles for ids. Order is unspecified and missing
	// ids are silently absent.
	Hydrate(ctx context.Context, ids []profile.ID) ([]profile.Profile, error)
}

// Normalizer turns a raw query into search tokens.
type Normalizer interface {
	Normalize(raw string) []text.Token
}
