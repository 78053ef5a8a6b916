// Package memory is an in-process profile store. It evaluates search
// predicates directly over Go values and is used for tests, fixtures-only
// deployments and the embeddable SDK.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/kailas-cloud/gigdex/internal/db"
	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/rank"
	"github.com/kailas-cloud/gigdex/internal/domain/search/text"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store keeps profiles in memory alongside their folded search text.
type Store struct {
	mu      sync.RWMutex
	entries map[profile.ID]*entry
	closed  bool
}

// entry is a profile plus its folded shadow values.
type entry struct {
	p       profile.Profile
	scalars map[predicate.ScalarField]string
	arrays  map[predicate.ArrayField][]string
	rels    map[predicate.Relation][]string
	kind    string
	level   string
}

// New creates an empty store.
func New() *Store {
	return &Store{entries: make(map[profile.ID]*entry)}
}

// Ping reports whether the store is open.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return db.Wrap(db.OpPing, db.ErrClosed)
	}
	return nil
}

// WaitForReady returns immediately for an open store.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.PollReady(ctx, s, timeout)
}

// Close marks the store closed; later calls fail with db.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Upsert inserts or replaces profiles by ID.
func (s *Store) Upsert(ctx context.Context, profiles []profile.Profile) error {
	for i := range profiles {
		if profiles[i].ID == 0 {
			return db.Wrap(db.OpUpsert, fmt.Errorf("%w: profile at index %d has no id", db.ErrInvalidProfile, i))
		}
	}
	if err := ctx.Err(); err != nil {
		return db.Wrap(db.OpUpsert, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return db.Wrap(db.OpUpsert, db.ErrClosed)
	}
	for i := range profiles {
		e := index(profiles[i])
		s.entries[e.p.ID] = e
	}
	return nil
}

// Delete removes profiles by ID. Missing ids are ignored.
func (s *Store) Delete(_ context.Context, ids ...profile.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.entries, id)
	}
}

// Count returns the number of profiles matching p.
func (s *Store) Count(ctx context.Context, p predicate.Predicate) (int, error) {
	matches, err := s.match(ctx, db.OpCount, p)
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

// FetchIDPage returns ids of matching profiles sorted by order.
func (s *Store) FetchIDPage(
	ctx context.Context, p predicate.Predicate, order rank.Spec, offset, limit int,
) ([]profile.ID, error) {
	matches, err := s.match(ctx, db.OpFetchIDPage, p)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(matches, func(a, b *entry) int {
		return order.Compare(&a.p, &b.p)
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(matches) || limit <= 0 {
		return []profile.ID{}, nil
	}
	end := min(offset+limit, len(matches))

	ids := make([]profile.ID, 0, end-offset)
	for _, e := range matches[offset:end] {
		ids = append(ids, e.p.ID)
	}
	return ids, nil
}

// Hydrate returns copies of the stored profiles for ids, in no particular order.
func (s *Store) Hydrate(ctx context.Context, ids []profile.ID) ([]profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, db.Wrap(db.OpHydrate, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, db.Wrap(db.OpHydrate, db.ErrClosed)
	}

	out := make([]profile.Profile, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.entries[id]; ok {
			out = append(out, clone(e.p))
		}
	}
	return out, nil
}

func (s *Store) match(ctx context.Context, op string, p predicate.Predicate) ([]*entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, db.Wrap(op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, db.Wrap(op, db.ErrClosed)
	}

	var out []*entry
	for _, e := range s.entries {
		ok, err := eval(p, e)
		if err != nil {
			return nil, db.Wrap(op, err)
		}
		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func index(p profile.Profile) *entry {
	p = clone(p)
	return &entry{
		p: p,
		scalars: map[predicate.ScalarField]string{
			predicate.StageName: text.Fold(p.StageName),
			predicate.LegalName: text.Fold(p.LegalName),
			predicate.Biography: text.Fold(p.Biography),
			predicate.City:      text.Fold(p.City),
			predicate.Province:  text.Fold(p.Province),
		},
		arrays: map[predicate.ArrayField][]string{
			predicate.Services:       foldAll(p.Services),
			predicate.Influences:     foldAll(p.Influences),
			predicate.GearHighlights: foldAll(p.GearHighlights),
		},
		rels: map[predicate.Relation][]string{
			predicate.Genres:      foldRefs(p.Genres),
			predicate.Instruments: foldRefs(p.Instruments),
			predicate.Skills:      foldRefs(p.Skills),
		},
		kind:  text.Fold(string(p.Kind)),
		level: text.Fold(p.ExperienceLevel),
	}
}

func foldAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = text.Fold(s)
	}
	return out
}

func foldRefs(refs []profile.Ref) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = text.Fold(r.Name)
	}
	return out
}

func clone(p profile.Profile) profile.Profile {
	p.Services = slices.Clone(p.Services)
	p.Influences = slices.Clone(p.Influences)
	p.GearHighlights = slices.Clone(p.GearHighlights)
	p.Genres = sortedRefs(p.Genres)
	p.Instruments = sortedRefs(p.Instruments)
	p.Skills = sortedRefs(p.Skills)
	return p
}

// sortedRefs copies refs ordered by name, matching the relational store.
func sortedRefs(refs []profile.Ref) []profile.Ref {
	out := slices.Clone(refs)
	slices.SortFunc(out, func(a, b profile.Ref) int { return strings.Compare(a.Name, b.Name) })
	return out
}
