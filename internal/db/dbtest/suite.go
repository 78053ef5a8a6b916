// Package dbtest holds a behavioural test suite shared by every db.Store
// implementation.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/gigdex/internal/db"
	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/rank"
	"github.com/kailas-cloud/gigdex/internal/domain/search/request"
	"github.com/kailas-cloud/gigdex/internal/domain/search/stem"
	"github.com/kailas-cloud/gigdex/internal/domain/search/text"
	"github.com/kailas-cloud/gigdex/internal/usecase/search"
)

// Factory returns an empty, ready store. It registers its own cleanup.
type Factory func(t *testing.T) db.Store

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Run executes the suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("EndToEndAnaFolk", func(t *testing.T) { testAnaFolk(t, newStore(t)) })
	t.Run("TokenAndFieldOr", func(t *testing.T) { testTokenAndFieldOr(t, newStore(t)) })
	t.Run("AccentInsensitive", func(t *testing.T) { testAccents(t, newStore(t)) })
	t.Run("PluralStem", func(t *testing.T) { testPluralStem(t, newStore(t)) })
	t.Run("VisibilityInvariant", func(t *testing.T) { testVisibility(t, newStore(t)) })
	t.Run("StructuredFilters", func(t *testing.T) { testStructuredFilters(t, newStore(t)) })
	t.Run("PaginationArithmetic", func(t *testing.T) { testPagination(t, newStore(t)) })
	t.Run("EmptyQueryBrowseOrder", func(t *testing.T) { testBrowseOrder(t, newStore(t)) })
	t.Run("EmptyComposition", func(t *testing.T) { testEmptyComposition(t, newStore(t)) })
	t.Run("HydrateUnordered", func(t *testing.T) { testHydrate(t, newStore(t)) })
	t.Run("UpsertReplaces", func(t *testing.T) { testUpsertReplaces(t, newStore(t)) })
	t.Run("LikeWildcardsAreLiteral", func(t *testing.T) { testWildcards(t, newStore(t)) })
	t.Run("Ping", func(t *testing.T) { require.NoError(t, newStore(t).Ping(context.Background())) })
}

func seed(t *testing.T, s db.Store, ps ...profile.Profile) {
	t.Helper()
	require.NoError(t, s.Upsert(context.Background(), ps))
}

func runSearch(t *testing.T, s db.Store, q string, kind profile.Kind, level string, page, size int) ([]profile.ID, int) {
	t.Helper()
	req, err := request.New(q, kind, level, page, size)
	require.NoError(t, err)

	svc := search.New(s, text.NewNormalizer(stem.New(nil)))
	res, err := svc.Search(context.Background(), &req)
	require.NoError(t, err)

	ids := make([]profile.ID, 0, len(res.Results()))
	for _, r := range res.Results() {
		ids = append(ids, r.ID)
	}
	return ids, res.TotalCount()
}

func query(t *testing.T, s db.Store, q string) []profile.ID {
	t.Helper()
	ids, _ := runSearch(t, s, q, "", "", 1, 50)
	return ids
}

func musician(id profile.ID, name string) profile.Profile {
	return profile.Profile{
		ID:           id,
		Visible:      true,
		Kind:         profile.Musician,
		StageName:    name,
		Completeness: 50,
		CreatedAt:    base.Add(time.Duration(id) * time.Hour),
	}
}

func refs(names ...string) []profile.Ref {
	out := make([]profile.Ref, len(names))
	for i, n := range names {
		out[i] = profile.Ref{Name: n}
	}
	return out
}

func testAnaFolk(t *testing.T, s db.Store) {
	p1 := musician(1, "Ana Folk")
	p1.Instruments = refs("Guitarra Acústica")
	p1.Genres = refs("Folk/Acústico")
	seed(t, s, p1)

	assert.Equal(t, []profile.ID{1}, query(t, s, "guitarrista folk"))
	assert.Empty(t, query(t, s, "bateria"))
}

func testTokenAndFieldOr(t *testing.T, s db.Store) {
	both := musician(1, "Los Pibes")
	both.Instruments = refs("Guitarra")
	both.Genres = refs("Rock")

	onlyGuitar := musician(2, "Solista")
	onlyGuitar.Instruments = refs("Guitarra")
	onlyGuitar.Genres = refs("Tango")

	onlyRock := musician(3, "Rockeros")
	onlyRock.Instruments = refs("Bajo")

	seed(t, s, both, onlyGuitar, onlyRock)

	assert.Equal(t, []profile.ID{1}, query(t, s, "guitarrista rock"))
	assert.ElementsMatch(t, []profile.ID{1, 2}, query(t, s, "guitarrista"))
	assert.ElementsMatch(t, []profile.ID{1, 3}, query(t, s, "rock"))
}

func testAccents(t *testing.T, s db.Store) {
	p := musician(1, "Trío Mágico")
	p.City = "México"
	p.Services = []string{"Clases de Canción"}
	seed(t, s, p)

	for _, q := range []string{"mexico", "MÉXICO", "magico", "trio", "cancion", "CANCIÓN"} {
		assert.Equal(t, []profile.ID{1}, query(t, s, q), "query %q", q)
	}
}

func testPluralStem(t *testing.T, s db.Store) {
	p := musician(1, "Keys")
	p.Instruments = refs("Teclado")
	p.GearHighlights = []string{"Nord Stage 3"}
	seed(t, s, p)

	assert.Equal(t, []profile.ID{1}, query(t, s, "teclados"))
	assert.Equal(t, []profile.ID{1}, query(t, s, "tecladista"))
	assert.Equal(t, []profile.ID{1}, query(t, s, "nord"))
}

func testVisibility(t *testing.T, s db.Store) {
	hidden := musician(1, "Guitarrista Rock Perfecto")
	hidden.Visible = false
	hidden.Instruments = refs("Guitarra")
	hidden.Genres = refs("Rock")
	hidden.Completeness = 100
	seed(t, s, hidden, musician(2, "Otro"))

	for _, q := range []string{"", "guitarrista", "rock", "perfecto"} {
		ids, total := runSearch(t, s, q, "", "", 1, 50)
		assert.NotContains(t, ids, profile.ID(1), "query %q", q)
		if q == "" {
			assert.Equal(t, 1, total)
		}
	}
}

func testStructuredFilters(t *testing.T, s db.Store) {
	solo := musician(1, "Solo Rock")
	solo.ExperienceLevel = "Avanzado"

	band := musician(2, "Banda Rock")
	band.Kind = profile.Band
	band.ExperienceLevel = "Intermedio"

	seed(t, s, solo, band)

	ids, total := runSearch(t, s, "rock", profile.Band, "", 1, 12)
	assert.Equal(t, []profile.ID{2}, ids)
	assert.Equal(t, 1, total)

	ids, _ = runSearch(t, s, "", "", "avanzado", 1, 12)
	assert.Equal(t, []profile.ID{1}, ids)

	ids, _ = runSearch(t, s, "", profile.Musician, "intermedio", 1, 12)
	assert.Empty(t, ids)
}

func testPagination(t *testing.T, s db.Store) {
	ps := make([]profile.Profile, 0, 25)
	for i := 1; i <= 25; i++ {
		ps = append(ps, musician(profile.ID(i), "Musico"))
	}
	seed(t, s, ps...)

	req, err := request.New("", "", "", 3, 12)
	require.NoError(t, err)
	res, err := search.New(s, text.NewNormalizer(nil)).Search(context.Background(), &req)
	require.NoError(t, err)

	assert.Equal(t, 25, res.TotalCount())
	assert.Equal(t, 3, res.TotalPages())
	assert.Len(t, res.Results(), 1)

	seen := map[profile.ID]bool{}
	for page := 1; page <= 3; page++ {
		ids, _ := runSearch(t, s, "musico", "", "", page, 12)
		for _, id := range ids {
			assert.False(t, seen[id], "id %d repeated across pages", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, 25)
}

func testBrowseOrder(t *testing.T, s db.Store) {
	low := musician(1, "Bajo")
	low.Completeness = 10

	highOld := musician(2, "Alto Viejo")
	highOld.Completeness = 90
	highOld.CreatedAt = base

	highNew := musician(3, "Alto Nuevo")
	highNew.Completeness = 90
	highNew.CreatedAt = base.Add(24 * time.Hour)

	tieA := musician(4, "Empate A")
	tieA.Completeness = 40
	tieA.CreatedAt = base
	tieB := musician(5, "Empate B")
	tieB.Completeness = 40
	tieB.CreatedAt = base

	seed(t, s, low, highOld, highNew, tieB, tieA)

	ids, total := runSearch(t, s, "", "", "", 1, 12)
	assert.Equal(t, 5, total)
	assert.Equal(t, []profile.ID{3, 2, 4, 5, 1}, ids)
}

func testEmptyComposition(t *testing.T, s db.Store) {
	seed(t, s, musician(1, "Uno"), musician(2, "Dos"))
	ctx := context.Background()

	n, err := s.Count(ctx, predicate.And())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.Count(ctx, predicate.Or())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	ids, err := s.FetchIDPage(ctx, predicate.And(), rank.Default, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func testHydrate(t *testing.T, s db.Store) {
	p := musician(7, "Completa")
	p.LegalName = "Juana Pérez"
	p.Biography = "Toco desde chica"
	p.City = "Rosario"
	p.Province = "Santa Fe"
	p.ExperienceLevel = "avanzado"
	p.ProfileImage = "https://img.example/7.png"
	p.Services = []string{"Sesión", "Clases"}
	p.Influences = []string{"Mercedes Sosa"}
	p.GearHighlights = []string{"Taylor 814ce"}
	p.Genres = refs("Folk")
	p.Instruments = refs("Voz", "Guitarra", "Acordeón")
	p.Skills = refs("Arreglos")
	p.Completeness = 80
	seed(t, s, p, musician(8, "Otra"))

	rows, err := s.Hydrate(context.Background(), []profile.ID{8, 7, 99})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var got profile.Profile
	for _, r := range rows {
		if r.ID == 7 {
			got = r
		}
	}
	assert.Equal(t, "Juana Pérez", got.LegalName)
	assert.Equal(t, "Santa Fe", got.Province)
	assert.Equal(t, []string{"Sesión", "Clases"}, got.Services)
	assert.Equal(t, []string{"Taylor 814ce"}, got.GearHighlights)
	assert.Equal(t, 80, got.Completeness)
	assert.True(t, got.CreatedAt.Equal(p.CreatedAt))
	assert.Equal(t, []string{"Acordeón", "Guitarra", "Voz"}, names(got.Instruments))
	assert.Equal(t, []string{"Folk"}, names(got.Genres))
	assert.Equal(t, []string{"Arreglos"}, names(got.Skills))
	assert.Equal(t, []string{"Acordeón", "Guitarra", "Voz"}, got.Summarize().Instruments)
}

func testUpsertReplaces(t *testing.T, s db.Store) {
	p := musician(1, "Antes")
	p.Instruments = refs("Bateria")
	seed(t, s, p)

	p.StageName = "Despues"
	p.Instruments = refs("Piano")
	seed(t, s, p)

	assert.Empty(t, query(t, s, "antes"))
	assert.Empty(t, query(t, s, "bateria"))
	assert.Equal(t, []profile.ID{1}, query(t, s, "despues piano"))

	n, err := s.Count(context.Background(), predicate.And())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func testWildcards(t *testing.T, s db.Store) {
	seed(t, s, musician(1, "100% Rock"), musician(2, "Rock_Star"), musician(3, "Plain"))

	assert.Equal(t, []profile.ID{1}, query(t, s, "100%"))
	assert.Equal(t, []profile.ID{2}, query(t, s, "k_s"))
	assert.Empty(t, query(t, s, "%_%a"))
}

func names(refs []profile.Ref) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Name
	}
	return out
}
