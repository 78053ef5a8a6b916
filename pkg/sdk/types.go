package gigdex

import (
	"time"

	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/result"
)

// Kind is the type of actor a profile describes.
type Kind string

// Profile kinds.
const (
	Musician Kind = "musician"
	Band     Kind = "band"
)

// Profile is a searchable musician or band.
// Genres, Instruments and Skills are given by name; equal names (ignoring
// case and accents) share one catalog entry.
type Profile struct {
	ID              uint64
	Visible         bool
	Kind            Kind
	StageName       string
	LegalName       string
	Biography       string
	City            string
	Province        string
	ExperienceLevel string
	ProfileImage    string
	Services        []string
	Influences      []string
	GearHighlights  []string
	Genres          []string
	Instruments     []string
	Skills          []string
	Completeness    int // 0..100, primary rank key
	CreatedAt       time.Time
}

// Summary is one search hit.
type Summary struct {
	ID              uint64
	DisplayName     string
	Slug            string
	City            string
	Province        string
	ProfileImage    string
	Kind            Kind
	ExperienceLevel string
	Instruments     []string
	Genres          []string
	Skills          []string
}

// Page is one page of ranked results plus the total match count.
type Page struct {
	TotalCount int
	Page       int
	PageSize   int
	TotalPages int
	Results    []Summary
}

func profileToDomain(p *Profile) profile.Profile {
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return profile.Profile{
		ID:              profile.ID(p.ID),
		Visible:         p.Visible,
		Kind:            profile.Kind(p.Kind),
		StageName:       p.StageName,
		LegalName:       p.LegalName,
		Biography:       p.Biography,
		City:            p.City,
		Province:        p.Province,
		ExperienceLevel: p.ExperienceLevel,
		ProfileImage:    p.ProfileImage,
		Services:        p.Services,
		Influences:      p.Influences,
		GearHighlights:  p.GearHighlights,
		Genres:          refsFromNames(p.Genres),
		Instruments:     refsFromNames(p.Instruments),
		Skills:          refsFromNames(p.Skills),
		Completeness:    p.Completeness,
		CreatedAt:       created,
	}
}

func refsFromNames(names []string) []profile.Ref {
	if len(names) == 0 {
		return nil
	}
	out := make([]profile.Ref, 0, len(names))
	for _, n := range names {
		out = append(out, profile.Ref{Name: n})
	}
	return out
}

func pageFromDomain(p *result.Page) Page {
	results := make([]Summary, 0, len(p.Results()))
	for _, s := range p.Results() {
		results = append(results, Summary{
			ID:              uint64(s.ID),
			DisplayName:     s.DisplayName,
			Slug:            s.Slug,
			City:            s.City,
			Province:        s.Province,
			ProfileImage:    s.ProfileImage,
			Kind:            Kind(s.Kind),
			ExperienceLevel: s.ExperienceLevel,
			Instruments:     s.Instruments,
			Genres:          s.Genres,
			Skills:          s.Skills,
		})
	}
	return Page{
		TotalCount: p.TotalCount(),
		Page:       p.Page(),
		PageSize:   p.PageSize(),
		TotalPages: p.TotalPages(),
		Results:    results,
	}
}
