package profile

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// ID identifies a profile in the store.
type ID uint64

// String returns the decimal form of the identifier.
func (id ID) String() string { return strconv.FormatUint(uint64(id), 10) }

// Kind is the type of actor a profile describes.
type Kind string

// Profile kinds.
const (
	Musician Kind = "musician"
	Band     Kind = "band"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Musician || k == Band
}

// ParseKind folds s and returns the matching kind. Empty input yields ("", true).
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return "", true
	}
	return k, k.IsValid()
}

// Ref is a related entity (genre, instrument or skill).
type Ref struct {
	ID   uint64 `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Profile is the searchable read model of a musician or band.
// It is produced by the store; the search engine never mutates it.
type Profile struct {
	ID              ID        `yaml:"id"`
	Visible         bool      `yaml:"visible"`
	Kind            Kind      `yaml:"kind"`
	StageName       string    `yaml:"stage_name"`
	LegalName       string    `yaml:"legal_name"`
	Biography       string    `yaml:"biography"`
	City            string    `yaml:"city"`
	Province        string    `yaml:"province"`
	ExperienceLevel string    `yaml:"experience_level"`
	ProfileImage    string    `yaml:"profile_image"`
	Services        []string  `yaml:"services"`
	Influences      []string  `yaml:"influences"`
	GearHighlights  []string  `yaml:"gear_highlights"`
	Genres          []Ref     `yaml:"genres"`
	Instruments     []Ref     `yaml:"instruments"`
	Skills          []Ref     `yaml:"skills"`
	Completeness    int       `yaml:"completeness"`
	CreatedAt       time.Time `yaml:"created_at"`
}

// DisplayName returns the stage name, falling back to the legal name.
func (p *Profile) DisplayName() string {
	if name := strings.TrimSpace(p.StageName); name != "" {
		return name
	}
	return strings.TrimSpace(p.LegalName)
}

// Summary is the flattened projection returned by search.
type Summary struct {
	ID              ID
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

// Summarize flattens the profile into its search projection.
func (p *Profile) Summarize() Summary {
	name := p.DisplayName()
	return Summary{
		ID:              p.ID,
		DisplayName:     name,
		Slug:            slugFor(name, p.ID),
		City:            p.City,
		Province:        p.Province,
		ProfileImage:    p.ProfileImage,
		Kind:            p.Kind,
		ExperienceLevel: p.ExperienceLevel,
		Instruments:     names(p.Instruments),
		Genres:          names(p.Genres),
		Skills:          names(p.Skills),
	}
}

// slugFor builds a stable URL slug; the id suffix keeps homonyms apart.
func slugFor(name string, id ID) string {
	s := slug.Make(name)
	if s == "" {
		return id.String()
	}
	return s + "-" + id.String()
}

// names lists relation names sorted, so summaries do not depend on the
// order a store returns relations in.
func names(refs []Ref) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Name)
	}
	slices.Sort(out)
	return out
}
