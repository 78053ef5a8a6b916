// Package fixtures loads seed profiles from YAML.
package fixtures

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/gigdex/internal/domain/profile"
)

// File is the fixtures document.
type File struct {
	Profiles []Entry `yaml:"profiles" validate:"dive"`
}

// Entry is one profile as written in YAML. Relations are plain names.
type Entry struct {
	ID              uint64    `yaml:"id" validate:"required"`
	Visible         *bool     `yaml:"visible"`
	Kind            string    `yaml:"kind" validate:"required,oneof=musician band"`
	StageName       string    `yaml:"stage_name"`
	LegalName       string    `yaml:"legal_name"`
	Biography       string    `yaml:"biography"`
	City            string    `yaml:"city"`
	Province        string    `yaml:"province"`
	ExperienceLevel string    `yaml:"experience_level"`
	ProfileImage    string    `yaml:"profile_image" validate:"omitempty,url"`
	Services        []string  `yaml:"services"`
	Influences      []string  `yaml:"influences"`
	GearHighlights  []string  `yaml:"gear_highlights"`
	Genres          []string  `yaml:"genres"`
	Instruments     []string  `yaml:"instruments"`
	Skills          []string  `yaml:"skills"`
	Completeness    int       `yaml:"completeness" validate:"min=0,max=100"`
	CreatedAt       time.Time `yaml:"created_at"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadFile reads and validates a fixtures file.
func LoadFile(path string) ([]profile.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	profiles, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

// Load decodes and validates fixtures from r.
// Profiles default to visible; a missing created_at becomes the load time.
func Load(r io.Reader) ([]profile.Profile, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid fixtures: %w", err)
	}

	seen := make(map[uint64]bool, len(f.Profiles))
	now := time.Now().UTC()
	out := make([]profile.Profile, 0, len(f.Profiles))
	for i := range f.Profiles {
		e := &f.Profiles[i]
		if seen[e.ID] {
			return nil, fmt.Errorf("invalid fixtures: duplicate profile id %d", e.ID)
		}
		seen[e.ID] = true
		out = append(out, e.toProfile(now))
	}
	return out, nil
}

func (e *Entry) toProfile(now time.Time) profile.Profile {
	visible := true
	if e.Visible != nil {
		visible = *e.Visible
	}
	created := e.CreatedAt
	if created.IsZero() {
		created = now
	}
	return profile.Profile{
		ID:              profile.ID(e.ID),
		Visible:         visible,
		Kind:            profile.Kind(e.Kind),
		StageName:       e.StageName,
		LegalName:       e.LegalName,
		Biography:       e.Biography,
		City:            e.City,
		Province:        e.Province,
		ExperienceLevel: e.ExperienceLevel,
		ProfileImage:    e.ProfileImage,
		Services:        e.Services,
		Influences:      e.Influences,
		GearHighlights:  e.GearHighlights,
		Genres:          refs(e.Genres),
		Instruments:     refs(e.Instruments),
		Skills:          refs(e.Skills),
		Completeness:    e.Completeness,
		CreatedAt:       created,
	}
}

func refs(names []string) []profile.Ref {
	var out []profile.Ref
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, profile.Ref{Name: n})
		}
	}
	return out
}
