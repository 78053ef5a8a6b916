package relational

import (
	"time"

	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/text"
)

// profileRow is the profiles table. Every searchable text column has a
// *_folded shadow written with text.Fold; predicates only read the shadows.
type profileRow struct {
	ID                    uint64 `gorm:"primaryKey;autoIncrement:false"`
	Visible               bool   `gorm:"not null;index"`
	Kind                  string `gorm:"size:16;not null;index"`
	StageName             string `gorm:"size:255"`
	StageNameFolded       string `gorm:"size:255"`
	LegalName             string `gorm:"size:255"`
	LegalNameFolded       string `gorm:"size:255"`
	Biography             string `gorm:"type:text"`
	BiographyFolded       string `gorm:"type:text"`
	City                  string `gorm:"size:128"`
	CityFolded            string `gorm:"size:128"`
	Province              string `gorm:"size:128"`
	ProvinceFolded        string `gorm:"size:128"`
	ExperienceLevel       string `gorm:"size:64"`
	ExperienceLevelFolded string `gorm:"size:64;index"`
	ProfileImage          string `gorm:"size:512"`
	Completeness          int    `gorm:"not null;default:0;index"`
	CreatedAt             time.Time

	Terms       []termRow       `gorm:"foreignKey:ProfileID"`
	Genres      []genreRow      `gorm:"many2many:profile_genres;joinForeignKey:ProfileID;joinReferences:GenreID"`
	Instruments []instrumentRow `gorm:"many2many:profile_instruments;joinForeignKey:ProfileID;joinReferences:InstrumentID"`
	Skills      []skillRow      `gorm:"many2many:profile_skills;joinForeignKey:ProfileID;joinReferences:SkillID"`
}

func (profileRow) TableName() string { return "profiles" }

// termRow holds one element of an array field (services, influences, gear).
type termRow struct {
	ID        uint64 `gorm:"primaryKey"`
	ProfileID uint64 `gorm:"not null;index"`
	Field     string `gorm:"size:32;not null;index"`
	Position  int    `gorm:"not null"`
	Value     string `gorm:"size:512"`
	Folded    string `gorm:"size:512"`
}

func (termRow) TableName() string { return "profile_terms" }

// Named holds the columns shared by the genre, instrument and skill tables.
type Named struct {
	ID         uint64 `gorm:"primaryKey"`
	Name       string `gorm:"size:128;not null"`
	NameFolded string `gorm:"size:128;not null;uniqueIndex"`
}

func (c *Named) columns() *Named { return c }

type genreRow struct{ Named }

func (genreRow) TableName() string { return "genres" }

type instrumentRow struct{ Named }

func (instrumentRow) TableName() string { return "instruments" }

type skillRow struct{ Named }

func (skillRow) TableName() string { return "skills" }

// models lists every table for AutoMigrate.
func models() []any {
	return []any{&profileRow{}, &termRow{}, &genreRow{}, &instrumentRow{}, &skillRow{}}
}

func toRow(p *profile.Profile) profileRow {
	return profileRow{
		ID:                    uint64(p.ID),
		Visible:               p.Visible,
		Kind:                  text.Fold(string(p.Kind)),
		StageName:             p.StageName,
		StageNameFolded:       text.Fold(p.StageName),
		LegalName:             p.LegalName,
		LegalNameFolded:       text.Fold(p.LegalName),
		Biography:             p.Biography,
		BiographyFolded:       text.Fold(p.Biography),
		City:                  p.City,
		CityFolded:            text.Fold(p.City),
		Province:              p.Province,
		ProvinceFolded:        text.Fold(p.Province),
		ExperienceLevel:       p.ExperienceLevel,
		ExperienceLevelFolded: text.Fold(p.ExperienceLevel),
		ProfileImage:          p.ProfileImage,
		Completeness:          p.Completeness,
		CreatedAt:             p.CreatedAt,
	}
}

// array field names as stored in profile_terms.field.
const (
	termServices       = "services"
	termInfluences     = "influences"
	termGearHighlights = "gear_highlights"
)

func toTerms(p *profile.Profile) []termRow {
	var out []termRow
	add := func(field string, values []string) {
		for i, v := range values {
			out = append(out, termRow{
				ProfileID: uint64(p.ID),
				Field:     field,
				Position:  i,
				Value:     v,
				Folded:    text.Fold(v),
			})
		}
	}
	add(termServices, p.Services)
	add(termInfluences, p.Influences)
	add(termGearHighlights, p.GearHighlights)
	return out
}

func fromRow(r *profileRow) profile.Profile {
	p := profile.Profile{
		ID:              profile.ID(r.ID),
		Visible:         r.Visible,
		Kind:            profile.Kind(r.Kind),
		StageName:       r.StageName,
		LegalName:       r.LegalName,
		Biography:       r.Biography,
		City:            r.City,
		Province:        r.Province,
		ExperienceLevel: r.ExperienceLevel,
		ProfileImage:    r.ProfileImage,
		Completeness:    r.Completeness,
		CreatedAt:       r.CreatedAt,
	}
	for _, t := range r.Terms {
		switch t.Field {
		case termServices:
			p.Services = append(p.Services, t.Value)
		case termInfluences:
			p.Influences = append(p.Influences, t.Value)
		case termGearHighlights:
			p.GearHighlights = append(p.GearHighlights, t.Value)
		}
	}
	for i := range r.Genres {
		p.Genres = append(p.Genres, toRef(&r.Genres[i].Named))
	}
	for i := range r.Instruments {
		p.Instruments = append(p.Instruments, toRef(&r.Instruments[i].Named))
	}
	for i := range r.Skills {
		p.Skills = append(p.Skills, toRef(&r.Skills[i].Named))
	}
	return p
}

func toRef(c *Named) profile.Ref {
	return profile.Ref{ID: c.ID, Name: c.Name}
}
