package relational

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kailas-cloud/gigdex/internal/db"
	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/text"
)

// Upsert inserts or replaces profiles in one transaction. Array fields and
// relations are replaced wholesale. Relations without an id are matched to
// existing rows by folded name, or created.
func (s *Store) Upsert(ctx context.Context, profiles []profile.Profile) error {
	for i := range profiles {
		if profiles[i].ID == 0 {
			return db.Wrap(db.OpUpsert, fmt.Errorf("%w: profile at index %d has no id", db.ErrInvalidProfile, i))
		}
	}

	err := s.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range profiles {
			if err := upsertOne(tx, &profiles[i]); err != nil {
				return fmt.Errorf("profile %d: %w", profiles[i].ID, err)
			}
		}
		return nil
	})
	return db.Wrap(db.OpUpsert, err)
}

func upsertOne(tx *gorm.DB, p *profile.Profile) error {
	row := toRow(p)
	if err := tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error; err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	if err := tx.Where("profile_id = ?", row.ID).Delete(&termRow{}).Error; err != nil {
		return fmt.Errorf("clear terms: %w", err)
	}
	if terms := toTerms(p); len(terms) > 0 {
		if err := tx.Create(&terms).Error; err != nil {
			return fmt.Errorf("save terms: %w", err)
		}
	}

	genres, err := resolveRefs[genreRow](tx, p.Genres)
	if err != nil {
		return fmt.Errorf("genres: %w", err)
	}
	instruments, err := resolveRefs[instrumentRow](tx, p.Instruments)
	if err != nil {
		return fmt.Errorf("instruments: %w", err)
	}
	skills, err := resolveRefs[skillRow](tx, p.Skills)
	if err != nil {
		return fmt.Errorf("skills: %w", err)
	}

	if err := replace(tx, &row, "Genres", genres); err != nil {
		return err
	}
	if err := replace(tx, &row, "Instruments", instruments); err != nil {
		return err
	}
	return replace(tx, &row, "Skills", skills)
}

func replace[T any](tx *gorm.DB, row *profileRow, name string, values []T) error {
	assoc := tx.Model(row).Association(name)
	var err error
	if len(values) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(values)
	}
	if err != nil {
		return fmt.Errorf("replace %s: %w", strings.ToLower(name), err)
	}
	return nil
}

// refModel is a pointer to one of the relation row types.
type refModel[T any] interface {
	*T
	columns() *Named
}

// resolveRefs maps refs onto rows of table T, creating rows as needed.
func resolveRefs[T any, PT refModel[T]](tx *gorm.DB, refs []profile.Ref) ([]T, error) {
	out := make([]T, 0, len(refs))
	seen := make(map[uint64]bool, len(refs))

	for _, r := range refs {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		folded := text.Fold(name)

		var row T
		cols := PT(&row).columns()

		if r.ID != 0 {
			*cols = Named{ID: r.ID, Name: name, NameFolded: folded}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "name_folded"}),
			}).Create(PT(&row)).Error
			if err != nil {
				return nil, fmt.Errorf("upsert %q: %w", name, err)
			}
		} else {
			if err := tx.Where("name_folded = ?", folded).Limit(1).Find(PT(&row)).Error; err != nil {
				return nil, fmt.Errorf("lookup %q: %w", name, err)
			}
			if cols.ID == 0 {
				*cols = Named{Name: name, NameFolded: folded}
				if err := tx.Create(PT(&row)).Error; err != nil {
					return nil, fmt.Errorf("create %q: %w", name, err)
				}
			}
		}

		if seen[cols.ID] {
			continue
		}
		seen[cols.ID] = true
		out = append(out, row)
	}
	return out, nil
}
