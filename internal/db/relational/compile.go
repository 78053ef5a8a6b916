package relational

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/gigdex/internal/db"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/rank"
)

var scalarColumns = map[predicate.ScalarField]string{
	predicate.StageName: "profiles.stage_name_folded",
	predicate.LegalName: "profiles.legal_name_folded",
	predicate.Biography: "profiles.biography_folded",
	predicate.City:      "profiles.city_folded",
	predicate.Province:  "profiles.province_folded",
}

var arrayTerms = map[predicate.ArrayField]string{
	predicate.Services:       termServices,
	predicate.Influences:     termInfluences,
	predicate.GearHighlights: termGearHighlights,
}

type relationTable struct {
	join   string
	column string
	table  string
}

var relationTables = map[predicate.Relation]relationTable{
	predicate.Genres:      {join: "profile_genres", column: "genre_id", table: "genres"},
	predicate.Instruments: {join: "profile_instruments", column: "instrument_id", table: "instruments"},
	predicate.Skills:      {join: "profile_skills", column: "skill_id", table: "skills"},
}

var exactColumns = map[predicate.ExactField]string{
	predicate.Visible:         "profiles.visible",
	predicate.Kind:            "profiles.kind",
	predicate.ExperienceLevel: "profiles.experience_level_folded",
}

var rankColumns = map[rank.Key]string{
	rank.Completeness: "profiles.completeness",
	rank.CreatedAt:    "profiles.created_at",
	rank.ID:           "profiles.id",
}

// '!' is the LIKE escape character; it works unchanged on sqlite, postgres and mysql.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// compile renders p as a parameterized WHERE fragment over the profiles table.
func compile(p predicate.Predicate) (string, []any, error) {
	c := &compiler{}
	if err := c.write(p); err != nil {
		return "", nil, err
	}
	return c.sql.String(), c.args, nil
}

type compiler struct {
	sql  strings.Builder
	args []any
}

func (c *compiler) write(p predicate.Predicate) error {
	switch p.Op() {
	case predicate.OpScalarContains:
		col, ok := scalarColumns[p.ScalarField()]
		if !ok {
			return unsupported(p)
		}
		c.sql.WriteString(col + " LIKE ? ESCAPE '!'")
		c.args = append(c.args, containsPattern(p.Text()))

	case predicate.OpArrayAny:
		field, ok := arrayTerms[p.ArrayField()]
		if !ok {
			return unsupported(p)
		}
		c.sql.WriteString("EXISTS (SELECT 1 FROM profile_terms WHERE profile_terms.profile_id = profiles.id" +
			" AND profile_terms.field = ? AND profile_terms.folded LIKE ? ESCAPE '!')")
		c.args = append(c.args, field, containsPattern(p.Text()))

	case predicate.OpRelationExists:
		rt, ok := relationTables[p.Relation()]
		if !ok {
			return unsupported(p)
		}
		fmt.Fprintf(&c.sql,
			"EXISTS (SELECT 1 FROM %[1]s JOIN %[3]s ON %[3]s.id = %[1]s.%[2]s"+
				" WHERE %[1]s.profile_id = profiles.id AND %[3]s.name_folded LIKE ? ESCAPE '!')",
			rt.join, rt.column, rt.table)
		c.args = append(c.args, containsPattern(p.Text()))

	case predicate.OpEquals:
		col, ok := exactColumns[p.ExactField()]
		if !ok {
			return unsupported(p)
		}
		c.sql.WriteString(col + " = ?")
		c.args = append(c.args, p.Value())

	case predicate.OpAnd:
		return c.join(p.Children(), " AND ", "1 = 1")

	case predicate.OpOr:
		return c.join(p.Children(), " OR ", "1 = 0")

	default:
		return unsupported(p)
	}
	return nil
}

func (c *compiler) join(children []predicate.Predicate, sep, empty string) error {
	if len(children) == 0 {
		c.sql.WriteString(empty)
		return nil
	}
	c.sql.WriteByte('(')
	for i, child := range children {
		if i > 0 {
			c.sql.WriteString(sep)
		}
		if err := c.write(child); err != nil {
			return err
		}
	}
	c.sql.WriteByte(')')
	return nil
}

// orderBy renders a rank spec as an ORDER BY list.
func orderBy(spec rank.Spec) (string, error) {
	if len(spec) == 0 {
		return "profiles.id", nil
	}
	parts := make([]string, 0, len(spec))
	for _, t := range spec {
		col, ok := rankColumns[t.Key]
		if !ok {
			return "", fmt.Errorf("%w: rank key %q", db.ErrUnsupportedPredicate, t.Key)
		}
		if t.Desc {
			col += " DESC"
		}
		parts = append(parts, col)
	}
	return strings.Join(parts, ", "), nil
}

func unsupported(p predicate.Predicate) error {
	if p.IsZero() {
		return fmt.Errorf("%w: unset predicate", db.ErrUnsupportedPredicate)
	}
	return fmt.Errorf("%w: %s", db.ErrUnsupportedPredicate, p)
}
