// Package predicate describes what a search must match, independent of the
// backend that evaluates it.
//
// A Predicate is an immutable tagged value. Backends switch on Op and read
// the accessors for that variant; they decide how to evaluate it (in-process
// filter or compiled SQL). Searchable fields and relations are closed
// enumerations with distinct Go types, so a variant can only be built over
// targets of the right shape.
package predicate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/gigdex/internal/domain/search/text"
)

// Op tags the predicate variant.
type Op uint8

// Predicate variants.
const (
	OpScalarContains Op = iota + 1
	OpArrayAny
	OpRelationExists
	OpEquals
	OpAnd
	OpOr
)

func (o Op) String() string {
	switch o {
	case OpScalarContains:
		return "scalar_contains"
	case OpArrayAny:
		return "array_any"
	case OpRelationExists:
		return "relation_exists"
	case OpEquals:
		return "equals"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "op(" + strconv.Itoa(int(o)) + ")"
	}
}

// ScalarField is a searchable single-valued text field.
type ScalarField string

// Searchable scalar fields.
const (
	StageName ScalarField = "stage_name"
	LegalName ScalarField = "legal_name"
	Biography ScalarField = "biography"
	City      ScalarField = "city"
	Province  ScalarField = "province"
)

// ScalarFields lists every searchable scalar field.
func ScalarFields() []ScalarField {
	return []ScalarField{StageName, LegalName, Biography, City, Province}
}

// ArrayField is a searchable multi-valued free-text field.
type ArrayField string

// Searchable array fields.
const (
	Services       ArrayField = "services"
	Influences     ArrayField = "influences"
	GearHighlights ArrayField = "gear_highlights"
)

// ArrayFields lists every searchable array field.
func ArrayFields() []ArrayField {
	return []ArrayField{Services, Influences, GearHighlights}
}

// Relation is a many-to-many relation matched by related entity name.
type Relation string

// Searchable relations.
const (
	Genres      Relation = "genres"
	Instruments Relation = "instruments"
	Skills      Relation = "skills"
)

// Relations lists every searchable relation.
func Relations() []Relation {
	return []Relation{Genres, Instruments, Skills}
}

// ExactField is a field used for structured equality filters.
type ExactField string

// Structured filter fields.
const (
	Visible         ExactField = "visible"
	Kind            ExactField = "kind"
	ExperienceLevel ExactField = "experience_level"
)

// Predicate is an immutable match condition.
type Predicate struct {
	op       Op
	target   string
	text     string
	value    any
	children []Predicate
}

// ScalarContains matches when the field contains text as a substring.
// Text is folded on construction.
func ScalarContains(f ScalarField, s string) Predicate {
	return Predicate{op: OpScalarContains, target: string(f), text: text.Fold(s)}
}

// ArrayAny matches when at least one element of the field contains text.
func ArrayAny(f ArrayField, s string) Predicate {
	return Predicate{op: OpArrayAny, target: string(f), text: text.Fold(s)}
}

// RelationExists matches when a related entity's name contains text.
func RelationExists(r Relation, s string) Predicate {
	return Predicate{op: OpRelationExists, target: string(r), text: text.Fold(s)}
}

// Equals matches a field exactly. String values are folded, so comparison is
// case and accent insensitive.
func Equals[V string | bool](f ExactField, v V) Predicate {
	var value any = v
	if s, ok := value.(string); ok {
		value = text.Fold(s)
	}
	return Predicate{op: OpEquals, target: string(f), value: value}
}

// And matches when every child matches. An empty And always matches.
func And(ps ...Predicate) Predicate {
	return Predicate{op: OpAnd, children: clone(ps)}
}

// Or matches when any child matches. An empty Or never matches.
func Or(ps ...Predicate) Predicate {
	return Predicate{op: OpOr, children: clone(ps)}
}

// Op returns the variant tag.
func (p Predicate) Op() Op { return p.op }

// ScalarField returns the target of a ScalarContains predicate.
func (p Predicate) ScalarField() ScalarField { return ScalarField(p.target) }

// ArrayField returns the target of an ArrayAny predicate.
func (p Predicate) ArrayField() ArrayField { return ArrayField(p.target) }

// Relation returns the target of a RelationExists predicate.
func (p Predicate) Relation() Relation { return Relation(p.target) }

// ExactField returns the target of an Equals predicate.
func (p Predicate) ExactField() ExactField { return ExactField(p.target) }

// Text returns the folded needle of a contains/any/exists predicate.
func (p Predicate) Text() string { return p.text }

// Value returns the Equals operand (string or bool).
func (p Predicate) Value() any { return p.value }

// Children returns a copy of the And/Or operands.
func (p Predicate) Children() []Predicate { return clone(p.children) }

// IsZero reports whether p was never constructed.
func (p Predicate) IsZero() bool { return p.op == 0 }

// String renders a compact debug form.
func (p Predicate) String() string {
	var b strings.Builder
	p.write(&b)
	return b.String()
}

func (p Predicate) write(b *strings.Builder) {
	switch p.op {
	case OpScalarContains, OpArrayAny, OpRelationExists:
		fmt.Fprintf(b, "%s(%s,%q)", p.op, p.target, p.text)
	case OpEquals:
		fmt.Fprintf(b, "%s(%s,%v)", p.op, p.target, p.value)
	case OpAnd, OpOr:
		b.WriteString(p.op.String())
		b.WriteByte('[')
		for i, c := range p.children {
			if i > 0 {
				b.WriteByte(' ')
			}
			c.write(b)
		}
		b.WriteByte(']')
	default:
		b.WriteString(p.op.String())
	}
}

func clone(ps []Predicate) []Predicate {
	if len(ps) == 0 {
		return nil
	}
	out := make([]Predicate, len(ps))
	copy(out, ps)
	return out
}
