package memory

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/gigdex/internal/db"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
)

// eval reports whether e satisfies p.
func eval(p predicate.Predicate, e *entry) (bool, error) {
	switch p.Op() {
	case predicate.OpScalarContains:
		v, ok := e.scalars[p.ScalarField()]
		if !ok {
			return false, unsupported(p)
		}
		return strings.Contains(v, p.Text()), nil

	case predicate.OpArrayAny:
		vs, ok := e.arrays[p.ArrayField()]
		if !ok {
			return false, unsupported(p)
		}
		return anyContains(vs, p.Text()), nil

	case predicate.OpRelationExists:
		vs, ok := e.rels[p.Relation()]
		if !ok {
			return false, unsupported(p)
		}
		return anyContains(vs, p.Text()), nil

	case predicate.OpEquals:
		return evalEquals(p, e)

	case predicate.OpAnd:
		for _, c := range p.Children() {
			ok, err := eval(c, e)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil

	case predicate.OpOr:
		for _, c := range p.Children() {
			ok, err := eval(c, e)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
	return false, unsupported(p)
}

func evalEquals(p predicate.Predicate, e *entry) (bool, error) {
	switch p.ExactField() {
	case predicate.Visible:
		b, ok := p.Value().(bool)
		if !ok {
			return false, unsupported(p)
		}
		return e.p.Visible == b, nil
	case predicate.Kind:
		s, ok := p.Value().(string)
		if !ok {
			return false, unsupported(p)
		}
		return e.kind == s, nil
	case predicate.ExperienceLevel:
		s, ok := p.Value().(string)
		if !ok {
			return false, unsupported(p)
		}
		return e.level == s, nil
	}
	return false, unsupported(p)
}

func anyContains(vs []string, needle string) bool {
	for _, v := range vs {
		if strings.Contains(v, needle) {
			return true
		}
	}
	return false
}

func unsupported(p predicate.Predicate) error {
	if p.IsZero() {
		return fmt.Errorf("%w: unset predicate", db.ErrUnsupportedPredicate)
	}
	return fmt.Errorf("%w: %s", db.ErrUnsupportedPredicate, p)
}
