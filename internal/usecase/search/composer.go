package search

import (
	"strings"

	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/gigdex/internal/domain/search/text"
)

// Filters are the structured search constraints.
type Filters struct {
	Kind            profile.Kind
	ExperienceLevel string
}

// Compose builds the match predicate for a search.
//
// Visibility and structured filters are always ANDed in. Each token then
// contributes one OR group spanning every scalar field, array field and
// relation, for the token text and its stem. Every token must match
// somewhere; a token need not match in any particular field.
func Compose(tokens []text.Token, f Filters) predicate.Predicate {
	clauses := make([]predicate.Predicate, 0, 3+len(tokens))
	clauses = append(clauses, predicate.Equals(predicate.Visible, true))

	if f.Kind != "" {
		clauses = append(clauses, predicate.Equals(predicate.Kind, string(f.Kind)))
	}
	if lvl := strings.TrimSpace(f.ExperienceLevel); lvl != "" {
		clauses = append(clauses, predicate.Equals(predicate.ExperienceLevel, lvl))
	}

	for _, t := range tokens {
		clauses = append(clauses, tokenGroup(t))
	}

	return predicate.And(clauses...)
}

func tokenGroup(t text.Token) predicate.Predicate {
	scalars := predicate.ScalarFields()
	arrays := predicate.ArrayFields()
	relations := predicate.Relations()
	variants := t.Variants()

	alts := make([]predicate.Predicate, 0, len(variants)*(len(scalars)+len(arrays)+len(relations)))
	for _, v := range variants {
		for _, f := range scalars {
			alts = append(alts, predicate.ScalarContains(f, v))
		}
		for _, f := range arrays {
			alts = append(alts, predicate.ArrayAny(f, v))
		}
		for _, r := range relations {
			alts = append(alts, predicate.RelationExists(r, v))
		}
	}
	return predicate.Or(alts...)
}
