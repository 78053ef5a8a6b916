package predicate

import (
	"testing"
)

func TestLeafConstructorsFoldText(t *testing.T) {
	tests := []struct {
		name   string
		p      Predicate
		op     Op
		target string
	}{
		{"scalar", ScalarContains(City, "Córdoba"), OpScalarContains, "city"},
		{"array", ArrayAny(Influences, "Córdoba"), OpArrayAny, "influences"},
		{"relation", RelationExists(Instruments, "Córdoba"), OpRelationExists, "instruments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.p.Op() != tt.op {
				t.Errorf("Op() = %v, want %v", tt.p.Op(), tt.op)
			}
			if tt.p.Text() != "cordoba" {
				t.Errorf("Text() = %q, want folded", tt.p.Text())
			}
			if tt.p.target != tt.target {
				t.Errorf("target = %q, want %q", tt.p.target, tt.target)
			}
		})
	}
}

func TestEquals(t *testing.T) {
	b := Equals(Visible, true)
	if b.Op() != OpEquals || b.ExactField() != Visible {
		t.Fatalf("unexpected predicate %v", b)
	}
	if v, ok := b.Value().(bool); !ok || !v {
		t.Errorf("Value() = %#v", b.Value())
	}

	s := Equals(ExperienceLevel, "Avanzádo")
	if v, ok := s.Value().(string); !ok || v != "avanzado" {
		t.Errorf("Value() = %#v, want folded string", s.Value())
	}
}

func TestAndOr_CopyChildren(t *testing.T) {
	children := []Predicate{ScalarContains(City, "a"), ScalarContains(City, "b")}
	and := And(children...)

	children[0] = ScalarContains(City, "mutated")
	if and.Children()[0].Text() != "a" {
		t.Error("And must not alias the caller's slice")
	}

	got := and.Children()
	got[1] = ScalarContains(City, "mutated")
	if and.Children()[1].Text() != "b" {
		t.Error("Children must return a copy")
	}
}

func TestEmptyGroups(t *testing.T) {
	if and := And(); and.Op() != OpAnd || len(and.Children()) != 0 {
		t.Errorf("And() = %v", and)
	}
	if or := Or(); or.Op() != OpOr || len(or.Children()) != 0 {
		t.Errorf("Or() = %v", or)
	}
}

func TestEnumerationsAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range ScalarFields() {
		seen[string(f)] = true
	}
	for _, f := range ArrayFields() {
		if seen[string(f)] {
			t.Errorf("duplicate target %q", f)
		}
		seen[string(f)] = true
	}
	for _, r := range Relations() {
		if seen[string(r)] {
			t.Errorf("duplicate target %q", r)
		}
		seen[string(r)] = true
	}
	if len(seen) != 11 {
		t.Errorf("expected 11 searchable targets, got %d", len(seen))
	}
}

func TestString(t *testing.T) {
	p := And(Equals(Visible, true), Or(ScalarContains(City, "Rosario"), RelationExists(Genres, "rock")))
	want := `and[equals(visible,true) or[scalar_contains(city,"rosario") relation_exists(genres,"rock")]]`
	if got := p.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestIsZero(t *testing.T) {
	var p Predicate
	if !p.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if And().IsZero() {
		t.Error("constructed predicate should not be zero")
	}
}
