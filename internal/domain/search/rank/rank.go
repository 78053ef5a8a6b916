// Package rank defines the result order of profile search.
package rank

import "github.com/kailas-cloud/gigdex/internal/domain/profile"

// Key is a sortable profile attribute.
type Key string

// Sort keys.
const (
	Completeness Key = "completeness"
	CreatedAt    Key = "created_at"
	ID           Key = "id"
)

// Term is one ordering key with its direction.
type Term struct {
	Key  Key
	Desc bool
}

// Spec is an ordered list of terms; earlier terms dominate.
type Spec []Term

// Default is completeness desc, then creation time desc, then id asc.
// The id term makes the order total.
var Default = Spec{
	{Key: Completeness, Desc: true},
	{Key: CreatedAt, Desc: true},
	{Key: ID},
}

// Compare orders a and b under the spec: negative when a ranks first.
func (s Spec) Compare(a, b *profile.Profile) int {
	for _, t := range s {
		c := compareKey(t.Key, a, b)
		if c == 0 {
			continue
		}
		if t.Desc {
			return -c
		}
		return c
	}
	return 0
}

func compareKey(k Key, a, b *profile.Profile) int {
	switch k {
	case Completeness:
		return cmpInt(a.Completeness, b.Completeness)
	case CreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case ID:
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
