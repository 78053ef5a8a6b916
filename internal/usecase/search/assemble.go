package search

import "github.com/kailas-cloud/gigdex/internal/domain/profile"

// Assemble projects hydrated profiles into summaries in ids order.
// Ids with no hydrated row are dropped, as are rows that are no longer
// visible. The caller's total count is never adjusted.
func Assemble(ids []profile.ID, hydrated []profile.Profile) []profile.Summary {
	byID := make(map[profile.ID]*profile.Profile, len(hydrated))
	for i := range hydrated {
		byID[hydrated[i].ID] = &hydrated[i]
	}

	out := make([]profile.Summary, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || !p.Visible {
			continue
		}
		out = append(out, p.Summarize())
	}
	return out
}
