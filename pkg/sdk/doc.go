// Package gigdex embeds the musician directory search engine in a Go program.
//
// The client owns a profile store (SQLite, PostgreSQL, MySQL or in-process
// memory), keeps it seeded with the profiles you upsert, and answers the same
// ranked, paginated searches as the HTTP API.
//
//	client, _ := gigdex.New(ctx,
//	    gigdex.WithSQLite("gigdex.db"),
//	    gigdex.WithRoles(map[string]string{"arpista": "arpa"}),
//	)
//	defer client.Close()
//
//	_ = client.Upsert(ctx, gigdex.Profile{
//	    ID: 1, Visible: true, Kind: gigdex.Musician, StageName: "Ana Folk",
//	    Genres: []string{"Folk"}, Instruments: []string{"Guitarra"},
//	})
//
//	page, _ := client.Search().Query("guitarrista folk").Kind(gigdex.Musician).Page(1).Do(ctx)
//	for _, s := range page.Results {
//	    fmt.Println(s.DisplayName, s.City)
//	}
//
// Queries are accent and case insensitive; every word must match somewhere in
// the profile, and performer nouns ("guitarrista") also match the instrument
// they play. Results are ordered by profile completeness, then newest first.
package gigdex
