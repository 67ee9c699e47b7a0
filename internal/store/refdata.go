package store

import "github.com/reelgraph/reelgraph/internal/model"

func strptr(s string) *string { return &s }

// DefaultRatings is the MPA classification table every backend seeds at
// bootstrap. Ids are fixed so film payloads can reference them directly.
func DefaultRatings() []*model.Rating {
	return []*model.Rating{
		{ID: 1, Name: "G", Description: strptr("no age restrictions")},
		{ID: 2, Name: "PG", Description: strptr("parental guidance suggested")},
		{ID: 3, Name: "PG-13", Description: strptr("not recommended under 13")},
		{ID: 4, Name: "R", Description: strptr("under 17 requires an adult")},
		{ID: 5, Name: "NC-17", Description: strptr("adults only")},
	}
}

// DefaultGenres is the genre reference table every backend seeds at bootstrap.
func DefaultGenres() []*model.Genre {
	return []*model.Genre{
		{ID: 1, Name: "Comedy"},
		{ID: 2, Name: "Drama"},
		{ID: 3, Name: "Cartoon"},
		{ID: 4, Name: "Thriller"},
		{ID: 5, Name: "Documentary"},
		{ID: 6, Name: "Action"},
	}
}
