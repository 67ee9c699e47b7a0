package model

import "github.com/go-openapi/strfmt"

// Film is a catalogued film with its classification, genre tags and likes.
// Likes holds the ids of users who liked the film; a like is a boolean fact
// per user, never a count.
type Film struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ReleaseDate strfmt.Date `json:"releaseDate"`
	Duration    int         `json:"duration"`
	MPA         *Rating     `json:"mpa,omitempty"`
	Genres      []Genre     `json:"genres"`
	Likes       []int64     `json:"likes"`
}

// User is an account that can like films and hold friendship edges.
// Friends lists the ids this user has added; edges are directed, so a
// reciprocal edge exists only if the other user added one too.
type User struct {
	ID       int64       `json:"id"`
	Email    string      `json:"email"`
	Login    string      `json:"login"`
	Name     string      `json:"name"`
	Birthday strfmt.Date `json:"birthday"`
	Friends  []int64     `json:"friends"`
}

// Genre tags a film's type. Two genres are the same genre iff their ids
// match; the name is presentation data.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Rating is an MPA-style content classification (e.g. PG-13).
type Rating struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}
