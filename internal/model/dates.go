package model

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// EarliestReleaseDate is the first permissible film release date
// (the date of the first public film screening).
var EarliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// Day truncates a date to midnight UTC so date-only values compare cleanly.
func Day(d strfmt.Date) time.Time {
	t := time.Time(d)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current date at midnight UTC.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two dates fall on the same calendar day.
func SameDay(a, b strfmt.Date) bool { return Day(a).Equal(Day(b)) }
