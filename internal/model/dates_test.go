package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay_TruncatesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	d := strfmt.Date(time.Date(2016, time.November, 11, 23, 15, 0, 0, loc))
	got := Day(d)
	assert.Equal(t, time.Date(2016, time.November, 11, 0, 0, 0, 0, time.UTC), got)
}

func TestSameDay(t *testing.T) {
	a := strfmt.Date(time.Date(2016, time.November, 11, 1, 0, 0, 0, time.UTC))
	b := strfmt.Date(time.Date(2016, time.November, 11, 22, 0, 0, 0, time.UTC))
	c := strfmt.Date(time.Date(2016, time.November, 12, 0, 0, 0, 0, time.UTC))

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))
}

func TestFilmJSON_DateOnlyFormat(t *testing.T) {
	f := Film{
		ID:          1,
		Name:        "Arrival",
		ReleaseDate: strfmt.Date(time.Date(2016, time.November, 11, 0, 0, 0, 0, time.UTC)),
		Duration:    116,
	}
	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"releaseDate":"2016-11-11"`)

	var back Film
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, SameDay(f.ReleaseDate, back.ReleaseDate))
}
