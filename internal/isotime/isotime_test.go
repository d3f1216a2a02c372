package isotime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PartialDates(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2021", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2021-07", time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"2021-07-04", time.Date(2021, 7, 4, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err, c.in)
		assert.True(t, got.Equal(c.want), "%s: got %v", c.in, got)
	}
}

func TestParse_TimeForms(t *testing.T) {
	want := time.Date(2021, 7, 4, 10, 30, 0, 0, time.UTC)
	for _, in := range []string{
		"2021-07-04T10:30",
		"2021-07-04 10:30",
		"2021-07-04T10:30:00",
		"2021-07-04t10:30:00Z",
		"2021-07-04T10:30:00+00:00",
	} {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(want), "%s: got %v", in, got)
	}
}

func TestParse_FractionalSeconds(t *testing.T) {
	// short fractions are right-padded, long ones truncated, both to
	// microsecond precision
	cases := []struct {
		in   string
		nsec int
	}{
		{"2021-07-04T10:30:00.5", 500000000},
		{"2021-07-04T10:30:00.000001", 1000},
		{"2021-07-04T10:30:00.1234567899", 123456000},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.nsec, got.Nanosecond(), c.in)
	}
}

func TestParse_Offsets(t *testing.T) {
	want := time.Date(2021, 7, 4, 8, 30, 0, 0, time.UTC)
	for _, in := range []string{
		"2021-07-04T10:30:00+02:00",
		"2021-07-04T10:30:00+0200",
		"2021-07-04T12:30:00+04",
		"2021-07-04T06:30:00-02:00",
	} {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(want), "%s: got %v", in, got)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, in := range []string{
		"",
		"not-a-date",
		"21-07-04",
		"2021-13",
		"2021-00-10",
		"2021-02-30",
		"2021-07-04T25:00",
		"2021-07-04T10:61",
		"2021-07-04T10:30:00.abc",
		"2021-07-04T10:30:00+25:00",
		"2021-07-04T10:30.5", // fraction without seconds
	} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrFormat, in)
	}
}

func TestFormat_Canonical(t *testing.T) {
	loc := time.FixedZone("", 2*3600)
	assert.Equal(t, "2021-07-04T10:30:00+02:00",
		Format(time.Date(2021, 7, 4, 10, 30, 0, 0, loc)))
	assert.Equal(t, "2021-07-04T10:30:00.5Z",
		Format(time.Date(2021, 7, 4, 10, 30, 0, 500000000, time.UTC)))
}
