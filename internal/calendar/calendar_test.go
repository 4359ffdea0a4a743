package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateGregorian(t *testing.T) {
	got, err := ParseDate("2026-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", FormatDate(got))
}

func TestParseDateJalali(t *testing.T) {
	// 1404/10/25 is 2026-01-15 Gregorian.
	got, err := ParseDate("1404/10/25")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", FormatDate(got))
}

func TestParseDateInvalid(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2026-13-45", "15.01.2026"} {
		_, err := ParseDate(s)
		assert.Error(t, err, s)
	}
}

func TestFormatJalaliRoundTrip(t *testing.T) {
	g, err := ParseDate("2026-01-15")
	require.NoError(t, err)
	assert.Equal(t, "1404/10/25", FormatJalali(g))
}

func TestDaysBetween(t *testing.T) {
	day := func(s string) time.Time {
		d, err := ParseDate(s)
		require.NoError(t, err)
		return d
	}

	assert.Equal(t, 3, DaysBetween(day("2026-01-15"), day("2026-01-18")))
	assert.Equal(t, 0, DaysBetween(day("2026-01-15"), day("2026-01-15")))
	assert.Equal(t, -2, DaysBetween(day("2026-01-15"), day("2026-01-13")))

	// Intraday times never change the whole-day count.
	late := day("2026-01-15").Add(23 * time.Hour)
	assert.Equal(t, 1, DaysBetween(late, day("2026-01-16")))
}

func TestNights(t *testing.T) {
	in, _ := ParseDate("2026-01-15")
	out, _ := ParseDate("2026-01-18")
	assert.Equal(t, 3, Nights(in, out))
}

func TestOverlaps(t *testing.T) {
	d := func(s string) time.Time {
		v, err := ParseDate(s)
		require.NoError(t, err)
		return v
	}

	cases := []struct {
		name                   string
		aIn, aOut, bIn, bOut   string
		want                   bool
	}{
		{"identical", "2026-01-10", "2026-01-12", "2026-01-10", "2026-01-12", true},
		{"contained", "2026-01-10", "2026-01-20", "2026-01-12", "2026-01-14", true},
		{"partial", "2026-01-10", "2026-01-15", "2026-01-14", "2026-01-20", true},
		{"back to back after", "2026-01-10", "2026-01-12", "2026-01-12", "2026-01-14", false},
		{"back to back before", "2026-01-12", "2026-01-14", "2026-01-10", "2026-01-12", false},
		{"disjoint", "2026-01-01", "2026-01-05", "2026-01-10", "2026-01-12", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(d(tc.aIn), d(tc.aOut), d(tc.bIn), d(tc.bOut)))
		})
	}
}
