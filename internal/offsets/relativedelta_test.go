package offsets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
)

func TestRelativeDelta(t *testing.T) {
	cases := []struct {
		name  string
		n     int64
		delta Delta
		in    string
		want  string
	}{
		{"month end clamps", 1, Delta{Months: 1}, "2008-01-31", "2008-02-29 00:00:00"},
		{"two months", 1, Delta{Months: 2}, "2008-01-31", "2008-03-31 00:00:00"},
		{"multiple applies once", 2, Delta{Months: 1}, "2008-01-31", "2008-03-31 00:00:00"},
		{"negative multiple", -1, Delta{Months: 1}, "2008-03-31", "2008-02-29 00:00:00"},
		{"leap year", 1, Delta{Years: 1}, "2008-02-29", "2009-02-28 00:00:00"},
		{"hours carry into days", 1, Delta{Hours: 25}, "2008-01-01", "2008-01-02 01:00:00"},
		{"negative hours carry", 1, Delta{Hours: -25}, "2008-01-02 02:00", "2008-01-01 01:00:00"},
		{"months carry into years", 1, Delta{Months: 14}, "2008-11-15", "2010-01-15 00:00:00"},
		{"weeks", 3, Delta{Weeks: 1}, "2008-01-01", "2008-01-22 00:00:00"},
		{"next monday", 1, Delta{Weekday: &NthWeekday{Day: datetime.Monday, Nth: 1}}, "2008-01-02", "2008-01-07 00:00:00"},
		{"monday on monday", 1, Delta{Weekday: &NthWeekday{Day: datetime.Monday, Nth: 1}}, "2008-01-07", "2008-01-07 00:00:00"},
		{"previous monday", 1, Delta{Weekday: &NthWeekday{Day: datetime.Monday, Nth: -1}}, "2008-01-02", "2007-12-31 00:00:00"},
		{"second friday", 1, Delta{Day: Int(1), Weekday: &NthWeekday{Day: datetime.Friday, Nth: 2}}, "2008-01-20", "2008-01-11 00:00:00"},
		{"absolute day clamps", 1, Delta{Day: Int(31)}, "2008-02-10", "2008-02-29 00:00:00"},
		{"absolute clock", 1, Delta{Hour: Int(16), Minute: Int(30)}, "2008-02-10 09:15", "2008-02-10 16:30:00"},
		{"empty steps days", 3, Delta{}, "2008-01-30 10:00", "2008-02-02 10:00:00"},
		{"empty negative", -1, Delta{}, "2008-03-01", "2008-02-29 00:00:00"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := NewRelativeDelta(c.n, c.delta)
			require.NoError(t, err)
			got, err := r.Add(ts(t, c.in))
			require.NoError(t, err)
			assert.Equal(t, c.want, got.String())
			assert.True(t, r.IsOnOffset(got))
		})
	}
}

func TestRelativeDeltaAwareKeepsWallClock(t *testing.T) {
	ny := newYork(t)
	r := must[RelativeDelta](t)(NewRelativeDelta(1, Delta{Days: 1}))

	got, err := r.Add(localized(t, "2011-01-01 09:00", ny))
	require.NoError(t, err)
	assert.Equal(t, "2011-01-02 09:00:00-05:00", got.String())

	got, err = r.Add(localized(t, "2011-03-12 09:00", ny))
	require.NoError(t, err)
	assert.Equal(t, "2011-03-13 09:00:00-04:00", got.String())
	assert.Same(t, ny, got.Location())
}

// An aware input gives the same wall clock as the naive input localized
// afterwards, in every zone and across DST changes.
func TestRelativeDeltaAwareMatchesNaive(t *testing.T) {
	zones := []string{"UTC", "America/New_York", "Europe/London", "Asia/Tokyo", "America/Sao_Paulo"}
	inputs := []string{
		"2011-01-01 09:00",
		"2011-02-19 09:00", // Sao Paulo leaves DST
		"2011-03-12 09:00", // New York enters DST
		"2011-03-26 09:00", // London enters DST
		"2011-10-15 09:00", // Sao Paulo enters DST
		"2011-10-29 09:00", // London leaves DST
	}
	deltas := []struct {
		name  string
		n     int64
		delta Delta
	}{
		{"one day", 1, Delta{Days: 1}},
		{"empty", 1, Delta{}},
		{"empty backwards", -1, Delta{}},
		{"month and hours", 1, Delta{Months: 1, Hours: 3}},
	}
	for _, zone := range zones {
		loc, err := time.LoadLocation(zone)
		require.NoError(t, err)
		for _, d := range deltas {
			t.Run(zone+"/"+d.name, func(t *testing.T) {
				r := must[RelativeDelta](t)(NewRelativeDelta(d.n, d.delta))
				for _, in := range inputs {
					naiveOut, err := r.Add(ts(t, in))
					require.NoError(t, err, in)
					want, err := naiveOut.Localize(loc, datetime.Policy{})
					require.NoError(t, err, in)

					got, err := r.Add(localized(t, in, loc))
					require.NoError(t, err, in)
					assert.Equal(t, want.String(), got.String(), in)
					assert.Equal(t, loc.String(), got.Location().String(), in)
				}
			})
		}
	}
}

// With no fields set the offset steps calendar days on the wall clock, so a
// day across a DST change is 23 or 25 hours of elapsed time.
func TestRelativeDeltaEmptyStepsWallClock(t *testing.T) {
	ny := newYork(t)
	r := must[RelativeDelta](t)(NewRelativeDelta(1, Delta{}))

	start := localized(t, "2011-03-12 09:00", ny)
	got, err := r.Add(start)
	require.NoError(t, err)
	assert.Equal(t, "2011-03-13 09:00:00-04:00", got.String())

	a, err := start.UnixNano()
	require.NoError(t, err)
	b, err := got.UnixNano()
	require.NoError(t, err)
	assert.Equal(t, 23*time.Hour, time.Duration(b-a))
}

func TestRelativeDeltaValidation(t *testing.T) {
	_, err := NewRelativeDelta(1, Delta{Month: Int(13)})
	assert.ErrorIs(t, err, calerr.ErrPrecondition)

	_, err = NewRelativeDelta(1, Delta{Weekday: &NthWeekday{Day: datetime.Weekday(9)}})
	assert.ErrorIs(t, err, calerr.ErrPrecondition)

	_, err = NewRelativeDelta(1, Delta{Days: 1}, WithOffset(datetime.MustDelta(1, 0, 0)))
	assert.ErrorIs(t, err, calerr.ErrPrecondition)

	r := must[RelativeDelta](t)(NewRelativeDelta(1, Delta{Years: 9000}))
	_, err = r.Add(ts(t, "2008-01-01"))
	assert.ErrorIs(t, err, calerr.ErrRange)
}

func TestRelativeDeltaString(t *testing.T) {
	r := must[RelativeDelta](t)(NewRelativeDelta(2, Delta{Months: 1, Day: Int(15)}))
	assert.Equal(t, "<2 * DateOffset: months=1, day=15>", r.String())
	assert.Equal(t, "2DateOffset", r.Code())
}

func TestRelativeDeltaNormalize(t *testing.T) {
	r := must[RelativeDelta](t)(NewRelativeDelta(1, Delta{Hours: 5}, WithNormalize()))
	got, err := r.Add(ts(t, "2008-01-01 21:00"))
	require.NoError(t, err)
	assert.Equal(t, "2008-01-02 00:00:00", got.String())
	assert.False(t, r.IsOnOffset(ts(t, "2008-01-01 21:00")))
	assert.True(t, r.IsOnOffset(got))
}
