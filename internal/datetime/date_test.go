package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/offsetcal/internal/calerr"
)

func TestNewDateValidation(t *testing.T) {
	_, err := NewDate(2007, 2, 29)
	require.ErrorIs(t, err, calerr.ErrRange)
	_, err = NewDate(0, 1, 1)
	require.ErrorIs(t, err, calerr.ErrRange)
	_, err = NewDate(2008, 2, 29)
	require.NoError(t, err)
}

func TestDateOrdinalAndWeekday(t *testing.T) {
	d := MustDate(2007, 12, 31)
	assert.Equal(t, int64(733041), d.Ordinal())
	assert.Equal(t, Monday, d.Weekday())
	assert.Equal(t, time.Monday, d.Weekday().Std())

	back, err := DateFromOrdinal(d.Ordinal())
	require.NoError(t, err)
	assert.Equal(t, d, back)

	_, err = DateFromOrdinal(0)
	require.ErrorIs(t, err, calerr.ErrRange)
}

func TestDateAddDays(t *testing.T) {
	next, err := MustDate(2008, 2, 28).AddDays(1)
	require.NoError(t, err)
	assert.Equal(t, MustDate(2008, 2, 29), next)

	prev, err := MustDate(2008, 1, 1).AddDays(-1)
	require.NoError(t, err)
	assert.Equal(t, MustDate(2007, 12, 31), prev)

	assert.Equal(t, int64(366), MustDate(2009, 1, 1).DaysSince(MustDate(2008, 1, 1)))
	assert.True(t, prev.Before(next))
	assert.True(t, next.After(prev))

	_, err = MustDate(1, 1, 1).AddDays(-1)
	require.ErrorIs(t, err, calerr.ErrRange)
}

func TestDateText(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalText([]byte("2011-01-04")))
	assert.Equal(t, MustDate(2011, 1, 4), d)
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2011-01-04", string(b))
	assert.Error(t, d.UnmarshalText([]byte("2011-1-4x")))
}

func TestWeekday(t *testing.T) {
	for _, in := range []string{"tue", "TUE", "Tuesday"} {
		w, err := ParseWeekday(in)
		require.NoError(t, err)
		assert.Equal(t, Tuesday, w)
	}
	_, err := ParseWeekday("tues")
	require.ErrorIs(t, err, calerr.ErrPrecondition)

	assert.Equal(t, "SUN", Sunday.Short())
	assert.Equal(t, Sunday, FromStd(time.Sunday))
	assert.Equal(t, "Weekday(9)", Weekday(9).String())
}

func TestTimeOrderingIgnoresZoneTag(t *testing.T) {
	a := MustTime(9, 30, 0, 0).withTZ("America/New_York")
	b := MustTime(9, 30, 0, 0)
	assert.Equal(t, 0, a.Compare(b))
	assert.Equal(t, -1, b.Compare(MustTime(9, 30, 0, 1)))

	_, err := NewTime(24, 0, 0, 0)
	require.ErrorIs(t, err, calerr.ErrRange)

	withNs, err := b.WithNanosecond(5)
	require.NoError(t, err)
	assert.Equal(t, "09:30:00.000000005", withNs.String())
}
