package offsets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
)

func TestWeek(t *testing.T) {
	w := must[Week](t)
	assertOffsets(t, w(NewWeek(1, datetime.Monday)), []offsetCase{
		{"2007-12-31", "2008-01-07"},
		{"2008-01-04", "2008-01-07"},
		{"2008-01-05", "2008-01-07"},
		{"2008-01-06", "2008-01-07"},
		{"2008-01-07", "2008-01-14"},
	})
	assertOffsets(t, w(NewWeek(0, datetime.Monday)), []offsetCase{
		{"2007-12-31", "2007-12-31"},
		{"2008-01-04", "2008-01-07"},
		{"2008-01-07", "2008-01-07"},
	})
	assertOffsets(t, w(NewWeek(-2, datetime.Tuesday)), []offsetCase{
		{"2010-04-06", "2010-03-23"},
		{"2010-04-08", "2010-03-30"},
		{"2010-04-05", "2010-03-23"},
	})
	assertOffsets(t, w(NewWeek(1, AnyWeekday)), []offsetCase{
		{"2008-01-01", "2008-01-08"},
		{"2008-01-05", "2008-01-12"},
	})
	assertOffsets(t, w(NewWeek(-1, AnyWeekday)), []offsetCase{
		{"2008-01-08", "2008-01-01"},
	})

	_, err := NewWeek(1, datetime.Weekday(7))
	require.ErrorIs(t, err, calerr.ErrPrecondition)
	assert.Equal(t, "W-MON", w(NewWeek(1, datetime.Monday)).Code())
	assert.Equal(t, "3W", w(NewWeek(3, AnyWeekday)).Code())
}

func TestWeekOfMonth(t *testing.T) {
	cases := []struct {
		n       int64
		week    int
		weekday datetime.Weekday
		in      string
		want    string
	}{
		{-2, 2, datetime.Tuesday, "2011-01-04", "2010-11-16"},
		{-2, 2, datetime.Tuesday, "2011-01-25", "2010-12-21"},
		{1, 2, datetime.Tuesday, "2011-01-04", "2011-01-18"},
		{1, 2, datetime.Tuesday, "2011-01-18", "2011-02-15"},
		{0, 2, datetime.Tuesday, "2011-01-04", "2011-01-18"},
		{0, 2, datetime.Tuesday, "2011-01-18", "2011-01-18"},
		{0, 2, datetime.Tuesday, "2011-01-25", "2011-02-15"},
		{1, 0, datetime.Monday, "2011-01-01", "2011-01-03"},
		{-1, 3, datetime.Friday, "2011-02-01", "2011-01-28"},
	}
	for _, c := range cases {
		h, err := NewWeekOfMonth(c.n, c.week, c.weekday)
		require.NoError(t, err)
		assertOffsets(t, h, []offsetCase{{c.in, c.want}})
	}

	_, err := NewWeekOfMonth(1, 4, datetime.Monday)
	require.ErrorIs(t, err, calerr.ErrPrecondition)

	h := must[WeekOfMonth](t)(NewWeekOfMonth(1, 2, datetime.Tuesday))
	assert.Equal(t, "WOM-3TUE", h.Code())
	assert.True(t, h.IsOnOffset(ts(t, "2011-01-18")))
	assert.False(t, h.IsOnOffset(ts(t, "2011-01-11")))
}

func TestLastWeekOfMonth(t *testing.T) {
	l := must[LastWeekOfMonth](t)
	assertOffsets(t, l(NewLastWeekOfMonth(1, datetime.Saturday)), []offsetCase{
		{"2013-01-26", "2013-02-23"},
		{"2013-01-25", "2013-01-26"},
		{"2013-01-31", "2013-02-23"},
	})
	assertOffsets(t, l(NewLastWeekOfMonth(-1, datetime.Saturday)), []offsetCase{
		{"2013-02-23", "2013-01-26"},
		{"2013-02-24", "2013-02-23"},
	})
	assertOffsets(t, l(NewLastWeekOfMonth(0, datetime.Saturday)), []offsetCase{
		{"2013-01-25", "2013-01-26"},
		{"2013-01-26", "2013-01-26"},
		{"2013-01-27", "2013-02-23"},
	})
	assert.Equal(t, "LWOM-SAT", l(NewLastWeekOfMonth(1, datetime.Saturday)).Code())
}
