package columnar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
)

func checkedAllocator(t *testing.T) *memory.CheckedAllocator {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	t.Cleanup(func() { mem.AssertSize(t, 0) })
	return mem
}

func parseAll(t *testing.T, loc *time.Location, ss ...string) []datetime.DateTime {
	t.Helper()
	out := make([]datetime.DateTime, len(ss))
	for i, s := range ss {
		dt, err := datetime.ParseDateTime(s)
		require.NoError(t, err)
		if loc != nil {
			dt, err = dt.Localize(loc, datetime.Policy{})
			require.NoError(t, err)
		}
		out[i] = dt
	}
	return out
}

func render(values []datetime.DateTime) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if !v.IsZero() {
			out[i] = v.String()
		}
	}
	return out
}

func TestTimestampArrayNaive(t *testing.T) {
	mem := checkedAllocator(t)
	in := parseAll(t, nil, "2011-03-13 01:00", "2011-03-13 02:30", "1970-01-01")
	arr, err := TimestampArray(mem, in)
	require.NoError(t, err)
	defer arr.Release()

	typ := arr.DataType().(*arrow.TimestampType)
	assert.Equal(t, "", typ.TimeZone)
	assert.Equal(t, arrow.Nanosecond, typ.Unit)
	assert.Equal(t, arrow.Timestamp(0), arr.Value(2))

	back, err := Timestamps(arr)
	require.NoError(t, err)
	assert.Equal(t, render(in), render(back))
	assert.False(t, back[0].IsAware())
}

func TestTimestampArrayAware(t *testing.T) {
	mem := checkedAllocator(t)
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	in := parseAll(t, ny, "2011-03-13 01:00", "2011-03-13 03:00")
	in = append(in, datetime.DateTime{})

	arr, err := TimestampArray(mem, in)
	require.NoError(t, err)
	defer arr.Release()

	assert.Equal(t, "America/New_York", arr.DataType().(*arrow.TimestampType).TimeZone)
	assert.True(t, arr.IsNull(2))
	assert.Equal(t, int64(3600_000_000_000), int64(arr.Value(1)-arr.Value(0)))

	back, err := Timestamps(arr)
	require.NoError(t, err)
	assert.Equal(t, []string{"2011-03-13 01:00:00-05:00", "2011-03-13 03:00:00-04:00", ""}, render(back))
}

func TestTimestampArrayErrors(t *testing.T) {
	mem := checkedAllocator(t)
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	mixed := append(parseAll(t, nil, "2011-01-01"), parseAll(t, ny, "2011-01-02")...)
	_, err = TimestampArray(mem, mixed)
	assert.ErrorIs(t, err, calerr.ErrSemantic)

	zones := append(parseAll(t, time.UTC, "2011-01-01"), parseAll(t, ny, "2011-01-02")...)
	_, err = TimestampArray(mem, zones)
	assert.ErrorIs(t, err, calerr.ErrPrecondition)

	_, err = TimestampArray(mem, parseAll(t, nil, "2300-01-01"))
	assert.ErrorIs(t, err, calerr.ErrRange)
}

func TestDate32Array(t *testing.T) {
	mem := checkedAllocator(t)
	in := []datetime.Date{datetime.MustDate(1970, 1, 1), datetime.MustDate(2000, 1, 1), {}, datetime.MustDate(1969, 12, 31)}
	arr := Date32Array(mem, in)
	defer arr.Release()

	assert.Equal(t, arrow.Date32(0), arr.Value(0))
	assert.Equal(t, arrow.Date32(10957), arr.Value(1))
	assert.True(t, arr.IsNull(2))
	assert.Equal(t, arrow.Date32(-1), arr.Value(3))

	back, err := Dates(arr)
	require.NoError(t, err)
	assert.Equal(t, in, back)
}

func TestSearchSorted(t *testing.T) {
	mem := checkedAllocator(t)
	arr, err := TimestampArray(mem, parseAll(t, nil, "2011-01-01", "2011-01-02", "2011-01-02", "2011-01-03"))
	require.NoError(t, err)
	defer arr.Release()

	cases := []struct {
		v    string
		side Side
		want int
	}{
		{"2011-01-02", Left, 1},
		{"2011-01-02", Right, 3},
		{"2010-12-31", Left, 0},
		{"2011-01-04", Right, 4},
		{"2011-01-02 12:00", Left, 3},
	}
	for _, c := range cases {
		got, err := SearchSorted(arr, parseAll(t, nil, c.v)[0], c.side)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%s side %d", c.v, c.side)
	}

	_, err = SearchSorted(arr, parseAll(t, time.UTC, "2011-01-02")[0], Left)
	assert.ErrorIs(t, err, calerr.ErrSemantic)

	withNull, err := TimestampArray(mem, []datetime.DateTime{{}})
	require.NoError(t, err)
	defer withNull.Release()
	_, err = SearchSorted(withNull, parseAll(t, nil, "2011-01-02")[0], Left)
	assert.ErrorIs(t, err, calerr.ErrPrecondition)
}

func TestSearchSortedDates(t *testing.T) {
	mem := checkedAllocator(t)
	arr := Date32Array(mem, []datetime.Date{datetime.MustDate(2020, 1, 1), datetime.MustDate(2020, 1, 3)})
	defer arr.Release()

	got, err := SearchSortedDates(arr, datetime.MustDate(2020, 1, 2), Left)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	got, err = SearchSortedDates(arr, datetime.MustDate(2020, 1, 3), Right)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	side, err := ParseSide("right")
	require.NoError(t, err)
	assert.Equal(t, Right, side)
	assert.Equal(t, "right", side.String())
	assert.Equal(t, "left", Left.String())
	_, err = ParseSide("up")
	assert.ErrorIs(t, err, calerr.ErrPrecondition)
}
