// Package columnar converts calendar values to and from Apache Arrow arrays
// and searches sorted timestamp columns.
//
// Timestamps are stored with nanosecond unit. Aware values carry their zone
// name in the type metadata and are stored as UTC instants; naive values have
// no zone and store their wall clock as if it were UTC. Arrays returned here
// must be released by the caller.
package columnar

import (
	"sort"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/civil"
	"github.com/guttosm/offsetcal/internal/datetime"
)

// Side selects the insertion point for equal elements.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// ParseSide reads "left" or "right". Empty means left.
func ParseSide(s string) (Side, error) {
	switch s {
	case "", "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, calerr.Precondition("side must be left or right, got %q", s)
}

// zoneOf returns the shared zone name of values, "" when they are naive.
func zoneOf(values []datetime.DateTime) (string, error) {
	if len(values) == 0 {
		return "", nil
	}
	first := values[0]
	for _, v := range values[1:] {
		if v.IsAware() != first.IsAware() {
			return "", calerr.Semantic("cannot mix naive and timezone-aware values in one column")
		}
		if v.IsAware() && v.Location().String() != first.Location().String() {
			return "", calerr.Precondition("column values in different timezones (%s, %s)", first.Location(), v.Location())
		}
	}
	if !first.IsAware() {
		return "", nil
	}
	return first.Location().String(), nil
}

// nanos is the stored representation of dt.
func nanos(dt datetime.DateTime) (int64, error) {
	if !dt.IsAware() {
		utc, err := dt.Localize(time.UTC, datetime.Policy{})
		if err != nil {
			return 0, err
		}
		dt = utc
	}
	return dt.UnixNano()
}

// TimestampArray builds a nanosecond timestamp array. Zero values become nulls.
func TimestampArray(mem memory.Allocator, values []datetime.DateTime) (*array.Timestamp, error) {
	zone, err := zoneOf(nonZero(values))
	if err != nil {
		return nil, err
	}
	b := array.NewTimestampBuilder(mem, &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: zone})
	defer b.Release()
	b.Reserve(len(values))
	for _, v := range values {
		if v.IsZero() {
			b.AppendNull()
			continue
		}
		ns, err := nanos(v)
		if err != nil {
			return nil, err
		}
		b.Append(arrow.Timestamp(ns))
	}
	return b.NewTimestampArray(), nil
}

func nonZero(values []datetime.DateTime) []datetime.DateTime {
	out := make([]datetime.DateTime, 0, len(values))
	for _, v := range values {
		if !v.IsZero() {
			out = append(out, v)
		}
	}
	return out
}

// Timestamps converts a timestamp array back to values. Nulls become zero values.
func Timestamps(arr *array.Timestamp) ([]datetime.DateTime, error) {
	typ, ok := arr.DataType().(*arrow.TimestampType)
	if !ok {
		return nil, calerr.Precondition("not a timestamp array: %s", arr.DataType())
	}
	toNanos, err := unitNanos(typ.Unit)
	if err != nil {
		return nil, err
	}
	var loc *time.Location
	if typ.TimeZone != "" {
		if loc, err = time.LoadLocation(typ.TimeZone); err != nil {
			return nil, calerr.Precondition("unknown timezone %q: %v", typ.TimeZone, err)
		}
	}
	out := make([]datetime.DateTime, arr.Len())
	for i := range out {
		if arr.IsNull(i) {
			continue
		}
		v := int64(arr.Value(i))
		ns := v * toNanos
		if toNanos != 1 && ns/toNanos != v {
			return nil, calerr.Range("timestamp %d overflows nanoseconds", v)
		}
		if loc == nil {
			out[i] = datetime.FromUnixNanos(ns, time.UTC).WallClock()
		} else {
			out[i] = datetime.FromUnixNanos(ns, loc)
		}
	}
	return out, nil
}

func unitNanos(u arrow.TimeUnit) (int64, error) {
	switch u {
	case arrow.Second:
		return 1_000_000_000, nil
	case arrow.Millisecond:
		return 1_000_000, nil
	case arrow.Microsecond:
		return 1_000, nil
	case arrow.Nanosecond:
		return 1, nil
	}
	return 0, calerr.Precondition("unsupported time unit %s", u)
}

// Date32Array builds a date32 array (days since 1970-01-01).
func Date32Array(mem memory.Allocator, dates []datetime.Date) *array.Date32 {
	b := array.NewDate32Builder(mem)
	defer b.Release()
	b.Reserve(len(dates))
	for _, d := range dates {
		if d.IsZero() {
			b.AppendNull()
			continue
		}
		b.Append(date32(d))
	}
	return b.NewDate32Array()
}

// Dates converts a date32 array back to dates. Nulls become zero dates.
func Dates(arr *array.Date32) ([]datetime.Date, error) {
	out := make([]datetime.Date, arr.Len())
	for i := range out {
		if arr.IsNull(i) {
			continue
		}
		d, err := datetime.DateFromOrdinal(int64(arr.Value(i)) + civil.UnixEpochOrdinal)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func date32(d datetime.Date) arrow.Date32 {
	return arrow.Date32(d.Ordinal() - civil.UnixEpochOrdinal)
}

// SearchSorted returns the index at which v would be inserted into the sorted
// timestamp array arr to keep it sorted. Nulls are not allowed.
func SearchSorted(arr *array.Timestamp, v datetime.DateTime, side Side) (int, error) {
	typ, ok := arr.DataType().(*arrow.TimestampType)
	if !ok || typ.Unit != arrow.Nanosecond {
		return 0, calerr.Precondition("searchsorted needs a nanosecond timestamp array")
	}
	if arr.NullN() > 0 {
		return 0, calerr.Precondition("searchsorted on a column with %d nulls", arr.NullN())
	}
	if (typ.TimeZone != "") != v.IsAware() {
		return 0, calerr.Semantic("cannot compare naive and timezone-aware values")
	}
	key, err := nanos(v)
	if err != nil {
		return 0, err
	}
	values := arr.TimestampValues()
	return search(len(values), func(i int) int64 { return int64(values[i]) }, key, side), nil
}

// SearchSortedDates is SearchSorted for date32 arrays.
func SearchSortedDates(arr *array.Date32, d datetime.Date, side Side) (int, error) {
	if arr.NullN() > 0 {
		return 0, calerr.Precondition("searchsorted on a column with %d nulls", arr.NullN())
	}
	values := arr.Date32Values()
	return search(len(values), func(i int) int64 { return int64(values[i]) }, int64(date32(d)), side), nil
}

func search(n int, at func(int) int64, key int64, side Side) int {
	if side == Right {
		return sort.Search(n, func(i int) bool { return at(i) > key })
	}
	return sort.Search(n, func(i int) bool { return at(i) >= key })
}
