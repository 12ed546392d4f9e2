package datetime

import (
	"fmt"
	"math"
	"time"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/civil"
)

// DateTime is a calendar date plus a clock reading, either naive (no zone) or
// aware. For aware values the UTC nanosecond count is authoritative and the
// date/clock fields are its projection into loc.
type DateTime struct {
	date  Date
	clock Time
	loc   *time.Location
	ns    int64
}

// NewDateTime joins a date and a clock into a naive value.
func NewDateTime(d Date, t Time) DateTime {
	return DateTime{date: d, clock: t.withTZ("")}
}

// Naive validates the components and returns a naive DateTime.
func Naive(y, mo, d, h, mi, s, us int) (DateTime, error) {
	date, err := NewDate(y, mo, d)
	if err != nil {
		return DateTime{}, err
	}
	clock, err := NewTime(h, mi, s, us)
	if err != nil {
		return DateTime{}, err
	}
	return NewDateTime(date, clock), nil
}

// MustNaive is Naive for literals; it panics on invalid input.
func MustNaive(y, mo, d, h, mi, s, us int) DateTime {
	dt, err := Naive(y, mo, d, h, mi, s, us)
	if err != nil {
		panic(err)
	}
	return dt
}

// FromUnixNanos returns the aware value for the instant ns, displayed in loc
// (UTC when loc is nil).
func FromUnixNanos(ns int64, loc *time.Location) DateTime {
	if loc == nil {
		loc = time.UTC
	}
	t := time.Unix(0, ns).In(loc)
	return DateTime{
		date:  DateOf(t),
		clock: clockOf(t).withTZ(loc.String()),
		loc:   loc,
		ns:    ns,
	}
}

var (
	minInstant = time.Unix(0, math.MinInt64)
	maxInstant = time.Unix(0, math.MaxInt64)
)

// FromTime converts an aware time.Time. Instants outside the int64 nanosecond
// range fail with ErrRange.
func FromTime(t time.Time) (DateTime, error) {
	if t.Before(minInstant) || t.After(maxInstant) {
		return DateTime{}, calerr.Range("instant %s outside the nanosecond timestamp range", t.Format(time.RFC3339))
	}
	return FromUnixNanos(t.UnixNano(), t.Location()), nil
}

func clockOf(t time.Time) Time {
	ns := t.Nanosecond()
	return Time{hour: t.Hour(), minute: t.Minute(), second: t.Second(), micro: ns / nanosPerMicro, nano: ns % nanosPerMicro}
}

func (dt DateTime) Date() Date               { return dt.date }
func (dt DateTime) Clock() Time              { return dt.clock }
func (dt DateTime) Location() *time.Location { return dt.loc }
func (dt DateTime) IsAware() bool            { return dt.loc != nil }
func (dt DateTime) IsZero() bool             { return dt.date.IsZero() }
func (dt DateTime) Year() int                { return dt.date.year }
func (dt DateTime) Month() int               { return dt.date.month }
func (dt DateTime) Day() int                 { return dt.date.day }
func (dt DateTime) Weekday() Weekday         { return dt.date.Weekday() }

// UnixNano returns the instant of an aware value. Naive values have no
// instant and fail with ErrSemantic.
func (dt DateTime) UnixNano() (int64, error) {
	if dt.loc == nil {
		return 0, calerr.Semantic("naive datetime %s has no instant", dt)
	}
	return dt.ns, nil
}

func checkSameClass(a, b DateTime, op string) error {
	if a.IsAware() != b.IsAware() {
		return calerr.Semantic("cannot %s naive and timezone-aware datetimes (%s, %s)", op, a, b)
	}
	return nil
}

// Compare orders two values of the same awareness class: aware values by
// instant, naive values by their components.
func (dt DateTime) Compare(o DateTime) (int, error) {
	if err := checkSameClass(dt, o, "compare"); err != nil {
		return 0, err
	}
	if dt.IsAware() {
		return cmpInt(dt.ns, o.ns), nil
	}
	if c := dt.date.Compare(o.date); c != 0 {
		return c, nil
	}
	return dt.clock.Compare(o.clock), nil
}

// Equal reports whether dt and o are the same instant (aware) or the same
// wall clock (naive). Values of different classes are never equal.
func (dt DateTime) Equal(o DateTime) bool {
	c, err := dt.Compare(o)
	return err == nil && c == 0
}

// Sub returns dt - o, truncated to the microsecond toward negative infinity.
func (dt DateTime) Sub(o DateTime) (TimeDelta, error) {
	if err := checkSameClass(dt, o, "subtract"); err != nil {
		return TimeDelta{}, err
	}
	if dt.IsAware() {
		s1, r1 := civil.DivMod(dt.ns, nanosPerSecond)
		s2, r2 := civil.DivMod(o.ns, nanosPerSecond)
		return Delta(0, s1-s2, civil.FloorDiv(r1-r2, nanosPerMicro))
	}
	days := dt.date.DaysSince(o.date)
	return Delta(days, 0, civil.FloorDiv(dt.clock.NanosOfDay()-o.clock.NanosOfDay(), nanosPerMicro))
}

// Add shifts dt by td: component arithmetic for naive values, instant
// arithmetic for aware ones.
func (dt DateTime) Add(td TimeDelta) (DateTime, error) {
	if dt.IsAware() {
		ns, err := td.Nanoseconds()
		if err != nil {
			return DateTime{}, err
		}
		return dt.AddNanos(ns)
	}
	return dt.addWall(td.days, td.seconds*nanosPerSecond+td.micros*nanosPerMicro)
}

// AddNanos shifts dt by a fixed number of nanoseconds.
func (dt DateTime) AddNanos(n int64) (DateTime, error) {
	if dt.IsAware() {
		sum := dt.ns + n
		if (n > 0 && sum < dt.ns) || (n < 0 && sum > dt.ns) {
			return DateTime{}, calerr.Range("%s shifted by %dns overflows the timestamp range", dt, n)
		}
		return FromUnixNanos(sum, dt.loc), nil
	}
	days, rem := civil.DivMod(n, nanosPerDay)
	return dt.addWall(days, rem)
}

func (dt DateTime) addWall(days, nanos int64) (DateTime, error) {
	carry, nod := civil.DivMod(dt.clock.NanosOfDay()+nanos, nanosPerDay)
	date, err := dt.date.AddDays(days + carry)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: date, clock: timeFromNanos(nod)}, nil
}

// WallClock drops the zone and keeps the local date and clock reading.
func (dt DateTime) WallClock() DateTime {
	return NewDateTime(dt.date, dt.clock)
}

// WithDate replaces the date, keeping the clock. Aware values are
// re-localized with the default policy.
func (dt DateTime) WithDate(d Date) (DateTime, error) {
	return dt.rewall(NewDateTime(d, dt.clock))
}

// WithClock replaces the clock reading, keeping the date.
func (dt DateTime) WithClock(t Time) (DateTime, error) {
	return dt.rewall(NewDateTime(dt.date, t))
}

// Normalize sets the clock to midnight.
func (dt DateTime) Normalize() (DateTime, error) {
	return dt.WithClock(Midnight)
}

func (dt DateTime) rewall(wall DateTime) (DateTime, error) {
	if !dt.IsAware() {
		return wall, nil
	}
	return wall.Localize(dt.loc, Policy{})
}

// Convert re-expresses an aware value in loc. Naive values fail with ErrSemantic.
func (dt DateTime) Convert(loc *time.Location) (DateTime, error) {
	if !dt.IsAware() {
		return DateTime{}, calerr.Semantic("cannot convert naive datetime %s; localize it first", dt)
	}
	return FromUnixNanos(dt.ns, loc), nil
}

// UTC is Convert(time.UTC).
func (dt DateTime) UTC() (DateTime, error) {
	return dt.Convert(time.UTC)
}

// StdTime returns the value as a time.Time. Naive values are placed in UTC.
func (dt DateTime) StdTime() time.Time {
	if dt.IsAware() {
		return time.Unix(0, dt.ns).In(dt.loc)
	}
	return time.Date(dt.date.year, time.Month(dt.date.month), dt.date.day,
		dt.clock.hour, dt.clock.minute, dt.clock.second, dt.clock.micro*nanosPerMicro+dt.clock.nano, time.UTC)
}

// wallSeconds returns the wall clock as whole seconds since 1970-01-01 00:00
// and the sub-second nanoseconds.
func (dt DateTime) wallSeconds() (int64, int64) {
	days := dt.date.Ordinal() - civil.UnixEpochOrdinal
	nod := dt.clock.NanosOfDay()
	return days*secondsPerDay + nod/nanosPerSecond, nod % nanosPerSecond
}

func (dt DateTime) String() string {
	s := dt.date.String() + " " + dt.clock.String()
	if dt.IsAware() {
		_, off := dt.StdTime().Zone()
		sign := '+'
		if off < 0 {
			sign, off = '-', -off
		}
		s += fmt.Sprintf("%c%02d:%02d", sign, off/3600, off%3600/60)
	}
	return s
}

// MarshalText renders the ISO form with a "T" separator.
func (dt DateTime) MarshalText() ([]byte, error) {
	s := dt.String()
	return []byte(s[:10] + "T" + s[11:]), nil
}

// UnmarshalText accepts any literal ParseDateTime does.
func (dt *DateTime) UnmarshalText(b []byte) error {
	parsed, err := ParseDateTime(string(b))
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}
