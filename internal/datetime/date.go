package datetime

import (
	"fmt"
	"time"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/civil"
)

// Date is a proleptic Gregorian calendar date between 0001-01-01 and 9999-12-31.
// The zero value is not a valid date; build values with NewDate or DateFromOrdinal.
type Date struct {
	year  int
	month int
	day   int
}

// NewDate validates and returns the date y-m-d.
func NewDate(y, m, d int) (Date, error) {
	if !civil.ValidYMD(y, m, d) {
		return Date{}, calerr.Range("date %04d-%02d-%02d is not a valid calendar date", y, m, d)
	}
	return Date{year: y, month: m, day: d}, nil
}

// MustDate is NewDate for literals known to be valid; it panics otherwise.
func MustDate(y, m, d int) Date {
	dt, err := NewDate(y, m, d)
	if err != nil {
		panic(err)
	}
	return dt
}

// DateFromOrdinal returns the date with the given ordinal (0001-01-01 is 1).
func DateFromOrdinal(n int64) (Date, error) {
	if n < 1 || n > civil.MaxOrdinal {
		return Date{}, calerr.Range("ordinal %d outside [1, %d]", n, civil.MaxOrdinal)
	}
	y, m, d := civil.OrdinalToYMD(n)
	return Date{year: y, month: m, day: d}, nil
}

func (d Date) Year() int  { return d.year }
func (d Date) Month() int { return d.month }
func (d Date) Day() int   { return d.day }

// IsZero reports whether d is the (invalid) zero value.
func (d Date) IsZero() bool { return d.year == 0 }

// Ordinal returns the day number of d, with 0001-01-01 as day 1.
func (d Date) Ordinal() int64 {
	return civil.YMDToOrdinal(d.year, d.month, d.day)
}

// Weekday returns the day of week of d.
func (d Date) Weekday() Weekday {
	return Weekday(civil.WeekdayOf(d.Ordinal()))
}

// DaysInMonth returns the length of d's month.
func (d Date) DaysInMonth() int {
	return civil.DaysInMonth(d.year, d.month)
}

// AddDays shifts d by n days.
func (d Date) AddDays(n int64) (Date, error) {
	if n == 0 {
		return d, nil
	}
	return DateFromOrdinal(d.Ordinal() + n)
}

// DaysSince returns the signed number of days from o to d.
func (d Date) DaysSince(o Date) int64 {
	return d.Ordinal() - o.Ordinal()
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(d.month, o.month)
	default:
		return cmpInt(d.day, o.day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, loc)
}

// DateOf extracts the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: int(m), day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// MarshalText renders the ISO date.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses an ISO date.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt[T int | int64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
