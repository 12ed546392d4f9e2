package offsets

import (
	"fmt"
	"strings"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/civil"
	"github.com/guttosm/offsetcal/internal/datetime"
)

// NthWeekday constrains a RelativeDelta result to the Nth given weekday on or
// after (Nth > 0) or on or before (Nth < 0) the intermediate result. Nth 0 is
// treated as 1.
type NthWeekday struct {
	Day datetime.Weekday
	Nth int
}

// Delta holds the relative and absolute fields of a RelativeDelta offset.
// Relative fields add; absolute fields (pointers) replace.
type Delta struct {
	Years, Months, Weeks, Days            int64
	Hours, Minutes, Seconds, Microseconds int64
	Year, Month, Day                      *int
	Hour, Minute, Second, Microsecond     *int
	Weekday                               *NthWeekday
}

// Int is a helper for the absolute fields of Delta.
func Int(v int) *int { return &v }

func (d Delta) empty() bool {
	return d == Delta{}
}

// normalized carries overflowing relative fields into the next larger unit,
// keeping the sign of each field.
func (d Delta) normalized() Delta {
	carry := func(v *int64, next *int64, size int64) {
		if *v > size-1 || *v < -(size-1) {
			sign := int64(1)
			if *v < 0 {
				sign = -1
			}
			q, r := civil.DivMod(*v*sign, size)
			*v = r * sign
			*next += q * sign
		}
	}
	carry(&d.Microseconds, &d.Seconds, 1_000_000)
	carry(&d.Seconds, &d.Minutes, 60)
	carry(&d.Minutes, &d.Hours, 60)
	carry(&d.Hours, &d.Days, 24)
	carry(&d.Months, &d.Years, 12)
	return d
}

func (d Delta) scaled(k int64) Delta {
	out := d
	out.Years, out.Months = d.Years*k, d.Months*k
	out.Days = (d.Days + 7*d.Weeks) * k
	out.Weeks = 0
	out.Hours, out.Minutes, out.Seconds, out.Microseconds = d.Hours*k, d.Minutes*k, d.Seconds*k, d.Microseconds*k
	return out.normalized()
}

func (d Delta) validate() error {
	check := func(name string, v *int, lo, hi int) error {
		if v != nil && (*v < lo || *v > hi) {
			return calerr.Precondition("absolute %s %d outside [%d, %d]", name, *v, lo, hi)
		}
		return nil
	}
	for _, c := range []struct {
		name   string
		v      *int
		lo, hi int
	}{
		{"year", d.Year, civil.MinYear, civil.MaxYear},
		{"month", d.Month, 1, 12},
		{"day", d.Day, 1, 31},
		{"hour", d.Hour, 0, 23},
		{"minute", d.Minute, 0, 59},
		{"second", d.Second, 0, 59},
		{"microsecond", d.Microsecond, 0, 999_999},
	} {
		if err := check(c.name, c.v, c.lo, c.hi); err != nil {
			return err
		}
	}
	if d.Weekday != nil && !d.Weekday.Day.Valid() {
		return calerr.Precondition("invalid weekday %d", d.Weekday.Day)
	}
	return nil
}

// addTo applies an already scaled and normalized delta to a wall clock.
func (d Delta) addTo(wall datetime.DateTime) (datetime.DateTime, error) {
	date, clock := wall.Date(), wall.Clock()
	year := int64(date.Year())
	if d.Year != nil {
		year = int64(*d.Year)
	}
	year += d.Years
	month := int64(date.Month())
	if d.Month != nil {
		month = int64(*d.Month)
	}
	month += d.Months
	switch {
	case month > 12:
		year++
		month -= 12
	case month < 1:
		year--
		month += 12
	}
	if year < civil.MinYear || year > civil.MaxYear {
		return datetime.DateTime{}, calerr.Range("year %d outside [%d, %d]", year, civil.MinYear, civil.MaxYear)
	}
	day := date.Day()
	if d.Day != nil {
		day = *d.Day
	}
	day = min(day, civil.DaysInMonth(int(year), int(month)))
	nd, err := datetime.NewDate(int(year), int(month), day)
	if err != nil {
		return datetime.DateTime{}, err
	}

	h, mi, s, us := clock.Hour(), clock.Minute(), clock.Second(), clock.Microsecond()
	if d.Hour != nil {
		h = *d.Hour
	}
	if d.Minute != nil {
		mi = *d.Minute
	}
	if d.Second != nil {
		s = *d.Second
	}
	if d.Microsecond != nil {
		us = *d.Microsecond
	}
	nc, err := datetime.NewTime(h, mi, s, us)
	if err != nil {
		return datetime.DateTime{}, err
	}
	if nc, err = nc.WithNanosecond(clock.Nanosecond()); err != nil {
		return datetime.DateTime{}, err
	}

	step, err := datetime.Delta(d.Days, d.Hours*3600+d.Minutes*60+d.Seconds, d.Microseconds)
	if err != nil {
		return datetime.DateTime{}, err
	}
	res, err := datetime.NewDateTime(nd, nc).Add(step)
	if err != nil {
		return datetime.DateTime{}, err
	}

	if d.Weekday != nil {
		nth := d.Weekday.Nth
		if nth == 0 {
			nth = 1
		}
		cur, want := int64(res.Weekday()), int64(d.Weekday.Day)
		jump := int64(abs(nth)-1) * 7
		if nth > 0 {
			jump += civil.FloorMod(7-cur+want, 7)
		} else {
			jump = -(jump + civil.FloorMod(cur-want, 7))
		}
		return shiftDays(res, jump)
	}
	return res, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (d Delta) String() string {
	var parts []string
	add := func(name string, v int64) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", name, v))
		}
	}
	addAbs := func(name string, v *int) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s=%d", name, *v))
		}
	}
	add("years", d.Years)
	add("months", d.Months)
	add("weeks", d.Weeks)
	add("days", d.Days)
	add("hours", d.Hours)
	add("minutes", d.Minutes)
	add("seconds", d.Seconds)
	add("microseconds", d.Microseconds)
	addAbs("year", d.Year)
	addAbs("month", d.Month)
	addAbs("day", d.Day)
	addAbs("hour", d.Hour)
	addAbs("minute", d.Minute)
	addAbs("second", d.Second)
	addAbs("microsecond", d.Microsecond)
	if d.Weekday != nil {
		parts = append(parts, fmt.Sprintf("weekday=%s(%d)", d.Weekday.Day.Short(), d.Weekday.Nth))
	}
	return strings.Join(parts, ", ")
}

// RelativeDelta applies a calendar-aware component delta n times over. With an
// empty Delta it steps n calendar days. Month arithmetic clamps the day to the
// target month, so January 31 plus one month is the last day of February.
//
// Aware inputs are shifted on their wall clock and localized again, the empty
// Delta included: one day across a DST change keeps the clock time and spans
// 23 or 25 hours. Use a Day tick for fixed 24-hour steps.
type RelativeDelta struct {
	base
	delta Delta
}

func NewRelativeDelta(n int64, delta Delta, opts ...Option) (RelativeDelta, error) {
	if err := delta.validate(); err != nil {
		return RelativeDelta{}, err
	}
	r := RelativeDelta{base: newBase(n, opts), delta: delta}
	return r, r.rejectOffset("DateOffset")
}

func (r RelativeDelta) Delta() Delta   { return r.delta }
func (r RelativeDelta) Name() string   { return "DateOffset" }
func (r RelativeDelta) Code() string   { return r.code("DateOffset") }
func (r RelativeDelta) String() string { return fmt.Sprintf("<%d * DateOffset: %s>", r.n, r.delta) }

func (r RelativeDelta) Add(dt datetime.DateTime) (datetime.DateTime, error) {
	return r.apply(dt, func(wall datetime.DateTime) (datetime.DateTime, error) {
		if r.delta.empty() {
			return shiftDays(wall, r.n)
		}
		if err := r.checkScale(); err != nil {
			return datetime.DateTime{}, err
		}
		return r.delta.scaled(r.n).addTo(wall)
	})
}

// checkScale rejects multipliers that would overflow the relative fields.
func (r RelativeDelta) checkScale() error {
	const limit = int64(1) << 40
	if r.n > civil.MaxOrdinal || r.n < -civil.MaxOrdinal {
		return calerr.Range("DateOffset multiple %d exceeds the date range", r.n)
	}
	d := r.delta
	for _, v := range []int64{d.Years, d.Months, d.Weeks, d.Days, d.Hours, d.Minutes, d.Seconds, d.Microseconds} {
		if v > limit || v < -limit {
			return calerr.Range("DateOffset field %d too large", v)
		}
	}
	return nil
}

// IsOnOffset is true for every value: a relative delta has no anchor grid.
func (r RelativeDelta) IsOnOffset(dt datetime.DateTime) bool {
	_, ok := r.wall(dt)
	return ok
}

func (r RelativeDelta) WithN(n int64) (Handler, error) { return r.rebase(r.withN(n)), nil }
func (r RelativeDelta) rebase(b base) Handler          { r.base = b; return r }
