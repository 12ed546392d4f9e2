package offsets

import (
	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/civil"
	"github.com/guttosm/offsetcal/internal/datetime"
)

// AnyWeekday leaves a Week offset unanchored: it then steps 7n days.
const AnyWeekday datetime.Weekday = -1

// Week steps whole weeks, optionally anchored to a weekday.
type Week struct {
	base
	weekday datetime.Weekday
}

// NewWeek builds a Week offset. Pass AnyWeekday for an unanchored week.
func NewWeek(n int64, weekday datetime.Weekday, opts ...Option) (Week, error) {
	w := Week{base: newBase(n, opts), weekday: weekday}
	if weekday != AnyWeekday && !weekday.Valid() {
		return Week{}, calerr.Precondition("invalid weekday %d", weekday)
	}
	return w, w.rejectOffset("Week")
}

func (w Week) Name() string { return "Week" }

func (w Week) Code() string {
	if w.weekday == AnyWeekday {
		return w.code("W")
	}
	return w.code("W-" + w.weekday.Short())
}

// Weekday is the anchor, or AnyWeekday.
func (w Week) Weekday() datetime.Weekday { return w.weekday }

func (w Week) Add(dt datetime.DateTime) (datetime.DateTime, error) {
	return w.apply(dt, func(wall datetime.DateTime) (datetime.DateTime, error) {
		if w.weekday == AnyWeekday {
			return shiftDays(wall, 7*w.n)
		}
		k := w.n
		days := int64(0)
		if cur := wall.Weekday(); cur != w.weekday {
			days = civil.FloorMod(int64(w.weekday-cur), 7)
			if k > 0 {
				k--
			}
		}
		return shiftDays(wall, days+7*k)
	})
}

func (w Week) IsOnOffset(dt datetime.DateTime) bool {
	wall, ok := w.wall(dt)
	if !ok {
		return false
	}
	return w.weekday == AnyWeekday || wall.Weekday() == w.weekday
}

func (w Week) WithN(n int64) (Handler, error) { return w.rebase(w.withN(n)), nil }
func (w Week) rebase(b base) Handler          { w.base = b; return w }

func shiftDays(wall datetime.DateTime, days int64) (datetime.DateTime, error) {
	d, err := wall.Date().AddDays(days)
	if err != nil {
		return datetime.DateTime{}, err
	}
	return withDate(wall, d), nil
}

// WeekOfMonth anchors to the k-th given weekday of each month, k in 0..3.
type WeekOfMonth struct {
	base
	week    int
	weekday datetime.Weekday
}

func NewWeekOfMonth(n int64, week int, weekday datetime.Weekday, opts ...Option) (WeekOfMonth, error) {
	if week < 0 || week > 3 {
		return WeekOfMonth{}, calerr.Precondition("week must be in 0..3, got %d", week)
	}
	if !weekday.Valid() {
		return WeekOfMonth{}, calerr.Precondition("invalid weekday %d", weekday)
	}
	w := WeekOfMonth{base: newBase(n, opts), week: week, weekday: weekday}
	return w, w.rejectOffset("WeekOfMonth")
}

func (w WeekOfMonth) Name() string { return "WeekOfMonth" }

func (w WeekOfMonth) Code() string {
	return w.code("WOM-" + string(rune('1'+w.week)) + w.weekday.Short())
}

func (w WeekOfMonth) dayIn(y, m int) int {
	first := datetime.Weekday(civil.WeekdayOf(civil.YMDToOrdinal(y, m, 1)))
	return 1 + int(civil.FloorMod(int64(w.weekday-first), 7)) + w.week*7
}

func (w WeekOfMonth) Add(dt datetime.DateTime) (datetime.DateTime, error) {
	return w.apply(dt, func(wall datetime.DateTime) (datetime.DateTime, error) {
		return monthWeekdayStep(wall, w.n, w.dayIn)
	})
}

func (w WeekOfMonth) IsOnOffset(dt datetime.DateTime) bool {
	wall, ok := w.wall(dt)
	return ok && wall.Day() == w.dayIn(wall.Year(), wall.Month())
}

func (w WeekOfMonth) WithN(n int64) (Handler, error) { return w.rebase(w.withN(n)), nil }
func (w WeekOfMonth) rebase(b base) Handler          { w.base = b; return w }

// LastWeekOfMonth anchors to the last given weekday of each month.
//
// n=0 is accepted rather than rejected: it rolls a date onto this month's
// anchor, or forward onto next month's once the anchor has passed.
type LastWeekOfMonth struct {
	base
	weekday datetime.Weekday
}

func NewLastWeekOfMonth(n int64, weekday datetime.Weekday, opts ...Option) (LastWeekOfMonth, error) {
	if !weekday.Valid() {
		return LastWeekOfMonth{}, calerr.Precondition("invalid weekday %d", weekday)
	}
	w := LastWeekOfMonth{base: newBase(n, opts), weekday: weekday}
	return w, w.rejectOffset("LastWeekOfMonth")
}

func (w LastWeekOfMonth) Name() string { return "LastWeekOfMonth" }
func (w LastWeekOfMonth) Code() string { return w.code("LWOM-" + w.weekday.Short()) }

func (w LastWeekOfMonth) dayIn(y, m int) int {
	dim := civil.DaysInMonth(y, m)
	last := datetime.Weekday(civil.WeekdayOf(civil.YMDToOrdinal(y, m, dim)))
	return dim - int(civil.FloorMod(int64(last-w.weekday), 7))
}

func (w LastWeekOfMonth) Add(dt datetime.DateTime) (datetime.DateTime, error) {
	return w.apply(dt, func(wall datetime.DateTime) (datetime.DateTime, error) {
		return monthWeekdayStep(wall, w.n, w.dayIn)
	})
}

func (w LastWeekOfMonth) IsOnOffset(dt datetime.DateTime) bool {
	wall, ok := w.wall(dt)
	return ok && wall.Day() == w.dayIn(wall.Year(), wall.Month())
}

func (w LastWeekOfMonth) WithN(n int64) (Handler, error) { return w.rebase(w.withN(n)), nil }
func (w LastWeekOfMonth) rebase(b base) Handler          { w.base = b; return w }

// monthWeekdayStep rolls against this month's anchor, then jumps whole months
// and lands on the anchor of the target month.
func monthWeekdayStep(wall datetime.DateTime, n int64, dayIn func(y, m int) int) (datetime.DateTime, error) {
	d := wall.Date()
	months := rollConvention(d.Day(), n, dayIn(d.Year(), d.Month()))
	y, m, err := addMonths(d, months)
	if err != nil {
		return datetime.DateTime{}, err
	}
	out, err := datetime.NewDate(y, m, dayIn(y, m))
	if err != nil {
		return datetime.DateTime{}, err
	}
	return withDate(wall, out), nil
}
