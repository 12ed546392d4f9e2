package offsets

import (
	"strconv"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/civil"
	"github.com/guttosm/offsetcal/internal/datetime"
)

// Month anchors to a fixed day of every month: the first, the last, the first
// weekday or the last weekday.
type Month struct {
	base
	opt dayOpt
}

var monthFamilies = map[dayOpt]struct{ name, code string }{
	dayStart:         {"MonthBegin", "MS"},
	dayEnd:           {"MonthEnd", "ME"},
	dayBusinessStart: {"BusinessMonthBegin", "BMS"},
	dayBusinessEnd:   {"BusinessMonthEnd", "BME"},
}

func newMonth(n int64, opt dayOpt, opts []Option) (Month, error) {
	m := Month{base: newBase(n, opts), opt: opt}
	return m, m.rejectOffset(m.Name())
}

func MonthBegin(n int64, opts ...Option) (Month, error)  { return newMonth(n, dayStart, opts) }
func MonthEnd(n int64, opts ...Option) (Month, error)    { return newMonth(n, dayEnd, opts) }
func BMonthBegin(n int64, opts ...Option) (Month, error) { return newMonth(n, dayBusinessStart, opts) }
func BMonthEnd(n int64, opts ...Option) (Month, error)   { return newMonth(n, dayBusinessEnd, opts) }

func (m Month) Name() string { return monthFamilies[m.opt].name }
func (m Month) Code() string { return m.code(monthFamilies[m.opt].code) }

func (m Month) Add(dt datetime.DateTime) (datetime.DateTime, error) {
	return m.apply(dt, func(wall datetime.DateTime) (datetime.DateTime, error) {
		d := wall.Date()
		n := rollConvention(d.Day(), m.n, anchorOf(d, m.opt))
		out, err := shiftMonth(d, n, m.opt)
		if err != nil {
			return datetime.DateTime{}, err
		}
		return withDate(wall, out), nil
	})
}

func (m Month) IsOnOffset(dt datetime.DateTime) bool {
	wall, ok := m.wall(dt)
	return ok && wall.Day() == anchorOf(wall.Date(), m.opt)
}

func (m Month) WithN(n int64) (Handler, error) { return m.rebase(m.withN(n)), nil }
func (m Month) rebase(b base) Handler          { m.base = b; return m }

// SemiMonth has two anchors per month: the 1st and DayOfMonth (begin), or
// DayOfMonth and the last day (end).
type SemiMonth struct {
	base
	dayOfMonth int
	begin      bool
}

// DefaultSemiMonthDay is the second anchor when none is given.
const DefaultSemiMonthDay = 15

func newSemiMonth(n int64, day int, begin bool, opts []Option) (SemiMonth, error) {
	if day == 0 {
		day = DefaultSemiMonthDay
	}
	lo := 1
	if begin {
		lo = 2
	}
	if day < lo || day > 27 {
		return SemiMonth{}, calerr.Precondition("day_of_month must be %d<=day_of_month<=27, got %d", lo, day)
	}
	s := SemiMonth{base: newBase(n, opts), dayOfMonth: day, begin: begin}
	return s, s.rejectOffset(s.Name())
}

// SemiMonthBegin anchors to the 1st and day (2..27, 0 means 15).
func SemiMonthBegin(n int64, day int, opts ...Option) (SemiMonth, error) {
	return newSemiMonth(n, day, true, opts)
}

// SemiMonthEnd anchors to day (1..27, 0 means 15) and the month end.
func SemiMonthEnd(n int64, day int, opts ...Option) (SemiMonth, error) {
	return newSemiMonth(n, day, false, opts)
}

func (s SemiMonth) DayOfMonth() int { return s.dayOfMonth }

func (s SemiMonth) Name() string {
	if s.begin {
		return "SemiMonthBegin"
	}
	return "SemiMonthEnd"
}

func (s SemiMonth) Code() string {
	prefix := "SME"
	if s.begin {
		prefix = "SMS"
	}
	return s.code(prefix + "-" + strconv.Itoa(s.dayOfMonth))
}

func (s SemiMonth) Add(dt datetime.DateTime) (datetime.DateTime, error) {
	return s.apply(dt, func(wall datetime.DateTime) (datetime.DateTime, error) {
		d := wall.Date()
		n := rollConvention(d.Day(), s.n, s.dayOfMonth)
		switch {
		case s.begin && s.n <= 0 && d.Day() == 1:
			n--
		case !s.begin && s.n > 0 && d.Day() == d.DaysInMonth():
			n++
		}

		half, odd := civil.DivMod(n, 2)
		var months int64
		toDay := s.dayOfMonth
		if s.begin {
			months = half + odd
			if odd == 1 {
				toDay = 1
			}
		} else {
			months = half
			if odd == 1 {
				toDay = 31
			}
		}
		out, err := shiftMonthToDay(d, months, toDay)
		if err != nil {
			return datetime.DateTime{}, err
		}
		return withDate(wall, out), nil
	})
}

func (s SemiMonth) IsOnOffset(dt datetime.DateTime) bool {
	wall, ok := s.wall(dt)
	if !ok {
		return false
	}
	day := wall.Day()
	if s.begin {
		return day == 1 || day == s.dayOfMonth
	}
	return day == s.dayOfMonth || day == wall.Date().DaysInMonth()
}

func (s SemiMonth) WithN(n int64) (Handler, error) { return s.rebase(s.withN(n)), nil }
func (s SemiMonth) rebase(b base) Handler          { s.base = b; return s }
