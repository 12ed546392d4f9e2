package offsets

import (
	"github.com/guttosm/offsetcal/internal/busday"
	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/civil"
	"github.com/guttosm/offsetcal/internal/datetime"
)

// BusinessDay steps Monday-Friday business days without holidays, in closed form.
type BusinessDay struct {
	base
}

func NewBusinessDay(n int64, opts ...Option) (BusinessDay, error) {
	return BusinessDay{base: newBase(n, opts)}, nil
}

func (b BusinessDay) Name() string { return "BusinessDay" }
func (b BusinessDay) Code() string { return b.code("B") }

func (b BusinessDay) Add(dt datetime.DateTime) (datetime.DateTime, error) {
	return b.apply(dt, func(wall datetime.DateTime) (datetime.DateTime, error) {
		if b.n > civil.MaxOrdinal || b.n < -civil.MaxOrdinal {
			return datetime.DateTime{}, calerr.Range("business day offset %d exceeds the date range", b.n)
		}
		wd := int64(wall.Weekday())
		weeks := civil.FloorDiv(b.n, 5)
		res, err := shiftDays(wall, 7*weeks+b.adjustDays(wd, weeks))
		if err != nil {
			return datetime.DateTime{}, err
		}
		return b.addOffset(res)
	})
}

// adjustDays is the day shift left after whole weeks; weekend starts roll
// forward for n <= 0 and backward otherwise.
func (b BusinessDay) adjustDays(wd, weeks int64) int64 {
	n := b.n
	if n <= 0 && wd > 4 {
		n++
	}
	n -= 5 * weeks
	switch {
	case n == 0 && wd > 4:
		return 4 - wd
	case wd > 4:
		return (7 - wd) + (n - 1)
	case wd+n <= 4:
		return n
	default:
		return n + 2
	}
}

func (b BusinessDay) IsOnOffset(dt datetime.DateTime) bool {
	wall, ok := b.wall(dt)
	return ok && wall.Weekday() < datetime.Saturday
}

func (b BusinessDay) WithN(n int64) (Handler, error) { return b.rebase(b.withN(n)), nil }
func (b BusinessDay) rebase(nb base) Handler         { b.base = nb; return b }

// CustomBusinessDay steps business days of a week mask and holiday calendar.
type CustomBusinessDay struct {
	base
	cal *busday.Calendar
}

func pickCalendar(cal *busday.Calendar, b base) *busday.Calendar {
	switch {
	case cal != nil:
		return cal
	case b.cal != nil:
		return b.cal
	}
	return busday.Weekdays()
}

// NewCustomBusinessDay uses cal, the WithCalendar option, or a Monday-Friday
// calendar, in that order.
func NewCustomBusinessDay(n int64, cal *busday.Calendar, opts ...Option) (CustomBusinessDay, error) {
	b := newBase(n, opts)
	return CustomBusinessDay{base: b, cal: pickCalendar(cal, b)}, nil
}

func (c CustomBusinessDay) Name() string               { return "CustomBusinessDay" }
func (c CustomBusinessDay) Code() string               { return c.code("C") }
func (c CustomBusinessDay) Calendar() *busday.Calendar { return c.cal }

func (c CustomBusinessDay) Add(dt datetime.DateTime) (datetime.DateTime, error) {
	return c.apply(dt, func(wall datetime.DateTime) (datetime.DateTime, error) {
		roll := busday.Preceding
		if c.n <= 0 {
			roll = busday.Following
		}
		d, err := c.cal.Offset(wall.Date(), c.n, roll)
		if err != nil {
			return datetime.DateTime{}, err
		}
		return c.addOffset(withDate(wall, d))
	})
}

func (c CustomBusinessDay) IsOnOffset(dt datetime.DateTime) bool {
	wall, ok := c.wall(dt)
	return ok && c.cal.IsBusinessDay(wall.Date())
}

func (c CustomBusinessDay) WithN(n int64) (Handler, error) { return c.rebase(c.withN(n)), nil }
func (c CustomBusinessDay) rebase(b base) Handler          { c.base = b; return c }

// CustomBusinessMonth anchors to the first (begin) or last (end) business day
// of each month under a custom calendar.
type CustomBusinessMonth struct {
	base
	cal   *busday.Calendar
	begin bool
}

func newCBMonth(n int64, cal *busday.Calendar, begin bool, opts []Option) (CustomBusinessMonth, error) {
	b := newBase(n, opts)
	return CustomBusinessMonth{base: b, cal: pickCalendar(cal, b), begin: begin}, nil
}

func CBMonthBegin(n int64, cal *busday.Calendar, opts ...Option) (CustomBusinessMonth, error) {
	return newCBMonth(n, cal, true, opts)
}

func CBMonthEnd(n int64, cal *busday.Calendar, opts ...Option) (CustomBusinessMonth, error) {
	return newCBMonth(n, cal, false, opts)
}

func (c CustomBusinessMonth) Name() string {
	if c.begin {
		return "CustomBusinessMonthBegin"
	}
	return "CustomBusinessMonthEnd"
}

func (c CustomBusinessMonth) Code() string {
	if c.begin {
		return c.code("CBMS")
	}
	return c.code("CBME")
}

func (c CustomBusinessMonth) Calendar() *busday.Calendar { return c.cal }

func (c CustomBusinessMonth) rules() (dayOpt, busday.RollRule) {
	if c.begin {
		return dayStart, busday.Following
	}
	return dayEnd, busday.Preceding
}

// anchorIn returns the month boundary of d and the business day it rolls to.
func (c CustomBusinessMonth) anchorIn(d datetime.Date) (datetime.Date, datetime.Date, error) {
	opt, roll := c.rules()
	boundary, err := datetime.NewDate(d.Year(), d.Month(), anchorOf(d, opt))
	if err != nil {
		return datetime.Date{}, datetime.Date{}, err
	}
	rolled, err := c.cal.Roll(boundary, roll)
	return boundary, rolled, err
}

func (c CustomBusinessMonth) Add(dt datetime.DateTime) (datetime.DateTime, error) {
	return c.apply(dt, func(wall datetime.DateTime) (datetime.DateTime, error) {
		opt, roll := c.rules()
		boundary, compare, err := c.anchorIn(wall.Date())
		if err != nil {
			return datetime.DateTime{}, err
		}
		n := rollConvention(wall.Day(), c.n, compare.Day())
		target, err := shiftMonth(boundary, n, opt)
		if err != nil {
			return datetime.DateTime{}, err
		}
		out, err := c.cal.Roll(target, roll)
		if err != nil {
			return datetime.DateTime{}, err
		}
		return c.addOffset(withDate(wall, out))
	})
}

func (c CustomBusinessMonth) IsOnOffset(dt datetime.DateTime) bool {
	wall, ok := c.wall(dt)
	if !ok {
		return false
	}
	_, anchor, err := c.anchorIn(wall.Date())
	return err == nil && anchor == wall.Date()
}

func (c CustomBusinessMonth) WithN(n int64) (Handler, error) { return c.rebase(c.withN(n)), nil }
func (c CustomBusinessMonth) rebase(b base) Handler          { c.base = b; return c }
