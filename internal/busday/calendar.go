package busday

import (
	"github.com/guttosm/offsetcal/internal/datetime"
)

// Calendar is an immutable week mask plus normalized holiday list. It is safe
// for concurrent use.
type Calendar struct {
	mask     WeekMask
	holidays Holidays
	busdays  int
}

// NewCalendar sorts and normalizes holidays against mask. A mask with no
// enabled weekday fails with ErrPrecondition.
func NewCalendar(mask WeekMask, holidays []datetime.Date) (*Calendar, error) {
	bd, err := checkMask(mask)
	if err != nil {
		return nil, err
	}
	return &Calendar{
		mask:     mask,
		holidays: NormalizeHolidays(HolidayOrdinals(holidays), mask),
		busdays:  bd,
	}, nil
}

// Weekdays is a Monday-Friday calendar without holidays.
func Weekdays() *Calendar {
	return &Calendar{mask: DefaultWeekMask, busdays: 5}
}

func (c *Calendar) WeekMask() WeekMask { return c.mask }

// BusDaysInWeek is the number of enabled weekdays.
func (c *Calendar) BusDaysInWeek() int { return c.busdays }

// Holidays returns the normalized holiday dates.
func (c *Calendar) Holidays() []datetime.Date {
	out := make([]datetime.Date, 0, len(c.holidays))
	for _, ord := range c.holidays {
		d, err := datetime.DateFromOrdinal(ord)
		if err == nil {
			out = append(out, d)
		}
	}
	return out
}

// HolidayOrdinals exposes the normalized list for the package functions.
func (c *Calendar) HolidayOrdinals() Holidays { return c.holidays }

func (c *Calendar) IsBusinessDay(d datetime.Date) bool {
	return IsBusinessDay(d, c.mask, c.holidays)
}

func (c *Calendar) Roll(d datetime.Date, r RollRule) (datetime.Date, error) {
	out, _, err := Roll(d, r, c.mask, c.holidays)
	return out, err
}

func (c *Calendar) Offset(d datetime.Date, n int64, r RollRule) (datetime.Date, error) {
	return Offset(d, n, r, c.mask, c.holidays)
}

func (c *Calendar) Count(begin, end datetime.Date) (int64, error) {
	return Count(begin, end, c.mask, c.holidays)
}

// BusinessDays lists the business days in the closed range [from, to].
func (c *Calendar) BusinessDays(from, to datetime.Date) []datetime.Date {
	var out []datetime.Date
	for d := from; !d.After(to); {
		if c.IsBusinessDay(d) {
			out = append(out, d)
		}
		next, err := d.AddDays(1)
		if err != nil {
			break
		}
		d = next
	}
	return out
}
