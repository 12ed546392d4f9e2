package offsets

import (
	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/civil"
	"github.com/guttosm/offsetcal/internal/datetime"
)

// Easter anchors to Western Easter Sunday, stepping whole years.
//
// n=0 only rolls forward: a date up to this year's Easter lands on it, a later
// date lands on next year's Easter. It never rolls back to the previous one.
type Easter struct {
	base
}

func NewEaster(n int64, opts ...Option) (Easter, error) {
	e := Easter{base: newBase(n, opts)}
	return e, e.rejectOffset("Easter")
}

func (e Easter) Name() string { return "Easter" }
func (e Easter) Code() string { return e.code("Easter") }

func easterOf(year int64) (datetime.Date, error) {
	if year < civil.MinYear || year > civil.MaxYear {
		return datetime.Date{}, calerr.Range("year %d outside [%d, %d]", year, civil.MinYear, civil.MaxYear)
	}
	m, d := civil.EasterSunday(int(year))
	return datetime.NewDate(int(year), m, d)
}

func (e Easter) Add(dt datetime.DateTime) (datetime.DateTime, error) {
	return e.apply(dt, func(wall datetime.DateTime) (datetime.DateTime, error) {
		year := int64(wall.Year())
		current, err := easterOf(year)
		if err != nil {
			return datetime.DateTime{}, err
		}
		anchor := datetime.NewDateTime(current, datetime.Midnight)
		cmp, _ := wall.Compare(anchor)

		n := e.n
		switch {
		case n == 0:
			if wall.Date().After(current) {
				n = 1
			}
		case n > 0 && cmp < 0:
			n--
		case n < 0 && cmp > 0:
			n++
		}
		if n > civil.MaxYear || n < -civil.MaxYear {
			return datetime.DateTime{}, calerr.Range("Easter offset %d exceeds the date range", n)
		}
		target, err := easterOf(year + n)
		if err != nil {
			return datetime.DateTime{}, err
		}
		return withDate(wall, target), nil
	})
}

func (e Easter) IsOnOffset(dt datetime.DateTime) bool {
	wall, ok := e.wall(dt)
	if !ok {
		return false
	}
	current, err := easterOf(int64(wall.Year()))
	return err == nil && current == wall.Date()
}

func (e Easter) WithN(n int64) (Handler, error) { return e.rebase(e.withN(n)), nil }
func (e Easter) rebase(b base) Handler          { e.base = b; return e }
