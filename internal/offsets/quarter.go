package offsets

import (
	"github.com/guttosm/offsetcal/internal/civil"
	"github.com/guttosm/offsetcal/internal/datetime"
)

// Quarter anchors to the first or last (business) day of every third month,
// counted from startingMonth.
type Quarter struct {
	base
	startingMonth int
	opt           dayOpt
}

var quarterFamilies = map[dayOpt]struct{ name, code string }{
	dayStart:         {"QuarterBegin", "QS"},
	dayEnd:           {"QuarterEnd", "QE"},
	dayBusinessStart: {"BQuarterBegin", "BQS"},
	dayBusinessEnd:   {"BQuarterEnd", "BQE"},
}

// DefaultQuarterMonth is used when startingMonth is 0.
const DefaultQuarterMonth = 3

func newQuarter(n int64, startingMonth int, opt dayOpt, opts []Option) (Quarter, error) {
	if startingMonth == 0 {
		startingMonth = DefaultQuarterMonth
	}
	q := Quarter{base: newBase(n, opts), startingMonth: startingMonth, opt: opt}
	if err := validMonth(startingMonth, q.Name()); err != nil {
		return Quarter{}, err
	}
	return q, q.rejectOffset(q.Name())
}

func QuarterBegin(n int64, startingMonth int, opts ...Option) (Quarter, error) {
	return newQuarter(n, startingMonth, dayStart, opts)
}

func QuarterEnd(n int64, startingMonth int, opts ...Option) (Quarter, error) {
	return newQuarter(n, startingMonth, dayEnd, opts)
}

func BQuarterBegin(n int64, startingMonth int, opts ...Option) (Quarter, error) {
	return newQuarter(n, startingMonth, dayBusinessStart, opts)
}

func BQuarterEnd(n int64, startingMonth int, opts ...Option) (Quarter, error) {
	return newQuarter(n, startingMonth, dayBusinessEnd, opts)
}

func (q Quarter) StartingMonth() int { return q.startingMonth }
func (q Quarter) Name() string       { return quarterFamilies[q.opt].name }

func (q Quarter) Code() string {
	return q.code(quarterFamilies[q.opt].code + "-" + monthCodes[q.startingMonth-1])
}

func (q Quarter) Add(dt datetime.DateTime) (datetime.DateTime, error) {
	return q.apply(dt, func(wall datetime.DateTime) (datetime.DateTime, error) {
		d := wall.Date()
		since := d.Month()%3 - q.startingMonth%3
		qtrs := rollPeriod(d, q.n, since, q.opt)
		out, err := shiftMonth(d, periodMonths(qtrs, 3, -int64(since)), q.opt)
		if err != nil {
			return datetime.DateTime{}, err
		}
		return withDate(wall, out), nil
	})
}

func (q Quarter) IsOnOffset(dt datetime.DateTime) bool {
	wall, ok := q.wall(dt)
	if !ok {
		return false
	}
	d := wall.Date()
	return civil.FloorMod(int64(d.Month()-q.startingMonth), 3) == 0 && d.Day() == anchorOf(d, q.opt)
}

func (q Quarter) WithN(n int64) (Handler, error) { return q.rebase(q.withN(n)), nil }
func (q Quarter) rebase(b base) Handler          { q.base = b; return q }

// Year anchors to the first or last (business) day of month in every year.
type Year struct {
	base
	month int
	opt   dayOpt
}

var yearFamilies = map[dayOpt]struct {
	name, code   string
	defaultMonth int
}{
	dayStart:         {"YearBegin", "YS", 1},
	dayEnd:           {"YearEnd", "YE", 12},
	dayBusinessStart: {"BYearBegin", "BYS", 1},
	dayBusinessEnd:   {"BYearEnd", "BYE", 12},
}

func newYear(n int64, month int, opt dayOpt, opts []Option) (Year, error) {
	if month == 0 {
		month = yearFamilies[opt].defaultMonth
	}
	y := Year{base: newBase(n, opts), month: month, opt: opt}
	if err := validMonth(month, y.Name()); err != nil {
		return Year{}, err
	}
	return y, y.rejectOffset(y.Name())
}

// YearBegin anchors to the first day of month (0 means January).
func YearBegin(n int64, month int, opts ...Option) (Year, error) {
	return newYear(n, month, dayStart, opts)
}

// YearEnd anchors to the last day of month (0 means December).
func YearEnd(n int64, month int, opts ...Option) (Year, error) {
	return newYear(n, month, dayEnd, opts)
}

func BYearBegin(n int64, month int, opts ...Option) (Year, error) {
	return newYear(n, month, dayBusinessStart, opts)
}

func BYearEnd(n int64, month int, opts ...Option) (Year, error) {
	return newYear(n, month, dayBusinessEnd, opts)
}

func (y Year) AnchorMonth() int { return y.month }
func (y Year) Name() string     { return yearFamilies[y.opt].name }
func (y Year) Code() string {
	return y.code(yearFamilies[y.opt].code + "-" + monthCodes[y.month-1])
}

func (y Year) Add(dt datetime.DateTime) (datetime.DateTime, error) {
	return y.apply(dt, func(wall datetime.DateTime) (datetime.DateTime, error) {
		d := wall.Date()
		years := rollPeriod(d, y.n, d.Month()-y.month, y.opt)
		out, err := shiftMonth(d, periodMonths(years, 12, int64(y.month-d.Month())), y.opt)
		if err != nil {
			return datetime.DateTime{}, err
		}
		return withDate(wall, out), nil
	})
}

func (y Year) IsOnOffset(dt datetime.DateTime) bool {
	wall, ok := y.wall(dt)
	if !ok {
		return false
	}
	d := wall.Date()
	return d.Month() == y.month && d.Day() == anchorOf(d, y.opt)
}

func (y Year) WithN(n int64) (Handler, error) { return y.rebase(y.withN(n)), nil }
func (y Year) rebase(b base) Handler          { y.base = b; return y }
