package offsets

import (
	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/civil"
	"github.com/guttosm/offsetcal/internal/datetime"
)

// dayOpt selects which day of a month a family anchors to.
type dayOpt int

const (
	dayStart dayOpt = iota
	dayEnd
	dayBusinessStart
	dayBusinessEnd
)

const maxMonthShift = 12 * (civil.MaxYear + 1)

// anchorDay returns the anchor day of y-m for opt.
func anchorDay(y, m int, opt dayOpt) int {
	switch opt {
	case dayEnd:
		return civil.DaysInMonth(y, m)
	case dayBusinessStart:
		switch civil.WeekdayOf(civil.YMDToOrdinal(y, m, 1)) {
		case 5:
			return 3
		case 6:
			return 2
		}
		return 1
	case dayBusinessEnd:
		dim := civil.DaysInMonth(y, m)
		switch civil.WeekdayOf(civil.YMDToOrdinal(y, m, dim)) {
		case 5:
			return dim - 1
		case 6:
			return dim - 2
		}
		return dim
	default:
		return 1
	}
}

func anchorOf(d datetime.Date, opt dayOpt) int {
	return anchorDay(d.Year(), d.Month(), opt)
}

// addMonths moves the year/month pair of d by months with carry.
func addMonths(d datetime.Date, months int64) (int, int, error) {
	if months > maxMonthShift || months < -maxMonthShift {
		return 0, 0, calerr.Range("shift of %d months exceeds the date range", months)
	}
	total := int64(d.Year())*12 + int64(d.Month()-1) + months
	y, m := civil.DivMod(total, 12)
	if y < civil.MinYear || y > civil.MaxYear {
		return 0, 0, calerr.Range("year %d outside [%d, %d]", y, civil.MinYear, civil.MaxYear)
	}
	return int(y), int(m) + 1, nil
}

// shiftMonth moves d by months and places it on the anchor day given by opt.
func shiftMonth(d datetime.Date, months int64, opt dayOpt) (datetime.Date, error) {
	y, m, err := addMonths(d, months)
	if err != nil {
		return datetime.Date{}, err
	}
	return datetime.NewDate(y, m, anchorDay(y, m, opt))
}

// shiftMonthToDay moves d by months and clamps day to the target month.
func shiftMonthToDay(d datetime.Date, months int64, day int) (datetime.Date, error) {
	y, m, err := addMonths(d, months)
	if err != nil {
		return datetime.Date{}, err
	}
	return datetime.NewDate(y, m, min(day, civil.DaysInMonth(y, m)))
}

// rollConvention consumes one period for the roll when day lies before the
// anchor and n is positive, and adds one when day lies after it and n is not.
func rollConvention(day int, n int64, compare int) int64 {
	switch {
	case n > 0 && day < compare:
		return n - 1
	case n <= 0 && day > compare:
		return n + 1
	}
	return n
}

// rollPeriod is rollConvention for multi-month periods: monthsSince is the
// signed distance from the period's anchor month.
func rollPeriod(d datetime.Date, n int64, monthsSince int, opt dayOpt) int64 {
	anchor := anchorOf(d, opt)
	if n > 0 {
		if monthsSince < 0 || (monthsSince == 0 && d.Day() < anchor) {
			return n - 1
		}
		return n
	}
	if monthsSince > 0 || (monthsSince == 0 && d.Day() > anchor) {
		return n + 1
	}
	return n
}

var monthCodes = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

func validMonth(m int, family string) error {
	if m < 1 || m > 12 {
		return calerr.Precondition("%s month %d outside [1, 12]", family, m)
	}
	return nil
}

// periodMonths converts whole periods of size months to a month shift. Values
// too large to be valid come back out of range for shiftMonth to reject.
func periodMonths(periods, size, adjust int64) int64 {
	if periods > maxMonthShift || periods < -maxMonthShift {
		return periods
	}
	return periods*size + adjust
}
