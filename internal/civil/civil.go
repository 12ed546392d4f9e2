// Package civil holds the proleptic Gregorian calendar arithmetic everything else
// is built on: leap years, month lengths, and the ordinal day numbering where
// 0001-01-01 is day 1.
//
// All functions are pure. Division helpers follow floor semantics (the remainder
// takes the sign of the divisor), which is what calendar carry logic needs and is
// not what Go's / and % operators do for negative operands.
package civil

const (
	MinYear = 1
	MaxYear = 9999

	// MaxOrdinal is the ordinal of 9999-12-31.
	MaxOrdinal int64 = 3652059

	// UnixEpochOrdinal is the ordinal of 1970-01-01.
	UnixEpochOrdinal int64 = 719163

	daysPer400Years = 146097
	daysPer100Years = 36524
	daysPer4Years   = 1461
)

// daysBeforeMonth[m] counts days in a common year before month m begins.
var daysBeforeMonth = [14]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeap reports whether y is a leap year.
func IsLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// DaysInMonth returns the number of days in month m (1..12) of year y.
func DaysInMonth(y, m int) int {
	if m == 2 && IsLeap(y) {
		return 29
	}
	return daysInMonth[m]
}

// DaysBeforeYear counts the days from 0001-01-01 up to (not including) y-01-01.
// y must be >= 1, so the divisions below never see a negative operand.
func DaysBeforeYear(y int) int64 {
	p := int64(y - 1)
	return p*365 + p/4 - p/100 + p/400
}

// DaysBeforeMonth counts the days in year y before the first of month m.
func DaysBeforeMonth(y, m int) int {
	n := daysBeforeMonth[m]
	if m > 2 && IsLeap(y) {
		n++
	}
	return n
}

// ValidYMD reports whether (y, m, d) names a real date in the supported range.
func ValidYMD(y, m, d int) bool {
	if y < MinYear || y > MaxYear || m < 1 || m > 12 {
		return false
	}
	return d >= 1 && d <= DaysInMonth(y, m)
}

// YMDToOrdinal converts a valid date to its ordinal. The result for invalid
// input is meaningless; validate with ValidYMD first.
func YMDToOrdinal(y, m, d int) int64 {
	return DaysBeforeYear(y) + int64(DaysBeforeMonth(y, m)) + int64(d)
}

// OrdinalToYMD converts an ordinal in [1, MaxOrdinal] back to (y, m, d).
func OrdinalToYMD(n int64) (y, m, d int) {
	n--
	n400, n := DivMod(n, daysPer400Years)
	year := n400*400 + 1

	n100, n := DivMod(n, daysPer100Years)
	n4, n := DivMod(n, daysPer4Years)
	n1, n := DivMod(n, 365)

	year += n100*100 + n4*4 + n1
	if n1 == 4 || n100 == 4 {
		// last day of a 4- or 400-year cycle
		return int(year - 1), 12, 31
	}

	leap := n1 == 3 && (n4 != 24 || n100 == 3)
	month := int((n + 50) >> 5)
	preceding := daysBeforeMonth[month]
	if month > 2 && leap {
		preceding++
	}
	if int64(preceding) > n {
		month--
		preceding -= daysInMonth[month]
		if month == 2 && leap {
			preceding--
		}
	}
	return int(year), month, int(n) - preceding + 1
}

// WeekdayOf returns the weekday of an ordinal with Monday = 0 and Sunday = 6.
func WeekdayOf(ordinal int64) int {
	return int(FloorMod(ordinal+6, 7))
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod returns a - b*FloorDiv(a, b); the result has the sign of b.
func FloorMod(a, b int64) int64 {
	r := a % b
	if r != 0 && ((r < 0) != (b < 0)) {
		r += b
	}
	return r
}

// DivMod returns FloorDiv and FloorMod together.
func DivMod(a, b int64) (q, r int64) {
	return FloorDiv(a, b), FloorMod(a, b)
}

// EasterSunday returns month and day of Western Easter in year y
// (Meeus/Jones/Butcher algorithm).
func EasterSunday(year int) (month, day int) {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month = (h + l - 7*m + 114) / 31
	day = ((h + l - 7*m + 114) % 31) + 1
	return month, day
}
