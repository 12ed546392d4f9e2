package datetime

import (
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/offsetcal/internal/calerr"
)

// Weekday numbers days the way the week mask does: Monday = 0 .. Sunday = 6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Valid reports whether w is one of the seven named days.
func (w Weekday) Valid() bool { return w >= Monday && w <= Sunday }

func (w Weekday) String() string {
	if !w.Valid() {
		return "Weekday(" + strconv.Itoa(int(w)) + ")"
	}
	return weekdayNames[w]
}

// Short returns the upper-case three letter code used in frequency strings ("MON").
func (w Weekday) Short() string {
	if !w.Valid() {
		return ""
	}
	return strings.ToUpper(weekdayNames[w][:3])
}

// Std converts to the standard library numbering (Sunday = 0).
func (w Weekday) Std() time.Weekday {
	return time.Weekday((int(w) + 1) % 7)
}

// FromStd converts a standard library weekday.
func FromStd(w time.Weekday) Weekday {
	return Weekday((int(w) + 6) % 7)
}

// ParseWeekday accepts full names or three letter codes, case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	for i, name := range weekdayNames {
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return Weekday(i), nil
		}
	}
	return 0, calerr.Precondition("unknown weekday %q", s)
}
