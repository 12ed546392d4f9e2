package busday

import (
	"strings"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
)

// WeekMask flags which weekdays are business days, Monday first.
type WeekMask [7]bool

// DefaultWeekMask is Monday through Friday.
var DefaultWeekMask = WeekMask{true, true, true, true, true, false, false}

// ParseWeekMask reads either a seven character "1111100" string or a list of
// day abbreviations such as "Mon Tue Wed Thu Fri".
func ParseWeekMask(s string) (WeekMask, error) {
	var m WeekMask
	s = strings.TrimSpace(s)
	if len(s) == 7 && strings.Trim(s, "01") == "" {
		for i, c := range s {
			m[i] = c == '1'
		}
		return m, nil
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return m, calerr.Precondition("empty weekmask")
	}
	for _, f := range fields {
		if len(f) != 3 {
			return m, calerr.Precondition("invalid weekmask day %q", f)
		}
		w, err := datetime.ParseWeekday(f)
		if err != nil {
			return m, calerr.Precondition("invalid weekmask %q", s)
		}
		m[w] = true
	}
	return m, nil
}

// BusDays counts the enabled weekdays.
func (m WeekMask) BusDays() int {
	n := 0
	for _, on := range m {
		if on {
			n++
		}
	}
	return n
}

// Enabled reports whether w is a business weekday.
func (m WeekMask) Enabled(w datetime.Weekday) bool {
	return w.Valid() && m[w]
}

func (m WeekMask) String() string {
	var b strings.Builder
	for _, on := range m {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
