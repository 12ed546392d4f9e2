// Package holidays provides named holiday sets used to build business-day
// calendars: rule-based sets on rickar/cal (US, NYSE, B3, HKEX) and static lists
// loaded from storage.
package holidays

import (
	"sort"
	"strings"
	"time"

	"github.com/rickar/cal/v2"

	"github.com/guttosm/offsetcal/internal/busday"
	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
)

// Source yields the holidays of a named calendar.
type Source interface {
	Name() string
	// Between returns the sorted, distinct holiday dates falling in the years
	// fromYear..toYear inclusive.
	Between(fromYear, toYear int) []datetime.Date
}

// RuleSet is a Source computed from rickar/cal holiday rules. Observed dates
// are used, so a rule that moves weekend holidays to a weekday yields the
// weekday.
type RuleSet struct {
	name  string
	rules []*cal.Holiday
}

// NewRuleSet builds a named rule-based source.
func NewRuleSet(name string, rules ...*cal.Holiday) *RuleSet {
	return &RuleSet{name: name, rules: rules}
}

func (r *RuleSet) Name() string { return r.name }

func (r *RuleSet) Between(fromYear, toYear int) []datetime.Date {
	seen := make(map[datetime.Date]struct{})
	// observed dates may spill into the neighbouring year
	for y := fromYear - 1; y <= toYear+1; y++ {
		for _, h := range r.rules {
			_, observed := h.Calc(y)
			if observed.IsZero() {
				continue
			}
			d := datetime.DateOf(observed)
			if d.Year() < fromYear || d.Year() > toYear {
				continue
			}
			seen[d] = struct{}{}
		}
	}
	return sortedDates(seen)
}

// Static is a Source over a fixed date list.
type Static struct {
	name  string
	dates []datetime.Date
}

// NewStatic copies dates into a named source.
func NewStatic(name string, dates []datetime.Date) *Static {
	seen := make(map[datetime.Date]struct{}, len(dates))
	for _, d := range dates {
		seen[d] = struct{}{}
	}
	return &Static{name: name, dates: sortedDates(seen)}
}

func (s *Static) Name() string { return s.name }

func (s *Static) Between(fromYear, toYear int) []datetime.Date {
	lo := sort.Search(len(s.dates), func(i int) bool { return s.dates[i].Year() >= fromYear })
	hi := sort.Search(len(s.dates), func(i int) bool { return s.dates[i].Year() > toYear })
	if lo >= hi {
		return nil
	}
	return append([]datetime.Date(nil), s.dates[lo:hi]...)
}

// Merge combines sources under a new name.
func Merge(name string, sources ...Source) Source {
	return &merged{name: name, sources: sources}
}

type merged struct {
	name    string
	sources []Source
}

func (m *merged) Name() string { return m.name }

func (m *merged) Between(fromYear, toYear int) []datetime.Date {
	seen := make(map[datetime.Date]struct{})
	for _, s := range m.sources {
		for _, d := range s.Between(fromYear, toYear) {
			seen[d] = struct{}{}
		}
	}
	return sortedDates(seen)
}

func sortedDates(set map[datetime.Date]struct{}) []datetime.Date {
	out := make([]datetime.Date, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

var registry = map[string]Source{
	"NONE": NewStatic("NONE", nil),
	"US":   US,
	"NYSE": NYSE,
	"B3":   B3,
	"HKEX": HKEX,
}

var aliases = map[string]string{
	"XNYS": "NYSE",
	"BVMF": "B3",
	"BR":   "B3",
	"XHKG": "HKEX",
}

// Lookup finds a builtin source by name or exchange code, case-insensitively.
func Lookup(name string) (Source, bool) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	s, ok := registry[key]
	return s, ok
}

// Names lists the builtin sources.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Calendar builds a business-day calendar from src over fromYear..toYear.
func Calendar(src Source, mask busday.WeekMask, fromYear, toYear int) (*busday.Calendar, error) {
	if fromYear > toYear {
		return nil, calerr.Precondition("holiday years %d..%d are reversed", fromYear, toYear)
	}
	return busday.NewCalendar(mask, src.Between(fromYear, toYear))
}

// LastNBusinessDays returns the last n business days of c on or before from,
// most recent first.
func LastNBusinessDays(c *busday.Calendar, n int, from datetime.Date) ([]datetime.Date, error) {
	if n < 0 {
		return nil, calerr.Precondition("n must be non-negative, got %d", n)
	}
	out := make([]datetime.Date, 0, n)
	d, err := c.Roll(from, busday.Preceding)
	if err != nil {
		return nil, err
	}
	for len(out) < n {
		out = append(out, d)
		if len(out) == n {
			break
		}
		if d, err = c.Offset(d, -1, busday.Preceding); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DayOfMonth is a fixed-date rule without weekend observance.
func DayOfMonth(name string, month time.Month, day int) *cal.Holiday {
	return &cal.Holiday{Name: name, Month: month, Day: day, Func: cal.CalcDayOfMonth}
}

// EasterOffset is a rule a fixed number of days from Western Easter Sunday.
func EasterOffset(name string, days int) *cal.Holiday {
	return &cal.Holiday{Name: name, Offset: days, Func: cal.CalcEasterOffset}
}

// DayAfter is the day following the actual date of h.
func DayAfter(name string, h *cal.Holiday) *cal.Holiday {
	return &cal.Holiday{Name: name, Func: func(_ *cal.Holiday, year int) time.Time {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			return actual
		}
		return actual.AddDate(0, 0, 1)
	}}
}
