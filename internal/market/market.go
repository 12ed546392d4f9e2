// Package market models exchange calendars: named session times with dated
// regimes on top of a business-day calendar, plus special opens and closes.
//
// A Calendar is read-only except through SetTime, AddTime and RemoveTime.
// Callers must not run those concurrently with queries; there is no internal
// locking.
package market

import (
	"sort"
	"time"

	"github.com/guttosm/offsetcal/internal/busday"
	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
	"github.com/guttosm/offsetcal/internal/holidays"
)

// Market time names every calendar understands.
const (
	MarketOpen  = "market_open"
	MarketClose = "market_close"
	BreakStart  = "break_start"
	BreakEnd    = "break_end"
)

const (
	defaultFromYear = 1970
	defaultToYear   = 2100
)

// Regime is a market time effective from Since (nil for all history).
// DayOffset moves the time relative to the session date, e.g. -1 for an open
// on the previous evening.
type Regime struct {
	Since     *datetime.Date
	Time      datetime.Time
	DayOffset int
}

// Special replaces the open or close time on the dates of a holiday source.
type Special struct {
	Time  datetime.Time
	Dates holidays.Source
}

// Specials groups special opens and closes.
type Specials struct {
	Opens, Closes []Special
}

type Config struct {
	Name     string
	Timezone *time.Location

	// WeekMask defaults to Monday-Friday when no day is enabled.
	WeekMask busday.WeekMask
	Holidays holidays.Source

	// FromYear and ToYear bound the holiday and special-date expansion,
	// 1970..2100 by default.
	FromYear, ToYear int

	Times          map[string][]Regime
	RegularSpecial Specials
	AdhocSpecial   Specials

	// Policy localizes session times falling on a DST transition.
	Policy datetime.Policy
}

// Calendar is an exchange calendar built from a Config.
type Calendar struct {
	name     string
	loc      *time.Location
	cal      *busday.Calendar
	policy   datetime.Policy
	times    map[string][]Regime
	order    []string
	opens    map[datetime.Date]datetime.Time
	closes   map[datetime.Date]datetime.Time
	from, to int
}

// New validates cfg and builds the calendar.
func New(cfg Config) (*Calendar, error) {
	if cfg.Timezone == nil {
		return nil, calerr.Precondition("market %q needs a timezone", cfg.Name)
	}
	from, to := cfg.FromYear, cfg.ToYear
	if from == 0 {
		from = defaultFromYear
	}
	if to == 0 {
		to = defaultToYear
	}
	mask := cfg.WeekMask
	if mask.BusDays() == 0 {
		mask = busday.DefaultWeekMask
	}
	src := cfg.Holidays
	if src == nil {
		src = holidays.NewStatic("NONE", nil)
	}
	bc, err := holidays.Calendar(src, mask, from, to)
	if err != nil {
		return nil, err
	}

	c := &Calendar{
		name:   cfg.Name,
		loc:    cfg.Timezone,
		cal:    bc,
		policy: cfg.Policy,
		times:  make(map[string][]Regime, len(cfg.Times)),
		from:   from,
		to:     to,
	}
	for name, regimes := range cfg.Times {
		if err := c.putTime(name, regimes); err != nil {
			return nil, err
		}
	}
	if err := c.validateTimes(); err != nil {
		return nil, err
	}
	c.opens = specialTimes(cfg.RegularSpecial.Opens, cfg.AdhocSpecial.Opens, from, to)
	c.closes = specialTimes(cfg.RegularSpecial.Closes, cfg.AdhocSpecial.Closes, from, to)
	c.reorder()
	return c, nil
}

// specialTimes expands the special rules; ad hoc dates win over regular ones.
func specialTimes(regular, adhoc []Special, from, to int) map[datetime.Date]datetime.Time {
	out := make(map[datetime.Date]datetime.Time)
	for _, group := range [][]Special{regular, adhoc} {
		for _, s := range group {
			for _, d := range s.Dates.Between(from, to) {
				out[d] = s.Time
			}
		}
	}
	return out
}

func (c *Calendar) Name() string                   { return c.name }
func (c *Calendar) Location() *time.Location       { return c.loc }
func (c *Calendar) BusinessDays() *busday.Calendar { return c.cal }

func (c *Calendar) validateTimes() error {
	for _, required := range []string{MarketOpen, MarketClose} {
		if _, ok := c.times[required]; !ok {
			return calerr.Precondition("market %q has no %s time", c.name, required)
		}
	}
	_, hasStart := c.times[BreakStart]
	_, hasEnd := c.times[BreakEnd]
	if hasStart != hasEnd {
		return calerr.Precondition("market %q needs both %s and %s", c.name, BreakStart, BreakEnd)
	}
	return nil
}

func (c *Calendar) putTime(name string, regimes []Regime) error {
	if name == "" {
		return calerr.Precondition("market time needs a name")
	}
	if len(regimes) == 0 {
		return calerr.Precondition("market time %s has no regimes", name)
	}
	sorted := append([]Regime(nil), regimes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sinceBefore(sorted[i].Since, sorted[j].Since) })
	for i := 1; i < len(sorted); i++ {
		if !sinceBefore(sorted[i-1].Since, sorted[i].Since) {
			return calerr.Precondition("market time %s has two regimes starting %v", name, sorted[i].Since)
		}
	}
	c.times[name] = sorted
	return nil
}

// sinceBefore orders regime starts with nil first.
func sinceBefore(a, b *datetime.Date) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	}
	return a.Before(*b)
}

// reorder sorts market time names by the day offset and time of their most
// recent regime.
func (c *Calendar) reorder() {
	order := make([]string, 0, len(c.times))
	for name := range c.times {
		order = append(order, name)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := c.latest(order[i]), c.latest(order[j])
		if a.DayOffset != b.DayOffset {
			return a.DayOffset < b.DayOffset
		}
		if cmp := a.Time.Compare(b.Time); cmp != 0 {
			return cmp < 0
		}
		return order[i] < order[j]
	})
	c.order = order
}

func (c *Calendar) latest(name string) Regime {
	regimes := c.times[name]
	return regimes[len(regimes)-1]
}

// MarketTimes lists the market time names in intraday order.
func (c *Calendar) MarketTimes() []string {
	return append([]string(nil), c.order...)
}

// Regimes returns the regimes of a market time, oldest first.
func (c *Calendar) Regimes(name string) ([]Regime, bool) {
	r, ok := c.times[name]
	return append([]Regime(nil), r...), ok
}

// SetTime replaces or creates a market time.
func (c *Calendar) SetTime(name string, regimes ...Regime) error {
	prev, had := c.times[name]
	if err := c.putTime(name, regimes); err != nil {
		return err
	}
	if err := c.validateTimes(); err != nil {
		c.restore(name, prev, had)
		return err
	}
	c.reorder()
	return nil
}

// AddTime creates a market time that does not exist yet.
func (c *Calendar) AddTime(name string, regimes ...Regime) error {
	if _, ok := c.times[name]; ok {
		return calerr.Precondition("market time %s already exists, use SetTime", name)
	}
	return c.SetTime(name, regimes...)
}

// RemoveTime deletes a market time. The open and close cannot be removed;
// removing either break time removes both.
func (c *Calendar) RemoveTime(name string) error {
	if _, ok := c.times[name]; !ok {
		return calerr.Precondition("market time %s does not exist", name)
	}
	if name == MarketOpen || name == MarketClose {
		return calerr.Precondition("market time %s cannot be removed", name)
	}
	if name == BreakStart || name == BreakEnd {
		delete(c.times, BreakStart)
		delete(c.times, BreakEnd)
	} else {
		delete(c.times, name)
	}
	c.reorder()
	return nil
}

func (c *Calendar) restore(name string, prev []Regime, had bool) {
	if had {
		c.times[name] = prev
		return
	}
	delete(c.times, name)
}

// timeOn is the regime of name in effect on d.
func (c *Calendar) timeOn(name string, d datetime.Date) (Regime, bool) {
	regimes, ok := c.times[name]
	if !ok {
		return Regime{}, false
	}
	for i := len(regimes) - 1; i >= 0; i-- {
		if s := regimes[i].Since; s == nil || !s.After(d) {
			return regimes[i], true
		}
	}
	return Regime{}, false
}
