package market

import (
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/columnar"
	"github.com/guttosm/offsetcal/internal/datetime"
	"github.com/guttosm/offsetcal/internal/offsets"
)

// Session is one trading day. Times are aware values in the market zone.
type Session struct {
	Date       datetime.Date      `json:"date"`
	Open       datetime.DateTime  `json:"market_open"`
	Close      datetime.DateTime  `json:"market_close"`
	BreakStart *datetime.DateTime `json:"break_start,omitempty"`
	BreakEnd   *datetime.DateTime `json:"break_end,omitempty"`
}

// ValidDays lists the trading days from start to end inclusive.
func (c *Calendar) ValidDays(start, end datetime.Date) []datetime.Date {
	return c.cal.BusinessDays(start, end)
}

// ValidDaysArray is ValidDays as an Arrow date32 array. The caller releases it.
func (c *Calendar) ValidDaysArray(mem memory.Allocator, start, end datetime.Date) *array.Date32 {
	return columnar.Date32Array(mem, c.ValidDays(start, end))
}

// Holidays returns a custom business day handler over the market calendar.
func (c *Calendar) Holidays() (offsets.CustomBusinessDay, error) {
	return offsets.NewCustomBusinessDay(1, c.cal)
}

// at places regime r on session date d in the market zone.
func (c *Calendar) at(d datetime.Date, r Regime) (datetime.DateTime, error) {
	day, err := d.AddDays(int64(r.DayOffset))
	if err != nil {
		return datetime.DateTime{}, err
	}
	return datetime.NewDateTime(day, r.Time).Localize(c.loc, c.policy)
}

// Schedule returns the sessions of the trading days from start to end
// inclusive, with special opens and closes applied.
func (c *Calendar) Schedule(start, end datetime.Date) ([]Session, error) {
	days := c.ValidDays(start, end)
	out := make([]Session, 0, len(days))
	for _, d := range days {
		s, err := c.session(d)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (c *Calendar) session(d datetime.Date) (Session, error) {
	openR, _ := c.timeOn(MarketOpen, d)
	closeR, _ := c.timeOn(MarketClose, d)
	if t, ok := c.opens[d]; ok {
		openR.Time = t
	}
	if t, ok := c.closes[d]; ok {
		closeR.Time = t
	}
	s := Session{Date: d}
	var err error
	if s.Open, err = c.at(d, openR); err != nil {
		return Session{}, err
	}
	if s.Close, err = c.at(d, closeR); err != nil {
		return Session{}, err
	}

	bsR, hasBreak := c.timeOn(BreakStart, d)
	beR, _ := c.timeOn(BreakEnd, d)
	if !hasBreak {
		return s, nil
	}
	bs, err := c.at(d, bsR)
	if err != nil {
		return Session{}, err
	}
	be, err := c.at(d, beR)
	if err != nil {
		return Session{}, err
	}
	// a special close at or before the break drops it
	if cmp, _ := s.Close.Compare(bs); cmp <= 0 {
		return s, nil
	}
	if cmp, _ := s.Close.Compare(be); cmp < 0 {
		be = s.Close
	}
	s.BreakStart, s.BreakEnd = &bs, &be
	return s, nil
}

// within reports start <= dt < end.
func within(dt, start, end datetime.DateTime) bool {
	a, _ := dt.Compare(start)
	b, _ := dt.Compare(end)
	return a >= 0 && b < 0
}

// contains reports whether dt falls inside the session and outside its break.
func (s Session) contains(dt datetime.DateTime) bool {
	if !within(dt, s.Open, s.Close) {
		return false
	}
	return s.BreakStart == nil || !within(dt, *s.BreakStart, *s.BreakEnd)
}

// IsOpenAt reports whether the market is trading at dt. The close is
// exclusive. dt must be timezone-aware.
func (c *Calendar) IsOpenAt(dt datetime.DateTime) (bool, error) {
	if !dt.IsAware() {
		return false, calerr.Semantic("IsOpenAt needs a timezone-aware datetime, got %s", dt)
	}
	local, err := dt.Convert(c.loc)
	if err != nil {
		return false, err
	}
	d := local.Date()
	from, err := d.AddDays(-1)
	if err != nil {
		from = d
	}
	to, err := d.AddDays(1)
	if err != nil {
		to = d
	}
	sessions, err := c.Schedule(from, to)
	if err != nil {
		return false, err
	}
	for _, s := range sessions {
		if s.contains(local) {
			return true, nil
		}
	}
	return false, nil
}

// TradingIndex returns the values of freq from each session open (inclusive)
// to its close (exclusive), skipping breaks.
func (c *Calendar) TradingIndex(start, end datetime.Date, freq offsets.Handler) ([]datetime.DateTime, error) {
	sessions, err := c.Schedule(start, end)
	if err != nil {
		return nil, err
	}
	var out []datetime.DateTime
	for _, s := range sessions {
		values, err := offsets.DateRange(offsets.RangeSpec{
			Start:     s.Open,
			End:       s.Close,
			Freq:      freq,
			Policy:    c.policy,
			Inclusive: offsets.InclusiveLeft,
		})
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			if s.contains(v) {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

// Convert is not implemented.
func (c *Calendar) Convert([]datetime.DateTime) ([]datetime.DateTime, error) {
	return nil, calerr.NotImplemented("market.Calendar.Convert")
}

// InterruptionsDF is not implemented.
func (c *Calendar) InterruptionsDF(start, end datetime.Date) ([]Session, error) {
	return nil, calerr.NotImplemented("market.Calendar.InterruptionsDF")
}

// TryHolidays is not implemented.
func (c *Calendar) TryHolidays() ([]datetime.Date, error) {
	return nil, calerr.NotImplemented("market.Calendar.TryHolidays")
}

// SpecialDates is not implemented.
func (c *Calendar) SpecialDates(name string, start, end datetime.Date) ([]datetime.DateTime, error) {
	return nil, calerr.NotImplemented("market.Calendar.SpecialDates")
}

// DaysAtTime is not implemented.
func (c *Calendar) DaysAtTime(days []datetime.Date, name string) ([]datetime.DateTime, error) {
	return nil, calerr.NotImplemented("market.Calendar.DaysAtTime")
}
