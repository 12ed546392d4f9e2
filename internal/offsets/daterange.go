package offsets

import (
	"time"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
)

// Inclusive selects which range endpoints are kept.
type Inclusive int

const (
	InclusiveBoth Inclusive = iota
	InclusiveNeither
	InclusiveLeft
	InclusiveRight
)

// ParseInclusive reads "both", "neither", "left" or "right". Empty means both.
func ParseInclusive(s string) (Inclusive, error) {
	switch s {
	case "", "both":
		return InclusiveBoth, nil
	case "neither":
		return InclusiveNeither, nil
	case "left":
		return InclusiveLeft, nil
	case "right":
		return InclusiveRight, nil
	}
	return 0, calerr.Precondition("inclusive must be both, neither, left or right, got %q", s)
}

// RangeSpec describes a date range. Exactly two of Start, End and Periods must
// be set; a zero DateTime and a nil Periods count as unset.
type RangeSpec struct {
	Start     datetime.DateTime
	End       datetime.DateTime
	Periods   *int64
	Freq      Handler
	Location  *time.Location
	Policy    datetime.Policy
	Normalize bool
	Inclusive Inclusive
}

// DateRange generates the values Start, Freq(Start), Freq(Freq(Start))... up to
// End or Periods values. A Start that is not on offset is first rolled onto the
// offset in the direction of n.
//
// With a zone (Location, or aware endpoints) tick frequencies step instants
// while calendar frequencies step the wall clock, and each value is localized
// with Policy.
func DateRange(spec RangeSpec) ([]datetime.DateTime, error) {
	if spec.Freq == nil {
		return nil, calerr.Precondition("date range requires a frequency")
	}
	hasStart, hasEnd, hasPeriods := !spec.Start.IsZero(), !spec.End.IsZero(), spec.Periods != nil
	set := 0
	for _, ok := range []bool{hasStart, hasEnd, hasPeriods} {
		if ok {
			set++
		}
	}
	if set != 2 {
		return nil, calerr.Precondition("of start, end and periods exactly two must be specified")
	}
	if hasPeriods && *spec.Periods < 0 {
		return nil, calerr.Precondition("periods must be non-negative, got %d", *spec.Periods)
	}

	loc, err := rangeZone(spec)
	if err != nil {
		return nil, err
	}
	freq := spec.Freq
	if b := freq.core(); b.loc != nil {
		b.loc = nil
		freq = freq.rebase(b)
	}
	_, tick := freq.(Tick)

	prep := func(dt datetime.DateTime) (datetime.DateTime, error) {
		if dt.IsZero() {
			return dt, nil
		}
		var err error
		if spec.Normalize {
			if dt, err = dt.Normalize(); err != nil {
				return dt, err
			}
		}
		switch {
		case loc == nil:
			return dt, nil
		case tick && dt.IsAware():
			return dt.Convert(loc)
		case tick:
			return dt.Localize(loc, spec.Policy)
		case dt.IsAware():
			conv, err := dt.Convert(loc)
			return conv.WallClock(), err
		}
		return dt, nil
	}
	start, err := prep(spec.Start)
	if err != nil {
		return nil, err
	}
	end, err := prep(spec.End)
	if err != nil {
		return nil, err
	}

	values, err := generate(start, end, spec.Periods, freq)
	if err != nil {
		return nil, err
	}
	values = trimInclusive(values, spec.Inclusive, start, end)

	if loc == nil || tick {
		return values, nil
	}
	out := make([]datetime.DateTime, len(values))
	for i, v := range values {
		if out[i], err = v.Localize(loc, spec.Policy); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// rangeZone reconciles the zone of the endpoints with Location.
func rangeZone(spec RangeSpec) (*time.Location, error) {
	var inferred *time.Location
	s, e := spec.Start, spec.End
	switch {
	case !s.IsZero() && !e.IsZero():
		if s.IsAware() != e.IsAware() {
			return nil, calerr.Semantic("start and end must both be naive or both be timezone-aware")
		}
		if s.IsAware() {
			if s.Location().String() != e.Location().String() {
				return nil, calerr.Precondition("start and end cannot be in different timezones (%s, %s)", s.Location(), e.Location())
			}
			inferred = s.Location()
		}
	case !s.IsZero() && s.IsAware():
		inferred = s.Location()
	case !e.IsZero() && e.IsAware():
		inferred = e.Location()
	}
	loc := spec.Location
	if loc == nil {
		loc = spec.Freq.Location()
	}
	switch {
	case loc == nil:
		return inferred, nil
	case inferred != nil && inferred.String() != loc.String():
		return nil, calerr.Precondition("inferred timezone %s does not match requested %s", inferred, loc)
	}
	return loc, nil
}

func generate(start, end datetime.DateTime, periods *int64, freq Handler) ([]datetime.DateTime, error) {
	var err error
	forward := freq.N() >= 0

	if !start.IsZero() && !freq.IsOnOffset(start) {
		if forward {
			start, err = RollForward(freq, start)
		} else {
			start, err = RollBack(freq, start)
		}
		if err != nil {
			return nil, err
		}
	}

	if start.IsZero() && !freq.IsOnOffset(end) {
		if forward {
			end, err = RollBack(freq, end)
		} else {
			end, err = RollForward(freq, end)
		}
		if err != nil {
			return nil, err
		}
	}

	if periods == nil && forward {
		if c, err := end.Compare(start); err != nil {
			return nil, err
		} else if c < 0 {
			return []datetime.DateTime{}, nil
		}
	}
	if periods != nil && *periods == 0 {
		return []datetime.DateTime{}, nil
	}
	switch {
	case end.IsZero():
		if end, err = shift(freq, start, *periods-1); err != nil {
			return nil, err
		}
	case start.IsZero():
		if start, err = shift(freq, end, -(*periods - 1)); err != nil {
			return nil, err
		}
	}

	var out []datetime.DateTime
	cur := start
	for {
		c, err := cur.Compare(end)
		if err != nil {
			return nil, err
		}
		if (forward && c > 0) || (!forward && c < 0) {
			break
		}
		out = append(out, cur)
		if c == 0 {
			break
		}
		next, err := freq.Add(cur)
		if err != nil {
			return nil, err
		}
		step, _ := next.Compare(cur)
		if forward && step <= 0 {
			return nil, calerr.Precondition("offset %s did not increment date %s", freq.Code(), cur)
		}
		if !forward && step >= 0 {
			return nil, calerr.Precondition("offset %s did not decrement date %s", freq.Code(), cur)
		}
		cur = next
	}
	return out, nil
}

// shift applies k periods of freq to dt in one step.
func shift(freq Handler, dt datetime.DateTime, k int64) (datetime.DateTime, error) {
	if t, ok := freq.(Tick); ok {
		step, err := t.Nanos()
		if err != nil {
			return datetime.DateTime{}, err
		}
		p := step * k
		if k != 0 && p/k != step {
			return datetime.DateTime{}, calerr.Range("%d periods of %s overflow", k, t.Code())
		}
		return dt.AddNanos(p)
	}
	h, err := Multiply(freq, k)
	if err != nil {
		return datetime.DateTime{}, err
	}
	return h.Add(dt)
}

func trimInclusive(values []datetime.DateTime, inc Inclusive, start, end datetime.DateTime) []datetime.DateTime {
	if len(values) == 0 || inc == InclusiveBoth {
		return values
	}
	if (inc == InclusiveNeither || inc == InclusiveRight) && !start.IsZero() && values[0].Equal(start) {
		values = values[1:]
	}
	if len(values) > 0 && (inc == InclusiveNeither || inc == InclusiveLeft) && !end.IsZero() && values[len(values)-1].Equal(end) {
		values = values[:len(values)-1]
	}
	return values
}
