// Package offsets implements date-offset handlers: fixed-duration ticks and the
// calendar-anchored families (week, month, quarter, year, semi-month, business
// day, relative delta, Easter).
//
// Every handler follows the same shape: roll the input onto the family's anchor
// grid in the direction of n, then jump the remaining whole periods directly.
// Calendar families work on the local wall clock and re-localize the result in
// the input's zone, so a one-day step across a DST change keeps the clock reading.
//
// Handlers are immutable values and safe for concurrent use.
package offsets

import (
	"strconv"
	"time"

	"github.com/guttosm/offsetcal/internal/busday"
	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
)

// Handler is the capability shared by all offset families. The set of
// implementations is closed to this package.
type Handler interface {
	// N is the signed number of periods the handler steps.
	N() int64
	// Name is the family name, e.g. "MonthEnd".
	Name() string
	// Code is the frequency string, e.g. "2BMS" or "W-MON".
	Code() string
	// Add applies the offset to dt.
	Add(dt datetime.DateTime) (datetime.DateTime, error)
	// IsOnOffset reports whether dt already sits on an anchor.
	IsOnOffset(dt datetime.DateTime) bool
	// WithN returns the same handler stepping n periods.
	WithN(n int64) (Handler, error)
	// Location is the zone configured with WithTimezone, or nil.
	Location() *time.Location

	core() base
	rebase(b base) Handler
}

// Option configures the settings every family shares.
type Option func(*base)

// WithTimezone pins the handler to loc. Aware inputs are converted into loc
// before the offset is applied; naive inputs are rejected with ErrSemantic.
func WithTimezone(loc *time.Location) Option {
	return func(b *base) { b.loc = loc }
}

// WithNormalize truncates results to midnight.
func WithNormalize() Option {
	return func(b *base) { b.normalize = true }
}

// WithPolicy sets how results are re-localized across DST transitions.
func WithPolicy(p datetime.Policy) Option {
	return func(b *base) { b.policy = p }
}

// WithOffset adds a fixed delta after a business-day family has been applied.
func WithOffset(td datetime.TimeDelta) Option {
	return func(b *base) { b.offset = td }
}

// WithCalendar sets the holiday calendar custom business families use when
// none is passed to their constructor. Parse relies on it for "C", "CBMS" and "CBME".
func WithCalendar(cal *busday.Calendar) Option {
	return func(b *base) { b.cal = cal }
}

type base struct {
	n         int64
	normalize bool
	loc       *time.Location
	policy    datetime.Policy
	offset    datetime.TimeDelta
	cal       *busday.Calendar
}

func newBase(n int64, opts []Option) base {
	b := base{n: n}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b base) N() int64                 { return b.n }
func (b base) Location() *time.Location { return b.loc }
func (b base) core() base               { return b }

func (b base) withN(n int64) base {
	b.n = n
	return b
}

func (b base) rejectOffset(name string) error {
	if !b.offset.IsZero() {
		return calerr.Precondition("%s does not accept an offset", name)
	}
	return nil
}

// code prefixes the family code with n unless n is 1.
func (b base) code(c string) string {
	if b.n == 1 {
		return c
	}
	return strconv.FormatInt(b.n, 10) + c
}

func (b base) inZone(dt datetime.DateTime) (datetime.DateTime, error) {
	if b.loc == nil {
		return dt, nil
	}
	if !dt.IsAware() {
		return datetime.DateTime{}, calerr.Semantic("handler pinned to %s cannot take naive datetime %s", b.loc, dt)
	}
	return dt.Convert(b.loc)
}

// apply runs fn on the wall clock of dt and re-localizes the result into the
// zone dt was expressed in.
func (b base) apply(dt datetime.DateTime, fn func(wall datetime.DateTime) (datetime.DateTime, error)) (datetime.DateTime, error) {
	dt, err := b.inZone(dt)
	if err != nil {
		return datetime.DateTime{}, err
	}
	res, err := fn(dt.WallClock())
	if err != nil {
		return datetime.DateTime{}, err
	}
	if b.normalize {
		if res, err = res.Normalize(); err != nil {
			return datetime.DateTime{}, err
		}
	}
	if !dt.IsAware() {
		return res, nil
	}
	return res.Localize(dt.Location(), b.policy)
}

// wall projects dt for the on-offset predicates. ok is false when normalize is
// set and dt is not at midnight.
func (b base) wall(dt datetime.DateTime) (datetime.DateTime, bool) {
	if b.loc != nil && dt.IsAware() {
		if conv, err := dt.Convert(b.loc); err == nil {
			dt = conv
		}
	}
	w := dt.WallClock()
	if b.normalize && w.Clock().NanosOfDay() != 0 {
		return w, false
	}
	return w, true
}

func (b base) addOffset(dt datetime.DateTime) (datetime.DateTime, error) {
	if b.offset.IsZero() {
		return dt, nil
	}
	return dt.Add(b.offset)
}

func withDate(wall datetime.DateTime, d datetime.Date) datetime.DateTime {
	return datetime.NewDateTime(d, wall.Clock())
}

// RollForward returns dt when it is on offset, otherwise the next anchor.
func RollForward(h Handler, dt datetime.DateTime) (datetime.DateTime, error) {
	if h.IsOnOffset(dt) {
		return dt, nil
	}
	one, err := h.WithN(1)
	if err != nil {
		return datetime.DateTime{}, err
	}
	return one.Add(dt)
}

// RollBack returns dt when it is on offset, otherwise the previous anchor.
func RollBack(h Handler, dt datetime.DateTime) (datetime.DateTime, error) {
	if h.IsOnOffset(dt) {
		return dt, nil
	}
	back, err := h.WithN(-1)
	if err != nil {
		return datetime.DateTime{}, err
	}
	return back.Add(dt)
}

// Multiply returns h stepping k times as many periods.
func Multiply(h Handler, k int64) (Handler, error) {
	n := h.N()
	p := n * k
	if n != 0 && p/n != k {
		return nil, calerr.Range("%s multiplied by %d overflows", h.Code(), k)
	}
	return h.WithN(p)
}
