package offsets

import (
	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
)

type tickUnit struct {
	name  string
	code  string
	nanos int64
}

var (
	unitNano   = tickUnit{"Nano", "ns", 1}
	unitMicro  = tickUnit{"Micro", "us", 1_000}
	unitMilli  = tickUnit{"Milli", "ms", 1_000_000}
	unitSecond = tickUnit{"Second", "s", 1_000_000_000}
	unitMinute = tickUnit{"Minute", "min", 60_000_000_000}
	unitHour   = tickUnit{"Hour", "h", 3_600_000_000_000}
	unitDay    = tickUnit{"Day", "D", 86_400_000_000_000}
)

// Tick is a fixed-duration offset. Naive values step their wall clock, aware
// values step the instant. Every value is on offset.
type Tick struct {
	base
	unit tickUnit
}

func newTick(unit tickUnit, n int64, opts []Option) (Tick, error) {
	t := Tick{base: newBase(n, opts), unit: unit}
	return t, t.validate()
}

func (t Tick) validate() error {
	if t.n <= 0 {
		return calerr.Precondition("%s: n must be positive, got %d", t.unit.name, t.n)
	}
	if t.normalize {
		return calerr.Precondition("%s does not support normalize", t.unit.name)
	}
	return t.rejectOffset(t.unit.name)
}

func Nano(n int64, opts ...Option) (Tick, error)   { return newTick(unitNano, n, opts) }
func Micro(n int64, opts ...Option) (Tick, error)  { return newTick(unitMicro, n, opts) }
func Milli(n int64, opts ...Option) (Tick, error)  { return newTick(unitMilli, n, opts) }
func Second(n int64, opts ...Option) (Tick, error) { return newTick(unitSecond, n, opts) }
func Minute(n int64, opts ...Option) (Tick, error) { return newTick(unitMinute, n, opts) }
func Hour(n int64, opts ...Option) (Tick, error)   { return newTick(unitHour, n, opts) }
func Day(n int64, opts ...Option) (Tick, error)    { return newTick(unitDay, n, opts) }

func (t Tick) Name() string { return t.unit.name }
func (t Tick) Code() string { return t.code(t.unit.code) }

// Nanos is the step length.
func (t Tick) Nanos() (int64, error) {
	p := t.n * t.unit.nanos
	if p/t.unit.nanos != t.n {
		return 0, calerr.Range("%s overflows int64 nanoseconds", t.Code())
	}
	return p, nil
}

func (t Tick) Add(dt datetime.DateTime) (datetime.DateTime, error) {
	dt, err := t.inZone(dt)
	if err != nil {
		return datetime.DateTime{}, err
	}
	step, err := t.Nanos()
	if err != nil {
		return datetime.DateTime{}, err
	}
	return dt.AddNanos(step)
}

func (t Tick) IsOnOffset(datetime.DateTime) bool { return true }

func (t Tick) WithN(n int64) (Handler, error) {
	out := Tick{base: t.withN(n), unit: t.unit}
	if err := out.validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func (t Tick) rebase(b base) Handler { t.base = b; return t }
