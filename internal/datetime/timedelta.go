package datetime

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/civil"
)

// MaxDeltaDays bounds the day field of a TimeDelta in both directions.
const MaxDeltaDays = 999_999_999

var bigMicrosPerDay = big.NewInt(secondsPerDay * microsPerSec)

// TimeDelta is a signed duration stored as days, seconds in [0, 86400) and
// microseconds in [0, 1e6). The sign lives in days only: -1µs is
// {days: -1, seconds: 86399, micros: 999999}.
type TimeDelta struct {
	days    int64
	seconds int64
	micros  int64
}

// Components are the weights a TimeDelta can be built from. Values may be
// fractional and negative; the sum is rounded half-to-even to the microsecond.
type Components struct {
	Weeks        float64
	Days         float64
	Hours        float64
	Minutes      float64
	Seconds      float64
	Milliseconds float64
	Microseconds float64
}

// NewTimeDelta normalizes c. It fails with ErrRange when the result needs more
// than MaxDeltaDays days or a component is not finite.
func NewTimeDelta(c Components) (TimeDelta, error) {
	parts := []struct {
		v      float64
		micros int64
	}{
		{c.Weeks, 7 * secondsPerDay * microsPerSec},
		{c.Days, secondsPerDay * microsPerSec},
		{c.Hours, 3600 * microsPerSec},
		{c.Minutes, 60 * microsPerSec},
		{c.Seconds, microsPerSec},
		{c.Milliseconds, 1000},
		{c.Microseconds, 1},
	}
	total := decimal.Zero
	for _, p := range parts {
		if p.v == 0 {
			continue
		}
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return TimeDelta{}, calerr.Range("timedelta component %v is not finite", p.v)
		}
		total = total.Add(decimal.NewFromFloat(p.v).Mul(decimal.NewFromInt(p.micros)))
	}
	return fromBigMicros(total.RoundBank(0).BigInt())
}

// Delta builds a TimeDelta from integer parts, carrying with floor division.
func Delta(days, seconds, micros int64) (TimeDelta, error) {
	carry, us := civil.DivMod(micros, microsPerSec)
	seconds += carry
	carry, s := civil.DivMod(seconds, secondsPerDay)
	days += carry
	if days > MaxDeltaDays || days < -MaxDeltaDays {
		return TimeDelta{}, calerr.Range("timedelta of %d days exceeds ±%d", days, MaxDeltaDays)
	}
	return TimeDelta{days: days, seconds: s, micros: us}, nil
}

// MustDelta is Delta for literals; it panics on overflow.
func MustDelta(days, seconds, micros int64) TimeDelta {
	td, err := Delta(days, seconds, micros)
	if err != nil {
		panic(err)
	}
	return td
}

// FromDuration converts a time.Duration, flooring to the microsecond.
func FromDuration(d time.Duration) TimeDelta {
	td, _ := Delta(0, 0, civil.FloorDiv(int64(d), nanosPerMicro))
	return td
}

func fromBigMicros(total *big.Int) (TimeDelta, error) {
	days, rem := new(big.Int).DivMod(total, bigMicrosPerDay, new(big.Int))
	if !days.IsInt64() || days.Int64() > MaxDeltaDays || days.Int64() < -MaxDeltaDays {
		return TimeDelta{}, calerr.Range("timedelta of %s days exceeds ±%d", days.String(), MaxDeltaDays)
	}
	r := rem.Int64()
	return TimeDelta{days: days.Int64(), seconds: r / microsPerSec, micros: r % microsPerSec}, nil
}

func (td TimeDelta) Days() int64         { return td.days }
func (td TimeDelta) Seconds() int64      { return td.seconds }
func (td TimeDelta) Microseconds() int64 { return td.micros }

// IsZero reports whether td is the empty duration.
func (td TimeDelta) IsZero() bool { return td == TimeDelta{} }

func (td TimeDelta) totalMicros() *big.Int {
	t := new(big.Int).Mul(big.NewInt(td.days), bigMicrosPerDay)
	return t.Add(t, big.NewInt(td.seconds*microsPerSec+td.micros))
}

// Nanoseconds returns td as a nanosecond count, or ErrRange when it does not fit.
func (td TimeDelta) Nanoseconds() (int64, error) {
	t := td.totalMicros()
	t.Mul(t, big.NewInt(nanosPerMicro))
	if !t.IsInt64() {
		return 0, calerr.Range("timedelta %s does not fit in int64 nanoseconds", td)
	}
	return t.Int64(), nil
}

// Duration converts to time.Duration, failing with ErrRange beyond ~292 years.
func (td TimeDelta) Duration() (time.Duration, error) {
	ns, err := td.Nanoseconds()
	return time.Duration(ns), err
}

// Add returns td + o.
func (td TimeDelta) Add(o TimeDelta) (TimeDelta, error) {
	return Delta(td.days+o.days, td.seconds+o.seconds, td.micros+o.micros)
}

// Neg returns -td.
func (td TimeDelta) Neg() (TimeDelta, error) {
	return Delta(-td.days, -td.seconds, -td.micros)
}

// Mul returns td * k.
func (td TimeDelta) Mul(k int64) (TimeDelta, error) {
	t := td.totalMicros()
	return fromBigMicros(t.Mul(t, big.NewInt(k)))
}

// Compare returns -1, 0 or +1.
func (td TimeDelta) Compare(o TimeDelta) int {
	if c := cmpInt(td.days, o.days); c != 0 {
		return c
	}
	if c := cmpInt(td.seconds, o.seconds); c != 0 {
		return c
	}
	return cmpInt(td.micros, o.micros)
}

// String renders like "2 days, 1:02:03.000004" or "-1 day, 23:59:59".
func (td TimeDelta) String() string {
	mm, ss := td.seconds/60, td.seconds%60
	hh, mm := mm/60, mm%60
	s := fmt.Sprintf("%d:%02d:%02d", hh, mm, ss)
	if td.days != 0 {
		unit := "days"
		if td.days == 1 || td.days == -1 {
			unit = "day"
		}
		s = fmt.Sprintf("%d %s, %s", td.days, unit, s)
	}
	if td.micros != 0 {
		s += fmt.Sprintf(".%06d", td.micros)
	}
	return s
}
