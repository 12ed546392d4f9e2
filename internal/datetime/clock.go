package datetime

import (
	"fmt"

	"github.com/guttosm/offsetcal/internal/calerr"
)

const (
	nanosPerMicro  = 1_000
	nanosPerSecond = 1_000_000_000
	nanosPerMinute = 60 * nanosPerSecond
	nanosPerHour   = 60 * nanosPerMinute
	nanosPerDay    = 24 * nanosPerHour
	secondsPerDay  = 86_400
	microsPerSec   = 1_000_000
)

// Time is a time of day. The tz field is a display tag only (an IANA zone name,
// or empty): ordering compares the clock reading alone.
type Time struct {
	hour   int
	minute int
	second int
	micro  int
	nano   int // sub-microsecond part, 0..999
	tz     string
}

// Midnight is 00:00:00 without a zone tag.
var Midnight = Time{}

// NewTime validates and returns h:m:s.us.
func NewTime(h, m, s, us int) (Time, error) {
	if h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 || us < 0 || us >= microsPerSec {
		return Time{}, calerr.Range("time %02d:%02d:%02d.%06d is not a valid time of day", h, m, s, us)
	}
	return Time{hour: h, minute: m, second: s, micro: us}, nil
}

// MustTime is NewTime for literals; it panics on invalid input.
func MustTime(h, m, s, us int) Time {
	t, err := NewTime(h, m, s, us)
	if err != nil {
		panic(err)
	}
	return t
}

// timeFromNanos builds a clock from nanoseconds since midnight, 0 <= ns < one day.
func timeFromNanos(ns int64) Time {
	h := ns / nanosPerHour
	ns -= h * nanosPerHour
	m := ns / nanosPerMinute
	ns -= m * nanosPerMinute
	s := ns / nanosPerSecond
	ns -= s * nanosPerSecond
	return Time{hour: int(h), minute: int(m), second: int(s), micro: int(ns / nanosPerMicro), nano: int(ns % nanosPerMicro)}
}

func (t Time) Hour() int        { return t.hour }
func (t Time) Minute() int      { return t.minute }
func (t Time) Second() int      { return t.second }
func (t Time) Microsecond() int { return t.micro }
func (t Time) Nanosecond() int  { return t.nano }
func (t Time) TZ() string       { return t.tz }

// WithNanosecond sets the sub-microsecond part (0..999).
func (t Time) WithNanosecond(ns int) (Time, error) {
	if ns < 0 || ns > 999 {
		return Time{}, calerr.Range("nanosecond %d outside [0, 999]", ns)
	}
	t.nano = ns
	return t, nil
}

// NanosOfDay returns the clock reading as nanoseconds since midnight.
func (t Time) NanosOfDay() int64 {
	return int64(t.hour)*nanosPerHour + int64(t.minute)*nanosPerMinute +
		int64(t.second)*nanosPerSecond + int64(t.micro)*nanosPerMicro + int64(t.nano)
}

// Compare orders by clock magnitude; the tz tag is ignored.
func (t Time) Compare(o Time) int {
	return cmpInt(t.NanosOfDay(), o.NanosOfDay())
}

func (t Time) withTZ(tz string) Time {
	t.tz = tz
	return t
}

func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.hour, t.minute, t.second)
	switch {
	case t.nano != 0:
		s += fmt.Sprintf(".%06d%03d", t.micro, t.nano)
	case t.micro != 0:
		s += fmt.Sprintf(".%06d", t.micro)
	}
	return s
}
