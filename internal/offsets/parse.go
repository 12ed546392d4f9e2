package offsets

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
)

var freqPattern = regexp.MustCompile(`^([+-]?\d*)\s*([A-Za-z]+)(?:-([A-Za-z0-9]+))?$`)

// legacy spellings still seen in stored configurations.
var freqAliases = map[string]string{
	"M":  "ME",
	"BM": "BME",
	"Q":  "QE",
	"BQ": "BQE",
	"A":  "YE",
	"Y":  "YE",
	"BA": "BYE",
	"BY": "BYE",
	"AS": "YS",
	"H":  "h",
	"T":  "min",
	"S":  "s",
	"L":  "ms",
	"U":  "us",
	"N":  "ns",
}

// Parse resolves a frequency string such as "2BMS", "W-MON", "QE-DEC",
// "WOM-3TUE", "-1SMS" or "15min" into a handler. opts apply to the result;
// WithCalendar supplies the holidays for "C", "CBMS" and "CBME".
func Parse(freq string, opts ...Option) (Handler, error) {
	m := freqPattern.FindStringSubmatch(strings.TrimSpace(freq))
	if m == nil {
		return nil, calerr.Precondition("invalid frequency %q", freq)
	}
	n := int64(1)
	switch m[1] {
	case "", "+":
	case "-":
		n = -1
	default:
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, calerr.Precondition("invalid frequency multiple in %q", freq)
		}
		n = v
	}
	prefix, suffix := m[2], m[3]
	if alias, ok := freqAliases[prefix]; ok {
		prefix = alias
	}
	if strings.EqualFold(prefix, "easter") {
		prefix = "Easter"
	}

	h, err := build(prefix, suffix, n, opts)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func build(prefix, suffix string, n int64, opts []Option) (Handler, error) {
	noSuffix := func() error {
		if suffix != "" {
			return calerr.Precondition("frequency %s takes no suffix, got %q", prefix, suffix)
		}
		return nil
	}
	switch prefix {
	case "ns", "us", "ms", "s", "min", "h", "D":
		if err := noSuffix(); err != nil {
			return nil, err
		}
		ctor := map[string]func(int64, ...Option) (Tick, error){
			"ns": Nano, "us": Micro, "ms": Milli, "s": Second, "min": Minute, "h": Hour, "D": Day,
		}[prefix]
		return wrap(ctor(n, opts...))
	case "B":
		if err := noSuffix(); err != nil {
			return nil, err
		}
		return wrap(NewBusinessDay(n, opts...))
	case "C":
		if err := noSuffix(); err != nil {
			return nil, err
		}
		return wrap(NewCustomBusinessDay(n, nil, opts...))
	case "CBMS", "CBME":
		if err := noSuffix(); err != nil {
			return nil, err
		}
		return wrap(newCBMonth(n, nil, prefix == "CBMS", opts))
	case "MS", "ME", "BMS", "BME":
		if err := noSuffix(); err != nil {
			return nil, err
		}
		opt := map[string]dayOpt{"MS": dayStart, "ME": dayEnd, "BMS": dayBusinessStart, "BME": dayBusinessEnd}[prefix]
		return wrap(newMonth(n, opt, opts))
	case "W":
		wd := datetime.Sunday
		if suffix != "" {
			var err error
			if wd, err = parseDayCode(suffix); err != nil {
				return nil, err
			}
		}
		return wrap(NewWeek(n, wd, opts...))
	case "WOM":
		if len(suffix) != 4 || suffix[0] < '1' || suffix[0] > '4' {
			return nil, calerr.Precondition("invalid week-of-month suffix %q", suffix)
		}
		wd, err := parseDayCode(suffix[1:])
		if err != nil {
			return nil, err
		}
		return wrap(NewWeekOfMonth(n, int(suffix[0]-'1'), wd, opts...))
	case "LWOM":
		wd, err := parseDayCode(suffix)
		if err != nil {
			return nil, err
		}
		return wrap(NewLastWeekOfMonth(n, wd, opts...))
	case "SMS", "SME":
		day := DefaultSemiMonthDay
		if suffix != "" {
			v, err := strconv.Atoi(suffix)
			if err != nil {
				return nil, calerr.Precondition("invalid semi-month day %q", suffix)
			}
			day = v
		}
		return wrap(newSemiMonth(n, day, prefix == "SMS", opts))
	case "QS", "QE", "BQS", "BQE":
		opt := map[string]dayOpt{"QS": dayStart, "QE": dayEnd, "BQS": dayBusinessStart, "BQE": dayBusinessEnd}[prefix]
		month, err := parseMonthSuffix(suffix, opt)
		if err != nil {
			return nil, err
		}
		return wrap(newQuarter(n, month, opt, opts))
	case "YS", "YE", "BYS", "BYE":
		opt := map[string]dayOpt{"YS": dayStart, "YE": dayEnd, "BYS": dayBusinessStart, "BYE": dayBusinessEnd}[prefix]
		month, err := parseMonthSuffix(suffix, opt)
		if err != nil {
			return nil, err
		}
		return wrap(newYear(n, month, opt, opts))
	case "Easter":
		if err := noSuffix(); err != nil {
			return nil, err
		}
		return wrap(NewEaster(n, opts...))
	case "DateOffset":
		if err := noSuffix(); err != nil {
			return nil, err
		}
		return wrap(NewRelativeDelta(n, Delta{}, opts...))
	}
	return nil, calerr.Precondition("unknown frequency prefix %q", prefix)
}

func wrap[H Handler](h H, err error) (Handler, error) {
	if err != nil {
		return nil, err
	}
	return h, nil
}

func parseDayCode(s string) (datetime.Weekday, error) {
	if len(s) != 3 {
		return 0, calerr.Precondition("invalid weekday code %q", s)
	}
	return datetime.ParseWeekday(s)
}

// parseMonthSuffix reads "JAN".."DEC". Without a suffix, start anchors default
// to January and end anchors to December.
func parseMonthSuffix(s string, opt dayOpt) (int, error) {
	if s == "" {
		if opt == dayStart || opt == dayBusinessStart {
			return 1, nil
		}
		return 12, nil
	}
	for i, code := range monthCodes {
		if strings.EqualFold(s, code) {
			return i + 1, nil
		}
	}
	return 0, calerr.Precondition("invalid month code %q", s)
}
