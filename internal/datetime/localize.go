package datetime

import (
	"sort"
	"strings"
	"time"

	"github.com/guttosm/offsetcal/internal/calerr"
)

// Ambiguous selects how a wall clock that occurs twice (DST fall-back) is resolved.
type Ambiguous int

const (
	AmbiguousRaise Ambiguous = iota
	AmbiguousEarliest
	AmbiguousLatest
)

// Nonexistent selects how a wall clock inside a DST gap is resolved.
type Nonexistent int

const (
	NonexistentRaise Nonexistent = iota
	NonexistentShiftForward
	NonexistentShiftBackward
)

// Policy is the pair of localization rules. The zero value raises on both.
type Policy struct {
	Ambiguous   Ambiguous
	Nonexistent Nonexistent
}

func (a Ambiguous) String() string {
	switch a {
	case AmbiguousEarliest:
		return "earliest"
	case AmbiguousLatest:
		return "latest"
	default:
		return "raise"
	}
}

func (n Nonexistent) String() string {
	switch n {
	case NonexistentShiftForward:
		return "shift_forward"
	case NonexistentShiftBackward:
		return "shift_backward"
	default:
		return "raise"
	}
}

// ParseAmbiguous reads "raise", "earliest" or "latest". Empty means raise.
func ParseAmbiguous(s string) (Ambiguous, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "raise":
		return AmbiguousRaise, nil
	case "earliest":
		return AmbiguousEarliest, nil
	case "latest":
		return AmbiguousLatest, nil
	}
	return 0, calerr.Precondition("unknown ambiguous-time policy %q", s)
}

// ParseNonexistent reads "raise", "shift_forward" or "shift_backward". Empty means raise.
func ParseNonexistent(s string) (Nonexistent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "raise":
		return NonexistentRaise, nil
	case "shift_forward":
		return NonexistentShiftForward, nil
	case "shift_backward":
		return NonexistentShiftBackward, nil
	}
	return 0, calerr.Precondition("unknown nonexistent-time policy %q", s)
}

func offsetAt(loc *time.Location, sec int64) int64 {
	_, off := time.Unix(sec, 0).In(loc).Zone()
	return int64(off)
}

// Localize attaches loc to a naive value, resolving DST ambiguity and gaps
// with p. Aware values fail with ErrSemantic; an unresolved ambiguous or
// nonexistent wall clock fails with ErrRange.
func (dt DateTime) Localize(loc *time.Location, p Policy) (DateTime, error) {
	if dt.IsAware() {
		return DateTime{}, calerr.Semantic("datetime %s is already timezone-aware; use Convert", dt)
	}
	if loc == nil {
		return DateTime{}, calerr.Precondition("localize requires a location")
	}
	wall, sub := dt.wallSeconds()

	var instants []int64
	seen := map[int64]bool{}
	for _, probe := range []int64{wall - secondsPerDay, wall, wall + secondsPerDay} {
		off := offsetAt(loc, probe)
		if seen[off] {
			continue
		}
		seen[off] = true
		if offsetAt(loc, wall-off) == off {
			instants = append(instants, wall-off)
		}
	}
	sort.Slice(instants, func(i, j int) bool { return instants[i] < instants[j] })

	switch {
	case len(instants) == 1:
		return fromWallInstant(instants[0], sub, loc)
	case len(instants) > 1:
		switch p.Ambiguous {
		case AmbiguousEarliest:
			return fromWallInstant(instants[0], sub, loc)
		case AmbiguousLatest:
			return fromWallInstant(instants[len(instants)-1], sub, loc)
		}
		return DateTime{}, calerr.Range("ambiguous wall time %s in %s", dt, loc)
	}

	switch p.Nonexistent {
	case NonexistentShiftForward, NonexistentShiftBackward:
		t, ok := gapEnd(loc, wall)
		if !ok {
			break
		}
		ns, err := instantNanos(t, 0)
		if err != nil {
			return DateTime{}, err
		}
		if p.Nonexistent == NonexistentShiftBackward {
			ns--
		}
		return FromUnixNanos(ns, loc), nil
	}
	return DateTime{}, calerr.Range("nonexistent wall time %s in %s", dt, loc)
}

// gapEnd finds the transition instant that skips over the wall clock wall.
func gapEnd(loc *time.Location, wall int64) (int64, bool) {
	before := offsetAt(loc, wall-secondsPerDay)
	after := offsetAt(loc, wall+secondsPerDay)
	lo, hi := wall-after, wall-before
	if lo >= hi || offsetAt(loc, lo) != before {
		return 0, false
	}
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if offsetAt(loc, mid) == before {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi, true
}

func fromWallInstant(sec, sub int64, loc *time.Location) (DateTime, error) {
	ns, err := instantNanos(sec, sub)
	if err != nil {
		return DateTime{}, err
	}
	return FromUnixNanos(ns, loc), nil
}

func instantNanos(sec, sub int64) (int64, error) {
	p := sec * nanosPerSecond
	if sec != 0 && p/sec != nanosPerSecond {
		return 0, calerr.Range("instant %ds outside the nanosecond timestamp range", sec)
	}
	r := p + sub
	if sub > 0 && r < p {
		return 0, calerr.Range("instant %ds outside the nanosecond timestamp range", sec)
	}
	return r, nil
}
