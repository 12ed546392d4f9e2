package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/offsetcal/internal/calerr"
)

var (
	naiveLayouts = []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04",
	}
	awareLayouts = []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05Z07:00",
	}
)

// ParseDate reads a "YYYY-MM-DD" literal.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, calerr.Precondition("invalid date literal %q", s)
	}
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseTime reads "HH:MM", "HH:MM:SS" or "HH:MM:SS.fffffffff".
func ParseTime(s string) (Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return clockOf(t), nil
		}
	}
	return Time{}, calerr.Precondition("invalid time literal %q", s)
}

// ParseDateTime reads "YYYY-MM-DD", "YYYY-MM-DD HH:MM[:SS[.f]]" (space or "T"
// separator) as a naive value. A trailing "Z" or "±HH:MM" yields an aware value
// in a fixed-offset zone.
func ParseDateTime(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range naiveLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		date, err := NewDate(t.Year(), int(t.Month()), t.Day())
		if err != nil {
			return DateTime{}, err
		}
		return NewDateTime(date, clockOf(t)), nil
	}
	for _, layout := range awareLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		_, off := t.Zone()
		return FromTime(t.In(fixedZone(off)))
	}
	return DateTime{}, calerr.Precondition("invalid datetime literal %q", s)
}

func fixedZone(off int) *time.Location {
	if off == 0 {
		return time.UTC
	}
	sign := '+'
	abs := off
	if off < 0 {
		sign, abs = '-', -off
	}
	return time.FixedZone(fmt.Sprintf("UTC%c%02d:%02d", sign, abs/3600, abs%3600/60), off)
}
