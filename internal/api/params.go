package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
)

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, calerr.Precondition("unknown timezone %q", name)
	}
	return loc, nil
}

func parsePolicy(ambiguous, nonexistent string) (datetime.Policy, error) {
	a, err := datetime.ParseAmbiguous(ambiguous)
	if err != nil {
		return datetime.Policy{}, err
	}
	n, err := datetime.ParseNonexistent(nonexistent)
	if err != nil {
		return datetime.Policy{}, err
	}
	return datetime.Policy{Ambiguous: a, Nonexistent: n}, nil
}

func parseBool(key, s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, calerr.Precondition("%s must be a boolean, got %q", key, s)
	}
	return v, nil
}

func parseInt(key, s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, calerr.Precondition("%s must be an integer, got %q", key, s)
	}
	return v, nil
}

// parseValue reads a datetime literal. With loc set, a naive literal is
// localized into loc and an aware one is converted.
func parseValue(s string, loc *time.Location, p datetime.Policy) (datetime.DateTime, error) {
	dt, err := datetime.ParseDateTime(s)
	if err != nil {
		return datetime.DateTime{}, err
	}
	if loc == nil {
		return dt, nil
	}
	if dt.IsAware() {
		return dt.Convert(loc)
	}
	return dt.Localize(loc, p)
}

func requireDate(key, s string) (datetime.Date, error) {
	if strings.TrimSpace(s) == "" {
		return datetime.Date{}, calerr.Precondition("%s is required", key)
	}
	return datetime.ParseDate(s)
}
