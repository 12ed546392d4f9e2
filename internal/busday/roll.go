package busday

import (
	"strings"

	"github.com/guttosm/offsetcal/internal/calerr"
)

// RollRule decides where a date that is not a business day moves to.
type RollRule int

const (
	// Following moves forward to the next business day.
	Following RollRule = iota
	// Preceding moves back to the previous business day.
	Preceding
	// ModifiedFollowing moves forward unless that changes the month, then backward.
	ModifiedFollowing
	// ModifiedPreceding moves backward unless that changes the month, then forward.
	ModifiedPreceding
	// RollRaise fails instead of moving.
	RollRaise
)

var rollNames = map[RollRule]string{
	Following:         "following",
	Preceding:         "preceding",
	ModifiedFollowing: "modifiedfollowing",
	ModifiedPreceding: "modifiedpreceding",
	RollRaise:         "raise",
}

func (r RollRule) String() string {
	if s, ok := rollNames[r]; ok {
		return s
	}
	return "unknown"
}

// ParseRoll accepts the rule names plus the "forward"/"backward" aliases.
func ParseRoll(s string) (RollRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "following", "forward":
		return Following, nil
	case "preceding", "backward":
		return Preceding, nil
	case "modifiedfollowing":
		return ModifiedFollowing, nil
	case "modifiedpreceding":
		return ModifiedPreceding, nil
	case "raise":
		return RollRaise, nil
	}
	return 0, calerr.Precondition("unknown roll rule %q", s)
}
