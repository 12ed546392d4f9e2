package offsets

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/offsetcal/internal/datetime"
)

func ts(t *testing.T, s string) datetime.DateTime {
	t.Helper()
	dt, err := datetime.ParseDateTime(s)
	require.NoError(t, err, s)
	return dt
}

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func localized(t *testing.T, s string, loc *time.Location) datetime.DateTime {
	t.Helper()
	dt, err := ts(t, s).Localize(loc, datetime.Policy{})
	require.NoError(t, err, s)
	return dt
}

type offsetCase struct {
	in, want string
}

// assertOffsets applies h to every input and compares the date part, plus the
// on-offset property of the result.
func assertOffsets(t *testing.T, h Handler, cases []offsetCase) {
	t.Helper()
	for _, c := range cases {
		got, err := h.Add(ts(t, c.in))
		require.NoError(t, err, "%s + %s", c.in, h.Code())
		assert.Equal(t, c.want, got.Date().String(), "%s + %s", c.in, h.Code())
		assert.True(t, h.IsOnOffset(got), "%s not on offset for %s", got, h.Code())
	}
}

func must[H any](t *testing.T) func(H, error) H {
	return func(h H, err error) H {
		t.Helper()
		require.NoError(t, err)
		return h
	}
}
