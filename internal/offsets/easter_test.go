package offsets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/offsetcal/internal/calerr"
)

func TestEaster(t *testing.T) {
	e := must[Easter](t)
	assertOffsets(t, e(NewEaster(1)), []offsetCase{
		{"2010-01-01", "2010-04-04"},
		{"2010-04-04", "2011-04-24"},
		{"2010-04-05", "2011-04-24"},
	})
	assertOffsets(t, e(NewEaster(2)), []offsetCase{
		{"2010-01-01", "2011-04-24"},
		{"2010-04-04", "2012-04-08"},
	})
	assertOffsets(t, e(NewEaster(-1)), []offsetCase{
		{"2010-04-05", "2010-04-04"},
		{"2010-04-04", "2009-04-12"},
		{"2011-01-01", "2010-04-04"},
	})
	assertOffsets(t, e(NewEaster(-2)), []offsetCase{
		{"2011-01-01", "2009-04-12"},
		{"2010-04-04", "2008-03-23"},
	})
	assertOffsets(t, e(NewEaster(0)), []offsetCase{
		{"2010-01-01", "2010-04-04"},
		{"2010-04-04", "2010-04-04"},
		{"2010-05-01", "2011-04-24"},
		{"2010-12-31", "2011-04-24"},
	})
}

func TestEasterKeepsClock(t *testing.T) {
	e := must[Easter](t)(NewEaster(1))
	got, err := e.Add(ts(t, "2010-04-04 10:00"))
	require.NoError(t, err)
	assert.Equal(t, "2011-04-24 10:00:00", got.String())
	assert.True(t, e.IsOnOffset(ts(t, "2010-04-04 10:00")))
	assert.False(t, e.IsOnOffset(ts(t, "2010-04-05")))
}

func TestEasterRange(t *testing.T) {
	e := must[Easter](t)(NewEaster(1))
	_, err := e.Add(ts(t, "9999-06-01"))
	assert.ErrorIs(t, err, calerr.ErrRange)
}
