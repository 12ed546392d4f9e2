package offsets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/offsetcal/internal/calerr"
)

func TestQuarterBegin(t *testing.T) {
	q := must[Quarter](t)
	assertOffsets(t, q(QuarterBegin(1, 1)), []offsetCase{
		{"2007-12-01", "2008-01-01"},
		{"2008-01-01", "2008-04-01"},
		{"2008-02-15", "2008-04-01"},
		{"2008-02-29", "2008-04-01"},
		{"2008-03-15", "2008-04-01"},
		{"2008-03-31", "2008-04-01"},
		{"2008-04-15", "2008-07-01"},
		{"2008-04-01", "2008-07-01"},
	})
	assertOffsets(t, q(QuarterBegin(-1, 1)), []offsetCase{
		{"2008-01-01", "2007-10-01"},
		{"2008-01-31", "2008-01-01"},
		{"2008-02-15", "2008-01-01"},
		{"2008-04-01", "2008-01-01"},
		{"2008-04-30", "2008-04-01"},
	})
	assertOffsets(t, q(QuarterBegin(2, 1)), []offsetCase{
		{"2008-01-01", "2008-07-01"},
		{"2008-02-15", "2008-07-01"},
		{"2008-03-31", "2008-07-01"},
		{"2008-04-01", "2008-10-01"},
	})
}

func TestQuarterEnd(t *testing.T) {
	q := must[Quarter](t)
	assertOffsets(t, q(QuarterEnd(1, 1)), []offsetCase{
		{"2008-01-01", "2008-01-31"},
		{"2008-01-31", "2008-04-30"},
		{"2008-02-15", "2008-04-30"},
		{"2008-02-29", "2008-04-30"},
		{"2008-03-31", "2008-04-30"},
		{"2008-04-15", "2008-04-30"},
		{"2008-04-30", "2008-07-31"},
	})
	assertOffsets(t, q(QuarterEnd(-1, 1)), []offsetCase{
		{"2008-01-01", "2007-10-31"},
		{"2008-01-31", "2007-10-31"},
		{"2008-02-15", "2008-01-31"},
		{"2008-03-31", "2008-01-31"},
		{"2008-04-15", "2008-01-31"},
		{"2008-04-30", "2008-01-31"},
	})
	assertOffsets(t, q(QuarterEnd(1, 0)), []offsetCase{
		{"2008-02-15", "2008-03-31"},
		{"2008-03-31", "2008-06-30"},
		{"2008-12-31", "2009-03-31"},
	})
}

func TestBusinessQuarter(t *testing.T) {
	q := must[Quarter](t)
	assertOffsets(t, q(BQuarterEnd(1, 1)), []offsetCase{
		{"2008-01-01", "2008-01-31"},
		{"2008-01-31", "2008-04-30"},
		{"2008-02-15", "2008-04-30"},
		{"2008-03-31", "2008-04-30"},
		{"2008-04-15", "2008-04-30"},
		{"2008-07-31", "2008-10-31"},
	})
	assertOffsets(t, q(BQuarterBegin(1, 1)), []offsetCase{
		{"2008-01-01", "2008-04-01"},
		{"2008-03-31", "2008-04-01"},
		{"2007-12-31", "2008-01-01"},
		{"2008-06-15", "2008-07-01"},
		{"2008-07-01", "2008-10-01"},
	})
}

func TestYearBeginEnd(t *testing.T) {
	y := must[Year](t)
	assertOffsets(t, y(YearBegin(1, 0)), []offsetCase{
		{"2008-01-01", "2009-01-01"},
		{"2008-06-30", "2009-01-01"},
		{"2008-12-31", "2009-01-01"},
		{"2005-12-30", "2006-01-01"},
		{"2005-12-31", "2006-01-01"},
	})
	assertOffsets(t, y(YearBegin(0, 0)), []offsetCase{
		{"2008-01-01", "2008-01-01"},
		{"2008-06-30", "2009-01-01"},
	})
	assertOffsets(t, y(YearBegin(-1, 0)), []offsetCase{
		{"2007-01-01", "2006-01-01"},
		{"2007-01-15", "2007-01-01"},
		{"2008-06-30", "2008-01-01"},
		{"2008-12-31", "2008-01-01"},
		{"2006-12-29", "2006-01-01"},
	})
	assertOffsets(t, y(YearBegin(4, 4)), []offsetCase{
		{"2007-04-01", "2011-04-01"},
		{"2007-04-15", "2011-04-01"},
		{"2007-03-01", "2010-04-01"},
	})
	assertOffsets(t, y(YearEnd(1, 0)), []offsetCase{
		{"2008-01-01", "2008-12-31"},
		{"2008-06-30", "2008-12-31"},
		{"2008-12-31", "2009-12-31"},
		{"2005-12-30", "2005-12-31"},
	})
	assertOffsets(t, y(YearEnd(-1, 0)), []offsetCase{
		{"2007-01-01", "2006-12-31"},
		{"2008-06-30", "2007-12-31"},
		{"2008-12-31", "2007-12-31"},
	})
	assertOffsets(t, y(YearEnd(1, 3)), []offsetCase{
		{"2008-01-01", "2008-03-31"},
		{"2008-02-15", "2008-03-31"},
		{"2008-03-31", "2009-03-31"},
		{"2008-03-30", "2008-03-31"},
		{"2005-03-31", "2006-03-31"},
	})
	assertOffsets(t, y(BYearEnd(1, 0)), []offsetCase{
		{"2008-01-01", "2008-12-31"},
		{"2008-06-30", "2008-12-31"},
		{"2008-12-31", "2009-12-31"},
		{"2005-12-30", "2006-12-29"},
		{"2005-12-31", "2006-12-29"},
	})
	assertOffsets(t, y(BYearBegin(1, 0)), []offsetCase{
		{"2008-01-01", "2009-01-01"},
		{"2011-01-01", "2011-01-03"},
		{"2011-01-03", "2012-01-02"},
		{"2010-12-31", "2011-01-03"},
	})
}

func TestQuarterYearValidation(t *testing.T) {
	_, err := QuarterEnd(1, 13)
	require.ErrorIs(t, err, calerr.ErrPrecondition)
	_, err = YearBegin(1, -1)
	require.ErrorIs(t, err, calerr.ErrPrecondition)

	q := must[Quarter](t)(QuarterBegin(2, 0))
	assert.Equal(t, "2QS-MAR", q.Code())
	assert.Equal(t, 3, q.StartingMonth())
	y := must[Year](t)(BYearEnd(-1, 0))
	assert.Equal(t, "-1BYE-DEC", y.Code())
}
