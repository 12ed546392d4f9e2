package market

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
	"github.com/guttosm/offsetcal/internal/holidays"
	"github.com/guttosm/offsetcal/internal/offsets"
)

func date(t *testing.T, s string) datetime.Date {
	t.Helper()
	d, err := datetime.ParseDate(s)
	require.NoError(t, err)
	return d
}

func at(t *testing.T, s string, loc *time.Location) datetime.DateTime {
	t.Helper()
	dt, err := datetime.ParseDateTime(s)
	require.NoError(t, err)
	dt, err = dt.Localize(loc, datetime.Policy{})
	require.NoError(t, err)
	return dt
}

type sessionRow struct{ date, open, close string }

func rows(sessions []Session) []sessionRow {
	out := make([]sessionRow, len(sessions))
	for i, s := range sessions {
		out[i] = sessionRow{s.Date.String(), s.Open.String(), s.Close.String()}
	}
	return out
}

func TestXNYSSchedule(t *testing.T) {
	nyse, err := xnys(holidays.NYSE)
	require.NoError(t, err)
	assert.Equal(t, []string{MarketOpen, MarketClose}, nyse.MarketTimes())

	sessions, err := nyse.Schedule(date(t, "2023-11-20"), date(t, "2023-11-27"))
	require.NoError(t, err)
	assert.Equal(t, []sessionRow{
		{"2023-11-20", "2023-11-20 09:30:00-05:00", "2023-11-20 16:00:00-05:00"},
		{"2023-11-21", "2023-11-21 09:30:00-05:00", "2023-11-21 16:00:00-05:00"},
		{"2023-11-22", "2023-11-22 09:30:00-05:00", "2023-11-22 16:00:00-05:00"},
		{"2023-11-24", "2023-11-24 09:30:00-05:00", "2023-11-24 13:00:00-05:00"},
		{"2023-11-27", "2023-11-27 09:30:00-05:00", "2023-11-27 16:00:00-05:00"},
	}, rows(sessions))

	sessions, err = nyse.Schedule(date(t, "2024-12-23"), date(t, "2024-12-26"))
	require.NoError(t, err)
	assert.Equal(t, []sessionRow{
		{"2024-12-23", "2024-12-23 09:30:00-05:00", "2024-12-23 16:00:00-05:00"},
		{"2024-12-24", "2024-12-24 09:30:00-05:00", "2024-12-24 13:00:00-05:00"},
		{"2024-12-26", "2024-12-26 09:30:00-05:00", "2024-12-26 16:00:00-05:00"},
	}, rows(sessions))
}

func TestXNYSIsOpenAt(t *testing.T) {
	nyse, err := xnys(holidays.NYSE)
	require.NoError(t, err)
	ny := nyse.Location()

	cases := []struct {
		at   datetime.DateTime
		want bool
	}{
		{at(t, "2023-11-24 12:59", ny), true},
		{at(t, "2023-11-24 13:00", ny), false},
		{at(t, "2023-11-23 10:00", ny), false},
		{at(t, "2023-11-20 09:29", ny), false},
		{at(t, "2023-11-20 14:30", time.UTC), true},
		{at(t, "2023-11-25 11:00", ny), false},
	}
	for _, c := range cases {
		got, err := nyse.IsOpenAt(c.at)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, c.at.String())
	}

	naive, err := datetime.ParseDateTime("2023-11-20 10:00")
	require.NoError(t, err)
	_, err = nyse.IsOpenAt(naive)
	assert.ErrorIs(t, err, calerr.ErrSemantic)
}

func TestBVMFRegimes(t *testing.T) {
	b3, err := bvmf(holidays.B3)
	require.NoError(t, err)

	sessions, err := b3.Schedule(date(t, "2019-11-01"), date(t, "2019-11-04"))
	require.NoError(t, err)
	assert.Equal(t, []sessionRow{
		{"2019-11-01", "2019-11-01 11:00:00-03:00", "2019-11-01 18:00:00-03:00"},
		{"2019-11-04", "2019-11-04 10:00:00-03:00", "2019-11-04 17:00:00-03:00"},
	}, rows(sessions))

	days := b3.ValidDays(date(t, "2024-02-09"), date(t, "2024-02-15"))
	assert.Equal(t, []datetime.Date{date(t, "2024-02-09"), date(t, "2024-02-14"), date(t, "2024-02-15")}, days)

	regimes, ok := b3.Regimes(MarketOpen)
	require.True(t, ok)
	assert.Len(t, regimes, 2)
	assert.Nil(t, regimes[0].Since)
}

func TestXHKGBreak(t *testing.T) {
	hk, err := xhkg(holidays.HKEX)
	require.NoError(t, err)
	assert.Equal(t, []string{MarketOpen, BreakStart, BreakEnd, MarketClose}, hk.MarketTimes())

	sessions, err := hk.Schedule(date(t, "2024-01-02"), date(t, "2024-01-02"))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].BreakStart)
	assert.Equal(t, "2024-01-02 12:00:00+08:00", sessions[0].BreakStart.String())
	assert.Equal(t, "2024-01-02 13:00:00+08:00", sessions[0].BreakEnd.String())

	loc := hk.Location()
	open, err := hk.IsOpenAt(at(t, "2024-01-02 12:30", loc))
	require.NoError(t, err)
	assert.False(t, open)
	open, err = hk.IsOpenAt(at(t, "2024-01-02 13:00", loc))
	require.NoError(t, err)
	assert.True(t, open)

	hourly, err := offsets.Hour(1)
	require.NoError(t, err)
	index, err := hk.TradingIndex(date(t, "2024-01-02"), date(t, "2024-01-02"), hourly)
	require.NoError(t, err)
	got := make([]string, len(index))
	for i, v := range index {
		got[i] = v.Clock().String()
	}
	assert.Equal(t, []string{"09:30:00", "10:30:00", "11:30:00", "13:30:00", "14:30:00", "15:30:00"}, got)
}

func TestMarketTimeMutation(t *testing.T) {
	hk, err := xhkg(holidays.HKEX)
	require.NoError(t, err)

	require.NoError(t, hk.AddTime("pre_open", Regime{Time: clock(9, 0)}))
	require.NoError(t, hk.AddTime("overnight", Regime{Time: clock(18, 0), DayOffset: -1}))
	assert.Equal(t, []string{"overnight", "pre_open", MarketOpen, BreakStart, BreakEnd, MarketClose}, hk.MarketTimes())

	err = hk.AddTime("pre_open", Regime{Time: clock(8, 45)})
	assert.ErrorIs(t, err, calerr.ErrPrecondition)

	require.NoError(t, hk.SetTime("pre_open", Regime{Time: clock(16, 30)}))
	assert.Equal(t, []string{"overnight", MarketOpen, BreakStart, BreakEnd, MarketClose, "pre_open"}, hk.MarketTimes())

	assert.ErrorIs(t, hk.RemoveTime(MarketOpen), calerr.ErrPrecondition)
	assert.ErrorIs(t, hk.RemoveTime("missing"), calerr.ErrPrecondition)

	require.NoError(t, hk.RemoveTime(BreakEnd))
	require.NoError(t, hk.RemoveTime("overnight"))
	assert.Equal(t, []string{MarketOpen, MarketClose, "pre_open"}, hk.MarketTimes())

	err = hk.SetTime(BreakStart, Regime{Time: clock(12, 0)})
	assert.ErrorIs(t, err, calerr.ErrPrecondition)
	_, ok := hk.Regimes(BreakStart)
	assert.False(t, ok)

	sessions, err := hk.Schedule(date(t, "2024-01-02"), date(t, "2024-01-02"))
	require.NoError(t, err)
	assert.Nil(t, sessions[0].BreakStart)
}

func TestNewValidation(t *testing.T) {
	open := map[string][]Regime{MarketOpen: always(9, 0), MarketClose: always(17, 0)}
	since := datetime.MustDate(2020, 1, 1)

	cases := []struct {
		name string
		cfg  Config
	}{
		{"no timezone", Config{Name: "X", Times: open}},
		{"no close", Config{Name: "X", Timezone: time.UTC, Times: map[string][]Regime{MarketOpen: always(9, 0)}}},
		{"half break", Config{Name: "X", Timezone: time.UTC, Times: map[string][]Regime{
			MarketOpen: always(9, 0), MarketClose: always(17, 0), BreakStart: always(12, 0),
		}}},
		{"duplicate regime", Config{Name: "X", Timezone: time.UTC, Times: map[string][]Regime{
			MarketOpen:  {{Since: &since, Time: clock(9, 0)}, {Since: &since, Time: clock(10, 0)}},
			MarketClose: always(17, 0),
		}}},
		{"empty regimes", Config{Name: "X", Timezone: time.UTC, Times: map[string][]Regime{MarketOpen: nil, MarketClose: always(17, 0)}}},
		{"reversed years", Config{Name: "X", Timezone: time.UTC, Times: open, FromYear: 2030, ToYear: 2020}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New(c.cfg)
			assert.ErrorIs(t, err, calerr.ErrPrecondition)
		})
	}
}

func TestSpecialTimes(t *testing.T) {
	special := datetime.MustDate(2024, 1, 3)
	c, err := New(Config{
		Name:     "TEST",
		Timezone: time.UTC,
		FromYear: 2024,
		ToYear:   2024,
		Times: map[string][]Regime{
			MarketOpen:  always(9, 0),
			BreakStart:  always(12, 0),
			BreakEnd:    always(13, 0),
			MarketClose: always(17, 0),
		},
		RegularSpecial: Specials{Opens: []Special{{Time: clock(10, 0), Dates: holidays.NewStatic("r", []datetime.Date{special})}}},
		AdhocSpecial: Specials{
			Opens:  []Special{{Time: clock(11, 0), Dates: holidays.NewStatic("a", []datetime.Date{special})}},
			Closes: []Special{{Time: clock(12, 30), Dates: holidays.NewStatic("c", []datetime.Date{datetime.MustDate(2024, 1, 4)})}},
		},
	})
	require.NoError(t, err)

	sessions, err := c.Schedule(special, datetime.MustDate(2024, 1, 5))
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "2024-01-03 11:00:00+00:00", sessions[0].Open.String())
	assert.Equal(t, "2024-01-04 12:30:00+00:00", sessions[1].Close.String())
	assert.Equal(t, "2024-01-04 12:30:00+00:00", sessions[1].BreakEnd.String())
	assert.Equal(t, "2024-01-05 09:00:00+00:00", sessions[2].Open.String())
}

func TestHolidaysHandlerAndArrays(t *testing.T) {
	nyse, err := xnys(holidays.NYSE)
	require.NoError(t, err)

	cbd, err := nyse.Holidays()
	require.NoError(t, err)
	next, err := cbd.Add(datetime.NewDateTime(date(t, "2023-11-22"), datetime.Midnight))
	require.NoError(t, err)
	assert.Equal(t, "2023-11-24", next.Date().String())

	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	arr := nyse.ValidDaysArray(mem, date(t, "2023-11-20"), date(t, "2023-11-27"))
	defer arr.Release()
	assert.Equal(t, 5, arr.Len())
}

func TestNotImplemented(t *testing.T) {
	nyse, err := xnys(holidays.NYSE)
	require.NoError(t, err)
	d := date(t, "2024-01-02")

	_, err = nyse.Convert(nil)
	assert.ErrorIs(t, err, calerr.ErrNotImplemented)
	_, err = nyse.InterruptionsDF(d, d)
	assert.ErrorIs(t, err, calerr.ErrNotImplemented)
	_, err = nyse.TryHolidays()
	assert.ErrorIs(t, err, calerr.ErrNotImplemented)
	_, err = nyse.SpecialDates(MarketClose, d, d)
	assert.ErrorIs(t, err, calerr.ErrNotImplemented)
	_, err = nyse.DaysAtTime([]datetime.Date{d}, MarketOpen)
	assert.ErrorIs(t, err, calerr.ErrNotImplemented)
}

func TestLookupWith(t *testing.T) {
	for _, code := range []string{"xnys", "B3", "XHKG"} {
		c, err := LookupWith(code, nil)
		require.NoError(t, err, code)
		assert.Contains(t, Codes(), c.Name())
	}
	_, err := LookupWith("XLON", nil)
	assert.ErrorIs(t, err, calerr.ErrPrecondition)
}

func TestLookupWithStoredHolidays(t *testing.T) {
	lunar := holidays.NewStatic("HKEX", []datetime.Date{date(t, "2024-02-12"), date(t, "2024-02-13")})
	hk, err := LookupWith("XHKG", holidays.Merge("HKEX", holidays.HKEX, lunar))
	require.NoError(t, err)

	sessions, err := hk.Schedule(date(t, "2024-02-09"), date(t, "2024-02-14"))
	require.NoError(t, err)
	days := make([]string, len(sessions))
	for i, s := range sessions {
		days[i] = s.Date.String()
	}
	assert.Equal(t, []string{"2024-02-09", "2024-02-14"}, days)

	src, err := HolidaySource("hkex")
	require.NoError(t, err)
	assert.Equal(t, "HKEX", src.Name())
	_, err = HolidaySource("XLON")
	assert.ErrorIs(t, err, calerr.ErrPrecondition)
}
