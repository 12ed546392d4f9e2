package market

import (
	"strings"
	"time"

	"github.com/rickar/cal/v2/us"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
	"github.com/guttosm/offsetcal/internal/holidays"
)

func clock(h, m int) datetime.Time { return datetime.MustTime(h, m, 0, 0) }

func always(h, m int) []Regime { return []Regime{{Time: clock(h, m)}} }

// xnys is the New York Stock Exchange: 09:30-16:00 America/New_York, closing
// at 13:00 on the day after Thanksgiving and on Christmas Eve.
func xnys(hol holidays.Source) (*Calendar, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, err
	}
	return New(Config{
		Name:     "XNYS",
		Timezone: loc,
		Holidays: hol,
		Times: map[string][]Regime{
			MarketOpen:  always(9, 30),
			MarketClose: always(16, 0),
		},
		RegularSpecial: Specials{
			Closes: []Special{{
				Time: clock(13, 0),
				Dates: holidays.NewRuleSet("XNYS early close",
					holidays.DayAfter("Day after Thanksgiving", us.ThanksgivingDay),
					holidays.DayOfMonth("Christmas Eve", time.December, 24),
				),
			}},
		},
	})
}

// bvmf is B3 in São Paulo. The session moved to 10:00-17:00 on 2019-11-04.
func bvmf(hol holidays.Source) (*Calendar, error) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return nil, err
	}
	change := datetime.MustDate(2019, 11, 4)
	return New(Config{
		Name:     "BVMF",
		Timezone: loc,
		Holidays: hol,
		Times: map[string][]Regime{
			MarketOpen:  {{Time: clock(11, 0)}, {Since: &change, Time: clock(10, 0)}},
			MarketClose: {{Time: clock(18, 0)}, {Since: &change, Time: clock(17, 0)}},
		},
	})
}

// xhkg is the Hong Kong exchange, with a 12:00-13:00 lunch break. The builtin
// HKEX holidays are Gregorian only; LookupWith merges in the lunar dates.
func xhkg(hol holidays.Source) (*Calendar, error) {
	loc, err := time.LoadLocation("Asia/Hong_Kong")
	if err != nil {
		return nil, err
	}
	return New(Config{
		Name:     "XHKG",
		Timezone: loc,
		Holidays: hol,
		Times: map[string][]Regime{
			MarketOpen:  always(9, 30),
			BreakStart:  always(12, 0),
			BreakEnd:    always(13, 0),
			MarketClose: always(16, 0),
		},
	})
}

type builtin struct {
	holidays holidays.Source
	build    func(holidays.Source) (*Calendar, error)
}

var builtins = map[string]builtin{
	"XNYS": {holidays.NYSE, xnys},
	"NYSE": {holidays.NYSE, xnys},
	"BVMF": {holidays.B3, bvmf},
	"B3":   {holidays.B3, bvmf},
	"XHKG": {holidays.HKEX, xhkg},
	"HKEX": {holidays.HKEX, xhkg},
}

func lookupBuiltin(code string) (builtin, error) {
	b, ok := builtins[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return builtin{}, calerr.Precondition("unknown market %q", code)
	}
	return b, nil
}

// LookupWith builds a fresh builtin calendar by exchange code. Its holidays
// come from hol; a nil hol keeps the exchange's builtin source.
func LookupWith(code string, hol holidays.Source) (*Calendar, error) {
	b, err := lookupBuiltin(code)
	if err != nil {
		return nil, err
	}
	if hol == nil {
		hol = b.holidays
	}
	return b.build(hol)
}

// HolidaySource returns the builtin holiday source of an exchange code.
func HolidaySource(code string) (holidays.Source, error) {
	b, err := lookupBuiltin(code)
	if err != nil {
		return nil, err
	}
	return b.holidays, nil
}

// Codes lists the canonical builtin exchange codes.
func Codes() []string {
	return []string{"BVMF", "XHKG", "XNYS"}
}
