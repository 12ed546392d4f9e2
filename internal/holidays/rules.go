package holidays

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// US is the federal holiday set with weekend observance.
var US Source = NewRuleSet("US",
	us.NewYear,
	us.MlkDay,
	us.PresidentsDay,
	us.MemorialDay,
	us.Juneteenth,
	us.IndependenceDay,
	us.LaborDay,
	us.ColumbusDay,
	us.VeteransDay,
	us.ThanksgivingDay,
	us.ChristmasDay,
)

// NYSE closes on the federal holidays except Columbus and Veterans Day, plus
// Good Friday. A New Year's Day on Saturday is not made up on the Friday before.
var NYSE Source = NewRuleSet("NYSE",
	&cal.Holiday{Name: "New Year's Day", Month: time.January, Day: 1, Func: newYearNoSaturdayShift},
	us.MlkDay,
	us.PresidentsDay,
	EasterOffset("Good Friday", -2),
	us.MemorialDay,
	since(us.Juneteenth, 2022),
	us.IndependenceDay,
	us.LaborDay,
	us.ThanksgivingDay,
	us.ChristmasDay,
)

// B3 is the Brazilian national set plus the Easter-movable market holidays.
var B3 Source = NewRuleSet("B3",
	DayOfMonth("Confraternização Universal", time.January, 1),
	EasterOffset("Carnaval (segunda)", -48),
	EasterOffset("Carnaval (terça)", -47),
	EasterOffset("Sexta-feira Santa", -2),
	DayOfMonth("Tiradentes", time.April, 21),
	DayOfMonth("Dia do Trabalho", time.May, 1),
	EasterOffset("Corpus Christi", 60),
	DayOfMonth("Independência", time.September, 7),
	DayOfMonth("Nossa Senhora Aparecida", time.October, 12),
	DayOfMonth("Finados", time.November, 2),
	DayOfMonth("Proclamação da República", time.November, 15),
	since(DayOfMonth("Consciência Negra", time.November, 20), 2024),
	DayOfMonth("Natal", time.December, 25),
)

// HKEX covers the Hong Kong holidays on the Gregorian calendar. Lunar
// holidays are not rule-computable here; seed them into storage under HKEX
// and they are merged into both the HKEX calendar and the XHKG market.
var HKEX Source = NewRuleSet("HKEX",
	DayOfMonth("New Year's Day", time.January, 1),
	EasterOffset("Good Friday", -2),
	EasterOffset("Easter Monday", 1),
	DayOfMonth("Labour Day", time.May, 1),
	DayOfMonth("HKSAR Establishment Day", time.July, 1),
	DayOfMonth("National Day", time.October, 1),
	DayOfMonth("Christmas Day", time.December, 25),
	DayOfMonth("Boxing Day", time.December, 26),
)

func newYearNoSaturdayShift(_ *cal.Holiday, year int) time.Time {
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	if d.Weekday() == time.Sunday {
		return d.AddDate(0, 0, 1)
	}
	return d
}

func since(h *cal.Holiday, year int) *cal.Holiday {
	c := *h
	c.StartYear = year
	return &c
}
