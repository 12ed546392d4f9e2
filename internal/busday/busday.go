// Package busday is the business-day engine: rolling, offsetting and counting
// dates against a week mask and a holiday list.
//
// The package functions take Holidays as already sorted, de-duplicated ordinals
// with no entries on disabled weekdays (see NormalizeHolidays). That contract is
// not re-checked on each call; passing anything else gives wrong answers. Build
// a Calendar when the input has not been prepared.
package busday

import (
	"sort"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/civil"
	"github.com/guttosm/offsetcal/internal/datetime"
)

// Holidays is a sorted list of date ordinals.
type Holidays []int64

// HolidayOrdinals converts dates to a sorted ordinal list. Duplicates are kept;
// NormalizeHolidays drops them.
func HolidayOrdinals(dates []datetime.Date) Holidays {
	out := make(Holidays, len(dates))
	for i, d := range dates {
		out[i] = d.Ordinal()
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NormalizeHolidays drops duplicates and holidays falling on disabled weekdays.
// The input must already be sorted.
func NormalizeHolidays(sorted Holidays, mask WeekMask) Holidays {
	out := make(Holidays, 0, len(sorted))
	last := int64(0)
	for _, h := range sorted {
		if h == last {
			continue
		}
		if mask[civil.WeekdayOf(h)] {
			out = append(out, h)
		}
		last = h
	}
	return out
}

// lowerBound is the index of the first holiday >= ord.
func (h Holidays) lowerBound(ord int64) int {
	return sort.Search(len(h), func(i int) bool { return h[i] >= ord })
}

// upperBound is the index of the first holiday > ord.
func (h Holidays) upperBound(ord int64) int {
	return sort.Search(len(h), func(i int) bool { return h[i] > ord })
}

func (h Holidays) contains(ord int64) bool {
	i := h.lowerBound(ord)
	return i < len(h) && h[i] == ord
}

func isBusiness(ord int64, wd int, mask WeekMask, hol Holidays) bool {
	return mask[wd] && !hol.contains(ord)
}

func checkMask(mask WeekMask) (int, error) {
	bd := mask.BusDays()
	if bd == 0 {
		return 0, calerr.Precondition("weekmask %s enables no business days", mask)
	}
	return bd, nil
}

// IsBusinessDay reports whether d is an enabled weekday and not a holiday.
func IsBusinessDay(d datetime.Date, mask WeekMask, hol Holidays) bool {
	ord := d.Ordinal()
	return isBusiness(ord, civil.WeekdayOf(ord), mask, hol)
}

// Roll moves d to a business day according to r and returns it with its weekday.
func Roll(d datetime.Date, r RollRule, mask WeekMask, hol Holidays) (datetime.Date, datetime.Weekday, error) {
	if _, err := checkMask(mask); err != nil {
		return datetime.Date{}, 0, err
	}
	ord, wd, err := rollOrdinal(d.Ordinal(), r, mask, hol)
	if err != nil {
		return datetime.Date{}, 0, err
	}
	out, err := datetime.DateFromOrdinal(ord)
	return out, datetime.Weekday(wd), err
}

func rollOrdinal(ord int64, r RollRule, mask WeekMask, hol Holidays) (int64, int, error) {
	wd := civil.WeekdayOf(ord)
	if isBusiness(ord, wd, mask, hol) {
		return ord, wd, nil
	}
	start, startWd := ord, wd
	forward := func() {
		for {
			ord++
			wd = (wd + 1) % 7
			if isBusiness(ord, wd, mask, hol) {
				return
			}
		}
	}
	backward := func() {
		for {
			ord--
			wd = (wd + 6) % 7
			if isBusiness(ord, wd, mask, hol) {
				return
			}
		}
	}
	switch r {
	case Following, ModifiedFollowing:
		forward()
		if r == ModifiedFollowing && monthOf(ord) != monthOf(start) {
			ord, wd = start, startWd
			backward()
		}
	case Preceding, ModifiedPreceding:
		backward()
		if r == ModifiedPreceding && monthOf(ord) != monthOf(start) {
			ord, wd = start, startWd
			forward()
		}
	default:
		d, _ := datetime.DateFromOrdinal(start)
		return 0, 0, calerr.Precondition("%s is not a business day", d)
	}
	return ord, wd, nil
}

func monthOf(ord int64) int {
	_, m, _ := civil.OrdinalToYMD(ord)
	return m
}

// Offset rolls d with r and then moves n business days. n == 0 only rolls.
// Whole weeks are skipped in one jump and the holidays inside the jump are
// folded back into the remaining count, so the walk that follows is bounded
// by the week length plus the holidays crossed.
func Offset(d datetime.Date, n int64, r RollRule, mask WeekMask, hol Holidays) (datetime.Date, error) {
	bd, err := checkMask(mask)
	if err != nil {
		return datetime.Date{}, err
	}
	if n > civil.MaxOrdinal || n < -civil.MaxOrdinal {
		return datetime.Date{}, calerr.Range("business day offset %d exceeds the date range", n)
	}
	ord, wd, err := rollOrdinal(d.Ordinal(), r, mask, hol)
	if err != nil {
		return datetime.Date{}, err
	}
	perWeek := int64(bd)

	switch {
	case n > 0:
		begin := hol.lowerBound(ord)
		ord += (n / perWeek) * 7
		n %= perWeek
		next := begin + sort.Search(len(hol)-begin, func(i int) bool { return hol[begin+i] > ord })
		n += int64(next - begin)
		for n > 0 {
			ord++
			wd = (wd + 1) % 7
			if isBusiness(ord, wd, mask, hol) {
				n--
			}
		}
	case n < 0:
		end := hol.upperBound(ord)
		ord += (n / perWeek) * 7
		n %= perWeek
		prev := sort.Search(end, func(i int) bool { return hol[i] >= ord })
		n -= int64(end - prev)
		for n < 0 {
			ord--
			wd = (wd + 6) % 7
			if isBusiness(ord, wd, mask, hol) {
				n++
			}
		}
	}
	return datetime.DateFromOrdinal(ord)
}

// Count returns the number of business days in the half-open range
// [begin, end). When begin is after end the bounds are swapped and the result
// negated.
func Count(begin, end datetime.Date, mask WeekMask, hol Holidays) (int64, error) {
	bd, err := checkMask(mask)
	if err != nil {
		return 0, err
	}
	b, e := begin.Ordinal(), end.Ordinal()
	if b == e {
		return 0, nil
	}
	sign := int64(1)
	if b > e {
		b, e = e, b
		sign = -1
	}

	count := -int64(hol.lowerBound(e) - hol.lowerBound(b))
	weeks := (e - b) / 7
	count += weeks * int64(bd)
	b += weeks * 7
	for wd := civil.WeekdayOf(b); b < e; b++ {
		if mask[wd] {
			count++
		}
		wd = (wd + 1) % 7
	}
	return sign * count, nil
}
