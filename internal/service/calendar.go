package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/offsetcal/internal/busday"
	"github.com/guttosm/offsetcal/internal/columnar"
	"github.com/guttosm/offsetcal/internal/datetime"
	"github.com/guttosm/offsetcal/internal/domain/models"
	"github.com/guttosm/offsetcal/internal/holidays"
	"github.com/guttosm/offsetcal/internal/logger"
	"github.com/guttosm/offsetcal/internal/market"
	"github.com/guttosm/offsetcal/internal/offsets"
	"github.com/guttosm/offsetcal/internal/storage"
)

// CalendarService exposes offset arithmetic, date ranges and business-day
// computations over named holiday calendars.
type CalendarService interface {
	ApplyOffset(ctx context.Context, q models.OffsetQuery) (*models.OffsetResult, error)
	ApplyBatch(ctx context.Context, qs []models.OffsetQuery) ([]models.BatchItem, error)
	DateRange(ctx context.Context, q models.RangeQuery) (*models.RangeResult, error)
	DateRangeArray(ctx context.Context, mem memory.Allocator, q models.RangeQuery) (*array.Timestamp, error)
	CountBusinessDays(ctx context.Context, calendar string, begin, end datetime.Date) (int64, error)
	OffsetBusinessDays(ctx context.Context, calendar string, d datetime.Date, n int64, roll busday.RollRule) (datetime.Date, error)
	LastBusinessDays(ctx context.Context, calendar string, n int, from datetime.Date) ([]datetime.Date, error)
	OffsetColumn(ctx context.Context, q models.ColumnQuery) ([]datetime.DateTime, error)
	SearchRange(ctx context.Context, mem memory.Allocator, q models.RangeQuery, v datetime.DateTime, side columnar.Side) (int, error)
	Schedule(ctx context.Context, code string, start, end datetime.Date) ([]market.Session, error)
	ValidDays(ctx context.Context, code string, start, end datetime.Date) ([]datetime.Date, error)
	ValidDaysArray(ctx context.Context, mem memory.Allocator, code string, start, end datetime.Date) (*array.Date32, error)
	SearchValidDays(ctx context.Context, mem memory.Allocator, code string, start, end, d datetime.Date, side columnar.Side) (int, error)
	TradingIndex(ctx context.Context, code string, start, end datetime.Date, freq string) ([]datetime.DateTime, error)
	IsOpen(ctx context.Context, code string, at datetime.DateTime) (bool, datetime.DateTime, error)
	Calendars(ctx context.Context) ([]string, error)
	Warm(ctx context.Context, names []string) (int, error)
	Reload(name string)
}

// Options carries the calendar defaults read from configuration.
type Options struct {
	WeekMask        busday.WeekMask
	FromYear        int
	ToYear          int
	DefaultHolidays string
	DefaultLocation *time.Location
	MaxParallel     int
}

// DefaultOptions matches the configuration defaults.
func DefaultOptions() Options {
	return Options{
		WeekMask:        busday.DefaultWeekMask,
		FromYear:        1970,
		ToYear:          2100,
		DefaultHolidays: "NYSE",
		MaxParallel:     8,
	}
}

type calendarService struct {
	repo storage.HolidayRepository
	opts Options
	cals *calendarCache
}

// NewCalendarService builds the service. repo may be nil, in which case only
// builtin holiday sources are available.
func NewCalendarService(repo storage.HolidayRepository, opts Options) CalendarService {
	if opts.MaxParallel < 1 {
		opts.MaxParallel = 1
	}
	if opts.DefaultHolidays == "" {
		opts.DefaultHolidays = "NONE"
	}
	return &calendarService{repo: repo, opts: opts, cals: newCalendarCache(repo, opts)}
}

func (s *calendarService) handler(freq, calendar string, loc *time.Location, normalize bool, policy datetime.Policy) (offsets.Handler, error) {
	cal, err := s.cals.businessDays(calendar)
	if err != nil {
		return nil, err
	}
	opts := []offsets.Option{offsets.WithCalendar(cal), offsets.WithPolicy(policy)}
	if loc != nil {
		opts = append(opts, offsets.WithTimezone(loc))
	}
	if normalize {
		opts = append(opts, offsets.WithNormalize())
	}
	return offsets.Parse(freq, opts...)
}

func (s *calendarService) ApplyOffset(ctx context.Context, q models.OffsetQuery) (*models.OffsetResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, err := s.handler(q.Freq, q.Calendar, q.Timezone, q.Normalize, q.Policy)
	if err != nil {
		return nil, err
	}
	out, err := h.Add(q.Value)
	if err != nil {
		return nil, err
	}
	return &models.OffsetResult{
		Input:    q.Value,
		Output:   out,
		Freq:     h.Code(),
		Name:     h.Name(),
		OnOffset: h.IsOnOffset(q.Value),
	}, nil
}

// ApplyBatch evaluates qs concurrently, at most MaxParallel at a time. A failing
// query is reported in its own item; the returned error is only set when ctx
// ends before every query ran.
func (s *calendarService) ApplyBatch(ctx context.Context, qs []models.OffsetQuery) ([]models.BatchItem, error) {
	items := make([]models.BatchItem, len(qs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxParallel)

	start := time.Now()
	for i, q := range qs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.ApplyOffset(gctx, q)
			items[i] = models.BatchItem{Index: i, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, it := range items {
		if it.Err != nil {
			failed++
		}
	}
	logger.With("calendar_service").Debug().
		Int("size", len(qs)).
		Int("failed", failed).
		Int("max_parallel", s.opts.MaxParallel).
		Dur("elapsed", time.Since(start)).
		Msg("offset batch done")
	return items, nil
}

func (s *calendarService) DateRange(ctx context.Context, q models.RangeQuery) (*models.RangeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, err := s.handler(q.Freq, q.Calendar, nil, false, q.Policy)
	if err != nil {
		return nil, err
	}
	loc := s.rangeLocation(q)
	values, err := offsets.DateRange(offsets.RangeSpec{
		Start:     q.Start,
		End:       q.End,
		Periods:   q.Periods,
		Freq:      h,
		Location:  loc,
		Policy:    q.Policy,
		Normalize: q.Normalize,
		Inclusive: q.Inclusive,
	})
	if err != nil {
		return nil, err
	}
	return &models.RangeResult{Freq: h.Code(), Values: values}, nil
}

// rangeLocation is the zone DateRange places naive endpoints in.
func (s *calendarService) rangeLocation(q models.RangeQuery) *time.Location {
	if q.Location == nil && !q.Start.IsAware() && !q.End.IsAware() {
		return s.opts.DefaultLocation
	}
	return q.Location
}

// DateRangeArray is DateRange as an Arrow timestamp array. The caller releases it.
func (s *calendarService) DateRangeArray(ctx context.Context, mem memory.Allocator, q models.RangeQuery) (*array.Timestamp, error) {
	res, err := s.DateRange(ctx, q)
	if err != nil {
		return nil, err
	}
	return columnar.TimestampArray(mem, res.Values)
}

// SearchRange returns where v would be inserted into the range q describes.
// A naive v is read in the zone of the range.
func (s *calendarService) SearchRange(ctx context.Context, mem memory.Allocator, q models.RangeQuery, v datetime.DateTime, side columnar.Side) (int, error) {
	arr, err := s.DateRangeArray(ctx, mem, q)
	if err != nil {
		return 0, err
	}
	defer arr.Release()
	if loc := s.rangeLocation(q); loc != nil && !v.IsAware() {
		if v, err = v.Localize(loc, q.Policy); err != nil {
			return 0, err
		}
	}
	return columnar.SearchSorted(arr, v, side)
}

// OffsetColumn applies one frequency to every value of a column. Zero values
// stay zero.
func (s *calendarService) OffsetColumn(ctx context.Context, q models.ColumnQuery) ([]datetime.DateTime, error) {
	h, err := s.handler(q.Freq, q.Calendar, nil, q.Normalize, q.Policy)
	if err != nil {
		return nil, err
	}
	out := make([]datetime.DateTime, len(q.Values))
	for i, v := range q.Values {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if v.IsZero() {
			continue
		}
		if out[i], err = h.Add(v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *calendarService) CountBusinessDays(ctx context.Context, calendar string, begin, end datetime.Date) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	cal, err := s.cals.businessDays(calendar)
	if err != nil {
		return 0, err
	}
	return cal.Count(begin, end)
}

func (s *calendarService) OffsetBusinessDays(ctx context.Context, calendar string, d datetime.Date, n int64, roll busday.RollRule) (datetime.Date, error) {
	if err := ctx.Err(); err != nil {
		return datetime.Date{}, err
	}
	cal, err := s.cals.businessDays(calendar)
	if err != nil {
		return datetime.Date{}, err
	}
	return cal.Offset(d, n, roll)
}

// LastBusinessDays lists the n business days on or before from, most recent first.
func (s *calendarService) LastBusinessDays(ctx context.Context, calendar string, n int, from datetime.Date) ([]datetime.Date, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cal, err := s.cals.businessDays(calendar)
	if err != nil {
		return nil, err
	}
	return holidays.LastNBusinessDays(cal, n, from)
}

func (s *calendarService) market(ctx context.Context, code string) (*market.Calendar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.cals.market(code)
}

func (s *calendarService) Schedule(ctx context.Context, code string, start, end datetime.Date) ([]market.Session, error) {
	mc, err := s.market(ctx, code)
	if err != nil {
		return nil, err
	}
	return mc.Schedule(start, end)
}

func (s *calendarService) ValidDays(ctx context.Context, code string, start, end datetime.Date) ([]datetime.Date, error) {
	mc, err := s.market(ctx, code)
	if err != nil {
		return nil, err
	}
	return mc.ValidDays(start, end), nil
}

// ValidDaysArray is ValidDays as an Arrow date32 array. The caller releases it.
func (s *calendarService) ValidDaysArray(ctx context.Context, mem memory.Allocator, code string, start, end datetime.Date) (*array.Date32, error) {
	mc, err := s.market(ctx, code)
	if err != nil {
		return nil, err
	}
	return mc.ValidDaysArray(mem, start, end), nil
}

// SearchValidDays returns where d would be inserted into the trading days
// from start to end.
func (s *calendarService) SearchValidDays(ctx context.Context, mem memory.Allocator, code string, start, end, d datetime.Date, side columnar.Side) (int, error) {
	arr, err := s.ValidDaysArray(ctx, mem, code, start, end)
	if err != nil {
		return 0, err
	}
	defer arr.Release()
	return columnar.SearchSortedDates(arr, d, side)
}

// TradingIndex spaces freq (a tick such as "30min" or "h") through every
// session from start to end.
func (s *calendarService) TradingIndex(ctx context.Context, code string, start, end datetime.Date, freq string) ([]datetime.DateTime, error) {
	mc, err := s.market(ctx, code)
	if err != nil {
		return nil, err
	}
	h, err := offsets.Parse(freq)
	if err != nil {
		return nil, err
	}
	return mc.TradingIndex(start, end, h)
}

// IsOpen reports whether the market trades at at. A naive at is read on the
// market's wall clock; the aware instant checked is returned.
func (s *calendarService) IsOpen(ctx context.Context, code string, at datetime.DateTime) (bool, datetime.DateTime, error) {
	mc, err := s.market(ctx, code)
	if err != nil {
		return false, datetime.DateTime{}, err
	}
	if !at.IsAware() {
		if at, err = at.Localize(mc.Location(), datetime.Policy{}); err != nil {
			return false, datetime.DateTime{}, err
		}
	}
	open, err := mc.IsOpenAt(at)
	return open, at, err
}

// Calendars lists builtin holiday sources and calendars found in storage.
func (s *calendarService) Calendars(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	set := make(map[string]struct{})
	for _, name := range holidays.Names() {
		set[name] = struct{}{}
	}
	if s.repo != nil {
		stored, err := s.repo.ListCalendars()
		if err != nil {
			return nil, err
		}
		for _, name := range stored {
			set[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Warm preloads the named holiday calendars with one repository query. It is a
// no-op without a repository.
func (s *calendarService) Warm(ctx context.Context, names []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.cals.warm(names)
}

// Reload forgets a cached holiday calendar and the market calendars built on
// it, so rows seeded since are picked up.
func (s *calendarService) Reload(name string) {
	s.cals.invalidate(name)
	logger.With("calendar_service").Info().Str("calendar", strings.ToUpper(name)).Msg("calendar reloaded")
}
