package service

import (
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/guttosm/offsetcal/internal/busday"
	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
	"github.com/guttosm/offsetcal/internal/holidays"
	"github.com/guttosm/offsetcal/internal/logger"
	"github.com/guttosm/offsetcal/internal/market"
	"github.com/guttosm/offsetcal/internal/storage"
)

// calendarCache resolves holiday calendar and market names to immutable
// calendars. Builtin holiday sources are merged with rows stored in the
// repository; concurrent first loads of the same name share one build.
type calendarCache struct {
	repo storage.HolidayRepository
	opts Options

	mu      sync.RWMutex
	busdays map[string]*busday.Calendar
	markets map[string]*market.Calendar
	group   singleflight.Group
}

func newCalendarCache(repo storage.HolidayRepository, opts Options) *calendarCache {
	return &calendarCache{
		repo:    repo,
		opts:    opts,
		busdays: make(map[string]*busday.Calendar),
		markets: make(map[string]*market.Calendar),
	}
}

func (c *calendarCache) businessDays(name string) (*busday.Calendar, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if key == "" {
		key = strings.ToUpper(c.opts.DefaultHolidays)
	}

	c.mu.RLock()
	cal, ok := c.busdays[key]
	c.mu.RUnlock()
	if ok {
		return cal, nil
	}

	v, err, _ := c.group.Do("busday:"+key, func() (any, error) {
		logger.With("calendars").Debug().Str("calendar", key).Msg("calendar cache miss")
		cal, err := c.loadBusinessDays(key)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.busdays[key] = cal
		c.mu.Unlock()
		return cal, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*busday.Calendar), nil
}

// storedName is the repository key of a holiday calendar: the canonical
// source name for builtins and aliases, the name itself otherwise.
func storedName(key string) (holidays.Source, string) {
	if src, ok := holidays.Lookup(key); ok {
		return src, src.Name()
	}
	return nil, key
}

func (c *calendarCache) years() (datetime.Date, datetime.Date, error) {
	from, err := datetime.NewDate(c.opts.FromYear, 1, 1)
	if err != nil {
		return datetime.Date{}, datetime.Date{}, err
	}
	to, err := datetime.NewDate(c.opts.ToYear, 12, 31)
	if err != nil {
		return datetime.Date{}, datetime.Date{}, err
	}
	return from, to, nil
}

func (c *calendarCache) stored(name string) ([]datetime.Date, error) {
	if c.repo == nil {
		return nil, nil
	}
	from, to, err := c.years()
	if err != nil {
		return nil, err
	}
	dates, err := c.repo.ListHolidays(name, from, to)
	if err != nil {
		logger.With("calendars").Error().Err(err).Str("calendar", name).Msg("failed to load stored holidays")
		return nil, err
	}
	return dates, nil
}

// source merges stored dates into the builtin source of key, if any.
func source(key string, builtin holidays.Source, stored []datetime.Date) (holidays.Source, error) {
	switch {
	case builtin == nil && len(stored) == 0:
		return nil, calerr.Precondition("unknown holiday calendar %q", key)
	case builtin == nil:
		return holidays.NewStatic(key, stored), nil
	case len(stored) > 0:
		return holidays.Merge(key, builtin, holidays.NewStatic(key, stored)), nil
	}
	return builtin, nil
}

func (c *calendarCache) loadBusinessDays(key string) (*busday.Calendar, error) {
	_, name := storedName(key)
	stored, err := c.stored(name)
	if err != nil {
		return nil, err
	}
	return c.build(key, stored)
}

func (c *calendarCache) build(key string, stored []datetime.Date) (*busday.Calendar, error) {
	builtin, _ := storedName(key)
	src, err := source(key, builtin, stored)
	if err != nil {
		return nil, err
	}
	cal, err := holidays.Calendar(src, c.opts.WeekMask, c.opts.FromYear, c.opts.ToYear)
	if err != nil {
		return nil, err
	}
	logger.With("calendars").Info().
		Str("calendar", key).
		Bool("builtin", builtin != nil).
		Int("stored", len(stored)).
		Int("holidays", len(cal.Holidays())).
		Msg("calendar loaded")
	return cal, nil
}

// warm loads every calendar in names with a single repository query and
// caches those not cached yet.
func (c *calendarCache) warm(names []string) (int, error) {
	if c.repo == nil || len(names) == 0 {
		return 0, nil
	}
	keys := make(map[string]string, len(names))
	var lookup []string
	for _, n := range names {
		key := strings.ToUpper(strings.TrimSpace(n))
		if key == "" {
			continue
		}
		if _, dup := keys[key]; dup {
			continue
		}
		_, name := storedName(key)
		keys[key] = name
		lookup = append(lookup, name)
	}
	from, to, err := c.years()
	if err != nil {
		return 0, err
	}
	rows, err := c.repo.ListHolidaysFor(lookup, from, to)
	if err != nil {
		return 0, err
	}

	loaded := 0
	for key, name := range keys {
		c.mu.RLock()
		_, ok := c.busdays[key]
		c.mu.RUnlock()
		if ok {
			continue
		}
		cal, err := c.build(key, rows[name])
		if err != nil {
			return loaded, err
		}
		c.mu.Lock()
		c.busdays[key] = cal
		c.mu.Unlock()
		loaded++
	}
	return loaded, nil
}

func (c *calendarCache) market(code string) (*market.Calendar, error) {
	key := strings.ToUpper(strings.TrimSpace(code))

	c.mu.RLock()
	mc, ok := c.markets[key]
	c.mu.RUnlock()
	if ok {
		return mc, nil
	}

	v, err, _ := c.group.Do("market:"+key, func() (any, error) {
		builtin, err := market.HolidaySource(key)
		if err != nil {
			return nil, err
		}
		stored, err := c.stored(builtin.Name())
		if err != nil {
			return nil, err
		}
		src, err := source(builtin.Name(), builtin, stored)
		if err != nil {
			return nil, err
		}
		mc, err := market.LookupWith(key, src)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.markets[key] = mc
		c.mu.Unlock()
		logger.With("calendars").Info().
			Str("market", key).
			Int("stored", len(stored)).
			Msg("market calendar loaded")
		return mc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*market.Calendar), nil
}

// invalidate drops a cached holiday calendar, and every market calendar built
// on it, so the next use reloads them.
func (c *calendarCache) invalidate(name string) {
	key := strings.ToUpper(strings.TrimSpace(name))
	_, canonical := storedName(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.busdays {
		if _, n := storedName(k); k == key || n == canonical {
			delete(c.busdays, k)
		}
	}
	for code := range c.markets {
		if src, err := market.HolidaySource(code); err == nil && src.Name() == canonical {
			delete(c.markets, code)
		}
	}
}
