package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/offsetcal/config"
	"github.com/guttosm/offsetcal/internal/busday"
	"github.com/guttosm/offsetcal/internal/service"
	"github.com/guttosm/offsetcal/internal/storage"
)

// ServiceOptions converts the calendar configuration into service options.
func ServiceOptions(cfg config.Config) (service.Options, error) {
	opts := service.DefaultOptions()

	mask, err := busday.ParseWeekMask(cfg.Calendar.WeekMask)
	if err != nil {
		return opts, fmt.Errorf("invalid weekmask: %w", err)
	}
	opts.WeekMask = mask

	if cfg.Calendar.DefaultTZ != "" {
		loc, err := time.LoadLocation(cfg.Calendar.DefaultTZ)
		if err != nil {
			return opts, fmt.Errorf("invalid default timezone: %w", err)
		}
		opts.DefaultLocation = loc
	}
	if cfg.Calendar.HolidayFrom > 0 {
		opts.FromYear = cfg.Calendar.HolidayFrom
	}
	if cfg.Calendar.HolidayTo > 0 {
		opts.ToYear = cfg.Calendar.HolidayTo
	}
	if cfg.Calendar.DefaultHolidays != "" {
		opts.DefaultHolidays = strings.ToUpper(cfg.Calendar.DefaultHolidays)
	}
	if cfg.Batch.MaxParallel > 0 {
		opts.MaxParallel = cfg.Batch.MaxParallel
	}
	return opts, nil
}

// NewCalendarService builds the calendar service for cfg. repo may be nil.
func NewCalendarService(cfg config.Config, repo storage.HolidayRepository) (service.CalendarService, error) {
	opts, err := ServiceOptions(cfg)
	if err != nil {
		return nil, err
	}
	return service.NewCalendarService(repo, opts), nil
}
