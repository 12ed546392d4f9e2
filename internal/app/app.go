package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/offsetcal/config"
	"github.com/guttosm/offsetcal/internal/api"
	"github.com/guttosm/offsetcal/internal/holidays"
	"github.com/guttosm/offsetcal/internal/logger"
	"github.com/guttosm/offsetcal/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL when STORAGE_ENABLED is set.
//   - Builds the calendar service from the calendar configuration and, with
//     storage, warms its cache with one query.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//
// Without storage only the builtin holiday sources are served and readiness
// does not depend on a database.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	var (
		db   *sql.DB
		repo storage.HolidayRepository
		ping func() error
	)
	if cfg.Storage.Enabled {
		var err error
		db, err = postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		repo = storage.NewHolidayRepository(db)
		ping = db.Ping
	}

	svc, err := NewCalendarService(cfg, repo)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, nil, err
	}

	if repo != nil {
		names := append(holidays.Names(), cfg.Calendar.DefaultHolidays)
		n, err := svc.Warm(context.Background(), names)
		if err != nil {
			logger.L().Warn().Err(err).Msg("calendar warm-up failed; calendars load on first use")
		} else {
			logger.L().Info().Int("calendars", n).Msg("calendar cache warmed")
		}
	}

	handler := api.NewHandler(svc)
	router := api.NewRouter(handler, RouterOptions(cfg))

	api.NewHealthHandler(ping).Register(router)

	logger.L().Info().
		Bool("storage", cfg.Storage.Enabled).
		Str("default_holidays", cfg.Calendar.DefaultHolidays).
		Str("default_tz", cfg.Calendar.DefaultTZ).
		Msg("application initialized")

	cleanup := func() {
		if db != nil {
			_ = db.Close()
		}
	}

	return router, cleanup, nil
}

// RouterOptions maps the server configuration onto router middleware settings.
func RouterOptions(cfg config.Config) api.RouterOptions {
	opts := api.DefaultRouterOptions()
	opts.RateLimit = cfg.Server.RateLimit
	if cfg.Server.RequestTimeout > 0 {
		opts.RequestTimeout = cfg.Server.RequestTimeout
	}
	return opts
}
