package main

//
//  @title           offsetcal API
//  @version         1.0
//  @description     Calendar-aware date offsets, date ranges and business-day arithmetic.
//  @termsOfService  https://github.com/guttosm/offsetcal
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/offsetcal
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        offsets
//  @tag.description Apply frequency strings to datetimes
//
//  @tag.name        ranges
//  @tag.description Generate date ranges as JSON or Arrow streams
//
//  @tag.name        busdays
//  @tag.description Business-day counting and offsetting over holiday calendars
//
//  @tag.name        markets
//  @tag.description Exchange session schedules
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/guttosm/offsetcal/config"
	_ "github.com/guttosm/offsetcal/docs" // swagger docs
	"github.com/guttosm/offsetcal/internal/app"
	"github.com/guttosm/offsetcal/internal/columnar"
	"github.com/guttosm/offsetcal/internal/datetime"
	"github.com/guttosm/offsetcal/internal/domain/models"
	"github.com/guttosm/offsetcal/internal/ingestion"
	"github.com/guttosm/offsetcal/internal/logger"
	"github.com/guttosm/offsetcal/internal/offsets"
	"github.com/guttosm/offsetcal/internal/service"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown terminates the HTTP server and releases resources once
// SIGINT or SIGTERM is received.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// rangeFlags are the inputs of the range mode.
type rangeFlags struct {
	freq      string
	start     string
	end       string
	periods   int64
	calendar  string
	tz        string
	inclusive string
	format    string
}

// runRange writes the date range described by f to w, one value per line or
// as an Arrow IPC stream.
func runRange(ctx context.Context, w io.Writer, svc service.CalendarService, f rangeFlags) error {
	inclusive, err := offsets.ParseInclusive(f.inclusive)
	if err != nil {
		return err
	}
	q := models.RangeQuery{Freq: f.freq, Calendar: strings.ToUpper(f.calendar), Inclusive: inclusive}
	if f.tz != "" {
		if q.Location, err = time.LoadLocation(f.tz); err != nil {
			return fmt.Errorf("unknown timezone %q: %w", f.tz, err)
		}
	}
	for _, v := range []struct {
		raw string
		dst *datetime.DateTime
	}{{f.start, &q.Start}, {f.end, &q.End}} {
		if v.raw == "" {
			continue
		}
		dt, err := datetime.ParseDateTime(v.raw)
		if err != nil {
			return err
		}
		if q.Location != nil && !dt.IsAware() {
			if dt, err = dt.Localize(q.Location, q.Policy); err != nil {
				return err
			}
		}
		*v.dst = dt
	}
	if f.periods > 0 {
		q.Periods = &f.periods
	}

	switch f.format {
	case "text", "":
		res, err := svc.DateRange(ctx, q)
		if err != nil {
			return err
		}
		for _, v := range res.Values {
			if _, err := fmt.Fprintln(w, v); err != nil {
				return err
			}
		}
		return nil
	case "arrow":
		mem := memory.DefaultAllocator
		arr, err := svc.DateRangeArray(ctx, mem, q)
		if err != nil {
			return err
		}
		defer arr.Release()
		return columnar.WriteStream(w, mem, "value", arr)
	default:
		return fmt.Errorf("unknown format %q", f.format)
	}
}

// splitNames turns "nyse, b3" into ["NYSE", "B3"].
func splitNames(s string) []string {
	var out []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.ToUpper(strings.TrimSpace(n)); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// main is the entry point of the offsetcal application.
//
// Modes (selected via --mode flag):
//   - api:   Starts the REST API.
//   - seed:  Writes holiday calendars to PostgreSQL, from the builtin sources
//     (--source builtin) or from <CALENDAR>_HOLIDAYS.csv files (--source dir).
//   - range: Prints a date range to stdout, as text or an Arrow IPC stream.
func main() {
	ctx := context.Background()

	config.LoadConfig()
	logger.Init()

	mode := flag.String("mode", "api", "Mode: api, seed or range")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")

	source := flag.String("source", "builtin", "Seed source: builtin or dir")
	dir := flag.String("dir", "./data/holidays", "Directory with <CALENDAR>_HOLIDAYS.csv files")
	calendars := flag.String("calendars", "", "Comma separated builtin calendars to seed (empty = all)")
	parallel := flag.Int("parallel", 0, "How many calendars to write concurrently (0=auto)")
	force := flag.Bool("force", false, "Replace calendars that were already seeded")

	var rf rangeFlags
	flag.StringVar(&rf.freq, "freq", "D", "Range frequency, e.g. B, 2BMS, W-MON")
	flag.StringVar(&rf.start, "start", "", "Range start")
	flag.StringVar(&rf.end, "end", "", "Range end")
	flag.Int64Var(&rf.periods, "periods", 0, "Number of range values (0 = unset)")
	flag.StringVar(&rf.calendar, "calendar", "", "Holiday calendar for custom business frequencies")
	flag.StringVar(&rf.tz, "tz", "", "IANA timezone of the range")
	flag.StringVar(&rf.inclusive, "inclusive", "both", "both, neither, left or right")
	flag.StringVar(&rf.format, "format", "text", "Output: text or arrow")
	flag.Parse()

	switch *mode {
	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "seed":
		logger.L().Info().Str("source", *source).Msg("running seed")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		cal := config.AppConfig.Calendar
		switch *source {
		case "builtin":
			err = ingestion.SeedBuiltin(ctx, db, splitNames(*calendars), cal.HolidayFrom, cal.HolidayTo, *parallel, *force)
		case "dir":
			err = ingestion.ProcessDirectory(ctx, *dir, db, *parallel, *force)
		default:
			err = fmt.Errorf("unknown seed source %q", *source)
		}
		if err != nil {
			logger.L().Fatal().Err(err).Msg("seed failed")
		}
		logger.L().Info().Msg("seed completed successfully")

	case "range":
		svc, err := app.NewCalendarService(config.AppConfig, nil)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("service init error")
		}
		if err := runRange(ctx, os.Stdout, svc, rf); err != nil {
			logger.L().Fatal().Err(err).Msg("range failed")
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
