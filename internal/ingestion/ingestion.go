package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
	"github.com/guttosm/offsetcal/internal/holidays"
	"github.com/guttosm/offsetcal/internal/logger"
	"github.com/guttosm/offsetcal/internal/storage"
)

const (
	fileSuffix         = "_HOLIDAYS.csv"
	defaultMaxParallel = 4
	builtinSource      = "builtin"
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.HolidayRepository {
	return storage.NewHolidayRepository(db)
}

// job is one calendar to persist. load runs inside the worker.
type job struct {
	calendar string
	source   string
	load     func(ctx context.Context) ([]datetime.Date, error)
}

// ProcessDirectory loads every "<CALENDAR>_HOLIDAYS.csv" file of dir into the
// holiday store, one calendar per file.
//
// Behavior:
//   - Calendars already present in seed_log are skipped unless force is set.
//   - With force the stored dates are replaced atomically.
//   - Files run concurrently, at most parallel at a time (default min(4, NumCPU)).
//   - The first failing file cancels the rest and its error is returned.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, parallel int, force bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}

	var jobs []job
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		calendar := strings.ToUpper(strings.TrimSuffix(name, fileSuffix))
		if calendar == "" {
			return fmt.Errorf("file %s: empty calendar name", name)
		}
		path := filepath.Join(dir, name)
		jobs = append(jobs, job{
			calendar: calendar,
			source:   name,
			load: func(ctx context.Context) ([]datetime.Date, error) {
				return parseHolidayFile(ctx, path)
			},
		})
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no *%s files in %s", fileSuffix, dir)
	}

	logger.With("ingestion").Info().Int("files", len(jobs)).Str("dir", dir).Msg("ingestion start")
	return run(ctx, repoCtor(db), jobs, parallel, force)
}

// SeedBuiltin writes the builtin holiday sources named in names, over
// fromYear..toYear, into the holiday store. An empty names seeds every
// builtin source except NONE. Aliases such as XNYS are stored under the
// canonical source name.
func SeedBuiltin(ctx context.Context, db *sql.DB, names []string, fromYear, toYear int, parallel int, force bool) error {
	if fromYear > toYear {
		return calerr.Precondition("holiday years %d..%d are reversed", fromYear, toYear)
	}
	if len(names) == 0 {
		for _, n := range holidays.Names() {
			if n != "NONE" {
				names = append(names, n)
			}
		}
	}

	seen := make(map[string]bool, len(names))
	var jobs []job
	for _, n := range names {
		src, ok := holidays.Lookup(n)
		if !ok {
			return calerr.Precondition("unknown holiday calendar %q", n)
		}
		if seen[src.Name()] {
			continue
		}
		seen[src.Name()] = true
		jobs = append(jobs, job{
			calendar: src.Name(),
			source:   fmt.Sprintf("%s:%d-%d", builtinSource, fromYear, toYear),
			load: func(context.Context) ([]datetime.Date, error) {
				return src.Between(fromYear, toYear), nil
			},
		})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].calendar < jobs[j].calendar })

	logger.With("ingestion").Info().Int("calendars", len(jobs)).Int("from", fromYear).Int("to", toYear).Msg("seed start")
	return run(ctx, repoCtor(db), jobs, parallel, force)
}

func maxParallel(parallel int) int {
	if parallel > 0 {
		return parallel
	}
	if c := runtime.NumCPU(); c < defaultMaxParallel {
		return c
	}
	return defaultMaxParallel
}

// run persists jobs concurrently. errgroup cancels siblings on first error.
func run(ctx context.Context, repo storage.HolidayRepository, jobs []job, parallel int, force bool) error {
	limit := maxParallel(parallel)
	logger.With("ingestion").Info().Int("max_parallel", limit).Bool("force", force).Msg("ingestion configured")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, jb := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			log := logger.With("ingestion").With().Int("idx", i+1).Int("total", len(jobs)).Str("calendar", jb.calendar).Logger()

			// Idempotency: skip if already seeded, unless force
			exists, err := repo.HasCalendar(jb.calendar)
			if err != nil {
				log.Error().Err(err).Msg("check seed log failed")
				return fmt.Errorf("calendar %s: check seed log: %w", jb.calendar, err)
			}
			if exists && !force {
				log.Info().Bool("skipped", true).Msg("already seeded")
				return nil
			}

			dates, err := jb.load(gctx)
			if err != nil {
				log.Error().Str("source", jb.source).Err(err).Msg("load failed")
				return fmt.Errorf("calendar %s: %w", jb.calendar, err)
			}
			if err := repo.ReplaceCalendar(jb.calendar, dates); err != nil {
				log.Error().Err(err).Msg("replace failed")
				return fmt.Errorf("calendar %s: replace: %w", jb.calendar, err)
			}
			if err := repo.UpsertSeedLog(jb.calendar, jb.source, len(dates)); err != nil {
				log.Error().Err(err).Msg("update seed log failed")
				return fmt.Errorf("calendar %s: upsert seed log: %w", jb.calendar, err)
			}
			log.Info().Str("source", jb.source).Int("rows", len(dates)).Dur("elapsed", time.Since(start)).Msg("calendar done")
			return nil
		})
	}

	return g.Wait()
}
