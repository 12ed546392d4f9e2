package storage

import (
	"database/sql"
	"time"

	pq "github.com/lib/pq"

	"github.com/guttosm/offsetcal/internal/datetime"
)

// HolidayRepository defines contract for holiday calendar persistence.
type HolidayRepository interface {
	InsertHolidaysBatch(calendar string, dates []datetime.Date) error
	ReplaceCalendar(calendar string, dates []datetime.Date) error
	ListHolidays(calendar string, from, to datetime.Date) ([]datetime.Date, error)
	ListHolidaysFor(calendars []string, from, to datetime.Date) (map[string][]datetime.Date, error)
	ListCalendars() ([]string, error)
	DeleteCalendar(calendar string) (int64, error)
	HasCalendar(calendar string) (bool, error)
	UpsertSeedLog(calendar, source string, rowCount int) error
}

type holidayRepository struct {
	db *sql.DB
}

func NewHolidayRepository(db *sql.DB) HolidayRepository {
	return &holidayRepository{db: db}
}

func sqlDate(d datetime.Date) time.Time { return d.Time(time.UTC) }

// InsertHolidaysBatch copies dates into the holidays table in a single transaction.
func (r *holidayRepository) InsertHolidaysBatch(calendar string, dates []datetime.Date) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if err := copyHolidays(tx, calendar, dates); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ReplaceCalendar swaps every stored date of calendar for dates atomically.
func (r *holidayRepository) ReplaceCalendar(calendar string, dates []datetime.Date) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM holidays WHERE calendar = $1`, calendar); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := copyHolidays(tx, calendar, dates); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func copyHolidays(tx *sql.Tx, calendar string, dates []datetime.Date) error {
	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(pq.CopyIn("holidays", "calendar", "holiday_date"))
	if err != nil {
		return err
	}
	for _, d := range dates {
		if _, err := stmt.Exec(calendar, sqlDate(d)); err != nil {
			_ = stmt.Close()
			return err
		}
	}
	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		return err
	}
	return stmt.Close()
}

// ListHolidays returns the stored dates of calendar between from and to inclusive.
func (r *holidayRepository) ListHolidays(calendar string, from, to datetime.Date) ([]datetime.Date, error) {
	rows, err := r.db.Query(`
		SELECT holiday_date FROM holidays
		WHERE calendar = $1 AND holiday_date BETWEEN $2 AND $3
		ORDER BY holiday_date
	`, calendar, sqlDate(from), sqlDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []datetime.Date
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, datetime.DateOf(d))
	}
	return out, rows.Err()
}

// ListHolidaysFor loads several calendars in one query.
func (r *holidayRepository) ListHolidaysFor(calendars []string, from, to datetime.Date) (map[string][]datetime.Date, error) {
	rows, err := r.db.Query(`
		SELECT calendar, holiday_date FROM holidays
		WHERE calendar = ANY($1) AND holiday_date BETWEEN $2 AND $3
		ORDER BY calendar, holiday_date
	`, pq.Array(calendars), sqlDate(from), sqlDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]datetime.Date, len(calendars))
	for rows.Next() {
		var (
			name string
			d    time.Time
		)
		if err := rows.Scan(&name, &d); err != nil {
			return nil, err
		}
		out[name] = append(out[name], datetime.DateOf(d))
	}
	return out, rows.Err()
}

// ListCalendars returns the distinct calendar names with stored holidays.
func (r *holidayRepository) ListCalendars() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT calendar FROM holidays ORDER BY calendar`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// DeleteCalendar removes all dates of calendar and reports how many were deleted.
func (r *holidayRepository) DeleteCalendar(calendar string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM holidays WHERE calendar = $1`, calendar)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// HasCalendar checks if a calendar was already seeded.
func (r *holidayRepository) HasCalendar(calendar string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM seed_log WHERE calendar = $1)`, calendar).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertSeedLog records (or updates) where a calendar's rows came from.
func (r *holidayRepository) UpsertSeedLog(calendar, source string, rowCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO seed_log (calendar, source, row_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (calendar)
		DO UPDATE SET source = EXCLUDED.source,
					  row_count = EXCLUDED.row_count,
					  seeded_at = NOW()
	`, calendar, source, rowCount)
	return err
}
