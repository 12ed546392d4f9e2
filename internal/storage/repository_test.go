package storage

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guttosm/offsetcal/internal/datetime"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*holidayRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &holidayRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func day(y, m, d int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }

func TestNewHolidayRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewHolidayRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}

func TestListHolidays_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	from := datetime.MustDate(2024, 1, 1)
	to := datetime.MustDate(2024, 12, 31)

	cases := []struct {
		name string
		rows []time.Time
		want []string
	}{
		{name: "two dates", rows: []time.Time{day(2024, 1, 1), day(2024, 12, 25)}, want: []string{"2024-01-01", "2024-12-25"}},
		{name: "empty", rows: nil, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := sqlmock.NewRows([]string{"holiday_date"})
			for _, r := range tc.rows {
				rows.AddRow(r)
			}
			mock.ExpectQuery(`SELECT holiday_date FROM holidays\s+WHERE calendar = \$1 AND holiday_date BETWEEN \$2 AND \$3`).
				WithArgs("NYSE", day(2024, 1, 1), day(2024, 12, 31)).
				WillReturnRows(rows)

			out, err := repo.ListHolidays("NYSE", from, to)
			if err != nil {
				t.Fatalf("ListHolidays: %v", err)
			}
			if len(out) != len(tc.want) {
				t.Fatalf("got %d dates, want %d", len(out), len(tc.want))
			}
			for i, d := range out {
				if d.String() != tc.want[i] {
					t.Fatalf("date[%d]=%s want %s", i, d, tc.want[i])
				}
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestListHolidays_QueryError(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(".*").WillReturnError(dummyErr{})
	if _, err := repo.ListHolidays("NYSE", datetime.MustDate(2024, 1, 1), datetime.MustDate(2024, 2, 1)); err == nil {
		t.Fatalf("expected query error")
	}
}

func TestListHolidaysFor_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	rows := sqlmock.NewRows([]string{"calendar", "holiday_date"}).
		AddRow("B3", day(2024, 2, 12)).
		AddRow("B3", day(2024, 2, 13)).
		AddRow("NYSE", day(2024, 7, 4))
	mock.ExpectQuery(`SELECT calendar, holiday_date FROM holidays\s+WHERE calendar = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg(), day(2024, 1, 1), day(2024, 12, 31)).
		WillReturnRows(rows)

	out, err := repo.ListHolidaysFor([]string{"B3", "NYSE"}, datetime.MustDate(2024, 1, 1), datetime.MustDate(2024, 12, 31))
	if err != nil {
		t.Fatalf("ListHolidaysFor: %v", err)
	}
	if len(out["B3"]) != 2 || len(out["NYSE"]) != 1 {
		t.Fatalf("unexpected grouping: %v", out)
	}
	if out["NYSE"][0].String() != "2024-07-04" {
		t.Fatalf("NYSE date=%s", out["NYSE"][0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCalendarQueries_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT calendar FROM holidays ORDER BY calendar")).
		WillReturnRows(sqlmock.NewRows([]string{"calendar"}).AddRow("B3").AddRow("NYSE"))
	names, err := repo.ListCalendars()
	if err != nil || len(names) != 2 || names[0] != "B3" {
		t.Fatalf("ListCalendars: names=%v err=%v", names, err)
	}

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM holidays WHERE calendar = $1")).
		WithArgs("B3").WillReturnResult(sqlmock.NewResult(0, 13))
	n, err := repo.DeleteCalendar("B3")
	if err != nil || n != 13 {
		t.Fatalf("DeleteCalendar: n=%d err=%v", n, err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM seed_log WHERE calendar = $1)")).
		WithArgs("NYSE").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := repo.HasCalendar("NYSE")
	if err != nil || !ok {
		t.Fatalf("HasCalendar: ok=%v err=%v", ok, err)
	}

	mock.ExpectExec(`INSERT INTO seed_log \(calendar, source, row_count\)`).
		WithArgs("NYSE", "builtin", 10).WillReturnResult(sqlmock.NewResult(1, 1))
	if err := repo.UpsertSeedLog("NYSE", "builtin", 10); err != nil {
		t.Fatalf("UpsertSeedLog: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertHolidaysBatch_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	// pq.CopyIn is driver specific; accept any prepared statement name
	prep := mock.ExpectPrepare(".*")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	dates := []datetime.Date{datetime.MustDate(2024, 1, 1), datetime.MustDate(2024, 12, 25)}
	if err := repo.InsertHolidaysBatch("NYSE", dates); err != nil {
		t.Fatalf("InsertHolidaysBatch: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertHolidaysBatch_ErrorOnBegin(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin().WillReturnError(dummyErr{})
	if err := repo.InsertHolidaysBatch("NYSE", []datetime.Date{datetime.MustDate(2024, 1, 1)}); err == nil {
		t.Fatalf("expected error on begin")
	}
}

func TestInsertHolidaysBatch_ErrorOnRowExec(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(".*")
	prep.ExpectExec().WillReturnError(dummyErr{})
	mock.ExpectRollback()

	if err := repo.InsertHolidaysBatch("NYSE", []datetime.Date{datetime.MustDate(2024, 1, 1)}); err == nil {
		t.Fatalf("expected error on row exec")
	}
}

func TestInsertHolidaysBatch_ErrorOnFinalExec(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(".*")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(".*").WillReturnError(dummyErr{})
	mock.ExpectRollback()

	if err := repo.InsertHolidaysBatch("NYSE", []datetime.Date{datetime.MustDate(2024, 1, 1)}); err == nil {
		t.Fatalf("expected error on final exec")
	}
}

func TestReplaceCalendar_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM holidays WHERE calendar = $1")).
		WithArgs("B3").WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(".*")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.ReplaceCalendar("B3", []datetime.Date{datetime.MustDate(2024, 11, 20)}); err != nil {
		t.Fatalf("ReplaceCalendar: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReplaceCalendar_DeleteError(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM holidays WHERE calendar = $1")).
		WithArgs("B3").WillReturnError(dummyErr{})
	mock.ExpectRollback()

	if err := repo.ReplaceCalendar("B3", nil); err == nil {
		t.Fatalf("expected error on delete")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
