package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/guttosm/offsetcal/internal/datetime"
)

// expectedHeaders enforces strict column ordering for holiday files.
// If the header doesn't match EXACTLY (order + count), ingestion must fail.
var expectedHeaders = []string{
	"HolidayDate",
	"Description",
}

// brDateLayout is the DD/MM/YYYY form exchanges publish holiday lists in.
const brDateLayout = "02/01/2006"

// parseHolidayFile opens and parses one holiday file.
func parseHolidayFile(ctx context.Context, path string) ([]datetime.Date, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()
	return parseHolidays(ctx, f)
}

// parseHolidays reads a semicolon separated holiday list and returns its
// dates sorted and deduplicated.
//
// It fails on:
//   - header not matching expected order/length
//   - a row with the wrong column count
//   - an empty or malformed date
//
// Lines starting with '#' are ignored. The description column may be empty.
func parseHolidays(ctx context.Context, in io.Reader) ([]datetime.Date, error) {
	r := csv.NewReader(in)
	r.Comma = ';'
	r.Comment = '#'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // checked explicitly below

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return nil, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) != expectedHeaders[i] {
			return nil, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	var out []datetime.Date
	lineNumber := 1

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(expectedHeaders) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(expectedHeaders), len(rec))
		}
		d, err := parseHolidayDate(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		out = append(out, d)
	}

	slices.SortFunc(out, datetime.Date.Compare)
	return slices.Compact(out), nil
}

// parseHolidayDate accepts ISO "YYYY-MM-DD" and "DD/MM/YYYY".
func parseHolidayDate(s string) (datetime.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return datetime.Date{}, errors.New("empty HolidayDate")
	}
	if strings.Contains(s, "/") {
		t, err := time.Parse(brDateLayout, s)
		if err != nil {
			return datetime.Date{}, fmt.Errorf("invalid HolidayDate: %v", err)
		}
		return datetime.DateOf(t), nil
	}
	d, err := datetime.ParseDate(s)
	if err != nil {
		return datetime.Date{}, fmt.Errorf("invalid HolidayDate: %v", err)
	}
	return d, nil
}
