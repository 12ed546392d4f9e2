package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guttosm/offsetcal/internal/datetime"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return p
}

func TestParseHolidays_TableDriven(t *testing.T) {
	validHeader := "HolidayDate;Description\n"

	cases := []struct {
		name    string
		content string
		wantErr bool
		want    []string
	}{
		{name: "iso rows", content: validHeader + "2024-01-01;Confraternização\n2024-04-21;Tiradentes\n", want: []string{"2024-01-01", "2024-04-21"}},
		{name: "br layout", content: validHeader + "25/12/2024;Natal\n", want: []string{"2024-12-25"}},
		{name: "sorted and deduplicated", content: validHeader + "2024-12-25;a\n2024-01-01;b\n25/12/2024;c\n", want: []string{"2024-01-01", "2024-12-25"}},
		{name: "comments and empty description", content: validHeader + "# fixed\n2024-11-15;\n", want: []string{"2024-11-15"}},
		{name: "bom header", content: "\ufeff" + validHeader + "2024-11-20;Consciência Negra\n", want: []string{"2024-11-20"}},
		{name: "header only", content: validHeader, want: nil},
		{name: "bad header order", content: "Description;HolidayDate\n", wantErr: true},
		{name: "bad header length", content: "HolidayDate\n", wantErr: true},
		{name: "bad col count", content: validHeader + "2024-01-01\n", wantErr: true},
		{name: "empty date", content: validHeader + ";Nothing\n", wantErr: true},
		{name: "invalid date", content: validHeader + "2024-02-30;Nope\n", wantErr: true},
		{name: "invalid br date", content: validHeader + "31/02/2024;Nope\n", wantErr: true},
		{name: "empty file", content: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseHolidays(context.Background(), strings.NewReader(tc.content))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
			for i, d := range got {
				if d.String() != tc.want[i] {
					t.Fatalf("got %v want %v", got, tc.want)
				}
			}
		})
	}
}

func TestParseHolidays_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := parseHolidays(ctx, strings.NewReader("HolidayDate;Description\n2024-01-01;x\n")); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestParseHolidayFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "MAYDAY_HOLIDAYS.csv", "HolidayDate;Description\n2023-05-01;Labour\n")

	got, err := parseHolidayFile(context.Background(), path)
	if err != nil {
		t.Fatalf("parseHolidayFile: %v", err)
	}
	if len(got) != 1 || got[0] != datetime.MustDate(2023, 5, 1) {
		t.Fatalf("unexpected dates %v", got)
	}

	if _, err := parseHolidayFile(context.Background(), filepath.Join(dir, "missing.csv")); err == nil {
		t.Fatalf("expected open error")
	}
}
