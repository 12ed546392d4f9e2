package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/guttosm/offsetcal/internal/columnar"
	"github.com/guttosm/offsetcal/internal/service"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	// Give server a moment to start
	time.Sleep(50 * time.Millisecond)

	// Shutdown quickly with short timeout and no-op cleanup
	_, cancel := context.WithCancel(context.Background())
	go func() {
		// trigger gracefulShutdown select by simulating signal via closing after a brief delay
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	// We cannot send OS signals easily here; instead, directly call Shutdown to simulate graceful flow.
	// Verify it doesn't panic and completes.
	shutdownCtx, c := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer c()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	// Use a server that responds immediately
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{}, 1)
	go func() {
		ctx := context.Background()
		gracefulShutdown(ctx, srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	// Send SIGTERM to current process
	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
		// success
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

func testService() service.CalendarService {
	opts := service.DefaultOptions()
	opts.FromYear, opts.ToYear = 2020, 2030
	return service.NewCalendarService(nil, opts)
}

func TestRunRange_Text(t *testing.T) {
	var buf bytes.Buffer
	err := runRange(context.Background(), &buf, testService(), rangeFlags{freq: "B", start: "2024-01-05", periods: 3, format: "text"})
	if err != nil {
		t.Fatalf("runRange: %v", err)
	}
	want := "2024-01-05 00:00:00\n2024-01-08 00:00:00\n2024-01-09 00:00:00\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestRunRange_Arrow(t *testing.T) {
	svc := testService()
	f := rangeFlags{freq: "D", start: "2024-03-09", periods: 3, tz: "America/New_York", format: "arrow"}

	var buf bytes.Buffer
	if err := runRange(context.Background(), &buf, svc, f); err != nil {
		t.Fatalf("runRange: %v", err)
	}
	got, err := columnar.ReadTimestampStream(&buf, memory.DefaultAllocator)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}

	var text bytes.Buffer
	f.format = "text"
	if err := runRange(context.Background(), &text, svc, f); err != nil {
		t.Fatalf("runRange text: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(text.String()), "\n")
	if len(got) != 3 || len(lines) != 3 {
		t.Fatalf("got %d arrow values and %d lines, want 3", len(got), len(lines))
	}
	for i, v := range got {
		if v.String() != lines[i] {
			t.Fatalf("value %d: arrow %s text %s", i, v, lines[i])
		}
	}
}

func TestRunRange_Errors(t *testing.T) {
	cases := []struct {
		name string
		f    rangeFlags
	}{
		{name: "bad inclusive", f: rangeFlags{freq: "D", start: "2024-01-01", periods: 2, inclusive: "middle"}},
		{name: "bad timezone", f: rangeFlags{freq: "D", start: "2024-01-01", periods: 2, tz: "Mars/Base"}},
		{name: "bad start", f: rangeFlags{freq: "D", start: "yesterday", periods: 2}},
		{name: "bad frequency", f: rangeFlags{freq: "XYZ", start: "2024-01-01", periods: 2}},
		{name: "underspecified", f: rangeFlags{freq: "D", start: "2024-01-01"}},
		{name: "unknown format", f: rangeFlags{freq: "D", start: "2024-01-01", periods: 2, format: "xml"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := runRange(context.Background(), &bytes.Buffer{}, testService(), tc.f); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestSplitNames(t *testing.T) {
	got := splitNames(" nyse, b3 ,,xhkg")
	if strings.Join(got, ",") != "NYSE,B3,XHKG" {
		t.Fatalf("got %v", got)
	}
	if splitNames("") != nil {
		t.Fatalf("empty input must give nil")
	}
}
