package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/offsetcal/internal/logger"
)

func TestToString(t *testing.T) {
	if s := toString(nil); s != "" {
		t.Fatalf("nil -> %q, want empty", s)
	}
	if s := toString("abc"); s != "abc" {
		t.Fatalf("string -> %q, want 'abc'", s)
	}
	if s := toString(123); s != "" {
		t.Fatalf("non-string -> %q, want empty", s)
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_PRETTY", "false")
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })

	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(assertErr{})
		c.Status(http.StatusInternalServerError)
	})
	r.POST("/echo", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(b))
	})

	cases := []struct {
		method, path string
		body         io.Reader
		want         int
	}{
		{http.MethodGet, "/ping?x=1", nil, http.StatusOK},
		{http.MethodGet, "/fail", nil, http.StatusInternalServerError},
		{http.MethodPost, "/echo", bytes.NewBufferString("hello"), http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, tc.body))
		if w.Code != tc.want {
			t.Fatalf("%s %s: status %d, want %d", tc.method, tc.path, w.Code, tc.want)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(cases) {
		t.Fatalf("want %d log lines, got %d: %s", len(cases), len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"query":"x=1"`) || !strings.Contains(lines[0], `"component":"http"`) {
		t.Fatalf("unexpected first line %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"error"`) || !strings.Contains(lines[1], `"status":500`) {
		t.Fatalf("5xx must log at error level: %s", lines[1])
	}
}
