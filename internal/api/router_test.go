package api

import (
	"net/http"
	"testing"
	"time"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	r := setupRouter(realService())

	w := do(r, http.MethodGet, "/api/v1/offset?freq=D&value=2024-01-01", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}

	if w := do(r, http.MethodGet, "/api/v1/unknown", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestNewRouter_RateLimit(t *testing.T) {
	h := NewHandler(realService())
	r := NewRouter(h, RouterOptions{RateLimit: 2, RateWindow: time.Minute, RequestTimeout: time.Second})

	var last int
	for i := 0; i < 3; i++ {
		last = do(r, http.MethodGet, "/api/v1/calendars", nil).Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on the third request, got %d", last)
	}
}
