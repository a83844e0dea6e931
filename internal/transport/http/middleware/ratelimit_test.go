package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pms/internal/domain/performance"
	"pms/internal/requestctx"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRateLimitUsesActorKeyBeforeIPFallback(t *testing.T) {
	limited := RateLimit(1, time.Minute)(okHandler())

	actorCtx := requestctx.WithActor(t.Context(), performance.Actor{ID: "emp-1", Role: performance.RoleEmployee})

	first := httptest.NewRequest(http.MethodPost, "/api/v1/contracts/c1/submit", nil).WithContext(actorCtx)
	first.RemoteAddr = "198.51.100.11:2222"
	firstRec := httptest.NewRecorder()
	limited.ServeHTTP(firstRec, first)
	if firstRec.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", firstRec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/contracts/c1/submit", nil).WithContext(actorCtx)
	second.RemoteAddr = "198.51.100.12:3333"
	secondRec := httptest.NewRecorder()
	limited.ServeHTTP(secondRec, second)
	if secondRec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled by actor key, got %d", secondRec.Code)
	}
	if secondRec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestRateLimitFallsBackToIP(t *testing.T) {
	limited := RateLimit(1, time.Minute)(okHandler())

	first := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
	first.RemoteAddr = "203.0.113.10:4444"
	firstRec := httptest.NewRecorder()
	limited.ServeHTTP(firstRec, first)
	if firstRec.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", firstRec.Code)
	}

	other := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
	other.RemoteAddr = "203.0.113.99:4444"
	otherRec := httptest.NewRecorder()
	limited.ServeHTTP(otherRec, other)
	if otherRec.Code != http.StatusNoContent {
		t.Fatalf("expected a different IP to pass, got %d", otherRec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
	second.RemoteAddr = "203.0.113.10:5555"
	secondRec := httptest.NewRecorder()
	limited.ServeHTTP(secondRec, second)
	if secondRec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request from same IP to be throttled, got %d", secondRec.Code)
	}
}

func TestRateLimitDisabledWithZeroLimit(t *testing.T) {
	limited := RateLimit(0, time.Minute)(okHandler())
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected pass-through, got %d", rec.Code)
		}
	}
}

func TestSessionRateLimitIsTighter(t *testing.T) {
	limited := SessionRateLimit(4, time.Minute)(okHandler())
	req := func() int {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
		r.RemoteAddr = "192.0.2.1:1000"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, r)
		return rec.Code
	}
	if code := req(); code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", code)
	}
	if code := req(); code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", code)
	}
}
