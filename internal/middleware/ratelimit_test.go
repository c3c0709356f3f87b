package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestConnectAllowedCapsPerIP(t *testing.T) {
	rl := NewIPRateLimiter(2, 10, time.Second)
	if !rl.ConnectAllowed("1.1.1.1") || !rl.ConnectAllowed("1.1.1.1") {
		t.Fatalf("first two connections should be allowed")
	}
	if rl.ConnectAllowed("1.1.1.1") {
		t.Fatalf("third connection should be refused")
	}
	if !rl.ConnectAllowed("2.2.2.2") {
		t.Fatalf("other IPs are counted separately")
	}
	rl.Disconnect("1.1.1.1")
	if !rl.ConnectAllowed("1.1.1.1") {
		t.Fatalf("slot should free up after disconnect")
	}
}

func TestMessageAllowedRefills(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := NewIPRateLimiter(1, 3, time.Second)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !rl.MessageAllowed("ip") {
			t.Fatalf("message %d should be allowed", i)
		}
	}
	if rl.MessageAllowed("ip") {
		t.Fatalf("bucket should be empty")
	}

	now = now.Add(time.Second)
	if !rl.MessageAllowed("ip") {
		t.Fatalf("bucket should refill after a window")
	}
}

func TestStreamLeavesRoomForOtherMessages(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := NewIPRateLimiter(4, 120, time.Second)
	rl.now = func() time.Time { return now }

	// a 144 Hz pointer stream for three seconds
	frame := time.Second / 144
	allowed := 0
	for i := 0; i < 3*144; i++ {
		if rl.StreamAllowed("ip") {
			allowed++
		}
		now = now.Add(frame)
	}
	if allowed == 0 || allowed == 3*144 {
		t.Fatalf("allowed %d of %d moves, want the stream throttled", allowed, 3*144)
	}
	if !rl.MessageAllowed("ip") {
		t.Fatalf("release after a move burst was refused")
	}
}

func TestEvictIdleKeepsConnected(t *testing.T) {
	rl := NewIPRateLimiter(1, 1, time.Second)
	rl.ConnectAllowed("live")
	rl.MessageAllowed("idle")
	rl.evictIdle()
	if _, ok := rl.visitors["idle"]; ok {
		t.Fatalf("idle visitor not evicted")
	}
	if _, ok := rl.visitors["live"]; !ok {
		t.Fatalf("connected visitor evicted")
	}
}

func TestRealIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	if got := RealIP(r); got != "10.0.0.1" {
		t.Fatalf("RealIP = %q", got)
	}
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := RealIP(r); got != "203.0.113.7" {
		t.Fatalf("RealIP with XFF = %q", got)
	}
}

func TestHeaders(t *testing.T) {
	h := SecurityHeaders(NoCache(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatalf("missing security headers: %v", rec.Header())
	}
	if rec.Header().Get("Cache-Control") == "" {
		t.Fatalf("missing no-cache headers: %v", rec.Header())
	}
}
