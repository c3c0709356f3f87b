package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

const cleanupInterval = 5 * time.Minute

type visitor struct {
	connections int
	tokens      int
	lastRefill  time.Time
}

// IPRateLimiter tracks per-IP connection counts and message rates.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time

	maxConnsPerIP int
	msgRate       int
	msgWindow     time.Duration
}

// NewIPRateLimiter creates a rate limiter.
//   - maxConnsPerIP: max simultaneous WebSocket connections per IP
//   - msgRate: max messages allowed per msgWindow
//   - msgWindow: time window for message rate
//
// Call Run to evict idle entries.
func NewIPRateLimiter(maxConnsPerIP, msgRate int, msgWindow time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		visitors:      make(map[string]*visitor),
		now:           time.Now,
		maxConnsPerIP: maxConnsPerIP,
		msgRate:       msgRate,
		msgWindow:     msgWindow,
	}
}

// ConnectAllowed checks if an IP can open a new connection.
// If allowed, increments the connection count and returns true.
func (rl *IPRateLimiter) ConnectAllowed(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v := rl.visitor(ip)
	if v.connections >= rl.maxConnsPerIP {
		return false
	}
	v.connections++
	return true
}

// Disconnect decrements the connection count for an IP.
func (rl *IPRateLimiter) Disconnect(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		return
	}
	if v.connections > 0 {
		v.connections--
	}
}

// MessageAllowed is a token bucket refilling msgRate tokens per msgWindow.
func (rl *IPRateLimiter) MessageAllowed(ip string) bool {
	return rl.take(ip, 0)
}

// StreamAllowed is MessageAllowed for high-frequency messages that may be
// dropped, such as pointer moves. It stops short of the last quarter of the
// bucket so a burst of them never starves the message that follows.
func (rl *IPRateLimiter) StreamAllowed(ip string) bool {
	return rl.take(ip, rl.msgRate/4)
}

// take spends one token if more than reserve remain.
func (rl *IPRateLimiter) take(ip string, reserve int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v := rl.visitor(ip)
	now := rl.now()
	if elapsed := now.Sub(v.lastRefill); elapsed >= rl.msgWindow {
		windows := int(elapsed / rl.msgWindow)
		v.tokens = min(v.tokens+windows*rl.msgRate, rl.msgRate)
		v.lastRefill = v.lastRefill.Add(time.Duration(windows) * rl.msgWindow)
	}

	if v.tokens <= reserve {
		return false
	}
	v.tokens--
	return true
}

// visitor returns the entry for ip, creating a full bucket. Caller holds mu.
func (rl *IPRateLimiter) visitor(ip string) *visitor {
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{tokens: rl.msgRate, lastRefill: rl.now()}
		rl.visitors[ip] = v
	}
	return v
}

// Run evicts entries without live connections until ctx is done.
func (rl *IPRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.evictIdle()
		case <-ctx.Done():
			return
		}
	}
}

func (rl *IPRateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if v.connections <= 0 {
			delete(rl.visitors, ip)
		}
	}
}

// RealIP extracts the client IP from the request.
// Checks X-Forwarded-For (for reverse proxies) then RemoteAddr.
func RealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if comma := strings.Index(xff, ","); comma > 0 {
			return strings.TrimSpace(xff[:comma])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
