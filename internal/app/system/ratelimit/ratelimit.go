// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts requests per key in fixed windows.
// It is safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int           // max requests per window
	duration time.Duration // window duration
	now      func() time.Time
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a new rate limiter.
// limit: maximum requests allowed per duration
// duration: the time window for counting requests
//
// Expired windows are only reclaimed by Prune; callers run it periodically.
func New(limit int, duration time.Duration) *Limiter {
	return &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		now:      time.Now,
	}
}

// Allow checks if a request from the given key should be allowed.
// Returns true if allowed, false if rate limited.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, exists := l.windows[key]

	if !exists || now.After(w.expiresAt) {
		l.windows[key] = &window{
			count:     1,
			expiresAt: now.Add(l.duration),
		}
		return true
	}

	if w.count >= l.limit {
		return false
	}

	w.count++
	return true
}

// Remaining returns how many requests are left for this key in the current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, exists := l.windows[key]
	if !exists || l.now().After(w.expiresAt) {
		return l.limit
	}

	remaining := l.limit - w.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset clears the rate limit for a specific key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// Prune drops expired windows and returns how many it dropped.
func (l *Limiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	n := 0
	for key, w := range l.windows {
		if now.After(w.expiresAt) {
			delete(l.windows, key)
			n++
		}
	}
	return n
}

// ClientIP extracts the client IP from an HTTP request.
// It checks X-Forwarded-For and X-Real-IP headers first (for proxied requests),
// then falls back to RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr might not have a port
		return r.RemoteAddr
	}
	return ip
}

// JoinLimiter throttles join-by-code attempts, which would otherwise let a
// client probe for valid codes. It limits per user and, more loosely, per IP
// so several accounts behind one address cannot multiply the budget.
type JoinLimiter struct {
	userLimiter *Limiter
	ipLimiter   *Limiter
}

// ipFactor scales the per-user limit into the per-IP limit.
const ipFactor = 5

// NewJoinLimiter allows limit joins per user per window.
func NewJoinLimiter(limit int, window time.Duration) *JoinLimiter {
	return &JoinLimiter{
		userLimiter: New(limit, window),
		ipLimiter:   New(limit*ipFactor, window),
	}
}

// Check reports whether a join attempt may proceed, and if not, why.
func (jl *JoinLimiter) Check(r *http.Request, userID string) (bool, string) {
	if !jl.ipLimiter.Allow(ClientIP(r)) {
		return false, "Too many join attempts from this network. Please wait a minute."
	}
	if userID != "" && !jl.userLimiter.Allow(userID) {
		return false, "Too many join attempts. Please wait a minute before trying again."
	}
	return true, ""
}

// Prune drops expired windows from both limiters.
func (jl *JoinLimiter) Prune() int {
	return jl.userLimiter.Prune() + jl.ipLimiter.Prune()
}
