package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

// fakeClock returns a controllable time source.
func fakeClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestLimiter_Allow(t *testing.T) {
	l := New(3, time.Minute)
	clock, advance := fakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	l.now = clock

	for i := 0; i < 3; i++ {
		if !l.Allow("u1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("u1") {
		t.Error("4th request should be limited")
	}
	if !l.Allow("u2") {
		t.Error("other keys should be unaffected")
	}
	if got := l.Remaining("u1"); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}

	advance(time.Minute + time.Second)
	if !l.Allow("u1") {
		t.Error("request after window should be allowed")
	}
	if got := l.Remaining("u1"); got != 2 {
		t.Errorf("Remaining = %d, want 2", got)
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := New(1, time.Minute)
	l.Allow("u1")
	if l.Allow("u1") {
		t.Fatal("second request should be limited")
	}
	l.Reset("u1")
	if !l.Allow("u1") {
		t.Error("request after Reset should be allowed")
	}
}

func TestLimiter_Prune(t *testing.T) {
	l := New(5, time.Minute)
	clock, advance := fakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	l.now = clock

	l.Allow("a")
	l.Allow("b")
	advance(30 * time.Second)
	l.Allow("c")
	advance(45 * time.Second)

	if n := l.Prune(); n != 2 {
		t.Errorf("Prune = %d, want 2", n)
	}
	if got := len(l.windows); got != 1 {
		t.Errorf("windows left = %d, want 1", got)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff, xri   string
		remoteAddr string
		want       string
	}{
		{"forwarded first hop", "203.0.113.5, 10.0.0.1", "", "10.0.0.2:1234", "203.0.113.5"},
		{"real ip", "", " 198.51.100.7 ", "10.0.0.2:1234", "198.51.100.7"},
		{"remote with port", "", "", "192.0.2.1:5555", "192.0.2.1"},
		{"remote without port", "", "", "192.0.2.1", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/groups/join", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJoinLimiter_Check(t *testing.T) {
	jl := NewJoinLimiter(2, time.Minute)
	r := httptest.NewRequest("POST", "/groups/join", nil)

	for i := 0; i < 2; i++ {
		if ok, reason := jl.Check(r, "u1"); !ok {
			t.Fatalf("attempt %d blocked: %s", i+1, reason)
		}
	}
	ok, reason := jl.Check(r, "u1")
	if ok {
		t.Fatal("third attempt should be blocked")
	}
	if reason == "" {
		t.Error("expected a reason when blocked")
	}

	if ok, _ := jl.Check(r, "u2"); !ok {
		t.Error("another user on the same IP should still be allowed")
	}
}

func TestJoinLimiter_IPBudget(t *testing.T) {
	jl := NewJoinLimiter(1, time.Minute)
	r := httptest.NewRequest("POST", "/groups/join", nil)

	allowed := 0
	for i := 0; i < 10; i++ {
		if ok, _ := jl.Check(r, string(rune('a'+i))); ok {
			allowed++
		}
	}
	if allowed != ipFactor {
		t.Errorf("allowed %d distinct users from one IP, want %d", allowed, ipFactor)
	}
}
