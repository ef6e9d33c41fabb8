package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllow_WithinLimit(t *testing.T) {
	l := New(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !l.Allow("k") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("k") {
		t.Error("fourth attempt should be blocked")
	}
}

func TestAllow_KeysIndependent(t *testing.T) {
	l := New(1, time.Minute)
	if !l.Allow("a") {
		t.Fatal("first key should be allowed")
	}
	if !l.Allow("b") {
		t.Error("second key should not share the first key's count")
	}
}

func TestAllow_WindowExpires(t *testing.T) {
	l := New(1, 10*time.Millisecond)
	if !l.Allow("k") {
		t.Fatal("first attempt should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("second attempt should be blocked")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Allow("k") {
		t.Error("attempt after window expiry should be allowed")
	}
}

func TestReset(t *testing.T) {
	l := New(1, time.Minute)
	l.Allow("k")
	if l.Allow("k") {
		t.Fatal("should be blocked before reset")
	}
	l.Reset("k")
	if !l.Allow("k") {
		t.Error("should be allowed after reset")
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"remote addr", "203.0.113.7:4321", "", "", "203.0.113.7"},
		{"x-forwarded-for", "10.0.0.1:80", "198.51.100.2, 10.0.0.1", "", "198.51.100.2"},
		{"x-real-ip", "10.0.0.1:80", "", "198.51.100.3", "198.51.100.3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/auth/login", nil)
			r.RemoteAddr = tc.remoteAddr
			if tc.xff != "" {
				r.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xri != "" {
				r.Header.Set("X-Real-IP", tc.xri)
			}
			if got := ClientIP(r); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoginLimiter_EmailAxis(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)

	r := httptest.NewRequest("POST", "/auth/login", nil)
	for i := 0; i < 2; i++ {
		if ok, _ := ll.Check(r, "Ada@Example.com"); !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	// Case and whitespace variants hit the same bucket.
	if ok, reason := ll.Check(r, "  ada@example.com "); ok {
		t.Error("third attempt for same email should be blocked")
	} else if reason == "" {
		t.Error("blocked attempt should carry a reason")
	}

	ll.ResetEmail("ada@example.com")
	if ok, _ := ll.Check(r, "ada@example.com"); !ok {
		t.Error("should be allowed after ResetEmail")
	}
}

func TestLoginLimiter_IPAxis(t *testing.T) {
	ll := NewLoginLimiterWithConfig(2, time.Minute, 100, time.Minute)

	r := httptest.NewRequest("POST", "/auth/login", nil)
	r.RemoteAddr = "203.0.113.7:4321"
	ll.Check(r, "a@example.com")
	ll.Check(r, "b@example.com")
	if ok, _ := ll.Check(r, "c@example.com"); ok {
		t.Error("third attempt from same IP should be blocked")
	}

	other := httptest.NewRequest("POST", "/auth/login", nil)
	other.RemoteAddr = "203.0.113.8:4321"
	if ok, _ := ll.Check(other, "c@example.com"); !ok {
		t.Error("different IP should not be blocked")
	}
}
