package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestHostLimiter_BurstThenThrottle(t *testing.T) {
	hl := NewHostLimiter(1.0, 2)

	url := "https://example.com/listings?page=1"
	if !hl.Allow(url) {
		t.Fatal("first request within burst should be allowed")
	}
	if !hl.Allow(url) {
		t.Fatal("second request within burst should be allowed")
	}
	if hl.Allow(url) {
		t.Error("third immediate request should exceed the burst")
	}
}

func TestHostLimiter_HostsAreIndependent(t *testing.T) {
	hl := NewHostLimiter(1.0, 1)

	if !hl.Allow("https://a.example.com/") {
		t.Fatal("first host should be allowed")
	}
	if !hl.Allow("https://b.example.com/") {
		t.Error("a different host should have its own bucket")
	}
}

func TestHostLimiter_WaitHonorsContext(t *testing.T) {
	hl := NewHostLimiter(0.1, 1)

	url := "https://example.com/"
	if err := hl.Wait(context.Background(), url); err != nil {
		t.Fatalf("first Wait should not block: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := hl.Wait(ctx, url); err == nil {
		t.Error("expected Wait to fail once the context deadline passes")
	}
}
