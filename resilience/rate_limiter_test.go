package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  10.0,
		Burst: 5,
	})

	// Should allow burst size requests immediately
	for i := 0; i < 5; i++ {
		if !rl.Allow() {
			t.Errorf("request %d should be allowed", i)
		}
	}
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  10.0,
		Burst: 3,
	})

	// Exhaust burst
	for i := 0; i < 3; i++ {
		rl.Allow()
	}

	// Next request should be rejected
	if rl.Allow() {
		t.Error("request should be rejected over burst limit")
	}
}

func TestRateLimiter_RefillsOverTime(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  100.0, // 100 per second = 1 per 10ms
		Burst: 1,
	})

	// Exhaust the single token
	if !rl.Allow() {
		t.Error("first request should be allowed")
	}

	// Should be rejected
	if rl.Allow() {
		t.Error("second request should be rejected")
	}

	// Wait for refill
	time.Sleep(20 * time.Millisecond)

	// Should be allowed again
	if !rl.Allow() {
		t.Error("request after refill should be allowed")
	}
}

func TestRateLimiter_Wait(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  100.0,
		Burst: 1,
	})

	// Exhaust burst
	rl.Allow()

	start := time.Now()
	err := rl.Wait(context.Background())
	elapsed := time.Since(start)

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	// Should have waited about 10ms for 1 token at 100/s
	if elapsed < 5*time.Millisecond || elapsed > 50*time.Millisecond {
		t.Errorf("expected wait around 10ms, got %v", elapsed)
	}
}

func TestRateLimiter_WaitRespectsContext(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Name:  "test",
		Rate:  1.0, // 1 per second - slow
		Burst: 1,
	})

	// Exhaust burst
	rl.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestRateLimiter_Tokens(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 10.0, Burst: 5})

	initial := rl.Tokens()
	if initial < 4.9 || initial > 5.1 {
		t.Errorf("expected ~5 tokens, got %f", initial)
	}
	for i := 0; i < 3; i++ {
		rl.Allow()
	}
	if tokens := rl.Tokens(); tokens < 1.9 || tokens > 2.5 {
		t.Errorf("expected ~2 tokens, got %f", tokens)
	}
}

func TestRateLimiter_ObserveExhaustedBlocksUntilReset(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(RateLimiterConfig{Name: "github", Rate: 10, Burst: 10})
	rl.now = func() time.Time { return now }

	rl.Observe(0, now.Add(time.Minute))
	if rl.Allow() {
		t.Fatal("request allowed while server quota is exhausted")
	}

	now = now.Add(2 * time.Minute)
	if !rl.Allow() {
		t.Error("request rejected after quota reset")
	}
}

func TestRateLimiter_ObserveCapsTokens(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "github", Rate: 0.001, Burst: 10})

	rl.Observe(1, time.Now().Add(time.Hour))
	if !rl.Allow() {
		t.Fatal("first request should use the remaining quota")
	}
	if rl.Allow() {
		t.Error("second request should be held back")
	}
}

func TestRateLimiter_WaitBeyondMaxWait(t *testing.T) {
	var limited time.Duration
	rl := NewRateLimiter(RateLimiterConfig{
		Name:    "github",
		Rate:    10,
		Burst:   1,
		MaxWait: time.Second,
		OnLimit: func(_ string, wait time.Duration) { limited = wait },
	})

	rl.Observe(0, time.Now().Add(time.Hour))
	start := time.Now()
	err := rl.Wait(context.Background())
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Error("Wait should fail fast when the wait exceeds MaxWait")
	}
	if limited < 59*time.Minute {
		t.Errorf("OnLimit reported wait %v, want about an hour", limited)
	}
}

func TestDefaultRateLimiterConfig(t *testing.T) {
	cfg := DefaultRateLimiterConfig("github")
	if cfg.Name != "github" || cfg.Rate != 10 || cfg.Burst != 10 || cfg.MaxWait != time.Minute {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}
