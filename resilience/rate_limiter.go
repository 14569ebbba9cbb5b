package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Common rate limiter errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)

// RateLimiterConfig configures a rate limiter.
type RateLimiterConfig struct {
	// Name identifies this rate limiter for logging.
	Name string
	// Rate is the number of requests allowed per second.
	Rate float64
	// Burst is the maximum burst size.
	Burst int
	// MaxWait bounds how long Wait blocks. A wait that would exceed it
	// fails immediately with ErrRateLimited. Zero means no bound.
	MaxWait time.Duration
	// OnLimit is called when a request is rate limited.
	OnLimit func(name string, wait time.Duration)
}

// DefaultRateLimiterConfig returns sensible defaults.
func DefaultRateLimiterConfig(name string) RateLimiterConfig {
	return RateLimiterConfig{
		Name:    name,
		Rate:    10.0,
		Burst:   10,
		MaxWait: time.Minute,
	}
}

// RateLimiter implements a token bucket rate limiter that also honours a
// server-reported quota window.
type RateLimiter struct {
	config RateLimiterConfig
	now    func() time.Time

	mu           sync.Mutex
	tokens       float64
	lastRefill   time.Time
	blockedUntil time.Time
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Rate <= 0 {
		config.Rate = 10.0
	}
	if config.Burst <= 0 {
		config.Burst = int(config.Rate)
	}

	return &RateLimiter{
		config:     config,
		now:        time.Now,
		tokens:     float64(config.Burst),
		lastRefill: time.Now(),
	}
}

// Allow checks if a request is allowed without blocking.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.now().Before(rl.blockedUntil) {
		return false
	}
	rl.refill()
	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// Wait blocks until a request is allowed or ctx is cancelled. It fails with
// ErrRateLimited when the required wait exceeds MaxWait.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	waitTime := rl.reserve()
	if waitTime <= 0 {
		return nil
	}

	if rl.config.OnLimit != nil {
		rl.config.OnLimit(rl.config.Name, waitTime)
	}
	if rl.config.MaxWait > 0 && waitTime > rl.config.MaxWait {
		rl.release()
		return ErrRateLimited
	}

	timer := time.NewTimer(waitTime)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Observe synchronises the limiter with a quota reported by the server.
// When remaining is zero, requests are held until reset.
func (rl *RateLimiter) Observe(remaining int, reset time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if remaining <= 0 && reset.After(rl.now()) {
		rl.blockedUntil = reset
		return
	}
	rl.blockedUntil = time.Time{}
	if float64(remaining) < rl.tokens {
		rl.tokens = float64(remaining)
	}
}

// refill adds tokens based on time elapsed. Callers hold mu.
func (rl *RateLimiter) refill() {
	now := rl.now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.lastRefill = now

	rl.tokens += elapsed * rl.config.Rate
	if rl.tokens > float64(rl.config.Burst) {
		rl.tokens = float64(rl.config.Burst)
	}
}

// reserve takes one token and returns how long the caller must wait for it.
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Before(rl.blockedUntil) {
		return rl.blockedUntil.Sub(now)
	}

	rl.refill()
	rl.tokens--
	if rl.tokens >= 0 {
		return 0
	}
	return time.Duration(-rl.tokens / rl.config.Rate * float64(time.Second))
}

// release returns a token taken by reserve when the wait is abandoned.
func (rl *RateLimiter) release() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if !rl.now().Before(rl.blockedUntil) {
		rl.tokens++
	}
}

// Tokens returns the current number of available tokens.
func (rl *RateLimiter) Tokens() float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill()
	return rl.tokens
}
