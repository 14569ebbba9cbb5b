// Package resilience paces outbound requests.
//
// RateLimiter is a token bucket that can additionally be synchronised with
// the quota a server reports (for GitHub, the X-RateLimit-Remaining and
// X-RateLimit-Reset headers) so a client stops issuing requests it already
// knows will be rejected:
//
//	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{Rate: 10, Burst: 10, MaxWait: time.Minute})
//	if err := rl.Wait(ctx); err != nil {
//	    return err
//	}
//	resp := do(req)
//	rl.Observe(remaining, reset)
//
// Nothing here retries a request.
package resilience
