// Package httpclient provides the HTTP client used to talk to paginated
// JSON APIs.
//
// A Client applies bearer authentication and default headers, paces
// requests with a resilience.RateLimiter that tracks the server's
// X-RateLimit-* headers, and, when given a cache.Store, revalidates GETs
// with If-None-Match so unchanged pages are served from disk. Non-2xx
// responses are classified into *Error values. Requests are never retried.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL:     "https://api.github.com",
//	    Auth:        httpclient.BearerAuth(token),
//	    RateLimiter: httpclient.DefaultRateLimiterConfig("github"),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Path:  "/users",
//	    Query: map[string]string{"since": "0"},
//	})
package httpclient
