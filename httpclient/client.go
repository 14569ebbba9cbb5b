package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kbukum/ghusers/cache"
	"github.com/kbukum/ghusers/logger"
	"github.com/kbukum/ghusers/resilience"
)

// Client is an HTTP client with auth, request pacing and conditional GETs.
type Client struct {
	httpClient *http.Client
	config     Config
	rl         *resilience.RateLimiter
	cache      cache.Store
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}

	c := &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		cache:  cfg.Cache,
	}
	if cfg.RateLimiter != nil {
		c.rl = resilience.NewRateLimiter(*cfg.RateLimiter)
	}

	return c, nil
}

// Do executes a single HTTP request and returns the complete response.
// Non-2xx statuses are returned as *Error alongside the response.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if c.rl != nil {
		if err := c.rl.Wait(ctx); err != nil {
			if errors.Is(err, resilience.ErrRateLimited) {
				return nil, &Error{Code: ErrCodeRateLimit, Message: "request quota exhausted", Err: err}
			}
			return nil, NewTimeoutError(err)
		}
	}
	return c.executeRequest(ctx, req)
}

// SameOrigin reports whether rawURL has the scheme, host and port of the
// configured BaseURL. Without a BaseURL every absolute URL matches.
func (c *Client) SameOrigin(rawURL string) bool {
	u, err := neturl.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	if c.config.BaseURL == "" {
		return true
	}
	base, err := neturl.Parse(c.config.BaseURL)
	if err != nil {
		return false
	}
	return origin(u) == origin(base)
}

func origin(u *neturl.URL) string {
	scheme := strings.ToLower(u.Scheme)
	port := u.Port()
	if port == "" {
		switch scheme {
		case "http":
			port = "80"
		case "https":
			port = "443"
		}
	}
	return scheme + "://" + strings.ToLower(u.Hostname()) + ":" + port
}

// executeRequest builds and sends the HTTP request.
func (c *Client) executeRequest(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	url := httpReq.URL.String()

	var (
		key    string
		cached *cache.Entry
	)
	if c.cache != nil && httpReq.Method == http.MethodGet {
		key = cache.Key(httpReq.Method, url, httpReq.Header.Get("Authorization"))
		if entry, getErr := c.cache.Get(key); getErr == nil && entry.ETag != "" {
			cached = entry
			httpReq.Header.Set("If-None-Match", entry.ETag)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	c.observeQuota(resp.Header)

	if resp.StatusCode == http.StatusNotModified && cached != nil {
		logger.WithComponent("httpclient").Debug("served from cache", logger.Fields(
			"url", url, "age_ms", cached.Age().Milliseconds(),
		))
		return &Response{
			StatusCode: http.StatusOK,
			Headers:    cached.Headers,
			Body:       cached.Body,
			URL:        url,
			FromCache:  true,
		}, nil
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
		URL:        url,
	}

	if classErr := ClassifyResponse(resp.StatusCode, resp.Header, body); classErr != nil {
		return result, classErr
	}

	if key != "" && resp.StatusCode == http.StatusOK {
		c.storeResponse(key, cached, result)
	}

	return result, nil
}

// storeResponse caches result under key when it carries an ETag. A previous
// entry for a response that no longer has one can never be revalidated and
// is dropped.
func (c *Client) storeResponse(key string, previous *cache.Entry, result *Response) {
	log := logger.WithComponent("httpclient")
	etag := result.Header("ETag")
	if etag == "" {
		if previous != nil {
			if err := c.cache.Delete(key); err != nil {
				log.Debug("cache delete failed", logger.ErrorFields("cache_delete", err))
			}
		}
		return
	}
	entry := cache.NewEntry(key, result.URL, etag, result.Headers, result.Body, 0)
	if err := c.cache.Set(entry); err != nil {
		log.Debug("cache write failed", logger.ErrorFields("cache_set", err))
	}
}

// observeQuota feeds the server-reported request quota to the rate limiter.
func (c *Client) observeQuota(h http.Header) {
	if c.rl == nil {
		return
	}
	remaining, err := strconv.Atoi(h.Get("X-RateLimit-Remaining"))
	if err != nil {
		return
	}
	reset, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return
	}
	c.rl.Observe(remaining, time.Unix(reset, 0))
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	url := req.Path
	if c.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		url = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	// Request-specific headers override defaults.
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	// Credentials never leave the configured origin.
	auth := c.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	if c.SameOrigin(httpReq.URL.String()) {
		auth.apply(httpReq)
	}

	return httpReq, nil
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
