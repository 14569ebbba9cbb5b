package github

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/ghusers/cache"
	"github.com/kbukum/ghusers/errors"
	"github.com/kbukum/ghusers/httpclient"
	"github.com/kbukum/ghusers/listing"
	"github.com/kbukum/ghusers/logger"
	"github.com/kbukum/ghusers/observability"
)

// Client reads user pages from the GitHub API. A Client serves one run at
// a time.
type Client struct {
	http    *httpclient.Client
	perPage int
	log     *logger.Logger
	metrics *observability.Metrics

	mode  string
	pages int
}

var _ listing.API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithPerPage sets the requested page size, clamped to 1..MaxPerPage.
func WithPerPage(n int) Option {
	return func(c *Client) {
		switch {
		case n < 1:
			c.perPage = 1
		case n > MaxPerPage:
			c.perPage = MaxPerPage
		default:
			c.perPage = n
		}
	}
}

// WithLogger sets the logger. Defaults to the "github" component logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics sets the metric instruments. Nil disables metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New wraps an already configured HTTP client.
func New(hc *httpclient.Client, opts ...Option) *Client {
	c := &Client{http: hc, perPage: MaxPerPage}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.WithComponent("github")
	}
	return c
}

// NewHTTPClient builds the HTTP client for cfg. store may be nil to
// disable response caching.
func NewHTTPClient(cfg Config, userAgent string, store cache.Store) (*httpclient.Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rl := httpclient.DefaultRateLimiterConfig("github")
	rl.Rate = cfg.RatePerSecond
	rl.Burst = cfg.Burst
	rl.MaxWait = cfg.MaxWait

	hc, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.BearerAuth(cfg.Token),
		Headers: map[string]string{
			"User-Agent": userAgent,
		},
		RateLimiter: rl,
		Cache:       store,
	})
	if err != nil {
		return nil, errors.Validation(err.Error())
	}
	return hc, nil
}

// Fetch requests the first page for mode.
func (c *Client) Fetch(ctx context.Context, mode listing.Mode) (listing.Page, listing.Cursor, error) {
	c.mode = mode.Kind().String()
	c.pages = 0

	perPage := strconv.Itoa(c.perPage)
	req := httpclient.Request{Path: "/users", Query: map[string]string{"per_page": perPage}}
	switch mode.Kind() {
	case listing.ModeSearch:
		req.Path = "/search/users"
		req.Query["q"] = mode.Keyword()
	default:
		if id, ok := mode.LastSeenID(); ok {
			req.Query["since"] = strconv.FormatInt(id, 10)
		}
	}
	return c.fetch(ctx, req)
}

// FetchNext requests the page cursor points at.
func (c *Client) FetchNext(ctx context.Context, cursor listing.Cursor) (listing.Page, listing.Cursor, error) {
	if cursor == "" {
		return listing.Page{}, "", errors.Protocol("empty page cursor")
	}
	if !c.http.SameOrigin(string(cursor)) {
		return listing.Page{}, "", errors.Protocolf("next page link %s points outside the API origin", cursor)
	}
	page, next, err := c.fetch(ctx, httpclient.Request{Path: string(cursor)})
	if err != nil {
		return page, next, err
	}
	if next == cursor {
		return listing.Page{}, "", errors.Protocolf("next page link repeats the current page %s", cursor)
	}
	return page, next, nil
}

func (c *Client) fetch(ctx context.Context, req httpclient.Request) (listing.Page, listing.Cursor, error) {
	c.pages++
	req.Headers = map[string]string{
		"Accept":               acceptMedia,
		"X-GitHub-Api-Version": apiVersion,
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanFetchPage, trace.WithAttributes(
		attribute.String(observability.AttrMode, c.mode),
		attribute.Int(observability.AttrPage, c.pages),
	))
	defer span.End()

	start := time.Now()
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		appErr := mapHTTPError(err)
		observability.SetSpanError(span, appErr)
		return listing.Page{}, "", appErr.WithDetail("page", c.pages)
	}

	items, incomplete, err := decodeItems(resp.Body)
	if err != nil {
		observability.SetSpanError(span, err)
		return listing.Page{}, "", err
	}
	page := listing.DecodePage(items)
	next := listing.Cursor(parseLinks(resp.Header("Link"))["next"])
	elapsed := time.Since(start)

	c.metrics.RecordPage(ctx, c.mode, elapsed)
	span.SetAttributes(
		attribute.Int(observability.AttrEntries, len(page.Entries)),
		attribute.Int(observability.AttrHTTPStatus, resp.StatusCode),
		attribute.Bool(observability.AttrCacheHit, resp.FromCache),
	)

	log := c.log.WithContext(ctx)
	if incomplete {
		log.Warn("search results are incomplete", logger.Fields("page", c.pages))
	}
	log.Debug("page fetched", logger.Fields(
		"mode", c.mode,
		"page", c.pages,
		"entries", len(page.Entries),
		"has_next", next != "",
		"cache_hit", resp.FromCache,
		logger.FieldDuration, elapsed.Milliseconds(),
	))

	return page, next, nil
}

// decodeItems returns the raw entries of a page: the body itself when it is
// an array, or its "items" member when it is a search result object.
func decodeItems(body []byte) ([]json.RawMessage, bool, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, false, errors.Protocol("empty response body")
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, false, errors.Protocolf("decode page: %v", err)
		}
		return items, false, nil
	case '{':
		var envelope struct {
			Items             *[]json.RawMessage `json:"items"`
			IncompleteResults bool               `json:"incomplete_results"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, false, errors.Protocolf("decode page: %v", err)
		}
		if envelope.Items == nil {
			return nil, false, errors.Protocol("response object has no items")
		}
		return *envelope.Items, envelope.IncompleteResults, nil
	default:
		return nil, false, errors.Protocol("response is neither a list nor an object")
	}
}

// Transport failure reasons, reported in the "reason" detail.
const (
	reasonRateLimited = "rate_limited"
	reasonTimeout     = "timeout"
	reasonConnection  = "connection"
	reasonNotFound    = "not_found"
	reasonServer      = "server_error"
	reasonHTTP        = "http"
)

// mapHTTPError translates client failures into the error taxonomy.
func mapHTTPError(err error) *errors.AppError {
	var httpErr *httpclient.Error
	if httpclient.IsAuth(err) && stderrors.As(err, &httpErr) {
		return errors.Auth(httpErr.Message, err)
	}

	appErr := errors.Transport("fetch page", err).WithDetail("reason", transportReason(err))
	if stderrors.As(err, &httpErr) {
		appErr.Retryable = httpclient.IsRetryable(err)
		if httpErr.StatusCode > 0 {
			appErr = appErr.WithDetail("status", httpErr.StatusCode)
		}
	}
	return appErr
}

func transportReason(err error) string {
	switch {
	case httpclient.IsRateLimit(err):
		return reasonRateLimited
	case httpclient.IsTimeout(err):
		return reasonTimeout
	case httpclient.IsConnection(err):
		return reasonConnection
	case httpclient.IsNotFound(err):
		return reasonNotFound
	case httpclient.IsServerError(err):
		return reasonServer
	default:
		return reasonHTTP
	}
}
