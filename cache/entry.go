package cache

import (
	"encoding/json"
	"time"
)

// Entry is one cached HTTP response.
type Entry struct {
	Key       string            `json:"key"`
	URL       string            `json:"url"`
	ETag      string            `json:"etag"`
	Headers   map[string]string `json:"headers,omitempty"`
	Body      json.RawMessage   `json:"body"`
	CreatedAt time.Time         `json:"created_at"`
	// ExpiresAt is zero for entries that never expire.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// NewEntry creates an entry stamped with the current time. A ttl of zero
// keeps the entry until it is overwritten or deleted.
func NewEntry(key, url, etag string, headers map[string]string, body []byte, ttl time.Duration) *Entry {
	now := time.Now()
	e := &Entry{
		Key:       key,
		URL:       url,
		ETag:      etag,
		Headers:   headers,
		Body:      body,
		CreatedAt: now,
	}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	return e
}

// IsExpired reports whether the entry is past its expiry time.
func (e *Entry) IsExpired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// Age returns the duration since the entry was created.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}
