package httpclient

import (
	"fmt"
	"net/http"
	"testing"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrCodeAuth, "auth"},
		{ErrCodeNotFound, "not_found"},
		{ErrCodeRateLimit, "rate_limit"},
		{ErrCodeValidation, "validation"},
		{ErrCodeServer, "server"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	e := NewAuthError(401, []byte(`{"message":"Bad credentials"}`))
	want := "httpclient: auth: HTTP 401: Bad credentials"
	if got := e.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	e2 := &Error{Code: ErrCodeConnection, Message: "connection refused"}
	want2 := "httpclient: connection: connection refused"
	if got := e2.Error(); got != want2 {
		t.Errorf("got %q, want %q", got, want2)
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := NewValidationError("bad input")
	outer := &Error{Code: ErrCodeServer, Message: "wrapped", Err: inner}
	if outer.Unwrap() != inner {
		t.Error("Unwrap did not return inner error")
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		code    int
		wantNil bool
		errCode ErrorCode
		retry   bool
	}{
		{200, true, 0, false},
		{201, true, 0, false},
		{204, true, 0, false},
		{400, false, ErrCodeValidation, false},
		{401, false, ErrCodeAuth, false},
		{403, false, ErrCodeAuth, false},
		{404, false, ErrCodeNotFound, false},
		{429, false, ErrCodeRateLimit, true},
		{500, false, ErrCodeServer, true},
		{502, false, ErrCodeServer, true},
		{503, false, ErrCodeServer, true},
	}
	for _, tt := range tests {
		e := ClassifyStatusCode(tt.code, nil)
		if tt.wantNil {
			if e != nil {
				t.Errorf("ClassifyStatusCode(%d): expected nil, got %v", tt.code, e)
			}
			continue
		}
		if e == nil {
			t.Errorf("ClassifyStatusCode(%d): expected error, got nil", tt.code)
			continue
		}
		if e.Code != tt.errCode {
			t.Errorf("ClassifyStatusCode(%d): code = %v, want %v", tt.code, e.Code, tt.errCode)
		}
		if e.Retryable != tt.retry {
			t.Errorf("ClassifyStatusCode(%d): retryable = %v, want %v", tt.code, e.Retryable, tt.retry)
		}
	}
}

func TestIsHelpers(t *testing.T) {
	timeout := NewTimeoutError(fmt.Errorf("timed out"))
	conn := NewConnectionError(fmt.Errorf("connection refused"))
	auth := NewAuthError(401, nil)
	notFound := NewNotFoundError(nil)
	rateLimit := NewRateLimitError(429, nil)
	server := NewServerError(500, nil)
	validation := NewValidationError("bad")

	if !IsTimeout(timeout) {
		t.Error("IsTimeout should match timeout error")
	}
	if !IsConnection(conn) {
		t.Error("IsConnection should match connection error")
	}
	if !IsAuth(auth) {
		t.Error("IsAuth should match auth error")
	}
	if !IsNotFound(notFound) {
		t.Error("IsNotFound should match not-found error")
	}
	if !IsRateLimit(rateLimit) {
		t.Error("IsRateLimit should match rate-limit error")
	}
	if !IsServerError(server) {
		t.Error("IsServerError should match server error")
	}
	if !IsRetryable(timeout) {
		t.Error("timeout should be retryable")
	}
	if !IsRetryable(conn) {
		t.Error("connection should be retryable")
	}
	if !IsRetryable(server) {
		t.Error("server error should be retryable")
	}
	if IsRetryable(auth) {
		t.Error("auth should not be retryable")
	}
	if IsRetryable(validation) {
		t.Error("validation should not be retryable")
	}
}

func TestClassifyResponse_QuotaExhausted(t *testing.T) {
	h := http.Header{}
	h.Set("X-RateLimit-Remaining", "0")
	if e := ClassifyResponse(403, h, nil); e == nil || e.Code != ErrCodeRateLimit {
		t.Errorf("403 with no remaining quota should be rate_limit, got %v", e)
	}

	h.Set("X-RateLimit-Remaining", "12")
	if e := ClassifyResponse(403, h, nil); e == nil || e.Code != ErrCodeAuth {
		t.Errorf("403 with quota left should be auth, got %v", e)
	}
	if e := ClassifyResponse(200, h, nil); e != nil {
		t.Errorf("200 should not be an error, got %v", e)
	}
}

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{``, "HTTP 500"},
		{`not json`, "HTTP 500"},
		{`{"message":"Server Error"}`, "HTTP 500: Server Error"},
		{`{"message":"  "}`, "HTTP 500"},
	}
	for _, tc := range tests {
		if got := statusMessage(500, []byte(tc.body)); got != tc.want {
			t.Errorf("statusMessage(%q) = %q, want %q", tc.body, got, tc.want)
		}
	}
}
