package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Remote API errors
const (
	// ErrCodeTransport indicates the remote API could not be reached or
	// answered with a non-auth HTTP failure.
	ErrCodeTransport ErrorCode = "TRANSPORT_ERROR"
	// ErrCodeAuth indicates the credential was rejected.
	ErrCodeAuth ErrorCode = "AUTH_ERROR"
	// ErrCodeProtocol indicates a page or pagination state that cannot be
	// interpreted.
	ErrCodeProtocol ErrorCode = "PROTOCOL_ERROR"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTransport: true,
	ErrCodeAuth:      false,
	ErrCodeProtocol:  false,
	ErrCodeInternal:  false,
}

// IsRetryableCode returns true if the error code describes a failure that may
// succeed when the whole run is attempted again.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
