package session

import "fmt"

// Error codes for session failures
const (
	// Storage errors
	ErrStorageRead  = "SESSION_STORAGE_READ"
	ErrStorageWrite = "SESSION_STORAGE_WRITE"

	// Login errors
	ErrInvalidCredentials = "SESSION_INVALID_CREDENTIALS"
	ErrProfileFetch       = "SESSION_PROFILE_FETCH"

	// Token errors
	ErrTokenExpired  = "SESSION_TOKEN_EXPIRED"
	ErrRefreshFailed = "SESSION_REFRESH_FAILED"
)

// SessionError represents a session failure with a code and optional cause.
type SessionError struct {
	// Code is the error code (e.g., SESSION_INVALID_CREDENTIALS)
	Code string

	// Message is a human-readable, user-displayable message
	Message string

	// Cause is the underlying error, if any
	Cause error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Cause
}

// ErrorCode returns the stable error code, for structured logging.
func (e *SessionError) ErrorCode() string {
	return e.Code
}

// NewError creates a new SessionError.
func NewError(code, message string) *SessionError {
	return &SessionError{Code: code, Message: message}
}

// WrapError wraps an existing error with a SessionError.
func WrapError(code, message string, cause error) *SessionError {
	return &SessionError{Code: code, Message: message, Cause: cause}
}

// IsSessionError checks if an error is a SessionError with the given code.
func IsSessionError(err error, code string) bool {
	if sessErr, ok := err.(*SessionError); ok {
		return sessErr.Code == code
	}
	return false
}
