package blizzard

import (
	"errors"
	"fmt"
)

// Error kinds for the HTTP error taxonomy. APIError and
// ValidationError unwrap to one of these so callers can classify with
// errors.Is.
var (
	// ErrAuthentication indicates the upstream rejected the bearer
	// token or credentials (401/403).
	ErrAuthentication = errors.New("authentication rejected")

	// ErrRateLimited indicates HTTP 429.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound indicates HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrBadRequest indicates HTTP 400, including malformed filter or
	// parameter combinations the upstream rejects.
	ErrBadRequest = errors.New("bad request")

	// ErrServer indicates an upstream 5xx.
	ErrServer = errors.New("upstream server error")

	// ErrValidation indicates a local, pre-request failure: a missing
	// required parameter or an unknown method, region or locale. No
	// network request was issued.
	ErrValidation = errors.New("validation failed")
)

// APIError is a non-2xx response from the API mapped onto the error
// taxonomy. RetryAfter carries the Retry-After hint in seconds when a
// 429 supplies one.
type APIError struct {
	StatusCode int
	Body       string
	RetryAfter int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("blizzard API error: status %d (retry after %ds)", e.StatusCode, e.RetryAfter)
	}
	return fmt.Sprintf("blizzard API error: status %d: %s", e.StatusCode, e.Body)
}

// Unwrap maps the status code to its taxonomy kind.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == 401 || e.StatusCode == 403:
		return ErrAuthentication
	case e.StatusCode == 404:
		return ErrNotFound
	case e.StatusCode == 429:
		return ErrRateLimited
	case e.StatusCode == 400:
		return ErrBadRequest
	case e.StatusCode >= 500:
		return ErrServer
	}
	return nil
}

// IsNotFound reports whether the error is an HTTP 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsRateLimited reports whether the error is an HTTP 429.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// ValidationError is a local parameter or lookup failure raised before
// any request is built. Param names the offending parameter when there
// is one.
type ValidationError struct {
	Param   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("validation failed: %s: %s", e.Param, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Unwrap classifies the error as ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
