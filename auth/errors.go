package auth

import (
	"errors"
	"fmt"
)

// Common errors returned by the token manager.
var (
	// ErrAuthentication indicates the token endpoint rejected the
	// credentials, authorization code or refresh token.
	ErrAuthentication = errors.New("authentication failed")

	// ErrNoToken indicates no token is cached for the requested
	// identity and no way to obtain one was supplied.
	ErrNoToken = errors.New("no token cached for identity")

	// ErrInvalidConfig indicates missing client credentials.
	ErrInvalidConfig = errors.New("invalid token manager configuration")
)

// ExchangeError is a failed token-endpoint exchange. Code and
// Description carry the OAuth error fields when the upstream supplies
// them.
type ExchangeError struct {
	StatusCode  int
	Code        string
	Description string
}

// Error implements the error interface.
func (e *ExchangeError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("token exchange failed: status %d: %s: %s", e.StatusCode, e.Code, e.Description)
	}
	return fmt.Sprintf("token exchange failed: status %d", e.StatusCode)
}

// Unwrap maps credential-class failures (bad client secret, reused or
// expired code, rejected refresh token) to ErrAuthentication so
// callers can test with errors.Is.
func (e *ExchangeError) Unwrap() error {
	switch e.StatusCode {
	case 400, 401, 403:
		return ErrAuthentication
	}
	return nil
}
