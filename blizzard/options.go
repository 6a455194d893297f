package blizzard

import (
	"net/http"
	"time"

	"github.com/mistweaver/bnet/auth"
	"github.com/mistweaver/bnet/registry"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout    time.Duration
	httpClient *http.Client
	registry   *registry.Registry
	apiBase    string
	authOpts   []auth.Option
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client. The client is shared by
// API calls and token exchanges, so one connection pool serves both.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithRegistry substitutes a custom endpoint registry for the embedded
// definitions.
func WithRegistry(r *registry.Registry) Option {
	return func(o *clientOptions) {
		o.registry = r
	}
}

// WithAPIBaseURL overrides the per-region API host. Used in tests to
// point the client at a mock server.
func WithAPIBaseURL(base string) Option {
	return func(o *clientOptions) {
		o.apiBase = base
	}
}

// WithAuthOptions forwards options to the token manager.
func WithAuthOptions(opts ...auth.Option) Option {
	return func(o *clientOptions) {
		o.authOpts = append(o.authOpts, opts...)
	}
}
