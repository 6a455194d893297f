package blizzard

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mistweaver/bnet/auth"
	"github.com/mistweaver/bnet/registry"
)

// Client is a Blizzard API client. One client owns one HTTP connection
// pool, one token manager and one operation table built from the
// endpoint registry at construction time.
type Client struct {
	httpClient *http.Client
	apiBase    string
	auth       *auth.Manager
	registry   *registry.Registry
	logger     zerolog.Logger
	ops        map[string]*Operation
	games      map[string]*Game
}

// NewClient creates a client for the given API credentials. The
// operation table is bound once here; an endpoint definition problem
// surfaces now, not on first call.
func NewClient(clientID, clientSecret string, region Region, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if !region.Valid() {
		return nil, &ValidationError{Param: "region", Message: fmt.Sprintf("unknown region %q", region)}
	}

	options := &clientOptions{
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	reg := options.registry
	if reg == nil {
		var err error
		reg, err = registry.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load endpoint registry: %w", err)
		}
	}

	authOpts := append([]auth.Option{auth.WithHTTPClient(httpClient)}, options.authOpts...)
	mgr, err := auth.NewManager(clientID, clientSecret, string(region), logger, authOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	c := &Client{
		httpClient: httpClient,
		apiBase:    options.apiBase,
		auth:       mgr,
		registry:   reg,
		logger:     logger,
	}
	c.bind()

	logger.Debug().
		Int("methods", len(c.ops)).
		Strs("configs", reg.Configs()).
		Msg("Bound API operations")

	return c, nil
}

// bind builds the operation table and the game/category facade from
// the registry.
func (c *Client) bind() {
	c.ops = make(map[string]*Operation, c.registry.Len())
	c.games = make(map[string]*Game)

	for _, name := range c.registry.Methods() {
		desc, _ := c.registry.Descriptor(name)
		op := &Operation{client: c, desc: desc}
		c.ops[name] = op

		game, ok := c.games[desc.Game]
		if !ok {
			game = &Game{name: desc.Game, apis: make(map[string]*API)}
			c.games[desc.Game] = game
		}
		api, ok := game.apis[desc.APIType]
		if !ok {
			api = &API{game: desc.Game, category: desc.APIType, ops: make(map[string]*Operation)}
			game.apis[desc.APIType] = api
		}
		api.ops[name] = op
	}
}

// Auth exposes the client's token manager, for the authorization-code
// helpers.
func (c *Client) Auth() *auth.Manager {
	return c.auth
}

// Registry exposes the endpoint registry the client was bound from.
func (c *Client) Registry() *registry.Registry {
	return c.registry
}

// Operation returns the bound operation for a method name.
func (c *Client) Operation(method string) (*Operation, error) {
	op, ok := c.ops[method]
	if !ok {
		return nil, &ValidationError{Param: "method", Message: fmt.Sprintf("unknown method %q", method)}
	}
	return op, nil
}

// Call invokes a method by name, blocking until the response arrives.
func (c *Client) Call(ctx context.Context, method string, params Params) (map[string]interface{}, error) {
	op, err := c.Operation(method)
	if err != nil {
		return nil, err
	}
	return op.Do(ctx, params)
}

// CallAsync invokes a method by name without blocking. The returned
// channel delivers exactly one Result.
func (c *Client) CallAsync(ctx context.Context, method string, params Params) <-chan Result {
	op, err := c.Operation(method)
	if err != nil {
		ch := make(chan Result, 1)
		ch <- Result{Err: err}
		close(ch)
		return ch
	}
	return op.Go(ctx, params)
}

// Close releases the client's pooled connections. The client must not
// be used after Close.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
