package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Manager acquires and caches OAuth tokens for one set of client
// credentials. The cache is scoped to the Manager instance; separate
// managers never share or see each other's tokens.
//
// At most one token exchange is in flight per grant identity at a
// time. Concurrent callers hitting a stale token wait on the same
// exchange instead of each issuing their own.
type Manager struct {
	clientID     string
	clientSecret string
	region       string
	oauthURL     string
	httpClient   *http.Client
	logger       zerolog.Logger
	now          func() time.Time

	mu    sync.Mutex
	cache map[string]*Token
	group singleflight.Group
}

// Option configures a Manager.
type Option func(*Manager)

// WithHTTPClient sets the HTTP client used for token exchanges.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) {
		m.httpClient = c
	}
}

// WithOAuthURL overrides the battle.net OAuth base URL. Used in tests
// to point the manager at a mock server.
func WithOAuthURL(base string) Option {
	return func(m *Manager) {
		m.oauthURL = strings.TrimRight(base, "/")
	}
}

// WithClock overrides the time source used for staleness checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a token manager for the given client credentials.
func NewManager(clientID, clientSecret, region string, logger zerolog.Logger, opts ...Option) (*Manager, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: client id and secret are required", ErrInvalidConfig)
	}
	if region == "" {
		region = "us"
	}

	m := &Manager{
		clientID:     clientID,
		clientSecret: clientSecret,
		region:       region,
		oauthURL:     fmt.Sprintf("https://%s.battle.net", region),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
		now:          time.Now,
		cache:        make(map[string]*Token),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// ClientCredentials returns a client-credentials token, reusing the
// cached one while it has at least StalenessMargin of validity left.
func (m *Manager) ClientCredentials(ctx context.Context) (*Token, error) {
	key := "cc:" + m.clientID
	return m.cachedOrRefresh(ctx, key, func(ctx context.Context) (*Token, error) {
		form := url.Values{"grant_type": {string(GrantClientCredentials)}}
		tok, err := m.exchange(ctx, form)
		if err != nil {
			return nil, err
		}
		tok.Grant = GrantClientCredentials
		return tok, nil
	})
}

// ExchangeCode exchanges a one-time authorization code for an
// access/refresh token pair and caches it under the given identity.
// The identity is whatever the caller uses to distinguish accounts or
// sessions.
func (m *Manager) ExchangeCode(ctx context.Context, identity, code, redirectURI string) (*Token, error) {
	form := url.Values{
		"grant_type":   {string(GrantAuthorizationCode)},
		"code":         {code},
		"redirect_uri": {redirectURI},
	}
	tok, err := m.exchange(ctx, form)
	if err != nil {
		return nil, err
	}
	tok.Grant = GrantAuthorizationCode

	m.mu.Lock()
	m.cache["user:"+identity] = tok
	m.mu.Unlock()
	return tok, nil
}

// UserToken returns the cached authorization-code token for the given
// identity, refreshing it through its refresh token when stale. An
// identity that has never gone through ExchangeCode yields ErrNoToken.
func (m *Manager) UserToken(ctx context.Context, identity string) (*Token, error) {
	key := "user:" + identity
	return m.cachedOrRefresh(ctx, key, func(ctx context.Context) (*Token, error) {
		m.mu.Lock()
		prev := m.cache[key]
		m.mu.Unlock()
		if prev == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoToken, identity)
		}
		if prev.RefreshToken == "" {
			return nil, fmt.Errorf("%w: token for %s is stale and has no refresh token", ErrNoToken, identity)
		}
		form := url.Values{
			"grant_type":    {"refresh_token"},
			"refresh_token": {prev.RefreshToken},
		}
		tok, err := m.exchange(ctx, form)
		if err != nil {
			return nil, err
		}
		tok.Grant = GrantAuthorizationCode
		if tok.RefreshToken == "" {
			tok.RefreshToken = prev.RefreshToken
		}
		return tok, nil
	})
}

// cachedOrRefresh returns the cached token for key if it is still
// fresh, otherwise runs refresh through singleflight so concurrent
// callers share one exchange.
func (m *Manager) cachedOrRefresh(ctx context.Context, key string, refresh func(context.Context) (*Token, error)) (*Token, error) {
	m.mu.Lock()
	tok := m.cache[key]
	m.mu.Unlock()
	if tok != nil && !tok.StaleBy(m.now()) {
		return tok, nil
	}

	v, err, _ := m.group.Do(key, func() (interface{}, error) {
		// Another waiter may have completed the refresh between our
		// staleness check and entering the group.
		m.mu.Lock()
		tok := m.cache[key]
		m.mu.Unlock()
		if tok != nil && !tok.StaleBy(m.now()) {
			return tok, nil
		}

		// The refresh outlives the caller that started it; other
		// waiters still want the result after a cancellation.
		fresh, err := refresh(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.cache[key] = fresh
		m.mu.Unlock()

		m.logger.Debug().
			Str("grant", string(fresh.Grant)).
			Time("expires_at", fresh.ExpiresAt()).
			Msg("Obtained OAuth token")
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Token), nil
}

// tokenResponse is the token endpoint's JSON body.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token"`
}

// oauthError is the token endpoint's JSON error body.
type oauthError struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// exchange posts the given form to the token endpoint with the client
// credentials as basic auth and parses the result.
func (m *Manager) exchange(ctx context.Context, form url.Values) (*Token, error) {
	endpoint := m.oauthURL + "/oauth/token"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(m.clientID, m.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		exchErr := &ExchangeError{StatusCode: resp.StatusCode}
		var oe oauthError
		if json.NewDecoder(resp.Body).Decode(&oe) == nil {
			exchErr.Code = oe.Error
			exchErr.Description = oe.Description
		}
		m.logger.Warn().
			Int("status", resp.StatusCode).
			Str("error", exchErr.Code).
			Msg("Token exchange rejected")
		return nil, exchErr
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("token response contained no access token")
	}

	tok := &Token{
		AccessToken:  tr.AccessToken,
		TokenType:    tr.TokenType,
		RefreshToken: tr.RefreshToken,
		IssuedAt:     m.now(),
		TTL:          time.Duration(tr.ExpiresIn) * time.Second,
	}
	if tr.Scope != "" {
		tok.Scope = strings.Fields(tr.Scope)
	}
	return tok, nil
}
