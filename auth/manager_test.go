package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenServer is a mock battle.net token endpoint counting exchanges.
func tokenServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/token", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func grantToken(w http.ResponseWriter, token string, expiresIn int64) {
	json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   expiresIn,
	})
}

func TestNewManagerValidation(t *testing.T) {
	_, err := NewManager("", "secret", "us", zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewManager("id", "", "us", zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestClientCredentialsCaching(t *testing.T) {
	srv, calls := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "a", user)
		assert.Equal(t, "b", pass)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		grantToken(w, "X", 3600)
	})

	now := time.Now()
	clock := &fakeClock{now: now}
	m, err := NewManager("a", "b", "us", zerolog.Nop(),
		WithOAuthURL(srv.URL), WithClock(clock.Now))
	require.NoError(t, err)

	tok, err := m.ClientCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "X", tok.AccessToken)
	assert.Equal(t, GrantClientCredentials, tok.Grant)
	assert.Equal(t, now.Add(3300*time.Second), tok.StaleAt())
	assert.EqualValues(t, 1, calls.Load())

	// Fresh token is reused without a network call.
	tok2, err := m.ClientCredentials(context.Background())
	require.NoError(t, err)
	assert.Same(t, tok, tok2)
	assert.EqualValues(t, 1, calls.Load())

	// One second past the staleness boundary triggers exactly one
	// new exchange.
	clock.Advance(3301 * time.Second)
	tok3, err := m.ClientCredentials(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, tok, tok3)
	assert.EqualValues(t, 2, calls.Load())
}

func TestConcurrentRefreshIsDeduplicated(t *testing.T) {
	srv, calls := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond) // widen the race window
		grantToken(w, "X", 3600)
	})

	m, err := NewManager("a", "b", "us", zerolog.Nop(), WithOAuthURL(srv.URL))
	require.NoError(t, err)

	const n = 16
	var wg sync.WaitGroup
	tokens := make([]*Token, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = m.ClientCredentials(context.Background())
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, tokens[0], tokens[i])
	}
}

func TestInvalidCredentials(t *testing.T) {
	srv, _ := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "unauthorized",
			"error_description": "Bad client credentials",
		})
	})

	m, err := NewManager("a", "wrong", "us", zerolog.Nop(), WithOAuthURL(srv.URL))
	require.NoError(t, err)

	_, err = m.ClientCredentials(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthentication)

	var exchErr *ExchangeError
	require.ErrorAs(t, err, &exchErr)
	assert.Equal(t, http.StatusUnauthorized, exchErr.StatusCode)
	assert.Equal(t, "unauthorized", exchErr.Code)
}

func TestExchangeCode(t *testing.T) {
	srv, _ := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		switch r.PostForm.Get("grant_type") {
		case "authorization_code":
			assert.Equal(t, "one-time-code", r.PostForm.Get("code"))
			assert.Equal(t, "http://localhost:8787/callback", r.PostForm.Get("redirect_uri"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token":  "user-token",
				"refresh_token": "refresh-1",
				"token_type":    "bearer",
				"expires_in":    86400,
				"scope":         "wow.profile",
			})
		default:
			t.Errorf("unexpected grant_type %q", r.PostForm.Get("grant_type"))
		}
	})

	m, err := NewManager("a", "b", "us", zerolog.Nop(), WithOAuthURL(srv.URL))
	require.NoError(t, err)

	tok, err := m.ExchangeCode(context.Background(), "acct-1", "one-time-code", "http://localhost:8787/callback")
	require.NoError(t, err)
	assert.Equal(t, "user-token", tok.AccessToken)
	assert.Equal(t, GrantAuthorizationCode, tok.Grant)
	assert.Equal(t, []string{"wow.profile"}, tok.Scope)
	assert.Equal(t, "refresh-1", tok.RefreshToken)

	// Fresh user token comes straight from the cache.
	cached, err := m.UserToken(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Same(t, tok, cached)
}

func TestReusedAuthorizationCode(t *testing.T) {
	srv, _ := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_grant",
			"error_description": "Invalid authorization code",
		})
	})

	m, err := NewManager("a", "b", "us", zerolog.Nop(), WithOAuthURL(srv.URL))
	require.NoError(t, err)

	_, err = m.ExchangeCode(context.Background(), "acct-1", "already-used", "http://localhost/cb")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestUserTokenRefresh(t *testing.T) {
	var refreshes atomic.Int64
	srv, _ := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		switch r.PostForm.Get("grant_type") {
		case "authorization_code":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token":  "user-token-1",
				"refresh_token": "refresh-1",
				"expires_in":    3600,
			})
		case "refresh_token":
			refreshes.Add(1)
			assert.Equal(t, "refresh-1", r.PostForm.Get("refresh_token"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "user-token-2",
				"expires_in":   3600,
			})
		}
	})

	clock := &fakeClock{now: time.Now()}
	m, err := NewManager("a", "b", "us", zerolog.Nop(),
		WithOAuthURL(srv.URL), WithClock(clock.Now))
	require.NoError(t, err)

	_, err = m.ExchangeCode(context.Background(), "acct-1", "code", "http://localhost/cb")
	require.NoError(t, err)

	clock.Advance(3400 * time.Second)
	tok, err := m.UserToken(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "user-token-2", tok.AccessToken)
	// Refresh token carries over when the refresh response omits it.
	assert.Equal(t, "refresh-1", tok.RefreshToken)
	assert.EqualValues(t, 1, refreshes.Load())
}

func TestUserTokenUnknownIdentity(t *testing.T) {
	srv, calls := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		grantToken(w, "X", 3600)
	})

	m, err := NewManager("a", "b", "us", zerolog.Nop(), WithOAuthURL(srv.URL))
	require.NoError(t, err)

	_, err = m.UserToken(context.Background(), "never-seen")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoToken)
	assert.EqualValues(t, 0, calls.Load())
}

func TestFailureDoesNotPoisonOtherIdentities(t *testing.T) {
	srv, _ := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("grant_type") == "client_credentials" {
			grantToken(w, "cc-token", 3600)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
	})

	m, err := NewManager("a", "b", "us", zerolog.Nop(), WithOAuthURL(srv.URL))
	require.NoError(t, err)

	_, err = m.ExchangeCode(context.Background(), "acct-1", "bad", "http://localhost/cb")
	require.Error(t, err)

	// The client-credentials identity is unaffected.
	tok, err := m.ClientCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cc-token", tok.AccessToken)
}

func TestAuthorizeURL(t *testing.T) {
	m, err := NewManager("my-client", "secret", "eu", zerolog.Nop())
	require.NoError(t, err)

	u := m.AuthorizeURL("http://localhost:8787/callback", "wow.profile", "sc2.profile")
	assert.Contains(t, u, "https://eu.battle.net/oauth/authorize?")
	assert.Contains(t, u, "client_id=my-client")
	assert.Contains(t, u, "response_type=code")
	assert.Contains(t, u, "scope=wow.profile+sc2.profile")
	assert.Contains(t, u, "redirect_uri=http%3A%2F%2Flocalhost%3A8787%2Fcallback")
}

// fakeClock is a settable time source for staleness tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
