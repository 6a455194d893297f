package auth

import (
	"fmt"
	"net/url"
	"strings"
)

// AuthorizeURL builds the browser URL that starts an
// authorization-code flow. The user authorizes in the browser and the
// upstream redirects to redirectURI with a one-time code, which is
// then exchanged through Manager.ExchangeCode.
func (m *Manager) AuthorizeURL(redirectURI string, scopes ...string) string {
	params := url.Values{
		"client_id":     {m.clientID},
		"redirect_uri":  {redirectURI},
		"response_type": {"code"},
	}
	if len(scopes) > 0 {
		params.Set("scope", strings.Join(scopes, " "))
	}
	return fmt.Sprintf("%s/oauth/authorize?%s", m.oauthURL, params.Encode())
}
