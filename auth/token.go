package auth

import "time"

// GrantKind identifies the OAuth grant a token was obtained through.
type GrantKind string

const (
	GrantClientCredentials GrantKind = "client_credentials"
	GrantAuthorizationCode GrantKind = "authorization_code"
)

// StalenessMargin is how much remaining validity a token must have to
// be handed out. Tokens inside the margin are refreshed proactively
// rather than being allowed to expire mid-request.
const StalenessMargin = 5 * time.Minute

// Token is an OAuth bearer token together with its lifetime metadata.
// Tokens are owned by the Manager and never persisted by the library.
type Token struct {
	AccessToken  string
	TokenType    string
	Grant        GrantKind
	Scope        []string
	RefreshToken string
	IssuedAt     time.Time
	TTL          time.Duration
}

// ExpiresAt returns the moment the token stops being accepted upstream.
func (t *Token) ExpiresAt() time.Time {
	return t.IssuedAt.Add(t.TTL)
}

// StaleAt returns the moment the Manager starts treating the token as
// stale, StalenessMargin before actual expiry.
func (t *Token) StaleAt() time.Time {
	return t.IssuedAt.Add(t.TTL - StalenessMargin)
}

// StaleBy reports whether the token is stale at the given time.
func (t *Token) StaleBy(now time.Time) bool {
	return !now.Before(t.StaleAt())
}
