package dwolla

import (
	"context"
	"time"
)

// Token is an OAuth2 access token together with the instant it stops being valid.
// Tokens are values; a refresh replaces the cached token wholesale.
type Token struct {
	AccessToken string    `json:"access_token" yaml:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"   yaml:"expires_at"`
}

// IsZero reports whether the token carries no access token.
func (t Token) IsZero() bool {
	return t.AccessToken == ""
}

// Expired reports whether the token is no longer valid at now.
// A token expiring exactly at now is considered expired.
func (t Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// Credentials holds the application key and secret used for the
// client_credentials grant.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Complete reports whether both the ID and the secret are set.
func (c Credentials) Complete() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// String redacts the secret.
func (c Credentials) String() string {
	if c.ClientSecret == "" {
		return "Credentials{ClientID: " + c.ClientID + "}"
	}

	return "Credentials{ClientID: " + c.ClientID + ", ClientSecret: ***}"
}

// GoString redacts the secret in %#v output.
func (c Credentials) GoString() string {
	return c.String()
}

// TokenStore persists access tokens across processes.
//
// Load is called at most once per client, before the first token is needed.
// It returns (nil, nil) when nothing has been saved. Save is called after every
// successful refresh, once the new token is already in use by the client.
type TokenStore interface {
	Load(ctx context.Context) (*Token, error)
	Save(ctx context.Context, token Token) error
}
