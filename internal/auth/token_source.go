package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

type tokenSource struct {
	ctx     context.Context //nolint:containedctx // oauth2.TokenSource has no context parameter
	manager *Manager
}

// TokenSource returns an oauth2.TokenSource backed by the manager, so the
// managed token can authenticate clients built with golang.org/x/oauth2.
func (m *Manager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, manager: m}
}

// Token implements oauth2.TokenSource.
func (s *tokenSource) Token() (*oauth2.Token, error) {
	token, err := s.manager.GetToken(s.ctx, false)
	if err != nil {
		return nil, fmt.Errorf("getting access token: %w", err)
	}

	return &oauth2.Token{
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		Expiry:      token.ExpiresAt,
	}, nil
}

// HTTPClient returns an *http.Client that adds the managed bearer token to
// every request it sends.
func (m *Manager) HTTPClient(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, m.TokenSource(ctx))
}
