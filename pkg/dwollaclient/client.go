package dwollaclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/dwolla-client/internal/client"
	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

// Base URLs of the Dwolla environments.
const (
	SandboxURL    = constants.SandboxURL
	ProductionURL = constants.ProductionURL
)

// New creates a new Dwolla API client. The config is copied; later changes to
// it do not affect the client.
func New(ctx context.Context, config *dwolla.Config) (dwolla.Client, error) {
	if config == nil {
		return nil, dwolla.ErrConfigRequired
	}

	normalized := *config
	normalized.APIEndpoint = normalizeEndpoint(config.APIEndpoint)

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// normalizeEndpoint trims the trailing slash and defaults the scheme to https.
func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return ""
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// NewWithClientCredentials creates a client for environment authenticated with
// the application key and secret.
func NewWithClientCredentials(ctx context.Context, environment dwolla.Environment, clientID, clientSecret string) (dwolla.Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, dwolla.ErrCredentialsRequired
	}

	return New(ctx, &dwolla.Config{
		Environment:  environment,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// NewSandbox creates a sandbox client authenticated with the application key
// and secret.
func NewSandbox(ctx context.Context, clientID, clientSecret string) (dwolla.Client, error) {
	return NewWithClientCredentials(ctx, dwolla.EnvironmentSandbox, clientID, clientSecret)
}
