package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/dwolla-client/internal/auth"
	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	dwollahttp "github.com/fivetwenty-io/dwolla-client/internal/http"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

// Client implements the dwolla.Client interface.
type Client struct {
	api          *API
	tokenManager *auth.Manager

	// Resource clients
	customers               dwolla.CustomersClient
	fundingSources          dwolla.FundingSourcesClient
	transfers               dwolla.TransfersClient
	documents               dwolla.DocumentsClient
	beneficialOwners        dwolla.BeneficialOwnersClient
	webhookSubscriptions    dwolla.WebhookSubscriptionsClient
	events                  dwolla.EventsClient
	businessClassifications dwolla.BusinessClassificationsClient
}

var _ dwolla.Client = (*Client)(nil)

// BaseURL resolves the API base URL of config.
func BaseURL(config *dwolla.Config) (string, error) {
	if config.APIEndpoint != "" {
		return config.APIEndpoint, nil
	}

	switch config.Environment {
	case dwolla.EnvironmentSandbox:
		return constants.SandboxURL, nil
	case dwolla.EnvironmentProduction:
		return constants.ProductionURL, nil
	default:
		return "", dwolla.ErrAPIEndpointRequired
	}
}

// createTransportOptions builds transport options from config.
func createTransportOptions(config *dwolla.Config) []dwollahttp.Option {
	var opts []dwollahttp.Option

	if config.HTTPClient != nil {
		opts = append(opts, dwollahttp.WithHTTPClient(config.HTTPClient))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, dwollahttp.WithTimeout(config.HTTPTimeout))
	}

	if config.Logger != nil {
		opts = append(opts, dwollahttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, dwollahttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, dwollahttp.WithUserAgent(config.UserAgent))
	}

	return opts
}

// New creates a Dwolla API client. No network call is made until the first
// operation needs a token.
func New(_ context.Context, config *dwolla.Config) (*Client, error) {
	err := config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	baseURL, err := BaseURL(config)
	if err != nil {
		return nil, err
	}

	transport := dwollahttp.NewTransport(createTransportOptions(config)...)

	var authOpts []auth.Option
	if config.TokenStore != nil {
		authOpts = append(authOpts, auth.WithStore(config.TokenStore))
	}

	if config.Logger != nil {
		authOpts = append(authOpts, auth.WithLogger(config.Logger))
	}

	tokenManager := auth.NewManager(baseURL, config.Credentials(), transport, authOpts...)

	client := &Client{
		api:          NewAPI(baseURL, transport, tokenManager, config.Logger, config.Headers...),
		tokenManager: tokenManager,
	}

	client.initializeResourceClients()

	return client, nil
}

// newWithAPI wires the resource clients over an existing pipeline.
func newWithAPI(api *API) *Client {
	client := &Client{api: api}
	client.initializeResourceClients()

	return client
}

func (c *Client) initializeResourceClients() {
	c.customers = NewCustomersClient(c.api)
	c.fundingSources = NewFundingSourcesClient(c.api)
	c.transfers = NewTransfersClient(c.api)
	c.documents = NewDocumentsClient(c.api)
	c.beneficialOwners = NewBeneficialOwnersClient(c.api)
	c.webhookSubscriptions = NewWebhookSubscriptionsClient(c.api)
	c.events = NewEventsClient(c.api)
	c.businessClassifications = NewBusinessClassificationsClient(c.api)
}

// TokenManager returns the token manager of this client.
func (c *Client) TokenManager() *auth.Manager {
	return c.tokenManager
}

// BaseURL returns the API base URL of this client.
func (c *Client) BaseURL() string {
	return c.api.BaseURL()
}

// Token implements dwolla.AuthClient.Token.
func (c *Client) Token(ctx context.Context) (dwolla.Token, error) {
	return c.api.tokens.GetToken(ctx, false)
}

// RefreshToken implements dwolla.AuthClient.RefreshToken.
func (c *Client) RefreshToken(ctx context.Context) (dwolla.Token, error) {
	return c.api.tokens.GetToken(ctx, true)
}

// GetRoot implements dwolla.Client.GetRoot.
func (c *Client) GetRoot(ctx context.Context) (*dwolla.Root, error) {
	root, err := Get[dwolla.Root](ctx, c.api, c.api.BaseURL()+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("getting root: %w", err)
	}

	return root, nil
}

// Resource client accessors

// Customers implements dwolla.Client.Customers.
func (c *Client) Customers() dwolla.CustomersClient {
	return c.customers
}

// FundingSources implements dwolla.Client.FundingSources.
func (c *Client) FundingSources() dwolla.FundingSourcesClient {
	return c.fundingSources
}

// Transfers implements dwolla.Client.Transfers.
func (c *Client) Transfers() dwolla.TransfersClient {
	return c.transfers
}

// Documents implements dwolla.Client.Documents.
func (c *Client) Documents() dwolla.DocumentsClient {
	return c.documents
}

// BeneficialOwners implements dwolla.Client.BeneficialOwners.
func (c *Client) BeneficialOwners() dwolla.BeneficialOwnersClient {
	return c.beneficialOwners
}

// WebhookSubscriptions implements dwolla.Client.WebhookSubscriptions.
func (c *Client) WebhookSubscriptions() dwolla.WebhookSubscriptionsClient {
	return c.webhookSubscriptions
}

// Events implements dwolla.Client.Events.
func (c *Client) Events() dwolla.EventsClient {
	return c.events
}

// BusinessClassifications implements dwolla.Client.BusinessClassifications.
func (c *Client) BusinessClassifications() dwolla.BusinessClassificationsClient {
	return c.businessClassifications
}
