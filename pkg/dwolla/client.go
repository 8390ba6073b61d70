package dwolla

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CustomersClient manages customers.
type CustomersClient interface {
	List(ctx context.Context, params *CustomerListParams) (*CustomerList, error)
	Get(ctx context.Context, id string) (*Customer, error)
	Create(ctx context.Context, request *CreateCustomerRequest) (*url.URL, error)
	Update(ctx context.Context, id string, request *UpdateCustomerRequest) (*Customer, error)
	GetIavToken(ctx context.Context, id string) (*IavToken, error)
	ListFundingSources(ctx context.Context, id string, includeRemoved bool) (*FundingSourceList, error)
	CreateFundingSource(ctx context.Context, id string, request *CreateFundingSourceRequest) (*url.URL, error)
}

// FundingSourcesClient manages funding sources.
type FundingSourcesClient interface {
	Get(ctx context.Context, id string) (*FundingSource, error)
	GetBalance(ctx context.Context, id string) (*Balance, error)
	Remove(ctx context.Context, id string) (*FundingSource, error)
	GetMicroDeposits(ctx context.Context, id string) (*MicroDeposits, error)
	InitiateMicroDeposits(ctx context.Context, id string) (*url.URL, error)
	VerifyMicroDeposits(ctx context.Context, id string, request *VerifyMicroDepositsRequest) error
}

// TransfersClient manages transfers.
type TransfersClient interface {
	Get(ctx context.Context, id string) (*Transfer, error)
	GetFailure(ctx context.Context, id string) (*TransferFailure, error)
	Create(ctx context.Context, request *CreateTransferRequest) (*url.URL, error)
	Cancel(ctx context.Context, id string) (*Transfer, error)
	ListForCustomer(ctx context.Context, customerID string, params *TransferListParams) (*TransferList, error)
}

// DocumentsClient manages identity documents.
type DocumentsClient interface {
	Get(ctx context.Context, id string) (*Document, error)
	ListForCustomer(ctx context.Context, customerID string) (*DocumentList, error)
	UploadForCustomer(ctx context.Context, customerID string, request *UploadDocumentRequest) (*url.URL, error)
	ListForBeneficialOwner(ctx context.Context, ownerID string) (*DocumentList, error)
	UploadForBeneficialOwner(ctx context.Context, ownerID string, request *UploadDocumentRequest) (*url.URL, error)
}

// BeneficialOwnersClient manages the beneficial owners of business customers.
type BeneficialOwnersClient interface {
	List(ctx context.Context, customerID string) (*BeneficialOwnerList, error)
	Get(ctx context.Context, id string) (*BeneficialOwner, error)
	Create(ctx context.Context, customerID string, request *CreateBeneficialOwnerRequest) (*url.URL, error)
	Delete(ctx context.Context, id string) (*BeneficialOwner, error)
	GetOwnership(ctx context.Context, customerID string) (*BeneficialOwnership, error)
	CertifyOwnership(ctx context.Context, customerID string) (*BeneficialOwnership, error)
}

// WebhookSubscriptionsClient manages webhook subscriptions.
type WebhookSubscriptionsClient interface {
	List(ctx context.Context) (*WebhookSubscriptionList, error)
	Get(ctx context.Context, id string) (*WebhookSubscription, error)
	Create(ctx context.Context, request *CreateWebhookSubscriptionRequest) (*url.URL, error)
	Delete(ctx context.Context, id string) (*WebhookSubscription, error)
}

// EventsClient reads the event log.
type EventsClient interface {
	List(ctx context.Context, params *ListParams) (*EventList, error)
	Get(ctx context.Context, id string) (*Event, error)
}

// BusinessClassificationsClient reads the business classification catalog.
type BusinessClassificationsClient interface {
	List(ctx context.Context) (*BusinessClassificationList, error)
	Get(ctx context.Context, id string) (*BusinessClassification, error)
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	Customers() CustomersClient
	FundingSources() FundingSourcesClient
	Transfers() TransfersClient
	Documents() DocumentsClient
	BeneficialOwners() BeneficialOwnersClient
	WebhookSubscriptions() WebhookSubscriptionsClient
	Events() EventsClient
	BusinessClassifications() BusinessClassificationsClient
}

// AuthClient exposes the access token managed by the client.
type AuthClient interface {
	// Token returns a valid access token, acquiring one if needed.
	Token(ctx context.Context) (Token, error)
	// RefreshToken acquires a new access token unconditionally.
	RefreshToken(ctx context.Context) (Token, error)
}

// Client is the Dwolla API client.
type Client interface {
	ResourceClients
	AuthClient

	GetRoot(ctx context.Context) (*Root, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Environment selects one of the Dwolla API hosts.
type Environment string

// Dwolla environments.
const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

// Config represents client configuration for building a dwolla.Client.
//
// A Config is read once when the client is built; later changes have no effect
// on an existing client.
//
// # Endpoint
//
// APIEndpoint takes precedence. When it is empty, Environment selects the
// sandbox or production host. The token endpoint is always APIEndpoint + "/token".
//
// # Credentials
//
// ClientID and ClientSecret are the application key and secret. They are sent
// with every token request when both are set and never logged.
type Config struct {
	// APIEndpoint: base URL of the API (e.g., "https://api-sandbox.dwolla.com").
	APIEndpoint string `validate:"omitempty,url"`
	// Environment: used to pick the base URL when APIEndpoint is empty.
	Environment Environment `validate:"omitempty,oneof=sandbox production"`

	// ClientID: application key for the client_credentials grant.
	ClientID string `validate:"required_with=ClientSecret"`
	// ClientSecret: application secret used with ClientID.
	ClientSecret string `validate:"required_with=ClientID"`

	// HTTPTimeout: overall timeout of a single HTTP call. Zero means no timeout
	// beyond the one carried by the context.
	HTTPTimeout time.Duration `validate:"gte=0"`
	// UserAgent: overrides the default "dwolla-v2-go/<version>" User-Agent.
	UserAgent string
	// Headers: extra headers sent with every resource request, after the ones
	// the client injects.
	Headers []Header
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP and auth layers.
	Logger Logger
	// TokenStore: optional persistence for access tokens.
	TokenStore TokenStore
	// HTTPClient: optional client used for every call, e.g. with a custom transport.
	HTTPClient *http.Client
}

// Credentials returns the configured application credentials.
func (c *Config) Credentials() Credentials {
	return Credentials{ClientID: c.ClientID, ClientSecret: c.ClientSecret}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	if c.APIEndpoint == "" && c.Environment == "" {
		return ErrAPIEndpointRequired
	}

	return ValidateStruct(c)
}
