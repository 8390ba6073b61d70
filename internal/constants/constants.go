package constants

import "time"

// Version is the library version reported in the User-Agent header.
var Version = "0.4.0"

// DefaultUserAgent returns the User-Agent sent when none is configured.
func DefaultUserAgent() string {
	return "dwolla-v2-go/" + Version
}

// API hosts.
const (
	// SandboxURL is the base URL of the Dwolla sandbox.
	SandboxURL = "https://api-sandbox.dwolla.com"

	// ProductionURL is the base URL of the Dwolla production API.
	ProductionURL = "https://api.dwolla.com"

	// TokenPath is the path of the OAuth2 token endpoint.
	TokenPath = "/token"
)

// Media types and headers.
const (
	// ContentTypeHALJSON is the Accept and Content-Type of resource calls.
	ContentTypeHALJSON = "application/vnd.dwolla.v1.hal+json"

	// ContentTypeJSON is the Accept of the token call.
	ContentTypeJSON = "application/json"

	// ContentTypeForm is the Content-Type of the token call.
	ContentTypeForm = "application/x-www-form-urlencoded"

	// MultipartBoundary is the fixed boundary of document uploads.
	MultipartBoundary = "----------Upload"

	// HeaderRequestID carries the request identifier assigned by Dwolla.
	HeaderRequestID = "X-Request-Id"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// NATSConnectTimeout bounds the connection to a NATS token store.
	NATSConnectTimeout = 5 * time.Second
)

// HTTP status codes commonly used.
const (
	// HTTPStatusBadRequest is the first client error status.
	HTTPStatusBadRequest = 400
)

// Limits.
const (
	// MaxErrorBodyLength caps the body excerpt kept in UnexpectedStatus errors.
	MaxErrorBodyLength = 512

	// MinimumArgumentCount is the argument count of KEY VALUE commands.
	MinimumArgumentCount = 2

	// DefaultPageSize is the default number of items per list page in the CLI.
	DefaultPageSize = 25
)

// Token store settings.
const (
	// KeyringService is the service name used for keyring entries.
	KeyringService = "dwolla-client"

	// DefaultNATSBucket is the JetStream key-value bucket holding tokens.
	DefaultNATSBucket = "dwolla_tokens"

	// TokenFileName is the default file of the file token store.
	TokenFileName = "token.yml"
)

// Token store kinds.
const (
	TokenStoreNone    = "none"
	TokenStoreMemory  = "memory"
	TokenStoreFile    = "file"
	TokenStoreKeyring = "keyring"
	TokenStoreNATS    = "nats"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)
