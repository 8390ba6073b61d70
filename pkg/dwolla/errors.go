package dwolla

import (
	"errors"
	"fmt"
	"strings"
)

// Dwolla error codes the client branches on.
const (
	ErrorCodeExpiredAccessToken = "ExpiredAccessToken"
	ErrorCodeInvalidAccessToken = "InvalidAccessToken"
	ErrorCodeNotFound           = "NotFound"
	ErrorCodeValidationError    = "ValidationError"
	ErrorCodeForbidden          = "Forbidden"
	ErrorCodeInvalidCredentials = "InvalidCredentials"
	ErrorCodeDuplicateResource  = "DuplicateResource"
	ErrorCodeUnexpectedStatus   = "UnexpectedStatus"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired        = errors.New("config is required")
	ErrAPIEndpointRequired   = errors.New("API endpoint is required")
	ErrCredentialsRequired   = errors.New("client ID and client secret are required")
	ErrNoLocation            = errors.New("response has no Location header")
	ErrInvalidResourceID     = errors.New("invalid resource ID")
	ErrFileRequired          = errors.New("file content is required")
	ErrUnsupportedTokenStore = errors.New("unsupported token store")
)

// TransportError means the request never produced a classifiable response:
// the connection failed, the call timed out, or the body could not be encoded
// or decoded.
type TransportError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Err != nil && e.Message == "" {
		return "transport error: " + e.Err.Error()
	}

	return "transport error: " + e.Message
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// EmbeddedError is one entry of the _embedded.errors array of an error envelope.
type EmbeddedError struct {
	Code    string `json:"code"            yaml:"code"`
	Message string `json:"message"         yaml:"message"`
	Path    string `json:"path,omitempty"  yaml:"path,omitempty"`
	Links   Links  `json:"_links,omitempty" yaml:"links,omitempty"`
}

// APIError represents an error envelope returned by the Dwolla API.
type APIError struct {
	Code     string          `json:"code"    yaml:"code"`
	Message  string          `json:"message" yaml:"message"`
	Embedded []EmbeddedError `json:"-"       yaml:"embedded,omitempty"`
	Meta     ResponseMeta    `json:"-"       yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	var builder strings.Builder

	builder.WriteString(e.Code)

	if e.Message != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Message)
	}

	for _, embedded := range e.Embedded {
		builder.WriteString("; ")

		if embedded.Path != "" {
			builder.WriteString(embedded.Path)
			builder.WriteString(" ")
		}

		builder.WriteString(embedded.Message)
	}

	if e.Meta.StatusCode != 0 {
		builder.WriteString(fmt.Sprintf(" (status: %d", e.Meta.StatusCode))

		if e.Meta.RequestID != "" {
			builder.WriteString(", request id: " + e.Meta.RequestID)
		}

		builder.WriteString(")")
	}

	return builder.String()
}

// AuthError means an access token could not be obtained.
type AuthError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("authentication failed: %s: %s", e.Code, e.Message)
	}

	return "authentication failed: " + e.Message
}

// Unwrap returns the APIError or TransportError behind the failure.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsExpiredToken reports whether err is an APIError with code ExpiredAccessToken.
func IsExpiredToken(err error) bool {
	return hasCode(err, ErrorCodeExpiredAccessToken)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsValidationError checks if the error is a validation error.
func IsValidationError(err error) bool {
	return hasCode(err, ErrorCodeValidationError)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasCode(err, ErrorCodeForbidden)
}

// IsTransportError reports whether err is or wraps a TransportError.
func IsTransportError(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}

// RequestID returns the x-request-id of the response behind err, if any.
func RequestID(err error) string {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Meta.RequestID
	}

	return ""
}

func hasCode(err error, code string) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}

	return false
}
