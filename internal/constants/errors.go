package constants

import "errors"

// Configuration errors.
var (
	ErrNoCredentials      = errors.New("no client credentials configured, use 'dwolla login' or DWOLLA_CLIENT_ID/DWOLLA_CLIENT_SECRET")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrUnknownEnvironment = errors.New("unknown environment, expected sandbox or production")
)

// Command errors.
var (
	ErrUnsupportedOutput = errors.New("unsupported output format")
	ErrInvalidAmount     = errors.New("amount must be a decimal value such as 10.00")
	ErrInvalidMetadata   = errors.New("metadata must be given as key=value")
	ErrNoTokenManager    = errors.New("client does not expose its token manager")
	ErrRequestFailed     = errors.New("request failed")
)
