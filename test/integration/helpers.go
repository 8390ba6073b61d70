//go:build integration

package integration

import (
	"os"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIEndpoint  string
	ClientID     string
	ClientSecret string
	Verbose      bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint:  getEnvOrDefault("DWOLLA_API_ENDPOINT", "https://api-sandbox.dwolla.com"),
		ClientID:     os.Getenv("DWOLLA_CLIENT_ID"),
		ClientSecret: os.Getenv("DWOLLA_CLIENT_SECRET"),
		Verbose:      os.Getenv("DWOLLA_VERBOSE") == "true",
	}
}

// IsConfigured reports whether sandbox credentials are available.
func (c *TestConfig) IsConfigured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
