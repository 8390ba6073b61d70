package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fivetwenty-io/dwolla-client/internal/auth"
	"github.com/fivetwenty-io/dwolla-client/internal/auth/store"
	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	"github.com/fivetwenty-io/dwolla-client/internal/logger"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwollaclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tokenManaged is implemented by clients exposing their token manager.
type tokenManaged interface {
	TokenManager() *auth.Manager
	BaseURL() string
}

// CreateClient builds a client from the effective configuration. The returned
// function releases the token store and must be called when done.
func CreateClient(cmd *cobra.Command) (dwolla.Client, func(), error) {
	return createClientWithConfig(cmd, loadConfig())
}

func createClientWithConfig(cmd *cobra.Command, config *Config) (dwolla.Client, func(), error) {
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, nil, constants.ErrNoCredentials
	}

	timeout := constants.DefaultHTTPTimeout

	if config.Timeout != "" {
		parsed, err := time.ParseDuration(config.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid timeout %q: %w", config.Timeout, err)
		}

		timeout = parsed
	}

	environment := dwolla.Environment(config.Environment)

	switch environment {
	case "":
		environment = dwolla.EnvironmentSandbox
	case dwolla.EnvironmentSandbox, dwolla.EnvironmentProduction:
	default:
		return nil, nil, fmt.Errorf("%w: %s", constants.ErrUnknownEnvironment, config.Environment)
	}

	tokenStore, err := createTokenStore(cmd, config)
	if err != nil {
		return nil, nil, err
	}

	clientConfig := &dwolla.Config{
		APIEndpoint:  config.APIEndpoint,
		Environment:  environment,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		HTTPTimeout:  timeout,
		TokenStore:   tokenStore,
	}

	if viper.GetBool("verbose") {
		clientConfig.Debug = true
		clientConfig.Logger = logger.NewAdapter(logger.New(cmd.ErrOrStderr(), "debug", os.Getenv("LOG_FORMAT")))
	}

	closeStore := func() { _ = store.Close(tokenStore) }

	client, err := dwollaclient.New(cmd.Context(), clientConfig)
	if err != nil {
		closeStore()

		return nil, nil, err
	}

	return client, closeStore, nil
}

func createTokenStore(cmd *cobra.Command, config *Config) (dwolla.TokenStore, error) {
	path, err := configFile()
	if err != nil {
		return nil, err
	}

	tokenStore, err := store.New(cmd.Context(), store.Config{
		Type:       config.TokenStore,
		Key:        config.ClientID,
		Path:       store.DefaultPath(filepath.Dir(path)),
		NATSURL:    config.NATSURL,
		NATSBucket: config.NATSBucket,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	return tokenStore, nil
}
