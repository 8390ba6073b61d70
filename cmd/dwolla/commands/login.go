package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var clientID, clientSecret string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store application credentials",
		Long: `Verify an application key and secret by requesting an access token, then
save them to the configuration file. Missing values are prompted for.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error

			if clientID == "" {
				clientID, err = readSecret(cmd, "Client ID: ")
				if err != nil {
					return err
				}
			}

			if clientSecret == "" {
				clientSecret, err = readSecret(cmd, "Client secret: ")
				if err != nil {
					return err
				}
			}

			config := loadConfig()
			config.ClientID = clientID
			config.ClientSecret = clientSecret

			client, closeClient, err := createClientWithConfig(cmd, config)
			if err != nil {
				return err
			}
			defer closeClient()

			token, err := client.RefreshToken(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}

			err = persister.Update(func(stored *Config) error {
				stored.ClientID = clientID
				stored.ClientSecret = clientSecret

				if config.Environment != "" {
					stored.Environment = config.Environment
				}

				if config.APIEndpoint != "" {
					stored.APIEndpoint = config.APIEndpoint
				}

				return nil
			})
			if err != nil {
				return err
			}

			return render(cmd,
				map[string]string{"client_id": clientID, "token_expires_at": formatTime(token.ExpiresAt)},
				propertyView("Logged in", clientID, "Token expires", formatTime(token.ExpiresAt)),
			)
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "application key")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "application secret")

	return cmd
}
