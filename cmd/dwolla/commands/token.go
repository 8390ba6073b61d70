package commands

import (
	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/spf13/cobra"
)

// NewTokenCommand creates the token command group.
func NewTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the access token",
		Long:  "Show or refresh the access token of the configured application",
	}

	cmd.AddCommand(newTokenShowCommand())
	cmd.AddCommand(newTokenRefreshCommand())

	return cmd
}

func newTokenShowCommand() *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current access token",
		Long:  "Show the access token, acquiring one if no valid token is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			token, err := client.Token(cmd.Context())
			if err != nil {
				return err
			}

			return renderToken(cmd, token, reveal)
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the token instead of masking it")

	return cmd
}

func newTokenRefreshCommand() *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Acquire a new access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			token, err := client.RefreshToken(cmd.Context())
			if err != nil {
				return err
			}

			return renderToken(cmd, token, reveal)
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the token instead of masking it")

	return cmd
}

func renderToken(cmd *cobra.Command, token dwolla.Token, reveal bool) error {
	if !reveal {
		token.AccessToken = maskToken(token.AccessToken)
	}

	return render(cmd, token, propertyView(
		"Access token", token.AccessToken,
		"Expires at", formatTime(token.ExpiresAt),
	))
}

// maskToken keeps the first characters of token so tokens can be told apart.
func maskToken(token string) string {
	const visible = 6

	if len(token) <= visible {
		return constants.MaskedSecret
	}

	return token[:visible] + constants.MaskedSecret
}
