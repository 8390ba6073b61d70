package commands

import (
	"strconv"

	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/spf13/cobra"
)

// NewWebhooksCommand creates the webhooks command group.
func NewWebhooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "webhooks",
		Aliases: []string{"webhook", "webhook-subscriptions"},
		Short:   "Manage webhook subscriptions",
	}

	cmd.AddCommand(newWebhooksListCommand())
	cmd.AddCommand(newWebhooksGetCommand())
	cmd.AddCommand(newWebhooksCreateCommand())
	cmd.AddCommand(newWebhooksDeleteCommand())

	return cmd
}

func webhookView(subscription *dwolla.WebhookSubscription) view {
	return propertyView(
		"ID", subscription.ID,
		"URL", subscription.URL,
		"Paused", strconv.FormatBool(subscription.Paused),
		"Created", formatTime(subscription.Created),
	)
}

func newWebhooksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List webhook subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			subscriptions, err := client.WebhookSubscriptions().List(cmd.Context())
			if err != nil {
				return err
			}

			v := view{header: []string{"ID", "URL", "Paused", "Created"}}
			for _, subscription := range subscriptions.Items() {
				v.rows = append(v.rows, []string{
					subscription.ID,
					subscription.URL,
					strconv.FormatBool(subscription.Paused),
					formatTime(subscription.Created),
				})
			}

			return render(cmd, subscriptions, v)
		},
	}
}

func newWebhooksGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SUBSCRIPTION_ID",
		Short: "Get a webhook subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			subscription, err := client.WebhookSubscriptions().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, subscription, webhookView(subscription))
		},
	}
}

func newWebhooksCreateCommand() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "create URL",
		Short: "Subscribe a URL to webhook events",
		Long:  "Subscribe a URL to webhook events. The signing secret is prompted for when --secret is not given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error

			if secret == "" {
				secret, err = readSecret(cmd, "Webhook secret: ")
				if err != nil {
					return err
				}
			}

			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			location, err := client.WebhookSubscriptions().Create(cmd.Context(), &dwolla.CreateWebhookSubscriptionRequest{
				URL:    args[0],
				Secret: secret,
			})
			if err != nil {
				return err
			}

			return renderLocation(cmd, "webhook subscription", location)
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "secret used to sign webhook payloads")

	return cmd
}

func newWebhooksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete SUBSCRIPTION_ID",
		Short: "Delete a webhook subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			subscription, err := client.WebhookSubscriptions().Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, subscription, webhookView(subscription))
		},
	}
}
