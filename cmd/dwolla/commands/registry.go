package commands

import "github.com/spf13/cobra"

// Registry returns the constructors of the top-level commands, except version
// which needs build information.
func Registry() []func() *cobra.Command {
	return []func() *cobra.Command{
		NewLoginCommand,
		NewConfigCommand,
		NewTokenCommand,
		NewRootCommand,
		NewGetCommand,
		NewCustomersCommand,
		NewFundingSourcesCommand,
		NewTransfersCommand,
		NewDocumentsCommand,
		NewBeneficialOwnersCommand,
		NewWebhooksCommand,
		NewEventsCommand,
		NewBusinessClassificationsCommand,
	}
}
