package commands

import (
	"github.com/spf13/cobra"
)

// NewBusinessClassificationsCommand creates the business-classifications command group.
func NewBusinessClassificationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "business-classifications",
		Aliases: []string{"business-classification", "bc"},
		Short:   "Browse business classifications",
		Long:    "List the business categories and the industry classification IDs used to create business customers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List business classifications with their industries",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			classifications, err := client.BusinessClassifications().List(cmd.Context())
			if err != nil {
				return err
			}

			v := view{header: []string{"Category", "Industry ID", "Industry"}}
			for _, classification := range classifications.Items() {
				for _, industry := range classification.Industries() {
					v.rows = append(v.rows, []string{classification.Name, industry.ID, industry.Name})
				}
			}

			return render(cmd, classifications, v)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get CLASSIFICATION_ID",
		Short: "Get a business classification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			classification, err := client.BusinessClassifications().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			v := view{header: []string{"Industry ID", "Industry"}}
			for _, industry := range classification.Industries() {
				v.rows = append(v.rows, []string{industry.ID, industry.Name})
			}

			return render(cmd, classification, v)
		},
	})

	return cmd
}
