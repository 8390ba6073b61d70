package commands

import (
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/spf13/cobra"
)

// NewBeneficialOwnersCommand creates the beneficial-owners command group.
func NewBeneficialOwnersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "beneficial-owners",
		Aliases: []string{"beneficial-owner", "owners"},
		Short:   "Manage beneficial owners",
		Long:    "Add, inspect and remove the beneficial owners of business customers and certify their ownership",
	}

	cmd.AddCommand(newBeneficialOwnersListCommand())
	cmd.AddCommand(newBeneficialOwnersGetCommand())
	cmd.AddCommand(newBeneficialOwnersCreateCommand())
	cmd.AddCommand(newBeneficialOwnersDeleteCommand())
	cmd.AddCommand(newBeneficialOwnershipCommand())
	cmd.AddCommand(newBeneficialOwnershipCertifyCommand())

	return cmd
}

func beneficialOwnerView(owner *dwolla.BeneficialOwner) view {
	return propertyView(
		"ID", owner.ID,
		"Name", owner.FirstName+" "+owner.LastName,
		"Verification status", orNotAvailable(owner.VerificationStatus),
		"Created", formatTime(owner.Created),
	)
}

func newBeneficialOwnersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list CUSTOMER_ID",
		Short: "List the beneficial owners of a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			owners, err := client.BeneficialOwners().List(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			v := view{header: []string{"ID", "Name", "Verification status", "Created"}}
			for _, owner := range owners.Items() {
				v.rows = append(v.rows, []string{
					owner.ID,
					owner.FirstName + " " + owner.LastName,
					orNotAvailable(owner.VerificationStatus),
					formatTime(owner.Created),
				})
			}

			return render(cmd, owners, v)
		},
	}
}

func newBeneficialOwnersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get OWNER_ID",
		Short: "Get a beneficial owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			owner, err := client.BeneficialOwners().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, owner, beneficialOwnerView(owner))
		},
	}
}

// BeneficialOwnersCreateOptions holds the options for adding a beneficial owner.
type BeneficialOwnersCreateOptions struct {
	Request     dwolla.CreateBeneficialOwnerRequest
	DateOfBirth string
}

func newBeneficialOwnersCreateCommand() *cobra.Command {
	var opts BeneficialOwnersCreateOptions

	cmd := &cobra.Command{
		Use:   "create CUSTOMER_ID",
		Short: "Add a beneficial owner to a business customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateOfBirth, err := parseDate(opts.DateOfBirth)
			if err != nil {
				return err
			}

			if dateOfBirth != nil {
				opts.Request.DateOfBirth = *dateOfBirth
			}

			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			location, err := client.BeneficialOwners().Create(cmd.Context(), args[0], &opts.Request)
			if err != nil {
				return err
			}

			return renderLocation(cmd, "beneficial owner", location)
		},
	}

	request := &opts.Request
	cmd.Flags().StringVar(&request.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&request.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&request.SSN, "ssn", "", "SSN")
	cmd.Flags().StringVar(&opts.DateOfBirth, "date-of-birth", "", "date of birth (YYYY-MM-DD)")
	cmd.Flags().StringVar(&request.Address.Address1, "address1", "", "street address")
	cmd.Flags().StringVar(&request.Address.City, "city", "", "city")
	cmd.Flags().StringVar(&request.Address.StateProvinceRegion, "state", "", "state, province or region")
	cmd.Flags().StringVar(&request.Address.PostalCode, "postal-code", "", "postal code")
	cmd.Flags().StringVar(&request.Address.Country, "country", "US", "two-letter country code")

	return cmd
}

func newBeneficialOwnersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete OWNER_ID",
		Short: "Remove a beneficial owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			owner, err := client.BeneficialOwners().Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, owner, beneficialOwnerView(owner))
		},
	}
}

func newBeneficialOwnershipCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ownership CUSTOMER_ID",
		Short: "Get the beneficial ownership status of a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			ownership, err := client.BeneficialOwners().GetOwnership(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, ownership, propertyView("Status", string(ownership.Status)))
		},
	}
}

func newBeneficialOwnershipCertifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "certify CUSTOMER_ID",
		Short: "Certify the beneficial ownership of a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			ownership, err := client.BeneficialOwners().CertifyOwnership(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, ownership, propertyView("Status", string(ownership.Status)))
		},
	}
}
