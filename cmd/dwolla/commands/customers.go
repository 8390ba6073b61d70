package commands

import (
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/spf13/cobra"
)

// NewCustomersCommand creates the customers command group.
func NewCustomersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer", "cust"},
		Short:   "Manage customers",
		Long:    "List, create, update and inspect the customers of the application",
	}

	cmd.AddCommand(newCustomersListCommand())
	cmd.AddCommand(newCustomersGetCommand())
	cmd.AddCommand(newCustomersCreateCommand())
	cmd.AddCommand(newCustomersUpdateCommand())
	cmd.AddCommand(newCustomersIavTokenCommand())

	return cmd
}

func newCustomersListCommand() *cobra.Command {
	var (
		params dwolla.CustomerListParams
		status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			params.Status = dwolla.CustomerStatus(status)

			customers, err := client.Customers().List(cmd.Context(), &params)
			if err != nil {
				return err
			}

			return render(cmd, customers, customersView(customers.Items()))
		},
	}

	addListFlags(cmd, &params.ListParams)
	cmd.Flags().StringVar(&params.Search, "search", "", "search names, business names and email addresses")
	cmd.Flags().StringVar(&params.Email, "email", "", "filter by exact email address")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")

	return cmd
}

func customersView(customers []dwolla.Customer) view {
	v := view{header: []string{"ID", "Name", "Email", "Type", "Status", "Created"}}

	for _, customer := range customers {
		v.rows = append(v.rows, []string{
			customer.ID,
			customerName(customer),
			customer.Email,
			string(customer.Type),
			string(customer.Status),
			formatTime(customer.Created),
		})
	}

	return v
}

func customerName(customer dwolla.Customer) string {
	if customer.BusinessName != "" {
		return customer.BusinessName
	}

	return customer.FirstName + " " + customer.LastName
}

func newCustomersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CUSTOMER_ID",
		Short: "Get a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			customer, err := client.Customers().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, customer, customerView(customer))
		},
	}
}

func customerView(customer *dwolla.Customer) view {
	return propertyView(
		"ID", customer.ID,
		"Name", customerName(*customer),
		"Email", customer.Email,
		"Type", string(customer.Type),
		"Status", string(customer.Status),
		"Business classification", orNotAvailable(customer.BusinessClassification),
		"Created", formatTime(customer.Created),
	)
}

// CustomersCreateOptions holds the options for creating a customer.
type CustomersCreateOptions struct {
	Request     dwolla.CreateCustomerRequest
	Type        string
	DateOfBirth string
}

func newCustomersCreateCommand() *cobra.Command {
	var opts CustomersCreateOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		Long:  "Create a customer. Omitting --type creates an unverified customer.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dateOfBirth, err := parseDate(opts.DateOfBirth)
			if err != nil {
				return err
			}

			opts.Request.Type = dwolla.CustomerType(opts.Type)
			opts.Request.DateOfBirth = dateOfBirth

			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			ctx := dwolla.WithIdempotencyKey(cmd.Context(), dwolla.NewIdempotencyKey())

			location, err := client.Customers().Create(ctx, &opts.Request)
			if err != nil {
				return err
			}

			return renderLocation(cmd, "customer", location)
		},
	}

	request := &opts.Request
	cmd.Flags().StringVar(&request.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&request.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&request.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.Type, "type", "", "customer type (receive-only, personal, business)")
	cmd.Flags().StringVar(&request.BusinessName, "business-name", "", "registered business name")
	cmd.Flags().StringVar(&request.IPAddress, "ip-address", "", "IP address of the customer")
	cmd.Flags().StringVar(&request.Address1, "address1", "", "street address")
	cmd.Flags().StringVar(&request.City, "city", "", "city")
	cmd.Flags().StringVar(&request.State, "state", "", "two-letter state code")
	cmd.Flags().StringVar(&request.PostalCode, "postal-code", "", "postal code")
	cmd.Flags().StringVar(&opts.DateOfBirth, "date-of-birth", "", "date of birth (YYYY-MM-DD)")
	cmd.Flags().StringVar(&request.SSN, "ssn", "", "last four digits or full SSN")
	cmd.Flags().StringVar(&request.CorrelationID, "correlation-id", "", "identifier to correlate with your records")

	return cmd
}

func newCustomersUpdateCommand() *cobra.Command {
	var (
		request dwolla.UpdateCustomerRequest
		status  string
	)

	cmd := &cobra.Command{
		Use:   "update CUSTOMER_ID",
		Short: "Update a customer",
		Long:  "Update the contact details of a customer, or suspend, deactivate or reactivate it with --status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			request.Status = dwolla.UpdateCustomerStatus(status)

			customer, err := client.Customers().Update(cmd.Context(), args[0], &request)
			if err != nil {
				return err
			}

			return render(cmd, customer, customerView(customer))
		},
	}

	cmd.Flags().StringVar(&request.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&request.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&request.Email, "email", "", "email address")
	cmd.Flags().StringVar(&request.Address1, "address1", "", "street address")
	cmd.Flags().StringVar(&request.City, "city", "", "city")
	cmd.Flags().StringVar(&request.State, "state", "", "two-letter state code")
	cmd.Flags().StringVar(&request.PostalCode, "postal-code", "", "postal code")
	cmd.Flags().StringVar(&request.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&status, "status", "", "suspended, deactivated or reactivated")

	return cmd
}

func newCustomersIavTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "iav-token CUSTOMER_ID",
		Short: "Create an instant account verification token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			token, err := client.Customers().GetIavToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, token, propertyView("Token", token.Token))
		},
	}
}
