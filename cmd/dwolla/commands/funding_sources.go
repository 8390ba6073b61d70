package commands

import (
	"strconv"

	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/spf13/cobra"
)

// NewFundingSourcesCommand creates the funding-sources command group.
func NewFundingSourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "funding-sources",
		Aliases: []string{"funding-source", "fs"},
		Short:   "Manage funding sources",
		Long:    "Attach, verify, inspect and remove the bank accounts and balances of customers",
	}

	cmd.AddCommand(newFundingSourcesListCommand())
	cmd.AddCommand(newFundingSourcesCreateCommand())
	cmd.AddCommand(newFundingSourcesGetCommand())
	cmd.AddCommand(newFundingSourcesBalanceCommand())
	cmd.AddCommand(newFundingSourcesRemoveCommand())
	cmd.AddCommand(newFundingSourcesMicroDepositsCommand())

	return cmd
}

func newFundingSourcesListCommand() *cobra.Command {
	var includeRemoved bool

	cmd := &cobra.Command{
		Use:   "list CUSTOMER_ID",
		Short: "List the funding sources of a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			sources, err := client.Customers().ListFundingSources(cmd.Context(), args[0], includeRemoved)
			if err != nil {
				return err
			}

			return render(cmd, sources, fundingSourcesView(sources.Items()))
		},
	}

	cmd.Flags().BoolVar(&includeRemoved, "removed", false, "include removed funding sources")

	return cmd
}

func fundingSourcesView(sources []dwolla.FundingSource) view {
	v := view{header: []string{"ID", "Name", "Type", "Bank account type", "Status", "Removed"}}

	for _, source := range sources {
		v.rows = append(v.rows, []string{
			source.ID,
			source.Name,
			source.Type,
			orNotAvailable(string(source.BankAccountType)),
			source.Status,
			strconv.FormatBool(source.Removed),
		})
	}

	return v
}

func fundingSourceView(source *dwolla.FundingSource) view {
	return propertyView(
		"ID", source.ID,
		"Name", source.Name,
		"Type", source.Type,
		"Bank account type", orNotAvailable(string(source.BankAccountType)),
		"Bank", orNotAvailable(source.BankName),
		"Status", source.Status,
		"Removed", strconv.FormatBool(source.Removed),
		"Created", formatTime(source.Created),
	)
}

func newFundingSourcesCreateCommand() *cobra.Command {
	var (
		request         dwolla.CreateFundingSourceRequest
		bankAccountType string
	)

	cmd := &cobra.Command{
		Use:   "create CUSTOMER_ID",
		Short: "Attach a bank account to a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			request.BankAccountType = dwolla.BankAccountType(bankAccountType)
			ctx := dwolla.WithIdempotencyKey(cmd.Context(), dwolla.NewIdempotencyKey())

			location, err := client.Customers().CreateFundingSource(ctx, args[0], &request)
			if err != nil {
				return err
			}

			return renderLocation(cmd, "funding source", location)
		},
	}

	cmd.Flags().StringVar(&request.Name, "name", "", "nickname of the funding source")
	cmd.Flags().StringVar(&request.RoutingNumber, "routing-number", "", "nine digit routing number")
	cmd.Flags().StringVar(&request.AccountNumber, "account-number", "", "bank account number")
	cmd.Flags().StringVar(&bankAccountType, "bank-account-type", "checking", "checking, savings, general-ledger or loan")
	cmd.Flags().StringVar(&request.PlaidToken, "plaid-token", "", "processor token from Plaid")

	return cmd
}

func newFundingSourcesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get FUNDING_SOURCE_ID",
		Short: "Get a funding source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			source, err := client.FundingSources().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, source, fundingSourceView(source))
		},
	}
}

func newFundingSourcesBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance FUNDING_SOURCE_ID",
		Short: "Get the balance of a funding source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			balance, err := client.FundingSources().GetBalance(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, balance, propertyView(
				"Balance", formatMoney(balance.Balance),
				"Total", formatMoney(balance.Total),
				"Status", orNotAvailable(balance.Status),
				"Last updated", formatTime(balance.LastUpdated),
			))
		},
	}
}

func newFundingSourcesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove FUNDING_SOURCE_ID",
		Short: "Remove a funding source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			source, err := client.FundingSources().Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, source, fundingSourceView(source))
		},
	}
}

func newFundingSourcesMicroDepositsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "micro-deposits",
		Aliases: []string{"md"},
		Short:   "Verify funding sources with micro-deposits",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get FUNDING_SOURCE_ID",
		Short: "Get the micro-deposit status of a funding source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			deposits, err := client.FundingSources().GetMicroDeposits(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			failure := ""
			if deposits.Failure != nil {
				failure = deposits.Failure.Code + ": " + deposits.Failure.Description
			}

			return render(cmd, deposits, propertyView(
				"Status", deposits.Status,
				"Created", formatTime(deposits.Created),
				"Failure", orNotAvailable(failure),
			))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "initiate FUNDING_SOURCE_ID",
		Short: "Send two micro-deposits to a funding source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			location, err := client.FundingSources().InitiateMicroDeposits(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return renderLocation(cmd, "micro-deposits", location)
		},
	})

	cmd.AddCommand(newMicroDepositsVerifyCommand())

	return cmd
}

func newMicroDepositsVerifyCommand() *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "verify FUNDING_SOURCE_ID AMOUNT1 AMOUNT2",
		Short: "Verify a funding source with the two micro-deposit amounts",
		Args:  cobra.ExactArgs(3), //nolint:mnd // id and two amounts
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			request := &dwolla.VerifyMicroDepositsRequest{
				Amount1: dwolla.Money{Value: args[1], Currency: currency},
				Amount2: dwolla.Money{Value: args[2], Currency: currency},
			}

			err = client.FundingSources().VerifyMicroDeposits(cmd.Context(), args[0], request)
			if err != nil {
				return err
			}

			return render(cmd, map[string]string{"id": args[0], "status": "verified"},
				propertyView("Verified", args[0]))
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "USD", "currency of the amounts")

	return cmd
}
