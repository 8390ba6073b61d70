package commands

import (
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/spf13/cobra"
)

// NewTransfersCommand creates the transfers command group.
func NewTransfersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transfers",
		Aliases: []string{"transfer", "tx"},
		Short:   "Manage transfers",
		Long:    "Initiate, list, inspect and cancel transfers between funding sources",
	}

	cmd.AddCommand(newTransfersListCommand())
	cmd.AddCommand(newTransfersGetCommand())
	cmd.AddCommand(newTransfersCreateCommand())
	cmd.AddCommand(newTransfersCancelCommand())
	cmd.AddCommand(newTransfersFailureCommand())

	return cmd
}

func newTransfersListCommand() *cobra.Command {
	var (
		params dwolla.TransferListParams
		status string
	)

	cmd := &cobra.Command{
		Use:   "list CUSTOMER_ID",
		Short: "List the transfers of a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			params.Status = dwolla.TransferStatus(status)

			transfers, err := client.Transfers().ListForCustomer(cmd.Context(), args[0], &params)
			if err != nil {
				return err
			}

			return render(cmd, transfers, transfersView(transfers.Items()))
		},
	}

	addListFlags(cmd, &params.ListParams)
	cmd.Flags().StringVar(&params.Search, "search", "", "search transfers")
	cmd.Flags().StringVar(&params.StartDate, "start-date", "", "only transfers created on or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&params.EndDate, "end-date", "", "only transfers created on or before (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&params.CorrelationID, "correlation-id", "", "filter by correlation ID")

	return cmd
}

func transfersView(transfers []dwolla.Transfer) view {
	v := view{header: []string{"ID", "Amount", "Status", "Created"}}

	for _, transfer := range transfers {
		v.rows = append(v.rows, []string{
			transfer.ID,
			formatMoney(&transfer.Amount),
			string(transfer.Status),
			formatTime(transfer.Created),
		})
	}

	return v
}

func transferView(transfer *dwolla.Transfer) view {
	return propertyView(
		"ID", transfer.ID,
		"Amount", formatMoney(&transfer.Amount),
		"Status", string(transfer.Status),
		"Correlation ID", orNotAvailable(transfer.CorrelationID),
		"Created", formatTime(transfer.Created),
	)
}

func newTransfersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TRANSFER_ID",
		Short: "Get a transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			transfer, err := client.Transfers().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, transfer, transferView(transfer))
		},
	}
}

// TransfersCreateOptions holds the options for creating a transfer.
type TransfersCreateOptions struct {
	Source         string
	Destination    string
	Amount         string
	Currency       string
	Metadata       []string
	CorrelationID  string
	IdempotencyKey string
}

func newTransfersCreateCommand() *cobra.Command {
	var opts TransfersCreateOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Initiate a transfer",
		Long: `Initiate a transfer between two funding sources. Every call is sent with an
Idempotency-Key; pass --idempotency-key to safely repeat a call that timed out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := strconv.ParseFloat(opts.Amount, 64)
			if err != nil {
				return fmt.Errorf("%w: %q", constants.ErrInvalidAmount, opts.Amount)
			}

			metadata, err := parseMetadata(opts.Metadata)
			if err != nil {
				return err
			}

			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			key := opts.IdempotencyKey
			if key == "" {
				key = dwolla.NewIdempotencyKey()
			}

			request := &dwolla.CreateTransferRequest{
				SourceFundingSourceID:      opts.Source,
				DestinationFundingSourceID: opts.Destination,
				Amount:                     dwolla.Money{Value: opts.Amount, Currency: opts.Currency},
				Metadata:                   metadata,
				CorrelationID:              opts.CorrelationID,
			}

			location, err := client.Transfers().Create(dwolla.WithIdempotencyKey(cmd.Context(), key), request)
			if err != nil {
				return err
			}

			return renderLocation(cmd, "transfer", location)
		},
	}

	cmd.Flags().StringVar(&opts.Source, "source", "", "source funding source ID")
	cmd.Flags().StringVar(&opts.Destination, "destination", "", "destination funding source ID")
	cmd.Flags().StringVar(&opts.Amount, "amount", "", "amount, e.g. 10.00")
	cmd.Flags().StringVar(&opts.Currency, "currency", "USD", "currency of the amount")
	cmd.Flags().StringArrayVar(&opts.Metadata, "metadata", nil, "KEY=VALUE metadata, repeatable")
	cmd.Flags().StringVar(&opts.CorrelationID, "correlation-id", "", "identifier to correlate with your records")
	cmd.Flags().StringVar(&opts.IdempotencyKey, "idempotency-key", "", "idempotency key, random when empty")

	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newTransfersCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel TRANSFER_ID",
		Short: "Cancel a pending transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			transfer, err := client.Transfers().Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, transfer, transferView(transfer))
		},
	}
}

func newTransfersFailureCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "failure TRANSFER_ID",
		Short: "Get the failure reason of a failed transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			failure, err := client.Transfers().GetFailure(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, failure, propertyView(
				"Code", failure.Code,
				"Description", failure.Description,
				"Explanation", orNotAvailable(failure.Explanation),
				"Created", formatTime(failure.Created),
			))
		},
	}
}
