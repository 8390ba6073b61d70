package commands

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/spf13/cobra"
)

// NewDocumentsCommand creates the documents command group.
func NewDocumentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"document", "docs"},
		Short:   "Manage identity documents",
		Long:    "Upload and inspect the identity documents of customers and beneficial owners",
	}

	cmd.AddCommand(newDocumentsListCommand())
	cmd.AddCommand(newDocumentsGetCommand())
	cmd.AddCommand(newDocumentsUploadCommand())

	return cmd
}

func newDocumentsListCommand() *cobra.Command {
	var owner bool

	cmd := &cobra.Command{
		Use:   "list CUSTOMER_ID",
		Short: "List the documents of a customer or, with --owner, of a beneficial owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			var documents *dwolla.DocumentList
			if owner {
				documents, err = client.Documents().ListForBeneficialOwner(cmd.Context(), args[0])
			} else {
				documents, err = client.Documents().ListForCustomer(cmd.Context(), args[0])
			}

			if err != nil {
				return err
			}

			v := view{header: []string{"ID", "Type", "Status", "Failure reason", "Created"}}
			for _, document := range documents.Items() {
				v.rows = append(v.rows, []string{
					document.ID,
					string(document.Type),
					string(document.Status),
					orNotAvailable(document.FailureReason),
					formatTime(document.Created),
				})
			}

			return render(cmd, documents, v)
		},
	}

	cmd.Flags().BoolVar(&owner, "owner", false, "the ID is a beneficial owner ID")

	return cmd
}

func newDocumentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DOCUMENT_ID",
		Short: "Get a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			document, err := client.Documents().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, document, propertyView(
				"ID", document.ID,
				"Type", string(document.Type),
				"Status", string(document.Status),
				"Failure reason", orNotAvailable(document.FailureReason),
				"Created", formatTime(document.Created),
			))
		},
	}
}

func newDocumentsUploadCommand() *cobra.Command {
	var (
		documentType string
		owner        bool
	)

	cmd := &cobra.Command{
		Use:   "upload CUSTOMER_ID FILE",
		Short: "Upload a document for a customer or, with --owner, a beneficial owner",
		Args:  cobra.ExactArgs(2), //nolint:mnd // id and file
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[1]

			file, err := os.Open(path) //nolint:gosec // the user names the file to upload
			if err != nil {
				return fmt.Errorf("failed to open document: %w", err)
			}
			defer func() { _ = file.Close() }()

			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			request := &dwolla.UploadDocumentRequest{
				DocumentType: dwolla.DocumentType(documentType),
				Document: dwolla.File{
					Filename:    filepath.Base(path),
					ContentType: documentContentType(path),
					Content:     file,
				},
			}

			upload := client.Documents().UploadForCustomer
			if owner {
				upload = client.Documents().UploadForBeneficialOwner
			}

			location, err := upload(cmd.Context(), args[0], request)
			if err != nil {
				return err
			}

			return renderLocation(cmd, "document", location)
		},
	}

	cmd.Flags().StringVar(&documentType, "type", string(dwolla.DocumentTypePassport), "idCard, passport, license or other")
	cmd.Flags().BoolVar(&owner, "owner", false, "the ID is a beneficial owner ID")

	return cmd
}

// documentContentType guesses the media type from the file extension.
func documentContentType(path string) string {
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		return "application/octet-stream"
	}

	return contentType
}
