package commands

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command, listing the links available to
// the application.
func NewRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Show the API root",
		Long:  "List the links of the API root available to the authenticated application",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			root, err := client.GetRoot(cmd.Context())
			if err != nil {
				return err
			}

			return render(cmd, root, linksView(root.Links))
		},
	}
}

func linksView(links dwolla.Links) view {
	names := make([]string, 0, len(links))
	for name := range links {
		names = append(names, name)
	}

	sort.Strings(names)

	v := view{header: []string{"Relation", "Href"}}
	for _, name := range names {
		v.rows = append(v.rows, []string{name, links[name].Href})
	}

	return v
}

// NewGetCommand creates the get command, which performs an authenticated GET
// of an arbitrary API path and prints the raw response body.
func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PATH",
		Short: "GET a raw API resource",
		Long:  "Perform an authenticated GET of PATH (e.g. /accounts/ID) and print the response body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			managed, ok := client.(tokenManaged)
			if !ok {
				return constants.ErrNoTokenManager
			}

			target := args[0]
			if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
				target = strings.TrimRight(managed.BaseURL(), "/") + "/" + strings.TrimLeft(target, "/")
			}

			request, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, target, nil)
			if err != nil {
				return fmt.Errorf("failed to create request: %w", err)
			}

			request.Header.Set("Accept", constants.ContentTypeHALJSON)

			response, err := managed.TokenManager().HTTPClient(cmd.Context()).Do(request)
			if err != nil {
				return fmt.Errorf("failed to get %s: %w", target, err)
			}
			defer func() { _ = response.Body.Close() }()

			_, err = io.Copy(cmd.OutOrStdout(), response.Body)
			if err != nil {
				return fmt.Errorf("failed to read response: %w", err)
			}

			if response.StatusCode >= constants.HTTPStatusBadRequest {
				return fmt.Errorf("%w: %s", constants.ErrRequestFailed, response.Status)
			}

			return nil
		},
	}
}
