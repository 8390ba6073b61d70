package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatJSON = constants.FormatJSON
	OutputFormatYAML = constants.FormatYAML
)

// view is the table rendering of a command result.
type view struct {
	header []string
	rows   [][]string
}

// render writes value in the output format selected by --output. Tables use
// the header and rows of v; json and yaml encode value itself.
func render(cmd *cobra.Command, value interface{}, v view) error {
	out := cmd.OutOrStdout()

	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(constants.JSONIndentSize)

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return nil
	case constants.FormatTable, "":
		return renderTable(out, v)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedOutput, viper.GetString("output"))
	}
}

func renderTable(out io.Writer, v view) error {
	table := tablewriter.NewWriter(out)

	header := make([]interface{}, len(v.header))
	for i, name := range v.header {
		header[i] = name
	}

	table.Header(header...)

	for _, row := range v.rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// propertyView renders name/value pairs as a two-column table.
func propertyView(pairs ...string) view {
	v := view{header: []string{"Property", "Value"}}

	for i := 0; i+1 < len(pairs); i += 2 {
		v.rows = append(v.rows, []string{pairs[i], pairs[i+1]})
	}

	return v
}

// renderLocation prints the URL of a created resource.
func renderLocation(cmd *cobra.Command, kind string, location fmt.Stringer) error {
	id := lastSegment(location.String())

	return render(cmd,
		map[string]string{"id": id, "location": location.String()},
		propertyView("Created", kind, "ID", id, "Location", location.String()),
	)
}

// lastSegment returns the resource ID at the end of a resource URL.
func lastSegment(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")

	return trimmed[strings.LastIndex(trimmed, "/")+1:]
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return constants.NotAvailable
	}

	return value.Format(time.RFC3339)
}

func formatMoney(money *dwolla.Money) string {
	if money == nil || money.Value == "" {
		return constants.NotAvailable
	}

	return money.String()
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

// parseMetadata turns KEY=VALUE flags into a map.
func parseMetadata(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil //nolint:nilnil // no metadata given
	}

	metadata := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidMetadata, pair)
		}

		metadata[key] = value
	}

	return metadata, nil
}

// readSecret prompts for a value without echoing it when stdin is a terminal.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in int

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)

	if !term.IsTerminal(fd) {
		var value string

		_, err := fmt.Fscanln(cmd.InOrStdin(), &value)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return strings.TrimSpace(value), nil
	}

	secret, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(cmd.ErrOrStderr())

	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	return strings.TrimSpace(string(secret)), nil
}

// parseDate parses a YYYY-MM-DD flag value. An empty value yields nil.
func parseDate(value string) (*dwolla.Date, error) {
	if value == "" {
		return nil, nil //nolint:nilnil // no date given
	}

	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}

	date := dwolla.NewDate(parsed.Year(), parsed.Month(), parsed.Day())

	return &date, nil
}

// addListFlags registers the paging flags shared by list commands.
func addListFlags(cmd *cobra.Command, params *dwolla.ListParams) {
	cmd.Flags().IntVar(&params.Limit, "limit", constants.DefaultPageSize, "maximum number of results")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "number of results to skip")
}
