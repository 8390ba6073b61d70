package commands

import (
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/spf13/cobra"
)

// NewEventsCommand creates the events command group.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event"},
		Short:   "Read the event log",
	}

	cmd.AddCommand(newEventsListCommand())
	cmd.AddCommand(newEventsGetCommand())

	return cmd
}

func newEventsListCommand() *cobra.Command {
	var params dwolla.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			events, err := client.Events().List(cmd.Context(), &params)
			if err != nil {
				return err
			}

			v := view{header: []string{"ID", "Topic", "Resource", "Created"}}
			for _, event := range events.Items() {
				v.rows = append(v.rows, []string{event.ID, event.Topic, event.ResourceID, formatTime(event.Created)})
			}

			return render(cmd, events, v)
		},
	}

	addListFlags(cmd, &params)

	return cmd
}

func newEventsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get EVENT_ID",
		Short: "Get an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			event, err := client.Events().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, event, propertyView(
				"ID", event.ID,
				"Topic", event.Topic,
				"Resource", event.ResourceID,
				"Created", formatTime(event.Created),
			))
		},
	}
}
