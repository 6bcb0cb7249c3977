package commands

import (
	"fmt"

	"github.com/fivetwenty-io/linode-client/pkg/linode"
	"github.com/spf13/cobra"
)

// NewEventsCommand creates the events command group.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event"},
		Short:   "View the account event feed",
	}

	cmd.AddCommand(newEventsListCommand())
	cmd.AddCommand(newEventsGetCommand())
	cmd.AddCommand(newEventsSeenCommand())
	cmd.AddCommand(newEventsReadCommand())

	return cmd
}

func newEventsListCommand() *cobra.Command {
	var (
		action   string
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List account events, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			filter, err := buildFilter(linode.TypeEvent, []filterPair{
				{field: "action", value: action},
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			list, err := client.Events().List(listOptionsFromFlags(filter, "created", true, pageSize))
			if err != nil {
				return err
			}

			entities, err := list.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}

			return renderEntityList(ctx, entities,
				[]string{"action", "status", "username", "created"}, "events")
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "filter by action (linode_boot, volume_create, ...)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "results per page")

	return cmd
}

func newEventsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get EVENT_ID",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			event, err := client.Events().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get event: %w", err)
			}

			return renderEntity(ctx, event,
				[]string{"action", "status", "username", "created", "percent_complete", "read", "seen"})
		},
	}
}

func newEventsSeenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seen EVENT_ID",
		Short: "Mark an event and everything older as seen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			if err := client.Events().MarkSeen(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to mark event seen: %w", err)
			}

			fmt.Printf("Marked events up to %s as seen\n", args[0])

			return nil
		},
	}
}

func newEventsReadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read EVENT_ID",
		Short: "Mark an event as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			if err := client.Events().MarkRead(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to mark event read: %w", err)
			}

			fmt.Printf("Marked event %s as read\n", args[0])

			return nil
		},
	}
}
