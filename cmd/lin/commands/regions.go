package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegionsCommand creates the regions command group. Region data is
// public, so no token is needed.
func NewRegionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "regions",
		Aliases: []string{"region"},
		Short:   "List Linode regions",
	}

	cmd.AddCommand(newRegionsListCommand())
	cmd.AddCommand(newRegionsGetCommand())

	return cmd
}

func newRegionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List regions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(false)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			list, err := client.Regions().List(nil)
			if err != nil {
				return err
			}

			entities, err := list.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to list regions: %w", err)
			}

			return renderEntityList(ctx, entities,
				[]string{"label", "country", "status"}, "regions")
		},
	}
}

func newRegionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get REGION_ID",
		Short: "Show one region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(false)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			region, err := client.Regions().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get region: %w", err)
			}

			return renderEntity(ctx, region,
				[]string{"label", "country", "capabilities", "status"})
		},
	}
}
