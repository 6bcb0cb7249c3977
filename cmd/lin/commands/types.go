package commands

import (
	"fmt"

	"github.com/fivetwenty-io/linode-client/pkg/linode"
	"github.com/spf13/cobra"
)

// NewTypesCommand creates the types command group. Type data is public, so
// no token is needed.
func NewTypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "types",
		Aliases: []string{"type"},
		Short:   "List Linode instance types",
	}

	cmd.AddCommand(newTypesListCommand())
	cmd.AddCommand(newTypesGetCommand())

	return cmd
}

func newTypesListCommand() *cobra.Command {
	var class string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List instance types",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(false)
			if err != nil {
				return err
			}

			filter, err := buildFilter(linode.TypeInstanceType, []filterPair{
				{field: "class", value: class},
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			list, err := client.Types().List(listOptionsFromFlags(filter, "", false, 0))
			if err != nil {
				return err
			}

			entities, err := list.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to list types: %w", err)
			}

			return renderEntityList(ctx, entities,
				[]string{"label", "class", "vcpus", "memory", "disk"}, "types")
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "filter by class (nanode, standard, dedicated, ...)")

	return cmd
}

func newTypesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TYPE_ID",
		Short: "Show one instance type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(false)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			instanceType, err := client.Types().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get type: %w", err)
			}

			return renderEntity(ctx, instanceType,
				[]string{"label", "class", "vcpus", "memory", "disk", "transfer"})
		},
	}
}
