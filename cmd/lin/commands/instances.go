package commands

import (
	"fmt"

	"github.com/fivetwenty-io/linode-client/pkg/linode"
	"github.com/spf13/cobra"
)

// NewInstancesCommand creates the instances command group.
func NewInstancesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instances",
		Aliases: []string{"instance", "linodes"},
		Short:   "Manage Linode instances",
		Long:    "List, create, inspect, and operate Linode instances",
	}

	cmd.AddCommand(newInstancesListCommand())
	cmd.AddCommand(newInstancesGetCommand())
	cmd.AddCommand(newInstancesCreateCommand())
	cmd.AddCommand(newInstancesUpdateCommand())
	cmd.AddCommand(newInstancesDeleteCommand())
	cmd.AddCommand(newInstancesBootCommand())
	cmd.AddCommand(newInstancesRebootCommand())
	cmd.AddCommand(newInstancesShutdownCommand())
	cmd.AddCommand(newInstancesResizeCommand())
	cmd.AddCommand(newInstancesDisksCommand())

	return cmd
}

func newInstancesListCommand() *cobra.Command {
	var (
		region     string
		typeID     string
		label      string
		orderBy    string
		descending bool
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			filter, err := buildFilter(linode.TypeInstance, []filterPair{
				{field: "region", value: region},
				{field: "type", value: typeID},
				{field: "label", value: label},
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			list, err := client.Instances().List(listOptionsFromFlags(filter, orderBy, descending, pageSize))
			if err != nil {
				return err
			}

			entities, err := list.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to list instances: %w", err)
			}

			return renderEntityList(ctx, entities,
				[]string{"label", "region", "type", "status", "ipv4"}, "instances")
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "filter by region")
	cmd.Flags().StringVar(&typeID, "type", "", "filter by instance type")
	cmd.Flags().StringVar(&label, "label", "", "filter by label")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "sort by field")
	cmd.Flags().BoolVar(&descending, "desc", false, "sort descending")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "results per page")

	return cmd
}

func newInstancesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get INSTANCE_ID",
		Short: "Show one instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			instance, err := client.Instances().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get instance: %w", err)
			}

			return renderEntity(ctx, instance,
				[]string{"label", "region", "type", "status", "image", "ipv4", "ipv6", "tags", "created", "updated"})
		},
	}
}

func newInstancesCreateCommand() *cobra.Command {
	var (
		label    string
		region   string
		typeID   string
		image    string
		rootPass string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if region == "" {
				return ErrRegionRequired
			}

			if typeID == "" {
				return ErrTypeRequired
			}

			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			fields := map[string]any{
				"region": region,
				"type":   typeID,
			}
			if label != "" {
				fields["label"] = label
			}

			if image != "" {
				fields["image"] = image
			}

			if rootPass != "" {
				fields["root_pass"] = rootPass
			}

			if len(tags) > 0 {
				fields["tags"] = tags
			}

			ctx := cmd.Context()

			instance, err := client.Instances().Create(ctx, fields)
			if err != nil {
				return fmt.Errorf("failed to create instance: %w", err)
			}

			fmt.Printf("Created instance %s\n", instance.ID())

			return renderEntity(ctx, instance, []string{"label", "region", "type", "status"})
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "instance label")
	cmd.Flags().StringVar(&region, "region", "", "region id (required)")
	cmd.Flags().StringVar(&typeID, "type", "", "instance type id (required)")
	cmd.Flags().StringVar(&image, "image", "", "image id to deploy")
	cmd.Flags().StringVar(&rootPass, "root-pass", "", "root password for the deployed image")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tags to apply (repeatable)")

	return cmd
}

func newInstancesUpdateCommand() *cobra.Command {
	var (
		label string
		group string
		tags  []string
	)

	cmd := &cobra.Command{
		Use:   "update INSTANCE_ID",
		Short: "Update an instance",
		Long:  "Update mutable instance fields; only the changed fields are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			instance, err := client.Instances().Handle(args[0])
			if err != nil {
				return err
			}

			if label != "" {
				if err := instance.Set("label", label); err != nil {
					return err
				}
			}

			if group != "" {
				if err := instance.Set("group", group); err != nil {
					return err
				}
			}

			if len(tags) > 0 {
				values := make([]any, len(tags))
				for i, tag := range tags {
					values[i] = tag
				}

				if err := instance.Set("tags", values); err != nil {
					return err
				}
			}

			ctx := cmd.Context()

			if err := instance.Save(ctx); err != nil {
				return fmt.Errorf("failed to update instance: %w", err)
			}

			fmt.Printf("Updated instance %s\n", instance.ID())

			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "new label")
	cmd.Flags().StringVar(&group, "group", "", "new display group")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "replacement tags (repeatable)")

	return cmd
}

func newInstancesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete INSTANCE_ID",
		Short: "Delete an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			instance, err := client.Instances().Handle(args[0])
			if err != nil {
				return err
			}

			if err := instance.Delete(cmd.Context()); err != nil {
				return fmt.Errorf("failed to delete instance: %w", err)
			}

			fmt.Printf("Deleted instance %s\n", args[0])

			return nil
		},
	}
}

func newInstancesBootCommand() *cobra.Command {
	var configID int

	cmd := &cobra.Command{
		Use:   "boot INSTANCE_ID",
		Short: "Power an instance on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			if err := client.Instances().Boot(cmd.Context(), args[0], configID); err != nil {
				return fmt.Errorf("failed to boot instance: %w", err)
			}

			fmt.Printf("Booting instance %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().IntVar(&configID, "config", 0, "configuration profile to boot (default last used)")

	return cmd
}

func newInstancesRebootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reboot INSTANCE_ID",
		Short: "Restart an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			if err := client.Instances().Reboot(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to reboot instance: %w", err)
			}

			fmt.Printf("Rebooting instance %s\n", args[0])

			return nil
		},
	}
}

func newInstancesShutdownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shutdown INSTANCE_ID",
		Short: "Power an instance off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			if err := client.Instances().Shutdown(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to shut down instance: %w", err)
			}

			fmt.Printf("Shutting down instance %s\n", args[0])

			return nil
		},
	}
}

func newInstancesResizeCommand() *cobra.Command {
	var typeID string

	cmd := &cobra.Command{
		Use:   "resize INSTANCE_ID",
		Short: "Move an instance to a different plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if typeID == "" {
				return ErrTypeRequired
			}

			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			if err := client.Instances().Resize(cmd.Context(), args[0], typeID); err != nil {
				return fmt.Errorf("failed to resize instance: %w", err)
			}

			fmt.Printf("Resizing instance %s to %s\n", args[0], typeID)

			return nil
		},
	}

	cmd.Flags().StringVar(&typeID, "type", "", "target instance type id (required)")

	return cmd
}

func newInstancesDisksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disks INSTANCE_ID",
		Short: "List an instance's disks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			instance, err := client.Instances().Handle(args[0])
			if err != nil {
				return err
			}

			disks, err := client.Instances().Disks(ctx, instance)
			if err != nil {
				return fmt.Errorf("failed to list disks: %w", err)
			}

			entities, err := disks.All(ctx)
			if err != nil {
				return err
			}

			return renderEntityList(ctx, entities,
				[]string{"label", "status", "size", "filesystem"}, "disks")
		},
	}
}
