package commands

import (
	"fmt"

	"github.com/fivetwenty-io/linode-client/pkg/linode"
	"github.com/spf13/cobra"
)

// NewVolumesCommand creates the volumes command group.
func NewVolumesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "volumes",
		Aliases: []string{"volume"},
		Short:   "Manage block storage volumes",
	}

	cmd.AddCommand(newVolumesListCommand())
	cmd.AddCommand(newVolumesGetCommand())
	cmd.AddCommand(newVolumesCreateCommand())
	cmd.AddCommand(newVolumesDeleteCommand())
	cmd.AddCommand(newVolumesAttachCommand())
	cmd.AddCommand(newVolumesDetachCommand())
	cmd.AddCommand(newVolumesResizeCommand())
	cmd.AddCommand(newVolumesCloneCommand())

	return cmd
}

func newVolumesListCommand() *cobra.Command {
	var (
		region     string
		label      string
		orderBy    string
		descending bool
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List volumes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			filter, err := buildFilter(linode.TypeVolume, []filterPair{
				{field: "region", value: region},
				{field: "label", value: label},
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			list, err := client.Volumes().List(listOptionsFromFlags(filter, orderBy, descending, pageSize))
			if err != nil {
				return err
			}

			entities, err := list.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to list volumes: %w", err)
			}

			return renderEntityList(ctx, entities,
				[]string{"label", "status", "size", "region", "linode_id"}, "volumes")
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "filter by region")
	cmd.Flags().StringVar(&label, "label", "", "filter by label")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "sort by field")
	cmd.Flags().BoolVar(&descending, "desc", false, "sort descending")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "results per page")

	return cmd
}

func newVolumesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get VOLUME_ID",
		Short: "Show one volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			volume, err := client.Volumes().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get volume: %w", err)
			}

			return renderEntity(ctx, volume,
				[]string{"label", "status", "size", "region", "linode_id", "filesystem_path", "tags"})
		},
	}
}

func newVolumesCreateCommand() *cobra.Command {
	var (
		label    string
		region   string
		linodeID int
		size     int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a volume",
		RunE: func(cmd *cobra.Command, args []string) error {
			if label == "" {
				return ErrLabelRequired
			}

			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			fields := map[string]any{"label": label}
			if region != "" {
				fields["region"] = region
			}

			if linodeID != 0 {
				fields["linode_id"] = linodeID
			}

			if size != 0 {
				fields["size"] = size
			}

			ctx := cmd.Context()

			volume, err := client.Volumes().Create(ctx, fields)
			if err != nil {
				return fmt.Errorf("failed to create volume: %w", err)
			}

			fmt.Printf("Created volume %s\n", volume.ID())

			return renderEntity(ctx, volume, []string{"label", "status", "size", "region"})
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "volume label (required)")
	cmd.Flags().StringVar(&region, "region", "", "region id")
	cmd.Flags().IntVar(&linodeID, "linode", 0, "instance to attach on creation")
	cmd.Flags().IntVar(&size, "size", 0, "size in GB")

	return cmd
}

func newVolumesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete VOLUME_ID",
		Short: "Delete a volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			volume, err := client.Volumes().Handle(args[0])
			if err != nil {
				return err
			}

			if err := volume.Delete(cmd.Context()); err != nil {
				return fmt.Errorf("failed to delete volume: %w", err)
			}

			fmt.Printf("Deleted volume %s\n", args[0])

			return nil
		},
	}
}

func newVolumesAttachCommand() *cobra.Command {
	var linodeID int

	cmd := &cobra.Command{
		Use:   "attach VOLUME_ID",
		Short: "Attach a volume to an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if linodeID == 0 {
				return ErrIDRequired
			}

			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			if err := client.Volumes().Attach(cmd.Context(), args[0], linodeID); err != nil {
				return fmt.Errorf("failed to attach volume: %w", err)
			}

			fmt.Printf("Attaching volume %s to instance %d\n", args[0], linodeID)

			return nil
		},
	}

	cmd.Flags().IntVar(&linodeID, "linode", 0, "instance id (required)")

	return cmd
}

func newVolumesDetachCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detach VOLUME_ID",
		Short: "Detach a volume from its instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			if err := client.Volumes().Detach(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to detach volume: %w", err)
			}

			fmt.Printf("Detaching volume %s\n", args[0])

			return nil
		},
	}
}

func newVolumesResizeCommand() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "resize VOLUME_ID",
		Short: "Grow a volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			if err := client.Volumes().Resize(cmd.Context(), args[0], size); err != nil {
				return fmt.Errorf("failed to resize volume: %w", err)
			}

			fmt.Printf("Resizing volume %s to %d GB\n", args[0], size)

			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "new size in GB (required)")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

func newVolumesCloneCommand() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "clone VOLUME_ID",
		Short: "Clone a volume within its region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if label == "" {
				return ErrLabelRequired
			}

			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			if err := client.Volumes().Clone(cmd.Context(), args[0], label); err != nil {
				return fmt.Errorf("failed to clone volume: %w", err)
			}

			fmt.Printf("Cloning volume %s as %q\n", args[0], label)

			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "label for the clone (required)")

	return cmd
}
