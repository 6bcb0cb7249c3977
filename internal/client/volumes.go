package client

import (
	"context"

	"github.com/fivetwenty-io/linode-client/pkg/linode"
)

// VolumesClient works with block storage volumes.
type VolumesClient struct {
	resourceClient
}

// NewVolumesClient creates a new volumes client.
func NewVolumesClient(doer linode.Doer, registry *linode.Registry, pageSize int) *VolumesClient {
	return &VolumesClient{newResourceClient(doer, registry, linode.TypeVolume, pageSize)}
}

// Create provisions a new volume. Required fields are "label" and either
// "region" or "linode_id".
func (c *VolumesClient) Create(ctx context.Context, fields map[string]any) (*linode.Entity, error) {
	return c.create(ctx, fields)
}

// Attach connects a volume to an instance.
func (c *VolumesClient) Attach(ctx context.Context, id string, linodeID int) error {
	_, err := c.action(ctx, id, "attach", map[string]any{"linode_id": linodeID})

	return err
}

// Detach disconnects a volume from its instance.
func (c *VolumesClient) Detach(ctx context.Context, id string) error {
	_, err := c.action(ctx, id, "detach", nil)

	return err
}

// Resize grows a volume. Volumes never shrink.
func (c *VolumesClient) Resize(ctx context.Context, id string, sizeGB int) error {
	_, err := c.action(ctx, id, "resize", map[string]any{"size": sizeGB})

	return err
}

// Clone copies a volume within its region.
func (c *VolumesClient) Clone(ctx context.Context, id, label string) error {
	_, err := c.action(ctx, id, "clone", map[string]any{"label": label})

	return err
}
