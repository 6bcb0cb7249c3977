package client

import (
	"context"

	"github.com/fivetwenty-io/linode-client/pkg/linode"
)

// InstancesClient works with Linode instances.
type InstancesClient struct {
	resourceClient
}

// NewInstancesClient creates a new instances client.
func NewInstancesClient(doer linode.Doer, registry *linode.Registry, pageSize int) *InstancesClient {
	return &InstancesClient{newResourceClient(doer, registry, linode.TypeInstance, pageSize)}
}

// Create provisions a new instance. Required fields are "region" and "type";
// the rest ("label", "image", "root_pass", "tags", ...) are optional.
func (c *InstancesClient) Create(ctx context.Context, fields map[string]any) (*linode.Entity, error) {
	return c.create(ctx, fields)
}

// Boot powers an instance on. configID zero boots the last used config.
func (c *InstancesClient) Boot(ctx context.Context, id string, configID int) error {
	var body any
	if configID != 0 {
		body = map[string]any{"config_id": configID}
	}

	_, err := c.action(ctx, id, "boot", body)

	return err
}

// Reboot restarts a running instance.
func (c *InstancesClient) Reboot(ctx context.Context, id string) error {
	_, err := c.action(ctx, id, "reboot", nil)

	return err
}

// Shutdown powers an instance off.
func (c *InstancesClient) Shutdown(ctx context.Context, id string) error {
	_, err := c.action(ctx, id, "shutdown", nil)

	return err
}

// Resize moves an instance to a different plan.
func (c *InstancesClient) Resize(ctx context.Context, id, typeID string) error {
	_, err := c.action(ctx, id, "resize", map[string]any{"type": typeID})

	return err
}

// Disks returns the instance's disks as a collection. The relation is
// cached on the handle; Invalidate drops it.
func (c *InstancesClient) Disks(ctx context.Context, instance *linode.Entity) (*linode.Collection, error) {
	_, disks, err := instance.Relation(ctx, "disks")

	return disks, err
}

// Configs returns the instance's configuration profiles as a collection.
func (c *InstancesClient) Configs(ctx context.Context, instance *linode.Entity) (*linode.Collection, error) {
	_, configs, err := instance.Relation(ctx, "configs")

	return configs, err
}

// IPs returns the instance's IP address information as a derived entity.
func (c *InstancesClient) IPs(ctx context.Context, instance *linode.Entity) (*linode.Entity, error) {
	ips, _, err := instance.Relation(ctx, "ips")

	return ips, err
}
