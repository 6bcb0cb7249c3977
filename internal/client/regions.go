package client

import (
	"github.com/fivetwenty-io/linode-client/pkg/linode"
)

// RegionsClient works with the region catalog. Regions are read-only.
type RegionsClient struct {
	resourceClient
}

// NewRegionsClient creates a new regions client.
func NewRegionsClient(doer linode.Doer, registry *linode.Registry, pageSize int) *RegionsClient {
	return &RegionsClient{newResourceClient(doer, registry, linode.TypeRegion, pageSize)}
}
