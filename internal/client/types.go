package client

import (
	"github.com/fivetwenty-io/linode-client/pkg/linode"
)

// TypesClient works with the instance type catalog. Types are read-only.
type TypesClient struct {
	resourceClient
}

// NewTypesClient creates a new types client.
func NewTypesClient(doer linode.Doer, registry *linode.Registry, pageSize int) *TypesClient {
	return &TypesClient{newResourceClient(doer, registry, linode.TypeInstanceType, pageSize)}
}
