package client

import (
	"context"

	"github.com/fivetwenty-io/linode-client/pkg/linode"
)

// DomainsClient works with DNS domains.
type DomainsClient struct {
	resourceClient

	records *DomainRecordsClient
}

// NewDomainsClient creates a new domains client.
func NewDomainsClient(doer linode.Doer, registry *linode.Registry, pageSize int) *DomainsClient {
	return &DomainsClient{
		resourceClient: newResourceClient(doer, registry, linode.TypeDomain, pageSize),
		records:        NewDomainRecordsClient(doer, registry, pageSize),
	}
}

// Create registers a new domain. Required fields are "domain" and "type"
// ("master" or "slave"); master zones also need "soa_email".
func (c *DomainsClient) Create(ctx context.Context, fields map[string]any) (*linode.Entity, error) {
	return c.create(ctx, fields)
}

// Records returns the records client scoped to one domain.
func (c *DomainsClient) Records() *DomainRecordsClient {
	return c.records
}

// DomainRecordsClient works with the records of a domain. Every operation
// takes the owning domain's id as the parent.
type DomainRecordsClient struct {
	resourceClient
}

// NewDomainRecordsClient creates a new domain records client.
func NewDomainRecordsClient(doer linode.Doer, registry *linode.Registry, pageSize int) *DomainRecordsClient {
	return &DomainRecordsClient{newResourceClient(doer, registry, linode.TypeDomainRecord, pageSize)}
}

// Create adds a record to a domain. Required fields are "type" and, for most
// record types, "name" and "target".
func (c *DomainRecordsClient) Create(ctx context.Context, domainID string, fields map[string]any) (*linode.Entity, error) {
	return c.create(ctx, fields, domainID)
}

// Handle returns a lazy handle to one record of a domain.
func (c *DomainRecordsClient) Handle(recordID, domainID string) (*linode.Entity, error) {
	return c.resourceClient.Handle(recordID, domainID)
}

// Get fetches one record of a domain.
func (c *DomainRecordsClient) Get(ctx context.Context, recordID, domainID string) (*linode.Entity, error) {
	return c.resourceClient.Get(ctx, recordID, domainID)
}

// List returns a lazy collection of a domain's records.
func (c *DomainRecordsClient) List(domainID string, opts *ListOptions) (*linode.Collection, error) {
	return c.resourceClient.List(opts, domainID)
}
