package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/linode-client/pkg/linode"
)

// ListOptions carries the optional constraints for a List call.
type ListOptions struct {
	Filter   linode.Filter
	Order    *linode.Order
	PageSize int
}

// resourceClient is the shared base for per-resource clients. Each resource
// client fixes a type-tag and exposes the subset of operations its endpoint
// supports.
type resourceClient struct {
	doer     linode.Doer
	registry *linode.Registry
	typeTag  string
	pageSize int
}

func newResourceClient(doer linode.Doer, registry *linode.Registry, typeTag string, pageSize int) resourceClient {
	return resourceClient{doer: doer, registry: registry, typeTag: typeTag, pageSize: pageSize}
}

// Handle returns a lazy entity handle. No request is made until an
// attribute is accessed.
func (r *resourceClient) Handle(id string, parents ...string) (*linode.Entity, error) {
	return linode.NewEntity(r.doer, r.registry, r.typeTag, id, parents...)
}

// Get returns an eagerly fetched entity, surfacing a 404 immediately.
func (r *resourceClient) Get(ctx context.Context, id string, parents ...string) (*linode.Entity, error) {
	entity, err := r.Handle(id, parents...)
	if err != nil {
		return nil, err
	}

	if err := entity.Refresh(ctx); err != nil {
		return nil, err
	}

	return entity, nil
}

// List returns a lazy collection over the resource's endpoint. Nothing is
// fetched until the collection is first consumed.
func (r *resourceClient) List(opts *ListOptions, parents ...string) (*linode.Collection, error) {
	desc, ok := r.registry.Lookup(r.typeTag)
	if !ok {
		return nil, fmt.Errorf("%w: no descriptor for type %q", linode.ErrUnknownField, r.typeTag)
	}

	var (
		filter   linode.Filter
		order    *linode.Order
		pageSize = r.pageSize
	)

	if opts != nil {
		filter = opts.Filter
		order = opts.Order

		if opts.PageSize != 0 {
			pageSize = opts.PageSize
		}
	}

	return linode.NewCollection(r.doer, r.registry, r.typeTag,
		linode.NewEndpoint(desc.Endpoint, parents...), filter, order, pageSize)
}

// create POSTs fields to the collection endpoint and returns the hydrated
// entity from the response body.
func (r *resourceClient) create(ctx context.Context, fields map[string]any, parents ...string) (*linode.Entity, error) {
	desc, ok := r.registry.Lookup(r.typeTag)
	if !ok {
		return nil, fmt.Errorf("%w: no descriptor for type %q", linode.ErrUnknownField, r.typeTag)
	}

	path, err := linode.NewEndpoint(desc.Endpoint, parents...).Collection()
	if err != nil {
		return nil, err
	}

	body, err := r.doer.Post(ctx, path, fields)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", r.typeTag, err)
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("parsing create response for %s: %w: %w", r.typeTag, linode.ErrMalformedResponse, err)
	}

	return linode.HydrateEntity(r.doer, r.registry, r.typeTag, record, parents...)
}

// action POSTs to a named sub-path of one resource ("boot", "reboot",
// "resize"). The API returns either an empty body or the updated resource.
func (r *resourceClient) action(ctx context.Context, id, name string, body any, parents ...string) ([]byte, error) {
	desc, ok := r.registry.Lookup(r.typeTag)
	if !ok {
		return nil, fmt.Errorf("%w: no descriptor for type %q", linode.ErrUnknownField, r.typeTag)
	}

	path, err := linode.NewEndpoint(desc.Endpoint, parents...).Resource(id)
	if err != nil {
		return nil, err
	}

	resp, err := r.doer.Post(ctx, path+"/"+name, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s %s: %w", name, r.typeTag, id, err)
	}

	return resp, nil
}
