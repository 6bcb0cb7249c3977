package linode

import (
	"context"
	"encoding/json"
	"fmt"
)

// listEnvelope is the paginated list response shape. Pointer fields let a
// missing member be told apart from a zero value.
type listEnvelope struct {
	Data    []map[string]any `json:"data"`
	Page    *int             `json:"page"`
	Pages   *int             `json:"pages"`
	Results *int             `json:"results"`
}

// Page is one fetched page of a collection, kept verbatim as parsed records.
type Page struct {
	Records []map[string]any
	Number  int
	Pages   int
	Results int
}

// Collection is a lazily-fetched view over a paginated list endpoint. Pages
// are fetched on demand and cached for the collection's lifetime; the total
// extent is learned from whichever page arrives first. Like Entity, a
// Collection requires external serialization for concurrent use.
type Collection struct {
	client   Doer
	registry *Registry
	desc     *Descriptor

	path     string
	parents  []string
	filter   json.RawMessage
	order    *Order
	pageSize int

	pages    map[int]*Page
	entities map[int][]*Entity

	totalPages   int
	totalResults int
	known        bool
}

// NewCollection builds an unfetched view of endpoint, optionally constrained
// by a filter and ordering. pageSize zero uses the API default; a non-zero
// value outside [MinPageSize, MaxPageSize] is rejected.
func NewCollection(client Doer, registry *Registry, typeTag string, endpoint Endpoint, filter Filter, order *Order, pageSize int) (*Collection, error) {
	desc, ok := registry.Lookup(typeTag)
	if !ok {
		return nil, fmt.Errorf("%w: no descriptor for type %q", ErrUnknownField, typeTag)
	}

	if pageSize != 0 && (pageSize < MinPageSize || pageSize > MaxPageSize) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}

	path, err := endpoint.Collection()
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage

	if filter != nil {
		raw, err = MarshalFilter(filter)
		if err != nil {
			return nil, err
		}
	}

	return &Collection{
		client:   client,
		registry: registry,
		desc:     desc,
		path:     path,
		parents:  endpoint.Parents,
		filter:   raw,
		order:    order,
		pageSize: pageSize,
		pages:    make(map[int]*Page),
		entities: make(map[int][]*Entity),
	}, nil
}

// Type returns the element type-tag.
func (c *Collection) Type() string { return c.desc.Type }

// PageSize returns the effective page size.
func (c *Collection) PageSize() int {
	if c.pageSize == 0 {
		return DefaultPageSize
	}

	return c.pageSize
}

// EnsurePage returns page n, fetching it once if it is not cached. A failed
// fetch caches nothing, so the next call retries.
func (c *Collection) EnsurePage(ctx context.Context, n int) (*Page, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: page %d", ErrIndexOutOfRange, n)
	}

	if p, ok := c.pages[n]; ok {
		return p, nil
	}

	if c.known && n > c.totalPages {
		return nil, fmt.Errorf("%w: page %d of %d", ErrIndexOutOfRange, n, c.totalPages)
	}

	query := NewQueryParams().WithPage(n)
	if c.pageSize != 0 {
		query = query.WithPageSize(c.pageSize)
	}

	if c.order != nil {
		query = query.WithOrder(c.order.Field, c.order.Descending)
	}

	body, err := c.client.Get(ctx, c.path, query.ToValues(), c.filter)
	if err != nil {
		return nil, fmt.Errorf("listing %s page %d: %w", c.desc.Type, n, err)
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing %s page %d: %w: %w", c.desc.Type, n, ErrMalformedResponse, err)
	}

	if envelope.Data == nil || envelope.Page == nil || envelope.Pages == nil || envelope.Results == nil {
		return nil, fmt.Errorf("parsing %s page %d: %w: incomplete list envelope", c.desc.Type, n, ErrMalformedResponse)
	}

	page := &Page{
		Records: envelope.Data,
		Number:  *envelope.Page,
		Pages:   *envelope.Pages,
		Results: *envelope.Results,
	}

	c.pages[n] = page
	c.totalPages = page.Pages
	c.totalResults = page.Results
	c.known = true

	return page, nil
}

// Len returns the total element count, fetching the first page if the extent
// is not yet known.
func (c *Collection) Len(ctx context.Context) (int, error) {
	if !c.known {
		if _, err := c.EnsurePage(ctx, 1); err != nil {
			return 0, err
		}
	}

	return c.totalResults, nil
}

// TotalPages returns the page count, fetching the first page if the extent
// is not yet known.
func (c *Collection) TotalPages(ctx context.Context) (int, error) {
	if !c.known {
		if _, err := c.EnsurePage(ctx, 1); err != nil {
			return 0, err
		}
	}

	return c.totalPages, nil
}

// At returns the element at zero-based index i. The page holding i is
// computed from the page size and fetched directly: indexing into an
// unfetched collection costs exactly one request even when the index lands
// past the first page. The totals learned from that page then bound i.
func (c *Collection) At(ctx context.Context, i int) (*Entity, error) {
	if i < 0 {
		return nil, fmt.Errorf("%w: index %d", ErrIndexOutOfRange, i)
	}

	if c.known && i >= c.totalResults {
		return nil, fmt.Errorf("%w: index %d of %d", ErrIndexOutOfRange, i, c.totalResults)
	}

	size := c.PageSize()
	pageNum := i/size + 1

	page, err := c.EnsurePage(ctx, pageNum)
	if err != nil {
		return nil, err
	}

	if i >= c.totalResults {
		return nil, fmt.Errorf("%w: index %d of %d", ErrIndexOutOfRange, i, c.totalResults)
	}

	offset := i % size
	if offset >= len(page.Records) {
		return nil, fmt.Errorf("parsing %s page %d: %w: short page", c.desc.Type, pageNum, ErrMalformedResponse)
	}

	return c.entityAt(pageNum, offset, page), nil
}

// entityAt returns the cached Entity for a record, hydrating lazily so a
// page fetched for extent discovery does not materialize entities it never
// hands out.
func (c *Collection) entityAt(pageNum, offset int, page *Page) *Entity {
	slots, ok := c.entities[pageNum]
	if !ok {
		slots = make([]*Entity, len(page.Records))
		c.entities[pageNum] = slots
	}

	if slots[offset] == nil {
		slots[offset] = makeEntity(c.client, c.registry, c.desc, page.Records[offset], c.parents)
	}

	return slots[offset]
}

// All fetches every remaining page and returns the full element slice in
// API order.
func (c *Collection) All(ctx context.Context) ([]*Entity, error) {
	pages, err := c.TotalPages(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*Entity, 0, c.totalResults)

	for n := 1; n <= pages; n++ {
		page, err := c.EnsurePage(ctx, n)
		if err != nil {
			return nil, err
		}

		for i := range page.Records {
			out = append(out, c.entityAt(n, i, page))
		}
	}

	return out, nil
}

// ForEach walks every element in API order, fetching pages as the walk
// crosses page boundaries. Returning an error from fn stops the walk.
func (c *Collection) ForEach(ctx context.Context, fn func(*Entity) error) error {
	pages, err := c.TotalPages(ctx)
	if err != nil {
		return err
	}

	for n := 1; n <= pages; n++ {
		page, err := c.EnsurePage(ctx, n)
		if err != nil {
			return err
		}

		for i := range page.Records {
			if err := fn(c.entityAt(n, i, page)); err != nil {
				return err
			}
		}
	}

	return nil
}

// Iterator returns a forward iterator positioned before the first element.
func (c *Collection) Iterator(ctx context.Context) *Iterator {
	return &Iterator{ctx: ctx, collection: c}
}
