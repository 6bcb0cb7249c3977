package linode

import (
	"context"
	"encoding/json"
	"fmt"
)

// EntityKey identifies an entity by type-tag and primary key. Keys are
// comparable, so they can be used as map keys; two entities are the same
// resource iff their keys are equal, regardless of which fetch produced them
// or what their attribute caches currently hold.
type EntityKey struct {
	Type string
	ID   string
}

// relationCache holds one derived relation's value with its own loaded flag,
// independent of the main attribute cache.
type relationCache struct {
	entity     *Entity
	collection *Collection
}

// Entity is a client-side handle to one remote resource instance. It is
// created with identifying keys only (no network activity), populated on
// first attribute access or explicit Refresh, and tracks local mutations
// until Save.
//
// An Entity is a mutable cache with no internal locking: concurrent use of
// the same instance requires external serialization. Independent instances
// for the same resource are safe to use concurrently.
type Entity struct {
	client   Doer
	registry *Registry
	desc     *Descriptor

	id      string
	parents []string

	// resourcePath overrides the descriptor-derived path for singleton
	// sub-resources whose endpoint is not collection-shaped.
	resourcePath string

	attrs     map[string]any
	dirty     map[string]struct{}
	relations map[string]*relationCache
	loaded    bool
	gone      bool
}

// NewEntity creates an unloaded handle for (typeTag, id) with the given
// parent chain. No request is made until an attribute is accessed.
func NewEntity(client Doer, registry *Registry, typeTag, id string, parents ...string) (*Entity, error) {
	desc, ok := registry.Lookup(typeTag)
	if !ok {
		return nil, fmt.Errorf("%w: no descriptor for type %q", ErrUnknownField, typeTag)
	}

	return &Entity{
		client:    client,
		registry:  registry,
		desc:      desc,
		id:        id,
		parents:   parents,
		attrs:     make(map[string]any),
		dirty:     make(map[string]struct{}),
		relations: make(map[string]*relationCache),
	}, nil
}

// makeEntity hydrates an entity from a response record. List and single
// fetch responses populate the full scalar set, so the result is loaded.
func makeEntity(client Doer, registry *Registry, desc *Descriptor, record map[string]any, parents []string) *Entity {
	e := &Entity{
		client:    client,
		registry:  registry,
		desc:      desc,
		parents:   parents,
		attrs:     make(map[string]any, len(record)),
		dirty:     make(map[string]struct{}),
		relations: make(map[string]*relationCache),
		loaded:    true,
	}

	if id, ok := record[desc.IDField]; ok {
		e.id = idString(id)
	}

	e.replaceScalars(record)

	return e
}

// HydrateEntity builds a loaded entity from an already-fetched record, as
// returned by create responses. The record must carry the type's primary
// key.
func HydrateEntity(client Doer, registry *Registry, typeTag string, record map[string]any, parents ...string) (*Entity, error) {
	desc, ok := registry.Lookup(typeTag)
	if !ok {
		return nil, fmt.Errorf("%w: no descriptor for type %q", ErrUnknownField, typeTag)
	}

	e := makeEntity(client, registry, desc, record, parents)
	if e.id == "" {
		return nil, fmt.Errorf("%w: record has no %q key", ErrMalformedResponse, desc.IDField)
	}

	return e, nil
}

// ID returns the primary key.
func (e *Entity) ID() string { return e.id }

// Type returns the entity's type-tag.
func (e *Entity) Type() string { return e.desc.Type }

// Key returns the comparable identity of the entity.
func (e *Entity) Key() EntityKey {
	return EntityKey{Type: e.desc.Type, ID: e.id}
}

// Equal reports whether other names the same remote resource. Attribute
// caches and provenance do not participate.
func (e *Entity) Equal(other *Entity) bool {
	return other != nil && e.Key() == other.Key()
}

// Loaded reports whether the full scalar set has been fetched at least once.
func (e *Entity) Loaded() bool { return e.loaded }

// Gone reports whether the entity was deleted through this handle.
func (e *Entity) Gone() bool { return e.gone }

// Dirty returns the names of fields modified locally but not yet saved.
func (e *Entity) Dirty() []string {
	names := make([]string, 0, len(e.dirty))
	for name := range e.dirty {
		names = append(names, name)
	}

	return names
}

func (e *Entity) path() (string, error) {
	if e.resourcePath != "" {
		return e.resourcePath, nil
	}

	return NewEndpoint(e.desc.Endpoint, e.parents...).Resource(e.id)
}

// Get resolves a declared field. Cached values return with no I/O; a scalar
// miss fetches the resource body once and replaces every non-dirty scalar;
// a derived relation miss fetches only that relation's endpoint.
func (e *Entity) Get(ctx context.Context, field string) (any, error) {
	if e.gone {
		return nil, fmt.Errorf("getting %s.%s: %w", e.desc.Type, field, ErrGone)
	}

	f, ok := e.desc.Lookup(field)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, e.desc.Type, field)
	}

	switch f.Kind {
	case KindComputed:
		return e.attrs[field], nil
	case KindScalar:
		if v, present := e.attrs[field]; present {
			return v, nil
		}

		if !e.loaded {
			if err := e.load(ctx); err != nil {
				return nil, err
			}
		}

		return e.attrs[field], nil
	case KindDerivedEntity:
		return e.relatedEntity(ctx, f)
	case KindDerivedCollection:
		return e.relatedCollection(ctx, f)
	default:
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, e.desc.Type, field)
	}
}

// GetString resolves a scalar field as a string.
func (e *Entity) GetString(ctx context.Context, field string) (string, error) {
	v, err := e.Get(ctx, field)
	if err != nil {
		return "", err
	}

	s, _ := v.(string)

	return s, nil
}

// GetInt resolves a scalar field as an int.
func (e *Entity) GetInt(ctx context.Context, field string) (int, error) {
	v, err := e.Get(ctx, field)
	if err != nil {
		return 0, err
	}

	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, nil
	}
}

// Relation resolves a derived field as a typed result: an Entity for
// derived-entity fields, a Collection for derived-collection fields.
func (e *Entity) Relation(ctx context.Context, field string) (*Entity, *Collection, error) {
	v, err := e.Get(ctx, field)
	if err != nil {
		return nil, nil, err
	}

	switch rel := v.(type) {
	case *Entity:
		return rel, nil, nil
	case *Collection:
		return nil, rel, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s.%s", ErrNotDerived, e.desc.Type, field)
	}
}

func (e *Entity) relatedEntity(ctx context.Context, f Field) (any, error) {
	if cached, ok := e.relations[f.Name]; ok {
		return cached.entity, nil
	}

	relDesc, ok := e.registry.Lookup(f.Relation)
	if !ok {
		return nil, fmt.Errorf("%w: relation type %q", ErrUnknownField, f.Relation)
	}

	endpoint := NewEndpoint(f.Endpoint, append(append([]string{}, e.parents...), e.id)...)

	path, err := endpoint.Collection()
	if err != nil {
		return nil, err
	}

	body, err := e.client.Get(ctx, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching %s.%s: %w", e.desc.Type, f.Name, err)
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("parsing %s.%s: %w: %w", e.desc.Type, f.Name, ErrMalformedResponse, err)
	}

	rel := makeEntity(e.client, e.registry, relDesc, record, endpoint.Parents)
	rel.resourcePath = path

	if rel.id == "" {
		rel.id = e.id
	}

	e.relations[f.Name] = &relationCache{entity: rel}

	return rel, nil
}

func (e *Entity) relatedCollection(ctx context.Context, f Field) (any, error) {
	if cached, ok := e.relations[f.Name]; ok {
		return cached.collection, nil
	}

	endpoint := NewEndpoint(f.Endpoint, append(append([]string{}, e.parents...), e.id)...)

	col, err := NewCollection(e.client, e.registry, f.Relation, endpoint, nil, nil, 0)
	if err != nil {
		return nil, err
	}

	// The relation is fetched independently of the main body; the first
	// page both populates the collection and learns its extent.
	if _, err := col.EnsurePage(ctx, 1); err != nil {
		return nil, fmt.Errorf("fetching %s.%s: %w", e.desc.Type, f.Name, err)
	}

	e.relations[f.Name] = &relationCache{collection: col}

	return col, nil
}

// load fetches the resource body and atomically replaces all non-dirty
// scalar attributes.
func (e *Entity) load(ctx context.Context) error {
	path, err := e.path()
	if err != nil {
		return err
	}

	body, err := e.client.Get(ctx, path, nil, nil)
	if err != nil {
		return fmt.Errorf("fetching %s %s: %w", e.desc.Type, e.id, err)
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return fmt.Errorf("parsing %s %s: %w: %w", e.desc.Type, e.id, ErrMalformedResponse, err)
	}

	e.replaceScalars(record)
	e.loaded = true

	return nil
}

// replaceScalars copies every declared scalar from record into the attribute
// cache, skipping locally dirty fields.
func (e *Entity) replaceScalars(record map[string]any) {
	for _, name := range e.desc.ScalarFields() {
		if _, isDirty := e.dirty[name]; isDirty {
			continue
		}

		if v, ok := record[name]; ok {
			e.attrs[name] = v
		} else {
			delete(e.attrs, name)
		}
	}
}

// Set records a new value for a mutable field and marks it dirty.
// Assignment always dirties, even when the value equals the cached one.
func (e *Entity) Set(field string, value any) error {
	if e.gone {
		return fmt.Errorf("setting %s.%s: %w", e.desc.Type, field, ErrGone)
	}

	f, ok := e.desc.Lookup(field)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, e.desc.Type, field)
	}

	if !f.Mutable {
		return fmt.Errorf("%w: %s.%s", ErrImmutableField, e.desc.Type, field)
	}

	if !f.Type.Matches(value) {
		return fmt.Errorf("%w: %s.%s = %T", ErrTypeMismatch, e.desc.Type, field, value)
	}

	e.attrs[field] = value
	e.dirty[field] = struct{}{}

	return nil
}

// Save persists dirty fields. With an empty dirty set it is a no-op and
// issues no request. On success the full response body is merged (server
// state wins), the dirty set is cleared, and relation caches are left
// untouched unless the type declares otherwise. On failure the dirty set is
// left intact so the caller may retry.
func (e *Entity) Save(ctx context.Context) error {
	if e.gone {
		return fmt.Errorf("saving %s %s: %w", e.desc.Type, e.id, ErrGone)
	}

	if len(e.dirty) == 0 {
		return nil
	}

	payload := make(map[string]any, len(e.dirty))
	for name := range e.dirty {
		payload[name] = e.attrs[name]
	}

	path, err := e.path()
	if err != nil {
		return err
	}

	body, err := e.client.Put(ctx, path, payload)
	if err != nil {
		return fmt.Errorf("saving %s %s: %w", e.desc.Type, e.id, err)
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return fmt.Errorf("parsing save response for %s %s: %w: %w", e.desc.Type, e.id, ErrMalformedResponse, err)
	}

	e.dirty = make(map[string]struct{})
	e.replaceScalars(record)
	e.loaded = true

	if e.desc.SaveInvalidatesRelations {
		e.relations = make(map[string]*relationCache)
	}

	return nil
}

// Invalidate clears the loaded flag and all relation caches without touching
// the dirty set; the next access re-fetches.
func (e *Entity) Invalidate() {
	e.loaded = false
	e.attrs = dirtyOnly(e.attrs, e.dirty)
	e.relations = make(map[string]*relationCache)
}

func dirtyOnly(attrs map[string]any, dirty map[string]struct{}) map[string]any {
	kept := make(map[string]any, len(dirty))

	for name := range dirty {
		if v, ok := attrs[name]; ok {
			kept[name] = v
		}
	}

	return kept
}

// Refresh forces a body fetch regardless of the loaded flag.
func (e *Entity) Refresh(ctx context.Context) error {
	if e.gone {
		return fmt.Errorf("refreshing %s %s: %w", e.desc.Type, e.id, ErrGone)
	}

	return e.load(ctx)
}

// Delete removes the remote resource. On success the handle transitions to
// a terminal gone state; any later Get/Set/Save/Delete fails with ErrGone
// and no network activity.
func (e *Entity) Delete(ctx context.Context) error {
	if e.gone {
		return fmt.Errorf("deleting %s %s: %w", e.desc.Type, e.id, ErrGone)
	}

	path, err := e.path()
	if err != nil {
		return err
	}

	if _, err := e.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting %s %s: %w", e.desc.Type, e.id, err)
	}

	e.gone = true
	e.relations = make(map[string]*relationCache)

	return nil
}
