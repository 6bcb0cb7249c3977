package linode

import (
	"fmt"
	"math"
	"strconv"
)

// FieldKind classifies how a declared field is resolved.
type FieldKind int

const (
	// KindScalar is a plain attribute carried in the entity body.
	KindScalar FieldKind = iota

	// KindDerivedEntity is a sub-resource fetched at its own endpoint and
	// exposed as a single Entity.
	KindDerivedEntity

	// KindDerivedCollection is a sub-resource list fetched at its own
	// endpoint and exposed as a Collection.
	KindDerivedCollection

	// KindComputed is derived locally from other attributes; it is never
	// sent on save and never triggers a fetch by itself.
	KindComputed
)

// ValueType declares the scalar type a field carries on the wire.
type ValueType int

const (
	TypeAny ValueType = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	TypeStringList
)

// Matches reports whether v is acceptable for the declared type. JSON
// decoding produces float64 for all numbers, so integral float64 values
// satisfy TypeInt.
func (t ValueType) Matches(v any) bool {
	if v == nil {
		return true
	}

	switch t {
	case TypeAny:
		return true
	case TypeString:
		_, ok := v.(string)

		return ok
	case TypeBool:
		_, ok := v.(bool)

		return ok
	case TypeInt:
		switch n := v.(type) {
		case int, int32, int64:
			return true
		case float64:
			return n == math.Trunc(n)
		default:
			return false
		}
	case TypeFloat:
		switch v.(type) {
		case float64, float32, int, int32, int64:
			return true
		default:
			return false
		}
	case TypeStringList:
		switch list := v.(type) {
		case []string:
			return true
		case []any:
			for _, item := range list {
				if _, ok := item.(string); !ok {
					return false
				}
			}

			return true
		default:
			return false
		}
	default:
		return false
	}
}

// Field declares one attribute of an entity type: how it is resolved, its
// scalar type, and whether it may be mutated or filtered on.
type Field struct {
	Name       string
	Kind       FieldKind
	Type       ValueType
	Mutable    bool
	Filterable bool

	// Relation is the type-tag of the derived entity/collection, set only
	// for derived kinds.
	Relation string

	// Endpoint is the relation's endpoint template, resolved with the
	// owning entity's parent chain plus its id. Set only for derived kinds.
	Endpoint string
}

// Descriptor is the static declaration of an entity type. Descriptors are
// registered once at startup and never mutated afterwards.
type Descriptor struct {
	// Type is the type-tag entities of this descriptor carry.
	Type string

	// Endpoint is the collection path template for the type.
	Endpoint string

	// IDField names the primary-key attribute in response bodies.
	IDField string

	// SaveInvalidatesRelations drops derived-relation caches after a
	// successful save. Default is to leave them untouched.
	SaveInvalidatesRelations bool

	fields map[string]Field
}

// NewDescriptor builds a Descriptor for a type-tag, collection endpoint
// template, and field declarations. The primary-key attribute defaults
// to "id".
func NewDescriptor(typeTag, endpoint string, fields ...Field) *Descriptor {
	d := &Descriptor{
		Type:     typeTag,
		Endpoint: endpoint,
		IDField:  "id",
		fields:   make(map[string]Field, len(fields)),
	}

	for _, f := range fields {
		d.fields[f.Name] = f
	}

	return d
}

// Lookup returns the declaration for a field name.
func (d *Descriptor) Lookup(name string) (Field, bool) {
	f, ok := d.fields[name]

	return f, ok
}

// ScalarFields returns the names of all declared scalar fields.
func (d *Descriptor) ScalarFields() []string {
	names := make([]string, 0, len(d.fields))

	for name, f := range d.fields {
		if f.Kind == KindScalar {
			names = append(names, name)
		}
	}

	return names
}

// Registry maps type-tags to descriptors. It is built once at startup and
// read-only afterwards; lookups are by tag, not by runtime type.
type Registry struct {
	descriptors map[string]*Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]*Descriptor)}
}

// MustRegister adds a descriptor, panicking on duplicate tags or descriptors
// whose derived fields reference endpoints without a relation tag. Both are
// programmer errors in the schema table.
func (r *Registry) MustRegister(d *Descriptor) {
	if _, exists := r.descriptors[d.Type]; exists {
		panic(fmt.Sprintf("linode: duplicate descriptor for type %q", d.Type))
	}

	for name, f := range d.fields {
		derived := f.Kind == KindDerivedEntity || f.Kind == KindDerivedCollection
		if derived && (f.Relation == "" || f.Endpoint == "") {
			panic(fmt.Sprintf("linode: derived field %s.%s needs a relation and endpoint", d.Type, name))
		}
	}

	r.descriptors[d.Type] = d
}

// Lookup returns the descriptor for a type-tag.
func (r *Registry) Lookup(typeTag string) (*Descriptor, bool) {
	d, ok := r.descriptors[typeTag]

	return d, ok
}

// idString renders a primary-key value from a decoded JSON body as a path
// segment. Numeric ids arrive as float64.
func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return fmt.Sprintf("%v", id)
	}
}
