package linode

import (
	"encoding/json"
	"fmt"
)

// Operator tokens. These are the Linode API's filter spellings; equality is
// the one special case, serialized as a bare literal rather than an
// operator-tagged mapping.
const (
	OpEq       = "+eq"
	OpNeq      = "+neq"
	OpGt       = "+gt"
	OpGte      = "+gte"
	OpLt       = "+lt"
	OpLte      = "+lte"
	OpContains = "+contains"

	OpAnd = "+and"
	OpOr  = "+or"
)

// Filter is an immutable query predicate tree, serializable to the API's
// X-Filter wire format.
type Filter interface {
	filterNode()
}

// Comparison is a single field/operator/value predicate.
type Comparison struct {
	Field string
	Op    string
	Value any
}

func (Comparison) filterNode() {}

// Combine joins child predicates with a logical operator. Children are
// serialized in order; callers nest Combine nodes to express precedence.
type Combine struct {
	Op       string
	Children []Filter
}

func (Combine) filterNode() {}

// And joins filters with logical AND. Immediate same-operator children are
// flattened; argument order is preserved.
func And(filters ...Filter) Filter {
	return combine(OpAnd, filters)
}

// Or joins filters with logical OR.
func Or(filters ...Filter) Filter {
	return combine(OpOr, filters)
}

func combine(op string, filters []Filter) Filter {
	if len(filters) == 0 {
		return nil
	}

	if len(filters) == 1 {
		return filters[0]
	}

	children := make([]Filter, 0, len(filters))

	for _, f := range filters {
		if c, ok := f.(Combine); ok && c.Op == op {
			children = append(children, c.Children...)

			continue
		}

		children = append(children, f)
	}

	return Combine{Op: op, Children: children}
}

// FilterField builds comparisons against one filterable field. Obtain one
// from Descriptor.Filter; construction-time checks make bad field usage a
// local error rather than a 400 from the API.
type FilterField struct {
	owner string
	field Field
}

// Filter returns a comparison builder for a declared filterable field.
func (d *Descriptor) Filter(name string) (FilterField, error) {
	f, ok := d.Lookup(name)
	if !ok {
		return FilterField{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, d.Type, name)
	}

	if !f.Filterable {
		return FilterField{}, fmt.Errorf("%w: %s.%s", ErrNotFilterable, d.Type, name)
	}

	return FilterField{owner: d.Type, field: f}, nil
}

func (f FilterField) compare(op string, value any) (Filter, error) {
	want := f.field.Type

	// Contains matches a substring of a string field or a member of a list
	// field, so the operand is the element type.
	if op == OpContains && want == TypeStringList {
		want = TypeString
	}

	if !want.Matches(value) {
		return nil, fmt.Errorf("%w: %s.%s = %T", ErrTypeMismatch, f.owner, f.field.Name, value)
	}

	return Comparison{Field: f.field.Name, Op: op, Value: value}, nil
}

// Eq builds an equality comparison.
func (f FilterField) Eq(value any) (Filter, error) { return f.compare(OpEq, value) }

// Ne builds an inequality comparison.
func (f FilterField) Ne(value any) (Filter, error) { return f.compare(OpNeq, value) }

// Gt builds a greater-than comparison.
func (f FilterField) Gt(value any) (Filter, error) { return f.compare(OpGt, value) }

// Ge builds a greater-or-equal comparison.
func (f FilterField) Ge(value any) (Filter, error) { return f.compare(OpGte, value) }

// Lt builds a less-than comparison.
func (f FilterField) Lt(value any) (Filter, error) { return f.compare(OpLt, value) }

// Le builds a less-or-equal comparison.
func (f FilterField) Le(value any) (Filter, error) { return f.compare(OpLte, value) }

// Contains builds a substring (string fields) or membership (list fields)
// comparison.
func (f FilterField) Contains(value any) (Filter, error) { return f.compare(OpContains, value) }

// MarshalFilter serializes a predicate tree to the X-Filter JSON document.
func MarshalFilter(f Filter) ([]byte, error) {
	if f == nil {
		return nil, nil
	}

	node, err := filterValue(f)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("encoding filter: %w", err)
	}

	return data, nil
}

func filterValue(f Filter) (any, error) {
	switch node := f.(type) {
	case Comparison:
		if node.Op == OpEq {
			return map[string]any{node.Field: node.Value}, nil
		}

		return map[string]any{node.Field: map[string]any{node.Op: node.Value}}, nil
	case Combine:
		children := make([]any, 0, len(node.Children))

		for _, child := range node.Children {
			v, err := filterValue(child)
			if err != nil {
				return nil, err
			}

			children = append(children, v)
		}

		return map[string]any{node.Op: children}, nil
	default:
		return nil, fmt.Errorf("unsupported filter node %T", f)
	}
}

// ParseFilter reconstructs a predicate tree from its serialized form.
// Round-tripping MarshalFilter output yields an equivalent tree.
func ParseFilter(data []byte) (Filter, error) {
	var raw map[string]json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding filter: %w", err)
	}

	return parseNode(raw)
}

func parseNode(raw map[string]json.RawMessage) (Filter, error) {
	if len(raw) != 1 {
		return nil, fmt.Errorf("filter node must have exactly one key, got %d", len(raw))
	}

	for key, value := range raw {
		if key == OpAnd || key == OpOr {
			return parseCombine(key, value)
		}

		return parseComparison(key, value)
	}

	return nil, nil // unreachable
}

func parseCombine(op string, value json.RawMessage) (Filter, error) {
	var rawChildren []map[string]json.RawMessage

	if err := json.Unmarshal(value, &rawChildren); err != nil {
		return nil, fmt.Errorf("decoding %s children: %w", op, err)
	}

	children := make([]Filter, 0, len(rawChildren))

	for _, rc := range rawChildren {
		child, err := parseNode(rc)
		if err != nil {
			return nil, err
		}

		children = append(children, child)
	}

	return Combine{Op: op, Children: children}, nil
}

func parseComparison(field string, value json.RawMessage) (Filter, error) {
	// An operator-tagged sub-mapping is a non-equality comparison; anything
	// else is an equality literal.
	var tagged map[string]any

	if err := json.Unmarshal(value, &tagged); err == nil && len(tagged) == 1 {
		for op, operand := range tagged {
			switch op {
			case OpNeq, OpGt, OpGte, OpLt, OpLte, OpContains:
				return Comparison{Field: field, Op: op, Value: operand}, nil
			}
		}
	}

	var literal any

	if err := json.Unmarshal(value, &literal); err != nil {
		return nil, fmt.Errorf("decoding comparison for %q: %w", field, err)
	}

	return Comparison{Field: field, Op: OpEq, Value: literal}, nil
}
