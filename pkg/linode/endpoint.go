package linode

import (
	"fmt"
	"strings"
)

// placeholder is the segment substituted with a parent id when resolving an
// endpoint template.
const placeholder = "{}"

// Endpoint is a path pattern plus the parent context needed to resolve it.
// Top-level resources have no placeholders ("linode/instances"); nested
// resources carry one placeholder per parent ("domains/{}/records" with
// parents ["12345"]).
type Endpoint struct {
	Template string
	Parents  []string
}

// NewEndpoint builds an Endpoint for template with the given parent chain.
func NewEndpoint(template string, parents ...string) Endpoint {
	return Endpoint{Template: template, Parents: parents}
}

// Collection resolves the template into a concrete collection path.
func (e Endpoint) Collection() (string, error) {
	segments := strings.Split(e.Template, "/")
	next := 0

	for i, seg := range segments {
		if seg != placeholder {
			continue
		}

		if next >= len(e.Parents) {
			return "", fmt.Errorf("%w: template %q needs more than %d parent(s)",
				ErrParentMismatch, e.Template, len(e.Parents))
		}

		segments[i] = e.Parents[next]
		next++
	}

	if next != len(e.Parents) {
		return "", fmt.Errorf("%w: template %q takes %d parent(s), got %d",
			ErrParentMismatch, e.Template, next, len(e.Parents))
	}

	return strings.Join(segments, "/"), nil
}

// Resource resolves the template into a concrete path for a single resource.
func (e Endpoint) Resource(id string) (string, error) {
	collection, err := e.Collection()
	if err != nil {
		return "", err
	}

	return collection + "/" + id, nil
}
