package linode

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIReason is a single error entry from the Linode API error body.
// Field is set when the error refers to a specific request field.
type APIReason struct {
	Reason string `json:"reason"          yaml:"reason"`
	Field  string `json:"field,omitempty" yaml:"field,omitempty"`
}

func (r APIReason) String() string {
	if r.Field != "" {
		return fmt.Sprintf("[%s] %s", r.Field, r.Reason)
	}

	return r.Reason
}

// Error represents an error returned by the Linode API. It carries the HTTP
// status code that produced it and the structured reason list from the
// response body, when one was present.
type Error struct {
	StatusCode int         `json:"-"`
	Reasons    []APIReason `json:"errors"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Reasons) == 0 {
		return fmt.Sprintf("linode: unexpected status %d", e.StatusCode)
	}

	parts := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		parts[i] = r.String()
	}

	return fmt.Sprintf("linode: %s (status: %d)", strings.Join(parts, "; "), e.StatusCode)
}

// FieldErrors returns the reasons that name a request field, keyed by field.
// Useful for surfacing validation failures per field.
func (e *Error) FieldErrors() map[string]string {
	if len(e.Reasons) == 0 {
		return nil
	}

	fields := make(map[string]string)

	for _, r := range e.Reasons {
		if r.Field != "" {
			fields[r.Field] = r.Reason
		}
	}

	return fields
}

// NewError builds an Error from an HTTP status code and raw response body.
// Bodies that do not carry the {"errors": [...]} envelope yield an Error
// with an empty reason list.
func NewError(statusCode int, body []byte) *Error {
	apiErr := &Error{StatusCode: statusCode}
	if len(body) > 0 {
		_ = json.Unmarshal(body, apiErr)
	}

	return apiErr
}

// Local usage errors, raised synchronously with no I/O attempted.
var (
	// ErrGone is returned for any operation on an entity that was deleted
	// through this client.
	ErrGone = errors.New("entity has been deleted")

	// ErrUnknownField is returned when a field name is not declared in the
	// entity type's descriptor.
	ErrUnknownField = errors.New("unknown field")

	// ErrImmutableField is returned by Set for fields not declared mutable.
	ErrImmutableField = errors.New("field is not mutable")

	// ErrTypeMismatch is returned when a value does not match the field's
	// declared scalar type.
	ErrTypeMismatch = errors.New("value type does not match field type")

	// ErrNotFilterable is returned when building a comparison against a
	// field that is not declared filterable.
	ErrNotFilterable = errors.New("field is not filterable")

	// ErrIndexOutOfRange is returned by Collection.At for indexes outside
	// the server-reported result count.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrMalformedResponse is returned when a list response is missing
	// envelope fields this client requires.
	ErrMalformedResponse = errors.New("malformed list response")

	// ErrParentMismatch is returned when an endpoint template's placeholder
	// count does not match the supplied parent chain.
	ErrParentMismatch = errors.New("endpoint parents do not match template")

	// ErrInvalidPageSize is returned for page sizes outside the API limits.
	ErrInvalidPageSize = errors.New("page size out of range")

	// ErrNoMoreItems is returned by Iterator.Next past the last element.
	ErrNoMoreItems = errors.New("no more items")

	// ErrNotScalar is returned when a scalar operation is applied to a
	// derived or computed field.
	ErrNotScalar = errors.New("field is not a scalar")

	// ErrNotDerived is returned when a relation operation is applied to a
	// non-derived field.
	ErrNotDerived = errors.New("field is not a derived relation")
)

// Client construction errors.
var (
	ErrConfigRequired   = errors.New("config is required")
	ErrEndpointRequired = errors.New("API endpoint is required")
)

// statusOf extracts the HTTP status code from err, or 0 when err does not
// wrap a *Error.
func statusOf(err error) int {
	apiErr := &Error{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

// IsNotFound reports whether the error represents a missing resource.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsUnauthorized reports whether the error represents missing or invalid
// credentials.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsForbidden reports whether the error represents insufficient permissions.
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// IsRateLimited reports whether the error represents API rate limiting.
func IsRateLimited(err error) bool {
	return statusOf(err) == http.StatusTooManyRequests
}

// IsServerFault reports whether the error represents a 5xx-class failure.
func IsServerFault(err error) bool {
	return statusOf(err) >= http.StatusInternalServerError
}

// IsValidationFailed reports whether the error represents the remote
// rejecting field values (400/422 with per-field messages).
func IsValidationFailed(err error) bool {
	status := statusOf(err)

	return status == http.StatusBadRequest || status == http.StatusUnprocessableEntity
}

// IsGone reports whether the error is ErrGone.
func IsGone(err error) bool {
	return errors.Is(err, ErrGone)
}
