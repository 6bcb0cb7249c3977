package linode

import (
	"net/url"
	"strconv"
)

// Page size limits enforced by the API.
const (
	DefaultPageSize = 100
	MinPageSize     = 25
	MaxPageSize     = 500
)

// Order is an optional ordering directive attached to a whole list query.
// It is carried as separate query parameters, not inside the filter tree.
type Order struct {
	Field      string
	Descending bool
}

// QueryParams holds the list-request parameters understood by the API.
type QueryParams struct {
	Page     int
	PageSize int
	Order    *Order
}

// NewQueryParams creates empty query parameters.
func NewQueryParams() *QueryParams {
	return &QueryParams{}
}

// WithPage sets the requested page number (1-based).
func (q *QueryParams) WithPage(page int) *QueryParams {
	q.Page = page

	return q
}

// WithPageSize sets the requested page size.
func (q *QueryParams) WithPageSize(size int) *QueryParams {
	q.PageSize = size

	return q
}

// WithOrder sets the ordering directive.
func (q *QueryParams) WithOrder(field string, descending bool) *QueryParams {
	q.Order = &Order{Field: field, Descending: descending}

	return q
}

// ToValues converts the parameters to URL query values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	if q.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(q.PageSize))
	}

	if q.Order != nil {
		values.Set("order_by", q.Order.Field)

		if q.Order.Descending {
			values.Set("order", "desc")
		} else {
			values.Set("order", "asc")
		}
	}

	return values
}
