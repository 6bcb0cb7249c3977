package linode_test

import (
	"testing"

	"github.com/fivetwenty-io/linode-client/pkg/linode"
	"github.com/stretchr/testify/assert"
)

func TestQueryParams_ToValues(t *testing.T) {
	t.Parallel()

	values := linode.NewQueryParams().
		WithPage(2).
		WithPageSize(50).
		WithOrder("label", false).
		ToValues()

	assert.Equal(t, "2", values.Get("page"))
	assert.Equal(t, "50", values.Get("page_size"))
	assert.Equal(t, "label", values.Get("order_by"))
	assert.Equal(t, "asc", values.Get("order"))
}

func TestQueryParams_Empty(t *testing.T) {
	t.Parallel()

	values := linode.NewQueryParams().ToValues()
	assert.Empty(t, values)
}

func TestQueryParams_DescendingOrder(t *testing.T) {
	t.Parallel()

	values := linode.NewQueryParams().WithOrder("created", true).ToValues()
	assert.Equal(t, "created", values.Get("order_by"))
	assert.Equal(t, "desc", values.Get("order"))
}
