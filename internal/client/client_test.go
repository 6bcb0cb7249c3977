package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/linode-client/internal/client"
	"github.com/fivetwenty-io/linode-client/pkg/linode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := client.New(nil)
	require.ErrorIs(t, err, linode.ErrConfigRequired)

	_, err = client.New(&linode.Config{})
	require.ErrorIs(t, err, linode.ErrEndpointRequired)
}

func TestNew_SendsBearerToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer my-pat", request.Header.Get("Authorization"))

		_ = json.NewEncoder(writer).Encode(map[string]any{
			"data":    []map[string]any{},
			"page":    1,
			"pages":   1,
			"results": 0,
		})
	}))
	defer server.Close()

	c, err := client.New(&linode.Config{
		BaseURL: server.URL,
		Token:   "my-pat",
	})
	require.NoError(t, err)

	list, err := c.Regions().List(nil)
	require.NoError(t, err)

	_, err = list.Len(context.Background())
	require.NoError(t, err)
}

func TestNew_CatalogResponsesAreCached(t *testing.T) {
	t.Parallel()

	hits := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits++

		_ = json.NewEncoder(writer).Encode(map[string]any{
			"data":    []map[string]any{{"id": "us-east", "label": "Newark, NJ"}},
			"page":    1,
			"pages":   1,
			"results": 1,
		})
	}))
	defer server.Close()

	c, err := client.New(&linode.Config{
		BaseURL: server.URL,
		Cache:   &linode.CacheConfig{Type: linode.CacheTypeMemory},
	})
	require.NoError(t, err)

	ctx := context.Background()

	for n := 0; n < 3; n++ {
		// Fresh collections so each Len would fetch without the transport
		// cache.
		list, listErr := c.Regions().List(nil)
		require.NoError(t, listErr)

		n, lenErr := list.Len(ctx)
		require.NoError(t, lenErr)
		assert.Equal(t, 1, n)
	}

	assert.Equal(t, 1, hits)
}

func TestClient_ResourceAccessors(t *testing.T) {
	t.Parallel()

	c := client.NewTestClient("http://localhost:0")

	assert.NotNil(t, c.Instances())
	assert.NotNil(t, c.Volumes())
	assert.NotNil(t, c.Domains())
	assert.NotNil(t, c.Domains().Records())
	assert.NotNil(t, c.Regions())
	assert.NotNil(t, c.Types())
	assert.NotNil(t, c.Events())
	assert.NotNil(t, c.Registry())
}
