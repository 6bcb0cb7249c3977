package linclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/linode-client/pkg/linclient"
	"github.com/fivetwenty-io/linode-client/pkg/linode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		client, err := linclient.New(&linode.Config{Token: "test-token"})
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, linclient.DefaultBaseURL, client.BaseURL())
	})

	t.Run("nil config is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := linclient.New(nil)
		require.ErrorIs(t, err, linode.ErrConfigRequired)
	})

	t.Run("normalizes bare hosts", func(t *testing.T) {
		t.Parallel()

		client, err := linclient.New(&linode.Config{BaseURL: "api.example.com/v4/"})
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/v4", client.BaseURL())
	})

	t.Run("keeps explicit schemes", func(t *testing.T) {
		t.Parallel()

		client, err := linclient.New(&linode.Config{BaseURL: "http://localhost:8080"})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", client.BaseURL())
	})
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := linclient.NewWithToken("test-token")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithEndpoint(t *testing.T) {
	t.Parallel()

	client, err := linclient.NewWithEndpoint("https://api.example.com/v4")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LINODE_TOKEN", "env-token")

	client, err := linclient.NewFromEnv()
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClientIntegration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/regions":
			_ = json.NewEncoder(writer).Encode(map[string]any{
				"data": []map[string]any{
					{"id": "us-east", "label": "Newark, NJ", "country": "us"},
				},
				"page":    1,
				"pages":   1,
				"results": 1,
			})
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := linclient.NewWithEndpoint(server.URL)
	require.NoError(t, err)

	ctx := context.Background()

	regions, err := client.Regions().List(nil)
	require.NoError(t, err)

	region, err := regions.At(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "us-east", region.ID())

	label, err := region.GetString(ctx, "label")
	require.NoError(t, err)
	assert.Equal(t, "Newark, NJ", label)
}
