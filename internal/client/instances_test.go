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

func TestInstancesClient_Get(t *testing.T) {
	t.Parallel()

	fetches := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		fetches++
		assert.Equal(t, "/linode/instances/123", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		_ = json.NewEncoder(writer).Encode(map[string]any{
			"id":     123,
			"label":  "web-1",
			"region": "us-east",
			"status": "running",
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	ctx := context.Background()

	inst, err := c.Instances().Get(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "123", inst.ID())
	assert.True(t, inst.Loaded())
	assert.Equal(t, 1, fetches)

	label, err := inst.GetString(ctx, "label")
	require.NoError(t, err)
	assert.Equal(t, "web-1", label)
	assert.Equal(t, 1, fetches)
}

func TestInstancesClient_GetNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"errors": [{"reason": "Not found"}]}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	_, err := c.Instances().Get(context.Background(), "999999")
	require.Error(t, err)
	assert.True(t, linode.IsNotFound(err))
}

func TestInstancesClient_HandleIsLazy(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		t.Error("handle construction must not hit the API")
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	inst, err := c.Instances().Handle("123")
	require.NoError(t, err)
	assert.Equal(t, "123", inst.ID())
	assert.False(t, inst.Loaded())
}

func TestInstancesClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/linode/instances", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		var body map[string]any
		_ = json.NewDecoder(request.Body).Decode(&body)
		assert.Equal(t, "us-east", body["region"])
		assert.Equal(t, "g6-standard-2", body["type"])

		_ = json.NewEncoder(writer).Encode(map[string]any{
			"id":     456,
			"label":  "fresh",
			"region": "us-east",
			"status": "provisioning",
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	ctx := context.Background()

	inst, err := c.Instances().Create(ctx, map[string]any{
		"region": "us-east",
		"type":   "g6-standard-2",
		"label":  "fresh",
	})
	require.NoError(t, err)
	assert.Equal(t, "456", inst.ID())
	assert.True(t, inst.Loaded())

	// The create response hydrated the handle; no extra fetch.
	status, err := inst.GetString(ctx, "status")
	require.NoError(t, err)
	assert.Equal(t, "provisioning", status)
}

func TestInstancesClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/linode/instances", request.URL.Path)
		assert.JSONEq(t, `{"region": "us-east"}`, request.Header.Get("X-Filter"))

		_ = json.NewEncoder(writer).Encode(map[string]any{
			"data": []map[string]any{
				{"id": 1, "label": "a", "region": "us-east"},
				{"id": 2, "label": "b", "region": "us-east"},
			},
			"page":    1,
			"pages":   1,
			"results": 2,
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	ctx := context.Background()

	desc, ok := c.Registry().Lookup(linode.TypeInstance)
	require.True(t, ok)

	region, err := desc.Filter("region")
	require.NoError(t, err)

	f, err := region.Eq("us-east")
	require.NoError(t, err)

	list, err := c.Instances().List(&client.ListOptions{Filter: f})
	require.NoError(t, err)

	all, err := list.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "1", all[0].ID())
	assert.Equal(t, "2", all[1].ID())
}

func TestInstancesClient_Actions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		call     func(*client.InstancesClient, context.Context) error
		wantPath string
		wantBody string
	}{
		{
			name: "boot",
			call: func(c *client.InstancesClient, ctx context.Context) error {
				return c.Boot(ctx, "123", 0)
			},
			wantPath: "/linode/instances/123/boot",
		},
		{
			name: "boot with config",
			call: func(c *client.InstancesClient, ctx context.Context) error {
				return c.Boot(ctx, "123", 42)
			},
			wantPath: "/linode/instances/123/boot",
			wantBody: `{"config_id": 42}`,
		},
		{
			name: "reboot",
			call: func(c *client.InstancesClient, ctx context.Context) error {
				return c.Reboot(ctx, "123")
			},
			wantPath: "/linode/instances/123/reboot",
		},
		{
			name: "shutdown",
			call: func(c *client.InstancesClient, ctx context.Context) error {
				return c.Shutdown(ctx, "123")
			},
			wantPath: "/linode/instances/123/shutdown",
		},
		{
			name: "resize",
			call: func(c *client.InstancesClient, ctx context.Context) error {
				return c.Resize(ctx, "123", "g6-standard-4")
			},
			wantPath: "/linode/instances/123/resize",
			wantBody: `{"type": "g6-standard-4"}`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, "POST", request.Method)
				assert.Equal(t, tc.wantPath, request.URL.Path)

				if tc.wantBody != "" {
					var body map[string]any
					_ = json.NewDecoder(request.Body).Decode(&body)

					raw, _ := json.Marshal(body)
					assert.JSONEq(t, tc.wantBody, string(raw))
				}

				_, _ = writer.Write([]byte("{}"))
			}))
			defer server.Close()

			c := client.NewTestClient(server.URL)
			require.NoError(t, tc.call(c.Instances(), context.Background()))
		})
	}
}

func TestInstancesClient_Disks(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/linode/instances/123/disks", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(map[string]any{
			"data": []map[string]any{
				{"id": 10, "label": "boot", "size": 25000},
			},
			"page":    1,
			"pages":   1,
			"results": 1,
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	ctx := context.Background()

	inst, err := c.Instances().Handle("123")
	require.NoError(t, err)

	disks, err := c.Instances().Disks(ctx, inst)
	require.NoError(t, err)

	n, err := disks.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	boot, err := disks.At(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, linode.TypeDisk, boot.Type())
	assert.Equal(t, "10", boot.ID())
}
