package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/linode-client/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumesClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/volumes", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		_ = json.NewEncoder(writer).Encode(map[string]any{
			"id":     77,
			"label":  "data",
			"region": "us-east",
			"size":   40,
			"status": "creating",
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	vol, err := c.Volumes().Create(context.Background(), map[string]any{
		"label":  "data",
		"region": "us-east",
		"size":   40,
	})
	require.NoError(t, err)
	assert.Equal(t, "77", vol.ID())
}

func TestVolumesClient_Actions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		call     func(*client.VolumesClient, context.Context) error
		wantPath string
		wantBody string
	}{
		{
			name: "attach",
			call: func(c *client.VolumesClient, ctx context.Context) error {
				return c.Attach(ctx, "77", 123)
			},
			wantPath: "/volumes/77/attach",
			wantBody: `{"linode_id": 123}`,
		},
		{
			name: "detach",
			call: func(c *client.VolumesClient, ctx context.Context) error {
				return c.Detach(ctx, "77")
			},
			wantPath: "/volumes/77/detach",
		},
		{
			name: "resize",
			call: func(c *client.VolumesClient, ctx context.Context) error {
				return c.Resize(ctx, "77", 80)
			},
			wantPath: "/volumes/77/resize",
			wantBody: `{"size": 80}`,
		},
		{
			name: "clone",
			call: func(c *client.VolumesClient, ctx context.Context) error {
				return c.Clone(ctx, "77", "data-copy")
			},
			wantPath: "/volumes/77/clone",
			wantBody: `{"label": "data-copy"}`,
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
			require.NoError(t, tc.call(c.Volumes(), context.Background()))
		})
	}
}

func TestVolumesClient_UpdateThroughEntity(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(t, "PUT", request.Method)
		require.Equal(t, "/volumes/77", request.URL.Path)

		var body map[string]any
		_ = json.NewDecoder(request.Body).Decode(&body)
		assert.Equal(t, map[string]any{"label": "renamed"}, body)

		_ = json.NewEncoder(writer).Encode(map[string]any{
			"id": 77, "label": "renamed", "region": "us-east", "size": 40,
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	ctx := context.Background()

	vol, err := c.Volumes().Handle("77")
	require.NoError(t, err)

	require.NoError(t, vol.Set("label", "renamed"))
	require.NoError(t, vol.Save(ctx))
}
