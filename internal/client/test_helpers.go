package client

import (
	internalhttp "github.com/fivetwenty-io/linode-client/internal/http"
	"github.com/fivetwenty-io/linode-client/pkg/linode"
)

// NewTestClient creates a client against baseURL with no authentication,
// for use with httptest servers.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		doer:     &transport{httpClient: httpClient},
		registry: linode.DefaultRegistry(),
		baseURL:  baseURL,
	}

	client.initializeResourceClients()

	return client
}
