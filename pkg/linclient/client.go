// Package linclient provides the main entry point for creating Linode API clients.
package linclient

import (
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/linode-client/internal/client"
	"github.com/fivetwenty-io/linode-client/pkg/linode"
)

// DefaultBaseURL is the public Linode API v4 endpoint.
const DefaultBaseURL = "https://api.linode.com/v4"

// Client is the top-level Linode API client.
type Client = client.Client

// ListOptions carries the optional constraints for a List call.
type ListOptions = client.ListOptions

// New creates a Linode API client. A nil or empty BaseURL uses the public
// endpoint; a bare host gets an https scheme.
func New(config *linode.Config) (*Client, error) {
	if config == nil {
		return nil, linode.ErrConfigRequired
	}

	config.BaseURL = normalizeBaseURL(config.BaseURL)

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithToken creates a client for the public API with a personal access
// token.
func NewWithToken(token string) (*Client, error) {
	return New(&linode.Config{Token: token})
}

// NewWithEndpoint creates an unauthenticated client against endpoint. Only
// public endpoints (regions, types) accept such requests.
func NewWithEndpoint(endpoint string) (*Client, error) {
	return New(&linode.Config{BaseURL: endpoint})
}

// NewFromEnv creates a client with the token taken from LINODE_TOKEN or
// LINODE_API_TOKEN.
func NewFromEnv() (*Client, error) {
	for _, name := range []string{"LINODE_TOKEN", "LINODE_API_TOKEN"} {
		if token := os.Getenv(name); token != "" {
			return NewWithToken(token)
		}
	}

	return New(&linode.Config{})
}

func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return DefaultBaseURL
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
