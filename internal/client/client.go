// Package client wires the transport, authentication, and schema registry
// into per-resource clients for the Linode API.
package client

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/fivetwenty-io/linode-client/internal/auth"
	"github.com/fivetwenty-io/linode-client/internal/constants"
	"github.com/fivetwenty-io/linode-client/internal/http"
	"github.com/fivetwenty-io/linode-client/pkg/linode"
)

// transport adapts the HTTP client to the linode.Doer contract the object
// model consumes.
type transport struct {
	httpClient *http.Client
}

func (t *transport) Get(ctx context.Context, path string, query url.Values, filter json.RawMessage) ([]byte, error) {
	resp, err := t.httpClient.Get(ctx, path, query, filter)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

func (t *transport) Post(ctx context.Context, path string, body any) ([]byte, error) {
	resp, err := t.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

func (t *transport) Put(ctx context.Context, path string, body any) ([]byte, error) {
	resp, err := t.httpClient.Put(ctx, path, body)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

func (t *transport) Delete(ctx context.Context, path string) ([]byte, error) {
	resp, err := t.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// Client bundles the transport with the schema registry and exposes the
// per-resource clients.
type Client struct {
	doer     linode.Doer
	registry *linode.Registry
	baseURL  string
	pageSize int

	instances *InstancesClient
	volumes   *VolumesClient
	domains   *DomainsClient
	regions   *RegionsClient
	types     *TypesClient
	events    *EventsClient
}

// New creates a client from configuration. The base URL must already be
// normalized (the linclient package does that for callers).
func New(config *linode.Config) (*Client, error) {
	if config == nil {
		return nil, linode.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, linode.ErrEndpointRequired
	}

	var tokenManager auth.TokenManager
	if config.Token != "" {
		tokenManager = auth.NewStaticTokenManager(config.Token)
	}

	opts := []http.Option{}

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	retryMax := config.RetryMax
	if retryMax == 0 {
		retryMax = constants.DefaultRetryMax
	}

	retryWaitMin := config.RetryWaitMin
	if retryWaitMin == 0 {
		retryWaitMin = constants.DefaultRetryWaitMin
	}

	retryWaitMax := config.RetryWaitMax
	if retryWaitMax == 0 {
		retryWaitMax = constants.DefaultRetryWaitMax
	}

	opts = append(opts, http.WithRetryConfig(retryMax, retryWaitMin, retryWaitMax))

	if config.Cache != nil && config.Cache.Type != linode.CacheTypeNone {
		cache, err := linode.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, err
		}

		cacheOptions := config.Cache.Options
		if cacheOptions == nil {
			cacheOptions = linode.DefaultCacheOptions()
		}

		opts = append(opts, http.WithCache(cache, nil, cacheOptions.TTL))
	}

	httpClient := http.NewClient(config.BaseURL, tokenManager, opts...)

	client := &Client{
		doer:     &transport{httpClient: httpClient},
		registry: linode.DefaultRegistry(),
		baseURL:  config.BaseURL,
		pageSize: config.PageSize,
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.instances = NewInstancesClient(c.doer, c.registry, c.pageSize)
	c.volumes = NewVolumesClient(c.doer, c.registry, c.pageSize)
	c.domains = NewDomainsClient(c.doer, c.registry, c.pageSize)
	c.regions = NewRegionsClient(c.doer, c.registry, c.pageSize)
	c.types = NewTypesClient(c.doer, c.registry, c.pageSize)
	c.events = NewEventsClient(c.doer, c.registry, c.pageSize)
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Registry returns the schema registry backing the client.
func (c *Client) Registry() *linode.Registry { return c.registry }

// Instances returns the Linode instances client.
func (c *Client) Instances() *InstancesClient { return c.instances }

// Volumes returns the block storage volumes client.
func (c *Client) Volumes() *VolumesClient { return c.volumes }

// Domains returns the domains client.
func (c *Client) Domains() *DomainsClient { return c.domains }

// Regions returns the regions client.
func (c *Client) Regions() *RegionsClient { return c.regions }

// Types returns the instance types client.
func (c *Client) Types() *TypesClient { return c.types }

// Events returns the account events client.
func (c *Client) Events() *EventsClient { return c.events }
