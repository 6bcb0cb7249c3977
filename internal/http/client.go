// Package http implements the transport layer for the Linode API: a
// retrying HTTP client with bearer authentication, X-Filter propagation,
// structured debug logging, and optional response caching.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/linode-client/internal/auth"
	"github.com/fivetwenty-io/linode-client/internal/constants"
	"github.com/fivetwenty-io/linode-client/pkg/linode"
	"github.com/hashicorp/go-retryablehttp"
)

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Filter  json.RawMessage
	Body    interface{}
	Headers map[string]string
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the HTTP transport for the Linode API.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	logger       linode.Logger
	debug        bool
	userAgent    string
	cacheManager *linode.CacheManager
	cacheTTL     time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets a structured logger.
func WithLogger(logger linode.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig tunes the retry behavior.
func WithRetryConfig(maxRetries int, minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = minWait
		c.httpClient.RetryWaitMax = maxWait
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithCache attaches a response cache for GET requests. TTL zero uses the
// default.
func WithCache(cache linode.Cache, policy *linode.CachingPolicy, ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheManager = linode.NewCacheManager(cache, policy)

		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// NewClient creates an HTTP client for the API at baseURL. A nil
// tokenManager sends unauthenticated requests.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil
	retryClient.CheckRetry = checkRetry

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
		userAgent:    "linode-client/1.0",
		cacheTTL:     constants.DefaultCacheTTL,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// checkRetry retries connection errors, 429s, and 5xx responses. Other 4xx
// statuses are the caller's problem and retrying them wastes the budget.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return true, nil
	}

	return false, nil
}

// Do executes a request against the API. Non-2xx responses return both the
// parsed *linode.Error and the raw Response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")

	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if len(req.Filter) > 0 {
		httpReq.Header.Set("X-Filter", string(req.Filter))
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
			"filter": string(req.Filter),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"url":    fullURL,
			"bytes":  len(body),
		})
	}

	if httpResp.StatusCode >= 400 {
		return resp, linode.NewError(httpResp.StatusCode, body)
	}

	return resp, nil
}

// cacheKey builds the cache identity for a GET, folding the filter in with
// the query so differently filtered lists never collide.
func (c *Client) cacheKey(path string, query url.Values, filter json.RawMessage) string {
	params := make(map[string]string, len(query)+1)

	for key := range query {
		params[key] = query.Get(key)
	}

	if len(filter) > 0 {
		params["x-filter"] = string(filter)
	}

	return c.cacheManager.GetCacheKey("GET", path, params)
}

// Get performs a GET request, serving cacheable paths from the response
// cache when one is attached.
func (c *Client) Get(ctx context.Context, path string, query url.Values, filter json.RawMessage) (*Response, error) {
	cacheable := c.cacheManager != nil && c.cacheManager.ShouldCache("GET", path, http.StatusOK)

	var key string

	if cacheable {
		key = c.cacheKey(path, query, filter)

		if data, err := c.cacheManager.Get(ctx, key); err == nil {
			return &Response{StatusCode: http.StatusOK, Body: data}, nil
		}
	}

	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query, Filter: filter})
	if err != nil {
		return resp, err
	}

	if cacheable {
		etag := resp.Headers.Get("ETag")
		if cacheErr := c.cacheManager.SetWithETag(ctx, key, resp.Body, etag, c.cacheTTL); cacheErr != nil && c.logger != nil {
			c.logger.Warn("cache write failed", map[string]interface{}{
				"path":  path,
				"error": cacheErr.Error(),
			})
		}
	}

	return resp, nil
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
