package linode

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

// Doer is the transport collaborator every component talks to. The concrete
// implementation lives in internal/http; tests substitute fakes. Filter
// payloads ride on list GETs; how they reach the wire (the X-Filter header)
// is the transport's concern.
type Doer interface {
	Get(ctx context.Context, path string, query url.Values, filter json.RawMessage) ([]byte, error)
	Post(ctx context.Context, path string, body any) ([]byte, error)
	Put(ctx context.Context, path string, body any) ([]byte, error)
	Delete(ctx context.Context, path string) ([]byte, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Linode API client.
//
// Token is a personal access token sent as a Bearer credential. BaseURL
// defaults to the public API endpoint; the linclient constructor normalizes
// it by trimming a trailing slash and adding "https://" when no scheme is
// present.
//
// Per-request timeouts should generally be controlled via context passed to
// client methods. Retry behavior for 429s, 5xx responses, and connection
// errors can be tuned via RetryMax/RetryWaitMin/RetryWaitMax.
type Config struct {
	// BaseURL is the API endpoint (e.g. "https://api.linode.com/v4").
	BaseURL string

	// Token is the personal access token. Empty sends unauthenticated
	// requests, which only public endpoints accept.
	Token string

	// PageSize is the default page size for collections. Zero uses the API
	// default.
	PageSize int

	// RetryMax is the maximum number of retries for transient failures.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Cache optionally configures transport-level caching of GET responses
	// for slow-moving catalog endpoints (regions, types).
	Cache *CacheConfig
}
