package ocrspace

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
)

// DefaultEndpoint is the documented OCR.space image-parse URL.
const DefaultEndpoint = "https://api.ocr.space/parse/image"

// Doer sends a prepared HTTP request. *http.Client satisfies it; pooling,
// TLS and timeouts are its business.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the transport shared by every request of the client.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.transport = d
		}
	}
}

// WithLogger sets the logger handed to request builders.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client holds the API key, the endpoint and the transport. It hands out
// request builders bound to the values current at the time of the call.
type Client struct {
	apiKey    string
	transport Doer
	logger    *slog.Logger

	mu       sync.RWMutex
	endpoint *url.URL
}

// NewClient creates a client for the given API key. The key is sent as is.
func NewClient(apiKey string, opts ...Option) *Client {
	endpoint, _ := url.Parse(DefaultEndpoint)
	c := &Client{
		apiKey:    apiKey,
		transport: http.DefaultClient,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		endpoint:  endpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetEndpoint replaces the POST endpoint. On error the previous endpoint is kept.
func (c *Client) SetEndpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: endpoint %q: %w", ErrConfiguration, raw, err)
	}
	return c.SetEndpointURL(u)
}

// SetEndpointURL replaces the POST endpoint with an already parsed URL.
func (c *Client) SetEndpointURL(u *url.URL) error {
	if u == nil {
		return fmt.Errorf("%w: nil endpoint", ErrConfiguration)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: endpoint %q must use http or https", ErrConfiguration, u.String())
	}
	if u.Host == "" {
		return fmt.Errorf("%w: endpoint %q has no host", ErrConfiguration, u.String())
	}
	cp := *u
	c.mu.Lock()
	c.endpoint = &cp
	c.mu.Unlock()
	return nil
}

// Endpoint returns a copy of the current endpoint.
func (c *Client) Endpoint() *url.URL {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cp := *c.endpoint
	return &cp
}

// NewRequestBuilder returns an empty parameter set bound to the current
// key, endpoint and transport.
func (c *Client) NewRequestBuilder() *Builder {
	return &Builder{
		apiKey:    c.apiKey,
		endpoint:  c.Endpoint(),
		transport: c.transport,
		logger:    c.logger,
	}
}
