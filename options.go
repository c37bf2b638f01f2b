package skyflow

import (
	"net/http"
	"time"

	"github.com/go-logr/logr"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the deadline applied to every client call, covering all
// of its sub-requests. Zero disables it. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger routes the client's logs to l instead of the default logger.
func WithLogger(l logr.Logger) Option {
	return func(c *Client) {
		c.log = &l
	}
}

// WithMaxConcurrency bounds the number of sub-requests a single call keeps
// in flight. Zero or less means one goroutine per sub-request.
func WithMaxConcurrency(n int) Option {
	return func(c *Client) {
		c.maxConcurrency = n
	}
}
