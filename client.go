package skyflow

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

const (
	defaultTimeout = 30 * time.Second
)

// Configuration identifies the vault a Client talks to.
type Configuration struct {
	// VaultID is the vault identifier. Required.
	VaultID string

	// VaultURL is the vault base URL, e.g. "https://acme.vault.skyflowapis.com".
	// Required.
	VaultURL string

	// TokenProvider returns bearer tokens for the vault. Required.
	TokenProvider TokenProvider
}

// Client is the Skyflow vault client.
//
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	vaultID        string
	vaultURL       string
	tokens         *tokenCache
	httpClient     *http.Client
	timeout        time.Duration
	userAgent      string
	maxConcurrency int
	log            *logr.Logger
}

// NewClient creates a new vault client.
//
// It fails with a CodeInvalidInput error when the vault ID is empty, the
// vault URL is not an absolute http(s) URL, or no token provider is given.
func NewClient(cfg Configuration, opts ...Option) (*Client, error) {
	if verr := validate.RequiredString("vaultID", "configuration", cfg.VaultID); verr != nil {
		return nil, invalidInput(MsgInitFailed, verr, "Vault ID")
	}
	if verr := validate.RequiredString("vaultURL", "configuration", cfg.VaultURL); verr != nil {
		return nil, invalidInput(MsgInitFailed, verr, "Vault URL")
	}
	if !isHTTPURL(cfg.VaultURL) {
		return nil, invalidInput(MsgInvalidVaultURL, nil, cfg.VaultURL)
	}
	if cfg.TokenProvider == nil {
		return nil, invalidInput(MsgInitFailed, nil, "Token Provider")
	}

	c := &Client{
		vaultID:    cfg.VaultID,
		vaultURL:   strings.TrimRight(cfg.VaultURL, "/"),
		tokens:     newTokenCache(cfg.TokenProvider),
		httpClient: http.DefaultClient,
		timeout:    defaultTimeout,
		userAgent:  "skyflow-go/" + Version,
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}

	return c, nil
}

// VaultID returns the vault the client is bound to.
func (c *Client) VaultID() string {
	return c.vaultID
}

// isHTTPURL reports whether s is an absolute URI with an http(s) scheme.
func isHTTPURL(s string) bool {
	if !strfmt.Default.Validates("uri", s) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// vaultBase returns the base URL of the client's vault endpoints.
func (c *Client) vaultBase() string {
	return c.vaultURL + apiPathPrefix() + "/vaults/" + url.PathEscape(c.vaultID)
}

func (c *Client) logger() logr.Logger {
	if c.log != nil {
		return *c.log
	}
	return defaultLogger()
}

// callContext applies the client timeout to a client-level call.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			return context.WithTimeout(ctx, c.timeout)
		}
	}
	return context.WithCancel(ctx)
}
