package skyflow

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenProvider returns a bearer token for the vault. It is called at most
// once per client call and its result is shared by every sub-request of
// that call.
type TokenProvider func() (string, error)

// expiryLeeway refreshes tokens slightly before they expire so that a token
// does not lapse while a batch is in flight.
const expiryLeeway = 30 * time.Second

// tokenCache wraps a TokenProvider and keeps the last JWT it returned until
// the token expires. Tokens that are not decodable JWTs, or that carry no
// expiry, are never reused.
type tokenCache struct {
	provider TokenProvider
	now      func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func newTokenCache(provider TokenProvider) *tokenCache {
	return &tokenCache{provider: provider, now: time.Now}
}

// Token returns a valid bearer token, calling the provider when the cached
// one is missing or stale.
func (c *tokenCache) Token() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Add(expiryLeeway).Before(c.expiry) {
		return c.token, nil
	}

	token, err := c.provider()
	if err != nil {
		c.token = ""
		return "", invalidInput(MsgTokenProviderFailed, err)
	}
	if token == "" {
		c.token = ""
		return "", invalidInput(MsgTokenProviderFailed, nil)
	}

	c.token = token
	c.expiry = tokenExpiry(token)
	return token, nil
}

// tokenExpiry reads the exp claim of a JWT without verifying its signature.
// It returns the zero time when the token is opaque or has no expiry.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
