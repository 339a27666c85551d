package adapter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// fetchTokenFunc performs one outbound token request and returns the bearer
// token together with its computed expiry instant.
type fetchTokenFunc func(ctx context.Context) (token string, expiresAt time.Time, err error)

// tokenCache is a single-slot cache for one OAuth bearer token, owned by one
// adapter instance. Concurrent refreshes are coalesced into a single outbound
// request; a failed refresh caches nothing so the next caller retries.
type tokenCache struct {
	fetch fetchTokenFunc

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	group     singleflight.Group
}

func newTokenCache(fetch fetchTokenFunc) *tokenCache {
	return &tokenCache{fetch: fetch}
}

// Token returns a valid bearer token, refreshing it when missing or expired.
// All callers waiting on the same refresh observe the same token or the same
// failure.
func (c *tokenCache) Token(ctx context.Context) (string, error) {
	if token, ok := c.cached(); ok {
		return token, nil
	}

	v, err, _ := c.group.Do("token", func() (interface{}, error) {
		// A refresh may have completed between the miss and joining the flight.
		if token, ok := c.cached(); ok {
			return token, nil
		}

		token, expiresAt, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.token = token
		c.expiresAt = expiresAt
		c.mu.Unlock()

		return token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *tokenCache) cached() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Now().Before(c.expiresAt) {
		return c.token, true
	}
	return "", false
}
