package verifier

import (
	"sync"
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/user"
)

type cachedPrincipal struct {
	principal user.Principal
	expiresAt time.Time
}

// principalCache keeps verified principals for ttl. When full it drops
// expired entries first, then the entry closest to expiry. A non-positive
// ttl disables caching.
type principalCache struct {
	mu         sync.Mutex
	entries    map[string]cachedPrincipal
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func newPrincipalCache(ttl time.Duration, maxEntries int) *principalCache {
	return &principalCache{
		entries:    make(map[string]cachedPrincipal),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *principalCache) Get(key string) (user.Principal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return user.Principal{}, false
	}
	if !entry.expiresAt.After(c.now()) {
		delete(c.entries, key)
		return user.Principal{}, false
	}
	return entry.principal, true
}

func (c *principalCache) Set(key string, principal user.Principal) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evict(now)
	}
	c.entries[key] = cachedPrincipal{principal: principal, expiresAt: now.Add(c.ttl)}
}

func (c *principalCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *principalCache) evict(now time.Time) {
	oldestKey := ""
	var oldest time.Time
	for key, entry := range c.entries {
		if !entry.expiresAt.After(now) {
			delete(c.entries, key)
			continue
		}
		if oldestKey == "" || entry.expiresAt.Before(oldest) {
			oldestKey, oldest = key, entry.expiresAt
		}
	}
	if len(c.entries) >= c.maxEntries && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
