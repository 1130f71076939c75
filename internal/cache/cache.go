// Package cache memoizes expensive generation calls by content fingerprint.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultSize = 4096

// entry is one cached value with its own expiry.
type entry struct {
	value     any
	expiresAt time.Time
}

// Result is the outcome of a cache lookup.
type Result struct {
	Hit   bool
	Value any

	// ExpiredRef names a stale predecessor found under the same key. Passing
	// it to Put removes the stale entry together with storing the new value.
	ExpiredRef string
}

// Cache is a (name, args-hash) → value cache with per-entry TTL.
// Entries are evicted LRU when capacity is reached; expired entries report a
// miss and are swept on the next Put for the same key.
type Cache struct {
	store *lru.Cache[string, entry]
	now   func() time.Time
}

// New creates a Cache with the default capacity.
func New() (*Cache, error) {
	store, err := lru.New[string, entry](defaultSize)
	if err != nil {
		return nil, err
	}
	return &Cache{store: store, now: time.Now}, nil
}

// SetClock overrides the time source (used in tests).
func (c *Cache) SetClock(now func() time.Time) {
	c.now = now
}

// Get looks up the value stored under (name, argsHash).
func (c *Cache) Get(name, argsHash string) Result {
	key := cacheKey(name, argsHash)
	e, ok := c.store.Get(key)
	if !ok {
		return Result{}
	}
	if c.now().After(e.expiresAt) {
		return Result{ExpiredRef: key}
	}
	return Result{Hit: true, Value: e.value}
}

// Put stores value under (name, argsHash) with the given TTL and removes the
// expired predecessor entry, if one was reported by Get.
func (c *Cache) Put(name, argsHash string, value any, ttl time.Duration, expiredRef string) {
	if expiredRef != "" {
		c.store.Remove(expiredRef)
	}
	c.store.Add(cacheKey(name, argsHash), entry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	})
}

// Invalidate removes the entry stored under (name, argsHash).
func (c *Cache) Invalidate(name, argsHash string) {
	c.store.Remove(cacheKey(name, argsHash))
}

func cacheKey(name, argsHash string) string {
	return name + ":" + argsHash
}

// Fingerprint hashes the semantically relevant inputs of a generation call.
// Callers must include the repository id to keep cached output tenant-scoped.
func Fingerprint(parts ...string) string {
	h := sha256.New()
	h.Write([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(h.Sum(nil))
}
