package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// DefaultCacheSize caps the number of values a Cache holds.
const DefaultCacheSize = 4096

// Cache implements ports.CacheService for a single process. Values live in a
// size-bounded LRU so superseded cache generations age out. Counters written
// by Incr are kept apart and never evicted: losing one would rewind a
// generation onto keys that may still be cached.
type Cache struct {
	mu       sync.Mutex
	entries  *lru.Cache[string, cacheEntry]
	counters map[string]int64
	now      func() time.Time
}

type cacheEntry struct {
	value   []byte
	expires time.Time // zero means no expiry
}

// NewCache creates an empty Cache holding at most DefaultCacheSize values.
func NewCache() *Cache {
	return NewCacheSize(DefaultCacheSize)
}

// NewCacheSize creates an empty Cache holding at most size values.
func NewCacheSize(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails on a non-positive size.
	entries, _ := lru.New[string, cacheEntry](size)
	return &Cache{entries: entries, counters: make(map[string]int64), now: time.Now}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.counters[key]; ok {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if e.expired(c.now()) {
		c.entries.Remove(key)
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), e.value...), nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := cacheEntry{value: append([]byte(nil), value...)}
	if ttlSeconds > 0 {
		e.expires = c.now().Add(time.Duration(ttlSeconds) * time.Second)
	}
	delete(c.counters, key)
	c.entries.Add(key, e)
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counters, key)
	c.entries.Remove(key)
	return nil
}

func (c *Cache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.counters[key]
	if !ok {
		if e, found := c.entries.Peek(key); found && !e.expired(c.now()) {
			n, _ = strconv.ParseInt(string(e.value), 10, 64)
		}
		c.entries.Remove(key)
	}
	n++
	c.counters[key] = n
	return n, nil
}

// Len reports how many keys the cache holds, counters included. Expired
// values that have not been read or evicted yet are counted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len() + len(c.counters)
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}
