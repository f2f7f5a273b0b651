package cache

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// Cache is a process-wide keyed store with per-entry TTLs. It is a
// performance optimization only: contents are lost on restart and that is
// fine. A background sweep bounds growth from entries that are written but
// never read again.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	sweepInterval time.Duration
	stop          chan struct{}
	closeOnce     sync.Once
	logger        zerolog.Logger
}

func New(sweepInterval time.Duration, logger zerolog.Logger) *Cache {
	c := &Cache{
		entries:       make(map[string]entry),
		sweepInterval: sweepInterval,
		stop:          make(chan struct{}),
		logger:        logger,
	}

	if sweepInterval > 0 {
		go c.sweepLoop()
	}

	return c
}

func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := c.Sweep(); cleaned > 0 {
				c.logger.Info().Int("cleaned", cleaned).Msg("evicted expired cache entries")
			}
		case <-c.stop:
			return
		}
	}
}

// Set stores value under key until now + ttl. A non-positive ttl produces an
// already-expired entry that Get will never return.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Get returns the value stored under key, or false on a miss. Expired
// entries are evicted opportunistically on read.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if e.expired(time.Now()) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// replaced the entry since the read.
		if cur, ok := c.entries[key]; ok && cur.expired(time.Now()) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Sweep removes every expired entry and reports how many were evicted.
func (c *Cache) Sweep() int {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	cleaned := 0
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			cleaned++
		}
	}
	return cleaned
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the sweep loop and drops all entries. Safe to call more than
// once; repeated initialization in a long-lived process must not leak
// tickers.
func (c *Cache) Close() {
	c.closeOnce.Do(func() {
		close(c.stop)
		c.mu.Lock()
		c.entries = make(map[string]entry)
		c.mu.Unlock()
		c.logger.Debug().Msg("cache closed")
	})
}

// GetAs retrieves key and type-asserts the payload to T.
func GetAs[T any](c *Cache, key string) (T, bool) {
	var zero T

	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}

	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
