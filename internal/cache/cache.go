// Package cache provides a TTL cache over a persistent byte-string store.
// Entries are stored as JSON {value, expiry} with the expiry as an absolute
// Unix-millisecond timestamp, so a restart never extends a lifetime.
package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
)

// entry is the persisted form of a cached value.
type entry struct {
	Value  json.RawMessage `json:"value"`
	Expiry int64           `json:"expiry"`
}

// TTL wraps a persistent key/value store with expiry timestamps. The store
// is shared process-wide, so access is serialized with a mutex.
type TTL struct {
	mu    sync.Mutex
	store httpcache.Cache
	now   func() time.Time
}

// New creates a TTL cache over the given byte store.
func New(store httpcache.Cache) *TTL {
	return &TTL{store: store, now: time.Now}
}

// NewDisk creates a TTL cache backed by durable per-directory storage.
func NewDisk(dir string) *TTL {
	return New(diskcache.New(dir))
}

// NewMemory creates a TTL cache with no durability. Suitable for tests.
func NewMemory() *TTL {
	return New(httpcache.NewMemoryCache())
}

// Get looks up key and decodes the stored value into out. An entry whose
// expiry has passed behaves as absent and is purged from the store.
func (c *TTL) Get(key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.store.Get(key)
	if !ok {
		return false, nil
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		// Unreadable entries are treated the same as expired ones.
		c.store.Delete(key)
		return false, nil
	}

	if c.now().UnixMilli() >= e.Expiry {
		c.store.Delete(key)
		return false, nil
	}

	if out != nil {
		if err := json.Unmarshal(e.Value, out); err != nil {
			return false, fmt.Errorf("failed to decode cached value for %q: %w", key, err)
		}
	}

	return true, nil
}

// Set stores value under key with the given time to live, unconditionally
// replacing any prior entry.
func (c *TTL) Set(key string, value any, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}

	data, err := json.Marshal(entry{
		Value:  encoded,
		Expiry: c.now().Add(ttl).UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode entry for %q: %w", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.Set(key, data)
	return nil
}

// Invalidate removes an entry immediately, regardless of expiry.
func (c *TTL) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.Delete(key)
}
