package cache

import (
	"testing"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*TTL, httpcache.Cache, *time.Time) {
	t.Helper()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := httpcache.NewMemoryCache()

	c := New(store)
	c.now = func() time.Time { return now }

	return c, store, &now
}

func TestTTL_RoundTrip(t *testing.T) {
	c, _, _ := newTestCache(t)

	value := map[string]string{"version": "1.2", "content": "terms text"}
	require.NoError(t, c.Set("latestTerms", value, time.Hour))

	var got map[string]string
	hit, err := c.Get("latestTerms", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, value, got)
}

func TestTTL_Get(t *testing.T) {
	t.Run("returns value for any time before expiry", func(t *testing.T) {
		c, _, now := newTestCache(t)

		require.NoError(t, c.Set("key", 42, time.Hour))

		*now = now.Add(59 * time.Minute)

		var got int
		hit, err := c.Get("key", &got)
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, 42, got)
	})

	t.Run("expires exactly at insertion time plus ttl", func(t *testing.T) {
		c, _, now := newTestCache(t)

		require.NoError(t, c.Set("key", 42, time.Hour))

		*now = now.Add(time.Hour)

		hit, err := c.Get("key", nil)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("purges expired entry from the store", func(t *testing.T) {
		c, store, now := newTestCache(t)

		require.NoError(t, c.Set("key", 42, time.Minute))
		*now = now.Add(2 * time.Minute)

		hit, err := c.Get("key", nil)
		require.NoError(t, err)
		assert.False(t, hit)

		_, ok := store.Get("key")
		assert.False(t, ok)
	})

	t.Run("absent key misses", func(t *testing.T) {
		c, _, _ := newTestCache(t)

		hit, err := c.Get("missing", nil)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("drops unreadable entries", func(t *testing.T) {
		c, store, _ := newTestCache(t)

		store.Set("key", []byte("not json"))

		hit, err := c.Get("key", nil)
		require.NoError(t, err)
		assert.False(t, hit)

		_, ok := store.Get("key")
		assert.False(t, ok)
	})
}

func TestTTL_Set(t *testing.T) {
	t.Run("overwrites prior entry unconditionally", func(t *testing.T) {
		c, _, _ := newTestCache(t)

		require.NoError(t, c.Set("key", "old", time.Hour))
		require.NoError(t, c.Set("key", "new", time.Hour))

		var got string
		hit, err := c.Get("key", &got)
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, "new", got)
	})

	t.Run("fresh ttl replaces the old one", func(t *testing.T) {
		c, _, now := newTestCache(t)

		require.NoError(t, c.Set("key", true, time.Minute))
		*now = now.Add(50 * time.Second)

		// Rewrite just before expiry, the clock restarts.
		require.NoError(t, c.Set("key", false, time.Minute))
		*now = now.Add(50 * time.Second)

		var got bool
		hit, err := c.Get("key", &got)
		require.NoError(t, err)
		assert.True(t, hit)
		assert.False(t, got)
	})
}

func TestTTL_Invalidate(t *testing.T) {
	c, store, _ := newTestCache(t)

	require.NoError(t, c.Set("key", 1, time.Hour))
	c.Invalidate("key")

	hit, err := c.Get("key", nil)
	require.NoError(t, err)
	assert.False(t, hit)

	_, ok := store.Get("key")
	assert.False(t, ok)
}

func TestNewDisk(t *testing.T) {
	dir := t.TempDir()

	c := NewDisk(dir)
	require.NoError(t, c.Set("key", "value", time.Hour))

	// A second cache over the same directory sees the entry.
	c2 := NewDisk(dir)
	var got string
	hit, err := c2.Get("key", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "value", got)
}
