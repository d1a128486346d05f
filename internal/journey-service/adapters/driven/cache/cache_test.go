package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	c := New()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.SetWithTTL("k", []byte("v"), time.Minute)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)
}

func TestCache_Expiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return now }

	c.SetWithTTL("k", []byte("v"), time.Hour)

	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(time.Hour + time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCache_Stats(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return now }

	c.SetWithTTL("fresh", []byte("v"), time.Hour)
	c.SetWithTTL("stale", []byte("v"), time.Minute)
	now = now.Add(30 * time.Minute)

	stats := c.Stats()
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 1, stats.Fresh)
	assert.Equal(t, 1, stats.Stale)
}

func TestCache_CleanupStale(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return now }

	c.SetWithTTL("a", []byte("v"), time.Minute)
	c.SetWithTTL("b", []byte("v"), time.Hour)
	now = now.Add(10 * time.Minute)

	removed := c.CleanupStale()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Stats().Entries)

	_, ok := c.Get("b")
	assert.True(t, ok)
}

func TestCache_OverwriteRefreshesTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return now }

	c.SetWithTTL("k", []byte("old"), time.Minute)
	now = now.Add(50 * time.Second)
	c.SetWithTTL("k", []byte("new"), time.Minute)
	now = now.Add(30 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), v)
}
