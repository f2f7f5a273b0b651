package cache

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c := New(0, zerolog.Nop())
	t.Cleanup(c.Close)
	return c
}

func TestSetThenGetReturnsSameValue(t *testing.T) {
	c := newTestCache(t)

	c.Set("key", "value", time.Minute)

	got, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestGetMiss(t *testing.T) {
	c := newTestCache(t)

	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestExpiredEntryNeverReturned(t *testing.T) {
	c := newTestCache(t)

	c.Set("zero", "value", 0)
	c.Set("past", "value", -time.Minute)

	_, ok := c.Get("zero")
	assert.False(t, ok)
	_, ok = c.Get("past")
	assert.False(t, ok)

	// Read-time eviction removed both.
	assert.Equal(t, 0, c.Len())
}

func TestSweepEvictsOnlyExpiredEntries(t *testing.T) {
	c := newTestCache(t)

	c.Set("live", 1, time.Minute)
	c.Set("dead-1", 2, -time.Second)
	c.Set("dead-2", 3, 0)

	assert.Equal(t, 2, c.Sweep())
	assert.Equal(t, 1, c.Len())

	got, ok := c.Get("live")
	require.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestCloseIsIdempotentAndClears(t *testing.T) {
	c := New(time.Minute, zerolog.Nop())
	c.Set("key", "value", time.Minute)

	c.Close()
	c.Close()

	assert.Equal(t, 0, c.Len())
}

func TestGetAsTypeMismatchIsMiss(t *testing.T) {
	c := newTestCache(t)

	c.Set("key", "a string", time.Minute)

	_, ok := GetAs[int](c, "key")
	assert.False(t, ok)

	got, ok := GetAs[string](c, "key")
	require.True(t, ok)
	assert.Equal(t, "a string", got)
}

func TestOverwriteRefreshesValueAndTTL(t *testing.T) {
	c := newTestCache(t)

	c.Set("key", "old", -time.Minute)
	c.Set("key", "new", time.Minute)

	got, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, "new", got)
}
