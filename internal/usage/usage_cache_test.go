// internal/usage/usage_cache_test.go

package usage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_LimitEnforced(t *testing.T) {
	cache := NewCache(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, cache.Allow("10.0.0.1"))
		cache.Record("10.0.0.1")
	}
	assert.False(t, cache.Allow("10.0.0.1"))

	// Other clients are tracked independently.
	assert.True(t, cache.Allow("10.0.0.2"))
}

func TestCache_WindowExpiry(t *testing.T) {
	cache := NewCache(1, 10*time.Millisecond)

	assert.True(t, cache.Allow("10.0.0.1"))
	cache.Record("10.0.0.1")
	assert.False(t, cache.Allow("10.0.0.1"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, cache.Allow("10.0.0.1"))
}

func TestCache_TimeUntilReset(t *testing.T) {
	cache := NewCache(1, time.Minute)

	assert.Zero(t, cache.TimeUntilReset("10.0.0.1"))

	cache.Record("10.0.0.1")
	remaining := cache.TimeUntilReset("10.0.0.1")
	assert.Greater(t, remaining, 50*time.Second)
	assert.LessOrEqual(t, remaining, time.Minute)
}
