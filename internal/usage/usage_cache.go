// internal/usage/usage_cache.go

package usage

import (
	"sync"
	"time"
)

// Cache tracks per-client request timestamps over a sliding window.
type Cache struct {
	clients  map[string][]time.Time
	mutex    sync.Mutex
	limit    int
	duration time.Duration
}

// NewCache returns a Cache allowing limit requests per duration per client.
func NewCache(limit int, duration time.Duration) *Cache {
	return &Cache{
		clients:  make(map[string][]time.Time),
		limit:    limit,
		duration: duration,
	}
}

// Allow checks if a client may make another request based on usage within
// the window.
func (c *Cache) Allow(clientID string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	validTimes := c.filterRecent(clientID)
	c.clients[clientID] = validTimes

	return len(validTimes) < c.limit
}

// Record notes a new request for the client.
func (c *Cache) Record(clientID string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.clients[clientID] = append(c.clients[clientID], time.Now())
}

// TimeUntilReset calculates how long until the client's oldest request
// falls outside the window. Zero when the client is under the limit.
func (c *Cache) TimeUntilReset(clientID string) time.Duration {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	validTimes := c.filterRecent(clientID)
	if len(validTimes) < c.limit {
		return 0
	}

	oldest := validTimes[0]
	return c.duration - time.Since(oldest)
}

func (c *Cache) filterRecent(clientID string) []time.Time {
	validTimes := []time.Time{}
	for _, t := range c.clients[clientID] {
		if time.Since(t) <= c.duration {
			validTimes = append(validTimes, t)
		}
	}
	return validTimes
}
