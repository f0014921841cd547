// Package cache provides token holdings caching with staleness checks.
package cache

import (
	"sync"
	"time"

	"github.com/mrz1836/stakeview/internal/chain"
)

// DefaultStaleness is the default duration after which cache entries are considered stale.
const DefaultStaleness = 5 * time.Minute

// Cache defines the interface for holdings caching operations.
type Cache interface {
	// Get retrieves a cached holdings entry.
	Get(cluster chain.Cluster, owner string) (*HoldingsEntry, bool, time.Duration)

	// Set stores a holdings entry in the cache.
	Set(entry HoldingsEntry)

	// IsStale checks if a cache entry is stale.
	IsStale(cluster chain.Cluster, owner string) bool

	// IsStaleWithDuration checks staleness with custom duration.
	IsStaleWithDuration(cluster chain.Cluster, owner string, staleness time.Duration) bool

	// Delete removes a cache entry.
	Delete(cluster chain.Cluster, owner string)

	// Clear removes all cache entries.
	Clear()

	// Size returns the number of cache entries.
	Size() int

	// Prune removes entries older than maxAge.
	Prune(maxAge time.Duration) int
}

// Compile-time interface check
var _ Cache = (*HoldingsCache)(nil)

// HoldingsCache stores the token accounts last seen for each wallet.
type HoldingsCache struct {
	mu      sync.RWMutex             `json:"-"`
	Entries map[string]HoldingsEntry `json:"entries"`
}

// HoldingsEntry is the cached token account list of one owner.
type HoldingsEntry struct {
	Cluster   chain.Cluster        `json:"cluster"`
	Owner     string               `json:"owner"`
	Accounts  []chain.TokenAccount `json:"accounts"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// NewHoldingsCache creates a new empty holdings cache.
func NewHoldingsCache() *HoldingsCache {
	return &HoldingsCache{
		Entries: make(map[string]HoldingsEntry),
	}
}

// Key generates a cache key for an owner on a cluster.
func Key(cluster chain.Cluster, owner string) string {
	return string(cluster) + ":" + owner
}

// Get retrieves a cached holdings entry.
// Returns the entry, whether it exists, and its age.
func (c *HoldingsCache) Get(cluster chain.Cluster, owner string) (*HoldingsEntry, bool, time.Duration) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.Entries[Key(cluster, owner)]
	if !exists {
		return nil, false, 0
	}

	entry.Accounts = append([]chain.TokenAccount(nil), entry.Accounts...)
	return &entry, true, time.Since(entry.UpdatedAt)
}

// Set stores a holdings entry in the cache, stamping it with the current time.
func (c *HoldingsCache) Set(entry HoldingsEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry.Accounts = append([]chain.TokenAccount(nil), entry.Accounts...)
	entry.UpdatedAt = time.Now()
	c.Entries[Key(entry.Cluster, entry.Owner)] = entry
}

// IsStale checks if a cache entry is stale based on the default staleness duration.
func (c *HoldingsCache) IsStale(cluster chain.Cluster, owner string) bool {
	return c.IsStaleWithDuration(cluster, owner, DefaultStaleness)
}

// IsStaleWithDuration checks if a cache entry is stale based on a custom duration.
func (c *HoldingsCache) IsStaleWithDuration(cluster chain.Cluster, owner string, staleness time.Duration) bool {
	_, exists, age := c.Get(cluster, owner)
	if !exists {
		return true
	}
	return age > staleness
}

// Delete removes a cache entry.
func (c *HoldingsCache) Delete(cluster chain.Cluster, owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.Entries, Key(cluster, owner))
}

// Clear removes all cache entries.
func (c *HoldingsCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Entries = make(map[string]HoldingsEntry)
}

// Size returns the number of cache entries.
func (c *HoldingsCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.Entries)
}

// Prune removes entries older than the specified duration.
func (c *HoldingsCache) Prune(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-maxAge)

	for key, entry := range c.Entries {
		if entry.UpdatedAt.Before(cutoff) {
			delete(c.Entries, key)
			removed++
		}
	}

	return removed
}
