package cache

import (
	"context"
	"sync"
	"time"

	"github.com/crm/backend/internal/application/report"
)

// entry represents a cached snapshot with expiration
type entry struct {
	snapshot  report.WeeklyReportResponse
	expiresAt time.Time
}

// InMemoryReportCache implements report.ReportCache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryReportCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryReportCache creates a new in-memory report cache.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryReportCache() *InMemoryReportCache {
	c := &InMemoryReportCache{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	// Start cleanup goroutine
	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get retrieves a cached snapshot. Expired entries are reported as misses.
func (c *InMemoryReportCache) Get(ctx context.Context, key string) (*report.WeeklyReportResponse, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists {
		return nil, false, nil
	}
	if time.Now().After(e.expiresAt) {
		return nil, false, nil // Expired, treat as a miss
	}

	// Return a copy so callers cannot mutate the cached value
	snapshot := e.snapshot
	return &snapshot, true, nil
}

// Set stores a snapshot with the given TTL
func (c *InMemoryReportCache) Set(ctx context.Context, key string, snapshot *report.WeeklyReportResponse, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		snapshot:  *snapshot,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (c *InMemoryReportCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryReportCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries from the cache
func (c *InMemoryReportCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemoryReportCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryReportCache implements report.ReportCache
var _ report.ReportCache = (*InMemoryReportCache)(nil)
