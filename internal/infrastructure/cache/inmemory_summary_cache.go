package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Constants for in-memory cache configuration
const (
	defaultCleanupInterval = 30 * time.Second
	defaultSummaryTTL      = 5 * time.Minute
)

// InMemorySummaryCache implements SummaryCache using in-process storage.
// Suitable for single-instance deployments and testing.
type InMemorySummaryCache struct {
	entries sync.Map // map[string]*summaryEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// summaryEntry wraps a cached payload with its expiration time
type summaryEntry struct {
	payload   []byte
	expiresAt time.Time
}

func (e *summaryEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemorySummaryCacheOption is a functional option for configuring the cache
type InMemorySummaryCacheOption func(*InMemorySummaryCache)

// WithTTL sets the entry time-to-live
func WithTTL(ttl time.Duration) InMemorySummaryCacheOption {
	return func(c *InMemorySummaryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemorySummaryCacheOption {
	return func(c *InMemorySummaryCache) {
		c.logger = logger
	}
}

// NewInMemorySummaryCache creates a new in-memory summary cache
func NewInMemorySummaryCache(opts ...InMemorySummaryCacheOption) *InMemorySummaryCache {
	cache := &InMemorySummaryCache{
		ttl:    defaultSummaryTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	// Start background cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

// Get returns the cached payload for the key, or found=false
func (c *InMemorySummaryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := c.entries.Load(key)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}
	entry := value.(*summaryEntry)
	if entry.isExpired() {
		c.entries.Delete(key)
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}
	atomic.AddInt64(&c.hits, 1)
	return entry.payload, true, nil
}

// Set stores the payload under the key with the cache's TTL
func (c *InMemorySummaryCache) Set(_ context.Context, key string, payload []byte) error {
	c.entries.Store(key, &summaryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(c.ttl),
	})
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemorySummaryCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// Stats returns hit and miss counters
func (c *InMemorySummaryCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// cleanupExpired periodically evicts expired entries
func (c *InMemorySummaryCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, value interface{}) bool {
				if value.(*summaryEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}
