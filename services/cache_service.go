package services

import (
	"sync"
	"time"

	"github.com/claimlens/claimlens-backend/models"
)

// CacheEntry represents a cached verdict with its insertion time
type CacheEntry struct {
	Result     *models.VerificationResult
	InsertedAt time.Time
}

// IsExpired checks if the cache entry has aged past the given TTL
func (ce *CacheEntry) IsExpired(ttl time.Duration) bool {
	return time.Since(ce.InsertedAt) >= ttl
}

// CacheService is the in-memory verdict cache, keyed by claim fingerprint.
// Expiry is enforced lazily at read time; the background cleanup job only
// reclaims memory. It supports:
// - TTL-bounded lookups (stale entries are treated as absent)
// - Unconditional last-write-wins stores
// - Thread-safe operations with read/write locks
// - FIFO eviction once the configured max size is reached
type CacheService struct {
	cache   map[string]*CacheEntry
	mutex   sync.RWMutex
	ttl     time.Duration
	maxSize int
}

// NewCacheService creates a verdict cache with the given TTL and max size
func NewCacheService(ttl time.Duration, maxSize int) *CacheService {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &CacheService{
		cache:   make(map[string]*CacheEntry),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Lookup returns the cached verdict for a fingerprint. It reports absent when
// no entry exists or the entry has expired; an expired entry is left in place
// for a later Store or cleanup pass to overwrite.
func (cs *CacheService) Lookup(fingerprint string) (*models.VerificationResult, bool) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	entry, exists := cs.cache[fingerprint]
	if !exists || entry.IsExpired(cs.ttl) {
		return nil, false
	}

	return entry.Result, true
}

// Store inserts or overwrites the verdict for a fingerprint with the current
// timestamp. Last write wins; no check is made against an existing entry.
func (cs *CacheService) Store(fingerprint string, result *models.VerificationResult) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	if _, exists := cs.cache[fingerprint]; !exists && len(cs.cache) >= cs.maxSize {
		cs.evictOldest()
	}

	cs.cache[fingerprint] = &CacheEntry{
		Result:     result,
		InsertedAt: time.Now(),
	}
}

// evictOldest removes the oldest entry from cache (simple FIFO eviction)
func (cs *CacheService) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range cs.cache {
		if oldestKey == "" || entry.InsertedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.InsertedAt
		}
	}

	if oldestKey != "" {
		delete(cs.cache, oldestKey)
	}
}

// Delete removes the entry for a fingerprint
func (cs *CacheService) Delete(fingerprint string) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	delete(cs.cache, fingerprint)
}

// Clear removes all cached verdicts
func (cs *CacheService) Clear() {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	cs.cache = make(map[string]*CacheEntry)
}

// Size returns the number of entries in cache, expired ones included
func (cs *CacheService) Size() int {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	return len(cs.cache)
}

// TTL returns the configured time-to-live
func (cs *CacheService) TTL() time.Duration {
	return cs.ttl
}

// CleanupExpired removes expired entries and returns how many were purged
func (cs *CacheService) CleanupExpired() int {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	purged := 0
	for key, entry := range cs.cache {
		if entry.IsExpired(cs.ttl) {
			delete(cs.cache, key)
			purged++
		}
	}

	return purged
}
