// Package cache provides a generic sharded LRU cache used by the
// compositor's display-conversion layer.
//
// The cache is explicitly keyed: callers supply a content or identity
// token of their choosing and invalidate it themselves. There is no
// process-global, implicitly-keyed cache anywhere in the module, so tests
// and parallel pipelines never observe each other's entries.
package cache

import (
	"sync"
	"sync/atomic"
)

// Default configuration constants.
const (
	// ShardCount is the number of shards for reduced lock contention.
	// Must be a power of 2 for fast modulo via bitwise AND.
	ShardCount = 16

	// DefaultCapacity is the default maximum entries per shard.
	DefaultCapacity = 64

	// shardMask is used for fast shard selection (ShardCount - 1).
	shardMask = ShardCount - 1
)

// Hasher computes a hash for a key, used for shard selection.
type Hasher[K any] func(K) uint64

// Uint64Hasher returns the key itself as the hash (identity hash).
func Uint64Hasher(u uint64) uint64 {
	return u
}

// Stats holds cache hit/miss/eviction counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// Sharded is a thread-safe, sharded LRU cache.
//
// Each shard has its own mutex and LRU list, so concurrent pipelines
// touching different tokens rarely contend. Statistics are atomic and
// allocation-free to read.
type Sharded[K comparable, V any] struct {
	shards   [ShardCount]*shard[K, V]
	hasher   Hasher[K]
	capacity int // per shard

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// shard is a single shard of the cache.
type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*shardEntry[K, V]
	lru     lruList[K]
}

// shardEntry holds a cached value with its LRU node.
type shardEntry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// NewSharded creates a sharded cache with the given capacity per shard.
// If capacity <= 0, DefaultCapacity is used.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[K, V]{
		hasher:   hasher,
		capacity: capacity,
	}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{
			entries: make(map[K]*shardEntry[K, V]),
		}
	}
	return c
}

// getShard returns the shard for a given key.
func (c *Sharded[K, V]) getShard(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get retrieves a cached value by key, refreshing its LRU position.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.getShard(key)

	s.mu.Lock()
	entry, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.lru.MoveToFront(entry.node)
	value := entry.value
	s.mu.Unlock()

	c.hits.Add(1)
	return value, true
}

// GetOrCreate returns the cached value for key, calling create to produce
// it on a miss. The create function runs with the shard lock held so
// concurrent callers never compute the same token twice; keep it fast.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() V) V {
	s := c.getShard(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[key]; ok {
		s.lru.MoveToFront(entry.node)
		c.hits.Add(1)
		return entry.value
	}

	c.misses.Add(1)
	value := create()
	c.insertLocked(s, key, value)
	return value
}

// Set stores a value, evicting the oldest entries past capacity.
func (c *Sharded[K, V]) Set(key K, value V) {
	s := c.getShard(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[key]; ok {
		entry.value = value
		s.lru.MoveToFront(entry.node)
		return
	}
	c.insertLocked(s, key, value)
}

// insertLocked adds a new entry to a shard the caller has locked.
func (c *Sharded[K, V]) insertLocked(s *shard[K, V], key K, value V) {
	for s.lru.Len() >= c.capacity {
		oldest, ok := s.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(s.entries, oldest)
		c.evictions.Add(1)
	}
	s.entries[key] = &shardEntry[K, V]{
		value: value,
		node:  s.lru.PushFront(key),
	}
}

// Delete removes an entry, reporting whether it was present.
func (c *Sharded[K, V]) Delete(key K) bool {
	s := c.getShard(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.Remove(entry.node)
	delete(s.entries, key)
	return true
}

// Clear removes all entries.
func (c *Sharded[K, V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[K]*shardEntry[K, V])
		s.lru.Clear()
		s.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Stats returns current cache statistics.
func (c *Sharded[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity * ShardCount,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   hitRate,
	}
}
