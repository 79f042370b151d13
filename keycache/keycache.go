package keycache

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/gogpu/rstate"
)

const (
	// ShardCount is the number of shards. Must be a power of 2.
	ShardCount = 16

	// DefaultCapacity is the default maximum number of entries per shard.
	DefaultCapacity = 64

	shardMask = ShardCount - 1
)

// Cache maps sort keys to objects derived from the state they encode, such
// as a backend pipeline built for one combination of render state.
//
// Each shard evicts its least recently used entry once it holds capacity
// entries. The eviction callback, if any, runs after the shard lock is
// released and may take as long as it needs.
//
// Cache is safe for concurrent use and must not be copied after creation.
type Cache[V any] struct {
	shards   [ShardCount]shard[V]
	capacity int
	onEvict  func(rstate.SortKey, V)

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type removal[V any] struct {
	key   rstate.SortKey
	value V
}

type shard[V any] struct {
	mu  sync.Mutex
	lru *simplelru.LRU[rstate.SortKey, V]

	// removed collects entries dropped by lru while mu is held.
	removed []removal[V]
}

// take returns and clears the pending removals. mu must be held.
func (s *shard[V]) take() []removal[V] {
	r := s.removed
	s.removed = nil
	return r
}

// Option configures a Cache.
type Option[V any] func(*Cache[V])

// WithEvict registers fn to be called for every entry removed by eviction,
// Delete, Invalidate or Clear. Use it to release backend objects.
func WithEvict[V any](fn func(rstate.SortKey, V)) Option[V] {
	return func(c *Cache[V]) {
		c.onEvict = fn
	}
}

// New creates a cache holding up to capacity entries per shard.
// If capacity <= 0, DefaultCapacity is used.
func New[V any](capacity int, opts ...Option[V]) *Cache[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache[V]{capacity: capacity}
	for i := range c.shards {
		s := &c.shards[i]
		// NewLRU only fails for a non-positive size.
		s.lru, _ = simplelru.NewLRU[rstate.SortKey, V](capacity, func(k rstate.SortKey, v V) {
			s.removed = append(s.removed, removal[V]{key: k, value: v})
		})
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache[V]) shardFor(k rstate.SortKey) *shard[V] {
	return &c.shards[k.Hash()&shardMask]
}

// Get returns the object cached for k and marks it recently used.
func (c *Cache[V]) Get(k rstate.SortKey) (V, bool) {
	s := c.shardFor(k)
	s.mu.Lock()
	v, ok := s.lru.Get(k)
	s.mu.Unlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// GetOrCreate returns the object cached for k, calling create to build it on
// a miss. create runs with the shard locked, so concurrent callers for the
// same key build the object once. A create error is returned as-is and
// nothing is cached.
func (c *Cache[V]) GetOrCreate(k rstate.SortKey, create func() (V, error)) (V, error) {
	s := c.shardFor(k)
	v, hit, removed, err := c.getOrCreateLocked(s, k, create)
	if hit {
		c.hits.Add(1)
		return v, nil
	}
	if err != nil {
		return v, err
	}

	for _, r := range removed {
		rstate.Logger().Debug("keycache: evicted", slog.String("key", r.key.String()))
	}
	c.release(removed)
	return v, nil
}

// getOrCreateLocked does the lookup and insert of GetOrCreate under the
// shard lock. The lock is released even if create panics.
func (c *Cache[V]) getOrCreateLocked(s *shard[V], k rstate.SortKey, create func() (V, error)) (v V, hit bool, removed []removal[V], err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.lru.Get(k); ok {
		return v, true, nil, nil
	}

	c.misses.Add(1)
	v, err = create()
	if err != nil {
		return v, false, nil, err
	}
	if s.lru.Add(k, v) {
		c.evictions.Add(1)
	}
	return v, false, s.take(), nil
}

// Delete removes the entry for k. It reports whether an entry was removed.
func (c *Cache[V]) Delete(k rstate.SortKey) bool {
	s := c.shardFor(k)
	s.mu.Lock()
	ok := s.lru.Remove(k)
	removed := s.take()
	s.mu.Unlock()

	c.release(removed)
	return ok
}

// Invalidate removes every entry whose key holds id in category cat, e.g.
// after the state behind that entry changed outside the interning tables.
// It returns the number of entries removed.
func (c *Cache[V]) Invalidate(cat rstate.Category, id rstate.ID) int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		for _, k := range s.lru.Keys() {
			if got, ok := k.Slot(cat); ok && got == id {
				s.lru.Remove(k)
			}
		}
		removed := s.take()
		s.mu.Unlock()

		c.release(removed)
		n += len(removed)
	}

	if n > 0 {
		rstate.Logger().Debug("keycache: invalidated",
			slog.Int("category", int(cat)),
			slog.Uint64("id", uint64(id)),
			slog.Int("entries", n))
	}
	return n
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		s.lru.Purge()
		removed := s.take()
		s.mu.Unlock()

		c.release(removed)
	}
}

func (c *Cache[V]) release(removed []removal[V]) {
	if c.onEvict == nil {
		return
	}
	for _, r := range removed {
		c.onEvict(r.key, r.value)
	}
}

// Len returns the number of cached entries across all shards.
func (c *Cache[V]) Len() int {
	total := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		total += s.lru.Len()
		s.mu.Unlock()
	}
	return total
}

// Stats holds cache statistics.
type Stats struct {
	Len           int
	Capacity      int // per shard
	TotalCapacity int
	Hits          uint64
	Misses        uint64
	HitRate       float64
	Evictions     uint64
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache[V]) Stats() Stats {
	hits, misses := c.hits.Load(), c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{
		Len:           c.Len(),
		Capacity:      c.capacity,
		TotalCapacity: c.capacity * ShardCount,
		Hits:          hits,
		Misses:        misses,
		HitRate:       rate,
		Evictions:     c.evictions.Load(),
	}
}

// ResetStats zeroes the hit, miss and eviction counters.
func (c *Cache[V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}
