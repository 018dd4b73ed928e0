// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"cmp"
	"slices"
	"sync"
)

// Cache is a thread-safe cache with a soft size limit. When an insertion
// takes it past the limit, the least recently used quarter is evicted.
//
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*entry[V]
	softLimit int
	tick      uint64 // monotonic access counter

	hits, misses, evictions uint64
}

type entry[V any] struct {
	value V
	atime uint64
}

// New creates a cache holding about softLimit entries. A softLimit of 0
// means unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*entry[V]),
		softLimit: softLimit,
	}
}

// Get returns the value stored for key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.tick++
	e.atime = c.tick
	return e.value, true
}

// Set stores value for key.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, value)
}

// GetOrCreate returns the value stored for key, calling create to make it
// on a miss. create runs under the cache lock, so concurrent callers never
// create the same key twice.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.hits++
		c.tick++
		e.atime = c.tick
		return e.value
	}
	c.misses++
	v := create()
	c.store(key, v)
	return v
}

// store inserts under c.mu and evicts past the soft limit.
func (c *Cache[K, V]) store(key K, value V) {
	c.tick++
	c.entries[key] = &entry[V]{value: value, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evict()
	}
}

// evict drops the least recently used entries down to three quarters of
// the soft limit. Caller must hold c.mu.
func (c *Cache[K, V]) evict() {
	target := max(c.softLimit*3/4, 1)
	n := len(c.entries) - target
	if n <= 0 {
		return
	}
	type aged struct {
		key   K
		atime uint64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{k, e.atime})
	}
	slices.SortFunc(all, func(a, b aged) int { return cmp.Compare(a.atime, b.atime) })
	for _, a := range all[:n] {
		delete(c.entries, a.key)
	}
	c.evictions += uint64(n)
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Clear removes all entries. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns usage counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Capacity:  c.softLimit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Stats contains cache statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	// HitRate is hits over lookups, 0 before the first lookup.
	HitRate float64
}
