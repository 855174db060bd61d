// Package cache implements the concurrent transposition cache: a
// compute-once-and-remember wrapper around a static evaluator, shared by
// every Lazy SMP searcher. Entries are keyed by board fingerprint in a
// small sharded map guarded by per-shard mutexes, so concurrent readers and
// writers racing on the same key never corrupt state and a given key is
// computed exactly once under normal (non-racing) access.
package cache

import (
	"sync"

	"golang.org/x/exp/constraints"

	"github.com/brensch/serpentengine/board"
)

const shardCount = 64

type shard[S constraints.Ordered] struct {
	mu sync.RWMutex
	m  map[uint64]S
}

// Cache memoizes a static evaluation by board fingerprint. It is safe for
// concurrent use by multiple goroutines. Keys are spread over shardCount
// shards, each guarded by its own RWMutex, so a read of one key blocks a
// write of another only when both keys fall in the same shard.
type Cache[S constraints.Ordered] struct {
	shards [shardCount]*shard[S]
}

// New builds an empty cache.
func New[S constraints.Ordered]() *Cache[S] {
	c := &Cache[S]{}
	for i := range c.shards {
		c.shards[i] = &shard[S]{m: make(map[uint64]S)}
	}
	return c
}

func (c *Cache[S]) shardFor(fp uint64) *shard[S] {
	return c.shards[fp%shardCount]
}

// Score returns the cached evaluation for b, computing and storing it via
// eval on first access. Concurrent callers may both invoke eval for the
// same key (duplicate computes are benign since eval is pure); the cache
// never returns a half-written value.
func (c *Cache[S]) Score(b board.Board, eval func(board.Board) S) S {
	fp := b.Fingerprint()
	s := c.shardFor(fp)

	s.mu.RLock()
	v, ok := s.m[fp]
	s.mu.RUnlock()
	if ok {
		return v
	}

	v = eval(b)

	s.mu.Lock()
	s.m[fp] = v
	s.mu.Unlock()
	return v
}

// Len reports the total number of cached entries across all shards.
func (c *Cache[S]) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.m)
		s.mu.RUnlock()
	}
	return n
}

// Reset clears every shard. Callers may reset the cache between decisions
// without changing search semantics.
func (c *Cache[S]) Reset() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.m = make(map[uint64]S)
		s.mu.Unlock()
	}
}
