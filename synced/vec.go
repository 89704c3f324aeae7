package synced

import (
	"context"
	"slices"
	"sync"

	"github.com/npillmayer/sortedvec"
	"golang.org/x/exp/constraints"
)

// Vec guards a sortedvec.Vec with a read/write mutex.
type Vec[K any, V sortedvec.Keyed[K]] struct {
	mu   sync.RWMutex
	vec  *sortedvec.Vec[K, V]
	feed feed[K]
}

// New creates an empty, guarded vector for an ordered built-in key type.
func New[K constraints.Ordered, V sortedvec.Keyed[K]]() *Vec[K, V] {
	return Wrap(sortedvec.New[K, V]())
}

// Wrap guards an existing vector. Clients must not use vec directly
// afterwards.
func Wrap[K any, V sortedvec.Keyed[K]](vec *sortedvec.Vec[K, V]) *Vec[K, V] {
	return &Vec[K, V]{vec: vec, feed: newFeed[K]()}
}

// InsertOrReplace stores item, replacing an entry with the same key. The
// replaced entry is returned together with true.
func (s *Vec[K, V]) InsertOrReplace(item V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, old, replaced := s.vec.InsertOrReplace(item)
	if replaced {
		s.feed.publish(Replaced, item.Key())
	} else {
		s.feed.publish(Inserted, item.Key())
	}
	return old, replaced
}

// Upsert resolves the entry for key under the write lock, see
// sortedvec.Vec.Upsert.
func (s *Vec[K, V]) Upsert(key K, fn func(old V, exists bool) V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exists := s.vec.Contains(key)
	s.vec.Upsert(key, fn)
	if exists {
		s.feed.publish(Replaced, key)
	} else {
		s.feed.publish(Inserted, key)
	}
}

// Get returns a copy of the entry for key.
func (s *Vec[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vec.Get(key)
}

// Contains reports whether an entry for key is present.
func (s *Vec[K, V]) Contains(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vec.Contains(key)
}

// Range returns a copy of the entries with keys in [from, to].
func (s *Vec[K, V]) Range(from, to K) []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.vec.Range(from, to))
}

// Snapshot returns a copy of all entries in ascending key order.
func (s *Vec[K, V]) Snapshot() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.vec.Items())
}

// Remove deletes the entry for key and returns it.
func (s *Vec[K, V]) Remove(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.vec.Remove(key)
	if ok {
		s.feed.publish(Removed, key)
	}
	return old, ok
}

// Clear removes all entries.
func (s *Vec[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vec.Clear(0)
	var zero K
	s.feed.publish(Cleared, zero)
}

// Len returns the number of entries.
func (s *Vec[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vec.Len()
}

// Read calls fn with the vector under the read lock. fn must not modify the
// vector nor keep references into it.
func (s *Vec[K, V]) Read(fn func(vec *sortedvec.Vec[K, V])) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.vec)
}

// Write calls fn with the vector under the write lock. Mutations done by fn
// are not reported to watchers.
func (s *Vec[K, V]) Write(fn func(vec *sortedvec.Vec[K, V])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.vec)
}

// Watch subscribes to change events. The returned channel is closed when ctx
// is done or the wrapper is closed.
func (s *Vec[K, V]) Watch(ctx context.Context, capacity uint) (<-chan Change[K], error) {
	return s.feed.watch(ctx, capacity)
}

// Close shuts down the change feed and closes all watcher channels.
func (s *Vec[K, V]) Close() {
	s.feed.close()
}
