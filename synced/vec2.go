package synced

import (
	"context"
	"slices"
	"sync"

	"github.com/npillmayer/sortedvec"
)

// Keys identifies a row of a two-level container.
type Keys struct {
	Primary, Secondary string
}

func keysOf[V sortedvec.TwoKeyed](item V) Keys {
	return Keys{Primary: item.PrimaryKey(), Secondary: item.SecondaryKey()}
}

// Vec2 guards a sortedvec.Vec2 with a read/write mutex.
type Vec2[V sortedvec.TwoKeyed] struct {
	mu   sync.RWMutex
	vec  *sortedvec.Vec2[V]
	feed feed[Keys]
}

// New2 creates an empty, guarded two-level container.
func New2[V sortedvec.TwoKeyed]() *Vec2[V] {
	return Wrap2(sortedvec.New2[V]())
}

// Wrap2 guards an existing two-level container. Clients must not use vec
// directly afterwards.
func Wrap2[V sortedvec.TwoKeyed](vec *sortedvec.Vec2[V]) *Vec2[V] {
	return &Vec2[V]{vec: vec, feed: newFeed[Keys]()}
}

// InsertOrReplace stores item, replacing a row with the same keys.
func (s *Vec2[V]) InsertOrReplace(item V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, replaced := s.vec.InsertOrReplace(item)
	if replaced {
		s.feed.publish(Replaced, keysOf(item))
	} else {
		s.feed.publish(Inserted, keysOf(item))
	}
	return old, replaced
}

// InsertIfNotExists stores the row created by mk, unless a row for
// (primary, secondary) exists. It reports whether a row has been inserted.
func (s *Vec2[V]) InsertIfNotExists(primary, secondary string, mk func() V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ins, ok := s.vec.InsertIfNotExists(primary, secondary)
	if !ok {
		return false
	}
	ins.Insert(mk())
	s.feed.publish(Inserted, Keys{Primary: primary, Secondary: secondary})
	return true
}

// Get returns a copy of the row for (primary, secondary).
func (s *Vec2[V]) Get(primary, secondary string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vec.Get(primary, secondary)
}

// Partition returns a copy of the rows of partition primary.
func (s *Vec2[V]) Partition(primary string) ([]V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.vec.Partition(primary)
	if !ok {
		return nil, false
	}
	return slices.Clone(p.Items()), true
}

// Range returns a copy of the rows of partition primary with secondary keys
// in [from, to].
func (s *Vec2[V]) Range(primary, from, to string) ([]V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.vec.Range(primary, from, to)
	return slices.Clone(rows), ok
}

// Remove deletes the row for (primary, secondary) and returns it.
func (s *Vec2[V]) Remove(primary, secondary string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.vec.Remove(primary, secondary)
	if ok {
		s.feed.publish(Removed, Keys{Primary: primary, Secondary: secondary})
	}
	return old, ok
}

// RemoveByPrimaryKey deletes partition primary and returns its rows. Watchers
// receive one event per removed row.
func (s *Vec2[V]) RemoveByPrimaryKey(primary string) ([]V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.vec.RemoveByPrimaryKey(primary)
	for _, row := range rows {
		s.feed.publish(Removed, keysOf(row))
	}
	return rows, ok
}

// Len returns the total number of rows.
func (s *Vec2[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vec.Len()
}

// PartitionsLen returns the number of partitions.
func (s *Vec2[V]) PartitionsLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vec.PartitionsLen()
}

// Read calls fn with the container under the read lock. fn must not modify
// the container nor keep references into it.
func (s *Vec2[V]) Read(fn func(vec *sortedvec.Vec2[V])) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.vec)
}

// Write calls fn with the container under the write lock. Mutations done by
// fn are not reported to watchers.
func (s *Vec2[V]) Write(fn func(vec *sortedvec.Vec2[V])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.vec)
}

// Watch subscribes to change events. The returned channel is closed when ctx
// is done or the wrapper is closed.
func (s *Vec2[V]) Watch(ctx context.Context, capacity uint) (<-chan Change[Keys], error) {
	return s.feed.watch(ctx, capacity)
}

// Close shuts down the change feed and closes all watcher channels.
func (s *Vec2[V]) Close() {
	s.feed.close()
}
