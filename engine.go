package sortedvec

import (
	"fmt"
	"iter"
	"slices"

	"golang.org/x/exp/constraints"
)

// Keyed is implemented by entries of single-key containers. The key must not
// change while the entry is stored in a container.
type Keyed[K any] interface {
	Key() K
}

// compareOrdered is the default key comparison for ordered built-in types.
func compareOrdered[K constraints.Ordered](a, b K) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// engine is the sorted slice all container shapes are built on. E is the
// stored element (a value or a shared pointer), K the key type.
//
// Invariant: keyOf(items[i]) < keyOf(items[i+1]) for all i.
type engine[E, K any] struct {
	items   []E
	keyOf   func(E) K
	compare func(a, b K) int
	stamp   uint64 // incremented on every structural change
}

func makeEngine[E, K any](keyOf func(E) K, compare func(a, b K) int, capacity int) engine[E, K] {
	assert(keyOf != nil, "sortedvec: key function must not be nil")
	assert(compare != nil, "sortedvec: compare function must not be nil")
	e := engine[E, K]{keyOf: keyOf, compare: compare}
	if capacity > 0 {
		e.items = make([]E, 0, capacity)
	}
	return e
}

func (e *engine[E, K]) cmpItem(item E, key K) int {
	return e.compare(e.keyOf(item), key)
}

// Index searches for key. It returns the position of the entry and true if
// key is present, or the insertion point and false if it is not.
func (e *engine[E, K]) Index(key K) (int, bool) {
	return BinarySearch(e.items, key, e.cmpItem)
}

func (e *engine[E, K]) insertAt(i int, item E) {
	e.items = slices.Insert(e.items, i, item)
	e.stamp++
}

func (e *engine[E, K]) deleteAt(i int) E {
	old := e.items[i]
	e.items = slices.Delete(e.items, i, i+1)
	e.stamp++
	return old
}

// --- Upserts ---------------------------------------------------------------

// InsertOrReplace stores item at the position of its key. If an entry with the
// same key exists, it is replaced and returned together with true.
// The first return value is the position of item.
func (e *engine[E, K]) InsertOrReplace(item E) (int, E, bool) {
	i, found := e.Index(e.keyOf(item))
	if found {
		old := e.items[i]
		e.items[i] = item
		return i, old, true
	}
	e.insertAt(i, item)
	var zero E
	return i, zero, false
}

// InsertOrUpdate searches for key and returns exactly one non-nil handle:
// an insert handle if key is absent, an update handle if it is present.
func (e *engine[E, K]) InsertOrUpdate(key K) (*InsertEntry[E, K], *UpdateEntry[E, K]) {
	i, found := e.Index(key)
	if found {
		return nil, e.updateEntry(i)
	}
	return e.insertEntry(i, key), nil
}

// InsertIfNotExists returns an insert handle and true if key is absent.
// If key is present, nothing is reserved and it returns nil and false.
func (e *engine[E, K]) InsertIfNotExists(key K) (*InsertEntry[E, K], bool) {
	i, found := e.Index(key)
	if found {
		return nil, false
	}
	return e.insertEntry(i, key), true
}

// GetMutOrCreate returns a reference to the entry for key if present, or an
// insert handle if absent. Exactly one of the results is non-nil.
func (e *engine[E, K]) GetMutOrCreate(key K) (*E, *InsertEntry[E, K]) {
	i, found := e.Index(key)
	if found {
		return &e.items[i], nil
	}
	return nil, e.insertEntry(i, key)
}

// Upsert resolves the entry for key with a single search. fn receives the
// current entry (if exists is true) and returns the entry to store, which must
// carry the same key. Upsert returns the position of the stored entry.
func (e *engine[E, K]) Upsert(key K, fn func(old E, exists bool) E) int {
	i, found := e.Index(key)
	var old E
	if found {
		old = e.items[i]
	}
	item := fn(old, found)
	assert(e.compare(e.keyOf(item), key) == 0, "sortedvec: upserted item does not carry the requested key")
	if found {
		e.items[i] = item
	} else {
		e.insertAt(i, item)
	}
	return i
}

// --- Lookups ---------------------------------------------------------------

// Get returns the entry for key.
func (e *engine[E, K]) Get(key K) (E, bool) {
	if i, found := e.Index(key); found {
		return e.items[i], true
	}
	var zero E
	return zero, false
}

// GetRef returns a reference to the stored entry for key, or nil.
// The reference is valid until the next insertion or removal.
// Clients must not change the key through it.
func (e *engine[E, K]) GetRef(key K) *E {
	if i, found := e.Index(key); found {
		return &e.items[i]
	}
	return nil
}

// Contains reports whether an entry for key is present.
func (e *engine[E, K]) Contains(key K) bool {
	_, found := e.Index(key)
	return found
}

// GetFromKeyToUp returns all entries with keys >= key.
// The returned slice is a read-only view into the container.
func (e *engine[E, K]) GetFromKeyToUp(key K) []E {
	i, _ := e.Index(key)
	return slices.Clip(e.items[i:])
}

// GetFromBottomToKey returns all entries with keys <= key.
// The returned slice is a read-only view into the container.
func (e *engine[E, K]) GetFromBottomToKey(key K) []E {
	i, found := e.Index(key)
	if found {
		i++
	}
	return e.items[:i:i]
}

// Range returns the entries with keys in the closed interval [from, to].
// It returns an empty slice if from orders after to.
// The returned slice is a read-only view into the container.
func (e *engine[E, K]) Range(from, to K) []E {
	lo, hi := e.bounds(from, to)
	return e.items[lo:hi:hi]
}

// bounds computes the index interval [lo, hi) of keys in [from, to].
func (e *engine[E, K]) bounds(from, to K) (int, int) {
	if e.compare(from, to) > 0 {
		return 0, 0
	}
	lo, _ := e.Index(from)
	hi, found := BinarySearch(e.items[lo:], to, e.cmpItem)
	hi += lo
	if found {
		hi++
	}
	return lo, hi
}

// At returns the entry at position i.
func (e *engine[E, K]) At(i int) (E, bool) {
	if i < 0 || i >= len(e.items) {
		var zero E
		return zero, false
	}
	return e.items[i], true
}

// First returns the entry with the smallest key.
func (e *engine[E, K]) First() (E, bool) {
	return e.At(0)
}

// Last returns the entry with the largest key.
func (e *engine[E, K]) Last() (E, bool) {
	return e.At(len(e.items) - 1)
}

// --- Removal ---------------------------------------------------------------

// Remove deletes the entry for key and returns it.
func (e *engine[E, K]) Remove(key K) (E, bool) {
	if i, found := e.Index(key); found {
		return e.deleteAt(i), true
	}
	var zero E
	return zero, false
}

// RemoveAt deletes the entry at position i and returns it.
func (e *engine[E, K]) RemoveAt(i int) (E, bool) {
	if i < 0 || i >= len(e.items) {
		var zero E
		return zero, false
	}
	return e.deleteAt(i), true
}

// Clear removes all entries. If reserve is positive, a fresh backing slice
// with this capacity is allocated, otherwise the backing slice is released.
func (e *engine[E, K]) Clear(reserve int) {
	T().Debugf("sortedvec: clearing %d entries, reserving %d", len(e.items), max(reserve, 0))
	if reserve > 0 {
		e.items = make([]E, 0, reserve)
	} else {
		e.items = nil
	}
	e.stamp++
}

// --- Iteration -------------------------------------------------------------

// Items returns all entries in ascending key order.
// The returned slice is a read-only view into the container.
func (e *engine[E, K]) Items() []E {
	return slices.Clip(e.items)
}

// All iterates over positions and entries in ascending key order.
func (e *engine[E, K]) All() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		for i, item := range e.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// ForEach calls fn for every entry in ascending key order.
// Iteration stops early if fn returns false.
func (e *engine[E, K]) ForEach(fn func(item E) bool) {
	for _, item := range e.items {
		if !fn(item) {
			return
		}
	}
}

// ForEachRef calls fn with a reference to every stored entry in ascending key
// order. fn may modify entries, but must not change their keys.
// Iteration stops early if fn returns false.
func (e *engine[E, K]) ForEachRef(fn func(item *E) bool) {
	for i := range e.items {
		if !fn(&e.items[i]) {
			return
		}
	}
}

// Len returns the number of entries.
func (e *engine[E, K]) Len() int {
	return len(e.items)
}

// IsEmpty reports whether the container has no entries.
func (e *engine[E, K]) IsEmpty() bool {
	return len(e.items) == 0
}

// Cap returns the capacity of the backing slice.
func (e *engine[E, K]) Cap() int {
	return cap(e.items)
}

// --- Capacity and bulk operations used by the shared variants -------------

func (e *engine[E, K]) rangeByIndex(from, to int) []E {
	from = max(from, 0)
	to = min(to, len(e.items))
	if from >= to {
		return e.items[:0:0]
	}
	return e.items[from:to:to]
}

func (e *engine[E, K]) drain() []E {
	items := e.items
	e.items = nil
	e.stamp++
	return items
}

func (e *engine[E, K]) reserve(additional int) {
	if additional > 0 {
		e.items = slices.Grow(e.items, additional)
	}
}

func (e *engine[E, K]) reserveExact(additional int) {
	if additional <= 0 || cap(e.items)-len(e.items) >= additional {
		return
	}
	items := make([]E, len(e.items), len(e.items)+additional)
	copy(items, e.items)
	e.items = items
}

func (e *engine[E, K]) truncateCapacity() {
	if cap(e.items) == len(e.items) {
		return
	}
	items := make([]E, len(e.items))
	copy(items, e.items)
	e.items = items
}

// --- Invariants ------------------------------------------------------------

func (e *engine[E, K]) check() error {
	for i := 1; i < len(e.items); i++ {
		prev, cur := e.keyOf(e.items[i-1]), e.keyOf(e.items[i])
		if e.compare(prev, cur) >= 0 {
			return fmt.Errorf("%w: key at %d (%v) is not below key at %d (%v)",
				ErrUnordered, i-1, prev, i, cur)
		}
	}
	return nil
}
