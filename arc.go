package sortedvec

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// ArcVec is a sorted vector of shared entries. It stores pointers, so the
// same entry may be held by other containers (e.g., indexed by a different
// key) at the same time. Removing an entry from an ArcVec does not affect
// other holders.
//
// The zero value is not usable, create instances with NewArc or NewArcFunc.
type ArcVec[K any, V Keyed[K]] struct {
	engine[*V, K]
}

func keyOfShared[K any, V Keyed[K]](item *V) K {
	assert(item != nil, "sortedvec: nil entry in shared container")
	return (*item).Key()
}

// NewArc creates an empty shared vector for an ordered built-in key type.
func NewArc[K constraints.Ordered, V Keyed[K]]() *ArcVec[K, V] {
	return NewArcWithCapacity[K, V](0)
}

// NewArcWithCapacity creates an empty shared vector with room for capacity
// entries.
func NewArcWithCapacity[K constraints.Ordered, V Keyed[K]](capacity int) *ArcVec[K, V] {
	return &ArcVec[K, V]{
		engine: makeEngine(keyOfShared[K, V], compareOrdered[K], capacity),
	}
}

// NewArcFunc creates an empty shared vector for keys of arbitrary type,
// ordered by compare.
func NewArcFunc[K any, V Keyed[K]](compare func(a, b K) int) *ArcVec[K, V] {
	return &ArcVec[K, V]{
		engine: makeEngine(keyOfShared[K, V], compare, 0),
	}
}

// RangeByIndex returns the entries at positions [from, to), clamped to the
// bounds of the vector. It is empty if from >= to.
// The returned slice is a read-only view into the container.
func (v *ArcVec[K, V]) RangeByIndex(from, to int) []*V {
	return v.rangeByIndex(from, to)
}

// SubSequence copies the entries with keys in [from, to] into a new vector.
// Entries are shared between both vectors.
func (v *ArcVec[K, V]) SubSequence(from, to K) *ArcVec[K, V] {
	return &ArcVec[K, V]{engine: v.subSequence(from, to)}
}

func (v *ArcVec[K, V]) subSequence(from, to K) engine[*V, K] {
	run := v.Range(from, to)
	sub := makeEngine(v.keyOf, v.compare, len(run))
	sub.items = append(sub.items, run...)
	return sub
}

// Drain removes all entries and returns them in ascending key order.
func (v *ArcVec[K, V]) Drain() []*V {
	items := v.drain()
	T().Debugf("sortedvec: drained %d shared entries", len(items))
	return items
}

// Reserve makes room for at least additional more entries.
func (v *ArcVec[K, V]) Reserve(additional int) {
	v.reserve(additional)
}

// ReserveExact makes room for exactly additional more entries, if there is
// not already enough spare capacity.
func (v *ArcVec[K, V]) ReserveExact(additional int) {
	v.reserveExact(additional)
}

// TruncateCapacity releases spare capacity of the backing slice.
func (v *ArcVec[K, V]) TruncateCapacity() {
	before := v.Cap()
	v.truncateCapacity()
	T().Debugf("sortedvec: truncated capacity %d -> %d", before, v.Cap())
}

// Check validates that entries are non-nil and in strictly ascending key
// order.
func (v *ArcVec[K, V]) Check() error {
	if err := checkShared(v.items); err != nil {
		return err
	}
	return v.check()
}

func checkShared[V any](items []*V) error {
	for i, item := range items {
		if item == nil {
			return fmt.Errorf("%w: at index %d", ErrNilEntry, i)
		}
	}
	return nil
}

// ArcStrVec is a sorted vector of shared entries with string keys.
type ArcStrVec[V Keyed[string]] struct {
	ArcVec[string, V]
}

// NewArcStr creates an empty shared vector for string-keyed entries.
func NewArcStr[V Keyed[string]]() *ArcStrVec[V] {
	return NewArcStrWithCapacity[V](0)
}

// NewArcStrWithCapacity creates an empty shared string-keyed vector with room
// for capacity entries.
func NewArcStrWithCapacity[V Keyed[string]](capacity int) *ArcStrVec[V] {
	return &ArcStrVec[V]{ArcVec: *NewArcWithCapacity[string, V](capacity)}
}

// SubSequence copies the entries with keys in [from, to] into a new vector.
// Entries are shared between both vectors.
func (v *ArcStrVec[V]) SubSequence(from, to string) *ArcStrVec[V] {
	return &ArcStrVec[V]{ArcVec: ArcVec[string, V]{engine: v.subSequence(from, to)}}
}

// WithPrefix returns the contiguous run of entries whose keys start with
// prefix, as a read-only view into the container.
func (v *ArcStrVec[V]) WithPrefix(prefix string) []*V {
	return prefixRun(&v.engine, prefix)
}
