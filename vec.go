package sortedvec

import (
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

// Vec is a sorted vector of entries stored by value, ordered by Key().
//
// The zero value is not usable, create instances with New or NewFunc.
type Vec[K any, V Keyed[K]] struct {
	engine[V, K]
}

func keyOfValue[K any, V Keyed[K]](item V) K {
	return item.Key()
}

// New creates an empty vector for an ordered built-in key type.
func New[K constraints.Ordered, V Keyed[K]]() *Vec[K, V] {
	return NewWithCapacity[K, V](0)
}

// NewWithCapacity creates an empty vector with room for capacity entries.
func NewWithCapacity[K constraints.Ordered, V Keyed[K]](capacity int) *Vec[K, V] {
	return &Vec[K, V]{
		engine: makeEngine(keyOfValue[K, V], compareOrdered[K], capacity),
	}
}

// NewFunc creates an empty vector for keys of arbitrary type, ordered by
// compare, which has to return a negative number, zero or a positive number
// if a orders before, equal to or after b.
func NewFunc[K any, V Keyed[K]](compare func(a, b K) int) *Vec[K, V] {
	return &Vec[K, V]{
		engine: makeEngine(keyOfValue[K, V], compare, 0),
	}
}

// Check validates that entries are in strictly ascending key order.
func (v *Vec[K, V]) Check() error {
	return v.check()
}

// StrVec is a sorted vector of entries stored by value with string keys.
type StrVec[V Keyed[string]] struct {
	Vec[string, V]
}

// NewStr creates an empty vector for string-keyed entries.
func NewStr[V Keyed[string]]() *StrVec[V] {
	return NewStrWithCapacity[V](0)
}

// NewStrWithCapacity creates an empty string-keyed vector with room for
// capacity entries.
func NewStrWithCapacity[V Keyed[string]](capacity int) *StrVec[V] {
	return &StrVec[V]{Vec: *NewWithCapacity[string, V](capacity)}
}

// WithPrefix returns the contiguous run of entries whose keys start with
// prefix, as a read-only view into the container.
func (v *StrVec[V]) WithPrefix(prefix string) []V {
	return prefixRun(&v.engine, prefix)
}

// prefixRun relies on all keys carrying prefix being adjacent and ordered
// at or after prefix itself.
func prefixRun[E any](e *engine[E, string], prefix string) []E {
	lo, _ := e.Index(prefix)
	rest := e.items[lo:]
	n := sort.Search(len(rest), func(i int) bool {
		return !strings.HasPrefix(e.keyOf(rest[i]), prefix)
	})
	return rest[:n:n]
}
