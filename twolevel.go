package sortedvec

import (
	"fmt"
	"iter"
	"slices"
)

// twoLevel is the engine of the two-level containers: a sorted vector of
// partitions, ordered by primary key, each holding rows ordered by secondary
// key.
//
// Invariants:
//   - no partition is empty,
//   - all rows of a partition share its primary key,
//   - length == sum of all partition lengths.
type twoLevel[E any] struct {
	parts       engine[*Partition[E], string]
	primaryOf   func(E) string
	secondaryOf func(E) string
	length      int
	rowCap      int
	stamp       uint64 // incremented on every structural change of parts or rows
}

func makeTwoLevel[E any](primaryOf, secondaryOf func(E) string, cfg Config) twoLevel[E] {
	cfg = cfg.normalized()
	return twoLevel[E]{
		parts: makeEngine(func(p *Partition[E]) string {
			return p.PrimaryKey()
		}, compareOrdered[string], cfg.PartitionCapacity),
		primaryOf:   primaryOf,
		secondaryOf: secondaryOf,
		rowCap:      cfg.RowCapacity,
	}
}

// locate searches for a (primary, secondary) pair. pi is the index of the
// partition (or its insertion point). ri is the index of the row within the
// partition (or its insertion point) and only meaningful if pfound.
func (t *twoLevel[E]) locate(primary, secondary string) (pi int, pfound bool, ri int, rfound bool) {
	pi, pfound = t.parts.Index(primary)
	if !pfound {
		return
	}
	ri, rfound = t.parts.items[pi].rows.Index(secondary)
	return
}

func (t *twoLevel[E]) insertRow(pi int, pfound bool, ri int, item E) {
	if pfound {
		t.parts.items[pi].rows.insertAt(ri, item)
	} else {
		p := newPartition(t.primaryOf, t.secondaryOf, t.rowCap, item)
		t.parts.insertAt(pi, p)
		T().Debugf("sortedvec: created partition %q at %d", p.PrimaryKey(), pi)
	}
	t.length++
	t.stamp++
}

func (t *twoLevel[E]) deleteRow(pi, ri int) E {
	p := t.parts.items[pi]
	old := p.rows.deleteAt(ri)
	if p.Len() == 0 {
		t.parts.deleteAt(pi)
		T().Debugf("sortedvec: evicted empty partition %q", t.primaryOf(old))
	}
	t.length--
	t.stamp++
	return old
}

// --- Upserts ---------------------------------------------------------------

// InsertOrReplace stores item under its primary and secondary key. If a row
// with the same keys exists, it is replaced and returned together with true.
func (t *twoLevel[E]) InsertOrReplace(item E) (E, bool) {
	pi, pfound, ri, rfound := t.locate(t.primaryOf(item), t.secondaryOf(item))
	if rfound {
		rows := t.parts.items[pi].rows.items
		old := rows[ri]
		rows[ri] = item
		return old, true
	}
	t.insertRow(pi, pfound, ri, item)
	var zero E
	return zero, false
}

// InsertIfNotExists returns an insert handle and true if no row for
// (primary, secondary) exists. Otherwise it returns nil and false.
func (t *twoLevel[E]) InsertIfNotExists(primary, secondary string) (*InsertEntry2[E], bool) {
	pi, pfound, ri, rfound := t.locate(primary, secondary)
	if rfound {
		return nil, false
	}
	return t.insertEntry(pi, pfound, ri, primary, secondary), true
}

// InsertOrUpdate searches for (primary, secondary) and returns exactly one
// non-nil handle: an insert handle if the row is absent, an update handle if
// it is present.
func (t *twoLevel[E]) InsertOrUpdate(primary, secondary string) (*InsertEntry2[E], *UpdateEntry2[E]) {
	pi, pfound, ri, rfound := t.locate(primary, secondary)
	if rfound {
		return nil, t.updateEntry(pi, ri)
	}
	return t.insertEntry(pi, pfound, ri, primary, secondary), nil
}

// GetMutOrCreate returns a reference to the row for (primary, secondary) if
// present, or an insert handle if absent. Exactly one result is non-nil.
func (t *twoLevel[E]) GetMutOrCreate(primary, secondary string) (*E, *InsertEntry2[E]) {
	pi, pfound, ri, rfound := t.locate(primary, secondary)
	if rfound {
		return &t.parts.items[pi].rows.items[ri], nil
	}
	return nil, t.insertEntry(pi, pfound, ri, primary, secondary)
}

// Upsert resolves the row for (primary, secondary) with a single search. fn
// receives the current row (if exists is true) and returns the row to store,
// which must carry the same keys.
func (t *twoLevel[E]) Upsert(primary, secondary string, fn func(old E, exists bool) E) {
	pi, pfound, ri, rfound := t.locate(primary, secondary)
	var old E
	if rfound {
		old = t.parts.items[pi].rows.items[ri]
	}
	item := fn(old, rfound)
	assert(t.primaryOf(item) == primary && t.secondaryOf(item) == secondary,
		"sortedvec: upserted row does not carry the requested keys")
	if rfound {
		t.parts.items[pi].rows.items[ri] = item
		return
	}
	t.insertRow(pi, pfound, ri, item)
}

// --- Lookups ---------------------------------------------------------------

// Get returns the row for (primary, secondary).
func (t *twoLevel[E]) Get(primary, secondary string) (E, bool) {
	pi, _, ri, rfound := t.locate(primary, secondary)
	if !rfound {
		var zero E
		return zero, false
	}
	return t.parts.items[pi].rows.items[ri], true
}

// GetRef returns a reference to the stored row for (primary, secondary), or
// nil. The reference is valid until the next insertion or removal.
func (t *twoLevel[E]) GetRef(primary, secondary string) *E {
	pi, _, ri, rfound := t.locate(primary, secondary)
	if !rfound {
		return nil
	}
	return &t.parts.items[pi].rows.items[ri]
}

// Contains reports whether a row for (primary, secondary) is present.
func (t *twoLevel[E]) Contains(primary, secondary string) bool {
	_, _, _, rfound := t.locate(primary, secondary)
	return rfound
}

// Partition returns the partition for a primary key.
func (t *twoLevel[E]) Partition(primary string) (*Partition[E], bool) {
	return t.parts.Get(primary)
}

// Range returns the rows of partition primary with secondary keys in
// [from, to]. It returns false if there is no such partition.
func (t *twoLevel[E]) Range(primary, from, to string) ([]E, bool) {
	p, ok := t.parts.Get(primary)
	if !ok {
		return nil, false
	}
	return p.Range(from, to), true
}

// --- Removal ---------------------------------------------------------------

// Remove deletes the row for (primary, secondary) and returns it. A partition
// losing its last row is removed as well.
func (t *twoLevel[E]) Remove(primary, secondary string) (E, bool) {
	pi, _, ri, rfound := t.locate(primary, secondary)
	if !rfound {
		var zero E
		return zero, false
	}
	return t.deleteRow(pi, ri), true
}

// RemoveByPrimaryKey deletes the partition for primary and returns its rows.
func (t *twoLevel[E]) RemoveByPrimaryKey(primary string) ([]E, bool) {
	p, ok := t.parts.Remove(primary)
	if !ok {
		return nil, false
	}
	t.length -= p.Len()
	t.stamp++
	T().Debugf("sortedvec: removed partition %q with %d rows", primary, p.Len())
	return slices.Clip(p.rows.items), true
}

// Clear removes all partitions.
func (t *twoLevel[E]) Clear() {
	t.parts.Clear(0)
	t.length = 0
	t.stamp++
}

// --- Iteration and size ----------------------------------------------------

// All iterates over all rows in (primary, secondary) order.
func (t *twoLevel[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, p := range t.parts.items {
			for _, row := range p.rows.items {
				if !yield(row) {
					return
				}
			}
		}
	}
}

// ForEach calls fn for every row in (primary, secondary) order.
// Iteration stops early if fn returns false.
func (t *twoLevel[E]) ForEach(fn func(item E) bool) {
	for row := range t.All() {
		if !fn(row) {
			return
		}
	}
}

// ForEachRef calls fn with a reference to every stored row in (primary,
// secondary) order. fn must not change the keys of rows.
// Iteration stops early if fn returns false.
func (t *twoLevel[E]) ForEachRef(fn func(item *E) bool) {
	for _, p := range t.parts.items {
		for i := range p.rows.items {
			if !fn(&p.rows.items[i]) {
				return
			}
		}
	}
}

// Partitions returns all partitions in primary-key order as a read-only view.
func (t *twoLevel[E]) Partitions() []*Partition[E] {
	return t.parts.Items()
}

// Len returns the total number of rows.
func (t *twoLevel[E]) Len() int {
	return t.length
}

// PartitionsLen returns the number of partitions.
func (t *twoLevel[E]) PartitionsLen() int {
	return t.parts.Len()
}

// IsEmpty reports whether the container holds no rows.
func (t *twoLevel[E]) IsEmpty() bool {
	return t.length == 0
}

// LenAndCapacity sums up row counts and row capacities over all partitions.
func (t *twoLevel[E]) LenAndCapacity() (int, int) {
	var n, c int
	for _, p := range t.parts.items {
		n += p.Len()
		c += p.Cap()
	}
	return n, c
}

func (t *twoLevel[E]) check() error {
	var n int
	for i, p := range t.parts.items {
		if p == nil {
			return fmt.Errorf("%w: partition %d", ErrNilEntry, i)
		}
		if err := p.check(); err != nil {
			return fmt.Errorf("partition %d: %w", i, err)
		}
		n += p.Len()
	}
	if err := t.parts.check(); err != nil {
		return err
	}
	if n != t.length {
		return fmt.Errorf("%w: counter says %d, partitions hold %d", ErrLenMismatch, t.length, n)
	}
	return nil
}
