package sortedvec

import (
	"fmt"
	"iter"
)

// TwoKeyed is implemented by entries of two-level containers. Rows are grouped
// by primary key and ordered by secondary key within a group. Neither key may
// change while the entry is stored in a container.
type TwoKeyed interface {
	PrimaryKey() string
	SecondaryKey() string
}

// Partition is the group of rows of a two-level container sharing one
// primary key, ordered by secondary key.
//
// A partition is never empty while it is part of a container. Partitions are
// owned by their container; clients may read them but must not keep them
// across mutations of the container.
type Partition[E any] struct {
	rows      engine[E, string]
	primaryOf func(E) string
}

func newPartition[E any](primaryOf, secondaryOf func(E) string, capacity int, first E) *Partition[E] {
	p := &Partition[E]{
		rows:      makeEngine(secondaryOf, compareOrdered[string], max(capacity, 1)),
		primaryOf: primaryOf,
	}
	p.rows.items = append(p.rows.items, first)
	return p
}

// PrimaryKey returns the primary key shared by all rows of the partition.
func (p *Partition[E]) PrimaryKey() string {
	assert(len(p.rows.items) > 0, "sortedvec: primary key of empty partition")
	return p.primaryOf(p.rows.items[0])
}

// Len returns the number of rows.
func (p *Partition[E]) Len() int {
	return p.rows.Len()
}

// Cap returns the capacity of the partition's row slice.
func (p *Partition[E]) Cap() int {
	return p.rows.Cap()
}

// Get returns the row for a secondary key.
func (p *Partition[E]) Get(secondary string) (E, bool) {
	return p.rows.Get(secondary)
}

// Contains reports whether a row for a secondary key is present.
func (p *Partition[E]) Contains(secondary string) bool {
	return p.rows.Contains(secondary)
}

// Items returns the rows in ascending secondary-key order as a read-only view.
func (p *Partition[E]) Items() []E {
	return p.rows.Items()
}

// All iterates over rows in ascending secondary-key order.
func (p *Partition[E]) All() iter.Seq2[int, E] {
	return p.rows.All()
}

// Range returns the rows with secondary keys in [from, to] as a read-only
// view.
func (p *Partition[E]) Range(from, to string) []E {
	return p.rows.Range(from, to)
}

// GetFromKeyToUp returns the rows with secondary keys >= secondary.
func (p *Partition[E]) GetFromKeyToUp(secondary string) []E {
	return p.rows.GetFromKeyToUp(secondary)
}

// GetFromBottomToKey returns the rows with secondary keys <= secondary.
func (p *Partition[E]) GetFromBottomToKey(secondary string) []E {
	return p.rows.GetFromBottomToKey(secondary)
}

func (p *Partition[E]) check() error {
	if len(p.rows.items) == 0 {
		return ErrEmptyPartition
	}
	pk := p.primaryOf(p.rows.items[0])
	for i, row := range p.rows.items {
		if k := p.primaryOf(row); k != pk {
			return fmt.Errorf("%w: row %d has primary key %q in partition %q", ErrPrimaryKey, i, k, pk)
		}
	}
	if err := p.rows.check(); err != nil {
		return fmt.Errorf("partition %q: %w", pk, err)
	}
	return nil
}
