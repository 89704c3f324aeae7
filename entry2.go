package sortedvec

// InsertEntry2 is the result of a two-level search which missed. Either the
// partition for the primary key exists and the row has to be inserted into
// it, or the partition itself has to be created.
//
// An InsertEntry2 may be committed once. It becomes stale as soon as its
// container is changed structurally by any other operation.
type InsertEntry2[E any] struct {
	t         *twoLevel[E]
	partition int // index of the partition, or its insertion point
	row       int // insertion point within the partition; -1 if it has to be created
	primary   string
	secondary string
	stamp     uint64
	done      bool
}

func (t *twoLevel[E]) insertEntry(pi int, pfound bool, ri int, primary, secondary string) *InsertEntry2[E] {
	row := -1
	if pfound {
		assert(pi < len(t.parts.items) && ri >= 0 && ri <= t.parts.items[pi].Len(),
			"sortedvec: inconsistent row insertion point")
		row = ri
	}
	return &InsertEntry2[E]{
		t:         t,
		partition: pi,
		row:       row,
		primary:   primary,
		secondary: secondary,
		stamp:     t.stamp,
	}
}

// Keys returns the primary and secondary key which have been searched for.
func (ins *InsertEntry2[E]) Keys() (string, string) {
	return ins.primary, ins.secondary
}

// CreatesPartition reports whether committing the entry creates a new
// partition.
func (ins *InsertEntry2[E]) CreatesPartition() bool {
	return ins.row < 0
}

// Insert stores item, creating its partition if necessary. item must carry
// the keys of the entry.
func (ins *InsertEntry2[E]) Insert(item E) {
	assert(!ins.done, "sortedvec: insert entry already consumed")
	assert(ins.stamp == ins.t.stamp, "sortedvec: container changed since insert entry was created")
	assert(ins.t.primaryOf(item) == ins.primary && ins.t.secondaryOf(item) == ins.secondary,
		"sortedvec: item does not carry the keys of the insert entry")
	ins.done = true
	ins.t.insertRow(ins.partition, ins.row >= 0, ins.row, item)
}

// UpdateEntry2 is the result of a two-level search which hit an existing row.
//
// Set may be called once. The entry becomes stale as soon as its container is
// changed structurally by any other operation.
type UpdateEntry2[E any] struct {
	t         *twoLevel[E]
	partition int
	row       int
	stamp     uint64
	done      bool
}

func (t *twoLevel[E]) updateEntry(pi, ri int) *UpdateEntry2[E] {
	return &UpdateEntry2[E]{t: t, partition: pi, row: ri, stamp: t.stamp}
}

func (upd *UpdateEntry2[E]) ref() *E {
	assert(upd.stamp == upd.t.stamp, "sortedvec: container changed since update entry was created")
	return &upd.t.parts.items[upd.partition].rows.items[upd.row]
}

// Item returns the existing row.
func (upd *UpdateEntry2[E]) Item() E {
	return *upd.ref()
}

// Ref returns a reference to the stored row. Clients must not change the keys
// through it.
func (upd *UpdateEntry2[E]) Ref() *E {
	return upd.ref()
}

// Set replaces the existing row by item and returns the previous one.
// item must carry the same keys.
func (upd *UpdateEntry2[E]) Set(item E) E {
	assert(!upd.done, "sortedvec: update entry already consumed")
	slot := upd.ref()
	old := *slot
	assert(upd.t.primaryOf(item) == upd.t.primaryOf(old) && upd.t.secondaryOf(item) == upd.t.secondaryOf(old),
		"sortedvec: item does not carry the keys of the update entry")
	upd.done = true
	*slot = item
	return old
}
