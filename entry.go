package sortedvec

// InsertEntry is the result of a search which missed. It remembers the
// insertion point, so that the entry can be inserted without searching again.
//
// An InsertEntry may be committed once. It becomes stale as soon as its
// container is changed structurally by any other operation.
type InsertEntry[E, K any] struct {
	e     *engine[E, K]
	index int
	key   K
	stamp uint64
	done  bool
}

func (e *engine[E, K]) insertEntry(i int, key K) *InsertEntry[E, K] {
	return &InsertEntry[E, K]{e: e, index: i, key: key, stamp: e.stamp}
}

// Key returns the key which has been searched for.
func (ins *InsertEntry[E, K]) Key() K {
	return ins.key
}

// Index returns the position the entry will be inserted at.
func (ins *InsertEntry[E, K]) Index() int {
	return ins.index
}

// Insert stores item at the insertion point and returns its position.
// item must carry the key of the entry.
func (ins *InsertEntry[E, K]) Insert(item E) int {
	assert(!ins.done, "sortedvec: insert entry already consumed")
	assert(ins.stamp == ins.e.stamp, "sortedvec: container changed since insert entry was created")
	assert(ins.e.compare(ins.e.keyOf(item), ins.key) == 0, "sortedvec: item does not carry the key of the insert entry")
	ins.done = true
	ins.e.insertAt(ins.index, item)
	return ins.index
}

// UpdateEntry is the result of a search which hit an existing entry.
//
// Set may be called once. The entry becomes stale as soon as its container is
// changed structurally by any other operation.
type UpdateEntry[E, K any] struct {
	e     *engine[E, K]
	index int
	stamp uint64
	done  bool
}

func (e *engine[E, K]) updateEntry(i int) *UpdateEntry[E, K] {
	return &UpdateEntry[E, K]{e: e, index: i, stamp: e.stamp}
}

func (upd *UpdateEntry[E, K]) valid() {
	assert(upd.stamp == upd.e.stamp, "sortedvec: container changed since update entry was created")
}

// Index returns the position of the existing entry.
func (upd *UpdateEntry[E, K]) Index() int {
	return upd.index
}

// Item returns the existing entry.
func (upd *UpdateEntry[E, K]) Item() E {
	upd.valid()
	return upd.e.items[upd.index]
}

// Ref returns a reference to the stored entry. Clients must not change the
// key through it.
func (upd *UpdateEntry[E, K]) Ref() *E {
	upd.valid()
	return &upd.e.items[upd.index]
}

// Set replaces the existing entry by item and returns the previous one.
// item must carry the same key.
func (upd *UpdateEntry[E, K]) Set(item E) E {
	assert(!upd.done, "sortedvec: update entry already consumed")
	upd.valid()
	old := upd.e.items[upd.index]
	assert(upd.e.compare(upd.e.keyOf(item), upd.e.keyOf(old)) == 0, "sortedvec: item does not carry the key of the update entry")
	upd.done = true
	upd.e.items[upd.index] = item
	return old
}
