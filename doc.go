/*
Package sortedvec offers associative containers which keep their entries in a
flat, sorted slice.

Sorted Vectors

Entries are ordered by a key which is derived from the entry itself on demand;
a container never keeps a separate copy of the key. Lookups use binary search,
insertions and removals shift the tail of the backing slice. For the moderate
sizes these containers are meant for, a contiguous slice is cache friendly for
scans and range queries and the O(n) cost of inserting is acceptable. This is
not a tree and not a hash map.

The package provides four shapes:

	Vec[K,V]       entries stored by value, keyed by Key() K
	StrVec[V]      entries stored by value, keyed by Key() string
	ArcVec[K,V]    entries stored as shared *V, so the same row may be
	               indexed by several containers at once
	ArcStrVec[V]   the shared variant with string keys

and two-level containers, Vec2[V] and ArcVec2[V], which group rows into
partitions by a primary key and order rows within a partition by a secondary
key. Iterating a two-level container yields rows in (primary, secondary)
order.

Entry handles

A search may be followed by exactly one mutation without searching again:

	ins, upd := v.InsertOrUpdate(key)
	if ins != nil {
	    ins.Insert(makeItem(key))
	} else {
	    upd.Set(changed(upd.Item()))
	}

Handles are single-use. Committing a handle twice, committing a handle after
its container changed, or committing an entry with a different key panics.

Concurrency

Containers are not safe for concurrent mutation. Readers may run in parallel
as long as no writer is active. Package synced provides a locking wrapper.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package sortedvec

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
