/*
Package synced wraps sorted vectors for use from multiple goroutines.

The containers of package sortedvec do no locking. The wrappers in this
package guard a container with a read/write mutex: lookups take the read lock
and return copies, mutations take the write lock. Clients needing several
operations to happen atomically, or wanting to use entry handles, use Read
and Write.

Optionally, clients may watch a wrapper for committed mutations. Change events
are broadcast to all watchers in the order the mutations were applied. Slow
watchers never block writers: events wait in a per-watcher queue until they are
received or the watcher is cancelled.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package synced

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sortedvec'
func tracer() tracing.Trace {
	return tracing.Select("sortedvec")
}
