package synced

import (
	"context"
	"errors"

	"github.com/guiguan/caster"
)

// ErrClosed is returned when watching a wrapper which has been closed.
var ErrClosed = errors.New("synced: closed")

// Op is the kind of a committed mutation.
type Op uint8

// Kinds of mutations reported to watchers.
const (
	Inserted Op = iota + 1
	Replaced
	Removed
	Cleared
)

func (op Op) String() string {
	switch op {
	case Inserted:
		return "inserted"
	case Replaced:
		return "replaced"
	case Removed:
		return "removed"
	case Cleared:
		return "cleared"
	}
	return "unknown"
}

// Change describes a committed mutation of the entry with key Key.
// For Cleared, Key is the zero value.
type Change[K any] struct {
	Op  Op
	Key K
}

// feed broadcasts changes to watchers.
type feed[K any] struct {
	cast *caster.Caster
}

func newFeed[K any]() feed[K] {
	return feed[K]{cast: caster.New(nil)}
}

func (f feed[K]) publish(op Op, key K) {
	if !f.cast.Pub(Change[K]{Op: op, Key: key}) {
		tracer().Infof("synced: change feed closed, dropping %s event", op)
	}
}

func (f feed[K]) closed() bool {
	select {
	case <-f.cast.Done():
		return true
	default:
		return false
	}
}

// watch subscribes to the broadcaster. The returned channel is closed when
// ctx is done or the feed is closed.
//
// The forwarder always accepts messages from the broadcaster and queues them
// until the watcher receives them, so a paused watcher never blocks
// publishers. capacity is the buffer size of the returned channel.
func (f feed[K]) watch(ctx context.Context, capacity uint) (<-chan Change[K], error) {
	if f.closed() {
		return nil, ErrClosed
	}
	sub, _ := f.cast.Sub(ctx, capacity)
	out := make(chan Change[K], capacity)
	go forward(ctx, sub, out)
	tracer().Debugf("synced: new watcher with capacity %d", capacity)
	return out, nil
}

func forward[K any](ctx context.Context, sub <-chan interface{}, out chan<- Change[K]) {
	var queue []Change[K]
	in := sub
	for in != nil || len(queue) > 0 {
		var send chan<- Change[K]
		var next Change[K]
		if len(queue) > 0 {
			send, next = out, queue[0]
		}
		select {
		case msg, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			change, ok := msg.(Change[K])
			if !ok {
				tracer().Errorf("synced: unexpected message type %T on change feed", msg)
				continue
			}
			queue = append(queue, change)
		case send <- next:
			queue = queue[1:]
		case <-ctx.Done():
			close(out)
			// the broadcaster closes sub once it notices ctx is done
			if in != nil {
				for range in {
				}
			}
			tracer().Debugf("synced: watcher cancelled")
			return
		}
	}
	close(out)
}

func (f feed[K]) close() {
	f.cast.Close()
	tracer().Debugf("synced: change feed closed")
}
