package transport

import "github.com/go-i3ipc/i3ipc/internal/wire"

// eventQueue is a FIFO buffer of frames received out of order while a
// synchronous reply was in flight on the event socket. Pending events
// queued during a reordering receive are delivered before any fresh
// read on the next call, preserving peer-emitted order.
type eventQueue struct {
	frames []wire.Frame
}

func (q *eventQueue) push(f wire.Frame) {
	q.frames = append(q.frames, f)
}

// popMatch scans the queue head-to-tail for the first frame matching
// pred, removing it and shifting the rest forward, and reports whether
// one was found.
func (q *eventQueue) popMatch(pred func(wire.Frame) bool) (wire.Frame, bool) {
	for i, f := range q.frames {
		if pred(f) {
			q.frames = append(q.frames[:i], q.frames[i+1:]...)
			return f, true
		}
	}
	return wire.Frame{}, false
}

func (q *eventQueue) reset() {
	q.frames = nil
}
