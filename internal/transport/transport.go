// Package transport owns the two UNIX stream sockets a connection
// multiplexes over, the per-role scratch buffers used to frame-encode and
// decode on them, and the matching/reordering receive primitives.
package transport

import (
	"fmt"
	"net"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/go-i3ipc/i3ipc/internal/constants"
	"github.com/go-i3ipc/i3ipc/internal/logging"
	"github.com/go-i3ipc/i3ipc/internal/wire"
)

// Conn owns the message socket and the event socket for one i3/sway IPC
// session, plus their scratch buffers and the event socket's reorder
// queue. It opens both sockets together when Open is called; New alone
// opens nothing.
type Conn struct {
	Path string

	message net.Conn
	event   net.Conn

	messageScratch []byte
	eventScratch   []byte
	queue          eventQueue

	logger *logging.Logger
}

// New creates a Conn bound to path. Nothing is opened yet.
func New(path string, logger *logging.Logger) *Conn {
	if logger == nil {
		logger = logging.Default()
	}
	return &Conn{Path: path, logger: logger}
}

// Ready reports whether both sockets are currently open.
func (c *Conn) Ready() bool {
	return c.message != nil && c.event != nil
}

// Open dials both the message and event sockets against Path. Both are
// always opened together; a failure on either leaves neither open.
func (c *Conn) Open() error {
	if c.Ready() {
		return nil
	}

	message, err := net.Dial("unix", c.Path)
	if err != nil {
		return &wire.IOError{Op: "dial-message-socket", Outcome: wire.Err, Err: err}
	}
	event, err := net.Dial("unix", c.Path)
	if err != nil {
		message.Close()
		return &wire.IOError{Op: "dial-event-socket", Outcome: wire.Err, Err: err}
	}

	c.message = message
	c.event = event
	c.logger.Debug("connection opened", "path", c.Path)
	return nil
}

// Close tears down both sockets and drops the reorder queue.
func (c *Conn) Close() error {
	var firstErr error
	if c.message != nil {
		if err := c.message.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.message = nil
	}
	if c.event != nil {
		if err := c.event.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.event = nil
	}
	c.queue.reset()
	return firstErr
}

// socketSelect picks the outgoing socket for a message type: SUBSCRIBE
// goes out on the event socket, everything else on the message socket.
func (c *Conn) socketSelect(typ int32) net.Conn {
	if typ == constants.MessageSubscribe {
		return c.event
	}
	return c.message
}

// Send frames and writes payload on the socket appropriate for typ.
func (c *Conn) Send(typ int32, payload []byte) error {
	conn := c.socketSelect(typ)
	scratch := c.scratchFor(conn)
	return wire.Send(conn, scratch, typ, payload)
}

func (c *Conn) scratchFor(conn net.Conn) *[]byte {
	if conn == c.event {
		return &c.eventScratch
	}
	return &c.messageScratch
}

// matchesExpected implements §4.D's match predicate: a frame matches iff
// its type equals expected, or expected is EventAny and the frame is
// either a SUBSCRIBE reply or any event type.
func matchesExpected(f wire.Frame, expected int32) bool {
	if f.Type == expected {
		return true
	}
	if expected == constants.EventAny {
		return f.Type == constants.MessageSubscribe || constants.IsEventType(f.Type)
	}
	return false
}

// ReceiveMatching reads one frame from the message socket and returns
// it if it matches expected, or a MalformedError if it does not (the
// message socket never interleaves unrelated traffic with a reply).
func (c *Conn) ReceiveMatching(expected int32) (wire.Frame, error) {
	frame, err := wire.Receive(c.message, &c.messageScratch)
	if err != nil {
		return wire.Frame{}, err
	}
	if !matchesExpected(frame, expected) {
		return wire.Frame{}, &wire.MalformedError{
			Op:  "receive-matching",
			Err: fmt.Errorf("reply type %d does not match expected %d", frame.Type, expected),
		}
	}
	return frame, nil
}

// ReceiveReordering reads from the event socket, scanning the reorder
// queue first: any previously-queued frame matching expected is returned
// immediately. Otherwise it reads fresh frames, appending every
// non-matching one to the queue's tail (copying its payload out of the
// shared scratch buffer, since that buffer is reused on the next read)
// until a match arrives.
func (c *Conn) ReceiveReordering(expected int32) (wire.Frame, error) {
	if f, ok := c.queue.popMatch(func(f wire.Frame) bool { return matchesExpected(f, expected) }); ok {
		return f, nil
	}

	for {
		frame, err := wire.Receive(c.event, &c.eventScratch)
		if err != nil {
			return wire.Frame{}, err
		}
		if matchesExpected(frame, expected) {
			return frame, nil
		}
		owned := wire.Frame{Type: frame.Type, Payload: append([]byte(nil), frame.Payload...)}
		c.queue.push(owned)
	}
}

// Poll waits up to timeoutMs milliseconds (negative = infinite, zero =
// non-blocking poll) for the event socket to become readable. It
// reports whether data is ready.
func (c *Conn) Poll(timeoutMs int) (bool, error) {
	raw, err := rawConn(c.event)
	if err != nil {
		return false, err
	}

	var ready bool
	var pollErr error
	ctrlErr := raw.Control(func(fd uintptr) {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, timeoutMs)
		if err != nil {
			pollErr = err
			return
		}
		ready = n > 0 && fds[0].Revents&unix.POLLIN != 0
	})
	if ctrlErr != nil {
		return false, ctrlErr
	}
	return ready, pollErr
}

// MessageFD returns a duplicated file descriptor for the message socket,
// for integration with an external poll/select loop. The caller owns
// the returned fd and must close it.
func (c *Conn) MessageFD() (int, error) {
	return dupFD(c.message)
}

// EventFD returns a duplicated file descriptor for the event socket, for
// integration with an external poll/select loop. The caller owns the
// returned fd and must close it.
func (c *Conn) EventFD() (int, error) {
	return dupFD(c.event)
}

func rawConn(conn net.Conn) (syscall.RawConn, error) {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return nil, fmt.Errorf("transport: connection does not expose a raw fd")
	}
	return sc.SyscallConn()
}

func dupFD(conn net.Conn) (int, error) {
	raw, err := rawConn(conn)
	if err != nil {
		return -1, err
	}
	var dup int
	var dupErr error
	ctrlErr := raw.Control(func(fd uintptr) {
		dup, dupErr = unix.Dup(int(fd))
	})
	if ctrlErr != nil {
		return -1, ctrlErr
	}
	return dup, dupErr
}

// PollTimeout converts a millisecond timeout into a time.Duration for
// logging/diagnostic purposes only; Poll itself takes the raw int.
func PollTimeout(timeoutMs int) time.Duration {
	if timeoutMs < 0 {
		return -1
	}
	return time.Duration(timeoutMs) * time.Millisecond
}
