package i3ipc

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-i3ipc/i3ipc/internal/wire"
)

// MockPeer is an in-process fake i3/sway peer for testing code built
// on Connection without a running window manager. It listens on a
// temporary UNIX socket and accepts the two connections a real
// Connect dials — message socket first, then event socket, matching
// the order Connection.open dials them in — then lets test code
// script replies on the message socket and push events on the event
// socket.
type MockPeer struct {
	Path string

	dir string
	ln  net.Listener

	mu             sync.Mutex
	message        net.Conn
	event          net.Conn
	messageScratch []byte
	eventScratch   []byte
}

// NewMockPeer starts listening on a fresh temporary socket path and
// returns the peer, unaccepted. Call Accept before dialing a
// Connection against Path.
func NewMockPeer() (*MockPeer, error) {
	dir, err := os.MkdirTemp("", "i3ipc-mock")
	if err != nil {
		return nil, fmt.Errorf("i3ipc: mock peer: %w", err)
	}
	path := filepath.Join(dir, "ipc.sock")

	ln, err := net.Listen("unix", path)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("i3ipc: mock peer: %w", err)
	}
	return &MockPeer{Path: path, dir: dir, ln: ln}, nil
}

// Accept blocks until a client has dialed both sockets, in the order a
// real Connection.Open dials them (message, then event).
func (p *MockPeer) Accept() error {
	message, err := p.ln.Accept()
	if err != nil {
		return err
	}
	event, err := p.ln.Accept()
	if err != nil {
		message.Close()
		return err
	}
	p.mu.Lock()
	p.message = message
	p.event = event
	p.mu.Unlock()
	return nil
}

// ReceiveMessage reads one frame off the message socket, as a real
// peer would see an incoming request.
func (p *MockPeer) ReceiveMessage() (typ int32, payload []byte, err error) {
	p.mu.Lock()
	conn := p.message
	p.mu.Unlock()
	frame, err := wire.Receive(conn, &p.messageScratch)
	if err != nil {
		return 0, nil, err
	}
	return frame.Type, frame.Payload, nil
}

// ReplyMessage writes one reply frame on the message socket.
func (p *MockPeer) ReplyMessage(typ int32, payload []byte) error {
	p.mu.Lock()
	conn := p.message
	p.mu.Unlock()
	return wire.Send(conn, &p.messageScratch, typ, payload)
}

// ReceiveSubscribe reads the SUBSCRIBE request off the event socket
// (Connection.Subscribe always sends it there).
func (p *MockPeer) ReceiveSubscribe() (payload []byte, err error) {
	p.mu.Lock()
	conn := p.event
	p.mu.Unlock()
	frame, err := wire.Receive(conn, &p.eventScratch)
	if err != nil {
		return nil, err
	}
	return frame.Payload, nil
}

// ReplySubscribe writes the SUBSCRIBE reply on the event socket.
func (p *MockPeer) ReplySubscribe(success bool) error {
	p.mu.Lock()
	conn := p.event
	p.mu.Unlock()
	body := "{\"success\":false}"
	if success {
		body = "{\"success\":true}"
	}
	return wire.Send(conn, &p.eventScratch, MessageSubscribe, []byte(body))
}

// PushEvent writes one event frame on the event socket. typ is the
// wire type including the high bit, e.g. EventWireWindow.
func (p *MockPeer) PushEvent(typ int32, payload []byte) error {
	p.mu.Lock()
	conn := p.event
	p.mu.Unlock()
	return wire.Send(conn, &p.eventScratch, typ, payload)
}

// Close tears down both accepted connections, the listener, and the
// temporary directory backing the socket path.
func (p *MockPeer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	if p.message != nil {
		if err := p.message.Close(); err != nil {
			firstErr = err
		}
	}
	if p.event != nil {
		if err := p.event.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := p.ln.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	os.RemoveAll(p.dir)
	return firstErr
}
