package transport

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-i3ipc/i3ipc/internal/constants"
	"github.com/go-i3ipc/i3ipc/internal/wire"
)

// fakePeer listens on a UNIX socket and accepts exactly two connections,
// mimicking i3's "two sockets to the same path" contract.
type fakePeer struct {
	ln    net.Listener
	conns chan net.Conn
}

func startFakePeer(t *testing.T) (*fakePeer, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ipc.sock")

	ln, err := net.Listen("unix", path)
	require.NoError(t, err)

	p := &fakePeer{ln: ln, conns: make(chan net.Conn, 2)}
	go func() {
		for i := 0; i < 2; i++ {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			p.conns <- conn
		}
	}()
	return p, path
}

func (p *fakePeer) accept(t *testing.T) net.Conn {
	t.Helper()
	select {
	case c := <-p.conns:
		return c
	}
}

func TestOpenDialsBothSockets(t *testing.T) {
	peer, path := startFakePeer(t)
	defer peer.ln.Close()

	c := New(path, nil)
	require.NoError(t, c.Open())
	defer c.Close()

	assert.True(t, c.Ready())
}

func TestSendSelectsMessageSocketByDefault(t *testing.T) {
	peer, path := startFakePeer(t)
	defer peer.ln.Close()

	c := New(path, nil)
	require.NoError(t, c.Open())
	defer c.Close()

	// Open dials the message socket before the event socket, so the
	// server accepts them in that order too.
	messageSide := peer.accept(t)
	_ = peer.accept(t) // event socket

	done := make(chan error, 1)
	go func() { done <- c.Send(constants.MessageGetVersion, []byte(`{}`)) }()

	var scratch []byte
	frame, err := wire.Receive(messageSide, &scratch)
	require.NoError(t, err)
	require.NoError(t, <-done)
	assert.Equal(t, int32(constants.MessageGetVersion), frame.Type)
}

func TestReceiveReorderingQueuesNonMatchingFrames(t *testing.T) {
	peer, path := startFakePeer(t)
	defer peer.ln.Close()

	c := New(path, nil)
	require.NoError(t, c.Open())
	defer c.Close()

	// Open dials the message socket before the event socket, so the
	// server accepts them in that order too.
	_ = peer.accept(t) // message socket
	eventSide := peer.accept(t)

	go func() {
		var s []byte
		_ = wire.Send(eventSide, &s, constants.EventWindow, []byte(`{"change":"new"}`))
		_ = wire.Send(eventSide, &s, constants.MessageSubscribe, []byte(`{"success":true}`))
	}()

	reply, err := c.ReceiveReordering(constants.MessageSubscribe)
	require.NoError(t, err)
	assert.Equal(t, int32(constants.MessageSubscribe), reply.Type)

	queued, ok := c.queue.popMatch(func(f wire.Frame) bool { return true })
	require.True(t, ok)
	assert.Equal(t, int32(constants.EventWindow), queued.Type)
}

func TestMatchesExpectedEventAny(t *testing.T) {
	assert.True(t, matchesExpected(wire.Frame{Type: constants.EventWindow}, constants.EventAny))
	assert.True(t, matchesExpected(wire.Frame{Type: constants.MessageSubscribe}, constants.EventAny))
	assert.False(t, matchesExpected(wire.Frame{Type: constants.MessageGetTree}, constants.EventAny))
}
