package wire

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutHeaderParseHeaderRoundTrip(t *testing.T) {
	buf := make([]byte, HeaderSize)
	PutHeader(buf, 42, 3)

	length, typ, err := ParseHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, 42, length)
	assert.Equal(t, int32(3), typ)
}

func TestParseHeaderBadMagic(t *testing.T) {
	buf := make([]byte, HeaderSize)
	PutHeader(buf, 0, 0)
	buf[0] = 'x'

	_, _, err := ParseHeader(buf)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestParseHeaderPayloadTooLarge(t *testing.T) {
	buf := make([]byte, HeaderSize)
	PutHeader(buf, MaxPayloadSize+1, 0)

	_, _, err := ParseHeader(buf)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestSendReceiveRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	payload := []byte(`{"success":true}`)
	done := make(chan error, 1)
	go func() {
		var scratch []byte
		done <- Send(client, &scratch, 0, payload)
	}()

	var scratch []byte
	frame, err := Receive(server, &scratch)
	require.NoError(t, err)
	require.NoError(t, <-done)

	assert.Equal(t, int32(0), frame.Type)
	assert.True(t, bytes.Equal(frame.Payload, payload))
	// trailing NUL present just past the reported payload length
	assert.Equal(t, byte(0), scratch[len(payload)])
}

func TestReceiveEOFBeforeHeader(t *testing.T) {
	client, server := net.Pipe()
	client.Close()

	var scratch []byte
	_, err := Receive(server, &scratch)
	require.Error(t, err)
	var ioErr *IOError
	assert.ErrorAs(t, err, &ioErr)
}
