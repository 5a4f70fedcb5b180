package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Magic is the fixed 6-byte frame preamble.
const Magic = "i3-ipc"

// HeaderSize is the size in bytes of magic + length + type.
const HeaderSize = len(Magic) + 4 + 4

// MaxPayloadSize is the hard cap on a single frame's payload, in bytes.
const MaxPayloadSize = 256 << 20

// ErrBadMagic is returned when a frame's preamble does not match Magic.
var ErrBadMagic = fmt.Errorf("wire: bad frame magic")

// ErrNegativeLength is returned when a decoded header carries a negative
// payload length.
var ErrNegativeLength = fmt.Errorf("wire: negative payload length")

// ErrPayloadTooLarge is returned when a decoded header's length exceeds
// MaxPayloadSize.
var ErrPayloadTooLarge = fmt.Errorf("wire: payload exceeds size cap")

// PutHeader stamps magic, length and type into the first HeaderSize bytes
// of dst, little-endian, mirroring the teacher's field-by-field
// binary.LittleEndian packing idiom.
func PutHeader(dst []byte, length int, typ int32) {
	copy(dst[0:len(Magic)], Magic)
	binary.LittleEndian.PutUint32(dst[len(Magic):len(Magic)+4], uint32(length))
	binary.LittleEndian.PutUint32(dst[len(Magic)+4:len(Magic)+8], uint32(typ))
}

// ParseHeader validates and decodes a HeaderSize-byte header, returning the
// payload length and frame type.
func ParseHeader(src []byte) (length int, typ int32, err error) {
	if string(src[0:len(Magic)]) != Magic {
		return 0, 0, ErrBadMagic
	}
	length = int(int32(binary.LittleEndian.Uint32(src[len(Magic) : len(Magic)+4])))
	typ = int32(binary.LittleEndian.Uint32(src[len(Magic)+4 : len(Magic)+8]))
	if length < 0 {
		return 0, 0, ErrNegativeLength
	}
	if length > MaxPayloadSize {
		return 0, 0, ErrPayloadTooLarge
	}
	return length, typ, nil
}

// Send writes a single frame: header followed by payload. scratch is reused
// across calls and grown (double-when-short) to avoid reallocating on every
// send.
func Send(w io.Writer, scratch *[]byte, typ int32, payload []byte) error {
	total := HeaderSize + len(payload)
	if cap(*scratch) < total {
		newCap := 2 * cap(*scratch)
		if newCap < total {
			newCap = total
		}
		*scratch = make([]byte, total, newCap)
	}
	buf := (*scratch)[:total]
	PutHeader(buf, len(payload), typ)
	copy(buf[HeaderSize:], payload)

	outcome, err := WriteAll(w, buf)
	if err != nil {
		if outcome == EOF {
			return &IOError{Op: "send", Outcome: EOF, Err: err}
		}
		return &IOError{Op: "send", Outcome: Err, Err: err}
	}
	return nil
}

// Frame is a single decoded frame: its type and a NUL-terminated payload
// view (the terminator is appended but not counted in len(Payload)).
type Frame struct {
	Type    int32
	Payload []byte // payload[:len(payload)] is the JSON body; a trailing NUL follows it in the backing array
}

// Receive reads one frame from r into scratch, growing it as needed.
// The header is read into a separate fixed array; scratch (which may be
// nil) holds only the payload and is grown to length+1 bytes (for the
// trailing NUL) when undersized.
func Receive(r io.Reader, scratch *[]byte) (Frame, error) {
	var header [HeaderSize]byte
	if outcome, err := ReadAll(r, header[:]); err != nil {
		return Frame{}, &IOError{Op: "receive-header", Outcome: outcome, Err: err}
	}

	length, typ, err := ParseHeader(header[:])
	if err != nil {
		return Frame{}, &MalformedError{Op: "receive-header", Err: err}
	}

	needed := length + 1
	if cap(*scratch) < needed {
		*scratch = make([]byte, needed)
	}
	buf := (*scratch)[:needed]

	if length > 0 {
		if outcome, err := ReadAll(r, buf[:length]); err != nil {
			return Frame{}, &IOError{Op: "receive-payload", Outcome: outcome, Err: err}
		}
	}
	buf[length] = 0

	return Frame{Type: typ, Payload: buf[:length]}, nil
}

// IOError wraps a classified byte-I/O failure during frame send/receive.
type IOError struct {
	Op      string
	Outcome Outcome
	Err     error
}

func (e *IOError) Error() string { return fmt.Sprintf("wire: %s: %v", e.Op, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// MalformedError wraps a frame-structure violation (bad magic, bad length).
type MalformedError struct {
	Op  string
	Err error
}

func (e *MalformedError) Error() string { return fmt.Sprintf("wire: %s: %v", e.Op, e.Err) }
func (e *MalformedError) Unwrap() error { return e.Err }
