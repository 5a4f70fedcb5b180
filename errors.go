package i3ipc

import (
	"errors"
	"fmt"

	"github.com/go-i3ipc/i3ipc/internal/jsonscan"
	"github.com/go-i3ipc/i3ipc/internal/transport"
	"github.com/go-i3ipc/i3ipc/internal/wire"
)

// Error is a structured error returned by every operation on Connection.
// Op names the operation that failed; Code classifies the failure into
// one of the facility's five categories; Inner, when present, is the
// lower-level cause (a *wire.IOError, *wire.MalformedError, a
// *jsonscan.ScanError/ParseError, or a transport.ErrDiscoveryFailed).
type Error struct {
	Op    string
	Code  ErrorCode
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("i3ipc: %s: %s: %v", e.Op, e.Msg, e.Inner)
	}
	return fmt.Sprintf("i3ipc: %s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error { return e.Inner }

// Is supports errors.Is(err, ErrCodeClosed) style comparisons against the
// ErrorCode sentinels below, in addition to the default *Error identity
// comparison errors.Is already provides.
func (e *Error) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && e.Code == code
}

// ErrorCode classifies an *Error into one of the facility's five
// failure categories.
type ErrorCode int

const (
	// ErrCodeOK means no error is latched on the connection. It is never
	// carried by an *Error; it is only returned by Connection.ErrorCode.
	ErrCodeOK ErrorCode = iota
	// ErrCodeClosed means the connection is not open: the caller tried an
	// operation before Open or after Close/an unrecovered hard error,
	// socket-path discovery produced no usable path, or the peer closed
	// the socket (EOF) mid-send or mid-receive.
	ErrCodeClosed
	// ErrCodeMalformed means a frame or its JSON payload violated the wire
	// grammar: bad magic, negative length, truncated JSON, structurally
	// impossible token stream. These are always hard errors.
	ErrCodeMalformed
	// ErrCodeIO means the underlying socket returned a transport-level
	// failure other than the peer closing it: a short write, ECONNRESET.
	// Always hard.
	ErrCodeIO
	// ErrCodeFailed means the peer understood the request and reported
	// failure at the application level: RunCommand's CommandResult had
	// Success == false for at least one parsed subcommand, or a reply
	// the peer itself marks unsuccessful. Always soft: the connection
	// stays usable.
	ErrCodeFailed
	// ErrCodeBadState means the caller violated the library's own usage
	// contract: an operation attempted while a prior error is latched
	// (until Reinitialize), or EventNext called without a prior
	// Subscribe. Soft.
	ErrCodeBadState
)

func (c ErrorCode) Error() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeClosed:
		return "connection closed"
	case ErrCodeMalformed:
		return "malformed frame"
	case ErrCodeIO:
		return "i/o error"
	case ErrCodeFailed:
		return "operation failed"
	case ErrCodeBadState:
		return "invalid connection state"
	default:
		return "unknown error"
	}
}

// hard reports whether a code's Reinitialize teardown closes and
// reopens both sockets (CLOSED, MALFORMED, IO) as opposed to merely
// clearing the latch (FAILED, BADSTATE), per §7.
func (c ErrorCode) hard() bool {
	return c == ErrCodeClosed || c == ErrCodeMalformed || c == ErrCodeIO
}

// NewError builds an *Error with no wrapped cause.
func NewError(op string, code ErrorCode, msg string) *Error {
	return &Error{Op: op, Code: code, Msg: msg}
}

// WrapError classifies inner by its concrete type and wraps it as an
// *Error attributed to op. A nil inner yields a nil *Error.
func WrapError(op string, inner error) *Error {
	if inner == nil {
		return nil
	}
	if e, ok := inner.(*Error); ok {
		return &Error{Op: op, Code: e.Code, Msg: e.Msg, Inner: e.Inner}
	}
	return &Error{Op: op, Code: classify(inner), Msg: inner.Error(), Inner: inner}
}

// IsCode reports whether err is an *Error (directly or via Unwrap) with
// the given code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// classify maps a lower-level error from the internal packages onto
// the public ErrorCode taxonomy. A *wire.IOError whose Outcome is EOF
// means the peer closed the socket, which is CLOSED rather than IO; a
// failed socket-path discovery is CLOSED as well.
func classify(err error) ErrorCode {
	var ioErr *wire.IOError
	if errors.As(err, &ioErr) {
		if ioErr.Outcome == wire.EOF {
			return ErrCodeClosed
		}
		return ErrCodeIO
	}
	var malformedErr *wire.MalformedError
	if errors.As(err, &malformedErr) {
		return ErrCodeMalformed
	}
	var scanErr *jsonscan.ScanError
	if errors.As(err, &scanErr) {
		return ErrCodeMalformed
	}
	var parseErr *jsonscan.ParseError
	if errors.As(err, &parseErr) {
		return ErrCodeMalformed
	}
	var discoveryErr *transport.ErrDiscoveryFailed
	if errors.As(err, &discoveryErr) {
		return ErrCodeClosed
	}
	return ErrCodeIO
}
