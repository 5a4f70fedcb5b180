package i3ipc

import (
	"fmt"
	"sync"

	"github.com/go-i3ipc/i3ipc/internal/logging"
	"github.com/go-i3ipc/i3ipc/internal/transport"
)

// connState is the connection manager's state machine (§4.C):
// uninitialized until Open succeeds, ready while usable, or latched to
// an error code once one occurs.
type connState int

const (
	connUninitialized connState = iota
	connReady
	connErrored
)

// Connection is a client connection to a running i3 or sway instance: a
// message socket for synchronous requests and an event socket for
// subscriptions, multiplexed over one UNIX socket path. Exported
// operations live in operations.go; Connection itself owns the state
// machine, the error latch, and the diagnostic/metrics plumbing shared
// by all of them.
type Connection struct {
	config  *Config
	logger  *logging.Logger
	metrics *Metrics

	transport *transport.Conn

	mu         sync.Mutex
	state      connState
	errCode    ErrorCode
	subscribed bool
}

// Connect opens a Connection using cfg, or DefaultConfig() if cfg is
// nil. If cfg.SocketPath is empty, the path is discovered by
// transport.DiscoverSocketPath ($I3SOCK, $SWAYSOCK, then the
// `i3`/`sway --get-socketpath` subprocesses).
func Connect(cfg *Config) (*Connection, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	logger := cfg.logger()

	path := cfg.SocketPath
	if path == "" {
		discovered, err := transport.DiscoverSocketPath()
		if err != nil {
			return nil, WrapError("connect", err)
		}
		path = discovered
	}

	c := &Connection{
		config:    cfg,
		logger:    logger,
		metrics:   NewMetrics(),
		transport: transport.New(path, logger),
	}
	if err := c.open(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Connection) open() error {
	if err := c.transport.Open(); err != nil {
		return c.latch("open", ErrCodeClosed, err)
	}
	c.mu.Lock()
	c.state = connReady
	c.errCode = ErrCodeOK
	c.mu.Unlock()
	c.logger.Info("connection ready", "path", c.transport.Path)
	return nil
}

// Close tears down both sockets. The Connection is unusable afterward;
// a fresh Connect is required to talk to the peer again.
func (c *Connection) Close() error {
	c.mu.Lock()
	c.state = connUninitialized
	c.mu.Unlock()
	return c.transport.Close()
}

// ErrorCode returns the connection's currently latched error code,
// ErrCodeOK if none is latched.
func (c *Connection) ErrorCode() ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errCode
}

// Reinitialize implements §4.J/§7's teardown policy: a hard error
// (CLOSED/MALFORMED/IO) closes and reopens both sockets, discarding the
// event queue and the subscription; a soft error (FAILED/BADSTATE) merely clears the latch,
// leaving the sockets untouched, unless force is true, in which case
// the hard teardown always runs. Reinitialize itself never returns a
// latched error code on success; it is the one call exempt from the
// BADSTATE block.
func (c *Connection) Reinitialize(force bool) error {
	c.mu.Lock()
	code := c.errCode
	c.mu.Unlock()

	if force || code.hard() {
		if err := c.transport.Close(); err != nil {
			c.logger.Warn("reinitialize: close failed", "error", err)
		}
		c.logger.ClearDiagnostic()
		c.mu.Lock()
		c.subscribed = false
		c.mu.Unlock()
		return c.open()
	}

	c.mu.Lock()
	c.state = connReady
	c.errCode = ErrCodeOK
	c.mu.Unlock()
	return nil
}

// checkReady enforces §4.J's BADSTATE gate: once a prior error is
// latched, every operation returns BADSTATE immediately without
// touching the wire, until Reinitialize is called.
func (c *Connection) checkReady(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == connErrored {
		return NewError(op, ErrCodeBadState, fmt.Sprintf("connection latched at %s; call Reinitialize", c.errCode))
	}
	if c.state != connReady {
		return NewError(op, ErrCodeClosed, "connection not open")
	}
	return nil
}

// latch records an error as the connection's current code, prints the
// accumulated diagnostic via the logger, and panics unless QuietPanic
// is set (§4.J: "the default top-level policy aborts on first non-zero
// code after printing the accumulated diagnostic" — this applies to
// every code, not only the hard ones; hard-vs-soft only changes what
// Reinitialize tears down, per the scenario where a FAILED RunCommand
// needs quiet-panic explicitly enabled to avoid aborting the caller).
func (c *Connection) latch(op string, code ErrorCode, cause error) error {
	e := WrapError(op, cause)
	e.Code = code

	c.mu.Lock()
	c.state = connErrored
	c.errCode = code
	c.mu.Unlock()

	diag := c.logger.Diagnostic()
	if diag != "" {
		c.logger.Errorf("error latched during %s:\n%s", op, diag)
	}
	c.logger.ClearDiagnostic()

	if !c.config.QuietPanic {
		panic(e)
	}
	return e
}
