package i3ipc

import "github.com/go-i3ipc/i3ipc/internal/logging"

// Config controls how a Connection is opened and how it behaves once
// open.
type Config struct {
	// SocketPath is the UNIX socket path to dial. Empty means "discover
	// it", via $I3SOCK/$SWAYSOCK or the `i3`/`sway --get-socketpath`
	// subprocess fallback.
	SocketPath string

	// StaticAlloc is carried in the configuration, but no operation
	// reads it: every operation decodes into a freshly allocated reply
	// (the materializer's "owning mode"), so earlier results stay valid
	// across calls whatever its value.
	StaticAlloc bool

	// QuietPanic, when true, suppresses the panic any latched error
	// code would otherwise trigger; Reinitialize must then be called
	// explicitly before the connection is usable again.
	QuietPanic bool

	// LogLevel sets the verbosity of Logger, if Logger is nil.
	LogLevel logging.LogLevel

	// Logger receives structured log lines for every operation. If nil,
	// a Logger is constructed at LogLevel.
	Logger *logging.Logger

	// Observer, if non-nil, receives a callback for every completed
	// operation, in addition to whatever Metrics tracks internally.
	Observer Observer
}

// DefaultConfig returns the configuration a zero-argument Connect uses:
// socket-path discovery, owning-mode materialization, panic-on-error,
// info-level logging to stderr, and no external observer.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: logging.LevelInfo,
	}
}

func (c *Config) logger() *logging.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.NewLogger(&logging.Config{Level: c.LogLevel})
}
