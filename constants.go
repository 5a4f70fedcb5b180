package i3ipc

import "github.com/go-i3ipc/i3ipc/internal/constants"

// Message type numbers, re-exported for callers that want to log or
// compare against a raw frame type (e.g. from a *wire.Frame surfaced
// through an error's Inner chain).
const (
	MessageRunCommand     = constants.MessageRunCommand
	MessageGetWorkspaces  = constants.MessageGetWorkspaces
	MessageSubscribe      = constants.MessageSubscribe
	MessageGetOutputs     = constants.MessageGetOutputs
	MessageGetTree        = constants.MessageGetTree
	MessageGetMarks       = constants.MessageGetMarks
	MessageGetBarConfig   = constants.MessageGetBarConfig
	MessageGetVersion     = constants.MessageGetVersion
	MessageGetBindingModes = constants.MessageGetBindingModes
	MessageGetConfig      = constants.MessageGetConfig
	MessageSendTick       = constants.MessageSendTick
	MessageSync           = constants.MessageSync
)

// Event wire-type numbers (high bit set), re-exported for MockPeer's
// PushEvent and for callers matching a raw frame type directly.
const (
	EventWireWorkspace       = constants.EventWorkspace
	EventWireOutput          = constants.EventOutput
	EventWireMode            = constants.EventMode
	EventWireWindow          = constants.EventWindow
	EventWireBarConfigUpdate = constants.EventBarConfigUpdate
	EventWireBinding         = constants.EventBinding
	EventWireShutdown        = constants.EventShutdown
	EventWireTick            = constants.EventTick
)
