// Package constants holds protocol-level constants for the i3 IPC wire
// format: the frame magic, message/event type numbers, and size limits.
package constants

// Magic is the fixed 6-byte frame preamble. Every frame on either socket
// starts with it.
const Magic = "i3-ipc"

// HeaderSize is the size in bytes of magic + length + type.
const HeaderSize = len(Magic) + 4 + 4

// MaxPayloadSize is the hard cap on a single frame's payload, in bytes.
// The peer never sends anything close to this; it exists to bound
// allocation in the face of a corrupted or hostile length field.
const MaxPayloadSize = 256 << 20 // 256 MiB

// Message type numbers, sent on the message socket (except Subscribe,
// which goes out on the event socket).
const (
	MessageRunCommand = iota
	MessageGetWorkspaces
	MessageSubscribe
	MessageGetOutputs
	MessageGetTree
	MessageGetMarks
	MessageGetBarConfig
	MessageGetVersion
	MessageGetBindingModes
	MessageGetConfig
	MessageSendTick
	MessageSync
	messageTypeCount
)

// MessageTypeCount is the number of defined message/reply type numbers.
const MessageTypeCount = messageTypeCount

// eventBit marks a frame type as an event rather than a reply. The i3
// protocol sets the high bit of a 32-bit signed type field; in Go terms
// that is the sign bit, so event type numbers surface as negative ints
// exactly as received off the wire.
const eventBit int32 = -1 << 31

// Event type numbers, as they appear after the high bit is stripped.
const (
	eventWorkspace = iota
	eventOutput
	eventMode
	eventWindow
	eventBarConfigUpdate
	eventBinding
	eventShutdown
	eventTick
	eventTypeCount
)

// Event type numbers as they appear on the wire (high bit set).
const (
	EventWorkspace       = eventBit | eventWorkspace
	EventOutput          = eventBit | eventOutput
	EventMode            = eventBit | eventMode
	EventWindow          = eventBit | eventWindow
	EventBarConfigUpdate = eventBit | eventBarConfigUpdate
	EventBinding         = eventBit | eventBinding
	EventShutdown        = eventBit | eventShutdown
	EventTick            = eventBit | eventTick
)

// EventTypeCount is the number of defined event type numbers.
const EventTypeCount = eventTypeCount

// EventAny matches any event frame, or a SUBSCRIBE reply, in
// receive-matching/receive-reordering (§4.D). It is never sent on the
// wire; it is purely a local sentinel for "what am I waiting for".
const EventAny = int32(-2)

// IsEventType reports whether a raw wire type number denotes an event
// rather than a reply.
func IsEventType(t int32) bool {
	return t < 0
}

// EventIndex returns the zero-based index of an event type (stripping
// the high bit), for indexing into event-name tables. Only valid when
// IsEventType(t) is true.
func EventIndex(t int32) int {
	return int(t &^ eventBit)
}

// EventName is the lowercase wire name i3 uses for each event type in a
// SUBSCRIBE payload (§4.I "Subscribe payload", §9).
var EventName = [EventTypeCount]string{
	eventWorkspace:       "workspace",
	eventOutput:          "output",
	eventMode:            "mode",
	eventWindow:          "window",
	eventBarConfigUpdate: "barconfig_update",
	eventBinding:         "binding",
	eventShutdown:        "shutdown",
	eventTick:            "tick",
}
