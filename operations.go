package i3ipc

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-i3ipc/i3ipc/internal/constants"
	"github.com/go-i3ipc/i3ipc/internal/jsonscan"
	"github.com/go-i3ipc/i3ipc/internal/materialize"
)

// roundTrip sends payload on typ's socket, blocks for the matching
// reply, and returns its raw JSON bytes. checkReady's BADSTATE gate
// runs first; any transport failure latches the connection (§4.C/§4.J)
// via classify, which maps *wire.IOError to ErrCodeIO (ErrCodeClosed
// when the peer closed the socket) and *wire.MalformedError to
// ErrCodeMalformed.
func (c *Connection) roundTrip(op string, typ int32, payload []byte) ([]byte, error) {
	if err := c.checkReady(op); err != nil {
		return nil, err
	}
	if err := c.transport.Send(typ, payload); err != nil {
		return nil, c.latch(op, classify(err), err)
	}
	frame, err := c.transport.ReceiveMatching(typ)
	if err != nil {
		return nil, c.latch(op, classify(err), err)
	}
	return frame.Payload, nil
}

// decodeInto scans payload and materializes it into dest, latching
// ErrCodeMalformed on any lexical or structural failure.
func (c *Connection) decodeInto(op string, payload []byte, dest any) error {
	tokens, err := jsonscan.Scan(payload)
	if err != nil {
		return c.latch(op, ErrCodeMalformed, err)
	}
	dec := materialize.NewDecoder(payload, tokens)
	if err := materialize.Decode(dest, dec); err != nil {
		return c.latch(op, ErrCodeMalformed, err)
	}
	return nil
}

// query performs a request/reply round-trip with an optional payload,
// decodes the reply into dest, and records it as a query in
// Metrics/Observer.
func (c *Connection) query(op string, typ int32, payload []byte, dest any) error {
	start := time.Now()
	body, err := c.roundTrip(op, typ, payload)
	if err != nil {
		return err
	}
	if err := c.decodeInto(op, body, dest); err != nil {
		return err
	}
	c.recordQuery(time.Since(start), true)
	return nil
}

func (c *Connection) recordQuery(d time.Duration, success bool) {
	c.metrics.RecordQuery(uint64(d), success)
	if c.config.Observer != nil {
		c.config.Observer.ObserveQuery(uint64(d), success)
	}
}

func (c *Connection) recordCommand(d time.Duration, success bool) {
	c.metrics.RecordCommand(uint64(d), success)
	if c.config.Observer != nil {
		c.config.Observer.ObserveCommand(uint64(d), success)
	}
}

// RunCommand sends commands (i3/sway's own command-language text) to
// the peer and returns one CommandResult per semicolon-separated
// sub-command.
func (c *Connection) RunCommand(commands string) (*ReplyCommand, error) {
	start := time.Now()
	body, err := c.roundTrip("RunCommand", constants.MessageRunCommand, []byte(commands))
	if err != nil {
		return nil, err
	}
	var reply ReplyCommand
	if err := c.decodeInto("RunCommand", body, &reply); err != nil {
		return nil, err
	}
	c.recordCommand(time.Since(start), true)
	return &reply, nil
}

// RunCommandSimple is RunCommand for callers that only care whether
// every sub-command succeeded: the first success=false result latches
// a FAILED error carrying that sub-result's error string and index.
func (c *Connection) RunCommandSimple(commands string) error {
	reply, err := c.RunCommand(commands)
	if err != nil {
		return err
	}
	for i, r := range reply.Results {
		if !r.Success {
			c.recordCommand(0, false)
			return c.latch("RunCommandSimple", ErrCodeFailed, fmt.Errorf("sub-command %d failed: %s", i, r.Error))
		}
	}
	return nil
}

// GetWorkspaces returns the current workspace list.
func (c *Connection) GetWorkspaces() (*ReplyWorkspaces, error) {
	var reply ReplyWorkspaces
	if err := c.query("GetWorkspaces", constants.MessageGetWorkspaces, nil, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetOutputs returns the current output list.
func (c *Connection) GetOutputs() (*ReplyOutputs, error) {
	var reply ReplyOutputs
	if err := c.query("GetOutputs", constants.MessageGetOutputs, nil, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetTree returns the full container tree, rooted at the root node.
func (c *Connection) GetTree() (*ReplyTree, error) {
	var reply ReplyTree
	if err := c.query("GetTree", constants.MessageGetTree, nil, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetMarks returns every mark currently set on any window.
func (c *Connection) GetMarks() (*ReplyMarks, error) {
	var reply ReplyMarks
	if err := c.query("GetMarks", constants.MessageGetMarks, nil, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetBindingModes returns the names of every configured binding mode.
func (c *Connection) GetBindingModes() (*ReplyBindingModes, error) {
	var reply ReplyBindingModes
	if err := c.query("GetBindingModes", constants.MessageGetBindingModes, nil, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetConfig returns the last loaded config file's contents, verbatim.
func (c *Connection) GetConfig() (*ReplyConfig, error) {
	var reply ReplyConfig
	if err := c.query("GetConfig", constants.MessageGetConfig, nil, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetVersion returns the peer's full version record.
func (c *Connection) GetVersion() (*ReplyVersion, error) {
	var reply ReplyVersion
	if err := c.query("GetVersion", constants.MessageGetVersion, nil, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetVersionSimple is GetVersion for callers that only need the three
// numeric version components.
func (c *Connection) GetVersionSimple() (major, minor, patch int, err error) {
	reply, err := c.GetVersion()
	if err != nil {
		return 0, 0, 0, err
	}
	return reply.Major, reply.Minor, reply.Patch, nil
}

// GetBarConfigIDs lists every configured bar's ID; pass one to
// GetBarConfig for its full configuration.
func (c *Connection) GetBarConfigIDs() (*ReplyBarConfigIDs, error) {
	var reply ReplyBarConfigIDs
	if err := c.query("GetBarConfigIDs", constants.MessageGetBarConfig, nil, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetBarConfig returns the full configuration of the bar named id.
func (c *Connection) GetBarConfig(id string) (*ReplyBarConfig, error) {
	var reply ReplyBarConfig
	if err := c.query("GetBarConfig", constants.MessageGetBarConfig, []byte(id), &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Subscribe requests delivery of the given event types on the event
// socket. The SUBSCRIBE reply itself travels on the event socket and is
// read with receive-reordering, since an event racing the request may
// already be queued ahead of it (§4.D, §4.I, §9 "Subscribe payload").
func (c *Connection) Subscribe(types ...EventType) (*ReplySubscribe, error) {
	const op = "Subscribe"
	if err := c.checkReady(op); err != nil {
		return nil, err
	}

	payload := subscribePayload(types)
	if err := c.transport.Send(constants.MessageSubscribe, payload); err != nil {
		return nil, c.latch(op, classify(err), err)
	}
	frame, err := c.transport.ReceiveReordering(constants.MessageSubscribe)
	if err != nil {
		return nil, c.latch(op, classify(err), err)
	}

	var reply ReplySubscribe
	if err := c.decodeInto(op, frame.Payload, &reply); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.subscribed = true
	c.mu.Unlock()
	return &reply, nil
}

// subscribePayload hand-builds the JSON array of event-type names the
// peer expects, e.g. ["workspace","window"].
func subscribePayload(types []EventType) []byte {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = `"` + eventWireName(t) + `"`
	}
	return []byte("[" + strings.Join(names, ",") + "]")
}

func eventWireName(t EventType) string {
	idx := int(t)
	if idx < 0 || idx >= constants.EventTypeCount {
		return ""
	}
	return constants.EventName[idx]
}

// EventNext blocks up to timeoutMs milliseconds (negative means
// indefinitely, zero means a non-blocking poll) for the next event,
// returning it as a tagged Event. It requires a prior Subscribe call;
// without one it returns a BADSTATE error without touching the wire.
func (c *Connection) EventNext(timeoutMs int) (*Event, error) {
	const op = "EventNext"
	if err := c.checkReady(op); err != nil {
		return nil, err
	}

	c.mu.Lock()
	subscribed := c.subscribed
	c.mu.Unlock()
	if !subscribed {
		return nil, NewError(op, ErrCodeBadState, "EventNext called before Subscribe")
	}

	ready, err := c.transport.Poll(timeoutMs)
	if err != nil {
		return nil, c.latch(op, ErrCodeIO, err)
	}
	if !ready {
		return nil, nil
	}

	frame, err := c.transport.ReceiveReordering(constants.EventAny)
	if err != nil {
		return nil, c.latch(op, classify(err), err)
	}
	if !constants.IsEventType(frame.Type) {
		// A stray SUBSCRIBE reply (EventAny also matches it, §4.D);
		// Subscribe already consumed its own reply, so this should not
		// occur in normal use, but surfaces as MALFORMED rather than
		// panicking on an out-of-range event index if it ever does.
		return nil, c.latch(op, ErrCodeMalformed, fmt.Errorf("unexpected non-event frame type %d", frame.Type))
	}

	event, err := c.decodeEvent(op, frame.Type, frame.Payload)
	if err != nil {
		return nil, err
	}
	c.metrics.RecordEvent()
	if c.config.Observer != nil {
		c.config.Observer.ObserveEvent()
	}
	return event, nil
}

// decodeEvent materializes payload into the Event variant matching
// frame's wire type.
func (c *Connection) decodeEvent(op string, wireType int32, payload []byte) (*Event, error) {
	idx := constants.EventIndex(wireType)
	ev := &Event{Type: EventType(idx)}

	switch EventType(idx) {
	case EventTypeWorkspace:
		ev.Workspace = &EventWorkspace{}
		return ev, c.decodeInto(op, payload, ev.Workspace)
	case EventTypeOutput:
		ev.Output = &EventOutput{}
		return ev, c.decodeInto(op, payload, ev.Output)
	case EventTypeMode:
		ev.Mode = &EventMode{}
		return ev, c.decodeInto(op, payload, ev.Mode)
	case EventTypeWindow:
		ev.Window = &EventWindow{}
		return ev, c.decodeInto(op, payload, ev.Window)
	case EventTypeBarConfigUpdate:
		ev.BarConfigUpdate = &EventBarConfigUpdate{}
		return ev, c.decodeInto(op, payload, ev.BarConfigUpdate)
	case EventTypeBinding:
		ev.Binding = &EventBinding{}
		return ev, c.decodeInto(op, payload, ev.Binding)
	case EventTypeShutdown:
		ev.Shutdown = &EventShutdown{}
		return ev, c.decodeInto(op, payload, ev.Shutdown)
	case EventTypeTick:
		ev.Tick = &EventTick{}
		return ev, c.decodeInto(op, payload, ev.Tick)
	default:
		return nil, c.latch(op, ErrCodeMalformed, NewError(op, ErrCodeMalformed, "unrecognized event wire type"))
	}
}

// SendTick broadcasts payload to every subscriber of the TICK event,
// including this connection if it is itself subscribed.
func (c *Connection) SendTick(payload string) (*ReplyTick, error) {
	var reply ReplyTick
	if err := c.query("SendTick", constants.MessageSendTick, []byte(payload), &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Sync implements the sync extension some peers support: it builds its
// own minimal JSON payload `{"rnd":<random>,"window":<window>}` by
// digit-by-digit decimal encoding rather than going through the
// general-purpose emitter, since this is the one operation whose
// request (not just reply) carries structured data (§4.I, §9).
func (c *Connection) Sync(random int, window uint64) (*ReplySync, error) {
	var b strings.Builder
	b.WriteString(`{"rnd":`)
	b.WriteString(strconv.Itoa(random))
	b.WriteString(`,"window":`)
	b.WriteString(strconv.FormatUint(window, 10))
	b.WriteByte('}')

	var reply ReplySync
	if err := c.query("Sync", constants.MessageSync, []byte(b.String()), &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// MessageFD returns a duplicated file descriptor for the message
// socket, for integration with an external poll/select loop. The
// caller owns the returned fd and must close it.
func (c *Connection) MessageFD() (int, error) {
	if err := c.checkReady("MessageFD"); err != nil {
		return -1, err
	}
	return c.transport.MessageFD()
}

// EventFD returns a duplicated file descriptor for the event socket,
// for integration with an external poll/select loop. The caller owns
// the returned fd and must close it.
func (c *Connection) EventFD() (int, error) {
	if err := c.checkReady("EventFD"); err != nil {
		return -1, err
	}
	return c.transport.EventFD()
}
