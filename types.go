package i3ipc

// Rect is a rectangle in absolute screen coordinates, as reported for
// every node in the tree and for each output/workspace.
type Rect struct {
	X      int `ipc:"x"`
	Y      int `ipc:"y"`
	Width  int `ipc:"width"`
	Height int `ipc:"height"`
}

// WindowProperties holds the X11/Wayland application identity reported
// on a window-bearing node. WindowClass is the one field the peer's
// JSON key and this library's member name disagree on: the wire key
// is "class", renamed here since "class" collides with little outside
// Go but the original C source reserves it for its own field accessor
// naming convention, which this library follows for parity. Every
// string field here may arrive as JSON null (override-redirect
// windows in particular carry no WM_CLASS/instance/title), and
// TransientFor is the transient-for window's X11 ID, not a string.
type WindowProperties struct {
	WindowClass     string `ipc:"class,OPT"`
	WindowClassSet  bool   `ipc:"-,SET"`
	Instance        string `ipc:"instance,OPT"`
	InstanceSet     bool   `ipc:"-,SET"`
	Title           string `ipc:"title,OPT"`
	TitleSet        bool   `ipc:"-,SET"`
	WindowRole      string `ipc:"window_role,OPT"`
	WindowRoleSet   bool   `ipc:"-,SET"`
	TransientFor    int64  `ipc:"transient_for,OPT"`
	TransientForSet bool   `ipc:"-,SET"`
}

// Node is one element of the i3/sway container tree: the recursive
// record returned by GetTree and carried inline by window events.
type Node struct {
	ID                 int64              `ipc:"id"`
	Name               string             `ipc:"name,OPT"`
	NameSet            bool               `ipc:"-,SET"`
	Type               string             `ipc:"type"`
	TypeEnum           int                `ipc:"-,ENUM" enum:"Node.Type"`
	Border             string             `ipc:"border"`
	BorderEnum         int                `ipc:"-,ENUM" enum:"Node.Border"`
	CurrentBorderWidth int                `ipc:"current_border_width"`
	Layout             string             `ipc:"layout"`
	LayoutEnum         int                `ipc:"-,ENUM" enum:"Node.Layout"`
	Orientation        string             `ipc:"orientation"`
	OrientationEnum    int                `ipc:"-,ENUM" enum:"Node.Orientation"`
	Percent            float64            `ipc:"percent,OPT"`
	PercentSet         bool               `ipc:"-,SET"`
	Rect               Rect               `ipc:"rect"`
	WindowRect         Rect               `ipc:"window_rect"`
	DecoRect           Rect               `ipc:"deco_rect"`
	Geometry           Rect               `ipc:"geometry"`
	Window             int64              `ipc:"window,OPT"`
	WindowSet          bool               `ipc:"-,SET"`
	WindowProperties   *WindowProperties  `ipc:"window_properties,PTR"`
	WindowType         string             `ipc:"window_type,OPT"`
	WindowTypeSet      bool               `ipc:"-,SET"`
	WindowTypeEnum     int                `ipc:"-,ENUM" enum:"Node.WindowType"`
	FullscreenMode     int                `ipc:"fullscreen_mode"`
	Urgent             bool               `ipc:"urgent"`
	Focused            bool               `ipc:"focused"`
	Focus              []int64            `ipc:"focus,ARRAY"`
	FocusSize          int                `ipc:"-,SIZE"`
	Marks              []string           `ipc:"marks,ARRAY"`
	MarksSize          int                `ipc:"-,SIZE"`
	Nodes              []Node             `ipc:"nodes,ARRAY"`
	NodesSize          int                `ipc:"-,SIZE"`
	FloatingNodes      []Node             `ipc:"floating_nodes,ARRAY"`
	FloatingNodesSize  int                `ipc:"-,SIZE"`
}

// BarConfigColors is the full set of bar color keys the peer may report;
// absent keys are left as empty strings, per the "may omit any color
// key" contract.
type BarConfigColors struct {
	Background               string `ipc:"background,OPT"`
	BackgroundSet            bool   `ipc:"-,SET"`
	Statusline               string `ipc:"statusline,OPT"`
	StatuslineSet            bool   `ipc:"-,SET"`
	Separator                string `ipc:"separator,OPT"`
	SeparatorSet              bool   `ipc:"-,SET"`
	FocusedBackground        string `ipc:"focused_background,OPT"`
	FocusedBackgroundSet     bool   `ipc:"-,SET"`
	FocusedStatusline        string `ipc:"focused_statusline,OPT"`
	FocusedStatuslineSet     bool   `ipc:"-,SET"`
	FocusedSeparator         string `ipc:"focused_separator,OPT"`
	FocusedSeparatorSet      bool   `ipc:"-,SET"`
	FocusedWorkspaceText     string `ipc:"focused_workspace_text,OPT"`
	FocusedWorkspaceTextSet  bool   `ipc:"-,SET"`
	FocusedWorkspaceBg       string `ipc:"focused_workspace_bg,OPT"`
	FocusedWorkspaceBgSet    bool   `ipc:"-,SET"`
	FocusedWorkspaceBorder   string `ipc:"focused_workspace_border,OPT"`
	FocusedWorkspaceBorderSet bool  `ipc:"-,SET"`
	ActiveWorkspaceText      string `ipc:"active_workspace_text,OPT"`
	ActiveWorkspaceTextSet   bool   `ipc:"-,SET"`
	ActiveWorkspaceBg        string `ipc:"active_workspace_bg,OPT"`
	ActiveWorkspaceBgSet     bool   `ipc:"-,SET"`
	ActiveWorkspaceBorder    string `ipc:"active_workspace_border,OPT"`
	ActiveWorkspaceBorderSet bool   `ipc:"-,SET"`
	InactiveWorkspaceText    string `ipc:"inactive_workspace_text,OPT"`
	InactiveWorkspaceTextSet bool   `ipc:"-,SET"`
	InactiveWorkspaceBg      string `ipc:"inactive_workspace_bg,OPT"`
	InactiveWorkspaceBgSet   bool   `ipc:"-,SET"`
	InactiveWorkspaceBorder  string `ipc:"inactive_workspace_border,OPT"`
	InactiveWorkspaceBorderSet bool `ipc:"-,SET"`
	UrgentWorkspaceText      string `ipc:"urgent_workspace_text,OPT"`
	UrgentWorkspaceTextSet   bool   `ipc:"-,SET"`
	UrgentWorkspaceBg        string `ipc:"urgent_workspace_bg,OPT"`
	UrgentWorkspaceBgSet     bool   `ipc:"-,SET"`
	UrgentWorkspaceBorder    string `ipc:"urgent_workspace_border,OPT"`
	UrgentWorkspaceBorderSet bool   `ipc:"-,SET"`
	BindingModeText          string `ipc:"binding_mode_text,OPT"`
	BindingModeTextSet       bool   `ipc:"-,SET"`
	BindingModeBg            string `ipc:"binding_mode_bg,OPT"`
	BindingModeBgSet         bool   `ipc:"-,SET"`
	BindingModeBorder        string `ipc:"binding_mode_border,OPT"`
	BindingModeBorderSet     bool   `ipc:"-,SET"`
}

// BarConfig is the i3bar configuration returned by GetBarConfig(id).
type BarConfig struct {
	ID                  string          `ipc:"id"`
	Mode                string          `ipc:"mode"`
	Position            string          `ipc:"position"`
	StatusCommand       string          `ipc:"status_command,OPT"`
	StatusCommandSet    bool            `ipc:"-,SET"`
	Font                string          `ipc:"font"`
	WorkspaceButtons    bool            `ipc:"workspace_buttons"`
	BindingModeIndicator bool           `ipc:"binding_mode_indicator"`
	Verbose             bool            `ipc:"verbose"`
	Colors              BarConfigColors `ipc:"colors"`
}

// Workspace is one element of the array GetWorkspaces returns.
type Workspace struct {
	ID                int64  `ipc:"id"`
	Num               int    `ipc:"num"`
	Name              string `ipc:"name"`
	Visible           bool   `ipc:"visible"`
	Focused           bool   `ipc:"focused"`
	Urgent            bool   `ipc:"urgent"`
	Rect              Rect   `ipc:"rect"`
	Output            string `ipc:"output"`
	Representation    string `ipc:"representation,OPT"`
	RepresentationSet bool   `ipc:"-,SET"`
}

// Output is one element of the array GetOutputs returns.
type Output struct {
	Name             string `ipc:"name"`
	Active           bool   `ipc:"active"`
	Primary          bool   `ipc:"primary"`
	CurrentWorkspace string `ipc:"current_workspace,OPT"`
	CurrentWorkspaceSet bool `ipc:"-,SET"`
	Rect             Rect   `ipc:"rect"`
}

// CommandResult is one element of a ReplyCommand array: the peer's
// per-subcommand success/failure report.
type CommandResult struct {
	Success bool   `ipc:"success"`
	Error   string `ipc:"error,OPT"`
	ErrorSet bool  `ipc:"-,SET"`
}

// Reply records, one per message type.

type ReplyCommand struct {
	Results []CommandResult `ipc:"-,ARRAY,INLINE"`
}

type ReplyWorkspaces struct {
	Workspaces []Workspace `ipc:"-,ARRAY,INLINE"`
}

type ReplySubscribe struct {
	Success bool `ipc:"success"`
}

type ReplyOutputs struct {
	Outputs []Output `ipc:"-,ARRAY,INLINE"`
}

type ReplyTree struct {
	Root Node `ipc:"-,INLINE"`
}

type ReplyMarks struct {
	Marks []string `ipc:"-,ARRAY,INLINE"`
}

type ReplyBarConfigIDs struct {
	IDs []string `ipc:"-,ARRAY,INLINE"`
}

type ReplyBarConfig struct {
	Config BarConfig `ipc:"-,INLINE"`
}

type ReplyVersion struct {
	Major               int    `ipc:"major"`
	Minor               int    `ipc:"minor"`
	Patch               int    `ipc:"patch"`
	HumanReadable       string `ipc:"human_readable"`
	LoadedConfigFileName string `ipc:"loaded_config_file_name"`
}

type ReplyBindingModes struct {
	Modes []string `ipc:"-,ARRAY,INLINE"`
}

type ReplyConfig struct {
	Config string `ipc:"config"`
}

type ReplyTick struct {
	Success bool `ipc:"success"`
}

type ReplySync struct {
	Success bool `ipc:"success"`
}

// Event records, one per event type.

type EventWorkspace struct {
	Change     string `ipc:"change"`
	ChangeEnum int    `ipc:"-,ENUM" enum:"EventWorkspace.Change"`
	Current    *Node  `ipc:"current,PTR"`
	Old        *Node  `ipc:"old,PTR"`
}

type EventOutput struct {
	Change     string `ipc:"change"`
	ChangeEnum int    `ipc:"-,ENUM" enum:"EventOutput.Change"`
}

// EventMode carries no enum sidecar: mode names are free-form, set by
// the user's config, not a closed set.
type EventMode struct {
	Change      string `ipc:"change"`
	PangoMarkup bool   `ipc:"pango_markup"`
}

type EventWindow struct {
	Change     string `ipc:"change"`
	ChangeEnum int    `ipc:"-,ENUM" enum:"EventWindow.Change"`
	Container  Node   `ipc:"container"`
}

type EventBarConfigUpdate struct {
	Config BarConfig `ipc:"-,INLINE"`
}

// EventBindingBinding is the "binding" sub-object of a BINDING event.
type EventBindingBinding struct {
	Command        string   `ipc:"command"`
	EventStateMask []string `ipc:"event_state_mask,ARRAY"`
	EventStateMaskSize int  `ipc:"-,SIZE"`
	InputCode      int      `ipc:"input_code"`
	Symbol         string   `ipc:"symbol,OPT"`
	SymbolSet      bool     `ipc:"-,SET"`
	InputType      string   `ipc:"input_type"`
	InputTypeEnum  int      `ipc:"-,ENUM" enum:"EventBindingBinding.InputType"`
}

type EventBinding struct {
	Change     string              `ipc:"change"`
	ChangeEnum int                 `ipc:"-,ENUM" enum:"EventBinding.Change"`
	Binding    EventBindingBinding `ipc:"binding"`
}

type EventShutdown struct {
	Change     string `ipc:"change"`
	ChangeEnum int    `ipc:"-,ENUM" enum:"EventShutdown.Change"`
}

type EventTick struct {
	First   bool   `ipc:"first"`
	Payload string `ipc:"payload"`
}

// EventType identifies which variant of Event is populated.
type EventType int

const (
	EventTypeWorkspace EventType = iota
	EventTypeOutput
	EventTypeMode
	EventTypeWindow
	EventTypeBarConfigUpdate
	EventTypeBinding
	EventTypeShutdown
	EventTypeTick
)

// Event is the tagged union EventNext returns: exactly one of the
// pointer fields matching Type is populated.
type Event struct {
	Type EventType

	Workspace       *EventWorkspace
	Output          *EventOutput
	Mode            *EventMode
	Window          *EventWindow
	BarConfigUpdate *EventBarConfigUpdate
	Binding         *EventBinding
	Shutdown        *EventShutdown
	Tick            *EventTick
}
