// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Engine events
	TypeSceneChanged   // Fired after Document State was replaced
	TypeHistoryChanged // Fired when the undo/redo stacks or pending buffer change
	TypeActionExecuted // Fired after an action ran with enablement true
	TypeActionTracked  // Fired by the event tracker for telemetry records
	TypeRemoteApplied  // Fired after a collaboration update was merged

	// Application Lifecycle Events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins
)

// String returns a readable name for logs.
func (t Type) String() string {
	switch t {
	case TypeSceneChanged:
		return "SceneChanged"
	case TypeHistoryChanged:
		return "HistoryChanged"
	case TypeActionExecuted:
		return "ActionExecuted"
	case TypeActionTracked:
		return "ActionTracked"
	case TypeRemoteApplied:
		return "RemoteApplied"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	default:
		return "Unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// SceneChangedData describes a Document State replacement.
type SceneChangedData struct {
	Source        string // "ui", "keyboard", "remote", "undo", ...
	ElementCount  int
	ChangedFields []string
}

// HistoryChangedData carries the stack depths after a history transition.
type HistoryChangedData struct {
	Past    int
	Future  int
	Pending bool
}

// ActionExecutedData describes one applied action.
type ActionExecutedData struct {
	Name    string
	Source  string
	Capture string
}

// ActionTrackedData is a telemetry record forwarded on the bus.
type ActionTrackedData struct {
	Category string
	Action   string
}

// RemoteAppliedData summarises a merged collaboration update.
type RemoteAppliedData struct {
	Accepted int
	Rejected int
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
