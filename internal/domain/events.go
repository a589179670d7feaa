package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventError            EventType = "Error"
	EventScanStarted      EventType = "ScanStarted"
	EventScanCompleted    EventType = "ScanCompleted"
	EventScanRequested    EventType = "ScanRequested"
	EventSelectionChanged EventType = "SelectionChanged"
	EventActionRequested  EventType = "ActionRequested"
	EventActionCompleted  EventType = "ActionCompleted"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventConfigChanged    EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ScanStartedEvent is emitted when gallery scanning begins
type ScanStartedEvent struct {
	Root string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent carries the full ordered gallery after a scan
type ScanCompletedEvent struct {
	Root   string
	Photos []Photo
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// ScanRequestedEvent is emitted to request a new scan
type ScanRequestedEvent struct {
	Root string // empty means the current gallery root
}

func (e ScanRequestedEvent) Type() EventType { return EventScanRequested }

// SelectionChangedEvent is emitted when a gesture completes or the selection
// is replaced wholesale (select all, cancel)
type SelectionChangedEvent struct {
	Photos []Photo
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// ActionRequestedEvent asks the action layer to run an action on a
// selection snapshot
type ActionRequestedEvent struct {
	Action Action
	Photos []Photo
}

func (e ActionRequestedEvent) Type() EventType { return EventActionRequested }

// ActionCompletedEvent reports the outcome of an action
type ActionCompletedEvent struct {
	Action Action
	Count  int // photos the action succeeded for
	Err    error
}

func (e ActionCompletedEvent) Type() EventType { return EventActionCompleted }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	PhotoDir string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	Favorites []string // favorite photo paths
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
