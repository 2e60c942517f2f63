package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventError           EventType = "Error"
	EventItemsChanged    EventType = "ItemsChanged"
	EventBatchStarted    EventType = "BatchStarted"
	EventBatchFinalized  EventType = "BatchFinalized"
	EventBatchCancelled  EventType = "BatchCancelled"
	EventBatchSettled    EventType = "BatchSettled"
	EventMutationFailed  EventType = "MutationFailed"
	EventRestoreFallback EventType = "RestoreFallback"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
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

// ItemsChangedEvent is emitted when the store was changed outside the TUI
type ItemsChangedEvent struct {
	ItemType ItemType
}

func (e ItemsChangedEvent) Type() EventType { return EventItemsChanged }

// BatchStartedEvent is emitted when a confirmed batch begins animating
type BatchStartedEvent struct {
	BatchID   string
	Operation Operation
	ItemType  ItemType
	Count     int
	Total     int
	Partial   bool
}

func (e BatchStartedEvent) Type() EventType { return EventBatchStarted }

// BatchFinalizedEvent is emitted when a batch returns to idle normally
type BatchFinalizedEvent struct {
	BatchID   string
	Operation Operation
	ItemType  ItemType
	Processed int
	Remaining int
}

func (e BatchFinalizedEvent) Type() EventType { return EventBatchFinalized }

// BatchCancelledEvent is emitted when an active batch is cancelled
type BatchCancelledEvent struct {
	BatchID string
	Reason  string
}

func (e BatchCancelledEvent) Type() EventType { return EventBatchCancelled }

// BatchSettledEvent is emitted once every mutation call of a batch returned
type BatchSettledEvent struct {
	BatchID   string
	Operation Operation
	ItemType  ItemType
	Succeeded int
	Failed    int
}

func (e BatchSettledEvent) Type() EventType { return EventBatchSettled }

// MutationFailedEvent is emitted for each rejected per-item mutation
type MutationFailedEvent struct {
	BatchID   string
	Operation Operation
	ItemType  ItemType
	ID        int
	Err       error
}

func (e MutationFailedEvent) Type() EventType { return EventMutationFailed }

// RestoreFallbackEvent is emitted when a deleted item had no original identifier on record
type RestoreFallbackEvent struct {
	ItemType ItemType
	ID       int
}

func (e RestoreFallbackEvent) Type() EventType { return EventRestoreFallback }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	Default bool
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
