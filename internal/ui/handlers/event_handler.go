package handlers

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"memodeck/internal/domain"
	"memodeck/internal/eventbus"
	"memodeck/internal/ui/state"
)

// EventHandler handles domain events and updates state
type EventHandler struct {
	state  *state.AppState
	reload func(itemType domain.ItemType) tea.Cmd
	// afterBatch refreshes the tabs a finished batch moved items into
	afterBatch func(itemType domain.ItemType, op domain.Operation) tea.Cmd

	// failures of the batch currently settling, by batch id
	failures map[string]int
}

// NewEventHandler creates a new event handler. reload is asked to refresh
// the tabs of an item type after writes made outside the current batch.
func NewEventHandler(appState *state.AppState, reload func(domain.ItemType) tea.Cmd) *EventHandler {
	return &EventHandler{
		state:    appState,
		reload:   reload,
		failures: make(map[string]int),
	}
}

// SetAfterBatch sets the callback run once a batch is finalized
func (h *EventHandler) SetAfterBatch(fn func(domain.ItemType, domain.Operation) tea.Cmd) {
	h.afterBatch = fn
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ErrorEvent:
		h.state.StatusMessage = fmt.Sprintf("Error: %s", e.Message)

	case eventbus.MutationFailedEvent:
		h.failures[e.BatchID]++
		log.Printf("%s %s %d failed: %v", e.Operation, e.ItemType, e.ID, e.Err)
		h.state.StatusMessage = fmt.Sprintf("Could not %s %s %d: %v", e.Operation, e.ItemType, e.ID, e.Err)

	case eventbus.RestoreFallbackEvent:
		log.Printf("restore: %s %d has no original id on record, using the row key", e.ItemType, e.ID)

	case eventbus.BatchStartedEvent:
		if e.Partial {
			h.state.StatusMessage = fmt.Sprintf("Processing %d of %d selected %s", e.Count, e.Total, e.ItemType.Plural())
		} else {
			h.state.StatusMessage = fmt.Sprintf("Processing %d %s", e.Count, e.ItemType.Noun(e.Count))
		}

	case eventbus.BatchSettledEvent:
		if e.Failed > 0 {
			h.failures[e.BatchID] = e.Failed
			h.state.StatusMessage = fmt.Sprintf("%s: %d done, %d failed (ctrl+r to reload)", e.Operation, e.Succeeded, e.Failed)
		}

	case eventbus.BatchFinalizedEvent:
		failed := h.failures[e.BatchID]
		delete(h.failures, e.BatchID)
		// With failures the failure message stays up
		if failed == 0 {
			msg := fmt.Sprintf("%s %d %s", pastTense(e.Operation), e.Processed, e.ItemType.Noun(e.Processed))
			if e.Remaining > 0 {
				msg += fmt.Sprintf(", %d still selected", e.Remaining)
			}
			h.state.StatusMessage = msg
		}
		if h.afterBatch != nil {
			return h.afterBatch(e.ItemType, e.Operation)
		}

	case eventbus.BatchCancelledEvent:
		delete(h.failures, e.BatchID)
		h.state.StatusMessage = "Cancelled: " + e.Reason

	case eventbus.ItemsChangedEvent:
		if h.reload != nil {
			return h.reload(e.ItemType)
		}

	case eventbus.ConfigSavedEvent:
		h.state.StatusMessage = "Config saved to " + e.Path
	}

	return nil
}

func pastTense(op domain.Operation) string {
	switch op {
	case domain.OpRestore:
		return "Restored"
	case domain.OpPurge:
		return "Purged"
	default:
		return "Moved to bin:"
	}
}
