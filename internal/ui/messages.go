package ui

import (
	"memodeck/internal/bulk"
	"memodeck/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// clearStatusMsg clears the status line unless a newer message replaced it
type clearStatusMsg struct {
	message string
}

// flightSettledMsg arrives once the mutations of a cancelled batch returned
type flightSettledMsg struct {
	desc bulk.Descriptor
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
