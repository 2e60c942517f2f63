package ui

import (
	"memodeck/internal/bulk"
	"memodeck/internal/domain"
	inputtypes "memodeck/internal/ui/input/types"
)

// The model is the orchestrator's presenter and list sink. Every callback
// arrives on the update loop, either from processAction or from a
// timerFiredMsg.

func (m *Model) ShowConfirmation(ids []int, message string) {
	m.state.ConfirmMessage = message
	m.state.ConfirmIDs = ids
	m.inputHandler.EnterMode(inputtypes.ModeConfirm, m.inputContext())
}

func (m *Model) SetLidOpen(open bool) {
	m.state.LidOpen = open
}

func (m *Model) SetProcessing(processing bool) {
	m.state.Processing = processing
}

func (m *Model) SetDisplayCount(n int) {
	m.state.DisplayCount = n
}

func (m *Model) ItemRemoved(itemType domain.ItemType, id int) {
	m.dropItem(itemType, id)
}

func (m *Model) ItemRestored(itemType domain.ItemType, id int) {
	m.dropItem(itemType, id)
}

// dropItem takes id off the current tab. Removal and restore both leave the
// tab the batch ran on.
func (m *Model) dropItem(itemType domain.ItemType, id int) {
	key := m.state.CurrentTab()
	if key.ItemType != itemType {
		return
	}
	if m.state.RemoveItem(key, id) {
		m.refreshVisible()
	}
}

// onFrame records the convergence progress for the list renderer
func (m *Model) onFrame(f bulk.Frame) {
	m.state.Frame = f
	m.state.Animating = !f.Done
}
