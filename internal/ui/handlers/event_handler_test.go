package handlers

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"memodeck/internal/domain"
	"memodeck/internal/eventbus"
	"memodeck/internal/ui/state"
)

func TestBatchLifecycleMessages(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s, nil)

	h.HandleEvent(eventbus.BatchStartedEvent{BatchID: "b1", Operation: domain.OpDelete, ItemType: domain.ItemMemo, Count: 100, Total: 150, Partial: true})
	require.Equal(t, "Processing 100 of 150 selected memos", s.StatusMessage)

	h.HandleEvent(eventbus.BatchSettledEvent{BatchID: "b1", Operation: domain.OpDelete, ItemType: domain.ItemMemo, Succeeded: 100})
	h.HandleEvent(eventbus.BatchFinalizedEvent{BatchID: "b1", Operation: domain.OpDelete, ItemType: domain.ItemMemo, Processed: 100, Remaining: 50})
	require.Equal(t, "Moved to bin: 100 memos, 50 still selected", s.StatusMessage)

	h.HandleEvent(eventbus.BatchFinalizedEvent{BatchID: "b2", Operation: domain.OpRestore, ItemType: domain.ItemTask, Processed: 1})
	require.Equal(t, "Restored 1 task", s.StatusMessage, "Singular noun for one item")
}

func TestFailuresSurviveFinalize(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s, nil)

	h.HandleEvent(eventbus.MutationFailedEvent{BatchID: "b1", Operation: domain.OpPurge, ItemType: domain.ItemMemo, ID: 7, Err: errors.New("locked")})
	require.Equal(t, "Could not purge memo 7: locked", s.StatusMessage)

	h.HandleEvent(eventbus.BatchSettledEvent{BatchID: "b1", Operation: domain.OpPurge, ItemType: domain.ItemMemo, Succeeded: 2, Failed: 1})
	failure := s.StatusMessage
	require.Contains(t, failure, "1 failed")

	h.HandleEvent(eventbus.BatchFinalizedEvent{BatchID: "b1", Operation: domain.OpPurge, ItemType: domain.ItemMemo, Processed: 3})
	require.Equal(t, failure, s.StatusMessage, "Finalize must not hide the failure")

	h.HandleEvent(eventbus.BatchFinalizedEvent{BatchID: "b1", Operation: domain.OpPurge, ItemType: domain.ItemMemo, Processed: 3})
	require.Equal(t, "Purged 3 memos", s.StatusMessage, "Failures are forgotten once reported")
}

func TestSettledAfterFinalizeStillReports(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s, nil)

	h.HandleEvent(eventbus.BatchFinalizedEvent{BatchID: "b1", Operation: domain.OpDelete, ItemType: domain.ItemMemo, Processed: 2})
	h.HandleEvent(eventbus.BatchSettledEvent{BatchID: "b1", Operation: domain.OpDelete, ItemType: domain.ItemMemo, Succeeded: 1, Failed: 1})
	require.Contains(t, s.StatusMessage, "1 failed", "Late failures should still be visible")
}

func TestCancelledClearsFailures(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s, nil)

	h.HandleEvent(eventbus.MutationFailedEvent{BatchID: "b1", Operation: domain.OpDelete, ItemType: domain.ItemMemo, ID: 1, Err: errors.New("x")})
	h.HandleEvent(eventbus.BatchCancelledEvent{BatchID: "b1", Reason: "tab changed"})
	require.Equal(t, "Cancelled: tab changed", s.StatusMessage)

	h.HandleEvent(eventbus.BatchFinalizedEvent{BatchID: "b1", Operation: domain.OpDelete, ItemType: domain.ItemMemo, Processed: 1})
	require.Equal(t, "Moved to bin: 1 memo", s.StatusMessage)
}

func TestItemsChangedAsksForReload(t *testing.T) {
	s := state.NewAppState()
	var reloaded []domain.ItemType
	h := NewEventHandler(s, func(it domain.ItemType) tea.Cmd {
		reloaded = append(reloaded, it)
		return func() tea.Msg { return nil }
	})

	cmd := h.HandleEvent(eventbus.ItemsChangedEvent{ItemType: domain.ItemTask})
	require.NotNil(t, cmd)
	require.Equal(t, []domain.ItemType{domain.ItemTask}, reloaded)

	require.Nil(t, NewEventHandler(s, nil).HandleEvent(eventbus.ItemsChangedEvent{ItemType: domain.ItemMemo}), "No reload without a callback")
}

func TestErrorAndConfigEvents(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s, nil)

	h.HandleEvent(eventbus.ErrorEvent{Message: "disk full"})
	require.Equal(t, "Error: disk full", s.StatusMessage)

	h.HandleEvent(eventbus.ConfigSavedEvent{Path: "/tmp/memodeck.toml"})
	require.Equal(t, "Config saved to /tmp/memodeck.toml", s.StatusMessage)
}

func TestFinalizeRefreshesOtherTabs(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s, nil)

	type call struct {
		itemType domain.ItemType
		op       domain.Operation
	}
	var calls []call
	h.SetAfterBatch(func(it domain.ItemType, op domain.Operation) tea.Cmd {
		calls = append(calls, call{it, op})
		return func() tea.Msg { return nil }
	})

	require.NotNil(t, h.HandleEvent(eventbus.BatchFinalizedEvent{BatchID: "b1", Operation: domain.OpDelete, ItemType: domain.ItemMemo, Processed: 2}))

	h.HandleEvent(eventbus.BatchSettledEvent{BatchID: "b2", Operation: domain.OpRestore, ItemType: domain.ItemTask, Succeeded: 1, Failed: 1})
	require.NotNil(t, h.HandleEvent(eventbus.BatchFinalizedEvent{BatchID: "b2", Operation: domain.OpRestore, ItemType: domain.ItemTask, Processed: 2}),
		"Failed batches still refresh the tabs that did change")
	require.Contains(t, s.StatusMessage, "1 failed")

	require.Equal(t, []call{{domain.ItemMemo, domain.OpDelete}, {domain.ItemTask, domain.OpRestore}}, calls)
}
