package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"memodeck/internal/bulk"
	"memodeck/internal/domain"
	"memodeck/internal/ui/input/types"
)

type fakeContext struct {
	index    int
	total    int
	selected int
	tab      bulk.TabKey
	busy     bool
	query    string
	preview  bool
}

func (c fakeContext) CurrentIndex() int { return c.index }
func (c fakeContext) TotalItems() int { return c.total }
func (c fakeContext) HasSelection() bool { return c.selected > 0 }
func (c fakeContext) SelectedCount() int { return c.selected }
func (c fakeContext) CurrentTab() bulk.TabKey { return c.tab }
func (c fakeContext) Busy() bool { return c.busy }
func (c fakeContext) FilterQuery() string { return c.query }
func (c fakeContext) PreviewOpen() bool { return c.preview }

var (
	activeMemos = bulk.TabKey{ItemType: domain.ItemMemo, Tab: domain.TabActive}
	memoBin     = bulk.TabKey{ItemType: domain.ItemMemo, Tab: domain.TabDeleted}
	todoTasks   = bulk.TabKey{ItemType: domain.ItemTask, Tab: domain.TabTodo}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDeleteKeyDependsOnTab(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("d"), fakeContext{total: 3, tab: activeMemos})
	require.Equal(t, []types.Action{types.BulkAction{Operation: domain.OpDelete}}, actions)

	actions, _ = h.HandleKey(runes("d"), fakeContext{total: 3, tab: memoBin})
	require.Equal(t, []types.Action{types.BulkAction{Operation: domain.OpPurge}}, actions, "d should purge inside the bin")

	actions, _ = h.HandleKey(runes("u"), fakeContext{total: 3, tab: activeMemos})
	require.Empty(t, actions, "Restore is only offered in the bin")

	actions, _ = h.HandleKey(runes("u"), fakeContext{total: 3, tab: memoBin})
	require.Equal(t, []types.Action{types.BulkAction{Operation: domain.OpRestore}}, actions)
}

func TestEscapePriority(t *testing.T) {
	h := New()
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	actions, _ := h.HandleKey(esc, fakeContext{tab: activeMemos, preview: true, busy: true, selected: 2})
	require.Equal(t, []types.Action{types.TogglePreviewAction{}}, actions, "Preview closes first")

	actions, _ = h.HandleKey(esc, fakeContext{tab: activeMemos, busy: true, selected: 2})
	require.Equal(t, []types.Action{types.CancelBatchAction{}}, actions, "Then a running batch is cancelled")

	actions, _ = h.HandleKey(esc, fakeContext{tab: activeMemos, selected: 2})
	require.Equal(t, []types.Action{types.DeselectAllAction{}}, actions)
}

func TestSelectAllTogglesOff(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("a"), fakeContext{total: 4, tab: activeMemos})
	require.Equal(t, []types.Action{types.SelectAllAction{}}, actions)

	actions, _ = h.HandleKey(runes("a"), fakeContext{total: 4, selected: 1, tab: activeMemos})
	require.Equal(t, []types.Action{types.DeselectAllAction{}}, actions)
}

func TestAdvanceOnlyOnTaskTabs(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("t"), fakeContext{total: 1, tab: activeMemos})
	require.Empty(t, actions)

	actions, _ = h.HandleKey(runes("t"), fakeContext{total: 1, tab: todoTasks})
	require.Equal(t, []types.Action{types.AdvanceStatusAction{}}, actions)
}

func TestGGJumpsToTop(t *testing.T) {
	h := New()
	ctx := fakeContext{total: 10, tab: activeMemos}

	actions, _ := h.HandleKey(runes("g"), ctx)
	require.Empty(t, actions, "First g waits for the second")

	actions, _ = h.HandleKey(runes("g"), ctx)
	require.Equal(t, []types.Action{types.NavigateAction{Direction: "home"}}, actions)
}

func TestConfirmModeAnswers(t *testing.T) {
	h := New()
	ctx := fakeContext{total: 3, selected: 3, tab: activeMemos, busy: true}
	h.EnterMode(types.ModeConfirm, ctx)
	require.Equal(t, "confirm", h.ModeName())

	actions, _ := h.HandleKey(runes("j"), ctx)
	require.Empty(t, actions, "Other keys are swallowed while confirming")
	require.Equal(t, types.ModeConfirm, h.CurrentMode())

	actions, _ = h.HandleKey(runes("y"), ctx)
	require.Equal(t, []types.Action{types.ConfirmBatchAction{}}, actions)
	require.Equal(t, types.ModeNormal, h.CurrentMode(), "Answering should return to normal mode")

	h.EnterMode(types.ModeConfirm, ctx)
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	require.Equal(t, []types.Action{types.DeclineBatchAction{}}, actions)
}

func TestFilterModeEditsAndSubmits(t *testing.T) {
	h := New()
	ctx := fakeContext{total: 3, tab: activeMemos, query: "old"}

	actions, cmd := h.HandleKey(runes("/"), ctx)
	require.Empty(t, actions)
	require.NotNil(t, cmd, "Entering a text mode should start the cursor blink")
	require.Equal(t, types.ModeFilter, h.CurrentMode())
	require.Equal(t, "Filter: ", h.Prompt())
	require.NotNil(t, h.TextInput())
	require.Equal(t, "old", h.TextInput().Value(), "Current query should be prefilled")

	actions, _ = h.HandleKey(runes("x"), ctx)
	require.Equal(t, []types.Action{types.UpdateTextAction{Text: "oldx"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	require.Equal(t, []types.Action{types.SubmitTextAction{Text: "oldx", Mode: types.ModeFilter}}, actions)
	require.Equal(t, types.ModeNormal, h.CurrentMode())
	require.Nil(t, h.TextInput(), "No text input outside text modes")
}

func TestNewItemCancel(t *testing.T) {
	h := New()
	ctx := fakeContext{tab: todoTasks}

	h.HandleKey(runes("n"), ctx)
	require.Equal(t, types.ModeNewItem, h.CurrentMode())
	h.HandleKey(runes("a"), ctx)

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	require.Equal(t, []types.Action{types.CancelTextAction{Mode: types.ModeNewItem}}, actions)
	require.Equal(t, types.ModeNormal, h.CurrentMode())

	_, _ = h.HandleKey(runes("n"), fakeContext{tab: memoBin})
	require.Equal(t, types.ModeNormal, h.CurrentMode(), "Nothing is created inside the bin")
}
