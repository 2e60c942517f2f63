package modes

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"memodeck/internal/bulk"
	"memodeck/internal/domain"
	"memodeck/internal/ui/input/types"
)

type NormalMode struct {
	keys        types.KeyMap
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{keys: types.Keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	if msg.String() == "g" {
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top (within timeout)
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		// First g, wait for next key
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true
	}
	// Any other key cancels the 'g' prefix
	m.lastKeyWasG = false

	tab := ctx.CurrentTab()
	switch {
	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, m.keys.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case key.Matches(msg, m.keys.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case key.Matches(msg, m.keys.Bottom):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case msg.Type == tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case key.Matches(msg, m.keys.NextTab):
		return []types.Action{types.SwitchTabAction{Delta: 1}}, true
	case key.Matches(msg, m.keys.PrevTab):
		return []types.Action{types.SwitchTabAction{Delta: -1}}, true

	case key.Matches(msg, m.keys.Toggle):
		if ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{types.SelectAction{Index: -1}}, true

	case key.Matches(msg, m.keys.SelectAll):
		// Toggle select all
		if ctx.HasSelection() {
			return []types.Action{types.DeselectAllAction{}}, true
		}
		return []types.Action{types.SelectAllAction{}}, true

	case key.Matches(msg, m.keys.ClearSel):
		if ctx.PreviewOpen() {
			return []types.Action{types.TogglePreviewAction{}}, true
		}
		if ctx.Busy() {
			return []types.Action{types.CancelBatchAction{}}, true
		}
		if ctx.HasSelection() {
			return []types.Action{types.DeselectAllAction{}}, true
		}
		return nil, true // Consume the key even if no action

	case key.Matches(msg, m.keys.Delete):
		// On a deleted tab d means purge
		op := domain.OpDelete
		if tab.Tab == domain.TabDeleted {
			op = domain.OpPurge
		}
		return bulkAction(tab, op)
	case key.Matches(msg, m.keys.Purge):
		return bulkAction(tab, domain.OpPurge)
	case key.Matches(msg, m.keys.Restore):
		return bulkAction(tab, domain.OpRestore)
	case key.Matches(msg, m.keys.CancelBatch):
		if ctx.Busy() {
			return []types.Action{types.CancelBatchAction{}}, true
		}
		return nil, true

	case key.Matches(msg, m.keys.NewItem):
		if tab.Tab == domain.TabDeleted {
			return nil, false
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNewItem}}, true
	case key.Matches(msg, m.keys.Advance):
		if tab.ItemType != domain.ItemTask || tab.Tab == domain.TabDeleted || ctx.TotalItems() == 0 {
			return nil, false
		}
		return []types.Action{types.AdvanceStatusAction{}}, true
	case key.Matches(msg, m.keys.Preview):
		if ctx.TotalItems() == 0 && !ctx.PreviewOpen() {
			return nil, false
		}
		return []types.Action{types.TogglePreviewAction{}}, true

	case key.Matches(msg, m.keys.Filter):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter, Data: ctx.FilterQuery()}}, true
	case key.Matches(msg, m.keys.Sort):
		return []types.Action{types.CycleSortAction{}}, true
	case key.Matches(msg, m.keys.Refresh):
		return []types.Action{types.RefreshAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}

func bulkAction(tab bulk.TabKey, op domain.Operation) ([]types.Action, bool) {
	if !bulk.Allowed(tab.Tab, op) {
		return nil, false
	}
	return []types.Action{types.BulkAction{Operation: op}}, true
}
