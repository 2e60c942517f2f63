package input

import (
	"memodeck/internal/bulk"
	"memodeck/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State        *state.AppState
	Orchestrator *bulk.Orchestrator
	Selection    *bulk.SelectionStore
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalItems returns the number of visible items
func (c *ModelContext) TotalItems() int {
	return len(c.State.Visible)
}

// HasSelection returns true if any items are selected on the current tab
func (c *ModelContext) HasSelection() bool {
	return c.SelectedCount() > 0
}

// SelectedCount returns the number of selected items on the current tab
func (c *ModelContext) SelectedCount() int {
	return c.Selection.Count(c.State.CurrentTab())
}

func (c *ModelContext) CurrentTab() bulk.TabKey {
	return c.State.CurrentTab()
}

func (c *ModelContext) Busy() bool {
	return c.Orchestrator != nil && c.Orchestrator.Busy()
}

func (c *ModelContext) FilterQuery() string {
	return c.State.FilterQuery
}

func (c *ModelContext) PreviewOpen() bool {
	return c.State.ShowPreview
}
