package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"memodeck/internal/bulk"
	"memodeck/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(ctx *CommandContext) *Executor {
	return &Executor{ctx: ctx}
}

// ExecuteLoad creates and executes a load command
func (e *Executor) ExecuteLoad(key bulk.TabKey) tea.Cmd {
	return NewLoadTabCommand(e.ctx, key).Execute()
}

// ExecuteCreate creates and executes a create command
func (e *Executor) ExecuteCreate(key bulk.TabKey, title string) tea.Cmd {
	return NewCreateItemCommand(e.ctx, key, title).Execute()
}

// ExecuteAdvance creates and executes an advance status command
func (e *Executor) ExecuteAdvance(item state.ListItem) tea.Cmd {
	return NewAdvanceStatusCommand(e.ctx, item).Execute()
}

// ExecuteToggleSelection creates and executes a toggle selection command
func (e *Executor) ExecuteToggleSelection(id int) tea.Cmd {
	return NewToggleSelectionCommand(e.ctx, id).Execute()
}

// ExecuteSelectAll creates and executes a select all command
func (e *Executor) ExecuteSelectAll() tea.Cmd {
	return NewSelectAllCommand(e.ctx).Execute()
}
