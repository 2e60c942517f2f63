package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"memodeck/internal/bulk"
	"memodeck/internal/domain"
	"memodeck/internal/eventbus"
	"memodeck/internal/logic"
	"memodeck/internal/ui/state"
)

// ItemsLoadedMsg carries the items of one tab read from the store
type ItemsLoadedMsg struct {
	Key   bulk.TabKey
	Items []state.ListItem
	Err   error
}

// ItemChangedMsg reports a single-item write; the tabs of ItemType need reloading
type ItemChangedMsg struct {
	ItemType domain.ItemType
	Message  string
	Err      error
}

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Ctx          context.Context
	State        *state.AppState
	Bus          eventbus.EventBus
	Store        logic.ItemStore
	Orchestrator *bulk.Orchestrator
	Selection    *bulk.SelectionStore
}

// LoadTabCommand reads one tab from the store
type LoadTabCommand struct {
	ctx *CommandContext
	key bulk.TabKey
}

// NewLoadTabCommand creates a new load command
func NewLoadTabCommand(ctx *CommandContext, key bulk.TabKey) *LoadTabCommand {
	return &LoadTabCommand{
		ctx: ctx,
		key: key,
	}
}

// Execute marks the tab loading and reads it in the background
func (c *LoadTabCommand) Execute() tea.Cmd {
	c.ctx.State.Loading[c.key] = true
	store, key, ctx := c.ctx.Store, c.key, c.ctx.Ctx
	return func() tea.Msg {
		items, err := LoadTab(ctx, store, key)
		return ItemsLoadedMsg{Key: key, Items: items, Err: err}
	}
}

// LoadTab reads the items shown on tab key
func LoadTab(ctx context.Context, store logic.ItemStore, key bulk.TabKey) ([]state.ListItem, error) {
	if key.Tab == domain.TabDeleted {
		deleted, err := store.ListDeleted(ctx, key.ItemType)
		if err != nil {
			return nil, err
		}
		items := make([]state.ListItem, len(deleted))
		for i, d := range deleted {
			items[i] = state.ListItem{
				ID:        d.ID,
				ItemType:  d.ItemType,
				Title:     d.Title,
				Body:      d.Body,
				Status:    d.Status,
				CreatedAt: d.CreatedAt,
				DeletedAt: d.DeletedAt,
			}
		}
		return items, nil
	}

	if key.ItemType == domain.ItemMemo {
		memos, err := store.ListMemos(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]state.ListItem, len(memos))
		for i, m := range memos {
			items[i] = state.ListItem{
				ID:        m.ID,
				ItemType:  domain.ItemMemo,
				Title:     m.Title,
				Body:      m.Body,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			}
		}
		return items, nil
	}

	tasks, err := store.ListTasks(ctx, domain.TaskStatus(key.Tab))
	if err != nil {
		return nil, err
	}
	items := make([]state.ListItem, len(tasks))
	for i, t := range tasks {
		items[i] = state.ListItem{
			ID:        t.ID,
			ItemType:  domain.ItemTask,
			Title:     t.Title,
			Status:    t.Status,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		}
	}
	return items, nil
}

// CreateItemCommand adds a memo or a task to the tab it was typed on
type CreateItemCommand struct {
	ctx   *CommandContext
	key   bulk.TabKey
	title string
}

// NewCreateItemCommand creates a new create command
func NewCreateItemCommand(ctx *CommandContext, key bulk.TabKey, title string) *CreateItemCommand {
	return &CreateItemCommand{
		ctx:   ctx,
		key:   key,
		title: title,
	}
}

// Execute writes the item in the background
func (c *CreateItemCommand) Execute() tea.Cmd {
	if c.title == "" {
		return nil
	}
	store, key, title, ctx := c.ctx.Store, c.key, c.title, c.ctx.Ctx
	return func() tea.Msg {
		if key.ItemType == domain.ItemMemo {
			m, err := store.CreateMemo(ctx, title, "")
			return ItemChangedMsg{ItemType: key.ItemType, Message: fmt.Sprintf("Added memo %d", m.ID), Err: err}
		}
		t, err := store.CreateTask(ctx, title, domain.TaskStatus(key.Tab))
		return ItemChangedMsg{ItemType: key.ItemType, Message: fmt.Sprintf("Added task %d", t.ID), Err: err}
	}
}

// AdvanceStatusCommand moves a task to the next column
type AdvanceStatusCommand struct {
	ctx  *CommandContext
	item state.ListItem
}

// NewAdvanceStatusCommand creates a new advance command
func NewAdvanceStatusCommand(ctx *CommandContext, item state.ListItem) *AdvanceStatusCommand {
	return &AdvanceStatusCommand{
		ctx:  ctx,
		item: item,
	}
}

// NextStatus returns the column after s; done wraps back to todo
func NextStatus(s domain.TaskStatus) domain.TaskStatus {
	switch s {
	case domain.StatusTodo:
		return domain.StatusDoing
	case domain.StatusDoing:
		return domain.StatusDone
	default:
		return domain.StatusTodo
	}
}

// Execute writes the new status in the background
func (c *AdvanceStatusCommand) Execute() tea.Cmd {
	store, item, ctx := c.ctx.Store, c.item, c.ctx.Ctx
	next := NextStatus(item.Status)
	return func() tea.Msg {
		err := store.SetTaskStatus(ctx, item.ID, next)
		return ItemChangedMsg{
			ItemType: domain.ItemTask,
			Message:  fmt.Sprintf("Moved %q to %s", item.Title, next),
			Err:      err,
		}
	}
}

// ToggleSelectionCommand toggles one item on the current tab
type ToggleSelectionCommand struct {
	ctx *CommandContext
	id  int
}

// NewToggleSelectionCommand creates a new toggle selection command
func NewToggleSelectionCommand(ctx *CommandContext, id int) *ToggleSelectionCommand {
	return &ToggleSelectionCommand{
		ctx: ctx,
		id:  id,
	}
}

// Execute toggles the selection
func (c *ToggleSelectionCommand) Execute() tea.Cmd {
	c.ctx.Selection.Toggle(c.ctx.State.CurrentTab(), c.id)
	return nil
}

// SelectAllCommand toggles select all on the current tab
type SelectAllCommand struct {
	ctx *CommandContext
}

// NewSelectAllCommand creates a new select all command
func NewSelectAllCommand(ctx *CommandContext) *SelectAllCommand {
	return &SelectAllCommand{ctx: ctx}
}

// Execute selects every visible item, or clears when all are selected
func (c *SelectAllCommand) Execute() tea.Cmd {
	key := c.ctx.State.CurrentTab()
	ids := c.ctx.State.VisibleIDs()
	if c.ctx.Orchestrator.IsAllSelected(key, ids) {
		c.ctx.Selection.Clear(key)
		return nil
	}
	c.ctx.Orchestrator.SelectAll(key, ids)
	c.ctx.State.StatusMessage = fmt.Sprintf("Selected %d %s", len(ids), key.ItemType.Noun(len(ids)))
	return nil
}
