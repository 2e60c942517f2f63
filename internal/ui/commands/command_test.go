package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"memodeck/internal/bulk"
	"memodeck/internal/domain"
	"memodeck/internal/logic"
	"memodeck/internal/ui/state"
)

var (
	activeMemos = bulk.TabKey{ItemType: domain.ItemMemo, Tab: domain.TabActive}
	memoBin     = bulk.TabKey{ItemType: domain.ItemMemo, Tab: domain.TabDeleted}
	doingTasks  = bulk.TabKey{ItemType: domain.ItemTask, Tab: domain.TabDoing}
)

func newContext(t *testing.T) (*CommandContext, *logic.MemoryItemStore) {
	t.Helper()
	store := logic.NewMemoryItemStore()
	sel := bulk.NewSelectionStore()
	orch := bulk.New(bulk.Deps{
		Order:     &bulk.RenderedRows{},
		Selection: sel,
		Scheduler: bulk.NewManualClock(),
	}, bulk.DefaultSettings())
	return &CommandContext{
		Ctx:          context.Background(),
		State:        state.NewAppState(),
		Store:        store,
		Orchestrator: orch,
		Selection:    sel,
	}, store
}

func TestLoadTabPerKind(t *testing.T) {
	ctx, store := newContext(t)
	bg := context.Background()

	_, err := store.CreateMemo(bg, "First", "body")
	require.NoError(t, err)
	gone, err := store.CreateMemo(bg, "Second", "")
	require.NoError(t, err)
	_, err = store.CreateTask(bg, "Ship it", domain.StatusDoing)
	require.NoError(t, err)
	_, err = store.CreateTask(bg, "Later", domain.StatusTodo)
	require.NoError(t, err)
	require.NoError(t, store.Delete(bg, domain.ItemMemo, gone.ID))

	items, err := LoadTab(bg, store, activeMemos)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "First", items[0].Title)
	require.Equal(t, "body", items[0].Body)

	items, err = LoadTab(bg, store, memoBin)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Second", items[0].Title)
	require.False(t, items[0].DeletedAt.IsZero(), "Bin rows carry the deletion time")

	items, err = LoadTab(bg, store, doingTasks)
	require.NoError(t, err)
	require.Len(t, items, 1, "Task tabs only list their own column")
	require.Equal(t, domain.StatusDoing, items[0].Status)

	cmd := NewExecutor(ctx).ExecuteLoad(activeMemos)
	require.True(t, ctx.State.Loading[activeMemos], "Tab should be marked loading until the result arrives")
	msg := cmd().(ItemsLoadedMsg)
	require.NoError(t, msg.Err)
	require.Equal(t, activeMemos, msg.Key)
	require.Len(t, msg.Items, 1)
}

func TestCreateOnTab(t *testing.T) {
	ctx, store := newContext(t)
	ex := NewExecutor(ctx)

	require.Nil(t, ex.ExecuteCreate(activeMemos, ""), "Blank titles are ignored")

	msg := ex.ExecuteCreate(doingTasks, "Review")().(ItemChangedMsg)
	require.NoError(t, msg.Err)
	require.Equal(t, domain.ItemTask, msg.ItemType)
	require.Equal(t, "Added task 1", msg.Message)

	tasks, err := store.ListTasks(context.Background(), domain.StatusDoing)
	require.NoError(t, err)
	require.Len(t, tasks, 1, "New task lands in the column it was typed on")
}

func TestAdvanceStatus(t *testing.T) {
	require.Equal(t, domain.StatusDoing, NextStatus(domain.StatusTodo))
	require.Equal(t, domain.StatusDone, NextStatus(domain.StatusDoing))
	require.Equal(t, domain.StatusTodo, NextStatus(domain.StatusDone), "Done wraps back to todo")

	ctx, store := newContext(t)
	task, err := store.CreateTask(context.Background(), "Deploy", domain.StatusTodo)
	require.NoError(t, err)

	msg := NewExecutor(ctx).ExecuteAdvance(state.ListItem{ID: task.ID, ItemType: domain.ItemTask, Title: "Deploy", Status: domain.StatusTodo})().(ItemChangedMsg)
	require.NoError(t, msg.Err)
	require.Equal(t, `Moved "Deploy" to doing`, msg.Message)

	tasks, err := store.ListTasks(context.Background(), domain.StatusDoing)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}

func TestSelectionCommands(t *testing.T) {
	ctx, _ := newContext(t)
	ex := NewExecutor(ctx)
	ctx.State.Visible = []state.ListItem{{ID: 3}, {ID: 1}, {ID: 2}}

	ex.ExecuteToggleSelection(1)
	require.True(t, ctx.Selection.IsSelected(activeMemos, 1))
	ex.ExecuteToggleSelection(1)
	require.False(t, ctx.Selection.IsSelected(activeMemos, 1), "Second toggle deselects")

	ex.ExecuteSelectAll()
	require.Equal(t, 3, ctx.Selection.Count(activeMemos))
	require.Equal(t, "Selected 3 memos", ctx.State.StatusMessage)

	ex.ExecuteSelectAll()
	require.Zero(t, ctx.Selection.Count(activeMemos), "Select all toggles off when everything is selected")
}
