package views

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"memodeck/internal/domain"
	"memodeck/internal/ui/state"
)

func plain(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func sampleItems(n int) []state.ListItem {
	items := make([]state.ListItem, n)
	for i := range items {
		items[i] = state.ListItem{ID: i + 1, ItemType: domain.ItemMemo, Title: fmt.Sprintf("Memo %d", i+1)}
	}
	return items
}

func TestRenderShowsTabsListAndFooter(t *testing.T) {
	r := NewRenderer(false)
	out := plain(r.Render(ViewState{
		Width:          100,
		Height:         30,
		Tabs:           []TabInfo{{Label: "Memos", Count: 3, Active: true}, {Label: "Memo bin", Count: 0}},
		Items:          sampleItems(3),
		ViewportHeight: 10,
		StatusMessage:  "Moved to bin: 2 memos",
		FilterQuery:    "memo",
	}))

	require.Contains(t, out, "memodeck")
	require.Contains(t, out, "Memos (3)")
	require.Contains(t, out, "Memo bin (0)")
	require.Contains(t, out, "Memo 3")
	require.Contains(t, out, "[Filter: memo]")
	require.Contains(t, out, "Moved to bin: 2 memos")
	require.Contains(t, out, "Press ? for help")
}

func TestRenderConfirmationPrompt(t *testing.T) {
	r := NewRenderer(false)
	out := plain(r.Render(ViewState{Width: 80, Height: 24, Items: sampleItems(1), ConfirmMessage: "Purge 1 memo?"}))
	require.Contains(t, out, "Purge 1 memo? (y/n)")
}

func TestRenderEmptyAndLoading(t *testing.T) {
	r := NewRenderer(false)
	require.Contains(t, plain(r.Render(ViewState{Width: 80, Height: 24, Loading: true})), "Loading...")
	require.Contains(t, plain(r.Render(ViewState{Width: 80, Height: 24, EmptyHint: "The bin is empty"})), "The bin is empty")
}

func TestScrollIndicators(t *testing.T) {
	r := NewRenderer(false)
	out := plain(r.Render(ViewState{
		Width:          80,
		Height:         40,
		Items:          sampleItems(20),
		ViewportOffset: 5,
		ViewportHeight: 6,
	}))
	require.Contains(t, out, "↑ 5 more above ↑")
	require.Contains(t, out, "↓ 11 more below ↓")
	require.Contains(t, out, "Memo 6")
	require.NotContains(t, out, "Memo 5", "Rows above the offset are hidden")
	require.NotContains(t, out, "Memo 10", "Rows below the window are hidden")
}

func TestBinBadgeAndLid(t *testing.T) {
	b := NewBinRenderer(NewStyles())

	closed := plain(b.RenderBin(BinView{}))
	require.Equal(t, "▁▁▁ bin", closed, "Empty closed bin has no badge")

	open := plain(b.RenderBin(BinView{LidOpen: true, Processing: true, Spinner: "⣾", DisplayCount: 999}))
	require.True(t, strings.HasPrefix(open, "⣾ ╱ ╲ bin"), "Spinner leads while processing")
	require.Equal(t, "999", strings.TrimSpace(strings.TrimPrefix(open, "⣾ ╱ ╲ bin")), "Badge shows the display count")

	over := plain(b.RenderBin(BinView{DisplayCount: 1500, CountCap: 999}))
	require.Equal(t, "999+", strings.TrimSpace(strings.TrimPrefix(over, "▁▁▁ bin")), "Counts above the cap get a fixed label")
}

func TestItemRowFlags(t *testing.T) {
	ir := NewItemRenderer(NewStyles())
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ir.now = func() time.Time { return now }
	item := state.ListItem{ID: 4, Title: "Write report", Status: domain.StatusTodo, CreatedAt: now.Add(-2 * time.Hour)}

	row := plain(ir.RenderItem(ItemRow{Item: item, MultiSelect: true, Selected: true}, "", 0))
	require.True(t, strings.HasPrefix(row, "[x] "), "Selected rows are ticked")
	require.Contains(t, row, "todo")
	require.Contains(t, row, "2 hours ago")

	row = plain(ir.RenderItem(ItemRow{Item: item, Flying: true}, "", 0))
	require.Contains(t, row, "» ")

	row = plain(ir.RenderItem(ItemRow{Item: item, Landed: true}, "", 0))
	require.Equal(t, "Write report", strings.TrimSpace(row), "Landed rows show only the dimmed title")
	require.NotContains(t, row, "todo")

	deleted := item
	deleted.DeletedAt = now.Add(-3 * 24 * time.Hour)
	require.Contains(t, plain(ir.RenderItem(ItemRow{Item: deleted}, "", 0)), "deleted 3 days ago")
}

func TestTitleFormatting(t *testing.T) {
	ir := NewItemRenderer(NewStyles())
	require.Equal(t, "(untitled)", ir.formatTitle(""))
	long := strings.Repeat("x", 80)
	require.Len(t, []rune(ir.formatTitle(long)), 60, "Long titles are cut with an ellipsis")
	require.Empty(t, plainQuery("status:done"), "Status filters never highlight")
}

func TestPopupOverlayCentres(t *testing.T) {
	pr := NewPopupRenderer(NewStyles())
	out := pr.RenderPopupOverlay("a\nb\nc\nd\ne", "HELP", 5, 20, lipgloss.NewStyle())
	lines := strings.Split(plain(out), "\n")
	require.Len(t, lines, 5)
	require.Contains(t, lines[2], "HELP", "Single line popup sits in the middle row")
}

func TestPreviewWithoutMarkdown(t *testing.T) {
	p := NewPreviewRenderer(false)
	require.Equal(t, "# Title\n\nbody", p.Render("Title", "body", 40))
}
