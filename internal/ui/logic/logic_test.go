package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"memodeck/internal/domain"
	"memodeck/internal/ui/state"
)

func ids(items []state.ListItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestFilterMatchesTitleBodyAndStatus(t *testing.T) {
	f := NewItemFilter()
	items := []state.ListItem{
		{ID: 1, ItemType: domain.ItemMemo, Title: "Groceries", Body: "milk and eggs"},
		{ID: 2, ItemType: domain.ItemMemo, Title: "Trip", Body: "book the train"},
		{ID: 3, ItemType: domain.ItemTask, Title: "Report", Status: domain.StatusDoing},
		{ID: 4, ItemType: domain.ItemTask, Title: "Review", Status: domain.StatusDone},
	}

	require.Equal(t, []int{1, 2, 3, 4}, ids(f.Apply(items, "")), "Empty query should keep everything")
	require.Equal(t, []int{1}, ids(f.Apply(items, "GROCER")), "Title match should ignore case")
	require.Equal(t, []int{2}, ids(f.Apply(items, "train")), "Body should be searched too")
	require.Equal(t, []int{3}, ids(f.Apply(items, "status:doing")))
	require.Equal(t, []int{3, 4}, ids(f.Apply(items, "status:d")), "Status filter matches by prefix")
	require.False(t, f.MatchesStatusFilter(items[0], "todo"), "Memos carry no status")
}

func TestSortModes(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []state.ListItem{
		{ID: 1, Title: "banana", CreatedAt: base, UpdatedAt: base.Add(3 * time.Hour)},
		{ID: 2, Title: "Apple", CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)},
		{ID: 3, Title: "cherry", CreatedAt: base.Add(time.Hour), UpdatedAt: base},
	}

	SortItems(items, SortByCreated)
	require.Equal(t, []int{3, 2, 1}, ids(items), "Newest first, ties broken by higher id")

	SortItems(items, SortByTitle)
	require.Equal(t, []int{2, 1, 3}, ids(items), "Title sort should ignore case")

	SortItems(items, SortByUpdated)
	require.Equal(t, []int{1, 2, 3}, ids(items))
}

func TestSortDeletedByDeletionTime(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []state.ListItem{
		{ID: 1, CreatedAt: base.Add(time.Hour), DeletedAt: base},
		{ID: 2, CreatedAt: base, DeletedAt: base.Add(time.Hour)},
	}
	SortItems(items, SortByCreated)
	require.Equal(t, []int{2, 1}, ids(items), "Most recently deleted should come first")
}

func TestSortModeCycleAndParse(t *testing.T) {
	require.Equal(t, SortByTitle, SortByCreated.Next())
	require.Equal(t, SortByUpdated, SortByTitle.Next())
	require.Equal(t, SortByCreated, SortByUpdated.Next(), "Cycle should wrap around")

	mode, ok := ParseSortMode(" Title ")
	require.True(t, ok)
	require.Equal(t, SortByTitle, mode)
	_, ok = ParseSortMode("size")
	require.False(t, ok, "Unknown names should be rejected")
	require.Equal(t, "updated", SortByUpdated.String())
}

func TestNavigatorKeepsCursorVisible(t *testing.T) {
	n := NewNavigator()
	n.UpdateState(0, 0, 5, 20)

	sel, off := n.SetSelectedIndex(10)
	require.Equal(t, 10, sel)
	require.Equal(t, 7, off, "Viewport should scroll so the cursor sits above the bottom indicator")

	sel, off = n.Move(-100)
	require.Equal(t, 0, sel, "Cursor should clamp at the top")
	require.Equal(t, 0, off)

	sel, off = n.Page(true)
	require.Equal(t, 3, sel, "Page should move by the height minus overlap")
	require.Equal(t, 0, off)

	sel, off = n.SetSelectedIndex(n.GetMaxIndex())
	require.Equal(t, 19, sel)
	require.Equal(t, 16, off)
}

func TestNavigatorEmptyList(t *testing.T) {
	n := NewNavigator()
	n.UpdateState(3, 2, 5, 0)
	sel, off := n.Move(1)
	require.Zero(t, sel)
	require.Zero(t, off)
}
