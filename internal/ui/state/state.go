package state

import (
	"time"

	"memodeck/internal/bulk"
	"memodeck/internal/domain"
)

// ListItem is one row of a tab: a memo, a task or a deleted item
type ListItem struct {
	ID        int
	ItemType  domain.ItemType
	Title     string
	Body      string
	Status    domain.TaskStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt time.Time
}

// DefaultTabs are the tabs in display order
var DefaultTabs = []bulk.TabKey{
	{ItemType: domain.ItemMemo, Tab: domain.TabActive},
	{ItemType: domain.ItemMemo, Tab: domain.TabDeleted},
	{ItemType: domain.ItemTask, Tab: domain.TabTodo},
	{ItemType: domain.ItemTask, Tab: domain.TabDoing},
	{ItemType: domain.ItemTask, Tab: domain.TabDone},
	{ItemType: domain.ItemTask, Tab: domain.TabDeleted},
}

// AppState contains all the application state
type AppState struct {
	// Tab data
	Tabs      []bulk.TabKey
	ActiveTab int
	Items     map[bulk.TabKey][]ListItem // as loaded from the store
	Visible   []ListItem                 // active tab after filter and sort
	Loading   map[bulk.TabKey]bool

	// Cursor state
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int

	// Bin control
	LidOpen      bool
	Processing   bool
	DisplayCount int
	Frame        bulk.Frame
	Animating    bool

	// Pending confirmation
	ConfirmMessage string
	ConfirmIDs     []int

	// UI state
	StatusMessage string
	FilterQuery   string
	ShowHelp      bool
	ShowPreview   bool
	PreviewBody   string
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Tabs:           DefaultTabs,
		Items:          make(map[bulk.TabKey][]ListItem),
		Loading:        make(map[bulk.TabKey]bool),
		ViewportHeight: 20, // Default
	}
}

// CurrentTab returns the key of the active tab
func (s *AppState) CurrentTab() bulk.TabKey {
	return s.Tabs[s.ActiveTab]
}

// SetItems replaces the loaded items of key
func (s *AppState) SetItems(key bulk.TabKey, items []ListItem) {
	s.Items[key] = items
	delete(s.Loading, key)
}

// RemoveItem drops id from the loaded items of key
func (s *AppState) RemoveItem(key bulk.TabKey, id int) bool {
	items := s.Items[key]
	for i, it := range items {
		if it.ID == id {
			s.Items[key] = append(items[:i], items[i+1:]...)
			return true
		}
	}
	return false
}

// ItemAt returns the visible item at index
func (s *AppState) ItemAt(index int) (ListItem, bool) {
	if index < 0 || index >= len(s.Visible) {
		return ListItem{}, false
	}
	return s.Visible[index], true
}

// VisibleIDs returns the identifiers of the visible list in order
func (s *AppState) VisibleIDs() []int {
	ids := make([]int, len(s.Visible))
	for i, it := range s.Visible {
		ids[i] = it.ID
	}
	return ids
}

// LoadedIDs returns the identifiers loaded for key, ignoring the filter
func (s *AppState) LoadedIDs(key bulk.TabKey) []int {
	items := s.Items[key]
	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// ClampCursor keeps the cursor inside the visible list
func (s *AppState) ClampCursor() {
	if s.SelectedIndex >= len(s.Visible) {
		s.SelectedIndex = len(s.Visible) - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
}

// ClearConfirmation drops the pending prompt
func (s *AppState) ClearConfirmation() {
	s.ConfirmMessage = ""
	s.ConfirmIDs = nil
}

// InFlight reports whether id is part of the running animation, and whether
// it has already landed
func (s *AppState) InFlight(id int) (flying, landed bool) {
	if !s.Animating {
		return false, false
	}
	for i, v := range s.Frame.IDs {
		if v == id {
			return true, i < s.Frame.Landed
		}
	}
	return false, false
}
