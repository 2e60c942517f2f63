package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the normal mode bindings. It also feeds the help bar.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Bottom      key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	Toggle      key.Binding
	SelectAll   key.Binding
	ClearSel    key.Binding
	Delete      key.Binding
	Purge       key.Binding
	Restore     key.Binding
	NewItem     key.Binding
	Advance     key.Binding
	Preview     key.Binding
	Filter      key.Binding
	Sort        key.Binding
	Refresh     key.Binding
	CancelBatch key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// Keys is the default key map
var Keys = KeyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	NextTab:     key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
	PrevTab:     key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
	Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	SelectAll:   key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a", "select all")),
	ClearSel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	Delete:      key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "move to bin")),
	Purge:       key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "purge")),
	Restore:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "restore")),
	NewItem:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Advance:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "advance task")),
	Preview:     key.NewBinding(key.WithKeys("enter", "p"), key.WithHelp("enter", "preview")),
	Filter:      key.NewBinding(key.WithKeys("/", "F"), key.WithHelp("/", "filter")),
	Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Refresh:     key.NewBinding(key.WithKeys("ctrl+r", "r"), key.WithHelp("ctrl+r", "reload")),
	CancelBatch: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cancel batch")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.Restore, k.NextTab, k.Filter, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Bottom, k.NextTab, k.PrevTab},
		{k.Toggle, k.SelectAll, k.ClearSel},
		{k.Delete, k.Purge, k.Restore, k.CancelBatch},
		{k.NewItem, k.Advance, k.Preview, k.Filter, k.Sort, k.Refresh},
		{k.Help, k.Quit},
	}
}
