package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"

	"memodeck/internal/bulk"
	"memodeck/internal/config"
	"memodeck/internal/domain"
	"memodeck/internal/ui/state"
	"memodeck/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state     *state.AppState
	config    *config.Config
	selection *bulk.SelectionStore
	width     int
	height    int
	help      help.Model

	sortLabel   string
	inputMode   string
	inputPrompt string
	inputText   string
	helpContent string
	spinner     string
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, cfg *config.Config, selection *bulk.SelectionStore) *ViewModel {
	return &ViewModel{
		state:     appState,
		config:    cfg,
		selection: selection,
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// SetHelp sets the help model
func (vm *ViewModel) SetHelp(helpModel help.Model) {
	vm.help = helpModel
}

// SetInput sets the active text mode; an empty mode hides the input line
func (vm *ViewModel) SetInput(mode, prompt, text string) {
	vm.inputMode = mode
	vm.inputPrompt = prompt
	vm.inputText = text
}

func (vm *ViewModel) SetSortLabel(label string) { vm.sortLabel = label }

func (vm *ViewModel) SetHelpContent(content string) { vm.helpContent = content }

func (vm *ViewModel) SetSpinner(view string) { vm.spinner = view }

// TabLabel returns the header of a tab
func TabLabel(key bulk.TabKey) string {
	switch {
	case key.ItemType == domain.ItemMemo && key.Tab == domain.TabActive:
		return "Memos"
	case key.ItemType == domain.ItemMemo:
		return "Memo bin"
	case key.Tab == domain.TabDeleted:
		return "Task bin"
	case key.Tab == domain.TabTodo:
		return "Todo"
	case key.Tab == domain.TabDoing:
		return "Doing"
	default:
		return "Done"
	}
}

func emptyHint(key bulk.TabKey) string {
	if key.Tab == domain.TabDeleted {
		return "The bin is empty."
	}
	return "Nothing here yet. Press n to add one."
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	key := vm.state.CurrentTab()

	tabs := make([]views.TabInfo, len(vm.state.Tabs))
	for i, t := range vm.state.Tabs {
		tabs[i] = views.TabInfo{
			Label:  TabLabel(t),
			Count:  len(vm.state.Items[t]),
			Active: i == vm.state.ActiveTab,
		}
	}

	selected := make(map[int]bool)
	for _, id := range vm.selection.Selected(key) {
		selected[id] = true
	}

	flying := make(map[int]bool)
	landed := make(map[int]bool)
	if vm.state.Animating {
		for i, id := range vm.state.Frame.IDs {
			if i < vm.state.Frame.Landed {
				landed[id] = true
			} else {
				flying[id] = true
			}
		}
	}

	vs := views.ViewState{
		Width:          vm.width,
		Height:         vm.height,
		Tabs:           tabs,
		Items:          vm.state.Visible,
		Selected:       selected,
		Flying:         flying,
		Landed:         landed,
		SelectedIndex:  vm.state.SelectedIndex,
		ViewportOffset: vm.state.ViewportOffset,
		ViewportHeight: vm.state.ViewportHeight,
		Loading:        vm.state.Loading[key],
		EmptyHint:      emptyHint(key),
		StatusMessage:  vm.state.StatusMessage,
		FilterQuery:    vm.state.FilterQuery,
		SortLabel:      vm.sortLabel,
		Bin: views.BinView{
			LidOpen:      vm.state.LidOpen,
			Processing:   vm.state.Processing,
			DisplayCount: vm.state.DisplayCount,
			Spinner:      vm.spinner,
		},
		ConfirmMessage: vm.state.ConfirmMessage,
		InputMode:      vm.inputMode,
		InputPrompt:    vm.inputPrompt,
		TextInput:      vm.inputText,
		ShowHelp:       vm.state.ShowHelp,
		HelpContent:    vm.helpContent,
		HelpModel:      vm.help,
		ShowPreview:    vm.state.ShowPreview,
	}
	if vm.config != nil {
		vs.Bin.CountCap = vm.config.Bulk.CountCap
		vs.ShowHelpBar = vm.config.UISettings.ShowHelpBar
	}
	if vm.state.ShowPreview {
		if item, ok := vm.state.ItemAt(vm.state.SelectedIndex); ok {
			vs.PreviewItem = item
		} else {
			vs.ShowPreview = false
		}
	}
	return vs
}
