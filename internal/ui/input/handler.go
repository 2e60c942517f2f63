package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"memodeck/internal/ui/input/modes"
	"memodeck/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.CharLimit = 200

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeFilter] = modes.NewFilterMode(h.textInput)
	h.modes[types.ModeNewItem] = modes.NewNewItemMode(h.textInput)
	h.modes[types.ModeConfirm] = modes.NewConfirmMode()

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	// If not consumed and we're in text mode, we'll handle it below
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	// Handle mode changes
	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}
		allActions = append(allActions, h.switchMode(changeMode, ctx)...)
		if h.isTextMode(h.currentMode) {
			cmd = textinput.Blink
		}
	}

	// If we're in a text mode and didn't handle the key, pass it to text input
	if h.isTextMode(h.currentMode) && (!consumed || len(actions) == 0) {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		// Always append an update action when in text mode to keep view in sync
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

func (h *Handler) switchMode(change types.ChangeModeAction, ctx types.Context) []types.Action {
	var actions []types.Action

	// Exit current mode
	if current := h.modes[h.currentMode]; current != nil {
		actions = append(actions, current.Exit(ctx)...)
	}

	oldMode := h.currentMode
	h.currentMode = change.Mode

	// Enter new mode
	if next := h.modes[h.currentMode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}

	// Handle text input focus
	if h.isTextMode(h.currentMode) {
		h.textInput.Reset()
		if text, ok := change.Data.(string); ok {
			h.textInput.SetValue(text)
		}
		h.textInput.Focus()
	} else if h.isTextMode(oldMode) {
		h.textInput.Blur()
	}
	return actions
}

// EnterMode switches modes outside of key handling, e.g. when the model
// opens a confirmation prompt
func (h *Handler) EnterMode(mode types.Mode, ctx types.Context) []types.Action {
	if h.currentMode == mode {
		return nil
	}
	return h.switchMode(types.ChangeModeAction{Mode: mode}, ctx)
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if m := h.modes[h.currentMode]; m != nil {
		return m.Name()
	}
	return ""
}

// Prompt returns the prompt of the current text mode
func (h *Handler) Prompt() string {
	if p, ok := h.modes[h.currentMode].(interface{ Prompt() string }); ok {
		return p.Prompt()
	}
	return ""
}

// TextInput returns the shared text input while a text mode is active
func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

func (h *Handler) RegisterMode(mode types.Mode, handler types.ModeHandler) {
	h.modes[mode] = handler
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeFilter, types.ModeNewItem:
		return true
	default:
		return false
	}
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
