package modes

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"memodeck/internal/ui/input/types"
)

// TextField describes the line a text mode edits
type TextField struct {
	Prompt      string
	Placeholder string
	CharLimit   int
}

// TextInputMode is shared by the modes that edit one line of text. The
// textinput model is owned by the handler; the mode only configures it.
type TextInputMode struct {
	mode  types.Mode
	name  string
	field TextField
	input *textinput.Model
}

func NewTextInputMode(mode types.Mode, name string, field TextField, ti *textinput.Model) TextInputMode {
	return TextInputMode{
		mode:  mode,
		name:  name,
		field: field,
		input: ti,
	}
}

func (m TextInputMode) Name() string {
	return m.name
}

func (m TextInputMode) Prompt() string {
	return m.field.Prompt
}

func (m TextInputMode) Enter(ctx types.Context) []types.Action {
	if m.input == nil {
		return nil
	}
	m.input.Reset()
	m.input.Prompt = "" // drawn by the view next to the confirm line
	m.input.Placeholder = m.field.Placeholder
	m.input.CharLimit = m.field.CharLimit
	m.input.Focus()
	return nil
}

func (m TextInputMode) Exit(ctx types.Context) []types.Action {
	if m.input != nil {
		m.input.Blur()
		m.input.Reset()
	}
	return nil
}

func (m TextInputMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.CancelTextAction{Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "enter":
		var text string
		if m.input != nil {
			text = strings.TrimSpace(m.input.Value())
		}
		return []types.Action{
			types.SubmitTextAction{Text: text, Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	// Unhandled keys go to the text input itself
	return nil, false
}
