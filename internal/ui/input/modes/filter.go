package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"memodeck/internal/ui/input/types"
)

// titleLimit matches the longest title the list shows untruncated plus some slack
const titleLimit = 200

type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, "filter", TextField{
			Prompt:      "Filter: ",
			Placeholder: "text or status:todo",
		}, ti),
	}
}

// NewItemMode reads the title of a new memo or task
type NewItemMode struct {
	TextInputMode
}

func NewNewItemMode(ti *textinput.Model) *NewItemMode {
	return &NewItemMode{
		TextInputMode: NewTextInputMode(types.ModeNewItem, "new", TextField{
			Prompt:    "Title: ",
			CharLimit: titleLimit,
		}, ti),
	}
}
