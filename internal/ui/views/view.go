package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"memodeck/internal/ui/input/types"
	"memodeck/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Tabs           []TabInfo
	Items          []state.ListItem
	Selected       map[int]bool
	Flying         map[int]bool
	Landed         map[int]bool
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int
	Loading        bool
	EmptyHint      string
	StatusMessage  string
	FilterQuery    string
	SortLabel      string
	Bin            BinView
	ConfirmMessage string
	InputMode      string
	InputPrompt    string
	TextInput      string
	ShowHelp       bool
	HelpContent    string
	ShowHelpBar    bool
	HelpModel      help.Model
	ShowPreview    bool
	PreviewItem    state.ListItem
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	itemRender  *ItemRenderer
	binRender   *BinRenderer
	popupRender *PopupRenderer
	preview     *PreviewRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(renderMarkdown bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		itemRender:  NewItemRenderer(styles),
		binRender:   NewBinRenderer(styles),
		popupRender: NewPopupRenderer(styles),
		preview:     NewPreviewRenderer(renderMarkdown),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	availableWidth := termWidth - 4 // Account for main container padding

	// Title line with the bin and indicators right-aligned
	logo := r.styles.Title.Render("memodeck")
	right := []string{}
	if state.FilterQuery != "" {
		right = append(right, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery)))
	}
	if state.SortLabel != "" {
		right = append(right, r.styles.Dim.Render("sort: "+state.SortLabel))
	}
	right = append(right, r.binRender.RenderBin(state.Bin))
	rightContent := strings.Join(right, "  ")

	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	content.WriteString(logo + strings.Repeat(" ", paddingWidth) + rightContent)
	content.WriteString("\n\n")

	content.WriteString(r.binRender.RenderTabs(state.Tabs))
	content.WriteString("\n")

	// Prompt line
	switch {
	case state.ConfirmMessage != "":
		content.WriteString(r.styles.Confirm.Render(state.ConfirmMessage + " (y/n)"))
	case state.InputMode != "":
		content.WriteString(state.InputPrompt + state.TextInput)
	}
	content.WriteString("\n\n")

	// Main content
	switch {
	case state.Loading && len(state.Items) == 0:
		content.WriteString(r.styles.Dim.Render("Loading..."))
	case len(state.Items) == 0:
		content.WriteString(r.styles.Dim.Render(state.EmptyHint))
	default:
		content.WriteString(r.renderItemList(state, availableWidth))
	}

	// Footer: status message and key help, pushed to the bottom
	var footer []string
	if state.StatusMessage != "" {
		footer = append(footer, r.styles.Status.Render(state.StatusMessage))
	}
	if state.ShowHelpBar && !state.ShowHelp {
		footer = append(footer, state.HelpModel.ShortHelpView(types.Keys.ShortHelp()))
	} else if !state.ShowHelp {
		footer = append(footer, r.styles.Help.Render("Press ? for help"))
	}

	if len(footer) > 0 {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22 // Default terminal height minus padding
		}
		paddingNeeded := availableLines - currentLines - len(footer)
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(strings.Join(footer, "\n"))
	}

	// Apply main container style
	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	// Overlay popups on top of main content
	if state.ShowHelp && state.HelpContent != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.HelpContent, state.Height, state.Width, r.styles.InfoBox)
	}
	if state.ShowPreview {
		boxWidth := termWidth * 2 / 3
		body := r.preview.Render(state.PreviewItem.Title, state.PreviewItem.Body, boxWidth-4)
		return r.popupRender.RenderPopupOverlay(finalContent, strings.TrimRight(body, "\n"), state.Height, state.Width, r.styles.PreviewBox.Width(boxWidth))
	}

	return finalContent
}

// renderItemList renders the visible window of the list with scroll indicators
func (r *Renderer) renderItemList(state ViewState, width int) string {
	total := len(state.Items)
	multiSelect := len(state.Selected) > 0

	effectiveHeight := state.ViewportHeight
	if effectiveHeight <= 0 {
		effectiveHeight = total
	}
	needsTopIndicator := state.ViewportOffset > 0
	needsBottomIndicator := state.ViewportOffset+state.ViewportHeight < total
	if needsTopIndicator {
		effectiveHeight--
	}
	if needsBottomIndicator {
		effectiveHeight--
	}
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}

	var lines []string
	if needsTopIndicator {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", state.ViewportOffset)))
	}

	end := state.ViewportOffset + effectiveHeight
	if end > total {
		end = total
	}
	for i := state.ViewportOffset; i < end; i++ {
		item := state.Items[i]
		lines = append(lines, r.itemRender.RenderItem(ItemRow{
			Item:        item,
			Cursor:      i == state.SelectedIndex,
			MultiSelect: multiSelect,
			Selected:    state.Selected[item.ID],
			Flying:      state.Flying[item.ID],
			Landed:      state.Landed[item.ID],
		}, state.FilterQuery, width))
	}

	if needsBottomIndicator {
		itemsBelow := total - end
		if itemsBelow < 0 {
			itemsBelow = 0
		}
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", itemsBelow)))
	}

	return strings.Join(lines, "\n")
}
