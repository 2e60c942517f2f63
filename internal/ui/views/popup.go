package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centered over mainContent. Lines covered
// by the popup are replaced; the rest of the base is greyed out.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	styledPopup := popupStyle.Render(popupContent)
	popupLines := strings.Split(styledPopup, "\n")
	if len(popupLines) > height {
		popupLines = popupLines[:height]
	}

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	y := (height - len(popupLines)) / 2
	if y < 0 {
		y = 0
	}
	for i, line := range popupLines {
		base[y+i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}
	return strings.Join(base, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(s, "\n")
	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		lines[i] = grey.Render(ansiRE.ReplaceAllString(line, ""))
	}
	return strings.Join(lines, "\n")
}
