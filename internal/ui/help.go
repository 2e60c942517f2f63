package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Navigation", []helpEntry{
		{"↑/↓, j/k", "Move up/down"},
		{"PgUp/PgDn", "Page up/down"},
		{"gg/G", "Go to top/bottom"},
		{"Tab/Shift+Tab", "Next/previous tab"},
	}},
	{"Selection", []helpEntry{
		{"Space", "Toggle selection"},
		{"a/A", "Select/deselect all"},
		{"Esc", "Clear selection, or cancel a running batch"},
	}},
	{"Bin", []helpEntry{
		{"d", "Move selection to the bin (purge on a bin tab)"},
		{"D", "Purge selection for good"},
		{"u", "Restore selection from the bin"},
		{"x", "Cancel the running batch"},
		{"y/n", "Answer a confirmation"},
	}},
	{"Items", []helpEntry{
		{"n", "New memo or task"},
		{"t", "Advance task todo → doing → done"},
		{"Enter/p", "Preview memo"},
		{"ctrl+r", "Reload from the database"},
	}},
	{"Filter & Sort", []helpEntry{
		{"/", "Filter items"},
		{"s", "Cycle sort: created, title, updated"},
	}},
	{"Other", []helpEntry{
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}},
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContentPlain generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContentPlain() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	width := 0
	for _, s := range helpSections {
		for _, e := range s.entries {
			if w := lipgloss.Width(e.keys); w > width {
				width = w
			}
		}
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("memodeck help"))
	help.WriteString("\n")

	for _, s := range helpSections {
		help.WriteString("\n")
		help.WriteString(sectionStyle.Render(s.title))
		help.WriteString("\n")
		for _, e := range s.entries {
			pad := strings.Repeat(" ", width-lipgloss.Width(e.keys)+2)
			help.WriteString(fmt.Sprintf("  %s%s%s\n", keyStyle.Render(e.keys), pad, descStyle.Render(e.desc)))
		}
	}

	filterStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString("\n")
	help.WriteString(filterStyle.Render("  Filter examples: groceries, status:doing"))

	return help.String()
}

// RenderHelpContent renders the help window for the popup, scrolled by scrollOffset
func (r *HelpRenderer) RenderHelpContent(height int, scrollOffset int) string {
	lines := strings.Split(r.RenderHelpContentPlain(), "\n")
	totalLines := len(lines)

	// Account for popup border and padding
	visibleHeight := height - 6
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	if totalLines <= visibleHeight {
		return strings.Join(lines, "\n")
	}

	maxOffset := totalLines - visibleHeight
	if scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	end := scrollOffset + visibleHeight
	lines = lines[scrollOffset:end]

	more := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if scrollOffset > 0 {
		lines[0] = more.Render("↑ (more above)")
	}
	if end < totalLines {
		lines[len(lines)-1] = more.Render("↓ (more below)")
	}
	return strings.Join(lines, "\n")
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using the ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Don't write the document back to our screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
