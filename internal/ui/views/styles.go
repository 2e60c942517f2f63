package views

import (
	"github.com/charmbracelet/lipgloss"

	"memodeck/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Confirm       lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	InfoBox       lipgloss.Style
	PreviewBox    lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusLoading lipgloss.Style
	SelectionBg   lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	BinClosed     lipgloss.Style
	BinOpen       lipgloss.Style
	Badge         lipgloss.Style
	Flying        lipgloss.Style
	Landed        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Confirm: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Dim:     lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("241")),
		PreviewBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("99")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1),
		BinClosed: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		BinOpen:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("203")).
			Padding(0, 1),
		Flying: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true),
		Landed: lipgloss.NewStyle().Faint(true).Strikethrough(true),
	}
}

// GetStatusColor returns the color for a task status
func GetStatusColor(status domain.TaskStatus) string {
	switch status {
	case domain.StatusDone:
		return "78" // green
	case domain.StatusDoing:
		return "33" // blue
	default:
		return "214" // yellow
	}
}
