package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"memodeck/internal/ui/state"
)

// ItemRow carries the per-row flags the item renderer needs
type ItemRow struct {
	Item        state.ListItem
	Cursor      bool
	MultiSelect bool
	Selected    bool
	Flying      bool
	Landed      bool
}

// ItemRenderer handles rendering of list rows
type ItemRenderer struct {
	styles *Styles
	now    func() time.Time
}

// NewItemRenderer creates a new item renderer
func NewItemRenderer(styles *Styles) *ItemRenderer {
	return &ItemRenderer{
		styles: styles,
		now:    time.Now,
	}
}

// RenderItem renders one row
func (r *ItemRenderer) RenderItem(row ItemRow, filterQuery string, width int) string {
	item := row.Item

	// Background color for the cursor row
	bgColor := ""
	if row.Cursor {
		bgColor = "238"
	}
	base := lipgloss.NewStyle()
	if bgColor != "" {
		base = base.Background(lipgloss.Color(bgColor))
	}

	var parts []string

	// Multi-select indicator
	if row.MultiSelect {
		indicator := "[ ]"
		if row.Selected {
			indicator = "[x]"
		}
		parts = append(parts, base.Render(indicator+" "))
	}

	// Items travelling to the bin, or already in it
	switch {
	case row.Landed:
		parts = append(parts, base.Render("  "), r.styles.Landed.Render(item.Title))
		return strings.Join(parts, "")
	case row.Flying:
		parts = append(parts, r.styles.Flying.Render("» "))
	default:
		parts = append(parts, base.Render("  "))
	}

	// Task status badge
	if item.Status != "" {
		statusStyle := base.Foreground(lipgloss.Color(GetStatusColor(item.Status)))
		parts = append(parts, statusStyle.Render(fmt.Sprintf("%-5s", item.Status)), base.Render(" "))
	}

	title := r.formatTitle(item.Title)
	if q := plainQuery(filterQuery); q != "" && strings.Contains(strings.ToLower(title), q) {
		title = r.highlightMatch(title, q, base.Foreground(lipgloss.Color("226")), base)
	} else {
		title = base.Render(title)
	}
	parts = append(parts, title)

	// Age
	parts = append(parts, r.styles.Dim.Render("  "+r.age(item)))

	line := strings.Join(parts, "")
	if row.Cursor && width > 0 {
		if w := lipgloss.Width(line); w < width {
			line += base.Render(strings.Repeat(" ", width-w))
		}
	}
	return line
}

func (r *ItemRenderer) age(item state.ListItem) string {
	if !item.DeletedAt.IsZero() {
		return "deleted " + humanize.RelTime(item.DeletedAt, r.now(), "ago", "from now")
	}
	if item.CreatedAt.IsZero() {
		return ""
	}
	return humanize.RelTime(item.CreatedAt, r.now(), "ago", "from now")
}

// formatTitle formats a title for display
func (r *ItemRenderer) formatTitle(title string) string {
	if title == "" {
		return "(untitled)"
	}
	// Truncate long titles
	if runes := []rune(title); len(runes) > 60 {
		return string(runes[:57]) + "..."
	}
	return title
}

// plainQuery drops status: filters, which never highlight a title
func plainQuery(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	if strings.HasPrefix(q, "status:") {
		return ""
	}
	return q
}

// highlightMatch highlights matching text within a string
func (r *ItemRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 || len(lowerText) != len(text) {
		return normalStyle.Render(text)
	}

	// Split the text into parts
	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}
