package views

import (
	"log"

	"github.com/charmbracelet/glamour"
)

// PreviewRenderer renders memo bodies as markdown. The glamour renderer is
// rebuilt when the wrap width changes.
type PreviewRenderer struct {
	enabled bool
	width   int
	term    *glamour.TermRenderer

	// last rendered body
	key string
	out string
}

// NewPreviewRenderer creates a preview renderer. With markdown disabled the
// body is shown as is.
func NewPreviewRenderer(markdown bool) *PreviewRenderer {
	return &PreviewRenderer{enabled: markdown}
}

// Render returns body formatted for a box of width columns
func (p *PreviewRenderer) Render(title, body string, width int) string {
	md := "# " + title + "\n\n" + body
	if !p.enabled {
		return md
	}
	if width < 20 {
		width = 20
	}
	if p.term == nil || p.width != width {
		term, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			log.Printf("preview: markdown renderer unavailable: %v", err)
			return md
		}
		p.term, p.width, p.key = term, width, ""
	}
	if md == p.key {
		return p.out
	}
	out, err := p.term.Render(md)
	if err != nil {
		log.Printf("preview: render failed: %v", err)
		return md
	}
	p.key, p.out = md, out
	return out
}
