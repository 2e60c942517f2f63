package views

import (
	"fmt"
	"strings"
)

// TabInfo describes one tab header
type TabInfo struct {
	Label  string
	Count  int
	Active bool
}

// BinView is the state of the bin control
type BinView struct {
	LidOpen      bool
	Processing   bool
	DisplayCount int
	// CountCap is the largest count shown as a number; above it the badge reads "999+"
	CountCap int
	Spinner  string
}

// BinRenderer handles rendering of the tab bar and the bin control
type BinRenderer struct {
	styles *Styles
}

// NewBinRenderer creates a new bin renderer
func NewBinRenderer(styles *Styles) *BinRenderer {
	return &BinRenderer{
		styles: styles,
	}
}

// RenderTabs renders the tab bar
func (b *BinRenderer) RenderTabs(tabs []TabInfo) string {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := fmt.Sprintf("%s (%d)", t.Label, t.Count)
		if t.Active {
			parts = append(parts, b.styles.TabActive.Render(label))
		} else {
			parts = append(parts, b.styles.TabInactive.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// RenderBin renders the bin with its lid and count badge
func (b *BinRenderer) RenderBin(v BinView) string {
	lid := "▁▁▁"
	style := b.styles.BinClosed
	if v.LidOpen {
		lid = "╱ ╲"
		style = b.styles.BinOpen
	}

	var parts []string
	if v.Processing && v.Spinner != "" {
		parts = append(parts, v.Spinner)
	}
	parts = append(parts, style.Render(lid+" bin"))
	if v.DisplayCount > 0 {
		parts = append(parts, b.styles.Badge.Render(badgeLabel(v.DisplayCount, v.CountCap)))
	}
	return strings.Join(parts, " ")
}

func badgeLabel(n, limit int) string {
	if limit > 0 && n > limit {
		return fmt.Sprintf("%d+", limit)
	}
	return fmt.Sprintf("%d", n)
}
