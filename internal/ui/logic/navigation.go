package logic

// Navigator handles cursor movement and viewport management for a flat list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{}
}

// UpdateState updates the navigator's state
func (n *Navigator) UpdateState(selectedIndex, viewportOffset, viewportHeight, totalItems int) {
	n.selectedIndex = selectedIndex
	n.viewportOffset = viewportOffset
	n.viewportHeight = viewportHeight
	n.totalItems = totalItems
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = index
	n.clamp()
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// Move shifts the cursor by delta rows
func (n *Navigator) Move(delta int) (int, int) {
	return n.SetSelectedIndex(n.selectedIndex + delta)
}

// Page moves the cursor a page up or down, leaving some overlap
func (n *Navigator) Page(down bool) (int, int) {
	pageSize := n.viewportHeight - 2
	if pageSize < 1 {
		pageSize = 1
	}
	if !down {
		pageSize = -pageSize
	}
	return n.Move(pageSize)
}

// GetMaxIndex returns the maximum selectable index
func (n *Navigator) GetMaxIndex() int {
	return n.totalItems - 1
}

func (n *Navigator) clamp() {
	if n.selectedIndex > n.totalItems-1 {
		n.selectedIndex = n.totalItems - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	// If selected item is above viewport, scroll up
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}

	// Determine if we'll have scroll indicators
	needsTopIndicator := n.viewportOffset > 0
	needsBottomIndicator := n.viewportOffset+n.viewportHeight < n.totalItems

	effectiveHeight := n.viewportHeight
	if needsTopIndicator {
		effectiveHeight--
	}
	if needsBottomIndicator {
		effectiveHeight--
	}
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}

	// If selected item is below effective viewport, scroll down
	if n.selectedIndex >= n.viewportOffset+effectiveHeight {
		n.viewportOffset = n.selectedIndex - effectiveHeight + 1
	}

	maxOffset := n.totalItems - effectiveHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
