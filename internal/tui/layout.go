package tui

// Layout proportions
const (
	// Root column with the detail panel open
	RootColumnPercent = 40

	// Two-column stack without the detail panel
	ParentColumnPercent2 = 30

	// Two-column stack with the detail panel open
	ParentColumnPercent3 = 25
	ActiveColumnPercent3 = 35

	MinColumnWidth = 15

	// Tab bar and footer
	ChromeHeight = 2
)

// columnLayout holds calculated column widths for the View
type columnLayout struct {
	parentWidth    int // 0 if not shown
	activeWidth    int
	inspectorWidth int // 0 if not shown
}

// calculateColumnLayout computes column widths from stack depth and detail visibility
func calculateColumnLayout(availableWidth, depth int, detail bool) columnLayout {
	applyMin := func(width int) int {
		return max(width, MinColumnWidth)
	}

	var layout columnLayout
	switch {
	case depth <= 1 && !detail:
		layout.activeWidth = availableWidth

	case depth <= 1:
		// [Active | Inspector]
		layout.activeWidth = applyMin(availableWidth * RootColumnPercent / 100)
		layout.inspectorWidth = applyMin(availableWidth - layout.activeWidth)

	case !detail:
		// [Parent | Active]
		layout.parentWidth = applyMin(availableWidth * ParentColumnPercent2 / 100)
		layout.activeWidth = applyMin(availableWidth - layout.parentWidth)

	default:
		// [Parent | Active | Inspector]
		layout.parentWidth = applyMin(availableWidth * ParentColumnPercent3 / 100)
		layout.activeWidth = applyMin(availableWidth * ActiveColumnPercent3 / 100)
		layout.inspectorWidth = applyMin(availableWidth - layout.parentWidth - layout.activeWidth)
	}
	return layout
}

// updateLayout sizes every tab's columns to the window
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := max(m.Height-ChromeHeight, 3)

	for _, ts := range m.Tabs {
		layout := calculateColumnLayout(m.Width, ts.stack.Len(), ts.detail != nil)
		if parent := ts.stack.Parent(); parent != nil {
			parent.SetSize(layout.parentWidth, contentHeight)
		}
		ts.stack.Top().SetSize(layout.activeWidth, contentHeight)
		ts.inspector.SetSize(layout.inspectorWidth, contentHeight)
	}
}
