package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/barcart/internal/tui/styles"
)

// RenderTabBar renders the tab strip with active highlighted, padded to width
func RenderTabBar(titles []string, active, width int) string {
	rendered := make([]string, len(titles))
	for i, t := range titles {
		label := fmt.Sprintf("%d %s", i+1, t)
		if i == active {
			rendered[i] = styles.ActiveTabStyle.Render(label)
		} else {
			rendered[i] = styles.TabStyle.Render(label)
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if pad := width - lipgloss.Width(bar); pad > 0 {
		bar += strings.Repeat(" ", pad)
	}
	return bar
}
