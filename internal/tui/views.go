package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/barcart/internal/domain"
	"github.com/mmcdole/barcart/internal/tui/styles"
)

func tabTitle(t Tab, favorites int) string {
	switch t {
	case TabCategories:
		return "Categories"
	case TabFavorites:
		if favorites > 0 {
			return fmt.Sprintf("Favorites %s%d", styles.FavoriteChar, favorites)
		}
		return "Favorites"
	default:
		return "Home"
	}
}

// errorText renders an error with its kind, e.g. "NetworkError: ..."
func errorText(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", domain.KindOf(err), err)
}

// renderFooter shows the status message, or key hints for the current context
func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		style := styles.SuccessStyle
		if m.StatusIsErr {
			style = styles.ErrorStyle
		}
		return style.Render(styles.Truncate(m.StatusMsg, m.Width))
	}

	ts := m.tab()
	var hints []key.Binding
	switch {
	case ts.detail != nil:
		hints = []key.Binding{Keys.Back, Keys.Favorite}
		if ts.detail.State().Failed() {
			hints = append(hints, Keys.Retry)
		} else if m.Opener != nil {
			hints = append(hints, Keys.Open)
		}
	case ts.stack.Top().IsFilterTyping():
		return styles.DimStyle.Render("enter accept · esc clear")
	default:
		hints = []key.Binding{Keys.Enter, Keys.Favorite, Keys.Filter}
		if m.Active == TabFavorites {
			hints = append(hints, Keys.Remove)
		}
		if ts.stack.CanGoBack() {
			hints = append(hints, Keys.Back)
		}
	}
	hints = append(hints, Keys.Help, Keys.Quit)

	parts := make([]string, len(hints))
	for i, b := range hints {
		h := b.Help()
		parts[i] = styles.HelpKeyStyle.Render(h.Key) + " " + styles.HelpDescStyle.Render(h.Desc)
	}
	footer := strings.Join(parts, styles.DimStyle.Render(" · "))
	if lipgloss.Width(footer) > m.Width {
		return styles.DimStyle.Render(styles.Truncate("? help · q quit", m.Width))
	}
	return footer
}

// renderHelp renders the key reference, sized to the content area
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Keys") + "\n\n")
	for _, binding := range helpBindings() {
		h := binding.Help()
		b.WriteString(styles.HelpKeyStyle.Render(styles.Pad(h.Key, 10)))
		b.WriteString(styles.HelpDescStyle.Render(h.Desc) + "\n")
	}
	b.WriteString("\n" + styles.DimStyle.Render("press any key to close"))

	frame := styles.ActiveBorder.Padding(1, 2)
	frameW, frameH := frame.GetFrameSize()
	return frame.
		Width(max(m.Width-frameW, 0)).
		Height(max(m.Height-ChromeHeight-frameH, 0)).
		Render(b.String())
}
