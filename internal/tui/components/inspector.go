package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/barcart/internal/browse"
	"github.com/mmcdole/barcart/internal/domain"
	"github.com/mmcdole/barcart/internal/tui/styles"
)

// Layout constants for inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2
)

// inspectorContent holds the three-zone layout content
type inspectorContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// Inspector shows one cocktail's detail as it loads
type Inspector struct {
	state    browse.FetchState[domain.CocktailDetail]
	id       domain.CocktailID
	favorite bool
	spinner  string
	focused  bool
	keys     InspectorKeyMap

	width      int
	height     int
	offset     int // scroll offset into the body
	maxVisible int
}

// NewInspector creates an empty inspector
func NewInspector() Inspector {
	return Inspector{keys: DefaultInspectorKeyMap()}
}

// SetState shows the loader state for id. Scroll resets when id changes.
func (i *Inspector) SetState(id domain.CocktailID, state browse.FetchState[domain.CocktailDetail]) {
	if id != i.id {
		i.offset = 0
	}
	i.id = id
	i.state = state
}

// State returns the displayed fetch state
func (i Inspector) State() browse.FetchState[domain.CocktailDetail] {
	return i.state
}

func (i *Inspector) SetFavorite(favorite bool) { i.favorite = favorite }
func (i *Inspector) SetSpinner(frame string)   { i.spinner = frame }
func (i *Inspector) SetFocused(focused bool)   { i.focused = focused }

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	// Border, scroll indicators, title and the blank line after it
	i.maxVisible = max(height-InspectorBorderHeight-InspectorScrollIndicators-2, 1)
}

// Update scrolls the body
func (i Inspector) Update(msg tea.Msg) (Inspector, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return i, nil
	}
	switch {
	case key.Matches(keyMsg, i.keys.Down):
		i.offset++
	case key.Matches(keyMsg, i.keys.Up):
		if i.offset > 0 {
			i.offset--
		}
	case key.Matches(keyMsg, i.keys.Top):
		i.offset = 0
	}
	return i, nil
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder
	if i.focused {
		style = styles.ActiveBorder
	}

	// Border takes 2 chars (1 each side), leave 1 char safety margin
	contentWidth := max(i.width-3, 10)
	content := i.render(contentWidth)

	titleLine := styles.AccentStyle.Render(styles.Truncate("Cocktail", contentWidth))

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := max(i.maxVisible-len(headerLines)-len(footerLines), 1)

	maxOffset := max(len(bodyLines)-availableForBody, 0)
	offset := min(i.offset, maxOffset)
	end := min(offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if len(headerLines) > 0 {
		parts = append(parts, headerLines...)
	}
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	if len(footerLines) > 0 {
		parts = append(parts, footerLines...)
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(i.width-frameW, 0)).
		Height(max(i.height-frameH, 0)).
		Render(strings.Join(parts, "\n"))
}

func (i Inspector) render(width int) inspectorContent {
	switch i.state.Status {
	case browse.StatusLoading:
		return inspectorContent{header: styles.DimStyle.Render(i.spinner + " Loading...")}
	case browse.StatusFailed:
		kind := domain.KindOf(i.state.Err)
		return inspectorContent{
			header: styles.ErrorStyle.Render(kind.String()),
			body:   styles.ErrorStyle.Render(wordWrap(i.state.Err.Error(), width)),
			footer: styles.DimStyle.Render("r to retry · esc to go back"),
		}
	case browse.StatusReady:
		return i.renderDetail(i.state.Value, width)
	default:
		return inspectorContent{}
	}
}

func (i Inspector) renderDetail(d domain.CocktailDetail, width int) inspectorContent {
	// Header: name, favorite mark and classification badges
	var header strings.Builder
	name := d.Name
	if i.favorite {
		name = styles.FavoriteChar + " " + name
	}
	header.WriteString(styles.TitleStyle.Render(styles.Truncate(name, width)))

	if tags := d.Tags(); len(tags) > 0 {
		badges := make([]string, len(tags))
		for n, t := range tags {
			badges[n] = styles.DimBadgeStyle.Render(t)
		}
		header.WriteString("\n" + strings.Join(badges, " "))
	}

	// Body: ingredients then instructions
	var body strings.Builder
	body.WriteString(styles.AccentStyle.Render("Ingredients"))
	if len(d.Ingredients) == 0 {
		body.WriteString("\n" + styles.DimStyle.Render("none listed"))
	}
	for _, line := range d.Ingredients {
		body.WriteString("\n" + styles.SubtitleStyle.Render("• "+styles.Truncate(line, width-2)))
	}
	body.WriteString("\n\n" + styles.AccentStyle.Render("Instructions") + "\n")
	if strings.TrimSpace(d.Instructions) == "" {
		body.WriteString(styles.DimStyle.Render("none"))
	} else {
		body.WriteString(wordWrap(d.Instructions, width))
	}

	footer := styles.DimStyle.Render(fmt.Sprintf("#%s", d.ID))
	if d.ThumbURL != "" {
		footer += "\n" + styles.DimStyle.Render(styles.Truncate(d.ThumbURL, width))
	}

	return inspectorContent{header: header.String(), body: body.String(), footer: footer}
}

// splitLines splits a string into lines, returning empty slice for empty string
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wordWrap wraps text to the specified width, keeping paragraph breaks
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	paragraphs := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	wrapped := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		var result strings.Builder
		lineLen := 0
		for _, word := range strings.Fields(p) {
			wordLen := lipgloss.Width(word)
			if lineLen+wordLen+1 > width && lineLen > 0 {
				result.WriteString("\n")
				lineLen = 0
			}
			if lineLen > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wordLen
		}
		wrapped = append(wrapped, result.String())
	}
	return strings.Join(wrapped, "\n")
}
