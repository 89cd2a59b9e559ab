package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/barcart/internal/domain"
	"github.com/mmcdole/barcart/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for list columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// MarkFunc reports whether an item carries the favorite marker
type MarkFunc func(item domain.ListItem) bool

// ListColumn is a scrollable, filterable list of cocktails or categories
type ListColumn struct {
	items []domain.ListItem
	keys  ListColumnKeyMap

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Loading state
	loading bool
	spinner string
	note    string // shown under the last row, e.g. "loading more"
	errMsg  string // replaces the rows when nothing could be loaded

	marked MarkFunc

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewListColumn creates an empty list column with the given title
func NewListColumn(title string) *ListColumn {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ListColumn{
		title:       title,
		keys:        DefaultListColumnKeyMap(),
		filterInput: ti,
	}
}

// Update handles navigation and filter keys. It only reacts when focused.
func (c *ListColumn) Update(msg tea.Msg) tea.Cmd {
	if !c.focused {
		return nil
	}

	// Typing into the filter
	if c.filterActive && c.filterInput.Focused() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, c.keys.Escape):
				c.clearFilter()
				return nil
			case key.Matches(msg, c.keys.Enter):
				// Accept filter, blur input to allow navigation
				c.filterInput.Blur()
				return nil
			case msg.Type == tea.KeyBackspace && c.filterInput.Value() == "":
				c.clearFilter()
				return nil
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return cmd
	}

	// Filter accepted; navigating the matches
	if c.filterActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, c.keys.Escape):
				c.clearFilter()
				return nil
			case key.Matches(msg, c.keys.Filter):
				c.filterInput.Focus()
				return nil
			}
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, c.keys.Down):
		if c.cursor < count-1 {
			c.cursor++
			c.ensureVisible()
		}
	case key.Matches(keyMsg, c.keys.Up):
		if c.cursor > 0 {
			c.cursor--
			c.ensureVisible()
		}
	case key.Matches(keyMsg, c.keys.Home):
		c.cursor = 0
		c.offset = 0
	case key.Matches(keyMsg, c.keys.End):
		c.cursor = count - 1
		c.ensureVisible()
	case key.Matches(keyMsg, c.keys.HalfDown):
		c.cursor = min(c.cursor+max(c.maxVisible/2, 1), count-1)
		c.ensureVisible()
	case key.Matches(keyMsg, c.keys.HalfUp):
		c.cursor = max(c.cursor-max(c.maxVisible/2, 1), 0)
		c.ensureVisible()
	}
	return nil
}

func (c *ListColumn) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	content := c.renderContent()

	// Subtract frame (border) size so total rendered size equals c.width x c.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(content)
}

func (c *ListColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *ListColumn) SetFocused(focused bool) {
	c.focused = focused
}

func (c *ListColumn) IsFocused() bool {
	return c.focused
}

func (c *ListColumn) Title() string {
	return c.title
}

func (c *ListColumn) SetTitle(title string) {
	c.title = title
}

// SetMarker installs the favorite predicate used when rendering rows
func (c *ListColumn) SetMarker(fn MarkFunc) {
	c.marked = fn
}

// Marker returns the installed favorite predicate
func (c *ListColumn) Marker() MarkFunc {
	return c.marked
}

// SelectedItem returns the item under the cursor, or nil
func (c *ListColumn) SelectedItem() domain.ListItem {
	count := c.ItemCount()
	if count == 0 || c.cursor >= count {
		return nil
	}
	return c.items[c.mapIndex(c.cursor)]
}

// SelectedCocktail returns the cocktail under the cursor
func (c *ListColumn) SelectedCocktail() (domain.CocktailSummary, bool) {
	s, ok := c.SelectedItem().(domain.CocktailSummary)
	return s, ok
}

// SelectedCategory returns the category under the cursor
func (c *ListColumn) SelectedCategory() (domain.Category, bool) {
	cat, ok := c.SelectedItem().(domain.Category)
	return cat, ok
}

func (c *ListColumn) SelectedIndex() int {
	return c.cursor
}

func (c *ListColumn) SetSelectedIndex(idx int) {
	last := c.ItemCount() - 1
	if last < 0 {
		c.cursor = 0
		return
	}
	c.cursor = max(0, min(idx, last))
	c.ensureVisible()
}

// ItemCount returns the number of visible rows (after filtering)
func (c *ListColumn) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.items)
}

// Len returns the number of items regardless of filtering
func (c *ListColumn) Len() int {
	return len(c.items)
}

// RowsBelow returns how many rows sit below the cursor
func (c *ListColumn) RowsBelow() int {
	return max(c.ItemCount()-1-c.cursor, 0)
}

func (c *ListColumn) SetLoading(loading bool) {
	c.loading = loading
	if loading {
		c.errMsg = ""
	}
}

func (c *ListColumn) IsLoading() bool {
	return c.loading
}

// SetSpinner sets the rendered spinner frame shown while loading
func (c *ListColumn) SetSpinner(frame string) {
	c.spinner = frame
}

// SetNote sets the dim line shown after the last row
func (c *ListColumn) SetNote(note string) {
	c.note = note
}

// SetError replaces the rows with an error message; empty clears it
func (c *ListColumn) SetError(msg string) {
	c.errMsg = msg
	if msg != "" {
		c.loading = false
	}
}

// SetItems replaces the rows and resets the cursor and filter
func (c *ListColumn) SetItems(items []domain.ListItem) {
	c.loading = false
	c.errMsg = ""
	c.cursor = 0
	c.offset = 0
	c.clearFilter()
	c.items = items
}

// UpdateItems replaces the rows, keeping the cursor and any active filter
func (c *ListColumn) UpdateItems(items []domain.ListItem) {
	c.loading = false
	c.errMsg = ""
	c.items = items
	if c.filterActive {
		cursor := c.cursor
		c.applyFilter()
		c.cursor = cursor
	}
	c.SetSelectedIndex(c.cursor)
}

// ToggleFilter activates the filter input
func (c *ListColumn) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *ListColumn) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *ListColumn) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (c *ListColumn) ClearFilter() {
	c.clearFilter()
}

// Internal methods

func (c *ListColumn) recalcMaxVisible() {
	// Interior height minus title line and the two scroll indicators
	c.maxVisible = c.height - BorderHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *ListColumn) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *ListColumn) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *ListColumn) applyFilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		return
	}

	lowerTitles := make([]string, len(c.items))
	for i, item := range c.items {
		lowerTitles[i] = strings.ToLower(item.GetTitle())
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerTitles)

	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}

	c.cursor = 0
	c.offset = 0
}

func (c *ListColumn) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

// Rendering

func (c *ListColumn) renderContent() string {
	itemWidth := max(c.width-BorderWidth, 10)

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	if c.errMsg != "" {
		return titleLine + "\n \n" + styles.ErrorStyle.Render(styles.Truncate(c.errMsg, itemWidth)) + "\n" +
			styles.DimStyle.Render("r to retry")
	}

	count := c.ItemCount()
	if c.loading && count == 0 {
		return titleLine + "\n \n" + styles.DimStyle.Render(c.spinner+" Loading...") + "\n "
	}

	if count == 0 {
		emptyMsg := "No items"
		if c.filterActive && c.filterQuery != "" {
			emptyMsg = "No matches"
		}
		content := titleLine + "\n \n" + styles.DimStyle.Render(emptyMsg) + "\n "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	end := min(c.offset+c.maxVisible, count)

	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderItem(c.items[c.mapIndex(i)], i == c.cursor, itemWidth))
	}

	// Always reserve the indicator lines so the layout does not shift
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	switch {
	case end < count:
		footer = styles.DimStyle.Render("↓ more")
	case c.loading:
		footer = styles.DimStyle.Render(c.spinner + " Loading more...")
	case c.note != "":
		footer = styles.DimStyle.Render(styles.Truncate(c.note, itemWidth))
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer

	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}

	return content
}

func (c *ListColumn) renderItem(item domain.ListItem, selected bool, width int) string {
	var prefix string
	var prefixFg lipgloss.Color

	switch {
	case item.GetItemType() == "category":
		prefix = styles.CategoryChar
		prefixFg = styles.DimGray
	case c.marked != nil && c.marked(item):
		prefix = styles.FavoriteChar
		prefixFg = styles.Red
	default:
		prefix = " "
		prefixFg = styles.DimGray
	}

	// Available space: width - marker(1) - space(1) - margins(2)
	title := styles.Truncate(item.GetTitle(), max(width-4, 5))

	parts := []styles.RowPart{
		{Text: prefix, Foreground: &prefixFg},
		{Text: " " + title, Foreground: nil},
	}

	return styles.RenderListRow(parts, selected, width)
}

func (c *ListColumn) renderFilterBar() string {
	input := c.filterInput.View()

	countStr := ""
	if c.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.items)))
	}

	return input + countStr
}
