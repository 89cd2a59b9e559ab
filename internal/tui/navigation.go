package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/barcart/internal/browse"
	"github.com/mmcdole/barcart/internal/domain"
	"github.com/mmcdole/barcart/internal/tui/components"
)

// activate starts whatever first load a tab still needs
func (m *Model) activate(t Tab) tea.Cmd {
	switch t {
	case TabHome:
		req, ok := m.Pager.LoadInitial()
		m.syncHome()
		if !ok {
			return nil
		}
		return LoadPageCmd(req, m.Timeout)

	case TabCategories:
		req, ok := m.Categories.LoadCategories()
		m.syncCategories()
		if !ok {
			return nil
		}
		return LoadCategoriesCmd(req, m.Timeout)

	case TabFavorites:
		return m.refreshFavorites(true)
	}
	return nil
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	ts := m.tab()
	if ts.detail != nil {
		return m, nil
	}
	top := ts.stack.Top()

	if cat, ok := top.SelectedCategory(); ok {
		req := m.Categories.Select(cat)
		col := components.NewListColumn(cat.Name)
		col.SetMarker(top.Marker())
		col.SetLoading(true)
		col.SetSpinner(m.Spinner.View())
		ts.stack.Push(col)
		m.updateLayout()
		return m, FilterCategoryCmd(req, m.Timeout)
	}

	if s, ok := top.SelectedCocktail(); ok {
		return m, m.openDetail(s)
	}
	return m, nil
}

func (m Model) handleBack() (tea.Model, tea.Cmd) {
	ts := m.tab()
	if ts.detail != nil {
		m.closeDetail(ts)
		return m, nil
	}
	// An accepted filter is cleared before back leaves the column
	if top := ts.stack.Top(); top.IsFiltering() {
		top.ClearFilter()
		m.updateLayout()
		return m, nil
	}
	if ts.stack.Pop() != nil {
		if m.Active == TabCategories {
			m.Categories.ClearSelection()
		}
		m.updateLayout()
	}
	return m, nil
}

// openDetail opens the detail panel for s on the active tab
func (m *Model) openDetail(s domain.CocktailSummary) tea.Cmd {
	ts := m.tab()
	if ts.detail != nil {
		ts.detail.Close()
	}
	ts.detail = browse.NewDetailLoader(m.Catalog, s.ID)
	cmd := LoadDetailCmd(ts.detail, m.Timeout)

	ts.stack.SetFocused(false)
	ts.inspector.SetFocused(true)
	m.syncDetail(ts)
	m.updateLayout()
	return cmd
}

func (m *Model) closeDetail(ts *tabState) {
	ts.detail.Close()
	ts.detail = nil
	ts.inspector.SetFocused(false)
	ts.stack.SetFocused(true)
	m.updateLayout()
}

// maybeLoadMore begins the next home page once the cursor nears the end
func (m *Model) maybeLoadMore() tea.Cmd {
	if m.Active != TabHome {
		return nil
	}
	col := m.Tabs[TabHome].stack.Root()
	if col.Len() == 0 || col.IsFiltering() || m.Pager.Err() != nil {
		return nil
	}
	if col.RowsBelow() > m.Prefetch {
		return nil
	}
	req, ok := m.Pager.LoadMore()
	if !ok {
		return nil
	}
	m.syncHome()
	return LoadPageCmd(req, m.Timeout)
}
