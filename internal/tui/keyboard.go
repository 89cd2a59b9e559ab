package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/barcart/internal/domain"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ts := m.tab()
	top := ts.stack.Top()

	// Typing into a filter swallows everything but ctrl+c
	if ts.detail == nil && top.IsFilterTyping() {
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		return m, top.Update(msg)
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		return m.switchTab((m.Active + 1) % tabCount)
	case key.Matches(msg, Keys.PrevTab):
		return m.switchTab((m.Active + tabCount - 1) % tabCount)
	case key.Matches(msg, Keys.HomeTab):
		return m.switchTab(TabHome)
	case key.Matches(msg, Keys.CategoriesTab):
		return m.switchTab(TabCategories)
	case key.Matches(msg, Keys.FavoritesTab):
		return m.switchTab(TabFavorites)

	case key.Matches(msg, Keys.Back):
		return m.handleBack()

	case key.Matches(msg, Keys.Enter):
		return m.handleEnter()

	case key.Matches(msg, Keys.Filter):
		if ts.detail == nil {
			top.ToggleFilter()
			m.updateLayout()
		}
		return m, nil

	case key.Matches(msg, Keys.Favorite):
		return m.toggleFavorite()

	case key.Matches(msg, Keys.Remove):
		if m.Active != TabFavorites {
			return m, nil
		}
		return m.removeFavorite()

	case key.Matches(msg, Keys.Retry):
		return m.retry()

	case key.Matches(msg, Keys.Open):
		return m.openImage()
	}

	if ts.detail != nil {
		var cmd tea.Cmd
		ts.inspector, cmd = ts.inspector.Update(msg)
		return m, cmd
	}

	cmd := top.Update(msg)
	more := m.maybeLoadMore()
	if cmd == nil {
		return m, more
	}
	return m, tea.Batch(cmd, more)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	for _, ts := range m.Tabs {
		if ts.detail != nil {
			ts.detail.Close()
		}
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return m, tea.Quit
}

func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	if t == m.Active {
		return m, nil
	}
	m.Active = t
	return m, m.activate(t)
}

func (m Model) toggleFavorite() (tea.Model, tea.Cmd) {
	s, ok := m.target()
	if !ok {
		return m, nil
	}
	if m.Favorites.Toggle(s.ID) {
		return m, m.setStatus(fmt.Sprintf("Added %s to favorites", s.Name), false)
	}
	return m, m.setStatus(fmt.Sprintf("Removed %s from favorites", s.Name), false)
}

func (m Model) removeFavorite() (tea.Model, tea.Cmd) {
	s, ok := m.target()
	if !ok || !m.Favorites.Contains(s.ID) {
		return m, nil
	}
	m.Favorites.Remove(s.ID)
	return m, m.setStatus(fmt.Sprintf("Removed %s from favorites", s.Name), false)
}

// target is the cocktail an action applies to: the open detail, else the cursor row
func (m Model) target() (domain.CocktailSummary, bool) {
	ts := m.tab()
	if ts.detail != nil {
		if st := ts.detail.State(); st.Ready() {
			return st.Value.Summary(), true
		}
		id := ts.detail.ID()
		return m.summaryFor(id), true
	}
	return ts.stack.Top().SelectedCocktail()
}

func (m Model) retry() (tea.Model, tea.Cmd) {
	ts := m.tab()

	if ts.detail != nil {
		if !ts.detail.State().Failed() {
			return m, nil
		}
		cmd := LoadDetailCmd(ts.detail, m.Timeout)
		m.syncDetail(ts)
		return m, cmd
	}

	switch m.Active {
	case TabHome:
		if m.Pager.Err() == nil {
			return m, nil
		}
		req, ok := m.Pager.LoadMore()
		m.syncHome()
		if !ok {
			return m, nil
		}
		return m, LoadPageCmd(req, m.Timeout)

	case TabCategories:
		if ts.stack.CanGoBack() {
			sel := m.Categories.Selection()
			if sel == nil || !m.Categories.Results().Failed() {
				return m, nil
			}
			ts.stack.Top().SetLoading(true)
			return m, FilterCategoryCmd(m.Categories.Select(*sel), m.Timeout)
		}
		return m, m.activate(TabCategories)

	case TabFavorites:
		// Names that failed to resolve get another lookup
		for id, failed := range m.resolving {
			if failed {
				delete(m.resolving, id)
			}
		}
		return m, m.refreshFavorites(true)
	}
	return m, nil
}

// openImage opens the target cocktail's thumbnail in the external viewer
func (m Model) openImage() (tea.Model, tea.Cmd) {
	if m.Opener == nil {
		return m, nil
	}
	s, ok := m.target()
	if !ok {
		return m, nil
	}
	if s.ThumbURL == "" {
		if known, ok := m.known[s.ID]; ok {
			s.ThumbURL = known.ThumbURL
		}
	}
	if s.ThumbURL == "" {
		return m, m.setStatus(fmt.Sprintf("No image for %s", s.Name), true)
	}
	return m, OpenImageCmd(m.Opener, s.ThumbURL, s.Name)
}
