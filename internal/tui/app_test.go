package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/barcart/internal/browse"
	"github.com/mmcdole/barcart/internal/domain"
	"github.com/mmcdole/barcart/internal/favorites"
)

// stubCatalog serves canned catalog data; pages are 1-based
type stubCatalog struct {
	mu         sync.Mutex
	pages      [][]domain.CocktailDetail
	categories []domain.Category
	filtered   map[string][]domain.CocktailSummary
	details    map[domain.CocktailID]domain.CocktailDetail
	lookupErr  error
}

func (s *stubCatalog) SearchByFirstLetter(_ context.Context, _ string, page int) ([]domain.CocktailDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 || page > len(s.pages) {
		return nil, nil
	}
	return s.pages[page-1], nil
}

func (s *stubCatalog) ListCategories(context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *stubCatalog) FilterByCategory(_ context.Context, name string) ([]domain.CocktailSummary, error) {
	return s.filtered[name], nil
}

func (s *stubCatalog) LookupByID(_ context.Context, id domain.CocktailID) (domain.CocktailDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookupErr != nil {
		return domain.CocktailDetail{}, s.lookupErr
	}
	d, ok := s.details[id]
	if !ok {
		return domain.CocktailDetail{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return d, nil
}

func cocktail(id, name string) domain.CocktailDetail {
	return domain.CocktailDetail{
		ID:           domain.CocktailID(id),
		Name:         name,
		Instructions: "Stir.",
		Ingredients:  []string{"1 oz " + name + " base"},
		Category:     "Cocktail",
	}
}

func newStubCatalog() *stubCatalog {
	margarita := cocktail("11007", "Margarita")
	margarita.Ingredients = []string{"1 1/2 oz Tequila", "1/2 oz Triple sec", "1 oz Lime juice", "Salt"}
	return &stubCatalog{
		pages: [][]domain.CocktailDetail{
			{margarita, cocktail("1", "Abbey Martini"), cocktail("2", "Adam"), cocktail("3", "Addison"), cocktail("4", "Affair")},
			{cocktail("5", "Affinity"), cocktail("6", "Alexander"), cocktail("7", "Alfie")},
		},
		categories: []domain.Category{{Name: "Ordinary Drink"}, {Name: "Cocktail"}},
		filtered: map[string][]domain.CocktailSummary{
			"Ordinary Drink": {{ID: "20", Name: "Old Fashioned"}},
			"Cocktail":       {{ID: "21", Name: "Mojito"}, {ID: "22", Name: "Negroni"}},
		},
		details: map[domain.CocktailID]domain.CocktailDetail{
			"11007": margarita,
			"1":     cocktail("1", "Abbey Martini"),
			"21":    cocktail("21", "Mojito"),
		},
	}
}

func newTestModel(t *testing.T, catalog *stubCatalog, registry *favorites.Registry) Model {
	t.Helper()
	m := NewModel(Options{
		Catalog:   catalog,
		Favorites: registry,
		Prefetch:  2,
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// run executes a load command and feeds its message back into the model.
// Batches are unrolled; they must only hold load commands.
func run(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var next tea.Cmd
		for _, c := range batch {
			if c != nil {
				m, next = run(t, m, c)
			}
		}
		return m, next
	}
	return update(t, m, msg)
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = update(t, m, keyMsg(k))
	}
	return m, cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestHomeLoadsPagesAsCursorNearsEnd(t *testing.T) {
	catalog := newStubCatalog()
	m := newTestModel(t, catalog, nil)

	m, cmd := run(t, m, m.activate(TabHome))
	assert.Nil(t, cmd, "first page is far from the cursor")

	home := m.Tabs[TabHome].stack.Root()
	require.Equal(t, 5, home.Len())
	assert.Equal(t, 2, m.Pager.NextPage())

	// Jumping to the last row crosses the prefetch threshold
	m, cmd = press(t, m, "G")
	require.NotNil(t, cmd)
	assert.True(t, m.Pager.Loading())
	assert.True(t, home.IsLoading())

	m, _ = run(t, m, cmd)
	assert.Equal(t, 8, home.Len())
	assert.Equal(t, 4, home.SelectedIndex(), "cursor stays put when rows are appended")

	// Page 3 is empty, which exhausts the feed
	m, cmd = press(t, m, "G")
	m, _ = run(t, m, cmd)
	assert.True(t, m.Pager.Exhausted())
	assert.Equal(t, 8, home.Len())

	_, cmd = press(t, m, "k", "j")
	assert.Nil(t, cmd, "an exhausted feed does not fetch again")
}

func TestCategorySelectionDropsStaleResults(t *testing.T) {
	catalog := newStubCatalog()
	m := newTestModel(t, catalog, nil)
	m.Active = TabCategories

	m, _ = run(t, m, m.activate(TabCategories))
	root := m.Tabs[TabCategories].stack.Root()
	require.Equal(t, 2, root.Len())

	// Select "Ordinary Drink", back out before it resolves, select "Cocktail"
	m, stale := press(t, m, "enter")
	require.NotNil(t, stale)
	m, _ = press(t, m, "esc")
	assert.Nil(t, m.Categories.Selection())

	m, current := press(t, m, "j", "enter")
	require.NotNil(t, current)

	m, _ = run(t, m, current)
	m, _ = run(t, m, stale)

	results := m.Tabs[TabCategories].stack.Top()
	assert.Equal(t, "Cocktail", results.Title())
	require.Equal(t, 2, results.Len())
	first, ok := results.SelectedCocktail()
	require.True(t, ok)
	assert.Equal(t, "Mojito", first.Name)
	assert.Equal(t, "Cocktail", m.Categories.Selection().Name)
}

func TestDetailOpensAndFavoriteToggles(t *testing.T) {
	catalog := newStubCatalog()
	registry := favorites.NewRegistry(nil, nil)
	m := newTestModel(t, catalog, registry)
	m, _ = run(t, m, m.activate(TabHome))

	m, cmd := press(t, m, "enter")
	ts := m.Tabs[TabHome]
	require.NotNil(t, ts.detail)
	assert.True(t, ts.detail.State().Loading())

	m, _ = run(t, m, cmd)
	state := ts.inspector.State()
	require.True(t, state.Ready())
	assert.Equal(t, "Margarita", state.Value.Name)
	assert.Equal(t, []string{"1 1/2 oz Tequila", "1/2 oz Triple sec", "1 oz Lime juice", "Salt"}, state.Value.Ingredients)

	m, _ = press(t, m, "f")
	assert.True(t, registry.Contains("11007"))
	assert.Contains(t, m.StatusMsg, "Added Margarita")

	m, _ = update(t, m, FavoritesChangedMsg{})
	fav := m.Tabs[TabFavorites].stack.Root()
	require.Equal(t, 1, fav.Len())
	assert.Equal(t, "Favorites (1)", fav.Title())
	assert.Contains(t, m.View(), "Margarita")

	m, _ = press(t, m, "f")
	assert.False(t, registry.Contains("11007"))

	// Back closes the panel and returns focus to the list
	m, _ = press(t, m, "esc")
	assert.Nil(t, ts.detail)
	assert.True(t, ts.stack.Top().IsFocused())
}

func TestLateDetailAfterCloseIsIgnored(t *testing.T) {
	catalog := newStubCatalog()
	m := newTestModel(t, catalog, nil)
	m, _ = run(t, m, m.activate(TabHome))

	m, cmd := press(t, m, "enter")
	loader := m.Tabs[TabHome].detail
	m, _ = press(t, m, "esc")

	m, _ = run(t, m, cmd)
	assert.True(t, loader.Closed())
	assert.Equal(t, browse.StatusLoading, loader.State().Status, "closed loader is not mutated")
	assert.Nil(t, m.Tabs[TabHome].detail)
}

func TestDetailFailureCanBeRetried(t *testing.T) {
	catalog := newStubCatalog()
	catalog.lookupErr = fmt.Errorf("%w: connection reset", domain.ErrNetwork)
	m := newTestModel(t, catalog, nil)
	m, _ = run(t, m, m.activate(TabHome))

	m, cmd := press(t, m, "enter")
	m, _ = run(t, m, cmd)

	ts := m.Tabs[TabHome]
	assert.True(t, ts.inspector.State().Failed())
	assert.Equal(t, domain.KindNetwork, ts.detail.Kind())
	assert.True(t, m.StatusIsErr)
	assert.Contains(t, m.StatusMsg, "NetworkError")

	catalog.mu.Lock()
	catalog.lookupErr = nil
	catalog.mu.Unlock()

	m, cmd = press(t, m, "r")
	assert.True(t, ts.inspector.State().Loading())
	_, _ = run(t, m, cmd)
	assert.True(t, ts.inspector.State().Ready())
}

func TestFavoritesResolveUnknownNames(t *testing.T) {
	catalog := newStubCatalog()
	registry := favorites.NewRegistry(nil, nil)
	registry.Toggle("11007")

	m := newTestModel(t, catalog, registry)
	fav := m.Tabs[TabFavorites].stack.Root()

	cmd := m.activate(TabFavorites)
	m.Active = TabFavorites
	row, ok := fav.SelectedCocktail()
	require.True(t, ok)
	assert.Equal(t, "#11007", row.Name, "unknown names show the id until resolved")

	m, _ = run(t, m, cmd)
	row, _ = fav.SelectedCocktail()
	assert.Equal(t, "Margarita", row.Name)

	// d removes from the favorites tab
	m, _ = press(t, m, "d")
	assert.Equal(t, 0, registry.Len())
	m, _ = update(t, m, FavoritesChangedMsg{})
	assert.Equal(t, 0, fav.Len())
}

func TestRemoveOnlyOnFavoritesTab(t *testing.T) {
	catalog := newStubCatalog()
	registry := favorites.NewRegistry(nil, nil)
	registry.Toggle("11007")
	m := newTestModel(t, catalog, registry)
	m, _ = run(t, m, m.activate(TabHome))

	_, _ = press(t, m, "d")
	assert.True(t, registry.Contains("11007"))
}

func TestTabKeysSwitchTabs(t *testing.T) {
	m := newTestModel(t, newStubCatalog(), nil)

	m, cmd := press(t, m, "2")
	assert.Equal(t, TabCategories, m.Active)
	assert.NotNil(t, cmd, "first visit loads the vocabulary")

	m, _ = press(t, m, "tab")
	assert.Equal(t, TabFavorites, m.Active)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabCategories, m.Active)

	m, _ = press(t, m, "1")
	assert.Equal(t, TabHome, m.Active)
}

func TestFilterTypingSwallowsKeys(t *testing.T) {
	m := newTestModel(t, newStubCatalog(), nil)
	m, _ = run(t, m, m.activate(TabHome))

	m, _ = press(t, m, "/", "a", "d", "a")
	home := m.Tabs[TabHome].stack.Root()
	assert.True(t, home.IsFilterTyping())
	assert.Equal(t, TabHome, m.Active)
	first, _ := home.SelectedCocktail()
	assert.Equal(t, "Adam", first.Name)

	// q is typed into the filter, not treated as quit
	m, _ = press(t, m, "q")
	assert.True(t, home.IsFilterTyping())
	assert.Equal(t, 0, home.ItemCount())

	m, _ = press(t, m, "esc")
	assert.False(t, home.IsFiltering())
	assert.Equal(t, 5, home.ItemCount())
}

func TestBackClearsAcceptedFilterFirst(t *testing.T) {
	m := newTestModel(t, newStubCatalog(), nil)
	m.Active = TabCategories
	m, _ = run(t, m, m.activate(TabCategories))

	// Cocktail lists Mojito and Negroni
	m, cmd := press(t, m, "j", "enter")
	m, _ = run(t, m, cmd)
	stack := m.Tabs[TabCategories].stack
	require.Equal(t, 2, stack.Len())

	m, _ = press(t, m, "/", "n", "e", "g", "enter")
	top := stack.Top()
	require.True(t, top.IsFiltering())
	require.False(t, top.IsFilterTyping())
	require.Equal(t, 1, top.ItemCount())

	// h clears the filter and stays in the column
	m, _ = press(t, m, "h")
	assert.False(t, top.IsFiltering())
	assert.Equal(t, 2, top.ItemCount())
	assert.Equal(t, 2, stack.Len())

	// the next back pops
	m, _ = press(t, m, "h")
	assert.Equal(t, 1, stack.Len())
	assert.Nil(t, m.Categories.Selection())
}

type stubOpener struct {
	opened []string
	err    error
}

func (o *stubOpener) Open(url string) error {
	o.opened = append(o.opened, url)
	return o.err
}

func TestOpenImage(t *testing.T) {
	catalog := newStubCatalog()
	catalog.pages[0][0].ThumbURL = "http://img/margarita.jpg"
	opener := &stubOpener{}
	m := newTestModel(t, catalog, nil)
	m.Opener = opener

	m, _ = run(t, m, m.activate(TabHome))

	m, cmd := press(t, m, "o")
	m, _ = run(t, m, cmd)
	assert.Equal(t, []string{"http://img/margarita.jpg"}, opener.opened)
	assert.Equal(t, "Opened image of Margarita", m.StatusMsg)

	m, _ = press(t, m, "j", "o")
	assert.Len(t, opener.opened, 1)
	assert.Equal(t, "No image for Abbey Martini", m.StatusMsg)
	assert.True(t, m.StatusIsErr)

	opener.err = fmt.Errorf("%w: no viewer", domain.ErrInvalidArgument)
	m, cmd = press(t, m, "k", "o")
	m, _ = run(t, m, cmd)
	assert.Contains(t, m.StatusMsg, "InvalidArgument")
	assert.True(t, m.StatusIsErr)
}

func TestParseTab(t *testing.T) {
	assert.Equal(t, TabHome, ParseTab("home"))
	assert.Equal(t, TabHome, ParseTab("bogus"))
	assert.Equal(t, TabCategories, ParseTab(" Categories "))
	assert.Equal(t, TabFavorites, ParseTab("favorites"))
}

func TestCalculateColumnLayout(t *testing.T) {
	l := calculateColumnLayout(100, 1, false)
	assert.Equal(t, columnLayout{activeWidth: 100}, l)

	l = calculateColumnLayout(100, 1, true)
	assert.Equal(t, 100, l.activeWidth+l.inspectorWidth)

	l = calculateColumnLayout(100, 2, false)
	assert.Equal(t, 100, l.parentWidth+l.activeWidth)

	l = calculateColumnLayout(100, 2, true)
	assert.Equal(t, 100, l.parentWidth+l.activeWidth+l.inspectorWidth)
}
