package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/barcart/internal/browse"
	"github.com/mmcdole/barcart/internal/domain"
	"github.com/mmcdole/barcart/internal/favorites"
	"github.com/mmcdole/barcart/internal/tui/components"
	"github.com/mmcdole/barcart/internal/tui/styles"
)

// Tab identifies one of the top-level screens
type Tab int

const (
	TabHome Tab = iota
	TabCategories
	TabFavorites
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabCategories:
		return "categories"
	case TabFavorites:
		return "favorites"
	default:
		return "home"
	}
}

// ParseTab maps a config name to a tab; unknown names give TabHome
func ParseTab(name string) Tab {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "categories", "category":
		return TabCategories
	case "favorites", "favourites":
		return TabFavorites
	default:
		return TabHome
	}
}

// How long transient status messages stay in the footer
const (
	statusTimeout      = 3 * time.Second
	errorStatusTimeout = 8 * time.Second
)

// Options configures a Model
type Options struct {
	Catalog    domain.CatalogRepository
	Favorites  *favorites.Registry // nil gives a memory-only registry
	Logger     *slog.Logger
	Letter     string        // home feed letter
	Prefetch   int           // rows from the end that trigger the next page
	Timeout    time.Duration // per-request timeout
	DefaultTab Tab
	Opener     URLOpener // nil disables opening images
}

// URLOpener shows a URL outside the terminal
type URLOpener interface {
	Open(url string) error
}

// tabState is one tab's navigation: a column stack and an optional detail panel
type tabState struct {
	stack     *ColumnStack
	detail    *browse.DetailLoader // nil when the panel is closed
	inspector components.Inspector
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Core
	Catalog    domain.CatalogRepository
	Favorites  *favorites.Registry
	Pager      *browse.Pager
	Categories *browse.CategoryBrowser
	Logger     *slog.Logger
	Timeout    time.Duration
	Prefetch   int
	Opener     URLOpener

	// UI Components
	Tabs    [tabCount]*tabState
	Active  Tab
	Spinner spinner.Model

	// Dimensions
	Width  int
	Height int
	Ready  bool

	// UI state
	ShowHelp    bool
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int

	// Names learned from any list, used to label favorites
	known     map[domain.CocktailID]domain.CocktailSummary
	resolving map[domain.CocktailID]bool

	observer    *FavoritesObserver
	unsubscribe func()
}

// NewModel creates the application model
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	registry := opts.Favorites
	if registry == nil {
		registry = favorites.NewRegistry(nil, logger)
	}

	pager := browse.NewPager(opts.Catalog, opts.Letter, logger)

	m := Model{
		Catalog:    opts.Catalog,
		Favorites:  registry,
		Pager:      pager,
		Categories: browse.NewCategoryBrowser(opts.Catalog, logger),
		Logger:     logger,
		Timeout:    timeout,
		Prefetch:   max(opts.Prefetch, 0),
		Opener:     opts.Opener,
		Active:     opts.DefaultTab,
		Spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.AccentStyle),
		),
		known:     make(map[domain.CocktailID]domain.CocktailSummary),
		resolving: make(map[domain.CocktailID]bool),
		observer:  NewFavoritesObserver(),
	}
	if m.Active < 0 || m.Active >= tabCount {
		m.Active = TabHome
	}

	marked := func(item domain.ListItem) bool {
		return registry.Contains(domain.CocktailID(item.GetID()))
	}
	roots := [tabCount]*components.ListColumn{
		TabHome:       components.NewListColumn("Cocktails · " + strings.ToUpper(pager.Letter())),
		TabCategories: components.NewListColumn("Categories"),
		TabFavorites:  components.NewListColumn("Favorites"),
	}
	for t, root := range roots {
		root.SetMarker(marked)
		m.Tabs[t] = &tabState{
			stack:     NewColumnStack(root),
			inspector: components.NewInspector(),
		}
	}

	m.unsubscribe = registry.Subscribe(m.observer.OnChange)
	return m
}

// Init starts the spinner, the favorites listener and the first tab's load
func (m Model) Init() tea.Cmd {
	m.refreshFavorites(false)
	return tea.Batch(
		m.Spinner.Tick,
		WaitForFavoritesCmd(m.observer),
		m.activate(m.Active),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		frame := m.Spinner.View()
		for _, ts := range m.Tabs {
			ts.stack.SetSpinner(frame)
			ts.inspector.SetSpinner(frame)
		}
		return m, cmd

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)

	case CategoriesLoadedMsg:
		return m.handleCategoriesLoaded(msg)

	case FilterLoadedMsg:
		return m.handleFilterLoaded(msg)

	case DetailLoadedMsg:
		return m.handleDetailLoaded(msg)

	case FavoriteResolvedMsg:
		m.resolving[msg.Result.ID] = msg.Result.Err != nil
		if msg.Result.Err != nil {
			m.Logger.Warn("failed to resolve favorite", "id", msg.Result.ID, "error", msg.Result.Err)
			return m, nil
		}
		m.remember(msg.Result.Detail.Summary())
		delete(m.resolving, msg.Result.ID)
		return m, m.refreshFavorites(false)

	case FavoritesChangedMsg:
		cmd := m.refreshFavorites(m.Active == TabFavorites)
		for _, ts := range m.Tabs {
			m.syncDetail(ts)
		}
		return m, tea.Batch(cmd, WaitForFavoritesCmd(m.observer))

	case ImageOpenedMsg:
		if msg.Err != nil {
			return m, m.setStatus(errorText(msg.Err), true)
		}
		return m, m.setStatus(fmt.Sprintf("Opened image of %s", msg.Name), false)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	err := m.Pager.Apply(msg.Result)
	for _, s := range msg.Result.Items {
		m.remember(s)
	}
	m.syncHome()
	if err != nil {
		return m, m.setStatus("Loading cocktails failed: "+errorText(err), true)
	}
	return m, m.maybeLoadMore()
}

func (m Model) handleCategoriesLoaded(msg CategoriesLoadedMsg) (tea.Model, tea.Cmd) {
	err := m.Categories.ApplyCategories(msg.Result)
	m.syncCategories()
	if err != nil {
		return m, m.setStatus("Loading categories failed: "+errorText(err), true)
	}
	return m, nil
}

func (m Model) handleFilterLoaded(msg FilterLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.Categories.IsCurrent(msg.Result) {
		m.Logger.Debug("dropping stale category result", "category", msg.Result.Category.Name)
		return m, nil
	}
	err := m.Categories.ApplyFilter(msg.Result)

	col := m.Tabs[TabCategories].stack.Get(1)
	if col == nil {
		return m, nil
	}
	results := m.Categories.Results()
	if err != nil {
		col.SetError(errorText(err))
		return m, m.setStatus("Loading "+msg.Result.Category.Name+" failed: "+errorText(err), true)
	}
	for _, s := range results.Value {
		m.remember(s)
	}
	col.SetItems(cocktailItems(results.Value))
	col.SetNote(fmt.Sprintf("%d cocktails", len(results.Value)))
	return m, nil
}

func (m Model) handleDetailLoaded(msg DetailLoadedMsg) (tea.Model, tea.Cmd) {
	msg.Loader.Apply(msg.Result)
	if msg.Loader.Closed() {
		return m, nil
	}
	if msg.Result.Err == nil {
		m.remember(msg.Result.Detail.Summary())
	}

	var cmd tea.Cmd
	for _, ts := range m.Tabs {
		if ts.detail != msg.Loader {
			continue
		}
		m.syncDetail(ts)
		if msg.Result.Err != nil {
			cmd = m.setStatus("Loading cocktail failed: "+errorText(msg.Result.Err), true)
		}
	}
	return m, cmd
}

// syncHome projects pager state onto the home column
func (m *Model) syncHome() {
	col := m.Tabs[TabHome].stack.Root()
	col.UpdateItems(cocktailItems(m.Pager.Items()))
	col.SetLoading(m.Pager.Loading())

	switch err := m.Pager.Err(); {
	case err != nil && m.Pager.Len() == 0:
		col.SetError(errorText(err))
	case err != nil:
		col.SetNote("Couldn't load more · r to retry")
	case m.Pager.Exhausted():
		col.SetNote(fmt.Sprintf("End · %d cocktails", m.Pager.Len()))
	default:
		col.SetNote("")
	}
}

// syncCategories projects the category vocabulary onto the categories root
func (m *Model) syncCategories() {
	col := m.Tabs[TabCategories].stack.Root()
	st := m.Categories.Categories()
	switch st.Status {
	case browse.StatusLoading:
		col.SetLoading(true)
	case browse.StatusFailed:
		col.SetError(errorText(st.Err))
	case browse.StatusReady:
		if col.Len() != len(st.Value) {
			col.SetItems(categoryItems(st.Value))
		}
	}
}

// syncDetail copies a tab's loader state into its inspector
func (m *Model) syncDetail(ts *tabState) {
	if ts.detail == nil {
		return
	}
	ts.inspector.SetState(ts.detail.ID(), ts.detail.State())
	ts.inspector.SetFavorite(m.Favorites.Contains(ts.detail.ID()))
	ts.inspector.SetSpinner(m.Spinner.View())
}

// refreshFavorites rebuilds the favorites column. With resolve set, ids
// whose names are unknown are looked up.
func (m *Model) refreshFavorites(resolve bool) tea.Cmd {
	ids := m.Favorites.Snapshot()
	items := make([]domain.ListItem, len(ids))
	var cmds []tea.Cmd
	for i, id := range ids {
		items[i] = m.summaryFor(id)
		if _, ok := m.known[id]; ok || !resolve {
			continue
		}
		if _, pending := m.resolving[id]; pending {
			continue
		}
		m.resolving[id] = false
		cmds = append(cmds, ResolveFavoriteCmd(m.Catalog, id, m.Timeout))
	}

	col := m.Tabs[TabFavorites].stack.Root()
	col.SetTitle(fmt.Sprintf("Favorites (%d)", len(ids)))
	col.UpdateItems(items)
	if len(ids) == 0 {
		col.SetNote("")
	}
	return tea.Batch(cmds...)
}

// remember records a cocktail's name for labelling favorites
func (m *Model) remember(s domain.CocktailSummary) {
	if s.ID == "" || s.Name == "" {
		return
	}
	m.known[s.ID] = s
}

// summaryFor returns the best known row for id
func (m Model) summaryFor(id domain.CocktailID) domain.CocktailSummary {
	if s, ok := m.known[id]; ok {
		return s
	}
	return domain.CocktailSummary{ID: id, Name: "#" + string(id)}
}

func (m Model) tab() *tabState {
	return m.Tabs[m.Active]
}

// setStatus shows msg in the footer until it times out or is replaced
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	timeout := statusTimeout
	if isErr {
		timeout = errorStatusTimeout
	}
	return ClearStatusCmd(m.statusSeq, timeout)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	titles := make([]string, tabCount)
	for t := range tabCount {
		titles[t] = tabTitle(t, m.Favorites.Len())
	}
	tabBar := components.RenderTabBar(titles, int(m.Active), m.Width)

	var body string
	if m.ShowHelp {
		body = m.renderHelp()
	} else {
		body = m.renderTab(m.tab())
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, body, m.renderFooter())
}

func (m Model) renderTab(ts *tabState) string {
	var views []string
	if parent := ts.stack.Parent(); parent != nil {
		views = append(views, parent.View())
	}
	views = append(views, ts.stack.Top().View())
	if ts.detail != nil {
		views = append(views, ts.inspector.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

func cocktailItems(summaries []domain.CocktailSummary) []domain.ListItem {
	items := make([]domain.ListItem, len(summaries))
	for i, s := range summaries {
		items[i] = s
	}
	return items
}

func categoryItems(categories []domain.Category) []domain.ListItem {
	items := make([]domain.ListItem, len(categories))
	for i, c := range categories {
		items[i] = c
	}
	return items
}
