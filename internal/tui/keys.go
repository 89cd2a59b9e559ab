package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Tabs
	NextTab       key.Binding
	PrevTab       key.Binding
	HomeTab       key.Binding
	CategoriesTab key.Binding
	FavoritesTab  key.Binding

	// Navigation
	Enter key.Binding
	Back  key.Binding

	// Actions
	Quit     key.Binding
	Help     key.Binding
	Filter   key.Binding
	Favorite key.Binding
	Remove   key.Binding
	Retry    key.Binding
	Open     key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous tab"),
		),
		HomeTab: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		CategoriesTab: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "categories"),
		),
		FavoritesTab: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "favorites"),
		),

		Enter: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "h", "left", "backspace"),
			key.WithHelp("esc/h", "back"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle favorite"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "remove favorite"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open image"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

// helpBindings lists the bindings shown in the help overlay, in order
func helpBindings() []key.Binding {
	return []key.Binding{
		Keys.NextTab, Keys.PrevTab, Keys.HomeTab, Keys.CategoriesTab, Keys.FavoritesTab,
		Keys.Enter, Keys.Back, Keys.Filter, Keys.Favorite, Keys.Remove, Keys.Retry, Keys.Open,
		Keys.Help, Keys.Quit,
	}
}
