package tui

import (
	"github.com/mmcdole/barcart/internal/browse"
)

// Message types for the TUI

// PageLoadedMsg carries a home feed page
type PageLoadedMsg struct {
	Result browse.PageResult
}

// CategoriesLoadedMsg carries the category vocabulary
type CategoriesLoadedMsg struct {
	Result browse.CategoriesResult
}

// FilterLoadedMsg carries the cocktails of one category
type FilterLoadedMsg struct {
	Result browse.FilterResult
}

// DetailLoadedMsg carries a lookup for an open detail panel
type DetailLoadedMsg struct {
	Loader *browse.DetailLoader
	Result browse.DetailResult
}

// FavoriteResolvedMsg carries a lookup for a favorite whose name was unknown
type FavoriteResolvedMsg struct {
	Result browse.DetailResult
}

// FavoritesChangedMsg signals that the favorites registry changed
type FavoritesChangedMsg struct{}

// ImageOpenedMsg reports the result of opening a cocktail image
type ImageOpenedMsg struct {
	Name string
	Err  error
}

// ClearStatusMsg clears a transient status message
type ClearStatusMsg struct {
	Seq int
}
