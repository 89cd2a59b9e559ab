package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/barcart/internal/browse"
	"github.com/mmcdole/barcart/internal/domain"
)

// Command factories for async operations. Each runs a request built on the
// update goroutine; the result comes back as a message and is applied there.

// DefaultRequestTimeout bounds a single catalog request
const DefaultRequestTimeout = 15 * time.Second

// LoadPageCmd fetches one home feed page
func LoadPageCmd(req *browse.PageRequest, timeout time.Duration) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return PageLoadedMsg{Result: req.Run(ctx)}
	}
}

// LoadCategoriesCmd fetches the category vocabulary
func LoadCategoriesCmd(req *browse.CategoriesRequest, timeout time.Duration) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return CategoriesLoadedMsg{Result: req.Run(ctx)}
	}
}

// FilterCategoryCmd fetches the cocktails of the selected category
func FilterCategoryCmd(req *browse.FilterRequest, timeout time.Duration) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return FilterLoadedMsg{Result: req.Run(ctx)}
	}
}

// LoadDetailCmd fetches the record behind an open detail panel
func LoadDetailCmd(loader *browse.DetailLoader, timeout time.Duration) tea.Cmd {
	req := loader.Begin()
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return DetailLoadedMsg{Loader: loader, Result: req.Run(ctx)}
	}
}

// ResolveFavoriteCmd looks up a favorite to learn its name
func ResolveFavoriteCmd(repo domain.CatalogRepository, id domain.CocktailID, timeout time.Duration) tea.Cmd {
	req := browse.NewDetailLoader(repo, id).Begin()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return FavoriteResolvedMsg{Result: req.Run(ctx)}
	}
}

// WaitForFavoritesCmd blocks until the registry reports a change
func WaitForFavoritesCmd(obs *FavoritesObserver) tea.Cmd {
	return func() tea.Msg {
		<-obs.C()
		return FavoritesChangedMsg{}
	}
}

// ClearStatusCmd clears the status line after a delay
func ClearStatusCmd(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

// OpenImageCmd opens url in the external viewer
func OpenImageCmd(opener URLOpener, url, name string) tea.Cmd {
	return func() tea.Msg {
		return ImageOpenedMsg{Name: name, Err: opener.Open(url)}
	}
}
