package tui

import "github.com/mmcdole/barcart/internal/domain"

// FavoritesObserver adapts favorites.Observer to a channel for Bubble Tea.
// Notifications coalesce: the program reads the registry when woken.
type FavoritesObserver struct {
	ch chan struct{}
}

// NewFavoritesObserver creates a new channel-based observer.
func NewFavoritesObserver() *FavoritesObserver {
	return &FavoritesObserver{ch: make(chan struct{}, 1)}
}

// OnChange signals the channel (non-blocking if a wakeup is already pending).
func (o *FavoritesObserver) OnChange(_ []domain.CocktailID) {
	select {
	case o.ch <- struct{}{}:
	default:
	}
}

// C returns the wakeup channel
func (o *FavoritesObserver) C() <-chan struct{} {
	return o.ch
}
