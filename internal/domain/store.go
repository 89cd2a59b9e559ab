package domain

// FavoritesStore persists the favorites set between sessions.
// The memory-only implementation forgets everything on Close.
type FavoritesStore interface {
	Load() ([]CocktailID, error)
	Save(ids []CocktailID) error
	Close() error
}
