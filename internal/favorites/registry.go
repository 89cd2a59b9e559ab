// Package favorites keeps the set of cocktails the user has liked.
package favorites

import (
	"log/slog"
	"slices"

	"github.com/mmcdole/barcart/internal/domain"
)

// Observer receives the new snapshot after every change
type Observer func(snapshot []domain.CocktailID)

type subscription struct {
	id uint64
	fn Observer
}

// Registry is an observable, insertion-ordered set of cocktail ids.
// It is not safe for concurrent use; confine it to the UI goroutine.
type Registry struct {
	ids     []domain.CocktailID
	members map[domain.CocktailID]struct{}

	subs    []subscription
	nextSub uint64

	store  domain.FavoritesStore
	logger *slog.Logger
}

// NewRegistry creates an empty registry. store may be nil.
func NewRegistry(store domain.FavoritesStore, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		members: make(map[domain.CocktailID]struct{}),
		store:   store,
		logger:  logger,
	}
}

// Load seeds the registry from its store, replacing the current contents
func (r *Registry) Load() error {
	if r.store == nil {
		return nil
	}
	ids, err := r.store.Load()
	if err != nil {
		return err
	}

	r.ids = nil
	r.members = make(map[domain.CocktailID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := r.members[id]; dup || id == "" {
			continue
		}
		r.members[id] = struct{}{}
		r.ids = append(r.ids, id)
	}
	r.logger.Debug("favorites loaded", "count", len(r.ids))
	r.notify()
	return nil
}

// Contains reports whether id is a favorite
func (r *Registry) Contains(id domain.CocktailID) bool {
	_, ok := r.members[id]
	return ok
}

// Len returns the number of favorites
func (r *Registry) Len() int { return len(r.ids) }

// Toggle flips membership of id and returns the new membership
func (r *Registry) Toggle(id domain.CocktailID) bool {
	if r.Contains(id) {
		r.remove(id)
		r.changed()
		return false
	}
	r.members[id] = struct{}{}
	r.ids = append(r.ids, id)
	r.changed()
	return true
}

// Remove drops id; removing an absent id does nothing
func (r *Registry) Remove(id domain.CocktailID) {
	if !r.Contains(id) {
		return
	}
	r.remove(id)
	r.changed()
}

func (r *Registry) remove(id domain.CocktailID) {
	delete(r.members, id)
	r.ids = slices.DeleteFunc(r.ids, func(v domain.CocktailID) bool { return v == id })
}

// Snapshot returns the favorites in insertion order
func (r *Registry) Snapshot() []domain.CocktailID {
	return slices.Clone(r.ids)
}

// Subscribe registers fn for change notifications and returns a func that
// unregisters it
func (r *Registry) Subscribe(fn Observer) (unsubscribe func()) {
	r.nextSub++
	id := r.nextSub
	r.subs = append(r.subs, subscription{id: id, fn: fn})
	return func() {
		r.subs = slices.DeleteFunc(r.subs, func(s subscription) bool { return s.id == id })
	}
}

func (r *Registry) changed() {
	if r.store != nil {
		if err := r.store.Save(r.ids); err != nil {
			r.logger.Error("failed to save favorites", "error", err)
		}
	}
	r.notify()
}

func (r *Registry) notify() {
	for _, s := range slices.Clone(r.subs) {
		s.fn(r.Snapshot())
	}
}
