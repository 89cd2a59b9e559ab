package browse

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmcdole/barcart/internal/domain"
)

// fakeCatalog is an in-memory domain.CatalogRepository
type fakeCatalog struct {
	mu sync.Mutex

	pages      map[int][]domain.CocktailDetail
	pageErr    map[int]error
	categories []domain.Category
	catErr     error
	filtered   map[string][]domain.CocktailSummary
	details    map[domain.CocktailID]domain.CocktailDetail
	lookupErr  error

	searches []int
	filters  []string
	lookups  []domain.CocktailID
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		pages:    make(map[int][]domain.CocktailDetail),
		pageErr:  make(map[int]error),
		filtered: make(map[string][]domain.CocktailSummary),
		details:  make(map[domain.CocktailID]domain.CocktailDetail),
	}
}

func detail(id, name string) domain.CocktailDetail {
	return domain.CocktailDetail{ID: domain.CocktailID(id), Name: name}
}

func summary(id, name string) domain.CocktailSummary {
	return domain.CocktailSummary{ID: domain.CocktailID(id), Name: name}
}

func ids(items []domain.CocktailSummary) []domain.CocktailID {
	out := make([]domain.CocktailID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func (f *fakeCatalog) SearchByFirstLetter(_ context.Context, letter string, page int) ([]domain.CocktailDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, page)
	if err := f.pageErr[page]; err != nil {
		return nil, err
	}
	return f.pages[page], nil
}

func (f *fakeCatalog) ListCategories(context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.catErr != nil {
		return nil, f.catErr
	}
	return f.categories, nil
}

func (f *fakeCatalog) FilterByCategory(_ context.Context, category string) ([]domain.CocktailSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, category)
	return f.filtered[category], nil
}

func (f *fakeCatalog) LookupByID(_ context.Context, id domain.CocktailID) (domain.CocktailDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, id)
	if f.lookupErr != nil {
		return domain.CocktailDetail{}, f.lookupErr
	}
	d, ok := f.details[id]
	if !ok {
		return domain.CocktailDetail{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return d, nil
}
