package browse

import (
	"context"
	"log/slog"

	"github.com/mmcdole/barcart/internal/domain"
)

// CategoryBrowser holds the category vocabulary, the current selection and
// the cocktails in that selection.
//
// Selection is last-write-wins: each Select bumps a token and results carrying
// an older token are discarded on Apply.
type CategoryBrowser struct {
	repo   domain.CatalogRepository
	logger *slog.Logger

	categories FetchState[[]domain.Category]
	selection  *domain.Category
	results    FetchState[[]domain.CocktailSummary]
	token      uint64
}

// CategoriesRequest is an in-flight vocabulary fetch
type CategoriesRequest struct {
	repo domain.CatalogRepository
}

// CategoriesResult is the outcome of CategoriesRequest.Run
type CategoriesResult struct {
	Categories []domain.Category
	Err        error
}

// FilterRequest is an in-flight fetch of one category's cocktails
type FilterRequest struct {
	repo     domain.CatalogRepository
	category domain.Category
	token    uint64
}

// FilterResult is the outcome of FilterRequest.Run
type FilterResult struct {
	Category domain.Category
	Items    []domain.CocktailSummary
	Err      error
	token    uint64
}

// NewCategoryBrowser creates an empty category browser
func NewCategoryBrowser(repo domain.CatalogRepository, logger *slog.Logger) *CategoryBrowser {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryBrowser{
		repo:   repo,
		logger: logger,
	}
}

// Categories returns the vocabulary state
func (b *CategoryBrowser) Categories() FetchState[[]domain.Category] { return b.categories }

// Selection returns the selected category, or nil
func (b *CategoryBrowser) Selection() *domain.Category {
	if b.selection == nil {
		return nil
	}
	sel := *b.selection
	return &sel
}

// Results returns the state of the selected category's cocktails
func (b *CategoryBrowser) Results() FetchState[[]domain.CocktailSummary] { return b.results }

// LoadCategories begins fetching the vocabulary. It is loaded once; later
// calls are no-ops unless the previous attempt failed.
func (b *CategoryBrowser) LoadCategories() (*CategoriesRequest, bool) {
	if b.categories.Ready() || b.categories.Loading() {
		return nil, false
	}
	b.categories = b.categories.Reduce(FetchStarted[[]domain.Category]{})
	return &CategoriesRequest{repo: b.repo}, true
}

// Run performs the fetch without touching browser state
func (r *CategoriesRequest) Run(ctx context.Context) CategoriesResult {
	categories, err := r.repo.ListCategories(ctx)
	return CategoriesResult{Categories: categories, Err: err}
}

// ApplyCategories folds a vocabulary result into the browser
func (b *CategoryBrowser) ApplyCategories(res CategoriesResult) error {
	if !b.categories.Loading() {
		return nil
	}
	b.categories = b.categories.Reduce(resultEvent(res.Categories, res.Err))
	if res.Err != nil {
		b.logger.Warn("category list fetch failed", "error", res.Err)
		return res.Err
	}
	b.logger.Debug("categories loaded", "count", len(res.Categories))
	return nil
}

// Select makes category current and begins fetching its cocktails.
// Results of the previous selection are cleared.
func (b *CategoryBrowser) Select(category domain.Category) *FilterRequest {
	b.token++
	b.selection = &category
	b.results = FetchState[[]domain.CocktailSummary]{}.Reduce(FetchStarted[[]domain.CocktailSummary]{})
	b.logger.Debug("category selected", "category", category.Name, "token", b.token)
	return &FilterRequest{
		repo:     b.repo,
		category: category,
		token:    b.token,
	}
}

// Category returns the category being fetched
func (r *FilterRequest) Category() domain.Category { return r.category }

// Run performs the fetch without touching browser state
func (r *FilterRequest) Run(ctx context.Context) FilterResult {
	items, err := r.repo.FilterByCategory(ctx, r.category.Name)
	return FilterResult{Category: r.category, Items: items, Err: err, token: r.token}
}

// ApplyFilter folds a filter result into the browser. A result for a
// selection that is no longer current is discarded and reports nil.
func (b *CategoryBrowser) ApplyFilter(res FilterResult) error {
	if res.token != b.token {
		b.logger.Debug("dropping stale category result", "category", res.Category.Name)
		return nil
	}
	b.results = b.results.Reduce(resultEvent(res.Items, res.Err))
	if res.Err != nil {
		b.logger.Warn("category fetch failed", "category", res.Category.Name, "error", res.Err)
		return res.Err
	}
	return nil
}

// IsCurrent reports whether res belongs to the current selection
func (b *CategoryBrowser) IsCurrent(res FilterResult) bool {
	return res.token == b.token
}

// ClearSelection drops the selection and discards any in-flight fetch
func (b *CategoryBrowser) ClearSelection() {
	b.token++
	b.selection = nil
	b.results = FetchState[[]domain.CocktailSummary]{}
}

// LoadCategoriesSync fetches the vocabulary on the calling goroutine
func (b *CategoryBrowser) LoadCategoriesSync(ctx context.Context) error {
	req, ok := b.LoadCategories()
	if !ok {
		return b.categories.Err
	}
	return b.ApplyCategories(req.Run(ctx))
}

// SelectSync selects category and fetches its cocktails on the calling goroutine
func (b *CategoryBrowser) SelectSync(ctx context.Context, category domain.Category) error {
	return b.ApplyFilter(b.Select(category).Run(ctx))
}
