package browse

import (
	"context"
	"fmt"
	"testing"

	"github.com/mmcdole/barcart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryBrowser_LoadCategoriesOnce(t *testing.T) {
	repo := newFakeCatalog()
	repo.categories = []domain.Category{{Name: "Ordinary Drink"}, {Name: "Cocktail"}}
	b := NewCategoryBrowser(repo, nil)

	req, ok := b.LoadCategories()
	require.True(t, ok)
	assert.True(t, b.Categories().Loading())

	_, ok = b.LoadCategories()
	assert.False(t, ok, "no second fetch while loading")

	require.NoError(t, b.ApplyCategories(req.Run(context.Background())))
	assert.True(t, b.Categories().Ready())
	assert.Equal(t, repo.categories, b.Categories().Value)

	_, ok = b.LoadCategories()
	assert.False(t, ok, "vocabulary is loaded once")
}

func TestCategoryBrowser_LoadCategoriesRetryAfterFailure(t *testing.T) {
	repo := newFakeCatalog()
	repo.catErr = fmt.Errorf("%w: offline", domain.ErrNetwork)
	b := NewCategoryBrowser(repo, nil)
	ctx := context.Background()

	err := b.LoadCategoriesSync(ctx)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.True(t, b.Categories().Failed())

	repo.catErr = nil
	repo.categories = []domain.Category{{Name: "Shot"}}
	require.NoError(t, b.LoadCategoriesSync(ctx))
	assert.Equal(t, []domain.Category{{Name: "Shot"}}, b.Categories().Value)
}

func TestCategoryBrowser_SelectFetchesFilter(t *testing.T) {
	repo := newFakeCatalog()
	repo.categories = []domain.Category{{Name: "Ordinary Drink"}, {Name: "Cocktail"}}
	repo.filtered["Cocktail"] = []domain.CocktailSummary{summary("17222", "A1"), summary("13501", "ABC")}
	b := NewCategoryBrowser(repo, nil)
	ctx := context.Background()

	require.NoError(t, b.LoadCategoriesSync(ctx))
	cocktail, ok := b.Resolve("Cocktail")
	require.True(t, ok)

	req := b.Select(cocktail)
	assert.True(t, b.Results().Loading())
	require.NotNil(t, b.Selection())
	assert.Equal(t, "Cocktail", b.Selection().Name)

	require.NoError(t, b.ApplyFilter(req.Run(ctx)))

	assert.Equal(t, []string{"Cocktail"}, repo.filters)
	assert.True(t, b.Results().Ready())
	assert.Equal(t, repo.filtered["Cocktail"], b.Results().Value)
}

func TestCategoryBrowser_LastSelectionWins(t *testing.T) {
	repo := newFakeCatalog()
	repo.filtered["A"] = []domain.CocktailSummary{summary("1", "From A")}
	repo.filtered["B"] = []domain.CocktailSummary{summary("2", "From B")}
	b := NewCategoryBrowser(repo, nil)
	ctx := context.Background()

	reqA := b.Select(domain.Category{Name: "A"})
	reqB := b.Select(domain.Category{Name: "B"})

	resB := reqB.Run(ctx)
	resA := reqA.Run(ctx)

	require.NoError(t, b.ApplyFilter(resB))
	assert.False(t, b.IsCurrent(resA))
	require.NoError(t, b.ApplyFilter(resA))

	assert.Equal(t, "B", b.Selection().Name)
	assert.Equal(t, []domain.CocktailID{"2"}, ids(b.Results().Value))
}

// gatedCatalog blocks FilterByCategory until the category's gate is closed
type gatedCatalog struct {
	*fakeCatalog
	gates map[string]chan struct{}
}

func (g *gatedCatalog) FilterByCategory(ctx context.Context, category string) ([]domain.CocktailSummary, error) {
	select {
	case <-g.gates[category]:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.fakeCatalog.FilterByCategory(ctx, category)
}

func TestCategoryBrowser_SlowStaleFetchIsDiscarded(t *testing.T) {
	fake := newFakeCatalog()
	fake.filtered["A"] = []domain.CocktailSummary{summary("1", "Slow A")}
	fake.filtered["B"] = []domain.CocktailSummary{summary("2", "Fast B")}
	repo := &gatedCatalog{
		fakeCatalog: fake,
		gates:       map[string]chan struct{}{"A": make(chan struct{}), "B": make(chan struct{})},
	}
	b := NewCategoryBrowser(repo, nil)
	ctx := context.Background()

	// Requests run on their own goroutines; results are applied on this one.
	results := make(chan FilterResult, 2)
	for _, req := range []*FilterRequest{b.Select(domain.Category{Name: "A"}), b.Select(domain.Category{Name: "B"})} {
		go func(r *FilterRequest) { results <- r.Run(ctx) }(req)
	}

	close(repo.gates["B"])
	first := <-results
	require.Equal(t, "B", first.Category.Name)
	require.NoError(t, b.ApplyFilter(first))

	close(repo.gates["A"])
	second := <-results
	require.Equal(t, "A", second.Category.Name)
	require.NoError(t, b.ApplyFilter(second))

	assert.Equal(t, []domain.CocktailID{"2"}, ids(b.Results().Value))
}

func TestCategoryBrowser_ClearSelection(t *testing.T) {
	repo := newFakeCatalog()
	repo.filtered["A"] = []domain.CocktailSummary{summary("1", "From A")}
	b := NewCategoryBrowser(repo, nil)

	req := b.Select(domain.Category{Name: "A"})
	b.ClearSelection()
	require.NoError(t, b.ApplyFilter(req.Run(context.Background())))

	assert.Nil(t, b.Selection())
	assert.Equal(t, StatusIdle, b.Results().Status)
	assert.Empty(t, b.Results().Value)
}

func TestResolveCategory(t *testing.T) {
	categories := []domain.Category{
		{Name: "Ordinary Drink"},
		{Name: "Cocktail"},
		{Name: "Shake"},
		{Name: "Other / Unknown"},
		{Name: "Cocoa"},
	}

	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"cocktail", "Cocktail", true},
		{"  COCOA ", "Cocoa", true},
		{"ordin", "Ordinary Drink", true},
		{"odrnk", "Ordinary Drink", true},
		{"other", "Other / Unknown", true},
		{"zzz", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, ok := ResolveCategory(categories, tt.query)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}
