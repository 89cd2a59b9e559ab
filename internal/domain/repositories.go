package domain

import (
	"context"
)

// CatalogRepository provides read access to the remote cocktail catalog.
// All operations are idempotent and never retried.
type CatalogRepository interface {
	// SearchByFirstLetter returns one page of cocktails whose name starts with letter.
	// Pages are 1-based; an empty slice means no matches.
	SearchByFirstLetter(ctx context.Context, letter string, page int) ([]CocktailDetail, error)

	// ListCategories returns the catalog's category vocabulary
	ListCategories(ctx context.Context) ([]Category, error)

	// FilterByCategory returns summaries of the cocktails in a category
	FilterByCategory(ctx context.Context, category string) ([]CocktailSummary, error)

	// LookupByID returns the full record, or ErrNotFound
	LookupByID(ctx context.Context, id CocktailID) (CocktailDetail, error)
}
