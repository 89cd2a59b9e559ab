package domain

import "strings"

// CocktailID is the catalog's opaque identifier for a cocktail
type CocktailID string

// CocktailSummary is enough of a cocktail to render a list row
type CocktailSummary struct {
	ID       CocktailID `json:"id"`
	Name     string     `json:"name"`
	ThumbURL string     `json:"thumb_url,omitempty"`
}

// CocktailDetail is the full record shown on a detail screen
type CocktailDetail struct {
	ID           CocktailID
	Name         string
	ThumbURL     string
	Instructions string

	// Ingredients are "measure ingredient" lines in source order
	Ingredients []string

	// Classification (empty when the catalog omits them)
	Category  string
	Alcoholic string
	Glass     string
}

// Summary returns the list-row projection of the detail
func (d CocktailDetail) Summary() CocktailSummary {
	return CocktailSummary{
		ID:       d.ID,
		Name:     d.Name,
		ThumbURL: d.ThumbURL,
	}
}

// Tags returns the non-empty classification labels
func (d CocktailDetail) Tags() []string {
	var tags []string
	for _, t := range []string{d.Category, d.Alcoholic, d.Glass} {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Category is a catalog classification label, used verbatim as a filter key
type Category struct {
	Name string `json:"name"`
}

// Summaries projects a slice of details to list rows
func Summaries(details []CocktailDetail) []CocktailSummary {
	out := make([]CocktailSummary, len(details))
	for i, d := range details {
		out[i] = d.Summary()
	}
	return out
}
