package catalog

import (
	"strings"

	"github.com/mmcdole/barcart/internal/domain"
	"github.com/tidwall/gjson"
)

// MapDetails converts full drink records to domain details.
// Records without an id are skipped.
func MapDetails(drinks []gjson.Result) []domain.CocktailDetail {
	details := make([]domain.CocktailDetail, 0, len(drinks))
	for _, d := range drinks {
		rec := newRawRecord(d)
		if strings.TrimSpace(rec.field(fieldID)) == "" {
			continue
		}
		details = append(details, mapDetail(rec))
	}
	return details
}

// mapDetail converts a single drink record to a domain detail
func mapDetail(rec RawRecord) domain.CocktailDetail {
	return domain.CocktailDetail{
		ID:           domain.CocktailID(strings.TrimSpace(rec.field(fieldID))),
		Name:         strings.TrimSpace(rec.field(fieldName)),
		ThumbURL:     strings.TrimSpace(rec.field(fieldThumb)),
		Instructions: strings.TrimSpace(rec.field(fieldInstructions)),
		Ingredients:  NormalizeIngredients(rec),
		Category:     rec.field(fieldCategory),
		Alcoholic:    rec.field(fieldAlcoholic),
		Glass:        rec.field(fieldGlass),
	}
}

// MapSummaries converts filter results to domain summaries
func MapSummaries(drinks []gjson.Result) []domain.CocktailSummary {
	summaries := make([]domain.CocktailSummary, 0, len(drinks))
	for _, d := range drinks {
		rec := newRawRecord(d)
		id := strings.TrimSpace(rec.field(fieldID))
		if id == "" {
			continue
		}
		summaries = append(summaries, domain.CocktailSummary{
			ID:       domain.CocktailID(id),
			Name:     strings.TrimSpace(rec.field(fieldName)),
			ThumbURL: strings.TrimSpace(rec.field(fieldThumb)),
		})
	}
	return summaries
}

// MapCategories converts the category vocabulary, dropping blank names
func MapCategories(drinks []gjson.Result) []domain.Category {
	categories := make([]domain.Category, 0, len(drinks))
	for _, d := range drinks {
		name := newRawRecord(d).field(fieldCategory)
		if strings.TrimSpace(name) == "" {
			continue
		}
		categories = append(categories, domain.Category{Name: name})
	}
	return categories
}
