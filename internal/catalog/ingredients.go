package catalog

import "strings"

// NormalizeIngredients collapses the numbered ingredient/measure attributes
// into ordered "measure ingredient" lines.
//
// Reading stops at the first empty ingredient slot; later slots are ignored
// even if populated. A measure without an ingredient is dropped with its slot.
func NormalizeIngredients(rec RawRecord) []string {
	var lines []string
	for i := 1; i <= maxIngredients; i++ {
		ingredient, measure := rec.pair(i)
		ingredient = strings.TrimSpace(ingredient)
		if ingredient == "" {
			break
		}
		lines = append(lines, ingredientLine(measure, ingredient))
	}
	return lines
}

func ingredientLine(measure, ingredient string) string {
	measure = strings.TrimSpace(measure)
	if measure == "" {
		return ingredient
	}
	return measure + " " + ingredient
}
