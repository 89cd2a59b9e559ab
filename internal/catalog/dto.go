package catalog

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// maxIngredients is the number of strIngredient/strMeasure pairs the catalog emits
const maxIngredients = 15

// Field names of a catalog drink record
const (
	fieldID           = "idDrink"
	fieldName         = "strDrink"
	fieldThumb        = "strDrinkThumb"
	fieldInstructions = "strInstructions"
	fieldCategory     = "strCategory"
	fieldAlcoholic    = "strAlcoholic"
	fieldGlass        = "strGlass"
	ingredientPrefix  = "strIngredient"
	measurePrefix     = "strMeasure"
)

// RawRecord is one untyped drink object as served by the catalog.
// It never leaves this package; mappers turn it into domain types.
type RawRecord struct {
	res gjson.Result
}

func newRawRecord(res gjson.Result) RawRecord {
	return RawRecord{res: res}
}

// field returns a string attribute; absent and null both read as ""
func (r RawRecord) field(name string) string {
	v := r.res.Get(name)
	if !v.Exists() || v.Type == gjson.Null {
		return ""
	}
	return v.String()
}

// pair returns the i-th (1-based) ingredient and measure
func (r RawRecord) pair(i int) (ingredient, measure string) {
	n := strconv.Itoa(i)
	return r.field(ingredientPrefix + n), r.field(measurePrefix + n)
}
