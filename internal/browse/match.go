package browse

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/barcart/internal/domain"
)

// Resolve finds the vocabulary entry best matching a user-typed name.
// Exact (case-insensitive) matches win, then prefix matches, then the
// closest fuzzy match.
func (b *CategoryBrowser) Resolve(name string) (domain.Category, bool) {
	return ResolveCategory(b.categories.Value, name)
}

// ResolveCategory matches name against categories
func ResolveCategory(categories []domain.Category, name string) (domain.Category, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" || len(categories) == 0 {
		return domain.Category{}, false
	}

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = strings.ToLower(c.Name)
		if names[i] == query {
			return c, true
		}
	}

	for i, n := range names {
		if strings.HasPrefix(n, query) {
			return categories[i], true
		}
	}

	ranks := fuzzy.RankFindFold(query, names)
	if len(ranks) == 0 {
		return domain.Category{}, false
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})
	return categories[ranks[0].OriginalIndex], true
}
