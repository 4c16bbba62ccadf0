package catalog

import (
	"sort"

	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
)

// PopularCount is the size of the home page selection.
const PopularCount = 6

// Popular returns the n best rated recipes, a missing rating counting as 0.
// Ties keep catalog order. The input slice is not reordered.
func Popular(recipes []models.Recipe, n int) []models.Recipe {
	sorted := make([]models.Recipe, len(recipes))
	copy(sorted, recipes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RatingOr(0) > sorted[j].RatingOr(0)
	})

	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

func FindRecipe(recipes []models.Recipe, id int) (models.Recipe, bool) {
	for _, r := range recipes {
		if r.ID == id {
			return r, true
		}
	}
	return models.Recipe{}, false
}

// Countries counts the distinct country names of a catalog.
func Countries(recipes []models.Recipe) int {
	seen := make(map[string]struct{}, len(recipes))
	for _, r := range recipes {
		seen[r.Country] = struct{}{}
	}
	return len(seen)
}
