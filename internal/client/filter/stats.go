package filter

import (
	"math"
	"sort"

	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
)

// Stats summarizes a filtered recipe list.
type Stats struct {
	Total          int
	Countries      int
	AverageMinutes int
}

// Summarize computes Stats over recipes. Unparseable times count as zero.
func Summarize(recipes []models.Recipe) Stats {
	st := Stats{Total: len(recipes)}
	if len(recipes) == 0 {
		return st
	}

	countries := make(map[string]struct{})
	total := 0
	for _, r := range recipes {
		countries[r.Country] = struct{}{}
		if m, ok := r.Minutes(); ok {
			total += m
		}
	}
	st.Countries = len(countries)
	st.AverageMinutes = int(math.Floor(float64(total)/float64(len(recipes)) + 0.5))
	return st
}

// DefaultContinent is assumed for records without a continent tag.
const DefaultContinent = "europe"

// GroupByContinent buckets recipes for the map view, keeping catalog order
// inside each bucket.
func GroupByContinent(recipes []models.Recipe) map[string][]models.Recipe {
	groups := make(map[string][]models.Recipe)
	for _, r := range recipes {
		c := r.Continent
		if c == "" {
			c = DefaultContinent
		}
		groups[c] = append(groups[c], r)
	}
	return groups
}

// Continents returns the keys of groups in sorted order.
func Continents(groups map[string][]models.Recipe) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var markerColors = map[string]string{
	"entree":  "#2ecc71",
	"plat":    "#e74c3c",
	"dessert": "#f39c12",
	"boisson": "#3498db",
	"vegan":   "#27ae60",
	"seafood": "#2980b9",
}

// MarkerColor returns the map marker color of a category.
func MarkerColor(category string) string {
	if c, ok := markerColors[category]; ok {
		return c
	}
	return "#95a5a6"
}
