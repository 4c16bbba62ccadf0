// Package profile derives the profile page figures from a user record.
// Everything here is a pure function of its arguments.
package profile

import (
	"strings"

	"github.com/dmitrijs2005/gastroglobe/internal/client/filter"
	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
)

// RecentCount is how many entries the overview lists.
const RecentCount = 5

// Stats are the overview figures.
type Stats struct {
	Favorites        int
	QuizzesCompleted int
	RecipesViewed    int
	QuizScore        int
	Level            int
	LevelProgress    int
}

func Overview(u *models.User) Stats {
	if u == nil {
		return Stats{Level: 1}
	}
	return Stats{
		Favorites:        len(u.Favorites),
		QuizzesCompleted: u.CountActivities(models.ActivityQuizCompleted),
		RecipesViewed:    u.CountActivities(models.ActivityRecipeView),
		QuizScore:        u.QuizScore,
		Level:            u.QuizScore/100 + 1,
		LevelProgress:    u.QuizScore % 100,
	}
}

// RecentActivity returns the first n history entries.
func RecentActivity(u *models.User, n int) []models.Activity {
	if u == nil || n <= 0 {
		return nil
	}
	n = min(n, len(u.History))
	out := make([]models.Activity, n)
	copy(out, u.History[:n])
	return out
}

// FilterHistory keeps the entries of type t; "all" keeps everything.
func FilterHistory(u *models.User, t string) []models.Activity {
	if u == nil {
		return nil
	}
	out := make([]models.Activity, 0, len(u.History))
	for _, a := range u.History {
		if t == filter.All || string(a.Type) == t {
			out = append(out, a)
		}
	}
	return out
}

// Favorites returns the catalog records the user marked, in catalog order.
// Ids missing from the catalog are skipped.
func Favorites(u *models.User, catalog []models.Recipe) []models.Recipe {
	if u == nil {
		return nil
	}
	out := make([]models.Recipe, 0, len(u.Favorites))
	for _, r := range catalog {
		if u.HasFavorite(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// FilterFavorites narrows a favorites list by a search term matched
// against name and country, and by category.
func FilterFavorites(favs []models.Recipe, search, category string) []models.Recipe {
	search = strings.ToLower(search)
	out := make([]models.Recipe, 0, len(favs))
	for _, r := range favs {
		if category != "" && category != filter.All && r.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Name), search) &&
			!strings.Contains(strings.ToLower(r.Country), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}
