package profile

import (
	"math"

	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
)

type Badge struct {
	Title       string
	Description string
	Icon        string
	Unlocked    bool
}

// Achievements evaluates every badge against u. Nothing is cached, so a
// badge locks again when its condition stops holding.
func Achievements(u *models.User) []Badge {
	var favorites, score, quizzes, views int
	if u != nil {
		favorites = len(u.Favorites)
		score = u.QuizScore
		quizzes = u.CountActivities(models.ActivityQuizCompleted)
		views = distinctViews(u)
	}

	return []Badge{
		{"Premiers Pas", "Complétez votre premier quiz", "⭐", quizzes >= 1},
		{"Gourmet", "Ajoutez 5 recettes aux favoris", "❤️", favorites >= 5},
		{"Expert Quiz", "Atteignez 100 points au quiz", "🏆", score >= 100},
		{"Voyageur Culinaire", "Consultez 10 recettes différentes", "🛂", views >= 10},
		{"Collectionneur", "10 recettes favorites", "🔖", favorites >= 10},
		{"Maître Quiz", "Atteignez 500 points au quiz", "👑", score >= 500},
	}
}

func distinctViews(u *models.User) int {
	seen := make(map[int]struct{})
	for _, a := range u.History {
		if a.Type == models.ActivityRecipeView {
			seen[a.ItemID] = struct{}{}
		}
	}
	return len(seen)
}

func Unlocked(badges []Badge) int {
	n := 0
	for _, b := range badges {
		if b.Unlocked {
			n++
		}
	}
	return n
}

// CompletionRate is the rounded percentage of unlocked badges.
func CompletionRate(badges []Badge) int {
	if len(badges) == 0 {
		return 0
	}
	return int(math.Round(float64(Unlocked(badges)) * 100 / float64(len(badges))))
}
