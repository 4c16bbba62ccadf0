package profile

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func view(id int) models.Activity {
	return models.Activity{Type: models.ActivityRecipeView, ItemID: id, Date: "2024-01-10"}
}

func quiz(score int) models.Activity {
	return models.Activity{Type: models.ActivityQuizCompleted, Score: score, Date: "2024-01-09"}
}

func TestOverview(t *testing.T) {
	u := &models.User{
		Favorites: []int{1, 2, 3},
		QuizScore: 250,
		History:   []models.Activity{view(1), quiz(150), view(2), quiz(100)},
	}
	assert.Equal(t, Stats{
		Favorites:        3,
		QuizzesCompleted: 2,
		RecipesViewed:    2,
		QuizScore:        250,
		Level:            3,
		LevelProgress:    50,
	}, Overview(u))

	assert.Equal(t, Stats{Level: 1}, Overview(&models.User{}))
	assert.Equal(t, Stats{Level: 1}, Overview(nil))
}

func TestAchievements_Thresholds(t *testing.T) {
	u := &models.User{}
	badges := Achievements(u)
	require.Len(t, badges, 6)
	assert.Zero(t, Unlocked(badges))
	assert.Zero(t, CompletionRate(badges))

	u.History = []models.Activity{quiz(10)}
	u.QuizScore = 100
	u.Favorites = []int{1, 2, 3, 4, 5}
	badges = Achievements(u)
	assert.True(t, badges[0].Unlocked, "Premiers Pas")
	assert.True(t, badges[1].Unlocked, "Gourmet")
	assert.True(t, badges[2].Unlocked, "Expert Quiz")
	assert.False(t, badges[4].Unlocked, "Collectionneur")
	assert.False(t, badges[5].Unlocked, "Maître Quiz")
	assert.Equal(t, 3, Unlocked(badges))
	assert.Equal(t, 50, CompletionRate(badges))

	u.QuizScore = 500
	u.Favorites = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	badges = Achievements(u)
	assert.True(t, badges[4].Unlocked)
	assert.True(t, badges[5].Unlocked)
}

func TestAchievements_DistinctViews(t *testing.T) {
	u := &models.User{}
	for i := 0; i < 12; i++ {
		u.History = append(u.History, view(1))
	}
	assert.False(t, Achievements(u)[3].Unlocked, "repeated views of one recipe")

	u.History = nil
	for id := 1; id <= 10; id++ {
		u.History = append(u.History, view(id))
	}
	assert.True(t, Achievements(u)[3].Unlocked)
}

func TestAchievements_RelockWhenConditionStops(t *testing.T) {
	u := &models.User{Favorites: []int{1, 2, 3, 4, 5}}
	assert.True(t, Achievements(u)[1].Unlocked)

	u.Favorites = u.Favorites[:4]
	assert.False(t, Achievements(u)[1].Unlocked)
}

func TestCompletionRate_Rounding(t *testing.T) {
	badges := []Badge{{Unlocked: true}, {}, {}}
	assert.Equal(t, 33, CompletionRate(badges))
	assert.Equal(t, 0, CompletionRate(nil))
}

func TestRecentAndFilterHistory(t *testing.T) {
	u := &models.User{History: []models.Activity{view(1), quiz(5), view(2), view(3), quiz(7), view(4)}}

	recent := RecentActivity(u, RecentCount)
	require.Len(t, recent, 5)
	assert.Equal(t, 1, recent[0].ItemID)
	assert.Len(t, RecentActivity(u, 100), 6)
	assert.Nil(t, RecentActivity(u, 0))

	recent[0].ItemID = 99
	assert.Equal(t, 1, u.History[0].ItemID, "returned slice must not alias")

	assert.Len(t, FilterHistory(u, "all"), 6)
	quizzes := FilterHistory(u, string(models.ActivityQuizCompleted))
	require.Len(t, quizzes, 2)
	assert.Equal(t, 5, quizzes[0].Score)
	assert.Empty(t, FilterHistory(u, "favorite_added"))
}

func TestFavorites(t *testing.T) {
	catalog := []models.Recipe{
		{ID: 1, Name: "Ratatouille", Country: "France", Category: "vegan"},
		{ID: 2, Name: "Sushi", Country: "Japon", Category: "poisson"},
		{ID: 3, Name: "Croissant", Country: "France", Category: "dessert"},
	}
	u := &models.User{Favorites: []int{3, 1, 42}}

	favs := Favorites(u, catalog)
	require.Len(t, favs, 2)
	assert.Equal(t, 1, favs[0].ID)
	assert.Equal(t, 3, favs[1].ID)

	assert.Len(t, FilterFavorites(favs, "FRANCE", "all"), 2)
	assert.Len(t, FilterFavorites(favs, "rata", ""), 1)
	got := FilterFavorites(favs, "", "dessert")
	require.Len(t, got, 1)
	assert.Equal(t, "Croissant", got[0].Name)
}

func TestActivityText(t *testing.T) {
	catalog := []models.Recipe{{ID: 1, Name: "Ratatouille"}}

	assert.Equal(t, `Vous avez consulté la recette "Ratatouille"`, ActivityText(view(1), catalog))
	assert.Equal(t, `Vous avez consulté la recette "Inconnue"`, ActivityText(view(9), catalog))
	assert.Equal(t, "Quiz complété - Score: 80 points", ActivityText(quiz(80), catalog))
	assert.Equal(t, `Recette ajoutée aux favoris: "Ratatouille"`,
		ActivityText(models.Activity{Type: models.ActivityFavoriteAdded, ItemID: 1}, catalog))
	assert.Equal(t, "Activité inconnue", ActivityText(models.Activity{Type: "other"}, catalog))
}

func TestRelativeDate(t *testing.T) {
	now := time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "Il y a 15 h", RelativeDate("2024-03-20", now))
	assert.Equal(t, "Il y a 5 j", RelativeDate("2024-03-15", now))
	assert.Equal(t, "15 janvier 2024", RelativeDate("2024-01-15", now))
	assert.Equal(t, "garbage", RelativeDate("garbage", now))
	assert.Equal(t, "À l'instant", RelativeDate("2024-03-21", now))
}
