package directory

import (
	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
	"github.com/dmitrijs2005/gastroglobe/internal/cryptox"
)

// DemoPassword is the password of both seeded accounts.
const DemoPassword = "password123"

func demoUsers() []*models.User {
	return []*models.User{
		{
			ID:           1,
			Name:         "Jean Dupont",
			Email:        "jean@example.com",
			PasswordHash: cryptox.HashPassword([]byte(DemoPassword)),
			Avatar:       "👨‍🍳",
			MemberSince:  "2024-01-15",
			Favorites:    []int{1, 3, 5},
			QuizScore:    150,
			History: []models.Activity{
				{Type: models.ActivityQuizCompleted, Score: 100, Date: "2024-02-01"},
				{Type: models.ActivityRecipeView, ItemID: 3, Date: "2024-01-25"},
				{Type: models.ActivityQuizCompleted, Score: 50, Date: "2024-01-22"},
				{Type: models.ActivityRecipeView, ItemID: 1, Date: "2024-01-20"},
			},
			Settings: models.Settings{Language: "fr", Notifications: true, Newsletter: true, Theme: "light"},
		},
		{
			ID:           2,
			Name:         "Marie Martin",
			Email:        "marie@example.com",
			PasswordHash: cryptox.HashPassword([]byte(DemoPassword)),
			Avatar:       "👩‍🍳",
			MemberSince:  "2024-02-01",
			Favorites:    []int{2, 4},
			QuizScore:    75,
			History: []models.Activity{
				{Type: models.ActivityQuizCompleted, Score: 75, Date: "2024-02-03"},
				{Type: models.ActivityRecipeView, ItemID: 2, Date: "2024-02-02"},
			},
			Settings: models.Settings{Language: "fr", Notifications: false, Newsletter: true, Theme: "dark"},
		},
	}
}
