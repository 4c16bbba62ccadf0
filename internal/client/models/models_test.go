package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipe_Minutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"45 min", 45, true},
		{"  20min", 20, true},
		{"90", 90, true},
		{"1h30", 1, true},
		{"-5 min", -5, true},
		{"min 30", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Recipe{Time: tt.in}.Minutes()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecipe_RatingOrAndFields(t *testing.T) {
	r := Recipe{Name: "Pad Thai", Description: "Nouilles", Country: "Thaïlande", Ingredients: []string{"tofu"}, Category: "plat"}
	assert.Equal(t, 4.5, r.RatingOr(4.5))

	rating := 4.9
	r.Rating = &rating
	assert.Equal(t, 4.9, r.RatingOr(0))

	assert.Equal(t, []string{"Pad Thai", "Nouilles", "Thaïlande", "tofu"}, r.SearchFields())

	v, ok := r.Facet("category")
	assert.True(t, ok)
	assert.Equal(t, "plat", v)
	_, ok = r.Facet("time")
	assert.False(t, ok)
}

func TestGalleryImage_Facets(t *testing.T) {
	g := GalleryImage{Title: "Sushi", Continent: "asia", Category: "plat"}
	v, ok := g.Facet("continent")
	assert.True(t, ok)
	assert.Equal(t, "asia", v)
	_, ok = g.Facet("difficulty")
	assert.False(t, ok)
	_, ok = g.Minutes()
	assert.False(t, ok)
}

func TestUser_ToggleFavorite_IsInvolution(t *testing.T) {
	u := &User{Favorites: []int{1, 3, 5}}
	orig := append([]int(nil), u.Favorites...)

	for _, id := range []int{3, 7} {
		first := u.ToggleFavorite(id)
		second := u.ToggleFavorite(id)
		assert.NotEqual(t, first, second)
		assert.ElementsMatch(t, orig, u.Favorites)
	}

	assert.True(t, u.ToggleFavorite(9))
	assert.True(t, u.HasFavorite(9))
	assert.False(t, u.ToggleFavorite(9))
	assert.False(t, u.HasFavorite(9))
}

func TestUser_PrependHistory_Bounded(t *testing.T) {
	u := &User{}
	for i := 1; i <= MaxHistory+10; i++ {
		u.PrependHistory(Activity{Type: ActivityRecipeView, ItemID: i})
		require.LessOrEqual(t, len(u.History), MaxHistory)
		require.Equal(t, i, u.History[0].ItemID)
	}
	assert.Len(t, u.History, MaxHistory)
	assert.Equal(t, 11, u.History[MaxHistory-1].ItemID)
}

func TestUser_CloneIsDeep(t *testing.T) {
	u := &User{ID: 1, Favorites: []int{1}, History: []Activity{{Type: ActivityQuizCompleted, Score: 10}}}
	c := u.Clone()
	c.Favorites[0] = 99
	c.History[0].Score = 0

	assert.Equal(t, 1, u.Favorites[0])
	assert.Equal(t, 10, u.History[0].Score)
	assert.Nil(t, (*User)(nil).Clone())
}

func TestUser_CountActivities(t *testing.T) {
	u := &User{History: []Activity{
		{Type: ActivityRecipeView}, {Type: ActivityQuizCompleted}, {Type: ActivityRecipeView},
	}}
	assert.Equal(t, 2, u.CountActivities(ActivityRecipeView))
	assert.Equal(t, 1, u.CountActivities(ActivityQuizCompleted))
	assert.Zero(t, u.CountActivities(ActivityFavoriteAdded))
}

func TestDefaultSettingsAndToday(t *testing.T) {
	assert.Equal(t, Settings{Language: "fr", Notifications: true, Newsletter: true, Theme: "light"}, DefaultSettings())
	assert.Equal(t, "2024-02-01", Today(time.Date(2024, 2, 1, 23, 0, 0, 0, time.UTC)))
}
