package models

import "time"

// ActivityType tags a history entry.
type ActivityType string

const (
	ActivityRecipeView    ActivityType = "recipe_view"
	ActivityQuizCompleted ActivityType = "quiz_completed"
	ActivityFavoriteAdded ActivityType = "favorite_added"
)

// MaxHistory bounds User.History.
const MaxHistory = 50

// DateLayout is the format of Activity.Date and User.MemberSince.
const DateLayout = "2006-01-02"

// Activity is one history entry. ItemID is set for views and favorites,
// Score for quizzes.
type Activity struct {
	Type   ActivityType `json:"type"`
	ItemID int          `json:"item_id,omitempty"`
	Score  int          `json:"score,omitempty"`
	Date   string       `json:"date"`
}

// Today formats t as an activity date.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}
