package models

import "slices"

// Settings are the per-user preferences.
type Settings struct {
	Language      string `json:"language"`
	Notifications bool   `json:"notifications"`
	Newsletter    bool   `json:"newsletter"`
	Theme         string `json:"theme"`
}

// DefaultSettings returns the settings of a freshly registered user.
func DefaultSettings() Settings {
	return Settings{
		Language:      "fr",
		Notifications: true,
		Newsletter:    true,
		Theme:         "light",
	}
}

// User is a directory record.
//
// Favorites never holds duplicates. History is most-recent-first and never
// longer than MaxHistory.
type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash"`
	Avatar       string     `json:"avatar"`
	MemberSince  string     `json:"member_since"`
	Favorites    []int      `json:"favorites"`
	QuizScore    int        `json:"quiz_score"`
	History      []Activity `json:"history"`
	Settings     Settings   `json:"settings"`
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Favorites = slices.Clone(u.Favorites)
	c.History = slices.Clone(u.History)
	return &c
}

func (u *User) HasFavorite(recipeID int) bool {
	return slices.Contains(u.Favorites, recipeID)
}

// ToggleFavorite removes recipeID when present and adds it otherwise. It
// returns the new membership state.
func (u *User) ToggleFavorite(recipeID int) bool {
	if i := slices.Index(u.Favorites, recipeID); i >= 0 {
		u.Favorites = slices.Delete(u.Favorites, i, i+1)
		return false
	}
	u.Favorites = append(u.Favorites, recipeID)
	return true
}

// PrependHistory puts a at the head of History and drops entries past
// MaxHistory.
func (u *User) PrependHistory(a Activity) {
	h := make([]Activity, 0, min(len(u.History)+1, MaxHistory))
	h = append(h, a)
	h = append(h, u.History...)
	if len(h) > MaxHistory {
		h = h[:MaxHistory]
	}
	u.History = h
}

// CountActivities returns how many history entries have type t.
func (u *User) CountActivities(t ActivityType) int {
	n := 0
	for _, a := range u.History {
		if a.Type == t {
			n++
		}
	}
	return n
}
