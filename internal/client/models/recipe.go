// Package models defines the catalog and user records of the GastroGlobe
// client.
package models

import "strings"

// Recipe is one dish of the catalog. Records are read-only once loaded.
type Recipe struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Country     string   `json:"country"`
	Region      string   `json:"region,omitempty"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
	Time        string   `json:"time"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Rating      *float64 `json:"rating,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Continent   string   `json:"continent,omitempty"`
}

// Minutes parses the leading integer of Time ("45 min" → 45). Leading
// spaces and a sign are accepted; anything else reports false.
func (r Recipe) Minutes() (int, bool) {
	return leadingInt(r.Time)
}

// RatingOr returns the rating, or def when none is set.
func (r Recipe) RatingOr(def float64) float64 {
	if r.Rating == nil {
		return def
	}
	return *r.Rating
}

// SearchFields returns the texts matched by free-text search.
func (r Recipe) SearchFields() []string {
	fields := make([]string, 0, 3+len(r.Ingredients))
	fields = append(fields, r.Name, r.Description, r.Country)
	return append(fields, r.Ingredients...)
}

// Facet returns the value of the named facet and whether the record has
// that facet at all.
func (r Recipe) Facet(name string) (string, bool) {
	switch name {
	case "country":
		return r.Country, true
	case "category":
		return r.Category, true
	case "difficulty":
		return r.Difficulty, true
	case "continent":
		return r.Continent, true
	}
	return "", false
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		n = n*10 + int(s[digits]-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
