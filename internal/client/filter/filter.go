// Package filter derives filtered, paged views of a read-only catalog.
package filter

import "strings"

// Facet names a filter dimension.
type Facet string

const (
	FacetCountry    Facet = "country"
	FacetCategory   Facet = "category"
	FacetDifficulty Facet = "difficulty"
	FacetTime       Facet = "time"
	FacetContinent  Facet = "continent"
)

// All is the facet value meaning "no constraint".
const All = "all"

// Time buckets.
const (
	TimeQuick  = "rapide"
	TimeMedium = "moyen"
	TimeLong   = "long"
)

// Facets lists every known facet.
var Facets = []Facet{FacetCountry, FacetCategory, FacetDifficulty, FacetTime, FacetContinent}

// ParseFacet accepts a facet name, case-insensitively.
func ParseFacet(name string) (Facet, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range Facets {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Item is a filterable record.
type Item interface {
	SearchFields() []string
	Facet(name string) (string, bool)
	Minutes() (int, bool)
}

// State is the current filter selection. A facet missing from Facets is
// treated as All.
type State struct {
	Search string
	Facets map[Facet]string
}

// Value returns the selected value of f.
func (s State) Value(f Facet) string {
	if v, ok := s.Facets[f]; ok && v != "" {
		return v
	}
	return All
}

// With returns a copy of s with f set to value.
func (s State) With(f Facet, value string) State {
	facets := make(map[Facet]string, len(s.Facets)+1)
	for k, v := range s.Facets {
		facets[k] = v
	}
	facets[f] = value
	return State{Search: s.Search, Facets: facets}
}

// Active reports whether s constrains anything.
func (s State) Active() bool {
	if s.Search != "" {
		return true
	}
	for _, f := range Facets {
		if s.Value(f) != All {
			return true
		}
	}
	return false
}

// Apply returns the items matching every active facet and the search term,
// in their original order.
func Apply[T Item](items []T, st State) []T {
	term := strings.ToLower(st.Search)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if matchSearch(it, term) && matchFacets(it, st) {
			out = append(out, it)
		}
	}
	return out
}

func matchSearch(it Item, term string) bool {
	if term == "" {
		return true
	}
	for _, f := range it.SearchFields() {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func matchFacets(it Item, st State) bool {
	for _, f := range Facets {
		want := st.Value(f)
		if want == All {
			continue
		}

		if f == FacetTime {
			m, ok := it.Minutes()
			if !ok || !inBucket(m, want) {
				return false
			}
			continue
		}

		got, ok := it.Facet(string(f))
		if !ok {
			return false
		}
		if f == FacetCountry {
			if !strings.EqualFold(got, want) {
				return false
			}
		} else if got != want {
			return false
		}
	}
	return true
}

// Bucket classifies a preparation time.
func Bucket(minutes int) string {
	switch {
	case minutes < 30:
		return TimeQuick
	case minutes <= 60:
		return TimeMedium
	default:
		return TimeLong
	}
}

// unknown bucket names do not constrain parseable times
func inBucket(minutes int, bucket string) bool {
	switch bucket {
	case TimeQuick, TimeMedium, TimeLong:
		return Bucket(minutes) == bucket
	}
	return true
}
