package profile

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gastroglobe/internal/client/catalog"
	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
)

const unknownRecipe = "Inconnue"

// ActivityText describes a history entry, resolving recipe names against
// the catalog.
func ActivityText(a models.Activity, recipes []models.Recipe) string {
	name := func() string {
		if r, ok := catalog.FindRecipe(recipes, a.ItemID); ok {
			return r.Name
		}
		return unknownRecipe
	}

	switch a.Type {
	case models.ActivityRecipeView:
		return fmt.Sprintf("Vous avez consulté la recette %q", name())
	case models.ActivityQuizCompleted:
		return fmt.Sprintf("Quiz complété - Score: %d points", a.Score)
	case models.ActivityFavoriteAdded:
		return fmt.Sprintf("Recette ajoutée aux favoris: %q", name())
	}
	return "Activité inconnue"
}

var months = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// RelativeDate renders an activity date relative to now. Dates older than
// thirty days are spelled out.
func RelativeDate(date string, now time.Time) string {
	t, err := time.ParseInLocation(models.DateLayout, date, now.Location())
	if err != nil {
		return date
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "À l'instant"
	case d < time.Hour:
		return fmt.Sprintf("Il y a %d min", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("Il y a %d h", int(d/time.Hour))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("Il y a %d j", int(d/(24*time.Hour)))
	}
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}
