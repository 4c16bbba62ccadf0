package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gastroglobe/internal/client/filter"
	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
	"github.com/dmitrijs2005/gastroglobe/internal/client/profile"
	"github.com/dmitrijs2005/gastroglobe/internal/common"
)

// Fav toggles a recipe in the favorites of the signed-in user.
func (a *App) Fav(ctx context.Context, id string) error {
	r, err := a.lookup(id)
	if err != nil {
		return err
	}

	added, err := a.profileService.ToggleFavorite(ctx, r.ID)
	if err != nil && !isStorage(err) {
		return err
	}
	if added {
		printlnFn(fmt.Sprintf("%q ajoutée aux favoris", r.Name))
	} else {
		printlnFn(fmt.Sprintf("%q retirée des favoris", r.Name))
	}
	return err
}

// Favorites lists the favorite recipes, optionally narrowed by a search
// text.
func (a *App) Favorites(ctx context.Context, args []string) error {
	favs, err := a.profileService.Favorites(a.catalog)
	if err != nil {
		return err
	}
	favs = profile.FilterFavorites(favs, strings.Join(args, " "), filter.All)

	if len(favs) == 0 {
		printlnFn("Aucune recette favorite")
		return nil
	}
	for _, r := range favs {
		printlnFn(a.recipeLine(r))
	}
	return nil
}

// History prints the history entries of one activity type, or all of them.
func (a *App) History(ctx context.Context, activityType string) error {
	if activityType == "" {
		activityType = filter.All
	}
	entries, err := a.profileService.History(activityType)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printlnFn("Aucune activité")
		return nil
	}
	a.printActivities(entries)
	return nil
}

func (a *App) ClearHistory(ctx context.Context) error {
	if err := a.profileService.ClearHistory(ctx); err != nil {
		return err
	}
	printlnFn("Historique effacé")
	return nil
}

// Quiz records a finished quiz with the given score.
func (a *App) Quiz(ctx context.Context, score string) error {
	n, err := strconv.Atoi(score)
	if err != nil {
		return fmt.Errorf("invalid score %q", score)
	}
	if err := a.profileService.CompleteQuiz(ctx, n); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Quiz terminé: +%d points", n))
	return nil
}

// Profile prints the overview figures and the most recent activity.
func (a *App) Profile(ctx context.Context) error {
	u, ok := a.authService.Current()
	if !ok {
		return common.ErrNotAuthenticated
	}
	st, err := a.profileService.Overview()
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("%s %s, membre depuis %s", avatarOf(u), u.Name, u.MemberSince))
	printlnFn(fmt.Sprintf("Niveau %d (%d/100)", st.Level, st.LevelProgress))
	printlnFn(fmt.Sprintf("Favoris: %d  Quiz: %d  Recettes vues: %d  Score: %d",
		st.Favorites, st.QuizzesCompleted, st.RecipesViewed, st.QuizScore))

	recent := profile.RecentActivity(u, profile.RecentCount)
	if len(recent) > 0 {
		printlnFn("Activité récente:")
		a.printActivities(recent)
	}
	return nil
}

func (a *App) Achievements(ctx context.Context) error {
	badges, err := a.profileService.Achievements()
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%d/%d badges (%d%%)", profile.Unlocked(badges), len(badges), profile.CompletionRate(badges)))
	for _, b := range badges {
		state := "🔒"
		if b.Unlocked {
			state = b.Icon
		}
		printlnFn(fmt.Sprintf("  %s %s: %s", state, b.Title, b.Description))
	}
	return nil
}

func (a *App) printActivities(entries []models.Activity) {
	now := a.now()
	for _, e := range entries {
		printlnFn(fmt.Sprintf("  %s (%s)", profile.ActivityText(e, a.catalog), profile.RelativeDate(e.Date, now)))
	}
}

// isStorage reports a change that was applied but not saved.
func isStorage(err error) bool {
	return errors.Is(err, common.ErrStorage)
}
