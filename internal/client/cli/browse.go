package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gastroglobe/internal/client/catalog"
	"github.com/dmitrijs2005/gastroglobe/internal/client/filter"
	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
	"github.com/dmitrijs2005/gastroglobe/internal/filex"
)

// Home prints the most popular recipes and the catalog totals.
func (a *App) Home(ctx context.Context) error {
	printlnFn(fmt.Sprintf("%d recettes de %d pays", len(a.catalog), catalog.Countries(a.catalog)))
	return a.Popular(ctx)
}

func (a *App) Popular(ctx context.Context) error {
	printlnFn("Recettes populaires:")
	for _, r := range catalog.Popular(a.catalog, catalog.PopularCount) {
		printlnFn(a.recipeLine(r))
	}
	return nil
}

// Recipes reprints the current page of the recipe list.
func (a *App) Recipes(ctx context.Context) error {
	a.recipes.FlushSearch()
	a.printRecipePage(a.recipes.Page())
	return nil
}

// Search schedules a search; the page is printed once typing settles.
func (a *App) Search(ctx context.Context, text string) error {
	a.recipes.SearchDebounced(text)
	return nil
}

func (a *App) Filter(ctx context.Context, facet, value string) error {
	f, ok := filter.ParseFacet(facet)
	if !ok {
		return fmt.Errorf("unknown facet %q", facet)
	}
	a.recipes.FlushSearch()
	a.recipes.SetFacet(f, value)
	return nil
}

func (a *App) Reset(ctx context.Context) error {
	a.recipes.Reset()
	return nil
}

func (a *App) More(ctx context.Context) error {
	a.recipes.FlushSearch()
	if !a.recipes.Page().HasMore {
		printlnFn("Toutes les recettes sont affichées")
		return nil
	}
	a.recipes.LoadMore()
	return nil
}

// Stats summarizes every recipe matching the current filters.
func (a *App) Stats(ctx context.Context) error {
	a.recipes.FlushSearch()
	printlnFn(statsLine(filter.Summarize(a.recipes.Matched())))
	return nil
}

func statsLine(st filter.Stats) string {
	return fmt.Sprintf("%d recettes, %d pays, %d min en moyenne", st.Total, st.Countries, st.AverageMinutes)
}

// View prints one recipe and records the view for a signed-in user.
func (a *App) View(ctx context.Context, id string) error {
	r, err := a.lookup(id)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("%s (%s)", r.Name, r.Country))
	if r.Region != "" {
		printlnFn("Région:", r.Region)
	}
	printlnFn(fmt.Sprintf("%s · %s · %s · %s", r.Category, r.Difficulty, r.Time, rating(r)))
	printlnFn(r.Description)
	if len(r.Ingredients) > 0 {
		printlnFn("Ingrédients:", strings.Join(r.Ingredients, ", "))
	}

	if !a.isLoggedIn() {
		return nil
	}
	return a.profileService.ViewRecipe(ctx, r.ID)
}

// Gallery drives the gallery view: no argument prints the current page,
// "more" and "reset" act on the pager and filters, "<facet> <value>" filters.
func (a *App) Gallery(ctx context.Context, args []string) error {
	var page filter.Page[models.GalleryImage]
	switch {
	case len(args) == 0:
		page = a.gallery.Page()
	case len(args) == 1 && args[0] == "more":
		page = a.gallery.LoadMore()
	case len(args) == 1 && args[0] == "reset":
		page = a.gallery.Reset()
	case len(args) >= 2:
		f, ok := filter.ParseFacet(args[0])
		if !ok {
			return fmt.Errorf("unknown facet %q", args[0])
		}
		page = a.gallery.SetFacet(f, strings.Join(args[1:], " "))
	default:
		return errUsage
	}

	printlnFn(fmt.Sprintf("%d/%d images", page.Shown, page.Matched))
	for _, g := range page.Items {
		printlnFn(fmt.Sprintf("  [%d] %s (%s, %s)", g.ID, g.Title, g.Country, g.Continent))
	}
	if page.HasMore {
		printlnFn("  ... tapez 'gallery more' pour en voir plus")
	}
	return nil
}

// mapFacets are the filters of the map view; "type" is the dish category.
var mapFacets = map[string]filter.Facet{
	"continent":  filter.FacetContinent,
	"type":       filter.FacetCategory,
	"difficulty": filter.FacetDifficulty,
}

// Map prints the dishes matching the map filters, grouped by continent,
// each tagged with its marker color.
func (a *App) Map(ctx context.Context, args []string) error {
	switch {
	case len(args) == 0:
	case len(args) == 1 && args[0] == "reset":
		a.dishes.Reset()
	case len(args) >= 2:
		f, ok := mapFacets[args[0]]
		if !ok {
			return fmt.Errorf("unknown map filter %q", args[0])
		}
		a.dishes.SetFacet(f, strings.Join(args[1:], " "))
	default:
		return errUsage
	}

	groups := filter.GroupByContinent(a.dishes.Matched())
	for _, c := range filter.Continents(groups) {
		printlnFn(fmt.Sprintf("%s (%d)", c, len(groups[c])))
		for _, r := range groups[c] {
			printlnFn(fmt.Sprintf("  %s %s, %s", filter.MarkerColor(r.Category), r.Name, r.Country))
		}
	}
	return nil
}

// Export writes recipes to a spreadsheet: the filtered list by default,
// or the user's favorites with "favorites <file>".
func (a *App) Export(ctx context.Context, args []string) (err error) {
	var (
		name    string
		recipes []models.Recipe
	)
	switch {
	case len(args) == 1:
		a.recipes.FlushSearch()
		name, recipes = args[0], a.recipes.Matched()
	case len(args) == 2 && args[0] == "favorites":
		name = args[1]
		if recipes, err = a.profileService.Favorites(a.catalog); err != nil {
			return err
		}
	default:
		return errUsage
	}

	f, err := filex.CreateWithDirs(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := catalog.ExportXLSX(f, recipes); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%d recettes exportées vers %s", len(recipes), name))
	return nil
}

// printRecipePage renders a recipe page headed by the stats of every
// match. It also runs from the debounce timer, so whole pages are written
// under a.render.
func (a *App) printRecipePage(p filter.Page[models.Recipe]) {
	a.render.Lock()
	defer a.render.Unlock()

	if p.Matched == 0 {
		printlnFn("Aucune recette trouvée")
		return
	}
	printlnFn(fmt.Sprintf("%d/%d recettes", p.Shown, p.Matched))
	printlnFn(statsLine(filter.Summarize(a.recipes.Matched())))
	for _, r := range p.Items {
		printlnFn(a.recipeLine(r))
	}
	if p.HasMore {
		printlnFn("  ... tapez 'more' pour en voir plus")
	}
}

func (a *App) recipeLine(r models.Recipe) string {
	mark := " "
	if u, ok := a.authService.Current(); ok && u.HasFavorite(r.ID) {
		mark = "♥"
	}
	return fmt.Sprintf(" %s [%d] %s (%s) · %s · %s · %s", mark, r.ID, r.Name, r.Country, r.Difficulty, r.Time, rating(r))
}

func (a *App) lookup(id string) (models.Recipe, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("invalid recipe id %q", id)
	}
	r, ok := catalog.FindRecipe(a.catalog, n)
	if !ok {
		return models.Recipe{}, fmt.Errorf("recipe %d not found", n)
	}
	return r, nil
}

func rating(r models.Recipe) string {
	if r.Rating == nil {
		return "-"
	}
	return fmt.Sprintf("★ %.1f", *r.Rating)
}
