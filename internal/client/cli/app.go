package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gastroglobe/internal/client/filter"
	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
	"github.com/dmitrijs2005/gastroglobe/internal/client/services"
	"github.com/dmitrijs2005/gastroglobe/internal/client/session"
	"github.com/dmitrijs2005/gastroglobe/internal/logging"
)

// Subscriber delivers session changes.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan session.Change, error)
}

// Deps are the collaborators of an App.
type Deps struct {
	Auth    services.AuthService
	Profile services.ProfileService
	Events  Subscriber
	Recipes []models.Recipe
	Gallery []models.GalleryImage
	// Quiescence is the debounce window of the search command.
	Quiescence time.Duration
	In         io.Reader
	Out        io.Writer
	Log        logging.Logger
}

type App struct {
	authService    services.AuthService
	profileService services.ProfileService
	events         Subscriber

	catalog []models.Recipe
	recipes *filter.View[models.Recipe]
	gallery *filter.View[models.GalleryImage]
	dishes  *filter.View[models.Recipe]

	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger

	mu     sync.Mutex
	status string

	// render keeps pages printed from the debounce timer whole
	render sync.Mutex
	now    func() time.Time
}

func NewApp(d Deps) *App {
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Log == nil {
		d.Log = logging.Nop()
	}

	a := &App{
		authService:    d.Auth,
		profileService: d.Profile,
		events:         d.Events,
		catalog:        d.Recipes,
		recipes:        filter.NewView(d.Recipes, filter.RecipesPageSize, d.Quiescence),
		gallery:        filter.NewView(d.Gallery, filter.GalleryPageSize, d.Quiescence),
		dishes:         filter.NewView(d.Recipes, max(len(d.Recipes), 1), d.Quiescence),
		reader:         bufio.NewReader(d.In),
		out:            d.Out,
		log:            d.Log.With("component", "cli"),
		now:            time.Now,
	}
	if u, ok := d.Auth.Current(); ok {
		a.status = u.Name
	}
	// every recipe filter pass, debounced searches included, renders here
	a.recipes.OnChange(a.printRecipePage)
	return a
}

// Run prints the home page and blocks in the REPL until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.recipes.Close()
	defer a.gallery.Close()
	defer a.dishes.Close()

	if a.events != nil {
		ch, err := a.events.Subscribe(ctx)
		if err != nil {
			a.log.Error(ctx, "auth subscription failed", "error", err)
		} else {
			go a.watchAuth(ch)
		}
	}

	printlnFn("Bienvenue sur GastroGlobe ! (tapez 'help' pour les commandes)")
	_ = a.Home(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.authService.Current()
	return ok
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status == "" {
		return "(invité)"
	}
	return fmt.Sprintf("(%s)", a.status)
}

func (a *App) setStatus(s string) {
	a.mu.Lock()
	a.status = s
	a.mu.Unlock()
}

// watchAuth refreshes the prompt on every session change until ch closes.
func (a *App) watchAuth(ch <-chan session.Change) {
	for c := range ch {
		switch c.Type {
		case session.ChangeLogin, session.ChangeUpdate:
			if c.User != nil {
				a.setStatus(c.User.Name)
			}
		case session.ChangeLogout:
			a.setStatus("")
		}
	}
}
