package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gastroglobe/internal/common"
	"github.com/dmitrijs2005/gastroglobe/internal/validation"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Edit(ctx context.Context) error
	Theme(ctx context.Context, theme string) error

	Home(ctx context.Context) error
	Recipes(ctx context.Context) error
	Search(ctx context.Context, text string) error
	Filter(ctx context.Context, facet, value string) error
	Reset(ctx context.Context) error
	More(ctx context.Context) error
	Stats(ctx context.Context) error
	View(ctx context.Context, id string) error
	Popular(ctx context.Context) error
	Gallery(ctx context.Context, args []string) error
	Map(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error

	Fav(ctx context.Context, id string) error
	Favorites(ctx context.Context, args []string) error
	History(ctx context.Context, activityType string) error
	ClearHistory(ctx context.Context) error
	Quiz(ctx context.Context, score string) error
	Profile(ctx context.Context) error
	Achievements(ctx context.Context) error
}

var errUsage = errors.New("usage")

// runREPL starts a simple read–eval–print loop for the GastroGlobe CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user
// types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the signed-in user (from statusFn) and accepts:
//
//	Catalog:
//	  - recipes | search <text> | filter <facet> <value> | reset | more | stats
//	  - view <id> | popular | home
//	  - gallery [continent|category <value> | more | reset]
//	  - map [continent|type|difficulty <value> | reset]
//	  - export [favorites] <file.xlsx>
//
//	Account:
//	  - register | login | logout | whoami | edit | theme [light|dark]
//
//	Signed in:
//	  - fav <id> | favorites [text] | history [type] | clearhistory
//	  - quiz <score> | profile | achievements
//
// Handler errors are reported to the user and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gastroglobe %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printHelp(a.isLoggedIn())

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "edit":
			cmdErr = a.Edit(ctx)
		case "theme":
			cmdErr = a.Theme(ctx, strings.Join(args, " "))

		case "home":
			cmdErr = a.Home(ctx)
		case "recipes", "l":
			cmdErr = a.Recipes(ctx)
		case "search":
			cmdErr = a.Search(ctx, strings.Join(args, " "))
		case "filter":
			if len(args) < 2 {
				cmdErr = errUsage
				break
			}
			cmdErr = a.Filter(ctx, args[0], strings.Join(args[1:], " "))
		case "reset":
			cmdErr = a.Reset(ctx)
		case "more":
			cmdErr = a.More(ctx)
		case "stats":
			cmdErr = a.Stats(ctx)
		case "view":
			cmdErr = withArg(args, func(s string) error { return a.View(ctx, s) })
		case "popular":
			cmdErr = a.Popular(ctx)
		case "gallery":
			cmdErr = a.Gallery(ctx, args)
		case "map":
			cmdErr = a.Map(ctx, args)
		case "export":
			cmdErr = a.Export(ctx, args)

		case "fav":
			cmdErr = withArg(args, func(s string) error { return a.Fav(ctx, s) })
		case "favorites":
			cmdErr = a.Favorites(ctx, args)
		case "history":
			cmdErr = a.History(ctx, strings.Join(args, " "))
		case "clearhistory":
			cmdErr = a.ClearHistory(ctx)
		case "quiz":
			cmdErr = withArg(args, func(s string) error { return a.Quiz(ctx, s) })
		case "profile":
			cmdErr = a.Profile(ctx)
		case "achievements":
			cmdErr = a.Achievements(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			report(cmd, cmdErr)
		}
	}
}

func withArg(args []string, fn func(string) error) error {
	if len(args) != 1 {
		return errUsage
	}
	return fn(args[0])
}

func printHelp(loggedIn bool) {
	printlnFn("Catalogue: recipes, search <texte>, filter <facette> <valeur>, reset, more, stats, view <id>, popular, home, gallery, map, export <fichier.xlsx>")
	if loggedIn {
		printlnFn("Compte: fav <id>, favorites, history [type], clearhistory, quiz <score>, profile, achievements, edit, theme <light|dark>, whoami, logout, exit")
	} else {
		printlnFn("Compte: register, login, exit")
	}
}

// report turns a handler error into a user message.
func report(cmd string, err error) {
	var verr *validation.Error
	switch {
	case errors.Is(err, errUsage):
		printlnFn("Usage incorrect, tapez 'help'")
	case errors.As(err, &verr):
		for _, f := range verr.Fields {
			printlnFn(" -", f.Message)
		}
	case errors.Is(err, common.ErrNotAuthenticated):
		printlnFn("Veuillez vous connecter pour continuer")
	case errors.Is(err, common.ErrAuthenticationFailed):
		printlnFn("Email ou mot de passe incorrect")
	case errors.Is(err, common.ErrDuplicateEmail):
		printlnFn("Un compte avec cet email existe déjà")
	case errors.Is(err, common.ErrInFlight):
		printlnFn("Une requête est déjà en cours")
	case errors.Is(err, common.ErrStorage):
		printlnFn("Attention: la sauvegarde locale a échoué")
	default:
		printlnFn(fmt.Sprintf("%s: %v", cmd, err))
	}
}
