// Package cli provides the interactive GastroGlobe terminal client.
//
// It renders the catalog views (recipes, gallery, map), the profile page
// and the sign-in forms, and reports user actions to the services. Session
// changes published on the auth_change topic refresh the prompt.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
