// Package common defines shared sentinel errors and small helpers used across
// the GastroGlobe client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Directory-level errors.
	ErrNotFound             = errors.New("not found")
	ErrDuplicateEmail       = errors.New("an account with this email already exists")
	ErrAuthenticationFailed = errors.New("invalid credentials")

	// Service-level errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInFlight         = errors.New("request already in progress")

	// Storage and catalog errors.
	ErrStorage     = errors.New("storage failure")
	ErrCatalogLoad = errors.New("catalog load failure")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
)
