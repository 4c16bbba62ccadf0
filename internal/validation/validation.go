// Package validation checks the registration, login and profile forms with
// go-playground/validator and rates password strength.
//
// Every Validate* function returns nil or a *Error listing each failing
// field, so callers can report all problems at once:
//
//	if err := validation.ValidateRegistration(form); err != nil {
//	    var verr *validation.Error
//	    errors.As(err, &verr)
//	}
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Registration is the sign-up form.
type Registration struct {
	Name            string `json:"name" validate:"min=2,max=50"`
	Email           string `json:"email" validate:"required,simple_email"`
	Password        string `json:"password" validate:"min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password"`
}

// Login is the sign-in form.
type Login struct {
	Email    string `json:"email" validate:"required,simple_email"`
	Password string `json:"password" validate:"required"`
}

// Profile is the profile edit form. The password fields are optional, but
// a new password needs the current one and a matching confirmation.
type Profile struct {
	Name            string `json:"name" validate:"min=2,max=50"`
	Email           string `json:"email" validate:"required,simple_email"`
	CurrentPassword string `json:"current_password" validate:"required_with=NewPassword"`
	NewPassword     string `json:"new_password" validate:"omitempty,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=NewPassword"`
}

// ValidateRegistration checks a sign-up form. Name and email are trimmed
// before checking; name length counts runes.
func ValidateRegistration(r Registration) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return check(&r)
}

// ValidateLogin checks a sign-in form.
func ValidateLogin(l Login) error {
	l.Email = strings.TrimSpace(l.Email)
	return check(&l)
}

// ValidateProfile checks a profile edit form.
func ValidateProfile(p Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	return check(&p)
}

// ValidEmail reports whether s looks like an address: something, an @,
// something, a dot, something, with no whitespace.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = validate.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
			return ValidEmail(fl.Field().String())
		})
	})
	return validate
}

func check(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &Error{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}
