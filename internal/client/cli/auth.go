package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/gastroglobe/internal/client/directory"
	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
	"github.com/dmitrijs2005/gastroglobe/internal/client/services"
	"github.com/dmitrijs2005/gastroglobe/internal/common"
	"github.com/dmitrijs2005/gastroglobe/internal/validation"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var themes = []string{"light", "dark"}

// Register prompts for the registration form and creates the account via
// the AuthService. The new user is signed in on success.
//
// A user returned together with an error means the account exists in memory
// but could not be saved; the welcome is printed and the error is reported.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Nom", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Mot de passe", a.out)
	if err != nil {
		return err
	}
	if _, label := validation.PasswordStrength(password); label != "" {
		printlnFn("Force du mot de passe:", label)
	}
	confirm, err := getPassword(a.reader, "Confirmez le mot de passe", a.out)
	if err != nil {
		return err
	}
	avatar, err := getSimpleText(a.reader, fmt.Sprintf("Avatar (défaut %s)", directory.DefaultAvatar), a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Register(ctx, services.RegisterRequest{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
		Avatar:          avatar,
	})
	if u != nil {
		a.setStatus(u.Name)
		printlnFn(fmt.Sprintf("Bienvenue %s %s !", avatarOf(u), u.Name))
	}
	return err
}

// Login prompts for credentials and signs the user in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Mot de passe", a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Login(ctx, email, password)
	if u != nil {
		a.setStatus(u.Name)
		printlnFn(fmt.Sprintf("Bon retour %s %s !", avatarOf(u), u.Name))
	}
	return err
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Vous n'êtes pas connecté")
		return nil
	}
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.setStatus("")
	printlnFn("Déconnexion réussie")
	return nil
}

// WhoAmI prints the signed-in user's identity and settings.
func (a *App) WhoAmI(ctx context.Context) error {
	u, ok := a.authService.Current()
	if !ok {
		printlnFn("Invité")
		return nil
	}
	printlnFn(fmt.Sprintf("%s %s <%s>", avatarOf(u), u.Name, u.Email))
	printlnFn(fmt.Sprintf("Membre depuis %s, thème %s, langue %s", u.MemberSince, u.Settings.Theme, u.Settings.Language))
	return nil
}

// Edit prompts for the profile form. Empty answers keep the current value;
// the password is changed only when a new one is typed.
func (a *App) Edit(ctx context.Context) error {
	u, ok := a.authService.Current()
	if !ok {
		return common.ErrNotAuthenticated
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("Nom (%s)", u.Name), a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, fmt.Sprintf("Email (%s)", u.Email), a.out)
	if err != nil {
		return err
	}
	avatar, err := getSimpleText(a.reader, fmt.Sprintf("Avatar (%s)", u.Avatar), a.out)
	if err != nil {
		return err
	}
	newPassword, err := getPassword(a.reader, "Nouveau mot de passe (vide pour conserver)", a.out)
	if err != nil {
		return err
	}

	req := services.ProfileRequest{Name: name, Email: email, Avatar: avatar}
	if newPassword != "" {
		if req.ConfirmPassword, err = getPassword(a.reader, "Confirmez le nouveau mot de passe", a.out); err != nil {
			return err
		}
		if req.CurrentPassword, err = getPassword(a.reader, "Mot de passe actuel", a.out); err != nil {
			return err
		}
		req.NewPassword = newPassword
	}

	updated, err := a.profileService.UpdateProfile(ctx, req)
	if updated != nil {
		a.setStatus(updated.Name)
		printlnFn("Profil mis à jour")
	}
	return err
}

// Theme switches the color theme setting, asking for it when theme is
// empty.
func (a *App) Theme(ctx context.Context, theme string) error {
	u, ok := a.authService.Current()
	if !ok {
		return common.ErrNotAuthenticated
	}
	if theme == "" {
		var err error
		if theme, err = GetChoice(a.reader, "Thème", themes, u.Settings.Theme, a.out); err != nil {
			return err
		}
	}
	if !slices.Contains(themes, theme) {
		return fmt.Errorf("unknown theme %q, expected one of %v", theme, themes)
	}

	settings := u.Settings
	settings.Theme = theme
	if _, err := a.profileService.UpdateProfile(ctx, services.ProfileRequest{Settings: &settings}); err != nil {
		return err
	}
	printlnFn("Thème:", theme)
	return nil
}

func avatarOf(u *models.User) string {
	if u == nil || u.Avatar == "" {
		return directory.DefaultAvatar
	}
	return u.Avatar
}
