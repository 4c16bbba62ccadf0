package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/gastroglobe/internal/client/directory"
	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
	"github.com/dmitrijs2005/gastroglobe/internal/client/profile"
	"github.com/dmitrijs2005/gastroglobe/internal/common"
	"github.com/dmitrijs2005/gastroglobe/internal/logging"
	"github.com/dmitrijs2005/gastroglobe/internal/validation"
	"golang.org/x/sync/semaphore"
)

// ProfileDirectory is the part of the user directory ProfileService needs.
type ProfileDirectory interface {
	Current() (*models.User, bool)
	VerifyPassword(userID int, password string) bool
	ToggleFavorite(ctx context.Context, userID, recipeID int) (bool, error)
	AppendHistory(ctx context.Context, userID int, a models.Activity) error
	ClearHistory(ctx context.Context, userID int) error
	AddQuizScore(ctx context.Context, userID, score int) error
	UpdateProfile(ctx context.Context, userID int, upd directory.ProfileUpdate) (*models.User, error)
}

// ProfileRequest is the profile edit form. Empty Name or Email keep the
// current value; the password fields are only used to change the password.
type ProfileRequest struct {
	Name            string
	Email           string
	Avatar          string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
	Settings        *models.Settings
}

// ProfileService acts on the signed-in user. Every method fails with
// common.ErrNotAuthenticated when nobody is signed in.
type ProfileService interface {
	ToggleFavorite(ctx context.Context, recipeID int) (bool, error)
	ViewRecipe(ctx context.Context, recipeID int) error
	CompleteQuiz(ctx context.Context, score int) error
	UpdateProfile(ctx context.Context, req ProfileRequest) (*models.User, error)
	ClearHistory(ctx context.Context) error
	Overview() (profile.Stats, error)
	Achievements() ([]profile.Badge, error)
	Favorites(catalog []models.Recipe) ([]models.Recipe, error)
	History(activityType string) ([]models.Activity, error)
}

type profileService struct {
	dir      ProfileDirectory
	latency  time.Duration
	inflight *semaphore.Weighted
	sleep    func(time.Duration)
	log      logging.Logger
}

func NewProfileService(dir ProfileDirectory, latency Latency, log logging.Logger) ProfileService {
	return &profileService{
		dir:      dir,
		latency:  latency.Profile,
		inflight: semaphore.NewWeighted(1),
		sleep:    time.Sleep,
		log:      log.With("component", "profile"),
	}
}

func (p *profileService) current() (*models.User, error) {
	u, ok := p.dir.Current()
	if !ok {
		return nil, common.ErrNotAuthenticated
	}
	return u, nil
}

// ToggleFavorite flips recipeID and records the addition in the history.
func (p *profileService) ToggleFavorite(ctx context.Context, recipeID int) (bool, error) {
	u, err := p.current()
	if err != nil {
		return false, err
	}

	added, err := p.dir.ToggleFavorite(ctx, u.ID, recipeID)
	if err != nil && !errors.Is(err, common.ErrStorage) {
		return false, err
	}
	if added {
		herr := p.dir.AppendHistory(ctx, u.ID, models.Activity{Type: models.ActivityFavoriteAdded, ItemID: recipeID})
		err = errors.Join(err, herr)
	}
	return added, err
}

func (p *profileService) ViewRecipe(ctx context.Context, recipeID int) error {
	u, err := p.current()
	if err != nil {
		return err
	}
	return p.dir.AppendHistory(ctx, u.ID, models.Activity{Type: models.ActivityRecipeView, ItemID: recipeID})
}

func (p *profileService) CompleteQuiz(ctx context.Context, score int) error {
	u, err := p.current()
	if err != nil {
		return err
	}
	return p.dir.AddQuizScore(ctx, u.ID, score)
}

func (p *profileService) ClearHistory(ctx context.Context) error {
	u, err := p.current()
	if err != nil {
		return err
	}
	return p.dir.ClearHistory(ctx, u.ID)
}

// UpdateProfile validates the form, checks the current password when a new
// one is requested, waits the simulated latency and merges the changes.
func (p *profileService) UpdateProfile(ctx context.Context, req ProfileRequest) (*models.User, error) {
	u, err := p.current()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		req.Name = u.Name
	}
	if strings.TrimSpace(req.Email) == "" {
		req.Email = u.Email
	}
	if err := validation.ValidateProfile(validation.Profile{
		Name:            req.Name,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		return nil, err
	}
	if req.NewPassword != "" && !p.dir.VerifyPassword(u.ID, req.CurrentPassword) {
		return nil, &validation.Error{Fields: []validation.FieldError{{
			Field:   "current_password",
			Tag:     "password",
			Message: "current password is incorrect",
		}}}
	}

	release, err := acquire(p.inflight)
	if err != nil {
		return nil, err
	}
	defer release()

	p.sleep(p.latency)

	upd := directory.ProfileUpdate{
		Name:     &req.Name,
		Email:    &req.Email,
		Settings: req.Settings,
	}
	if req.Avatar != "" {
		upd.Avatar = &req.Avatar
	}
	if req.NewPassword != "" {
		upd.Password = &req.NewPassword
	}

	out, err := p.dir.UpdateProfile(ctx, u.ID, upd)
	if err == nil {
		p.log.Info(ctx, "profile updated", "user_id", u.ID)
	}
	return out, err
}

func (p *profileService) Overview() (profile.Stats, error) {
	u, err := p.current()
	if err != nil {
		return profile.Stats{}, err
	}
	return profile.Overview(u), nil
}

func (p *profileService) Achievements() ([]profile.Badge, error) {
	u, err := p.current()
	if err != nil {
		return nil, err
	}
	return profile.Achievements(u), nil
}

func (p *profileService) Favorites(catalog []models.Recipe) ([]models.Recipe, error) {
	u, err := p.current()
	if err != nil {
		return nil, err
	}
	return profile.Favorites(u, catalog), nil
}

func (p *profileService) History(activityType string) ([]models.Activity, error) {
	u, err := p.current()
	if err != nil {
		return nil, err
	}
	return profile.FilterHistory(u, activityType), nil
}
