// Package services contains the application services driven by the CLI.
//
// Every submitting operation validates its input first, then holds a
// one-slot guard for the duration of the simulated network latency and the
// directory call. A second submission while one is pending fails with
// common.ErrInFlight instead of queueing. A storage failure after the
// in-memory change returns the changed user together with an error
// wrapping common.ErrStorage.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
	"github.com/dmitrijs2005/gastroglobe/internal/common"
	"github.com/dmitrijs2005/gastroglobe/internal/logging"
	"github.com/dmitrijs2005/gastroglobe/internal/validation"
	"golang.org/x/sync/semaphore"
)

// Latency is the simulated round trip of each submitting operation.
type Latency struct {
	Login    time.Duration
	Register time.Duration
	Profile  time.Duration
}

// AuthDirectory is the part of the user directory AuthService needs.
type AuthDirectory interface {
	Authenticate(email, password string) (*models.User, error)
	Register(ctx context.Context, name, email, password, avatar string) (*models.User, error)
	Login(ctx context.Context, u *models.User) error
	Logout(ctx context.Context) error
	Current() (*models.User, bool)
}

type RegisterRequest struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Avatar          string
}

// AuthService signs users in and out.
//
// Contract:
//   - Login: validate, authenticate (email is lower-cased), make current.
//   - Register: validate, create the account, then sign it in.
//   - Logout: clear the current user.
//   - Current: snapshot of the signed-in user.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Logout(ctx context.Context) error
	Current() (*models.User, bool)
}

type authService struct {
	dir      AuthDirectory
	latency  Latency
	inflight *semaphore.Weighted
	sleep    func(time.Duration)
	log      logging.Logger
}

func NewAuthService(dir AuthDirectory, latency Latency, log logging.Logger) AuthService {
	return &authService{
		dir:      dir,
		latency:  latency,
		inflight: semaphore.NewWeighted(1),
		sleep:    time.Sleep,
		log:      log.With("component", "auth"),
	}
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := validation.ValidateLogin(validation.Login{Email: email, Password: password}); err != nil {
		return nil, err
	}

	release, err := acquire(a.inflight)
	if err != nil {
		return nil, err
	}
	defer release()

	a.sleep(a.latency.Login)

	u, err := a.dir.Authenticate(normalizeEmail(email), password)
	if err != nil {
		a.log.Info(ctx, "login rejected")
		return nil, err
	}
	if err := a.dir.Login(ctx, u); err != nil {
		return u, err
	}
	a.log.Info(ctx, "logged in", "user_id", u.ID)
	return u, nil
}

func (a *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := validation.ValidateRegistration(validation.Registration{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		return nil, err
	}

	release, err := acquire(a.inflight)
	if err != nil {
		return nil, err
	}
	defer release()

	a.sleep(a.latency.Register)

	u, err := a.dir.Register(ctx, req.Name, req.Email, req.Password, req.Avatar)
	if err != nil && !errors.Is(err, common.ErrStorage) {
		return nil, err
	}
	if lerr := a.dir.Login(ctx, u); lerr != nil {
		err = errors.Join(err, lerr)
	}
	return u, err
}

func (a *authService) Logout(ctx context.Context) error {
	return a.dir.Logout(ctx)
}

func (a *authService) Current() (*models.User, bool) {
	return a.dir.Current()
}

func acquire(s *semaphore.Weighted) (func(), error) {
	if !s.TryAcquire(1) {
		return nil, common.ErrInFlight
	}
	return func() { s.Release(1) }, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
