// Package directory owns the user records and the current-user slot.
//
// Every mutation is written through to the store before Login, Logout and
// UpdateProfile notify subscribers. When a write fails the in-memory change
// is kept and the error wraps common.ErrStorage.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
	"github.com/dmitrijs2005/gastroglobe/internal/client/session"
	"github.com/dmitrijs2005/gastroglobe/internal/client/storage"
	"github.com/dmitrijs2005/gastroglobe/internal/common"
	"github.com/dmitrijs2005/gastroglobe/internal/cryptox"
	"github.com/dmitrijs2005/gastroglobe/internal/logging"
)

// DefaultAvatar is used when a registration names none.
const DefaultAvatar = "👨‍🍳"

var ErrNegativeScore = errors.New("quiz score must not be negative")

// Store is the persistence the directory writes through to.
type Store interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, v any) bool
	SetMany(ctx context.Context, values map[string]any) bool
	Remove(ctx context.Context, key string) bool
}

// Tokens encodes the current-user pointer.
type Tokens interface {
	Issue(userID int) (string, error)
	Parse(token string) (int, error)
}

// Publisher receives session transitions.
type Publisher interface {
	Publish(ctx context.Context, c session.Change)
}

// ProfileUpdate lists the fields to merge; nil means unchanged. Password is
// the new plain-text password.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Avatar   *string
	Password *string
	Settings *models.Settings
}

type Directory struct {
	mu      sync.Mutex
	users   []*models.User
	current int

	store  Store
	tokens Tokens
	events Publisher
	log    logging.Logger
	now    func() time.Time
}

func New(store Store, tokens Tokens, events Publisher, log logging.Logger) *Directory {
	return &Directory{
		store:  store,
		tokens: tokens,
		events: events,
		log:    log.With("component", "directory"),
		now:    time.Now,
	}
}

// Load reads the users from the store, seeding the demo accounts when there
// are none, and restores the current user from the persisted token.
func (d *Directory) Load(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var users []*models.User
	d.store.Get(ctx, storage.KeyUsers, &users)
	d.users = users
	d.current = 0
	if len(users) == 0 {
		d.users = demoUsers()
		if err := d.persistUsers(ctx); err != nil {
			d.log.Warn(ctx, "demo users kept in memory only", "error", err)
		}
		d.log.Info(ctx, "seeded demo users", "count", len(d.users))
	}

	var token string
	if !d.store.Get(ctx, storage.KeyCurrentUser, &token) {
		return
	}
	id, err := d.tokens.Parse(token)
	if err == nil && d.find(id) == nil {
		err = fmt.Errorf("user %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		d.log.Warn(ctx, "discarding persisted session", "error", err)
		d.store.Remove(ctx, storage.KeyCurrentUser)
		return
	}
	d.current = id
	d.log.Info(ctx, "session restored", "user_id", id)
}

// Authenticate returns the user whose email equals email exactly and whose
// password matches. Unknown emails and wrong passwords both yield
// common.ErrAuthenticationFailed.
func (d *Directory) Authenticate(email, password string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.Email == email && cryptox.VerifyPassword(u.PasswordHash, []byte(password)) {
			return u.Clone(), nil
		}
	}
	return nil, common.ErrAuthenticationFailed
}

// VerifyPassword reports whether password is the password of user userID.
func (d *Directory) VerifyPassword(userID int, password string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	u := d.find(userID)
	return u != nil && cryptox.VerifyPassword(u.PasswordHash, []byte(password))
}

// Register creates a user with the next free id. The email is stored
// lower-cased and trimmed, the name trimmed.
func (d *Directory) Register(ctx context.Context, name, email, password, avatar string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	email = normalizeEmail(email)
	if d.findByEmail(email, 0) != nil {
		return nil, common.ErrDuplicateEmail
	}
	if avatar == "" {
		avatar = DefaultAvatar
	}

	u := &models.User{
		ID:           d.nextID(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: cryptox.HashPassword([]byte(password)),
		Avatar:       avatar,
		MemberSince:  models.Today(d.now()),
		Favorites:    []int{},
		History:      []models.Activity{},
		Settings:     models.DefaultSettings(),
	}
	d.users = append(d.users, u)
	d.log.Info(ctx, "user registered", "user_id", u.ID)

	return u.Clone(), d.persistUsers(ctx)
}

// UpdateProfile merges upd into the current user, who must be userID.
// A current user missing from the directory is logged out.
func (d *Directory) UpdateProfile(ctx context.Context, userID int, upd ProfileUpdate) (*models.User, error) {
	d.mu.Lock()

	u, forced, err := d.currentLocked(ctx)
	if err != nil {
		d.mu.Unlock()
		if forced {
			d.events.Publish(ctx, session.Change{Type: session.ChangeLogout})
		}
		return nil, err
	}
	if u.ID != userID {
		d.mu.Unlock()
		return nil, fmt.Errorf("user %d is not the current user: %w", userID, common.ErrNotFound)
	}

	var email string
	if upd.Email != nil {
		email = normalizeEmail(*upd.Email)
		if d.findByEmail(email, u.ID) != nil {
			d.mu.Unlock()
			return nil, common.ErrDuplicateEmail
		}
	}

	if upd.Name != nil {
		u.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		u.Email = email
	}
	if upd.Avatar != nil && *upd.Avatar != "" {
		u.Avatar = *upd.Avatar
	}
	if upd.Password != nil {
		u.PasswordHash = cryptox.HashPassword([]byte(*upd.Password))
	}

	values := map[string]any{storage.KeyUsers: d.users}
	if upd.Settings != nil {
		u.Settings = *upd.Settings
		values[storage.KeyTheme] = u.Settings.Theme
	}

	var perr error
	if !d.store.SetMany(ctx, values) {
		perr = fmt.Errorf("save profile of user %d: %w", u.ID, common.ErrStorage)
	}
	out := u.Clone()
	d.mu.Unlock()

	d.events.Publish(ctx, session.Change{Type: session.ChangeUpdate, User: out.Clone()})
	return out, perr
}

// ToggleFavorite flips recipeID in the favorites of userID and returns the
// new membership state.
func (d *Directory) ToggleFavorite(ctx context.Context, userID, recipeID int) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	u := d.find(userID)
	if u == nil {
		return false, fmt.Errorf("user %d: %w", userID, common.ErrNotFound)
	}
	added := u.ToggleFavorite(recipeID)
	return added, d.persistUsers(ctx)
}

// AppendHistory records a at the head of the history of userID, dated
// today.
func (d *Directory) AppendHistory(ctx context.Context, userID int, a models.Activity) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	u := d.find(userID)
	if u == nil {
		return fmt.Errorf("user %d: %w", userID, common.ErrNotFound)
	}
	a.Date = models.Today(d.now())
	u.PrependHistory(a)
	return d.persistUsers(ctx)
}

func (d *Directory) ClearHistory(ctx context.Context, userID int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	u := d.find(userID)
	if u == nil {
		return fmt.Errorf("user %d: %w", userID, common.ErrNotFound)
	}
	u.History = []models.Activity{}
	return d.persistUsers(ctx)
}

// AddQuizScore adds score to the total of userID and records the quiz.
func (d *Directory) AddQuizScore(ctx context.Context, userID, score int) error {
	if score < 0 {
		return ErrNegativeScore
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	u := d.find(userID)
	if u == nil {
		return fmt.Errorf("user %d: %w", userID, common.ErrNotFound)
	}
	u.QuizScore += score
	u.PrependHistory(models.Activity{Type: models.ActivityQuizCompleted, Score: score, Date: models.Today(d.now())})
	return d.persistUsers(ctx)
}

// Login makes u the current user, persists the session token and then
// announces the change.
func (d *Directory) Login(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("login without user: %w", common.ErrNotFound)
	}

	d.mu.Lock()
	stored := d.find(u.ID)
	if stored == nil {
		d.mu.Unlock()
		return fmt.Errorf("user %d: %w", u.ID, common.ErrNotFound)
	}
	d.current = stored.ID

	var perr error
	token, err := d.tokens.Issue(stored.ID)
	switch {
	case err != nil:
		perr = fmt.Errorf("issue session token: %w: %w", common.ErrStorage, err)
	case !d.store.Set(ctx, storage.KeyCurrentUser, token):
		perr = fmt.Errorf("save session: %w", common.ErrStorage)
	}
	out := stored.Clone()
	d.mu.Unlock()

	d.log.Info(ctx, "user logged in", "user_id", out.ID)
	d.events.Publish(ctx, session.Change{Type: session.ChangeLogin, User: out})
	return perr
}

// Logout clears the current user, removes the persisted token and then
// announces the change.
func (d *Directory) Logout(ctx context.Context) error {
	d.mu.Lock()
	perr := d.logoutLocked(ctx)
	d.mu.Unlock()

	d.events.Publish(ctx, session.Change{Type: session.ChangeLogout})
	return perr
}

// Current returns a copy of the current user.
func (d *Directory) Current() (*models.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current == 0 {
		return nil, false
	}
	u := d.find(d.current)
	if u == nil {
		return nil, false
	}
	return u.Clone(), true
}

// User returns a copy of the user with id.
func (d *Directory) User(id int) (*models.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	u := d.find(id)
	if u == nil {
		return nil, false
	}
	return u.Clone(), true
}

// Len returns the number of users.
func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.users)
}

// currentLocked returns the stored current user. A dangling pointer is
// cleared and reported with forced set; the caller announces the logout
// once the lock is released.
func (d *Directory) currentLocked(ctx context.Context) (u *models.User, forced bool, err error) {
	if d.current == 0 {
		return nil, false, fmt.Errorf("no current user: %w", common.ErrNotFound)
	}
	u = d.find(d.current)
	if u == nil {
		id := d.current
		d.log.Warn(ctx, "current user vanished, forcing logout", "user_id", id)
		_ = d.logoutLocked(ctx)
		return nil, true, fmt.Errorf("current user %d: %w", id, common.ErrNotFound)
	}
	return u, false, nil
}

func (d *Directory) logoutLocked(ctx context.Context) error {
	if d.current != 0 {
		d.log.Info(ctx, "user logged out", "user_id", d.current)
	}
	d.current = 0
	if !d.store.Remove(ctx, storage.KeyCurrentUser) {
		return fmt.Errorf("remove session: %w", common.ErrStorage)
	}
	return nil
}

func (d *Directory) persistUsers(ctx context.Context) error {
	if !d.store.Set(ctx, storage.KeyUsers, d.users) {
		return fmt.Errorf("save users: %w", common.ErrStorage)
	}
	return nil
}

func (d *Directory) find(id int) *models.User {
	for _, u := range d.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// findByEmail looks for email among users other than exceptID.
func (d *Directory) findByEmail(email string, exceptID int) *models.User {
	for _, u := range d.users {
		if u.ID != exceptID && normalizeEmail(u.Email) == email {
			return u
		}
	}
	return nil
}

func (d *Directory) nextID() int {
	maxID := 0
	for _, u := range d.users {
		maxID = max(maxID, u.ID)
	}
	return maxID + 1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
