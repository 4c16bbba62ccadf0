package directory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
	"github.com/dmitrijs2005/gastroglobe/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gastroglobe/internal/client/session"
	"github.com/dmitrijs2005/gastroglobe/internal/client/storage"
	"github.com/dmitrijs2005/gastroglobe/internal/common"
	"github.com/dmitrijs2005/gastroglobe/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures published changes together with the persisted token at
// the moment of publishing.
type recorder struct {
	mu      sync.Mutex
	store   *storage.Store
	changes []session.Change
	tokens  []string
}

func (r *recorder) Publish(ctx context.Context, c session.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var tok string
	r.store.Get(ctx, storage.KeyCurrentUser, &tok)
	r.changes = append(r.changes, c)
	r.tokens = append(r.tokens, tok)
}

type fixture struct {
	dir    *Directory
	store  *storage.Store
	tokens *session.Tokens
	events *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo, closeFn, err := kv.Open(context.Background(), kv.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	store := storage.New(repo, "gastroglobe", logging.Nop())
	f := &fixture{
		store:  store,
		tokens: session.NewTokens([]byte("test-secret"), time.Hour),
		events: &recorder{store: store},
	}
	f.dir = f.reopen()
	return f
}

// reopen builds a fresh Directory over the same store, as a new process would.
func (f *fixture) reopen() *Directory {
	d := New(f.store, f.tokens, f.events, logging.Nop())
	d.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	d.Load(context.Background())
	return d
}

func TestLoad_SeedsDemoUsersOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.Equal(t, 2, f.dir.Len())

	jean, ok := f.dir.User(1)
	require.True(t, ok)
	assert.Equal(t, "Jean Dupont", jean.Name)
	assert.Equal(t, "jean@example.com", jean.Email)
	assert.NotContains(t, jean.PasswordHash, DemoPassword)
	assert.Equal(t, "2024-02-01", jean.History[0].Date)

	_, err := f.dir.Register(ctx, "Alice", "alice@example.com", "secret1", "")
	require.NoError(t, err)

	d := f.reopen()
	assert.Equal(t, 3, d.Len())
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)

	u, err := f.dir.Authenticate("jean@example.com", DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)

	_, errWrong := f.dir.Authenticate("jean@example.com", "wrong")
	_, errUnknown := f.dir.Authenticate("nobody@example.com", DemoPassword)
	_, errCase := f.dir.Authenticate("JEAN@example.com", DemoPassword)

	for _, err := range []error{errWrong, errUnknown, errCase} {
		require.ErrorIs(t, err, common.ErrAuthenticationFailed)
		assert.Equal(t, errWrong.Error(), err.Error())
	}

	assert.True(t, f.dir.VerifyPassword(2, DemoPassword))
	assert.False(t, f.dir.VerifyPassword(2, "nope"))
	assert.False(t, f.dir.VerifyPassword(42, DemoPassword))
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.dir.Register(ctx, "Jean", "jean@example.com", "secret1", "")
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
	_, err = f.dir.Register(ctx, "Jean", " JEAN@example.com ", "secret1", "")
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
	assert.Equal(t, 2, f.dir.Len())

	u, err := f.dir.Register(ctx, "  Alice Liddell ", " Alice@Example.COM", "secret1", "🧑‍🍳")
	require.NoError(t, err)
	assert.Equal(t, 3, u.ID)
	assert.Equal(t, "Alice Liddell", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "🧑‍🍳", u.Avatar)
	assert.Equal(t, "2024-03-10", u.MemberSince)
	assert.Empty(t, u.Favorites)
	assert.Empty(t, u.History)
	assert.Zero(t, u.QuizScore)
	assert.Equal(t, models.DefaultSettings(), u.Settings)

	got, err := f.dir.Authenticate("alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.ID)

	u, err = f.dir.Register(ctx, "Bob", "bob@example.com", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, 4, u.ID)
	assert.Equal(t, DefaultAvatar, u.Avatar)
}

func TestRegister_IDIsMaxPlusOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.True(t, f.store.Set(ctx, storage.KeyUsers, []*models.User{{ID: 7, Email: "a@b.co"}, {ID: 2, Email: "c@d.co"}}))
	d := f.reopen()

	u, err := d.Register(ctx, "Carol", "carol@example.com", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, 8, u.ID)
}

func TestToggleFavorite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	added, err := f.dir.ToggleFavorite(ctx, 1, 3)
	require.NoError(t, err)
	assert.False(t, added)
	added, err = f.dir.ToggleFavorite(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, added)

	u, _ := f.dir.User(1)
	assert.ElementsMatch(t, []int{1, 3, 5}, u.Favorites)

	_, err = f.dir.ToggleFavorite(ctx, 99, 1)
	require.ErrorIs(t, err, common.ErrNotFound)

	d := f.reopen()
	u, _ = d.User(1)
	assert.ElementsMatch(t, []int{1, 3, 5}, u.Favorites)
}

func TestAppendHistory_BoundedAndMostRecentFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 60; i++ {
		require.NoError(t, f.dir.AppendHistory(ctx, 2, models.Activity{Type: models.ActivityRecipeView, ItemID: i}))
		u, _ := f.dir.User(2)
		require.LessOrEqual(t, len(u.History), models.MaxHistory)
		require.Equal(t, i, u.History[0].ItemID)
		require.Equal(t, "2024-03-10", u.History[0].Date)
	}

	require.ErrorIs(t, f.dir.AppendHistory(ctx, 99, models.Activity{}), common.ErrNotFound)

	require.NoError(t, f.dir.ClearHistory(ctx, 2))
	u, _ := f.dir.User(2)
	assert.Empty(t, u.History)
}

func TestAddQuizScore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.dir.AddQuizScore(ctx, 2, 40))
	u, _ := f.dir.User(2)
	assert.Equal(t, 115, u.QuizScore)
	assert.Equal(t, models.Activity{Type: models.ActivityQuizCompleted, Score: 40, Date: "2024-03-10"}, u.History[0])

	require.ErrorIs(t, f.dir.AddQuizScore(ctx, 2, -1), ErrNegativeScore)
	require.ErrorIs(t, f.dir.AddQuizScore(ctx, 99, 1), common.ErrNotFound)
}

func TestLoginLogout_PersistBeforeNotify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.dir.Authenticate("marie@example.com", DemoPassword)
	require.NoError(t, err)
	require.NoError(t, f.dir.Login(ctx, u))

	cur, ok := f.dir.Current()
	require.True(t, ok)
	assert.Equal(t, 2, cur.ID)

	require.Len(t, f.events.changes, 1)
	assert.Equal(t, session.ChangeLogin, f.events.changes[0].Type)
	assert.Equal(t, 2, f.events.changes[0].User.ID)
	id, err := f.tokens.Parse(f.events.tokens[0])
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	restored, ok := f.reopen().Current()
	require.True(t, ok)
	assert.Equal(t, 2, restored.ID)

	require.NoError(t, f.dir.Logout(ctx))
	_, ok = f.dir.Current()
	assert.False(t, ok)
	require.Len(t, f.events.changes, 2)
	assert.Equal(t, session.ChangeLogout, f.events.changes[1].Type)
	assert.Nil(t, f.events.changes[1].User)
	assert.Empty(t, f.events.tokens[1])

	_, ok = f.reopen().Current()
	assert.False(t, ok)

	require.ErrorIs(t, f.dir.Login(ctx, &models.User{ID: 99}), common.ErrNotFound)
	require.ErrorIs(t, f.dir.Login(ctx, nil), common.ErrNotFound)
}

func TestLoad_DiscardsBadSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.True(t, f.store.Set(ctx, storage.KeyCurrentUser, "garbage"))
	_, ok := f.reopen().Current()
	assert.False(t, ok)
	var tok string
	assert.False(t, f.store.Get(ctx, storage.KeyCurrentUser, &tok))

	orphan, err := f.tokens.Issue(42)
	require.NoError(t, err)
	require.True(t, f.store.Set(ctx, storage.KeyCurrentUser, orphan))
	_, ok = f.reopen().Current()
	assert.False(t, ok)
}

func TestCurrent_ReturnsCopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, _ := f.dir.User(1)
	require.NoError(t, f.dir.Login(ctx, u))

	cur, _ := f.dir.Current()
	cur.Name = "mutated"
	cur.Favorites[0] = 999

	again, _ := f.dir.Current()
	assert.Equal(t, "Jean Dupont", again.Name)
	assert.Equal(t, 1, again.Favorites[0])
}

func ptr[T any](v T) *T { return &v }

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.dir.UpdateProfile(ctx, 1, ProfileUpdate{Name: ptr("X")})
	require.ErrorIs(t, err, common.ErrNotFound)

	jean, _ := f.dir.User(1)
	require.NoError(t, f.dir.Login(ctx, jean))

	_, err = f.dir.UpdateProfile(ctx, 2, ProfileUpdate{Name: ptr("X")})
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = f.dir.UpdateProfile(ctx, 1, ProfileUpdate{Email: ptr("Marie@example.com"), Name: ptr("Changed")})
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
	cur, _ := f.dir.Current()
	assert.Equal(t, "Jean Dupont", cur.Name)

	settings := cur.Settings
	settings.Theme = "dark"
	updated, err := f.dir.UpdateProfile(ctx, 1, ProfileUpdate{
		Name:     ptr(" Jean D. "),
		Email:    ptr("JEAN.D@example.com"),
		Avatar:   ptr("🍕"),
		Password: ptr("newsecret"),
		Settings: &settings,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jean D.", updated.Name)
	assert.Equal(t, "jean.d@example.com", updated.Email)
	assert.Equal(t, "🍕", updated.Avatar)
	assert.Equal(t, "dark", updated.Settings.Theme)

	var theme string
	require.True(t, f.store.Get(ctx, storage.KeyTheme, &theme))
	assert.Equal(t, "dark", theme)

	_, err = f.dir.Authenticate("jean.d@example.com", "newsecret")
	require.NoError(t, err)

	last := f.events.changes[len(f.events.changes)-1]
	assert.Equal(t, session.ChangeUpdate, last.Type)
	assert.Equal(t, "Jean D.", last.User.Name)

	_, err = f.dir.UpdateProfile(ctx, 1, ProfileUpdate{Email: ptr("jean.d@example.com")})
	require.NoError(t, err)
}

func TestUpdateProfile_DanglingCurrentForcesLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.dir.mu.Lock()
	f.dir.current = 99
	f.dir.mu.Unlock()

	_, err := f.dir.UpdateProfile(ctx, 99, ProfileUpdate{Name: ptr("Ghost")})
	require.ErrorIs(t, err, common.ErrNotFound)

	_, ok := f.dir.Current()
	assert.False(t, ok)
	last := f.events.changes[len(f.events.changes)-1]
	assert.Equal(t, session.ChangeLogout, last.Type)
}

type failingStore struct{ Store }

func (failingStore) Get(context.Context, string, any) bool { return false }
func (failingStore) Set(context.Context, string, any) bool { return false }
func (failingStore) SetMany(context.Context, map[string]any) bool { return false }
func (failingStore) Remove(context.Context, string) bool { return false }

func TestStorageFailure_KeepsMemoryState(t *testing.T) {
	tokens := session.NewTokens([]byte("s"), time.Hour)
	d := New(failingStore{}, tokens, nopPublisher{}, logging.Nop())
	ctx := context.Background()
	d.Load(ctx)
	require.Equal(t, 2, d.Len())

	u, err := d.Register(ctx, "Alice", "alice@example.com", "secret1", "")
	require.ErrorIs(t, err, common.ErrStorage)
	require.NotNil(t, u)
	assert.Equal(t, 3, d.Len())

	err = d.Login(ctx, u)
	require.ErrorIs(t, err, common.ErrStorage)
	cur, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, 3, cur.ID)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, session.Change) {}
