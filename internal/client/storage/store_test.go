package storage

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gastroglobe/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gastroglobe/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

func newStore(t *testing.T) (*Store, kv.Repository) {
	t.Helper()
	repo, closeFn, err := kv.Open(context.Background(), kv.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	return New(repo, "gastroglobe", logging.Nop()), repo
}

func TestStore_SetGetNamespaced(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	require.True(t, s.Set(ctx, KeyTheme, "dark"))

	raw, err := repo.Get(ctx, "gastroglobe_theme")
	require.NoError(t, err)
	assert.JSONEq(t, `"dark"`, string(raw))

	var theme string
	require.True(t, s.Get(ctx, KeyTheme, &theme))
	assert.Equal(t, "dark", theme)

	got := settings{Theme: "light"}
	require.True(t, s.Set(ctx, "settings", settings{Theme: "dark", Count: 3}))
	require.True(t, s.Get(ctx, "settings", &got))
	assert.Equal(t, settings{Theme: "dark", Count: 3}, got)
}

func TestStore_GetKeepsDefault(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	users := []int{42}
	assert.False(t, s.Get(ctx, KeyUsers, &users))
	assert.Equal(t, []int{42}, users)

	require.NoError(t, repo.Set(ctx, "gastroglobe_users", []byte(`[1, 2, "three"]`)))
	assert.False(t, s.Get(ctx, KeyUsers, &users))
	assert.Equal(t, []int{42}, users)

	assert.False(t, s.Get(ctx, KeyUsers, users))
	assert.False(t, s.Get(ctx, KeyUsers, nil))
}

func TestStore_SetManyRemoveClear(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "foreign_key", []byte("1")))
	require.True(t, s.SetMany(ctx, map[string]any{KeyUsers: []int{1}, KeyTheme: "dark"}))

	var theme string
	require.True(t, s.Get(ctx, KeyTheme, &theme))
	assert.Equal(t, "dark", theme)

	require.True(t, s.Remove(ctx, KeyTheme))
	assert.False(t, s.Get(ctx, KeyTheme, &theme))

	require.True(t, s.Clear(ctx))
	var users []int
	assert.False(t, s.Get(ctx, KeyUsers, &users))

	raw, err := repo.Get(ctx, "foreign_key")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), raw)
}

type brokenRepo struct{ kv.Repository }

var errBroken = errors.New("quota exceeded")

func (brokenRepo) Get(context.Context, string) ([]byte, error) { return nil, errBroken }
func (brokenRepo) Set(context.Context, string, []byte) error { return errBroken }
func (brokenRepo) SetMany(context.Context, map[string][]byte) error { return errBroken }
func (brokenRepo) Delete(context.Context, string) error { return errBroken }
func (brokenRepo) DeletePrefix(context.Context, string) error { return errBroken }

func TestStore_FailuresAreReportedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	s := New(brokenRepo{}, "gastroglobe", logging.New("text", "debug", &buf))
	ctx := context.Background()

	var v string
	assert.False(t, s.Set(ctx, "k", "v"))
	assert.False(t, s.SetMany(ctx, map[string]any{"k": "v"}))
	assert.False(t, s.Get(ctx, "k", &v))
	assert.False(t, s.Remove(ctx, "k"))
	assert.False(t, s.Clear(ctx))

	assert.Contains(t, buf.String(), "quota exceeded")
	assert.Contains(t, buf.String(), "storage failure")
	assert.Contains(t, buf.String(), "component=storage")
}

func TestStore_UnencodableValue(t *testing.T) {
	s, _ := newStore(t)
	assert.False(t, s.Set(context.Background(), "k", make(chan int)))
	assert.False(t, s.SetMany(context.Background(), map[string]any{"k": func() {}}))
}
