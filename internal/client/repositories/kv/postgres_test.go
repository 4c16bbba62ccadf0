package kv

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewSQLRepository(db, Postgres), mock
}

func TestPostgres_GetAndSet(t *testing.T) {
	r, mock := newPostgresMock(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE key = $1`)).
		WithArgs("gastroglobe_users").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte("[]")))

	v, err := r.Get(ctx, "gastroglobe_users")
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE key = $1`)).
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	v, err = r.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, v)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv (key, value) VALUES ($1, $2)`)).
		WithArgs("gastroglobe_theme", []byte(`"dark"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Set(ctx, "gastroglobe_theme", []byte(`"dark"`)))
}

func TestPostgres_SetManyIsTransactional(t *testing.T) {
	r, mock := newPostgresMock(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv`)).
		WithArgs("only", []byte("1")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := r.SetMany(ctx, map[string][]byte{"only": []byte("1")})
	require.ErrorContains(t, err, "disk full")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv`)).
		WithArgs("only", []byte("2")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, r.SetMany(ctx, map[string][]byte{"only": []byte("2")}))
}

func TestPostgres_ListAndDeletePrefix(t *testing.T) {
	r, mock := newPostgresMock(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value FROM kv WHERE key LIKE $1`)).
		WithArgs(`gastroglobe\_%`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("gastroglobe_users", []byte("[]")).
			AddRow("gastroglobe_theme", []byte(`"light"`)))

	m, err := r.List(ctx, "gastroglobe_")
	require.NoError(t, err)
	assert.Len(t, m, 2)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv WHERE key LIKE $1`)).
		WithArgs(`gastroglobe\_%`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, r.DeletePrefix(ctx, "gastroglobe_"))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv WHERE key = $1`)).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, r.Delete(ctx, "k"))
}

func TestPostgres_ScanErrorWrapped(t *testing.T) {
	r, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value FROM kv`)).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("k", []byte("v")).
			RowError(0, errors.New("broken row")))

	_, err := r.List(context.Background(), "")
	require.Error(t, err)
}
