package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gastroglobe/internal/dbx"
)

// Dialect holds the statements of one SQL flavour.
type Dialect struct {
	Name         string
	get          string
	set          string
	del          string
	list         string
	deletePrefix string
	// pattern turns a key prefix into the argument of list/deletePrefix.
	pattern      func(prefix string) string
}

var (
	SQLite = Dialect{
		Name: "sqlite3",
		get:  `SELECT value FROM kv WHERE key = ?`,
		set: `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		del:          `DELETE FROM kv WHERE key = ?`,
		list:         `SELECT key, value FROM kv WHERE key GLOB ?`,
		deletePrefix: `DELETE FROM kv WHERE key GLOB ?`,
		pattern:      globPrefix,
	}

	Postgres = Dialect{
		Name: "postgres",
		get:  `SELECT value FROM kv WHERE key = $1`,
		set: `
		INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		del:          `DELETE FROM kv WHERE key = $1`,
		list:         `SELECT key, value FROM kv WHERE key LIKE $1 ESCAPE '\'`,
		deletePrefix: `DELETE FROM kv WHERE key LIKE $1 ESCAPE '\'`,
		pattern:      likePrefix,
	}
)

type SQLRepository struct {
	conn    *sql.DB
	db      dbx.DBTX
	dialect Dialect
}

func NewSQLRepository(db *sql.DB, dialect Dialect) *SQLRepository {
	return &SQLRepository{conn: db, db: db, dialect: dialect}
}

func (r *SQLRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, r.dialect.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.set(ctx, r.db, key, value)
}

func (r *SQLRepository) set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	if _, err := db.ExecContext(ctx, r.dialect.set, key, value); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	err := dbx.WithTx(ctx, r.conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for k, v := range values {
			if err := r.set(ctx, tx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set kv batch: %w", err)
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, r.dialect.del, key); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context, prefix string) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.list, r.dialect.pattern(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list kv[%s*]: %w", prefix, err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) DeletePrefix(ctx context.Context, prefix string) error {
	if _, err := r.db.ExecContext(ctx, r.dialect.deletePrefix, r.dialect.pattern(prefix)); err != nil {
		return fmt.Errorf("failed to delete kv[%s*]: %w", prefix, err)
	}
	return nil
}

// SQLite's LIKE ignores ASCII case, GLOB does not.
var globEscaper = strings.NewReplacer(`[`, `[[]`, `*`, `[*]`, `?`, `[?]`)

// globPrefix turns prefix into a GLOB pattern matching it literally.
func globPrefix(prefix string) string {
	return globEscaper.Replace(prefix) + "*"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePrefix turns prefix into a LIKE pattern matching it literally.
func likePrefix(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
