// Package storage is the namespaced JSON store the client persists its state
// in. Values are JSON documents kept under "<namespace>_<key>" in a
// kv.Repository.
//
// Failures never escape: every method logs the cause and reports false.
package storage

import (
	"context"
	"fmt"
	"reflect"

	"github.com/dmitrijs2005/gastroglobe/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gastroglobe/internal/common"
	"github.com/dmitrijs2005/gastroglobe/internal/logging"
	"github.com/goccy/go-json"
)

// Well-known keys.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "current_user"
	KeyTheme       = "theme"

	// KeySessionSecret keeps a generated token secret across runs.
	KeySessionSecret = "session_secret"
)

type Store struct {
	repo      kv.Repository
	namespace string
	log       logging.Logger
}

func New(repo kv.Repository, namespace string, log logging.Logger) *Store {
	return &Store{repo: repo, namespace: namespace, log: log.With("component", "storage")}
}

func (s *Store) key(k string) string {
	return s.namespace + "_" + k
}

// Set encodes v as JSON and stores it under key.
func (s *Store) Set(ctx context.Context, key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.fail(ctx, "encode", key, err)
		return false
	}
	if err := s.repo.Set(ctx, s.key(key), data); err != nil {
		s.fail(ctx, "set", key, err)
		return false
	}
	return true
}

// SetMany stores several values in one atomic write.
func (s *Store) SetMany(ctx context.Context, values map[string]any) bool {
	batch := make(map[string][]byte, len(values))
	for k, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			s.fail(ctx, "encode", k, err)
			return false
		}
		batch[s.key(k)] = data
	}
	if err := s.repo.SetMany(ctx, batch); err != nil {
		s.fail(ctx, "set many", fmt.Sprint(len(values), " keys"), err)
		return false
	}
	return true
}

// Get decodes the value under key into dst, which must be a non-nil
// pointer. When the key is absent or cannot be decoded dst keeps its
// current (default) value and Get returns false.
func (s *Store) Get(ctx context.Context, key string, dst any) bool {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		s.fail(ctx, "get", key, fmt.Errorf("destination must be a non-nil pointer, got %T", dst))
		return false
	}

	data, err := s.repo.Get(ctx, s.key(key))
	if err != nil {
		s.fail(ctx, "get", key, err)
		return false
	}
	if data == nil {
		return false
	}

	tmp := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(data, tmp.Interface()); err != nil {
		s.fail(ctx, "decode", key, err)
		return false
	}
	rv.Elem().Set(tmp.Elem())
	return true
}

func (s *Store) Remove(ctx context.Context, key string) bool {
	if err := s.repo.Delete(ctx, s.key(key)); err != nil {
		s.fail(ctx, "remove", key, err)
		return false
	}
	return true
}

// Clear removes every key of the namespace and nothing else.
func (s *Store) Clear(ctx context.Context) bool {
	if err := s.repo.DeletePrefix(ctx, s.key("")); err != nil {
		s.fail(ctx, "clear", "*", err)
		return false
	}
	return true
}

func (s *Store) fail(ctx context.Context, op, key string, err error) {
	s.log.Error(ctx, "storage operation failed",
		"op", op,
		"key", key,
		"error", fmt.Errorf("%w: %w", common.ErrStorage, err),
	)
}
