// Package kv is the raw key/value persistence under the client's JSON
// store. Keys are strings, values opaque bytes.
//
// Two backends implement Repository: SQLRepository (a single "kv" table,
// SQLite or Postgres dialect, created by goose migrations) and
// BadgerRepository (an embedded LSM store). Open picks one by driver name.
//
// Get returns (nil, nil) for an absent key. Delete of an absent key is not
// an error. SetMany writes all pairs or none.
package kv
