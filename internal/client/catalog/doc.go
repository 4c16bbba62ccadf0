// Package catalog loads the read-only recipe and gallery records.
//
// A source is either an s3://bucket/key object, an http(s) URL or a local
// file path. JSON payloads are decoded directly; HTML payloads are scraped
// from their first table. When a source cannot be read the embedded demo
// dataset is returned instead and the failure is logged.
package catalog
