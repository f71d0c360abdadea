// Package storage models a browser-style local store: a shared string
// key-value backend plus per-context handles. Writes through one context
// raise change events in every other attached context, never in the writer.
package storage

// Backend is the raw synchronous key-value store.
type Backend interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	Keys() []string
}
