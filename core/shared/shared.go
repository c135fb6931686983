// Package shared provides a process-wide store of create-once values.
//
// A value is created by the first caller that requests its key and is
// reused by every caller after that for the remaining process lifetime.
// The store exists so that identity values (like the route-reference
// family marker) converge on a single instance even when the requesting
// code is linked into the binary from more than one place.
package shared

import "sync"

// store maps a fixed key to its lazily created value.
// Each entry is a *sync.Once paired with the slot it fills, so that
// concurrent first access runs the create function exactly once.
var store sync.Map

type cell struct {
	once  sync.Once
	value any
}

// Value returns the process-wide value for the given key, creating it
// with create on first access. Subsequent calls with the same key return
// the originally created value, regardless of caller or goroutine.
func Value(key string, create func() any) any {
	c, _ := store.LoadOrStore(key, &cell{})
	cl := c.(*cell)
	cl.once.Do(func() {
		cl.value = create()
	})
	return cl.value
}

// Reset clears every stored value. Intended for tests only.
func Reset() {
	store.Range(func(key, _ any) bool {
		store.Delete(key)
		return true
	})
}
