package store

import (
	"reflect"

	"github.com/ValentinKolb/dObj/lib/key"
)

// --------------------------------------------------------------------------
// Derived Read Operations
// --------------------------------------------------------------------------

// ExistingKeys returns the subset of ids present in the store.
// Uses the store's KeyFilter implementation if there is one.
func ExistingKeys(r Reader, ids key.Set) key.Set {
	if f, ok := r.(KeyFilter); ok {
		return f.ExistingKeys(ids)
	}

	existing := make(key.Set, len(ids))
	for id := range ids {
		if r.Has(id) {
			existing[id] = struct{}{}
		}
	}
	return existing
}

// GetAll returns the values of all keys in ids that are present in the store.
// Requested keys that are absent are omitted from the result; keys that are
// present with a nil value are included with nil.
// Uses the store's BatchGetter implementation if there is one.
func GetAll(r Reader, ids key.Set) map[key.ID]any {
	if g, ok := r.(BatchGetter); ok {
		return g.GetAll(ids)
	}

	existing := ExistingKeys(r, ids)
	values := make(map[key.ID]any, len(existing))
	for id := range existing {
		if v, ok := r.Get(id); ok {
			values[id] = v
		}
	}
	return values
}

// --------------------------------------------------------------------------
// Derived Structural Operations
// --------------------------------------------------------------------------

// With returns s.WithAll with the single entry e.
// It works for both Store and MutableStore.
func With[S interface{ WithAll([]key.Entry) S }](s S, e key.Entry) S {
	return s.WithAll([]key.Entry{e})
}

// Without returns s.WithoutAll with the single key id.
// It works for both Store and MutableStore.
func Without[S interface{ WithoutAll(key.Set) S }](s S, id key.ID) S {
	return s.WithoutAll(key.NewSet(id))
}

// --------------------------------------------------------------------------
// Derived Mutable Operations
// --------------------------------------------------------------------------

// PutAll puts all entries in order. Later entries overwrite earlier ones.
func PutAll(m MutableStore, entries []key.Entry) {
	for _, e := range entries {
		m.Put(e.ID, e.Value)
	}
}

// RemoveAll removes all keys in ids, in key creation order.
func RemoveAll(m MutableStore, ids key.Set) {
	for _, id := range ids.Slice() {
		m.Remove(id)
	}
}

// ComputeIfAbsent returns the value stored for id if it is present and not nil.
// Otherwise, compute is called: if it returns a non-nil value with true, the
// value is put into the store and returned with true. If compute declines
// (false) or returns nil, nothing is stored and the result is returned with false.
//
// Concurrency: unless m implements Computer, this is get, compute and put as
// three separate steps. It is NOT atomic, even if the store is backed by a
// concurrent map. Two goroutines can both observe the key as absent, both call
// compute, and the second put silently overwrites the first. Stores that need
// atomicity must implement Computer on top of an atomic primitive of their
// backing map.
func ComputeIfAbsent(m MutableStore, id key.ID, compute func() (any, bool)) (any, bool) {
	if c, ok := m.(Computer); ok {
		return c.ComputeIfAbsent(id, compute)
	}

	if v, ok := m.Get(id); ok && !IsNil(v) {
		return v, true
	}

	v, ok := compute()
	if !ok || IsNil(v) {
		return v, false
	}

	m.Put(id, v)
	return v, true
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// IsNil reports whether v is nil or a nil pointer, map, slice, channel, function or interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
