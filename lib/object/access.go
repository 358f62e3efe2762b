package object

import (
	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/store"
)

// --------------------------------------------------------------------------
// Typed Access
// --------------------------------------------------------------------------

// Get returns the value of k and whether k is present. For an absent key the
// zero value of V and false are returned. A key that is present with a nil
// value yields the zero value of V and true.
//
// Get panics with an *Error of code RetCTypeMismatch if the stored value is not
// a V. This can only happen if the store was written to directly with a value
// of the wrong type.
func Get[V any](r Reader, k key.Key[V]) (V, bool) {
	v, ok := r.load().Get(k.ID())
	if !ok {
		var zero V
		return zero, false
	}

	typed, err := cast[V](k.ID(), v)
	if err != nil {
		panic(err)
	}
	return typed, true
}

// GetValue is the strict accessor. It fails with RetCKeyNotFound only if k is
// not present. A present key with a nil value is returned as the zero value of
// V without an error. A stored value of the wrong type is returned as an error
// with code RetCTypeMismatch.
func GetValue[V any](r Reader, k key.Key[V]) (V, error) {
	var zero V

	v, ok := r.load().Get(k.ID())
	if !ok {
		return zero, keyNotFound(k.ID())
	}
	return cast[V](k.ID(), v)
}

// Put stores value under k, replacing any existing value.
func Put[V any](m *MutableObject, k key.Key[V], value V) {
	m.s.Put(k.ID(), value)
}

// ComputeIfAbsent returns the value of k if it is present and not nil, together
// with true. Otherwise compute is called; if it returns a non-nil value and
// true, that value is stored and returned with true. If compute declines, its
// result is returned with false and nothing is stored.
//
// Unless the object was created with an atomic compute (see
// mapstore.Options.AtomicCompute), this is not atomic: concurrent callers can
// each run compute for the same key and the last put wins.
func ComputeIfAbsent[V any](m *MutableObject, k key.Key[V], compute func() (V, bool)) (V, bool) {
	v, ok := store.ComputeIfAbsent(m.s, k.ID(), func() (any, bool) {
		computed, ok := compute()
		return computed, ok
	})

	typed, err := cast[V](k.ID(), v)
	if err != nil {
		panic(err)
	}
	return typed, ok
}

// cast recovers the typed value. nil becomes the zero value of V.
func cast[V any](id key.ID, v any) (V, error) {
	var zero V
	if v == nil {
		return zero, nil
	}

	typed, ok := v.(V)
	if !ok {
		return zero, typeMismatch[V](id, v)
	}
	return typed, nil
}
