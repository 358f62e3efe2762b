package store

import (
	"github.com/ValentinKolb/dObj/lib/key"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Factory is a function type that creates a new (empty) store.
// This is used to abstract the creation of the store from the objects using it.
type Factory func() Store

// MutableFactory is a function type that creates a new (empty) mutable store.
type MutableFactory func() MutableStore

// Reader contains the read primitives shared by Store and MutableStore.
// Stores are untyped: values are returned as they were written and it is the
// caller's responsibility to recover the value type.
type Reader interface {
	// Keys returns the set of keys present in the store. The returned set is
	// owned by the caller.
	Keys() (keys key.Set)
	// Len returns the number of keys in the store.
	Len() (n int)
	// Get returns the value for a key. The boolean return value indicates
	// whether the key was found. A key may be present with a nil value.
	Get(id key.ID) (value any, loaded bool)
	// Has returns whether a key exists in the store (also if its value is nil).
	Has(id key.ID) (loaded bool)
}

// Store is the immutable storage contract. Every structural update returns a
// new store; the receiver is never modified.
type Store interface {
	Reader
	// WithAll returns a new store containing all entries of the receiver plus
	// the given entries. Later entries overwrite earlier ones with the same key.
	WithAll(entries []key.Entry) Store
	// WithoutAll returns a new store containing all entries of the receiver
	// except those whose key is in ids. Absent keys are ignored.
	WithoutAll(ids key.Set) Store
}

// MutableStore is the mutable storage contract. Put and Remove modify the
// receiver in place. The structural operations WithAll and WithoutAll still
// return new, independent stores and never modify the receiver.
type MutableStore interface {
	Reader
	// WithAll returns a new mutable store (see Store.WithAll).
	WithAll(entries []key.Entry) MutableStore
	// WithoutAll returns a new mutable store (see Store.WithoutAll).
	WithoutAll(ids key.Set) MutableStore
	// Put inserts or overwrites the value for a key (last write wins).
	Put(id key.ID, value any)
	// Remove deletes a key. Removing an absent key is a no-op.
	Remove(id key.ID)
}

// --------------------------------------------------------------------------
// Optional Interfaces
// --------------------------------------------------------------------------

// Implementations can provide more efficient versions of the derived
// operations by implementing the following interfaces. Overriding
// implementations must keep the exact semantics of the default in
// defaults.go, in particular the omission of absent keys in GetAll.

// KeyFilter is implemented by stores that can filter key sets natively.
type KeyFilter interface {
	ExistingKeys(ids key.Set) key.Set
}

// BatchGetter is implemented by stores that can read batches natively.
type BatchGetter interface {
	GetAll(ids key.Set) map[key.ID]any
}

// Computer is implemented by mutable stores that provide their own
// (typically atomic) compute-if-absent.
type Computer interface {
	ComputeIfAbsent(id key.ID, compute func() (any, bool)) (value any, loaded bool)
}
