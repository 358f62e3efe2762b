package object

import (
	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/store"
	"github.com/ValentinKolb/dObj/lib/store/mapstore"
)

// Reader is the read-only view shared by Object, *MutableObject and Fields.
// The typed accessors Get and GetValue work on every Reader.
//
// The interface is sealed: it can only be implemented inside this package.
type Reader interface {
	// Keys returns the set of keys that are present.
	Keys() key.Set

	// Len returns the number of present keys.
	Len() int

	// Contains reports whether the key is present, even if its value is nil.
	Contains(id key.Identifier) bool

	// ExistingKeys returns the subset of ids that is present.
	ExistingKeys(ids key.Set) key.Set

	// GetAll returns a snapshot of the requested keys that are present.
	// Absent keys are not part of the result.
	GetAll(ids key.Set) Fields

	// Fields returns all present fields ordered by key creation.
	Fields() []key.AnyField

	load() store.Reader
}

// emptyStore backs the zero Object. It is never modified.
var emptyStore = mapstore.New(nil, nil)

// ---- shared read implementations ----

func containsIn(r store.Reader, id key.Identifier) bool {
	return r.Has(id.ID())
}

func getAllIn(r store.Reader, ids key.Set) Fields {
	return Fields{values: store.GetAll(r, ids)}
}

func fieldsOf(r store.Reader) []key.AnyField {
	ids := r.Keys().Slice()
	fields := make([]key.AnyField, 0, len(ids))
	for _, id := range ids {
		// the key may have been removed concurrently since Keys was called
		if v, ok := r.Get(id); ok {
			fields = append(fields, key.Entry{ID: id, Value: v})
		}
	}
	return fields
}
