package object

import (
	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/store"
)

// Object is an immutable, heterogeneous collection of typed fields.
//
// All structural operations (With, WithAll, Without, WithoutAll) return a new
// Object and leave the receiver unchanged. Object is a small value type and
// can be copied freely. The zero Object is a valid empty object.
type Object struct {
	s store.Store
}

func (o Object) backing() store.Store {
	if o.s == nil {
		return emptyStore
	}
	return o.s
}

func (o Object) load() store.Reader { return o.backing() }

// ---- Reader ----

func (o Object) Keys() key.Set { return o.backing().Keys() }

func (o Object) Len() int { return o.backing().Len() }

func (o Object) Contains(id key.Identifier) bool { return containsIn(o.backing(), id) }

func (o Object) ExistingKeys(ids key.Set) key.Set { return store.ExistingKeys(o.backing(), ids) }

func (o Object) GetAll(ids key.Set) Fields { return getAllIn(o.backing(), ids) }

func (o Object) Fields() []key.AnyField { return fieldsOf(o.backing()) }

// ---- Structural operations ----

// With returns a new object with the field added. An existing value of the
// same key is replaced.
func (o Object) With(f key.AnyField) Object {
	return Object{s: store.With(o.backing(), f.Entry())}
}

// WithAll returns a new object with all fields added. If a key occurs more
// than once, the last field wins.
func (o Object) WithAll(fs ...key.AnyField) Object {
	return Object{s: o.backing().WithAll(key.Entries(fs...))}
}

// Without returns a new object without the key. Absent keys are ignored.
func (o Object) Without(id key.Identifier) Object {
	return Object{s: store.Without(o.backing(), id.ID())}
}

// WithoutAll returns a new object without any of the keys.
func (o Object) WithoutAll(ids key.Set) Object {
	return Object{s: o.backing().WithoutAll(ids)}
}

func (o Object) String() string { return format(o.Fields()) }
