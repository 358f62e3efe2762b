package object

import (
	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/store"
)

// MutableObject is a heterogeneous collection of typed fields that can also be
// modified in place with Put, PutAll, Remove, RemoveAll and ComputeIfAbsent.
//
// Structural operations (With, WithAll, Without, WithoutAll) still return a
// new, independent MutableObject and leave the receiver unchanged.
//
// A MutableObject is safe for concurrent use only if its store is; see
// ConcurrentMutableOf.
type MutableObject struct {
	s store.MutableStore
}

func (m *MutableObject) load() store.Reader { return m.s }

// ---- Reader ----

func (m *MutableObject) Keys() key.Set { return m.s.Keys() }

func (m *MutableObject) Len() int { return m.s.Len() }

func (m *MutableObject) Contains(id key.Identifier) bool { return containsIn(m.s, id) }

func (m *MutableObject) ExistingKeys(ids key.Set) key.Set { return store.ExistingKeys(m.s, ids) }

func (m *MutableObject) GetAll(ids key.Set) Fields { return getAllIn(m.s, ids) }

func (m *MutableObject) Fields() []key.AnyField { return fieldsOf(m.s) }

// ---- Structural operations ----

func (m *MutableObject) With(f key.AnyField) *MutableObject {
	return &MutableObject{s: store.With(m.s, f.Entry())}
}

func (m *MutableObject) WithAll(fs ...key.AnyField) *MutableObject {
	return &MutableObject{s: m.s.WithAll(key.Entries(fs...))}
}

func (m *MutableObject) Without(id key.Identifier) *MutableObject {
	return &MutableObject{s: store.Without(m.s, id.ID())}
}

func (m *MutableObject) WithoutAll(ids key.Set) *MutableObject {
	return &MutableObject{s: m.s.WithoutAll(ids)}
}

// ---- In-place operations ----

// PutAll stores all fields in order. Later fields overwrite earlier ones.
func (m *MutableObject) PutAll(fs ...key.AnyField) {
	store.PutAll(m.s, key.Entries(fs...))
}

// Remove deletes the key. Removing an absent key is a no-op.
func (m *MutableObject) Remove(id key.Identifier) {
	m.s.Remove(id.ID())
}

// RemoveAll deletes all keys in ids.
func (m *MutableObject) RemoveAll(ids key.Set) {
	store.RemoveAll(m.s, ids)
}

func (m *MutableObject) String() string { return format(m.Fields()) }
