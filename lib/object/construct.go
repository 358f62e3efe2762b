package object

import (
	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/store"
	"github.com/ValentinKolb/dObj/lib/store/mapstore"
)

// --------------------------------------------------------------------------
// Constructors
// --------------------------------------------------------------------------

// Of creates an object holding the given fields, backed by a plain map store.
func Of(fields ...key.AnyField) Object {
	return OfStore(mapstore.New(nil, nil), fields...)
}

// OfStore creates an object from s with the given fields added.
// s itself is not modified.
func OfStore(s store.Store, fields ...key.AnyField) Object {
	if len(fields) == 0 {
		return Object{s: s}
	}
	return Object{s: s.WithAll(key.Entries(fields...))}
}

// MutableOf creates a mutable object holding the given fields, backed by a
// plain Go map. The object must not be used from more than one goroutine.
func MutableOf(fields ...key.AnyField) *MutableObject {
	return MutableOfStore(mapstore.NewMutable(nil, mapstore.DefaultOptions()), fields...)
}

// ConcurrentMutableOf creates a mutable object holding the given fields, backed
// by a concurrent map. Point operations are safe for concurrent use;
// ComputeIfAbsent and the structural operations are not linearizable.
func ConcurrentMutableOf(fields ...key.AnyField) *MutableObject {
	return MutableOfStore(mapstore.NewMutable(nil, mapstore.ConcurrentOptions()), fields...)
}

// MutableOfStore creates a mutable object on top of s and puts the given
// fields into it. Unlike OfStore, s is used directly and the fields are
// written into it.
func MutableOfStore(s store.MutableStore, fields ...key.AnyField) *MutableObject {
	m := &MutableObject{s: s}
	m.PutAll(fields...)
	return m
}

// --------------------------------------------------------------------------
// Conversions
// --------------------------------------------------------------------------

// ToObject returns an independent immutable snapshot of src.
func ToObject(src Reader) Object {
	return ToObjectIn(src, Of())
}

// ToObjectIn returns target with all fields of src added. Neither src nor
// target are modified.
func ToObjectIn(src Reader, target Object) Object {
	return target.WithAll(src.Fields()...)
}

// ToMutableObject returns an independent mutable copy of src backed by a
// plain Go map.
func ToMutableObject(src Reader) *MutableObject {
	return ToMutableObjectIn(src, MutableOf())
}

// ToMutableObjectIn returns a new mutable object holding the fields of
// target and src, where src wins on conflicts. Neither src nor target are
// modified; the result is backed by a copy of target's store.
func ToMutableObjectIn(src Reader, target *MutableObject) *MutableObject {
	return target.WithAll(src.Fields()...)
}
