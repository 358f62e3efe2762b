package object

import "github.com/ValentinKolb/dObj/lib/key"

// Merge returns a with all fields of b added. On conflicts the value of b wins.
// It works for Object and *MutableObject; a is not modified.
func Merge[T interface{ WithAll(...key.AnyField) T }](a T, b Reader) T {
	return a.WithAll(b.Fields()...)
}

// Subtract returns a without every key present in b. Only key membership in b
// matters, not its values. a is not modified.
func Subtract[T interface{ WithoutAll(key.Set) T }](a T, b Reader) T {
	return a.WithoutAll(b.Keys())
}

// MergeInto puts all fields of b into m.
func MergeInto(m *MutableObject, b Reader) {
	m.PutAll(b.Fields()...)
}

// SubtractFrom removes every key present in b from m.
func SubtractFrom(m *MutableObject, b Reader) {
	m.RemoveAll(b.Keys())
}
