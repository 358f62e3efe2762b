package key

import "fmt"

// AnyField is implemented by Field[V] and Entry. It allows fields of
// different value types to be passed in a single batch.
type AnyField interface {
	Entry() Entry
}

// Field is an immutable (key, value) pair.
type Field[V any] struct {
	Key   Key[V]
	Value V
}

// NewField binds value to k.
func NewField[V any](k Key[V], value V) Field[V] {
	return Field[V]{Key: k, Value: value}
}

// Entry erases the value type of the field.
func (f Field[V]) Entry() Entry {
	return Entry{ID: f.Key.id, Value: f.Value}
}

func (f Field[V]) String() string {
	return fmt.Sprintf("%s=%v", f.Key.id, f.Value)
}

// Entry is the type-erased form of a field as it is handed to the stores.
type Entry struct {
	ID    ID
	Value any
}

// Entry returns the entry itself.
func (e Entry) Entry() Entry { return e }

func (e Entry) String() string {
	return fmt.Sprintf("%s=%v", e.ID, e.Value)
}

// Entries erases a batch of fields, keeping their order.
func Entries(fields ...AnyField) []Entry {
	entries := make([]Entry, 0, len(fields))
	for _, f := range fields {
		entries = append(entries, f.Entry())
	}
	return entries
}
