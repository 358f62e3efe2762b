package key

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/google/uuid"
)

// seqCounter hands out the process-wide sequence numbers of all key identities.
var seqCounter atomic.Uint64

// --------------------------------------------------------------------------
// Erased Key Identity
// --------------------------------------------------------------------------

// meta holds the immutable metadata of a key identity.
// Identity is the address of the meta struct, never its contents.
type meta struct {
	seq  uint64
	id   uuid.UUID
	name string
	typ  reflect.Type
}

// ID is the type-erased identity of a key. Stores index their entries by ID.
//
// Two IDs are equal only if they were produced by the same call to New. The
// zero ID is invalid and never returned by New.
type ID struct {
	m *meta
}

// Identifier is implemented by everything that can be used to address a key.
// Both ID and every Key[V] implement it.
type Identifier interface {
	ID() ID
}

// ID returns the identity itself, so an ID can be used wherever an Identifier is expected.
func (id ID) ID() ID { return id }

// IsZero reports whether id is the invalid zero identity.
func (id ID) IsZero() bool { return id.m == nil }

// Seq returns the process-wide sequence number of the key (0 for the zero ID).
// Sequence numbers increase monotonically in creation order.
func (id ID) Seq() uint64 {
	if id.m == nil {
		return 0
	}
	return id.m.seq
}

// UUID returns the random identifier assigned to the key on creation.
func (id ID) UUID() uuid.UUID {
	if id.m == nil {
		return uuid.Nil
	}
	return id.m.id
}

// Name returns the human-readable name of the key (may be empty).
func (id ID) Name() string {
	if id.m == nil {
		return ""
	}
	return id.m.name
}

// Type returns the value type the key was declared with.
func (id ID) Type() reflect.Type {
	if id.m == nil {
		return nil
	}
	return id.m.typ
}

// String returns the name of the key, or its uuid if the key is unnamed.
func (id ID) String() string {
	switch {
	case id.m == nil:
		return "<invalid key>"
	case id.m.name != "":
		return id.m.name
	default:
		return id.m.id.String()
	}
}

// --------------------------------------------------------------------------
// Typed Key
// --------------------------------------------------------------------------

// Key is an identity token whose value type V is fixed at compile time.
// It carries no payload besides its identity. Keys are cheap to copy; all
// copies of a key address the same field.
type Key[V any] struct {
	id ID
}

// New creates a new, globally unique key for values of type V.
// The name is only used for display and does not participate in identity:
// two keys created with the same name are still different keys.
func New[V any](name string) Key[V] {
	return Key[V]{id: ID{m: &meta{
		seq:  seqCounter.Add(1),
		id:   uuid.New(),
		name: name,
		typ:  reflect.TypeOf((*V)(nil)).Elem(),
	}}}
}

// ID returns the erased identity of the key.
func (k Key[V]) ID() ID { return k.id }

// String implements fmt.Stringer.
func (k Key[V]) String() string {
	return fmt.Sprintf("%s(%s)", k.id, k.id.Type())
}

// Of binds a value to the key.
func (k Key[V]) Of(value V) Field[V] {
	return Field[V]{Key: k, Value: value}
}
