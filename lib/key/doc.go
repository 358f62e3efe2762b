// Package key provides the identity tokens of the dObj data model.
//
// A Key[V] addresses exactly one field of an object and pins the type V of
// the value stored under it. Keys carry no data besides their identity: every
// call to New yields a distinct key, even if the same name is used twice.
// Keys are therefore usually declared once as package level variables:
//
//	var (
//		Name = key.New[string]("name")
//		Age  = key.New[int]("age")
//	)
//
// Key Components:
//
//   - ID: The type-erased identity of a key. Stores are untyped and index
//     their entries by ID. An ID also records the declared value type, a
//     random uuid and a monotonic sequence number used for stable ordering.
//
//   - Field / Entry: A Field[V] binds a value to a key. Entry is its erased
//     counterpart used by the storage layer. Both implement AnyField so
//     fields of mixed value types can be passed as one batch.
//
//   - Set: A set of IDs. Sets iterate in key creation order via Slice, which
//     keeps batch operations deterministic.
//
// Type-Identity Invariant:
//
//	A given ID must only ever be paired with values of the type V its key was
//	declared with. The typed APIs enforce this through generics; writing to a
//	store directly with the erased ID can violate it, in which case the
//	violation surfaces when the value is read back through a typed accessor.
package key
