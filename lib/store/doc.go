// Package store provides the untyped storage abstraction behind dObj objects.
// It maps key identities (key.ID) to erased values and knows nothing about the
// value types; the typed facades in lib/object recover them.
//
// The package focuses on:
//   - Two contracts, Store (copy-on-write) and MutableStore (in-place point
//     mutations plus copy-on-write structural operations)
//   - A small set of primitives from which all composite operations are derived
//   - Pluggable implementations through the Factory pattern
//
// Key Components:
//
//   - Reader: The read primitives Keys, Len, Get and Has. Go has no covariant
//     return types, so Store and MutableStore share their reads through this
//     interface instead of embedding one another.
//
//   - Store: WithAll and WithoutAll return a new store. The receiver is never
//     modified, which makes a Store safe to share as a snapshot.
//
//   - MutableStore: Put and Remove modify the receiver in place. WithAll and
//     WithoutAll still return new, independent stores, so in-place mutation is
//     exclusively done through Put, Remove and ComputeIfAbsent.
//
//   - Derived operations: ExistingKeys, GetAll, With, Without, PutAll,
//     RemoveAll and ComputeIfAbsent are free functions over the primitives.
//     Implementations can override them through the optional interfaces
//     KeyFilter, BatchGetter and Computer, but must preserve their policies.
//
// Policies of the derived operations:
//   - GetAll never returns a placeholder for a missing key. Only present keys
//     appear in the result, also when their stored value is nil.
//   - Removing an absent key, putting the same value twice and empty batches
//     are no-ops, never errors.
//   - ComputeIfAbsent treats a present nil value like an absent key.
//
// Thread Safety:
//
//	The contracts make no thread-safety promises on their own. Whatever the
//	backing primitive of an implementation guarantees is what callers get.
//	The default ComputeIfAbsent is not atomic (get, compute and put are
//	separate steps) and structural operations copy the whole store, so they
//	are not linearizable with concurrent point mutations.
//
// Implementations:
//
//	- Map Store (mapstore): Map-backed immutable and mutable stores over a
//	  plain Go map or a concurrent xsync map.
//	  Available in the "github.com/ValentinKolb/dObj/lib/store/mapstore" package.
//
//	- Metered Store (metered): A decorator that counts operations of any store
//	  in a VictoriaMetrics metrics set.
//	  Available in the "github.com/ValentinKolb/dObj/lib/store/metered" package.
//
// The testing package (github.com/ValentinKolb/dObj/lib/store/testing) provides
// a conformance suite and benchmarks every implementation should pass.
package store
