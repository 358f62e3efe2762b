// Package mapstore implements the default in-memory stores of dObj on top of
// an injectable map primitive.
//
// Key Features:
//   - Immutable store (New): holds a private copy of its initial entries
//   - Mutable store (NewMutable): wraps a caller-supplied map and mutates it in place
//   - Two backing maps: a plain Go map and a concurrent xsync.MapOf
//   - Optional atomic compute-if-absent on top of xsync's Compute
//
// Implementation Details:
//
//   - Backing Maps: The backing map is a strategy injected through Options.Factory
//     (or passed directly to NewMutable). NewPlainMap is single goroutine only.
//     NewConcurrentMap uses a xsync.MapOf hashed by the key's sequence number and
//     makes individual Load, Store and Delete calls safe for concurrent use.
//
//   - Copy-On-Write: WithAll and WithoutAll copy the complete backing map into a
//     new map of the same kind (Map.Empty) before applying the change. This is
//     O(n) per structural operation and never touches the original map, for the
//     immutable as well as for the mutable store.
//
//   - Compute-If-Absent: By default the mutable store relies on
//     store.ComputeIfAbsent, which is get, compute and put in three separate
//     steps and is NOT atomic, even over the concurrent map. Set
//     Options.AtomicCompute with a backing map implementing AtomicMap to get a
//     per-key atomic version built on xsync's Compute.
//
// Thread Safety:
//
//	The stores add no locking of their own. With the concurrent map, point
//	operations can be interleaved across goroutines, but structural operations
//	copy the map entry by entry and may observe a torn snapshot relative to
//	concurrent Puts. This is expected behavior.
//
// Usage Example:
//
//	// immutable store with two entries
//	s := mapstore.New(map[key.ID]any{name.ID(): "Alice", age.ID(): 30}, nil)
//	s2 := s.WithoutAll(key.NewSet(age)) // s is unchanged
//
//	// mutable store over a concurrent map with atomic compute-if-absent
//	opts := mapstore.ConcurrentOptions()
//	opts.AtomicCompute = true
//	m := mapstore.NewMutable(nil, opts)
//	m.Put(name.ID(), "Bob")
package mapstore
