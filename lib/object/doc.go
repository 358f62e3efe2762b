/*
Package object provides type-safe, heterogeneous key-value objects.

An object is a collection of fields, each addressed by a typed key.Key[V].
Keys of different value types can live in the same object, while reads
through a key always return the key's value type:

	var (
		Name = key.New[string]("name")
		Age  = key.New[int]("age")
	)

	obj := object.Of(Name.Of("Alice"))
	obj2 := obj.With(Age.Of(30))

	name, _ := object.Get(obj2, Name) // "Alice"
	_, ok := object.Get(obj, Age)     // false, obj is unchanged

Object is immutable: With, WithAll, Without and WithoutAll return new
objects. MutableObject additionally supports in-place updates with Put,
PutAll, Remove, RemoveAll and ComputeIfAbsent.

Both facades sit on top of a store.Store or store.MutableStore. The default
stores are provided by the mapstore package; any other implementation can be
plugged in with OfStore and MutableOfStore, e.g. a store wrapped by the
metered package.

# Absent and nil

Get distinguishes a missing key (false) from a key that is present with a nil
value (zero value, true). GetValue returns ErrKeyNotFound only for missing
keys. ComputeIfAbsent treats a present nil value like a missing one.

# Concurrency

Objects created with MutableOf must not be shared between goroutines. Objects
created with ConcurrentMutableOf allow concurrent point operations, but
ComputeIfAbsent is a non-atomic get, compute and put, and structural
operations may observe a torn snapshot while other goroutines write.
*/
package object
