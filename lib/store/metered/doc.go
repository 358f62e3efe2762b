// Package metered provides a decorator that counts the operations of any
// store.Store or store.MutableStore in a VictoriaMetrics metrics set.
//
// Counters are exposed as
//
//	dobj_store_ops_total{store="<name>",op="<op>"}
//
// with op one of keys, get, has, with, without, put, remove and compute.
// Stores derived from a metered store through WithAll / WithoutAll are metered
// as well and report to the same counters. Structural copies are logged at
// debug level through the "store" logger.
//
// Usage Example:
//
//	set := metrics.NewSet()
//	m := metered.NewMetrics(set, "session")
//	s := metered.WrapMutable(mapstore.NewMutable(nil, nil), m)
//	obj := object.MutableOfStore(s)
//	...
//	set.WritePrometheus(os.Stdout)
package metered
