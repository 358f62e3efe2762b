// Package testing provides standardised tests and benchmarks for
// store implementations that satisfy the store.Store and store.MutableStore interfaces.
//
// The package contains:
//   - testing: A conformance suite validating the contracts (copy-on-write structural
//     operations, missing-key omission in GetAll, nil values, compute-if-absent policy)
//   - benchmark: Performance tests for the common store operations
//
// Optional behavior (thread-safety, atomic compute-if-absent) is declared through
// Feature flags; tests for undeclared features are skipped.
//
// Example usage:
//
//	// Running the standard test suites
//	testing.RunStoreTests(t, "MyStore", func() store.Store {
//		return NewMyStore()
//	})
//	testing.RunMutableStoreTests(t, "MyMutableStore", func() store.MutableStore {
//		return NewMyMutableStore()
//	}, testing.FeatureConcurrent)
//
//	// Running performance benchmarks
//	testing.RunStoreBenchmarks(b, "MyStore", factory)
package testing
