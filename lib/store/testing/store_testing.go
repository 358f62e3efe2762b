package testing

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/store"
)

// Feature describes capabilities of a store implementation as bit flags.
// Tests for features an implementation does not declare are skipped.
type Feature uint64

const (
	FeatureConcurrent    Feature = 1 << iota // Point operations are safe for concurrent use
	FeatureAtomicCompute                     // ComputeIfAbsent is atomic per key
)

// RunStoreTests runs the conformance suite for an immutable store implementation.
func RunStoreTests(t *testing.T, name string, factory store.Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Empty", func(t *testing.T) {
			testEmpty(t, factory())
		})

		t.Run("WithAll&Get", func(t *testing.T) {
			testWithAllGet(t, factory())
		})

		t.Run("WithoutAll", func(t *testing.T) {
			testWithoutAll(t, factory())
		})

		t.Run("NilValue", func(t *testing.T) {
			testNilValue(t, factory())
		})

		t.Run("GetAll", func(t *testing.T) {
			testGetAll(t, factory())
		})

		t.Run("Independence", func(t *testing.T) {
			testIndependence(t, factory())
		})
	})
}

// RunMutableStoreTests runs the conformance suite for a mutable store implementation.
// The features declare which optional behavior the implementation guarantees.
func RunMutableStoreTests(t *testing.T, name string, factory store.MutableFactory, features Feature) {
	t.Run(name, func(t *testing.T) {
		t.Run("Put&Get", func(t *testing.T) {
			testPutGet(t, factory())
		})

		t.Run("Remove", func(t *testing.T) {
			testRemove(t, factory())
		})

		t.Run("PutAll&RemoveAll", func(t *testing.T) {
			testPutAllRemoveAll(t, factory())
		})

		t.Run("StructuralCopies", func(t *testing.T) {
			testStructuralCopies(t, factory())
		})

		t.Run("ComputeIfAbsent", func(t *testing.T) {
			testComputeIfAbsent(t, factory())
		})

		t.Run("ConcurrentPuts", func(t *testing.T) {
			requireFeature(t, features, FeatureConcurrent)
			testConcurrentPuts(t, factory())
		})

		t.Run("AtomicCompute", func(t *testing.T) {
			requireFeature(t, features, FeatureConcurrent|FeatureAtomicCompute)
			testAtomicCompute(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// Skip the test if not all given features are declared
func requireFeature(t testing.TB, features Feature, feature Feature) {
	if features&feature != feature {
		t.Skip()
	}
}

// newIDs creates n fresh key identities
func newIDs(n int) []key.ID {
	ids := make([]key.ID, n)
	for i := range ids {
		ids[i] = key.New[int](fmt.Sprintf("key-%d", i)).ID()
	}
	return ids
}

// identifiers converts ids to a slice of key.Identifier for variadic calls.
func identifiers(ids []key.ID) []key.Identifier {
	out := make([]key.Identifier, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

// requireValue fails the test if id is not present in r with the expected value
func requireValue(t testing.TB, r store.Reader, id key.ID, expected any) {
	t.Helper()
	v, ok := r.Get(id)
	if !ok {
		t.Fatalf("Expected key %s to exist", id)
	}
	if v != expected {
		t.Fatalf("Expected value %v for key %s, got %v", expected, id, v)
	}
}

// requireAbsent fails the test if id is present in r
func requireAbsent(t testing.TB, r store.Reader, id key.ID) {
	t.Helper()
	if _, ok := r.Get(id); ok {
		t.Fatalf("Expected key %s to be absent (get)", id)
	}
	if r.Has(id) {
		t.Fatalf("Expected key %s to be absent (has)", id)
	}
}

// --------------------------------------------------------------------------
// Store tests
// --------------------------------------------------------------------------

func testEmpty(t *testing.T, s store.Store) {
	if s.Len() != 0 || s.Keys().Len() != 0 {
		t.Errorf("Expected a new store to be empty, got %d keys", s.Len())
	}

	ids := newIDs(1)
	requireAbsent(t, s, ids[0])

	if got := store.GetAll(s, key.NewSet(ids[0])); len(got) != 0 {
		t.Errorf("GetAll on empty store should return nothing, got %v", got)
	}
}

func testWithAllGet(t *testing.T, s store.Store) {
	ids := newIDs(3)

	s1 := s.WithAll([]key.Entry{{ID: ids[0], Value: 1}, {ID: ids[1], Value: 2}})
	requireValue(t, s1, ids[0], 1)
	requireValue(t, s1, ids[1], 2)
	requireAbsent(t, s1, ids[2])

	// the receiver is never modified
	requireAbsent(t, s, ids[0])

	// later entries win
	s2 := s1.WithAll([]key.Entry{{ID: ids[0], Value: 10}, {ID: ids[0], Value: 11}})
	requireValue(t, s2, ids[0], 11)
	requireValue(t, s1, ids[0], 1)

	s3 := store.With(s2, key.Entry{ID: ids[2], Value: 3})
	requireValue(t, s3, ids[2], 3)
	requireAbsent(t, s2, ids[2])

	if !s3.Keys().Equal(key.NewSet(ids[0], ids[1], ids[2])) {
		t.Errorf("Unexpected keys %s", s3.Keys())
	}
	if s3.Len() != 3 {
		t.Errorf("Expected 3 keys, got %d", s3.Len())
	}

	// empty batch is a no-op
	s4 := s3.WithAll(nil)
	if !s4.Keys().Equal(s3.Keys()) {
		t.Errorf("WithAll(nil) should not change the keys")
	}
}

func testWithoutAll(t *testing.T, s store.Store) {
	ids := newIDs(3)

	s1 := s.WithAll([]key.Entry{{ID: ids[0], Value: 1}, {ID: ids[1], Value: 2}})

	s2 := s1.WithoutAll(key.NewSet(ids[0], ids[2]))
	requireAbsent(t, s2, ids[0])
	requireValue(t, s2, ids[1], 2)
	requireValue(t, s1, ids[0], 1)

	// removing is idempotent
	s3 := store.Without(store.Without(s1, ids[1]), ids[1])
	s4 := store.Without(s1, ids[1])
	if !s3.Keys().Equal(s4.Keys()) {
		t.Errorf("Without should be idempotent, got %s and %s", s3.Keys(), s4.Keys())
	}
	requireValue(t, s3, ids[0], 1)

	// removing absent keys is not an error
	s5 := s.WithoutAll(key.NewSet(identifiers(ids)...))
	if s5.Len() != 0 {
		t.Errorf("Expected empty store, got %d keys", s5.Len())
	}
}

func testNilValue(t *testing.T, s store.Store) {
	ids := newIDs(1)

	s1 := s.WithAll([]key.Entry{{ID: ids[0], Value: nil}})

	if !s1.Has(ids[0]) {
		t.Fatalf("Key with nil value should exist")
	}
	v, ok := s1.Get(ids[0])
	if !ok || v != nil {
		t.Errorf("Expected (nil, true), got (%v, %v)", v, ok)
	}

	all := store.GetAll(s1, key.NewSet(ids[0]))
	if v, ok := all[ids[0]]; !ok || v != nil {
		t.Errorf("GetAll should include present keys with nil values, got %v", all)
	}
}

func testGetAll(t *testing.T, s store.Store) {
	ids := newIDs(4)

	s1 := s.WithAll([]key.Entry{{ID: ids[0], Value: "a"}, {ID: ids[1], Value: "b"}})

	all := store.GetAll(s1, key.NewSet(ids[0], ids[2], ids[3]))
	if len(all) != 1 {
		t.Fatalf("GetAll should only return present keys, got %v", all)
	}
	if all[ids[0]] != "a" {
		t.Errorf("Expected value a, got %v", all[ids[0]])
	}
	if _, ok := all[ids[2]]; ok {
		t.Errorf("Absent keys must not appear in GetAll results")
	}

	existing := store.ExistingKeys(s1, key.NewSet(identifiers(ids)...))
	if !existing.Equal(key.NewSet(ids[0], ids[1])) {
		t.Errorf("Unexpected existing keys %s", existing)
	}

	if got := store.GetAll(s1, nil); len(got) != 0 {
		t.Errorf("GetAll(nil) should return nothing, got %v", got)
	}
}

func testIndependence(t *testing.T, s store.Store) {
	ids := newIDs(100)

	entries := make([]key.Entry, len(ids))
	for i, id := range ids {
		entries[i] = key.Entry{ID: id, Value: i}
	}

	s1 := s.WithAll(entries)
	s2 := s1.WithoutAll(key.NewSet(identifiers(ids[:50])...))
	s3 := s1.WithAll([]key.Entry{{ID: ids[99], Value: -1}})

	if s1.Len() != 100 || s2.Len() != 50 || s3.Len() != 100 {
		t.Fatalf("Unexpected sizes %d, %d, %d", s1.Len(), s2.Len(), s3.Len())
	}
	requireValue(t, s1, ids[99], 99)
	requireValue(t, s2, ids[99], 99)
	requireValue(t, s3, ids[99], -1)

	// keys returned by a store are owned by the caller
	keys := s1.Keys()
	delete(keys, ids[0])
	if !s1.Has(ids[0]) {
		t.Errorf("Modifying the key set must not modify the store")
	}
}

// --------------------------------------------------------------------------
// MutableStore tests
// --------------------------------------------------------------------------

func testPutGet(t *testing.T, m store.MutableStore) {
	ids := newIDs(2)

	m.Put(ids[0], "v1")
	requireValue(t, m, ids[0], "v1")

	m.Put(ids[0], "v2")
	requireValue(t, m, ids[0], "v2")

	// redundant puts are no-ops
	m.Put(ids[0], "v2")
	requireValue(t, m, ids[0], "v2")
	if m.Len() != 1 {
		t.Errorf("Expected 1 key, got %d", m.Len())
	}

	m.Put(ids[1], nil)
	if v, ok := m.Get(ids[1]); !ok || v != nil {
		t.Errorf("Expected (nil, true) for nil value, got (%v, %v)", v, ok)
	}
	requireAbsent(t, m, newIDs(1)[0])
}

func testRemove(t *testing.T, m store.MutableStore) {
	ids := newIDs(2)

	m.Put(ids[0], 1)
	m.Remove(ids[0])
	requireAbsent(t, m, ids[0])

	// removing an absent key is a no-op
	m.Remove(ids[0])
	m.Remove(ids[1])
	if m.Len() != 0 {
		t.Errorf("Expected empty store, got %d keys", m.Len())
	}
}

func testPutAllRemoveAll(t *testing.T, m store.MutableStore) {
	ids := newIDs(3)

	store.PutAll(m, []key.Entry{{ID: ids[0], Value: 1}, {ID: ids[1], Value: 2}, {ID: ids[0], Value: 3}})
	requireValue(t, m, ids[0], 3)
	requireValue(t, m, ids[1], 2)

	store.RemoveAll(m, key.NewSet(ids[0], ids[2]))
	requireAbsent(t, m, ids[0])
	requireValue(t, m, ids[1], 2)

	store.PutAll(m, nil)
	store.RemoveAll(m, nil)
	if m.Len() != 1 {
		t.Errorf("Empty batches should be no-ops, got %d keys", m.Len())
	}
}

func testStructuralCopies(t *testing.T, m store.MutableStore) {
	ids := newIDs(3)

	m.Put(ids[0], 1)

	m2 := m.WithAll([]key.Entry{{ID: ids[1], Value: 2}})
	requireAbsent(t, m, ids[1])
	requireValue(t, m2, ids[0], 1)
	requireValue(t, m2, ids[1], 2)

	m3 := store.Without(m, ids[0])
	requireValue(t, m, ids[0], 1)
	requireAbsent(t, m3, ids[0])

	// mutations of the original are not visible in the copies and vice versa
	m.Put(ids[2], 3)
	requireAbsent(t, m2, ids[2])
	requireAbsent(t, m3, ids[2])

	m2.Put(ids[0], 10)
	requireValue(t, m, ids[0], 1)

	m3.Put(ids[1], 20)
	requireAbsent(t, m, ids[1])
	requireValue(t, m2, ids[1], 2)
}

func testComputeIfAbsent(t *testing.T, m store.MutableStore) {
	ids := newIDs(3)

	calls := 0
	compute := func(v any, ok bool) func() (any, bool) {
		return func() (any, bool) {
			calls++
			return v, ok
		}
	}

	// absent -> compute and store
	v, ok := store.ComputeIfAbsent(m, ids[0], compute(1, true))
	if !ok || v != 1 || calls != 1 {
		t.Fatalf("Expected (1, true) after 1 call, got (%v, %v) after %d calls", v, ok, calls)
	}
	requireValue(t, m, ids[0], 1)

	// present -> keep, compute is not called
	v, ok = store.ComputeIfAbsent(m, ids[0], compute(2, true))
	if !ok || v != 1 || calls != 1 {
		t.Fatalf("Expected existing value 1 without a call, got (%v, %v) after %d calls", v, ok, calls)
	}

	// compute declines -> nothing is stored
	_, ok = store.ComputeIfAbsent(m, ids[1], compute(5, false))
	if ok {
		t.Errorf("Declined compute should report no value")
	}
	requireAbsent(t, m, ids[1])

	// compute returns nil -> nothing is stored
	v, ok = store.ComputeIfAbsent(m, ids[1], compute(nil, true))
	if ok || v != nil {
		t.Errorf("Expected (nil, false) for nil compute result, got (%v, %v)", v, ok)
	}
	requireAbsent(t, m, ids[1])

	// present nil value counts as absent
	m.Put(ids[2], nil)
	v, ok = store.ComputeIfAbsent(m, ids[2], compute(7, true))
	if !ok || v != 7 {
		t.Errorf("Expected nil value to be replaced by 7, got (%v, %v)", v, ok)
	}
	requireValue(t, m, ids[2], 7)

	// declined compute on a present nil value keeps the key
	m.Put(ids[2], nil)
	store.ComputeIfAbsent(m, ids[2], compute(nil, false))
	if !m.Has(ids[2]) {
		t.Errorf("Declined compute must not remove an existing key")
	}
}

func testConcurrentPuts(t *testing.T, m store.MutableStore) {
	numWorkers := 8
	keysPerWorker := 500
	ids := newIDs(numWorkers * keysPerWorker)

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for w := 0; w < numWorkers; w++ {
		go func(workerId int) {
			defer wg.Done()
			for i := workerId * keysPerWorker; i < (workerId+1)*keysPerWorker; i++ {
				m.Put(ids[i], i)
				if _, ok := m.Get(ids[i]); !ok {
					t.Errorf("Key %s missing directly after put", ids[i])
				}
				if i%2 == 0 {
					m.Remove(ids[i])
				}
			}
		}(w)
	}

	wg.Wait()

	if m.Len() != len(ids)/2 {
		t.Errorf("Expected %d keys, got %d", len(ids)/2, m.Len())
	}
	for i, id := range ids {
		if i%2 == 1 {
			requireValue(t, m, id, i)
		}
	}
}

func testAtomicCompute(t *testing.T, m store.MutableStore) {
	numWorkers := 16
	rounds := 100
	ids := newIDs(rounds)

	var calls atomic.Int64

	for _, id := range ids {
		var wg sync.WaitGroup
		wg.Add(numWorkers)

		results := make([]any, numWorkers)
		start := make(chan struct{})

		for w := 0; w < numWorkers; w++ {
			go func(workerId int) {
				defer wg.Done()
				<-start
				results[workerId], _ = store.ComputeIfAbsent(m, id, func() (any, bool) {
					calls.Add(1)
					return workerId, true
				})
			}(w)
		}

		close(start)
		wg.Wait()

		stored, _ := m.Get(id)
		for w, r := range results {
			if r != stored {
				t.Fatalf("Worker %d got %v, but %v is stored", w, r, stored)
			}
		}
	}

	if calls.Load() != int64(rounds) {
		t.Errorf("Expected exactly one compute per key (%d), got %d", rounds, calls.Load())
	}
}
