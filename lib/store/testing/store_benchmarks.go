package testing

import (
	"testing"

	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/store"
)

// number of keys the benchmark stores are pre-filled with
const benchKeySpread = 100

// RunStoreBenchmarks runs all benchmarks for an immutable store implementation
func RunStoreBenchmarks(b *testing.B, name string, factory store.Factory) {
	b.Run(name, func(b *testing.B) {
		b.Run("With", func(b *testing.B) {
			benchmarkWith(b, factory())
		})

		b.Run("Without", func(b *testing.B) {
			benchmarkWithout(b, factory())
		})

		b.Run("Get", func(b *testing.B) {
			benchmarkGet(b, prefill(factory()))
		})

		b.Run("GetAll", func(b *testing.B) {
			benchmarkGetAll(b, prefill(factory()))
		})
	})
}

// RunMutableStoreBenchmarks runs all benchmarks for a mutable store implementation.
// Parallel benchmarks are only run if FeatureConcurrent is declared.
func RunMutableStoreBenchmarks(b *testing.B, name string, factory store.MutableFactory, features Feature) {
	b.Run(name, func(b *testing.B) {
		b.Run("Put", func(b *testing.B) {
			benchmarkPut(b, factory(), features)
		})

		b.Run("Get", func(b *testing.B) {
			benchmarkGet(b, prefillMutable(factory()))
		})

		b.Run("ComputeIfAbsent", func(b *testing.B) {
			benchmarkComputeIfAbsent(b, factory(), features)
		})

		b.Run("WithCopy", func(b *testing.B) {
			benchmarkWithCopy(b, prefillMutable(factory()))
		})
	})
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func prefill(s store.Store) store.Store {
	entries := make([]key.Entry, 0, benchKeySpread)
	for i, id := range newIDs(benchKeySpread) {
		entries = append(entries, key.Entry{ID: id, Value: i})
	}
	return s.WithAll(entries)
}

func prefillMutable(m store.MutableStore) store.MutableStore {
	for i, id := range newIDs(benchKeySpread) {
		m.Put(id, i)
	}
	return m
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

// Benchmark for adding a field to a store of growing size
func benchmarkWith(b *testing.B, s store.Store) {
	ids := newIDs(benchKeySpread)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// reset to avoid quadratic growth
		if i%benchKeySpread == 0 {
			s = s.WithoutAll(s.Keys())
		}
		s = store.With(s, key.Entry{ID: ids[i%benchKeySpread], Value: i})
	}
}

// Benchmark for removing a field from a filled store
func benchmarkWithout(b *testing.B, s store.Store) {
	s = prefill(s)
	ids := s.Keys().Slice()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Without(s, ids[i%len(ids)])
	}
}

// Benchmark for reading single values (parallel reads are safe on every store)
func benchmarkGet(b *testing.B, r store.Reader) {
	ids := r.Keys().Slice()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			_, _ = r.Get(ids[counter%len(ids)])
			counter++
		}
	})
}

// Benchmark for batch reads with half of the requested keys missing
func benchmarkGetAll(b *testing.B, s store.Store) {
	requested := s.Keys()
	for _, id := range newIDs(benchKeySpread) {
		requested.Add(id)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.GetAll(s, requested)
	}
}

// Benchmark for in-place puts
func benchmarkPut(b *testing.B, m store.MutableStore, features Feature) {
	ids := newIDs(benchKeySpread)

	b.ResetTimer()
	if features&FeatureConcurrent == 0 {
		for i := 0; i < b.N; i++ {
			m.Put(ids[i%benchKeySpread], i)
		}
		return
	}

	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			m.Put(ids[counter%benchKeySpread], counter)
			counter++
		}
	})
}

// Benchmark for compute-if-absent with a mix of hits and misses
func benchmarkComputeIfAbsent(b *testing.B, m store.MutableStore, features Feature) {
	ids := newIDs(benchKeySpread)
	compute := func() (any, bool) { return 1, true }

	op := func(i int) {
		id := ids[i%benchKeySpread]
		if i%4 == 0 {
			m.Remove(id)
		}
		store.ComputeIfAbsent(m, id, compute)
	}

	b.ResetTimer()
	if features&FeatureConcurrent == 0 {
		for i := 0; i < b.N; i++ {
			op(i)
		}
		return
	}

	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			op(counter)
			counter++
		}
	})
}

// Benchmark for structural copies of a mutable store
func benchmarkWithCopy(b *testing.B, m store.MutableStore) {
	id := newIDs(1)[0]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.With(m, key.Entry{ID: id, Value: i})
	}
}
