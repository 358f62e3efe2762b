package mapstore

import (
	"testing"

	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/store"
	storetesting "github.com/ValentinKolb/dObj/lib/store/testing"
)

func atomicOptions() *Options {
	opts := ConcurrentOptions()
	opts.AtomicCompute = true
	return opts
}

func Test(t *testing.T) {
	storetesting.RunStoreTests(t, "MapStore(plain)", NewFactory(nil))
	storetesting.RunStoreTests(t, "MapStore(concurrent)", NewFactory(ConcurrentOptions()))

	storetesting.RunMutableStoreTests(t, "MutableMapStore(plain)",
		NewMutableFactory(nil), 0)
	storetesting.RunMutableStoreTests(t, "MutableMapStore(concurrent)",
		NewMutableFactory(ConcurrentOptions()), storetesting.FeatureConcurrent)
	storetesting.RunMutableStoreTests(t, "MutableMapStore(concurrent,atomic)",
		NewMutableFactory(atomicOptions()), storetesting.FeatureConcurrent|storetesting.FeatureAtomicCompute)
}

func Benchmark(b *testing.B) {
	storetesting.RunStoreBenchmarks(b, "MapStore(plain)", NewFactory(nil))
	storetesting.RunMutableStoreBenchmarks(b, "MutableMapStore(plain)",
		NewMutableFactory(nil), 0)
	storetesting.RunMutableStoreBenchmarks(b, "MutableMapStore(concurrent)",
		NewMutableFactory(ConcurrentOptions()), storetesting.FeatureConcurrent)
	storetesting.RunMutableStoreBenchmarks(b, "MutableMapStore(concurrent,atomic)",
		NewMutableFactory(atomicOptions()), storetesting.FeatureConcurrent|storetesting.FeatureAtomicCompute)
}

func TestNewCopiesInput(t *testing.T) {
	name := key.New[string]("name")
	age := key.New[int]("age")

	input := map[key.ID]any{name.ID(): "Alice"}
	s := New(input, nil)

	input[age.ID()] = 30
	delete(input, name.ID())

	if s.Has(age.ID()) {
		t.Errorf("Adding to the input map must not change the store")
	}
	if v, ok := s.Get(name.ID()); !ok || v != "Alice" {
		t.Errorf("Deleting from the input map must not change the store, got (%v, %v)", v, ok)
	}
}

func TestNewMutableWrapsMap(t *testing.T) {
	name := key.New[string]("name")

	for _, tt := range []struct {
		name    string
		factory MapFactory
	}{
		{"plain", NewPlainMap},
		{"concurrent", NewConcurrentMap},
	} {
		t.Run(tt.name, func(t *testing.T) {
			backing := tt.factory()
			m := NewMutable(backing, nil)

			m.Put(name.ID(), "Bob")
			if v, ok := backing.Load(name.ID()); !ok || v != "Bob" {
				t.Errorf("Put should write through to the wrapped map, got (%v, %v)", v, ok)
			}

			// structural operations must not touch the wrapped map
			m2 := m.WithoutAll(key.NewSet(name))
			if _, ok := backing.Load(name.ID()); !ok {
				t.Errorf("WithoutAll must not modify the wrapped map")
			}
			if m2.Has(name.ID()) {
				t.Errorf("WithoutAll result should not contain the key")
			}

			m.Remove(name.ID())
			if backing.Size() != 0 {
				t.Errorf("Remove should write through to the wrapped map")
			}
		})
	}
}

func TestNewMutableDefaults(t *testing.T) {
	m := NewMutable(nil, nil)
	if _, ok := m.(*mutableImpl); !ok {
		t.Errorf("Expected a plain mutable store by default, got %T", m)
	}
	if _, ok := m.(store.Computer); ok {
		t.Errorf("The default store must use the non-atomic compute-if-absent")
	}

	// atomic compute is only available on maps that support it
	plain := NewMutable(NewPlainMap(), &Options{AtomicCompute: true})
	if _, ok := plain.(store.Computer); ok {
		t.Errorf("Plain maps cannot provide an atomic compute")
	}

	atomicStore := NewMutable(nil, atomicOptions())
	if _, ok := atomicStore.(store.Computer); !ok {
		t.Fatalf("Expected atomic compute for concurrent maps with AtomicCompute")
	}

	// copies keep the configuration
	if _, ok := atomicStore.WithAll(nil).(store.Computer); !ok {
		t.Errorf("Structural copies should keep the atomic compute")
	}
}

func TestEmptyKeepsKind(t *testing.T) {
	if _, ok := NewPlainMap().Empty().(plainMap); !ok {
		t.Errorf("Empty of a plain map should be a plain map")
	}
	if _, ok := NewConcurrentMap().Empty().(*concurrentMap); !ok {
		t.Errorf("Empty of a concurrent map should be a concurrent map")
	}

	id := key.New[int]("n").ID()
	c := NewConcurrentMap()
	c.Store(id, 1)
	cp := clone(c)
	cp.Store(id, 2)
	if v, _ := c.Load(id); v != 1 {
		t.Errorf("clone must not share entries with the original, got %v", v)
	}
}

func TestRangeStops(t *testing.T) {
	for _, m := range []Map{NewPlainMap(), NewConcurrentMap()} {
		for i := 0; i < 10; i++ {
			m.Store(key.New[int]("").ID(), i)
		}

		visited := 0
		m.Range(func(key.ID, any) bool {
			visited++
			return visited < 3
		})
		if visited != 3 {
			t.Errorf("%T: Range should stop when f returns false, visited %d", m, visited)
		}
	}
}
