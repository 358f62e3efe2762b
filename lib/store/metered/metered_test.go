package metered

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/store"
	"github.com/ValentinKolb/dObj/lib/store/mapstore"
	storetesting "github.com/ValentinKolb/dObj/lib/store/testing"
	"github.com/VictoriaMetrics/metrics"
)

func Test(t *testing.T) {
	storetesting.RunStoreTests(t, "Metered(MapStore)", func() store.Store {
		return Wrap(mapstore.New(nil, nil), NewMetrics(nil, "test"))
	})

	storetesting.RunMutableStoreTests(t, "Metered(MutableMapStore)", func() store.MutableStore {
		return WrapMutable(mapstore.NewMutable(nil, mapstore.ConcurrentOptions()), NewMetrics(nil, "test"))
	}, storetesting.FeatureConcurrent)

	opts := mapstore.ConcurrentOptions()
	opts.AtomicCompute = true
	storetesting.RunMutableStoreTests(t, "Metered(MutableMapStore,atomic)", func() store.MutableStore {
		return WrapMutable(mapstore.NewMutable(nil, opts), NewMetrics(nil, "test"))
	}, storetesting.FeatureConcurrent|storetesting.FeatureAtomicCompute)
}

func TestCounters(t *testing.T) {
	set := metrics.NewSet()
	m := NewMetrics(set, "session")
	s := WrapMutable(mapstore.NewMutable(nil, nil), m)

	id := key.New[string]("user").ID()

	s.Put(id, "alice")
	s.Put(id, "bob")
	s.Get(id)
	s.Has(id)
	s.Remove(id)
	store.ComputeIfAbsent(s, id, func() (any, bool) { return "carol", true })

	// derived stores report to the same counters
	s2 := store.With(s, key.Entry{ID: id, Value: "dave"})
	s2.Put(id, "eve")
	store.Without(s2, id)

	expected := map[string]uint64{
		OpPut:     3,
		OpGet:     1,
		OpHas:     1,
		OpRemove:  1,
		OpCompute: 1,
		OpWith:    1,
		OpWithout: 1,
		OpKeys:    0,
	}
	for op, want := range expected {
		if got := m.Count(op); got != want {
			t.Errorf("Expected %d %s operations, got %d", want, op, got)
		}
	}

	if m.Count("unknown") != 0 {
		t.Errorf("Unknown operations should count 0")
	}

	var buf bytes.Buffer
	set.WritePrometheus(&buf)
	if !strings.Contains(buf.String(), `dobj_store_ops_total{store="session",op="put"} 3`) {
		t.Errorf("Prometheus output does not contain the put counter:\n%s", buf.String())
	}
}

func TestWrapImmutable(t *testing.T) {
	m := NewMetrics(nil, "immutable")
	s := Wrap(mapstore.New(nil, nil), m)

	id := key.New[int]("n").ID()
	s2 := store.With(s, key.Entry{ID: id, Value: 1})
	s2.Keys()

	if s.Has(id) {
		t.Errorf("The wrapped store must stay unchanged")
	}
	if m.Count(OpWith) != 1 || m.Count(OpKeys) != 1 || m.Count(OpHas) != 1 {
		t.Errorf("Unexpected counts: with=%d keys=%d has=%d", m.Count(OpWith), m.Count(OpKeys), m.Count(OpHas))
	}
	if m.Set() == nil {
		t.Errorf("NewMetrics(nil, ...) should create a set")
	}
}
