package metered

import (
	"fmt"

	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/store"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("store")

// Operation names used as the "op" label of the counters
const (
	OpKeys    = "keys"
	OpGet     = "get"
	OpHas     = "has"
	OpWith    = "with"
	OpWithout = "without"
	OpPut     = "put"
	OpRemove  = "remove"
	OpCompute = "compute"
)

var allOps = []string{OpKeys, OpGet, OpHas, OpWith, OpWithout, OpPut, OpRemove, OpCompute}

// --------------------------------------------------------------------------
// Metrics
// --------------------------------------------------------------------------

// Metrics holds the operation counters of one named store. All stores derived
// from a wrapped store (through WithAll / WithoutAll) report to the same counters.
type Metrics struct {
	name     string
	set      *metrics.Set
	counters map[string]*metrics.Counter
}

// NewMetrics registers the counters for a store called name in set.
// The counters are named dobj_store_ops_total{store="<name>",op="<op>"}.
// If set is nil, a new set is created.
func NewMetrics(set *metrics.Set, name string) *Metrics {
	if set == nil {
		set = metrics.NewSet()
	}

	m := &Metrics{
		name:     name,
		set:      set,
		counters: make(map[string]*metrics.Counter, len(allOps)),
	}
	for _, op := range allOps {
		m.counters[op] = set.GetOrCreateCounter(fmt.Sprintf(`dobj_store_ops_total{store=%q,op=%q}`, name, op))
	}
	return m
}

// Count returns the number of operations of the given kind.
func (m *Metrics) Count(op string) uint64 {
	c, ok := m.counters[op]
	if !ok {
		return 0
	}
	return c.Get()
}

// Set returns the metrics set the counters are registered in.
func (m *Metrics) Set() *metrics.Set { return m.set }

func (m *Metrics) inc(op string) {
	m.counters[op].Inc()
}

// --------------------------------------------------------------------------
// Metered Store
// --------------------------------------------------------------------------

type storeImpl struct {
	inner   store.Store
	metrics *Metrics
}

// Wrap returns a store that counts all operations on s in m.
func Wrap(s store.Store, m *Metrics) store.Store {
	return &storeImpl{inner: s, metrics: m}
}

func (s *storeImpl) Keys() key.Set {
	s.metrics.inc(OpKeys)
	return s.inner.Keys()
}

func (s *storeImpl) Len() int { return s.inner.Len() }

func (s *storeImpl) Get(id key.ID) (any, bool) {
	s.metrics.inc(OpGet)
	return s.inner.Get(id)
}

func (s *storeImpl) Has(id key.ID) bool {
	s.metrics.inc(OpHas)
	return s.inner.Has(id)
}

func (s *storeImpl) WithAll(entries []key.Entry) store.Store {
	s.metrics.inc(OpWith)
	Logger.Debugf("%s: copy of %d entries with %d new entries", s.metrics.name, s.inner.Len(), len(entries))
	return &storeImpl{inner: s.inner.WithAll(entries), metrics: s.metrics}
}

func (s *storeImpl) WithoutAll(ids key.Set) store.Store {
	s.metrics.inc(OpWithout)
	Logger.Debugf("%s: copy of %d entries without %d keys", s.metrics.name, s.inner.Len(), ids.Len())
	return &storeImpl{inner: s.inner.WithoutAll(ids), metrics: s.metrics}
}

// --------------------------------------------------------------------------
// Metered Mutable Store
// --------------------------------------------------------------------------

type mutableImpl struct {
	inner   store.MutableStore
	metrics *Metrics
}

// WrapMutable returns a mutable store that counts all operations on s in m.
// ComputeIfAbsent is forwarded to store.ComputeIfAbsent on s, so an atomic
// implementation of s stays atomic.
func WrapMutable(s store.MutableStore, m *Metrics) store.MutableStore {
	return &mutableImpl{inner: s, metrics: m}
}

func (s *mutableImpl) Keys() key.Set {
	s.metrics.inc(OpKeys)
	return s.inner.Keys()
}

func (s *mutableImpl) Len() int { return s.inner.Len() }

func (s *mutableImpl) Get(id key.ID) (any, bool) {
	s.metrics.inc(OpGet)
	return s.inner.Get(id)
}

func (s *mutableImpl) Has(id key.ID) bool {
	s.metrics.inc(OpHas)
	return s.inner.Has(id)
}

func (s *mutableImpl) Put(id key.ID, value any) {
	s.metrics.inc(OpPut)
	s.inner.Put(id, value)
}

func (s *mutableImpl) Remove(id key.ID) {
	s.metrics.inc(OpRemove)
	s.inner.Remove(id)
}

func (s *mutableImpl) WithAll(entries []key.Entry) store.MutableStore {
	s.metrics.inc(OpWith)
	Logger.Debugf("%s: copy of %d entries with %d new entries", s.metrics.name, s.inner.Len(), len(entries))
	return &mutableImpl{inner: s.inner.WithAll(entries), metrics: s.metrics}
}

func (s *mutableImpl) WithoutAll(ids key.Set) store.MutableStore {
	s.metrics.inc(OpWithout)
	Logger.Debugf("%s: copy of %d entries without %d keys", s.metrics.name, s.inner.Len(), ids.Len())
	return &mutableImpl{inner: s.inner.WithoutAll(ids), metrics: s.metrics}
}

// ComputeIfAbsent implements store.Computer.
func (s *mutableImpl) ComputeIfAbsent(id key.ID, compute func() (any, bool)) (any, bool) {
	s.metrics.inc(OpCompute)
	return store.ComputeIfAbsent(s.inner, id, compute)
}
