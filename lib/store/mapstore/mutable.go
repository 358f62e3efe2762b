package mapstore

import (
	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/store"
)

// mutableImpl implements store.MutableStore on top of a caller-supplied Map.
type mutableImpl struct {
	data Map
	opts Options
}

// atomicImpl is a mutableImpl whose ComputeIfAbsent uses the atomic compute
// of its backing map. It is only created for AtomicMap backings.
type atomicImpl struct {
	*mutableImpl
	data AtomicMap
}

// NewMutable creates a mutable store that wraps m directly: Put and Remove
// modify m in place. Structural operations copy m into a new map of the same
// kind and never modify it.
//
// If m is nil, a new map is created with opts.Factory. If opts.AtomicCompute
// is set and the map implements AtomicMap, ComputeIfAbsent is atomic per key;
// otherwise the non-atomic default of store.ComputeIfAbsent applies.
func NewMutable(m Map, opts *Options) store.MutableStore {
	o := opts.orDefault()
	if m == nil {
		m = o.Factory()
	}
	return wrapMutable(m, o)
}

// NewMutableFactory returns a store.MutableFactory creating empty mutable stores with the given options.
func NewMutableFactory(opts *Options) store.MutableFactory {
	o := opts.orDefault()
	return func() store.MutableStore {
		return wrapMutable(o.Factory(), o)
	}
}

func wrapMutable(m Map, opts Options) store.MutableStore {
	impl := &mutableImpl{data: m, opts: opts}
	if am, ok := m.(AtomicMap); ok && opts.AtomicCompute {
		return &atomicImpl{mutableImpl: impl, data: am}
	}
	return impl
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *mutableImpl) Keys() key.Set { return keysOf(s.data) }

func (s *mutableImpl) Len() int { return s.data.Size() }

func (s *mutableImpl) Get(id key.ID) (any, bool) { return s.data.Load(id) }

func (s *mutableImpl) Has(id key.ID) bool {
	_, ok := s.data.Load(id)
	return ok
}

func (s *mutableImpl) Put(id key.ID, value any) { s.data.Store(id, value) }

func (s *mutableImpl) Remove(id key.ID) { s.data.Delete(id) }

func (s *mutableImpl) WithAll(entries []key.Entry) store.MutableStore {
	return wrapMutable(withAll(s.data, entries), s.opts)
}

func (s *mutableImpl) WithoutAll(ids key.Set) store.MutableStore {
	return wrapMutable(withoutAll(s.data, ids), s.opts)
}

// ComputeIfAbsent implements store.Computer with the same policy as
// store.ComputeIfAbsent, but as one atomic step of the backing map.
func (s *atomicImpl) ComputeIfAbsent(id key.ID, compute func() (any, bool)) (any, bool) {
	var (
		result   any
		computed bool
		stored   bool
	)

	actual, _ := s.data.Compute(id, func(old any, loaded bool) (any, bool) {
		// case present and not nil -> keep
		if loaded && !store.IsNil(old) {
			return old, false
		}

		v, ok := compute()
		computed = true
		result = v

		// case compute declined -> keep the old state
		if !ok || store.IsNil(v) {
			if loaded {
				return old, false
			}
			return nil, true // set delete to true because else the value will be created
		}

		stored = true
		return v, false
	})

	if !computed {
		return actual, true
	}
	return result, stored
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// keysOf collects the keys of m into a new set.
func keysOf(m Map) key.Set {
	keys := make(key.Set, m.Size())
	m.Range(func(id key.ID, _ any) bool {
		keys[id] = struct{}{}
		return true
	})
	return keys
}

// withAll returns a copy of m with all entries put in order.
func withAll(m Map, entries []key.Entry) Map {
	c := clone(m)
	for _, e := range entries {
		c.Store(e.ID, e.Value)
	}
	return c
}

// withoutAll returns a copy of m without the keys in ids.
func withoutAll(m Map, ids key.Set) Map {
	c := clone(m)
	for id := range ids {
		c.Delete(id)
	}
	return c
}
