package mapstore

import (
	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/store"
)

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// Options configures the stores of this package
type Options struct {
	Factory       MapFactory // Creates backing maps (nil = plain Go map)
	AtomicCompute bool       // Use the atomic compute of AtomicMap backings for ComputeIfAbsent
}

// DefaultOptions returns the default options: plain Go maps and the
// (non-atomic) default ComputeIfAbsent.
func DefaultOptions() *Options {
	return &Options{
		Factory:       NewPlainMap,
		AtomicCompute: false,
	}
}

// ConcurrentOptions returns options for stores backed by concurrent xsync maps.
func ConcurrentOptions() *Options {
	return &Options{
		Factory:       NewConcurrentMap,
		AtomicCompute: false,
	}
}

// orDefault returns a copy of the options with all unset fields defaulted.
func (o *Options) orDefault() Options {
	if o == nil {
		return *DefaultOptions()
	}
	c := *o
	if c.Factory == nil {
		c.Factory = NewPlainMap
	}
	return c
}

// --------------------------------------------------------------------------
// Immutable Map Store
// --------------------------------------------------------------------------

// storeImpl implements store.Store. Its backing map is private and never
// modified after construction.
type storeImpl struct {
	data Map
	opts Options
}

// New creates an immutable store holding a private copy of entries. The caller
// may freely modify entries afterward without affecting the store.
//
// Every structural operation copies the whole backing map, applies the change
// and wraps the copy in a new store, which costs O(n) in the size of the store.
func New(entries map[key.ID]any, opts *Options) store.Store {
	o := opts.orDefault()
	data := o.Factory()
	for id, v := range entries {
		data.Store(id, v)
	}
	return &storeImpl{data: data, opts: o}
}

// NewFactory returns a store.Factory creating empty immutable stores with the given options.
func NewFactory(opts *Options) store.Factory {
	return func() store.Store {
		return New(nil, opts)
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Keys() key.Set { return keysOf(s.data) }

func (s *storeImpl) Len() int { return s.data.Size() }

func (s *storeImpl) Get(id key.ID) (any, bool) { return s.data.Load(id) }

func (s *storeImpl) Has(id key.ID) bool {
	_, ok := s.data.Load(id)
	return ok
}

func (s *storeImpl) WithAll(entries []key.Entry) store.Store {
	return &storeImpl{data: withAll(s.data, entries), opts: s.opts}
}

func (s *storeImpl) WithoutAll(ids key.Set) store.Store {
	return &storeImpl{data: withoutAll(s.data, ids), opts: s.opts}
}
