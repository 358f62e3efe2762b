package mapstore

import (
	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/util"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Backing Map Interface
// --------------------------------------------------------------------------

// Map is the map primitive the stores of this package are built on.
// The thread-safety of a store is exactly the thread-safety of its Map.
type Map interface {
	// Load returns the value for a key and whether the key is present.
	Load(id key.ID) (value any, loaded bool)
	// Store sets the value for a key.
	Store(id key.ID, value any)
	// Delete removes a key. Deleting an absent key is a no-op.
	Delete(id key.ID)
	// Range calls f for every entry until f returns false.
	Range(f func(id key.ID, value any) bool)
	// Size returns the number of entries.
	Size() int
	// Empty returns a new, empty map of the same kind.
	Empty() Map
}

// AtomicMap is implemented by maps offering an atomic read-modify-write.
type AtomicMap interface {
	Map
	// Compute atomically computes the new value for a key. fn receives the
	// current value and whether it was loaded; it returns the new value and
	// whether the key should be deleted instead. Compute returns the value
	// that is stored afterward and whether the key is present.
	Compute(id key.ID, fn func(old any, loaded bool) (value any, delete bool)) (actual any, ok bool)
}

// MapFactory creates a new, empty backing map.
type MapFactory func() Map

// clone copies all entries of m into a new map of the same kind.
//
// If m is written to concurrently, the copy is not a consistent snapshot:
// entries put during the copy may or may not be included.
func clone(m Map) Map {
	c := m.Empty()
	m.Range(func(id key.ID, value any) bool {
		c.Store(id, value)
		return true
	})
	return c
}

// --------------------------------------------------------------------------
// Plain Map
// --------------------------------------------------------------------------

// plainMap is a Go map. It must not be used by multiple goroutines at once.
type plainMap map[key.ID]any

// NewPlainMap creates a backing map on top of a plain Go map.
// Stores using it are not safe for concurrent use.
func NewPlainMap() Map {
	return make(plainMap)
}

func (m plainMap) Load(id key.ID) (any, bool) {
	v, ok := m[id]
	return v, ok
}

func (m plainMap) Store(id key.ID, value any) { m[id] = value }

func (m plainMap) Delete(id key.ID) { delete(m, id) }

func (m plainMap) Range(f func(id key.ID, value any) bool) {
	for id, v := range m {
		if !f(id, v) {
			return
		}
	}
}

func (m plainMap) Size() int { return len(m) }

func (m plainMap) Empty() Map { return make(plainMap, len(m)) }

// --------------------------------------------------------------------------
// Concurrent Map
// --------------------------------------------------------------------------

// concurrentMap is backed by a xsync.MapOf. Point operations are safe for
// concurrent use and Compute is atomic per key.
type concurrentMap struct {
	data *xsync.MapOf[key.ID, any]
}

// NewConcurrentMap creates a backing map on top of a concurrent xsync map.
// Load, Store, Delete and Compute are safe for concurrent use.
func NewConcurrentMap() Map {
	return &concurrentMap{
		data: xsync.NewMapOfWithHasher[key.ID, any](hashID),
	}
}

// hashID hashes a key by its sequence number, which is unique per key.
func hashID(id key.ID, seed uint64) uint64 {
	return util.HashUint64(id.Seq(), seed)
}

func (m *concurrentMap) Load(id key.ID) (any, bool) { return m.data.Load(id) }

func (m *concurrentMap) Store(id key.ID, value any) { m.data.Store(id, value) }

func (m *concurrentMap) Delete(id key.ID) { m.data.Delete(id) }

func (m *concurrentMap) Range(f func(id key.ID, value any) bool) { m.data.Range(f) }

func (m *concurrentMap) Size() int { return m.data.Size() }

func (m *concurrentMap) Empty() Map { return NewConcurrentMap() }

func (m *concurrentMap) Compute(id key.ID, fn func(old any, loaded bool) (any, bool)) (any, bool) {
	return m.data.Compute(id, fn)
}
