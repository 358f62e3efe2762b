package object

import (
	"strings"

	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/store"
)

// Fields is an immutable snapshot returned by the batch read GetAll.
// It only contains keys that were present when it was taken.
type Fields struct {
	values map[key.ID]any
}

var _ store.Reader = fieldsReader{}

// fieldsReader exposes a snapshot as a read-only store.

type fieldsReader map[key.ID]any

func (f fieldsReader) Keys() key.Set {
	ids := make(key.Set, len(f))
	for id := range f {
		ids[id] = struct{}{}
	}
	return ids
}

func (f fieldsReader) Len() int { return len(f) }

func (f fieldsReader) Get(id key.ID) (any, bool) {
	v, ok := f[id]
	return v, ok
}

func (f fieldsReader) Has(id key.ID) bool {
	_, ok := f[id]
	return ok
}

func (f Fields) load() store.Reader { return fieldsReader(f.values) }

func (f Fields) Keys() key.Set { return f.load().Keys() }

func (f Fields) Len() int { return len(f.values) }

func (f Fields) Contains(id key.Identifier) bool { return containsIn(f.load(), id) }

func (f Fields) ExistingKeys(ids key.Set) key.Set { return store.ExistingKeys(f.load(), ids) }

func (f Fields) GetAll(ids key.Set) Fields { return getAllIn(f.load(), ids) }

func (f Fields) Fields() []key.AnyField { return fieldsOf(f.load()) }

func (f Fields) String() string { return format(f.Fields()) }

func format(fields []key.AnyField) string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, field := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(field.Entry().String())
	}
	sb.WriteString("}")
	return sb.String()
}
