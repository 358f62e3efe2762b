package key

import (
	"slices"
	"strings"
)

// Set is a set of key identities.
//
// A nil Set is a valid empty set for all read methods.
type Set map[ID]struct{}

// NewSet creates a set of the given keys.
func NewSet(ids ...Identifier) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id.ID()] = struct{}{}
	}
	return s
}

// Add adds the keys to the set.
func (s Set) Add(ids ...Identifier) {
	for _, id := range ids {
		s[id.ID()] = struct{}{}
	}
}

// Has reports whether id is a member of the set.
func (s Set) Has(id Identifier) bool {
	_, ok := s[id.ID()]
	return ok
}

// Len returns the number of keys in the set.
func (s Set) Len() int { return len(s) }

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Equal reports whether both sets contain exactly the same keys.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}

// Slice returns the keys ordered by creation (ascending sequence number).
// Batch operations iterate sets in this order.
func (s Set) Slice() []ID {
	ids := make([]ID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b ID) int {
		switch {
		case a.Seq() < b.Seq():
			return -1
		case a.Seq() > b.Seq():
			return 1
		default:
			return 0
		}
	})
	return ids
}

func (s Set) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, id := range s.Slice() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(id.String())
	}
	sb.WriteString("}")
	return sb.String()
}
