package key

import (
	"reflect"
	"testing"
)

func TestNewKeyIdentity(t *testing.T) {
	a := New[string]("name")
	b := New[string]("name")

	if a.ID() == b.ID() {
		t.Errorf("Keys created by separate New calls must be different, both are %s", a.ID())
	}

	c := a
	if a.ID() != c.ID() {
		t.Errorf("Copies of a key must share the identity")
	}

	if a.ID().IsZero() {
		t.Errorf("New must never return the zero identity")
	}

	if b.ID().Seq() <= a.ID().Seq() {
		t.Errorf("Sequence numbers should increase, got %d after %d", b.ID().Seq(), a.ID().Seq())
	}
}

func TestKeyMetadata(t *testing.T) {
	named := New[int]("age")
	if named.ID().Name() != "age" || named.ID().String() != "age" {
		t.Errorf("Expected name 'age', got %q / %q", named.ID().Name(), named.ID().String())
	}
	if named.ID().Type() != reflect.TypeOf((*int)(nil)).Elem() {
		t.Errorf("Expected type int, got %v", named.ID().Type())
	}

	anonymous := New[[]byte]("")
	if anonymous.ID().String() != anonymous.ID().UUID().String() {
		t.Errorf("Unnamed keys should render as their uuid, got %s", anonymous.ID())
	}

	var zero ID
	if !zero.IsZero() || zero.Seq() != 0 || zero.Name() != "" || zero.Type() != nil {
		t.Errorf("Zero ID should report empty metadata")
	}
}

func TestFieldEntry(t *testing.T) {
	k := New[string]("greeting")
	f := k.Of("hello")

	if f != NewField(k, "hello") {
		t.Errorf("Of and NewField should produce equal fields")
	}

	e := f.Entry()
	if e.ID != k.ID() || e.Value != "hello" {
		t.Errorf("Unexpected entry %v", e)
	}

	if e.Entry() != e {
		t.Errorf("Entry.Entry should return the entry itself")
	}

	entries := Entries(f, New[int]("n").Of(1))
	if len(entries) != 2 || entries[0].ID != k.ID() {
		t.Errorf("Entries should keep the order of the input, got %v", entries)
	}
}

func TestSet(t *testing.T) {
	a := New[string]("a")
	b := New[int]("b")
	c := New[bool]("c")

	s := NewSet(b, a)
	if !s.Has(a) || !s.Has(b.ID()) || s.Has(c) {
		t.Errorf("Unexpected membership in %s", s)
	}

	s.Add(c)
	if s.Len() != 3 {
		t.Errorf("Expected 3 keys, got %d", s.Len())
	}

	ordered := s.Slice()
	if ordered[0] != a.ID() || ordered[1] != b.ID() || ordered[2] != c.ID() {
		t.Errorf("Slice should be ordered by creation, got %v", ordered)
	}

	clone := s.Clone()
	delete(clone, a.ID())
	if !s.Has(a) {
		t.Errorf("Modifying a clone must not change the original set")
	}
	if s.Equal(clone) || !s.Equal(s.Clone()) {
		t.Errorf("Equal reports wrong result")
	}

	var empty Set
	if empty.Has(a) || empty.Len() != 0 || len(empty.Slice()) != 0 {
		t.Errorf("nil set should behave as empty set")
	}
}
