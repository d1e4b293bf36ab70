package instance

import (
	"testing"

	"github.com/gopherbuf/protocore/schema"
)

func oneofTestType(t *testing.T) *schema.Type {
	t.Helper()
	m := schema.NewType("M", nil)
	p := schema.NewField("p", 1, "int32", schema.Optional, nil)
	q := schema.NewField("q", 2, "string", schema.Optional, nil)
	o := schema.NewOneOf("x", []string{"p", "q"}, nil)
	if err := o.Add(p); err != nil {
		t.Fatal(err)
	}
	if err := o.Add(q); err != nil {
		t.Fatal(err)
	}
	if err := m.Add(o); err != nil {
		t.Fatal(err)
	}
	if err := p.Resolve(); err != nil {
		t.Fatal(err)
	}
	if err := q.Resolve(); err != nil {
		t.Fatal(err)
	}
	return m
}

// TestOneofExclusivity is spec.md §8 scenario S2.
func TestOneofExclusivity(t *testing.T) {
	typ := oneofTestType(t)
	msg := New(typ)

	if err := msg.Set("p", int32(5)); err != nil {
		t.Fatal(err)
	}
	if err := msg.Set("q", "hi"); err != nil {
		t.Fatal(err)
	}

	got, err := msg.Get("p")
	if err != nil {
		t.Fatal(err)
	}
	if got != int32(0) {
		t.Fatalf("Get(p) = %v, want 0 (default, reset by setting q)", got)
	}

	which, ok := msg.OneofWhichSet("x")
	if !ok || which != "q" {
		t.Fatalf("OneofWhichSet(x) = %q, %v; want q, true", which, ok)
	}

	gotQ, err := msg.Get("q")
	if err != nil {
		t.Fatal(err)
	}
	if gotQ != "hi" {
		t.Fatalf("Get(q) = %v, want hi", gotQ)
	}
}

func TestOneofClearRestoresUnset(t *testing.T) {
	typ := oneofTestType(t)
	msg := New(typ)

	if err := msg.Set("p", int32(5)); err != nil {
		t.Fatal(err)
	}
	if err := msg.Clear("p"); err != nil {
		t.Fatal(err)
	}

	if _, ok := msg.OneofWhichSet("x"); ok {
		t.Fatal("expected no field set in oneof x after clearing the set field")
	}
}

func TestClearNonCurrentOneofFieldLeavesOneofAlone(t *testing.T) {
	typ := oneofTestType(t)
	msg := New(typ)

	if err := msg.Set("p", int32(5)); err != nil {
		t.Fatal(err)
	}
	if err := msg.Clear("q"); err != nil {
		t.Fatal(err)
	}

	which, ok := msg.OneofWhichSet("x")
	if !ok || which != "p" {
		t.Fatalf("OneofWhichSet(x) = %q, %v; want p, true", which, ok)
	}
}

func TestMessageFieldDefaultIsFreshZeroMessage(t *testing.T) {
	inner := schema.NewType("Inner", nil)
	f := schema.NewField("n", 1, "int32", schema.Optional, nil)
	if err := inner.Add(f); err != nil {
		t.Fatal(err)
	}
	if err := f.Resolve(); err != nil {
		t.Fatal(err)
	}

	outer := schema.NewType("Outer", nil)
	mf := schema.NewField("inner", 1, "Inner", schema.Optional, nil)
	if err := outer.Add(mf); err != nil {
		t.Fatal(err)
	}
	r := schema.NewRegistry()
	if err := r.Register(inner); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(outer); err != nil {
		t.Fatal(err)
	}
	if err := r.Seal(); err != nil {
		t.Fatal(err)
	}

	msg := New(outer)
	got, err := msg.Get("inner")
	if err != nil {
		t.Fatal(err)
	}
	sub, ok := got.(*Message)
	if !ok {
		t.Fatalf("Get(inner) = %T, want *Message", got)
	}
	if sub.Type() != inner {
		t.Fatalf("sub.Type() = %v, want inner", sub.Type())
	}

	again, _ := msg.Get("inner")
	if again != got {
		t.Fatal("second Get(inner) should return the same cached zero message")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	typ := oneofTestType(t)
	msg := New(typ)
	if err := msg.Set("p", int32(5)); err != nil {
		t.Fatal(err)
	}

	clone := msg.Clone()
	if err := clone.Set("p", int32(9)); err != nil {
		t.Fatal(err)
	}

	got, _ := msg.Get("p")
	if got != int32(5) {
		t.Fatalf("original mutated by clone: Get(p) = %v, want 5", got)
	}
}

func TestEqual(t *testing.T) {
	typ := oneofTestType(t)
	a := New(typ)
	b := New(typ)
	if !Equal(a, b) {
		t.Fatal("two freshly constructed zero instances should be equal")
	}

	if err := a.Set("p", int32(5)); err != nil {
		t.Fatal(err)
	}
	if Equal(a, b) {
		t.Fatal("instances should differ after mutating only a")
	}

	if err := b.Set("p", int32(5)); err != nil {
		t.Fatal(err)
	}
	if !Equal(a, b) {
		t.Fatal("instances should be equal again after matching mutation")
	}
}
