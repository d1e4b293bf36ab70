package codegen

import (
	"strings"
	"testing"

	"github.com/gopherbuf/protocore/schema"
)

func sealedType(t *testing.T, build func(r *schema.Registry) *schema.Type) *schema.Type {
	t.Helper()
	r := schema.NewRegistry()
	typ := build(r)
	if err := r.Seal(); err != nil {
		t.Fatalf("Seal: %v", err)
	}
	return typ
}

func TestBuilderPIndentation(t *testing.T) {
	b := NewBuilder()
	b.P("outer")
	b.In()
	b.P("inner")
	b.Out()
	b.P("outer again")

	got := b.String()
	want := "outer\n\tinner\nouter again\n"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestBuilderPConcatenatesArgs(t *testing.T) {
	b := NewBuilder()
	b.P("a", 1, "b")
	if got, want := b.String(), "a1b\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestGeneratedSourceContainsEveryField(t *testing.T) {
	typ := sealedType(t, func(r *schema.Registry) *schema.Type {
		m := schema.NewType("M", nil)
		a := schema.NewField("a", 1, "int32", schema.Required, nil)
		xs := schema.NewField("xs", 2, "int32", schema.Repeated, nil)
		xs.Packed = true
		mp := schema.NewMapField("m", 3, "string", "int32", nil)
		for _, f := range []*schema.Field{a, xs} {
			if err := m.Add(f); err != nil {
				t.Fatal(err)
			}
		}
		if err := m.Add(mp); err != nil {
			t.Fatal(err)
		}
		if err := r.Register(m); err != nil {
			t.Fatal(err)
		}
		return m
	})

	src, err := GeneratedSource(typ)
	if err != nil {
		t.Fatalf("GeneratedSource: %v", err)
	}
	text := string(src)

	for _, want := range []string{"package generated", "field a = 1", "field xs = 2", "field m = 3"} {
		if !strings.Contains(text, want) {
			t.Errorf("generated source missing %q; got:\n%s", want, text)
		}
	}
}

func TestGeneratedSourceNestedMessageField(t *testing.T) {
	r := schema.NewRegistry()
	inner := schema.NewType("Inner", nil)
	innerField := schema.NewField("v", 1, "int32", schema.Optional, nil)
	if err := inner.Add(innerField); err != nil {
		t.Fatal(err)
	}
	outer := schema.NewType("Outer", nil)
	msgField := schema.NewField("inner", 1, "Inner", schema.Optional, nil)
	if err := outer.Add(msgField); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(inner); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(outer); err != nil {
		t.Fatal(err)
	}
	if err := r.Seal(); err != nil {
		t.Fatal(err)
	}

	src, err := GeneratedSource(outer)
	if err != nil {
		t.Fatalf("GeneratedSource: %v", err)
	}
	if !strings.Contains(string(src), "<nested dispatch>") {
		t.Errorf("generated source missing nested dispatch marker; got:\n%s", src)
	}
}

func TestIdentifier(t *testing.T) {
	cases := map[string]string{
		"M":           "M",
		"outer.Inner": "OuterInner",
		"snake_case":  "SnakeCase",
	}
	for in, want := range cases {
		if got := identifier(in); got != want {
			t.Errorf("identifier(%q) = %q, want %q", in, got, want)
		}
	}
}
