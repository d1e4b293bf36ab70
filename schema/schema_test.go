package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNamespaceNameUniqueness(t *testing.T) {
	typ := NewType("M", nil)
	a := NewField("a", 1, "int32", Optional, nil)
	b := NewField("a", 2, "int32", Optional, nil)

	if err := typ.add(a); err != nil {
		t.Fatalf("add a: %v", err)
	}
	err := typ.add(b)
	if _, ok := err.(*DuplicateNameError); !ok {
		t.Fatalf("expected DuplicateNameError, got %v", err)
	}
}

func TestDuplicateFieldNumberRejected(t *testing.T) {
	typ := NewType("M", nil)
	a := NewField("a", 1, "int32", Optional, nil)
	b := NewField("b", 1, "int32", Optional, nil)

	if err := typ.add(a); err != nil {
		t.Fatalf("add a: %v", err)
	}
	err := typ.add(b)
	if _, ok := err.(*DuplicateFieldNumberError); !ok {
		t.Fatalf("expected DuplicateFieldNumberError, got %v", err)
	}
}

// TestOneOfLifecycle is spec.md §8 scenario S5.
func TestOneOfLifecycle(t *testing.T) {
	f := NewField("f", 1, "int32", Optional, nil)
	o := NewOneOf("x", []string{"f"}, nil)
	if err := o.Add(f); err != nil {
		t.Fatalf("o.Add(f): %v", err)
	}

	m := NewType("M", nil)
	if err := m.add(o); err != nil {
		t.Fatalf("m.add(o): %v", err)
	}

	got, ok := m.get("f")
	if !ok || got != object(f) {
		t.Fatalf("M.get(\"f\") = %v, %v; want f, true", got, ok)
	}
	if f.objParent() != Parent(m) {
		t.Fatalf("f.parent = %v, want m", f.objParent())
	}
	if f.PartOf() != o {
		t.Fatalf("f.partOf = %v, want o", f.PartOf())
	}

	if err := m.remove(o); err != nil {
		t.Fatalf("m.remove(o): %v", err)
	}
	if f.objParent() != nil {
		t.Fatalf("f.parent = %v, want nil after removing o", f.objParent())
	}
	if f.PartOf() != o {
		t.Fatalf("f.partOf = %v, want o to survive removal", f.PartOf())
	}
}

func TestOneOfPromotionWhenAlreadyAttached(t *testing.T) {
	m := NewType("M", nil)
	o := NewOneOf("x", nil, nil)
	if err := m.add(o); err != nil {
		t.Fatalf("m.add(o): %v", err)
	}

	f := NewField("f", 1, "int32", Optional, nil)
	if err := o.Add(f); err != nil {
		t.Fatalf("o.Add(f): %v", err)
	}

	if f.objParent() != Parent(m) {
		t.Fatalf("f should have been promoted into m on Add, got parent %v", f.objParent())
	}
	if got, ok := m.FieldByID(1); !ok || got != f {
		t.Fatalf("m.FieldByID(1) = %v, %v; want f, true", got, ok)
	}
}

func TestOneOfAddRejectsNonField(t *testing.T) {
	o := NewOneOf("x", nil, nil)
	err := o.Add(NewEnum("E", nil, nil, nil))
	if _, ok := err.(*TypeError); !ok {
		t.Fatalf("expected TypeError, got %v", err)
	}
}

// TestResolveFailureLeavesTypeUsable is spec.md §8 scenario S6.
func TestResolveFailureLeavesTypeUsable(t *testing.T) {
	m := NewType("M", nil)
	bad := NewField("bad", 1, "Unknown", Optional, nil)
	good := NewField("good", 2, "int32", Optional, nil)
	if err := m.add(bad); err != nil {
		t.Fatal(err)
	}
	if err := m.add(good); err != nil {
		t.Fatal(err)
	}

	if err := bad.Resolve(); err == nil {
		t.Fatal("expected ResolveError for unknown type")
	} else if _, ok := err.(*ResolveError); !ok {
		t.Fatalf("expected *ResolveError, got %T", err)
	}

	if err := good.Resolve(); err != nil {
		t.Fatalf("good field should still resolve: %v", err)
	}
	if got, ok := m.FieldByName("good"); !ok || got != good {
		t.Fatalf("m.FieldByName(good) = %v, %v", got, ok)
	}
}

func TestFieldResolveNamedMessageAndEnum(t *testing.T) {
	r := NewRegistry()
	inner := NewType("Inner", nil)
	outer := NewType("Outer", nil)
	e := NewEnum("Color", map[string]int32{"RED": 0, "BLUE": 1}, []string{"RED", "BLUE"}, nil)

	msgField := NewField("inner", 1, "Inner", Optional, nil)
	enumField := NewField("color", 2, "Color", Optional, nil)
	if err := outer.add(msgField); err != nil {
		t.Fatal(err)
	}
	if err := outer.add(enumField); err != nil {
		t.Fatal(err)
	}

	if err := r.Register(inner); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(outer); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(e); err != nil {
		t.Fatal(err)
	}

	if err := r.Seal(); err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if msgField.Kind() != MessageKind || msgField.ResolvedMessage() != inner {
		t.Fatalf("msgField resolved to %v/%v, want MessageKind/inner", msgField.Kind(), msgField.ResolvedMessage())
	}
	if enumField.Kind() != EnumKind || enumField.ResolvedEnum() != e {
		t.Fatalf("enumField resolved to %v/%v, want EnumKind/e", enumField.Kind(), enumField.ResolvedEnum())
	}
	if enumField.ScalarDefault() != int32(0) {
		t.Fatalf("enumField default = %v, want 0 (RED)", enumField.ScalarDefault())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	src := []byte(`{
		"types": {
			"M": {
				"fields": {
					"a": {"id": 1, "type": "int32", "rule": "required"},
					"b": {"id": 2, "type": "string"}
				}
			}
		}
	}`)
	r, err := DecodeJSON(src)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if err := r.Seal(); err != nil {
		t.Fatalf("Seal: %v", err)
	}
	m, ok := r.TypeByName("M")
	if !ok {
		t.Fatal("M not registered")
	}
	a, ok := m.FieldByName("a")
	if !ok || a.Rule != Required || a.ID != 1 {
		t.Fatalf("field a = %+v, %v", a, ok)
	}

	out, err := EncodeJSON(r)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	r2, err := DecodeJSON(out)
	if err != nil {
		t.Fatalf("DecodeJSON(round-tripped): %v", err)
	}
	m2, ok := r2.TypeByName("M")
	if !ok {
		t.Fatal("M not registered after round-trip")
	}
	a2, _ := m2.FieldByName("a")
	if diff := cmp.Diff(a.TypeName, a2.TypeName); diff != "" {
		t.Fatalf("round-trip mismatch on field a type: %s", diff)
	}
}

// TestFailedAddRollsBackChildParent reproduces the scenario where adding a
// OneOf to a Type fails because promoting one of its owned fields collides
// with an existing sibling field id. The OneOf's own attachment to the Type
// must be rolled back completely, including its parent back-reference, so
// it remains attachable elsewhere afterward (spec.md §7's "rejected add
// doesn't mutate the graph" property).
func TestFailedAddRollsBackChildParent(t *testing.T) {
	g := NewField("g", 1, "int32", Optional, nil)
	x := NewOneOf("x", []string{"g"}, nil)
	if err := x.Add(g); err != nil {
		t.Fatalf("x.Add(g): %v", err)
	}

	m := NewType("M", nil)
	f := NewField("f", 1, "int32", Optional, nil)
	if err := m.add(f); err != nil {
		t.Fatalf("add f: %v", err)
	}

	err := m.add(x)
	if _, ok := err.(*DuplicateFieldNumberError); !ok {
		t.Fatalf("expected DuplicateFieldNumberError, got %v", err)
	}

	if _, ok := m.get("x"); ok {
		t.Fatal("M should not have retained x as a child after the failed add")
	}
	if x.objParent() != nil {
		t.Fatalf("x.objParent() = %v, want nil after rollback", x.objParent())
	}

	other := NewType("Other", nil)
	if err := other.add(x); err != nil {
		t.Fatalf("x should be re-attachable to a different Type after rollback, got: %v", err)
	}
}

func TestSanitizeOptionsDropsNestedShapes(t *testing.T) {
	opts := map[string]any{
		"deprecated": true,
		"nested":     map[string]any{"a": 1},
		"list":       []any{1, 2},
	}
	out := sanitizeOptions("M", opts)
	if _, ok := out["deprecated"]; !ok {
		t.Fatal("expected scalar option to survive sanitization")
	}
	if _, ok := out["nested"]; ok {
		t.Fatal("expected nested-object option to be dropped")
	}
	if _, ok := out["list"]; ok {
		t.Fatal("expected array option to be dropped")
	}
}

func TestValidateCatchesUnresolvedField(t *testing.T) {
	r := NewRegistry()
	m := NewType("M", nil)
	f := NewField("f", 1, "Unknown", Optional, nil)
	if err := m.add(f); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(m); err != nil {
		t.Fatal(err)
	}
	if err := r.Validate(); err == nil {
		t.Fatal("expected validation failure for unresolved field")
	}
}
