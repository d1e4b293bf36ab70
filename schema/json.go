package schema

import (
	"encoding/json"
	"fmt"
	"os"
)

// These mirror spec.md §6's schema input/output shape: a type carries its
// fields (by name -> {id, type, rule, options}), oneofs (by name -> list of
// field names), nested types, and nested enums. encoding/json's struct-tag
// marshaling is used directly, the way prototype's descriptor JSON forms do
// in the teacher — no third-party JSON library in the retrieval pack offers
// anything this shape needs beyond what the standard library already does.

type jsonField struct {
	ID          int32          `json:"id"`
	Type        string         `json:"type"`
	Rule        string         `json:"rule,omitempty"`
	Packed      bool           `json:"packed,omitempty"`
	KeyType     string         `json:"keyType,omitempty"`
	Options     map[string]any `json:"options,omitempty"`
}

type jsonType struct {
	Fields  map[string]jsonField   `json:"fields,omitempty"`
	OneOfs  map[string][]string    `json:"oneofs,omitempty"`
	Nested  map[string]jsonType    `json:"nestedTypes,omitempty"`
	Enums   map[string]jsonEnum    `json:"enums,omitempty"`
	Options map[string]any         `json:"options,omitempty"`
}

type jsonEnum struct {
	Values  map[string]int32 `json:"values,omitempty"`
	Order   []string         `json:"order,omitempty"`
	Options map[string]any   `json:"options,omitempty"`
}

type jsonSchema struct {
	Types map[string]jsonType `json:"types,omitempty"`
	Enums map[string]jsonEnum `json:"enums,omitempty"`
}

var ruleNames = map[Rule]string{
	Optional: "optional",
	Required: "required",
	Repeated: "repeated",
}

var ruleValues = map[string]Rule{
	"optional": Optional,
	"required": Required,
	"repeated": Repeated,
	"":         Optional,
}

// DecodeJSON parses a schema description in the shape spec.md §6 describes
// and registers every top-level type and enum it contains, in a single pass:
// first all names are constructed and registered (so forward and circular
// references resolve), then the caller is expected to call Seal to bind
// field type references.
func DecodeJSON(data []byte) (*Registry, error) {
	var doc jsonSchema
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}
	r := NewRegistry()
	for name, je := range doc.Enums {
		if err := r.Register(enumFromJSON(name, je)); err != nil {
			return nil, err
		}
	}
	for name, jt := range doc.Types {
		t, err := typeFromJSON(name, jt)
		if err != nil {
			return nil, err
		}
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func enumFromJSON(name string, je jsonEnum) *Enum {
	order := je.Order
	if len(order) == 0 {
		for name := range je.Values {
			order = append(order, name)
		}
	}
	return NewEnum(name, je.Values, order, sanitizeOptions(name, je.Options))
}

func typeFromJSON(name string, jt jsonType) (*Type, error) {
	t := NewType(name, sanitizeOptions(name, jt.Options))

	claimed := make(map[string]string) // field name -> owning oneof name
	for oneofName, names := range jt.OneOfs {
		for _, n := range names {
			claimed[n] = oneofName
		}
	}

	oneofs := make(map[string]*OneOf, len(jt.OneOfs))
	for oneofName, names := range jt.OneOfs {
		oneofs[oneofName] = NewOneOf(oneofName, names, nil)
	}

	for fieldName, jf := range jt.Fields {
		var f *Field
		opts := sanitizeOptions(name+"."+fieldName, jf.Options)
		if jf.KeyType != "" {
			f = NewMapField(fieldName, jf.ID, jf.KeyType, jf.Type, opts)
		} else {
			f = NewField(fieldName, jf.ID, jf.Type, ruleValues[jf.Rule], opts)
			f.Packed = jf.Packed
		}
		if oneofName, ok := claimed[fieldName]; ok {
			if err := oneofs[oneofName].Add(f); err != nil {
				return nil, err
			}
		} else {
			if err := t.add(f); err != nil {
				return nil, err
			}
		}
	}
	for _, o := range oneofs {
		if err := t.add(o); err != nil {
			return nil, err
		}
	}
	for enumName, je := range jt.Enums {
		if err := t.add(enumFromJSON(enumName, je)); err != nil {
			return nil, err
		}
	}
	for nestedName, nested := range jt.Nested {
		nt, err := typeFromJSON(nestedName, nested)
		if err != nil {
			return nil, err
		}
		if err := t.add(nt); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// EncodeJSON renders the registry back to the spec.md §6 JSON shape, the
// round-trip counterpart to DecodeJSON.
func EncodeJSON(r *Registry) ([]byte, error) {
	doc := jsonSchema{Types: map[string]jsonType{}, Enums: map[string]jsonEnum{}}
	for _, t := range r.Types() {
		doc.Types[t.Name()] = typeToJSON(t)
	}
	for _, e := range r.Enums() {
		doc.Enums[e.Name()] = enumToJSON(e)
	}
	return json.MarshalIndent(doc, "", "  ")
}

func enumToJSON(e *Enum) jsonEnum {
	values := make(map[string]int32, len(e.order))
	for _, name := range e.order {
		values[name], _ = e.ValueOf(name)
	}
	return jsonEnum{Values: values, Order: e.Values(), Options: e.Options()}
}

func typeToJSON(t *Type) jsonType {
	jt := jsonType{
		Fields: map[string]jsonField{},
		OneOfs: map[string][]string{},
		Nested: map[string]jsonType{},
		Enums:  map[string]jsonEnum{},
		Options: t.Options(),
	}
	for _, f := range t.Fields() {
		jf := jsonField{ID: f.ID, Type: f.TypeName, Rule: ruleNames[f.Rule], Packed: f.Packed, Options: f.Options()}
		if f.IsMap {
			jf.KeyType = f.KeyTypeName
		}
		jt.Fields[f.Name()] = jf
	}
	for _, o := range t.OneOfs() {
		jt.OneOfs[o.Name()] = append([]string(nil), o.declared...)
	}
	for _, nt := range t.NestedTypes() {
		jt.Nested[nt.Name()] = typeToJSON(nt)
	}
	for _, e := range t.NestedEnums() {
		jt.Enums[e.Name()] = enumToJSON(e)
	}
	return jt
}

// sanitizeOptions is the one tolerated-diagnostic surface spec.md leaves
// room for: the options map is defined as a flat string->value mapping
// (spec.md's ReflectionObject), so an option whose decoded JSON value is
// itself a nested object or array has no representation in that model.
// Rather than fail the whole schema decode over one malformed option,
// sanitizeOptions drops it and warns, matching proto/properties.go's bare
// fmt.Fprintf diagnostic for a malformed struct tag.
func sanitizeOptions(ownerName string, options map[string]any) map[string]any {
	if options == nil {
		return nil
	}
	out := make(map[string]any, len(options))
	for name, value := range options {
		switch value.(type) {
		case map[string]any, []any:
			warnUnknownOption(ownerName, name, value)
		default:
			out[name] = value
		}
	}
	return out
}

// warnUnknownOption logs a dropped option rather than failing the decode.
func warnUnknownOption(ownerName, optionName string, value any) {
	fmt.Fprintf(os.Stderr, "schema: ignoring option %q=%v on %s: unrecognized shape\n", optionName, value, ownerName)
}
