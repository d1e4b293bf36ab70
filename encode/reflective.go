package encode

import (
	"sort"

	"github.com/gopherbuf/protocore/instance"
	"github.com/gopherbuf/protocore/schema"
	"github.com/gopherbuf/protocore/wire"
)

// Marshal encodes msg using the reflective path: it walks msg.Type()'s
// fieldsArray in declaration order and emits each field per spec.md
// §4.3. This is the semantic reference path; getSpecialized's cached
// closure table must match it byte for byte (spec.md §8 property 7).
func Marshal(msg *instance.Message, opts Options) ([]byte, error) {
	w := wire.NewWriter()
	if err := marshalMessage(w, msg, opts); err != nil {
		return nil, err
	}
	return w.Finish(), nil
}

func marshalMessage(w *wire.Writer, msg *instance.Message, opts Options) error {
	for _, f := range msg.Type().Fields() {
		if err := marshalField(w, msg, f, opts); err != nil {
			return err
		}
	}
	return nil
}

func marshalField(w *wire.Writer, msg *instance.Message, f *schema.Field, opts Options) error {
	v, err := msg.Get(f.Name())
	if err != nil {
		return err
	}
	switch {
	case f.IsMap:
		return marshalMap(w, f, v, opts)
	case f.Rule == schema.Repeated:
		return marshalRepeated(w, f, v, opts)
	case f.Kind() == schema.MessageKind:
		return marshalSingularMessage(w, msg, f, v, opts)
	case f.Kind().IsScalar() || f.Kind() == schema.EnumKind:
		return marshalScalarField(w, f, v)
	default:
		return &EncodeError{Field: string(f.FullName()), Reason: "field has no resolved kind"}
	}
}

func marshalSingularMessage(w *wire.Writer, msg *instance.Message, f *schema.Field, v any, opts Options) error {
	has, err := msg.HasField(f.Name())
	if err != nil {
		return err
	}
	if !has && f.Rule != schema.Required {
		return nil
	}
	sub, ok := v.(*instance.Message)
	if !ok {
		return &EncodeError{Field: string(f.FullName()), Reason: "value is not a message instance"}
	}
	w.Tag(f.ID, toWireType(f.Kind()))
	w.Fork()
	if err := marshalMessage(w, sub, opts); err != nil {
		return err
	}
	w.Ldelim()
	return nil
}

// marshalScalarField implements spec.md §4.3's "Scalar (non-repeated)"
// rule. The strict/loose distinction from that section collapses here
// into a single typed-equality check per kind (isDefaultValue) — the
// rewrite spec.md §9's Open Question (a) asks for, rather than the
// source's loosely-typed fallback comparison.
func marshalScalarField(w *wire.Writer, f *schema.Field, v any) error {
	if f.Rule != schema.Required {
		isDefault, err := isDefaultValue(f, v)
		if err != nil {
			return err
		}
		if isDefault {
			return nil
		}
	}
	w.Tag(f.ID, toWireType(f.Kind()))
	return writeScalar(w, f, v)
}

// marshalRepeated implements spec.md §4.3's packed and unpacked repeated
// rules.
func marshalRepeated(w *wire.Writer, f *schema.Field, v any, opts Options) error {
	elems, ok := v.([]any)
	if !ok {
		return &EncodeError{Field: string(f.FullName()), Reason: "value is not a repeated field slice"}
	}
	if len(elems) == 0 {
		return nil
	}

	if f.Packed && f.Kind().Packable() {
		w.Tag(f.ID, wire.BytesType)
		w.Fork()
		for _, elem := range elems {
			if err := writeScalar(w, f, elem); err != nil {
				return err
			}
		}
		w.Ldelim()
		return nil
	}

	for _, elem := range elems {
		if f.Kind() == schema.MessageKind {
			sub, ok := elem.(*instance.Message)
			if !ok {
				return &EncodeError{Field: string(f.FullName()), Reason: "repeated element is not a message instance"}
			}
			w.Tag(f.ID, wire.BytesType)
			w.Fork()
			if err := marshalMessage(w, sub, opts); err != nil {
				return err
			}
			w.Ldelim()
			continue
		}
		w.Tag(f.ID, toWireType(f.Kind()))
		if err := writeScalar(w, f, elem); err != nil {
			return err
		}
	}
	return nil
}

// marshalMap implements spec.md §4.3's map entry rule: each entry encodes
// as a synthetic two-field message, key at id 1 and value at id 2.
func marshalMap(w *wire.Writer, f *schema.Field, v any, opts Options) error {
	entries, ok := v.([]instance.MapEntry)
	if !ok {
		return &EncodeError{Field: string(f.FullName()), Reason: "value is not a map entry slice"}
	}
	if len(entries) == 0 {
		return nil
	}
	if opts.Deterministic {
		entries = sortedMapEntries(entries)
	}

	for _, entry := range entries {
		w.Tag(f.ID, wire.BytesType)
		w.Fork()

		w.Tag(1, toWireType(f.KeyKind()))
		if err := writeScalarKind(w, f.KeyKind(), entry.Key); err != nil {
			return err
		}

		if f.Kind() == schema.MessageKind {
			sub, ok := entry.Value.(*instance.Message)
			if !ok {
				return &EncodeError{Field: string(f.FullName()), Reason: "map value is not a message instance"}
			}
			w.Tag(2, wire.BytesType)
			w.Fork()
			if err := marshalMessage(w, sub, opts); err != nil {
				return err
			}
			w.Ldelim()
		} else {
			w.Tag(2, toWireType(f.Kind()))
			if err := writeScalarKind(w, f.Kind(), entry.Value); err != nil {
				return err
			}
		}

		w.Ldelim()
	}
	return nil
}

func sortedMapEntries(entries []instance.MapEntry) []instance.MapEntry {
	out := append([]instance.MapEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return mapKeyLess(out[i].Key, out[j].Key)
	})
	return out
}

func mapKeyLess(a, b any) bool {
	switch x := a.(type) {
	case string:
		return x < b.(string)
	case int32:
		return x < b.(int32)
	case int64:
		return x < b.(int64)
	case uint32:
		return x < b.(uint32)
	case uint64:
		return x < b.(uint64)
	case bool:
		return !x && b.(bool)
	default:
		return false
	}
}

func writeScalar(w *wire.Writer, f *schema.Field, v any) error {
	return writeScalarKind(w, f.Kind(), v)
}

func writeScalarKind(w *wire.Writer, kind schema.Kind, v any) error {
	switch kind {
	case schema.DoubleKind:
		x, ok := v.(float64)
		if !ok {
			return &EncodeError{Reason: "expected float64"}
		}
		w.Double(x)
	case schema.FloatKind:
		x, ok := v.(float32)
		if !ok {
			return &EncodeError{Reason: "expected float32"}
		}
		w.Float(x)
	case schema.Int32Kind:
		x, ok := v.(int32)
		if !ok {
			return &EncodeError{Reason: "expected int32"}
		}
		w.Int32(x)
	case schema.Int64Kind:
		x, ok := v.(int64)
		if !ok {
			return &EncodeError{Reason: "expected int64"}
		}
		w.Int64(x)
	case schema.Uint32Kind:
		x, ok := v.(uint32)
		if !ok {
			return &EncodeError{Reason: "expected uint32"}
		}
		w.Uint32(x)
	case schema.Uint64Kind:
		x, ok := v.(uint64)
		if !ok {
			return &EncodeError{Reason: "expected uint64"}
		}
		w.Uint64(x)
	case schema.Sint32Kind:
		x, ok := v.(int32)
		if !ok {
			return &EncodeError{Reason: "expected int32"}
		}
		w.Zigzag32(x)
	case schema.Sint64Kind:
		x, ok := v.(int64)
		if !ok {
			return &EncodeError{Reason: "expected int64"}
		}
		w.Zigzag64(x)
	case schema.Fixed32Kind:
		x, ok := v.(uint32)
		if !ok {
			return &EncodeError{Reason: "expected uint32"}
		}
		w.Fixed32(x)
	case schema.Fixed64Kind:
		x, ok := v.(uint64)
		if !ok {
			return &EncodeError{Reason: "expected uint64"}
		}
		w.Fixed64(x)
	case schema.Sfixed32Kind:
		x, ok := v.(int32)
		if !ok {
			return &EncodeError{Reason: "expected int32"}
		}
		w.Sfixed32(x)
	case schema.Sfixed64Kind:
		x, ok := v.(int64)
		if !ok {
			return &EncodeError{Reason: "expected int64"}
		}
		w.Sfixed64(x)
	case schema.BoolKind:
		x, ok := v.(bool)
		if !ok {
			return &EncodeError{Reason: "expected bool"}
		}
		w.Bool(x)
	case schema.StringKind:
		x, ok := v.(string)
		if !ok {
			return &EncodeError{Reason: "expected string"}
		}
		w.String(x)
	case schema.BytesKind:
		x, ok := v.([]byte)
		if !ok {
			return &EncodeError{Reason: "expected []byte"}
		}
		w.Bytes(x)
	case schema.EnumKind:
		x, ok := v.(int32)
		if !ok {
			return &EncodeError{Reason: "expected int32 enum value"}
		}
		if x < 0 {
			return &EncodeError{Reason: "enum value encodes as uint32 and must be non-negative"}
		}
		w.Uint32(uint32(x))
	default:
		return &EncodeError{Reason: "unsupported scalar kind for writing"}
	}
	return nil
}

// isDefaultValue performs the explicit typed comparison spec.md §9's Open
// Question (a) asks for, in place of the source's loosely-typed
// comparison. It also covers f.Long() implicitly: every 64-bit integer
// kind is compared with a native == below, identical to the strict path.
func isDefaultValue(f *schema.Field, v any) (bool, error) {
	switch f.Kind() {
	case schema.DoubleKind:
		x, ok := v.(float64)
		return ok && x == 0, nil
	case schema.FloatKind:
		x, ok := v.(float32)
		return ok && x == 0, nil
	case schema.Int32Kind, schema.Sint32Kind, schema.Sfixed32Kind:
		x, ok := v.(int32)
		return ok && x == 0, nil
	case schema.Int64Kind, schema.Sint64Kind, schema.Sfixed64Kind:
		x, ok := v.(int64)
		return ok && x == 0, nil
	case schema.Uint32Kind, schema.Fixed32Kind:
		x, ok := v.(uint32)
		return ok && x == 0, nil
	case schema.Uint64Kind, schema.Fixed64Kind:
		x, ok := v.(uint64)
		return ok && x == 0, nil
	case schema.BoolKind:
		x, ok := v.(bool)
		return ok && !x, nil
	case schema.StringKind:
		x, ok := v.(string)
		return ok && x == "", nil
	case schema.BytesKind:
		x, ok := v.([]byte)
		return ok && len(x) == 0, nil
	case schema.EnumKind:
		x, ok := v.(int32)
		def, _ := f.ScalarDefault().(int32)
		return ok && x == def, nil
	default:
		return false, &EncodeError{Field: string(f.FullName()), Reason: "cannot compare unresolved or unsupported kind to default"}
	}
}

func toWireType(k schema.Kind) wire.WireType {
	switch k.WireType() {
	case schema.WireVarint:
		return wire.VarintType
	case schema.WireFixed64:
		return wire.Fixed64Type
	case schema.WireBytes:
		return wire.BytesType
	case schema.WireFixed32:
		return wire.Fixed32Type
	default:
		panic("encode: unknown wire type")
	}
}
