package codegen

import (
	"fmt"

	"github.com/gopherbuf/protocore/schema"
)

// GeneratedSource renders t's specialized dispatch table (the shape
// encode.buildSpecialized builds as closures at runtime) as readable Go
// source text: one block per field, in fieldsArray order, showing exactly
// which wire.Writer accessor and tag each field resolves to. It is a
// descriptive artifact, not a compiled one — there is no build step in this
// module that feeds this text back into the package it describes, the way
// cmd/protoc-gen-go's output normally would be fed to `go build`.
func GeneratedSource(t *schema.Type) ([]byte, error) {
	b := NewBuilder()
	writePackageHeader(b, t)
	writeDispatchFunc(b, t)
	return b.Format()
}

func writePackageHeader(b *Builder, t *schema.Type) {
	b.P("// Code generated by codegen.GeneratedSource. DO NOT EDIT.")
	b.P("// source type: ", t.FullName())
	b.P()
	b.P("package generated")
	b.P()
	b.P(`import "github.com/gopherbuf/protocore/wire"`)
	b.P()
}

// writeDispatchFunc renders a function with one comment block per field
// naming its tag, wire shape, and the wire.Writer call that would carry it
// -- the same decision encode.buildSpecialized bakes into a closure, shown
// here as text instead of compiled.
func writeDispatchFunc(b *Builder, t *schema.Type) {
	fnName := "dispatch" + identifier(string(t.FullName()))
	b.P("// ", fnName, " documents the wire shape of every field of ", t.FullName(), ".")
	b.P("func ", fnName, "(w *wire.Writer) {")
	b.In()
	for _, f := range t.Fields() {
		writeFieldCase(b, f)
	}
	b.Out()
	b.P("}")
	b.P()
}

func writeFieldCase(b *Builder, f *schema.Field) {
	b.P("// field ", f.Name(), " = ", f.ID, " (", fieldShape(f), ")")
	switch {
	case f.IsMap:
		b.P("// w.Tag(", f.ID, ", wire.BytesType); entries carry key=1, value=2")
	case f.Rule == schema.Repeated && f.Packed && f.Kind().Packable():
		b.P("// w.Tag(", f.ID, ", wire.BytesType); w.Fork(); ", writerCallComment(f), "; w.Ldelim()")
	case f.Rule == schema.Repeated && f.Kind() == schema.MessageKind:
		b.P("// per element: w.Tag(", f.ID, ", wire.BytesType); w.Fork(); <nested dispatch>; w.Ldelim()")
	case f.Rule == schema.Repeated:
		b.P("// per element: w.Tag(", f.ID, ", ", wireTypeConst(f), "); ", writerCallComment(f))
	case f.Kind() == schema.MessageKind:
		b.P("// w.Tag(", f.ID, ", wire.BytesType); w.Fork(); <nested dispatch>; w.Ldelim()")
	default:
		b.P("// w.Tag(", f.ID, ", ", wireTypeConst(f), "); ", writerCallComment(f))
	}
	b.P()
}

func writerCallComment(f *schema.Field) string {
	return fmt.Sprintf("w.%s(...)", writerMethod(f.Kind()))
}

func writerMethod(k schema.Kind) string {
	switch k {
	case schema.DoubleKind:
		return "Double"
	case schema.FloatKind:
		return "Float"
	case schema.Int32Kind:
		return "Int32"
	case schema.Int64Kind:
		return "Int64"
	case schema.Uint32Kind:
		return "Uint32"
	case schema.Uint64Kind:
		return "Uint64"
	case schema.Sint32Kind:
		return "Zigzag32"
	case schema.Sint64Kind:
		return "Zigzag64"
	case schema.Fixed32Kind:
		return "Fixed32"
	case schema.Fixed64Kind:
		return "Fixed64"
	case schema.Sfixed32Kind:
		return "Sfixed32"
	case schema.Sfixed64Kind:
		return "Sfixed64"
	case schema.BoolKind:
		return "Bool"
	case schema.StringKind:
		return "String"
	case schema.BytesKind:
		return "Bytes"
	case schema.EnumKind:
		return "Uint32"
	default:
		return "Varint"
	}
}

func wireTypeConst(f *schema.Field) string {
	switch f.Kind().WireType() {
	case schema.WireVarint:
		return "wire.VarintType"
	case schema.WireFixed64:
		return "wire.Fixed64Type"
	case schema.WireBytes:
		return "wire.BytesType"
	case schema.WireFixed32:
		return "wire.Fixed32Type"
	default:
		return "wire.VarintType"
	}
}

func fieldShape(f *schema.Field) string {
	switch {
	case f.IsMap:
		return fmt.Sprintf("map<%s,%s>", f.KeyKind(), f.Kind())
	case f.Rule == schema.Repeated:
		if f.Packed {
			return fmt.Sprintf("packed repeated %s", f.Kind())
		}
		return fmt.Sprintf("repeated %s", f.Kind())
	default:
		return f.Kind().String()
	}
}

// identifier turns a dotted or lower-case field/type name into an
// exported-style Go identifier fragment, stripping characters that can't
// appear in one.
func identifier(name string) string {
	out := make([]rune, 0, len(name))
	upperNext := true
	for _, r := range name {
		switch {
		case r == '.' || r == '_':
			upperNext = true
		case upperNext:
			out = append(out, toUpper(r))
			upperNext = false
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
