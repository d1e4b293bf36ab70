// Package schema implements the mutable reflection graph: namespaces of
// named entities (enums, fields, oneofs, message types) with deferred
// cross-reference resolution, modeled on the descriptor naming used by
// golang.org/x/... reflect/protoreflect but kept mutable end to end, the
// way a schema built up incrementally from a parsed IDL or JSON description
// needs to be.
package schema

// Kind identifies the basic scalar or resolved kind of a field's value.
// Named type references (message/enum) are not resolved to a Kind until
// Field.Resolve binds them.
type Kind int

const (
	InvalidKind Kind = iota
	DoubleKind
	FloatKind
	Int32Kind
	Int64Kind
	Uint32Kind
	Uint64Kind
	Sint32Kind
	Sint64Kind
	Fixed32Kind
	Fixed64Kind
	Sfixed32Kind
	Sfixed64Kind
	BoolKind
	StringKind
	BytesKind
	EnumKind
	MessageKind
)

var kindNames = map[Kind]string{
	DoubleKind:   "double",
	FloatKind:    "float",
	Int32Kind:    "int32",
	Int64Kind:    "int64",
	Uint32Kind:   "uint32",
	Uint64Kind:   "uint64",
	Sint32Kind:   "sint32",
	Sint64Kind:   "sint64",
	Fixed32Kind:  "fixed32",
	Fixed64Kind:  "fixed64",
	Sfixed32Kind: "sfixed32",
	Sfixed64Kind: "sfixed64",
	BoolKind:     "bool",
	StringKind:   "string",
	BytesKind:    "bytes",
	EnumKind:     "enum",
	MessageKind:  "message",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// scalarKinds maps the scalar type names that can appear in a Field's
// "type" string to their Kind. Names absent from this table are assumed to
// be references to a named Enum or message Type, resolved later.
var scalarKinds = map[string]Kind{
	"double":   DoubleKind,
	"float":    FloatKind,
	"int32":    Int32Kind,
	"int64":    Int64Kind,
	"uint32":   Uint32Kind,
	"uint64":   Uint64Kind,
	"sint32":   Sint32Kind,
	"sint64":   Sint64Kind,
	"fixed32":  Fixed32Kind,
	"fixed64":  Fixed64Kind,
	"sfixed32": Sfixed32Kind,
	"sfixed64": Sfixed64Kind,
	"bool":     BoolKind,
	"string":   StringKind,
	"bytes":    BytesKind,
}

// WireType is the 3-bit on-wire framing classifier from the Protocol
// Buffers wire format.
type WireType int

const (
	WireVarint WireType = 0
	WireFixed64 WireType = 1
	WireBytes   WireType = 2
	WireFixed32 WireType = 5
)

// wireTypes is the wire types table (component 1): a static mapping from
// scalar/resolved kind to on-wire framing. Enum-typed fields are encoded as
// uint32 (varint), same row as the other varint kinds.
var wireTypes = map[Kind]WireType{
	DoubleKind:   WireFixed64,
	FloatKind:    WireFixed32,
	Int32Kind:    WireVarint,
	Int64Kind:    WireVarint,
	Uint32Kind:   WireVarint,
	Uint64Kind:   WireVarint,
	Sint32Kind:   WireVarint,
	Sint64Kind:   WireVarint,
	Fixed32Kind:  WireFixed32,
	Fixed64Kind:  WireFixed64,
	Sfixed32Kind: WireFixed32,
	Sfixed64Kind: WireFixed64,
	BoolKind:     WireVarint,
	StringKind:   WireBytes,
	BytesKind:    WireBytes,
	EnumKind:     WireVarint,
	MessageKind:  WireBytes,
}

// WireType reports the on-wire framing for k. It panics for InvalidKind,
// which only ever appears on an unresolved Field.
func (k Kind) WireType() WireType {
	wt, ok := wireTypes[k]
	if !ok {
		panic("schema: WireType called on unresolved kind")
	}
	return wt
}

// packableKinds is the packable set: numeric scalars and bool. Strings,
// bytes, messages, and enums-as-values are never packable on their own
// (enum *fields* are packable — Kind reports EnumKind, not the underlying
// numeric representation, so EnumKind is included here too).
var packableKinds = map[Kind]bool{
	DoubleKind: true, FloatKind: true,
	Int32Kind: true, Int64Kind: true, Uint32Kind: true, Uint64Kind: true,
	Sint32Kind: true, Sint64Kind: true,
	Fixed32Kind: true, Fixed64Kind: true, Sfixed32Kind: true, Sfixed64Kind: true,
	BoolKind: true, EnumKind: true,
}

// Packable reports whether a repeated field of kind k is eligible for the
// packed wire encoding.
func (k Kind) Packable() bool { return packableKinds[k] }

// mapKeyKinds is the set of kinds permitted as a map's key type: integral,
// bool, and string scalars.
var mapKeyKinds = map[Kind]bool{
	Int32Kind: true, Int64Kind: true, Uint32Kind: true, Uint64Kind: true,
	Sint32Kind: true, Sint64Kind: true, Fixed32Kind: true, Fixed64Kind: true,
	Sfixed32Kind: true, Sfixed64Kind: true, BoolKind: true, StringKind: true,
}

// MapKeyEligible reports whether k may be used as a map field's key kind.
func (k Kind) MapKeyEligible() bool { return mapKeyKinds[k] }

// longKinds is the set of kinds whose Go representation is a 64-bit
// integer, forcing strict (identity) comparison against the default value
// per spec.md §3's "long" attribute.
var longKinds = map[Kind]bool{
	Int64Kind: true, Uint64Kind: true, Sint64Kind: true,
	Fixed64Kind: true, Sfixed64Kind: true,
}

// Long reports whether k is a 64-bit integer kind.
func (k Kind) Long() bool { return longKinds[k] }

// IsScalar reports whether k is a basic scalar kind, as opposed to a
// resolved Enum or message reference.
func (k Kind) IsScalar() bool {
	switch k {
	case EnumKind, MessageKind, InvalidKind:
		return false
	default:
		return true
	}
}
