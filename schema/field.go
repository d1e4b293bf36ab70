package schema

// Rule is a field's cardinality.
type Rule int

const (
	Optional Rule = iota
	Required
	Repeated
)

// Field is a message field declaration: a wire tag number, a scalar or
// named-type reference, a cardinality rule, and (once resolved) the bound
// Enum/Type it refers to. See spec.md §3.
type Field struct {
	base

	ID       int32
	TypeName string // scalar name, or a dotted reference to an Enum/Type
	Rule     Rule
	Packed   bool

	IsMap       bool
	KeyTypeName string // only meaningful when IsMap

	// partOf is the OneOf this field belongs to, or nil. Unlike Type
	// membership (tracked via base.parent, set/cleared by Type.add/
	// remove), partOf is set directly by OneOf.Add/Remove and survives
	// detachment from the enclosing message (spec.md §4.1, scenario S5).
	partOf *OneOf

	resolved     bool
	kind         Kind
	keyKind      Kind
	resolvedEnum *Enum
	resolvedMsg  *Type
	long         bool
	scalarDefault any
}

// NewField constructs a detached Field. id must be a positive wire tag
// number, unique within whatever message it ends up a member of.
func NewField(name string, id int32, typeName string, rule Rule, options map[string]any) *Field {
	return &Field{
		base:     base{name: name, options: options},
		ID:       id,
		TypeName: typeName,
		Rule:     rule,
	}
}

// NewMapField constructs a detached map Field: TypeName names the value
// kind, keyTypeName the (integral/bool/string) key kind.
func NewMapField(name string, id int32, keyTypeName, valueTypeName string, options map[string]any) *Field {
	f := NewField(name, id, valueTypeName, Repeated, options)
	f.IsMap = true
	f.KeyTypeName = keyTypeName
	return f
}

// PartOf returns the OneOf this field belongs to, or nil.
func (f *Field) PartOf() *OneOf { return f.partOf }

// FullName returns the dotted path of this field within its Registry. A
// field that is only reachable through an unattached OneOf (partOf set,
// parent nil) reports its bare name, matching spec.md §3's "parent ==
// null" state for that case.
func (f *Field) FullName() FullName {
	if f.parent == nil {
		return FullName(f.name)
	}
	return f.parent.FullName().Append(f.name)
}

// Resolved reports whether Resolve has successfully bound this field.
func (f *Field) Resolved() bool { return f.resolved }

// Kind returns the field's resolved value kind. It panics if called before
// a successful Resolve.
func (f *Field) Kind() Kind {
	if !f.resolved {
		panic("schema: Kind called before Resolve")
	}
	return f.kind
}

// KeyKind returns the resolved map key kind. Only meaningful when IsMap.
func (f *Field) KeyKind() Kind {
	if !f.resolved {
		panic("schema: KeyKind called before Resolve")
	}
	return f.keyKind
}

// ResolvedEnum returns the Enum this field refers to, or nil if the field
// is not enum-kinded.
func (f *Field) ResolvedEnum() *Enum { return f.resolvedEnum }

// ResolvedMessage returns the message Type this field refers to, or nil if
// the field is not message-kinded.
func (f *Field) ResolvedMessage() *Type { return f.resolvedMsg }

// Long reports whether the field's kind is a 64-bit integer, forcing
// strict (identity) comparison against the default value at encode time.
func (f *Field) Long() bool { return f.long }

// ScalarDefault returns the zero value for a scalar- or enum-kinded
// singular field, as a native Go value (int32, int64, uint32, uint64,
// float32, float64, bool, string, or []byte). It is meaningless for
// repeated/map fields (whose default is "empty", a instance-model concern)
// and for message-kinded fields (whose default is a fresh zero message,
// which the instance package constructs on demand via ResolvedMessage to
// avoid a schema->instance import cycle).
func (f *Field) ScalarDefault() any { return f.scalarDefault }

// Resolve binds TypeName (and KeyTypeName, for maps) against the field's
// enclosing scope. It is idempotent and safe to call repeatedly; only the
// first successful call does any work, matching spec.md §4.1's stated
// reference-resolution contract.
func (f *Field) Resolve() error {
	if f.resolved {
		return nil
	}

	if f.IsMap {
		keyKind, ok := scalarKinds[f.KeyTypeName]
		if !ok || !keyKind.MapKeyEligible() {
			return &ResolveError{Field: f.FullName(), TypeName: f.KeyTypeName}
		}
		f.keyKind = keyKind
	}

	if kind, ok := scalarKinds[f.TypeName]; ok {
		f.kind = kind
		f.long = kind.Long()
		f.scalarDefault = zeroForKind(kind)
		f.resolved = true
		return nil
	}

	obj, ok := lookup(f.parentScope(), f.TypeName)
	if !ok {
		return &ResolveError{Field: f.FullName(), TypeName: f.TypeName}
	}
	switch t := obj.(type) {
	case *Enum:
		f.kind = EnumKind
		f.resolvedEnum = t
		f.scalarDefault = t.Zero()
	case *Type:
		f.kind = MessageKind
		f.resolvedMsg = t
	default:
		return &ResolveError{Field: f.FullName(), TypeName: f.TypeName}
	}
	f.long = false
	f.resolved = true
	return nil
}

// parentScope returns the scope Resolve should start its lookup from: the
// field's own enclosing message if attached, otherwise (a field still only
// owned by a detached OneOf) there is no scope to search from.
func (f *Field) parentScope() Parent { return f.parent }

func zeroForKind(k Kind) any {
	switch k {
	case DoubleKind:
		return float64(0)
	case FloatKind:
		return float32(0)
	case Int32Kind, Sint32Kind, Sfixed32Kind:
		return int32(0)
	case Int64Kind, Sint64Kind, Sfixed64Kind:
		return int64(0)
	case Uint32Kind, Fixed32Kind:
		return uint32(0)
	case Uint64Kind, Fixed64Kind:
		return uint64(0)
	case BoolKind:
		return false
	case StringKind:
		return ""
	case BytesKind:
		return []byte{}
	default:
		return nil
	}
}

var _ object = (*Field)(nil)
