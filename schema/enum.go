package schema

// Enum is a named mapping from symbolic value name to a 32-bit integer.
// Names are unique; integers may alias (multiple names sharing a number),
// matching spec.md §3's Enum invariant.
type Enum struct {
	base

	valuesByName  map[string]int32
	namesByNumber map[int32][]string // insertion order per number, for alias-aware lookup
	order         []string           // declaration order of value names
}

// NewEnum constructs a detached Enum with the given symbolic values. Only
// names listed in order are kept, in that order; the first name in order
// becomes the zero/default value per spec.md §3's Field.defaultValue
// derivation for enum-typed fields.
func NewEnum(name string, values map[string]int32, order []string, options map[string]any) *Enum {
	e := &Enum{
		base:          base{name: name, options: options},
		valuesByName:  make(map[string]int32, len(values)),
		namesByNumber: make(map[int32][]string, len(values)),
		order:         append([]string(nil), order...),
	}
	for _, name := range order {
		n := values[name]
		e.valuesByName[name] = n
		e.namesByNumber[n] = append(e.namesByNumber[n], name)
	}
	return e
}

// FullName returns the dotted path of this enum within its Registry.
func (e *Enum) FullName() FullName {
	if e.parent == nil {
		return FullName(e.name)
	}
	return e.parent.FullName().Append(e.name)
}

// ValueOf returns the integer bound to a value name.
func (e *Enum) ValueOf(name string) (int32, bool) {
	v, ok := e.valuesByName[name]
	return v, ok
}

// NameOf returns the first-declared name bound to number n, implementing
// the alias-resolution rule from reflect/protoreflect's
// EnumValueDescriptors.ByNumber contract: "If multiple have the same
// number, the first one defined is returned."
func (e *Enum) NameOf(n int32) (string, bool) {
	names := e.namesByNumber[n]
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

// Values returns the value names in declaration order.
func (e *Enum) Values() []string { return append([]string(nil), e.order...) }

// Zero returns the enum's default value: the integer bound to the first
// declared value name.
func (e *Enum) Zero() int32 {
	if len(e.order) == 0 {
		return 0
	}
	v, _ := e.valuesByName[e.order[0]]
	return v
}

var _ object = (*Enum)(nil)
