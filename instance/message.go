package instance

import "github.com/gopherbuf/protocore/schema"

// Message is a fixed-shape instance of a schema.Type: one storage slot per
// field, plus a small table of which field (if any) is currently set in
// each of the type's oneofs. See spec.md §3's Instance data model.
type Message struct {
	proto *prototype
	slots []any

	// currentSet maps a oneof name to the slot index of the field
	// presently holding that oneof's value. Absence means no field of
	// that oneof is currently set.
	currentSet map[string]int

	// explicit tracks, for fields not claimed by any oneof, whether Set
	// has been called with a non-nil value since the last Clear. This is
	// the presence bit spec.md §4.3's strict/identity comparison needs
	// for message-kinded fields: a message field's "default" is a fresh
	// zero message, indistinguishable by value from an explicitly-set
	// zero message, so presence (not value) decides whether it encodes.
	explicit map[int]bool
}

// New builds a zero-valued instance of t: every field holds its default
// value (spec.md §3's defaultValue derivation), and no oneof has a field
// set. t must have had every field resolved (via Field.Resolve or
// Registry.Seal) before New is called.
func New(t *schema.Type) *Message {
	p := prototypeFor(t)
	m := &Message{
		proto:      p,
		slots:      make([]any, len(p.fields)),
		currentSet: make(map[string]int),
		explicit:   make(map[int]bool),
	}
	for i, f := range p.fields {
		m.slots[i] = eagerDefault(f)
	}
	return m
}

// Type returns the schema.Type this instance was built from.
func (m *Message) Type() *schema.Type { return m.proto.typ }

// FieldNames returns the instance's field names in declaration order.
func (m *Message) FieldNames() []string {
	names := make([]string, len(m.proto.fields))
	for i, f := range m.proto.fields {
		names[i] = f.Name()
	}
	return names
}

// Get returns the current value of field name: either an explicitly set
// value, or the field's default. Message-kinded fields that have never
// been set lazily materialize a fresh zero Message on first Get and cache
// it in the slot, so repeated Gets return the same object.
func (m *Message) Get(name string) (any, error) {
	idx, ok := m.proto.byName[name]
	if !ok {
		return nil, &schema.NotFoundError{Namespace: m.proto.typ.FullName(), Name: name}
	}
	f := m.proto.fields[idx]
	v := m.slots[idx]
	if v == nil && f.Rule != schema.Repeated && f.Kind() == schema.MessageKind {
		v = New(f.ResolvedMessage())
		m.slots[idx] = v
	}
	return v, nil
}

// Set implements spec.md §4.2's setter decision table. A nil value means
// "unset" (the u branches of the table); any other value is stored
// directly.
func (m *Message) Set(name string, value any) error {
	idx, ok := m.proto.byName[name]
	if !ok {
		return &schema.NotFoundError{Namespace: m.proto.typ.FullName(), Name: name}
	}
	f := m.proto.fields[idx]
	unset := value == nil
	oneofName, inOneof := m.proto.slotOneof[idx]

	if !inOneof {
		if unset {
			delete(m.explicit, idx)
			m.slots[idx] = eagerDefault(f)
		} else {
			m.explicit[idx] = true
			m.slots[idx] = value
		}
		return nil
	}

	if unset {
		if cur, ok := m.currentSet[oneofName]; ok && cur == idx {
			delete(m.currentSet, oneofName)
		}
		m.slots[idx] = eagerDefault(f)
		return nil
	}

	if cur, ok := m.currentSet[oneofName]; ok && cur != idx {
		m.slots[cur] = eagerDefault(m.proto.fields[cur])
	}
	m.slots[idx] = value
	m.currentSet[oneofName] = idx
	return nil
}

// Clear is equivalent to Set(name, nil): it applies the table's "u"
// branches.
func (m *Message) Clear(name string) error { return m.Set(name, nil) }

// HasField reports whether name currently holds an explicitly set value:
// for a field claimed by a oneof, whether it is the currently-set member;
// otherwise, whether Set has been called with a non-nil value since the
// last Clear.
func (m *Message) HasField(name string) (bool, error) {
	idx, ok := m.proto.byName[name]
	if !ok {
		return false, &schema.NotFoundError{Namespace: m.proto.typ.FullName(), Name: name}
	}
	if oneofName, inOneof := m.proto.slotOneof[idx]; inOneof {
		cur, ok := m.currentSet[oneofName]
		return ok && cur == idx, nil
	}
	return m.explicit[idx], nil
}

// OneofWhichSet returns the name of the field currently set in the oneof
// named oneofName, implementing spec.md §4.2's read-only oneof accessor.
func (m *Message) OneofWhichSet(oneofName string) (string, bool) {
	idx, ok := m.currentSet[oneofName]
	if !ok {
		return "", false
	}
	return m.proto.fields[idx].Name(), true
}

// eagerDefault computes the value New (and a Set/Clear "unset" branch)
// stores for f without deferring: scalar/enum zero values and empty
// repeated/map collections are cheap and never recursive, so they are
// always computed eagerly. Message-kinded fields store nil here, which
// Get's lazy path turns into a fresh zero Message on first read — computing
// it eagerly in New would recurse without end for any self-referential
// schema (a field whose type is its own enclosing message, or a cycle of
// message types).
func eagerDefault(f *schema.Field) any {
	if f.Rule == schema.Repeated {
		if f.IsMap {
			return []MapEntry{}
		}
		return []any{}
	}
	if f.Kind() == schema.MessageKind {
		return nil
	}
	return f.ScalarDefault()
}
