package schema

// Type is a message declaration: a namespace of fields, oneofs, nested
// message types, and nested enums. It is the concrete Parent implementation
// most schema graphs are built from (the other being the root Registry).
// See spec.md §3/§4.1.
type Type struct {
	base

	children map[string]object
	order    []object // insertion order, used to derive fieldsArray/oneofsArray

	fieldIDs    map[int32]*Field
	fieldsArray []*Field
	oneofsArray []*OneOf
}

// NewType constructs a detached, empty message Type.
func NewType(name string, options map[string]any) *Type {
	return &Type{
		base:     base{name: name, options: options},
		children: make(map[string]object),
		fieldIDs: make(map[int32]*Field),
	}
}

// FullName returns the dotted path of this type within its Registry.
func (t *Type) FullName() FullName {
	if t.parent == nil {
		return FullName(t.name)
	}
	return t.parent.FullName().Append(t.name)
}

func (t *Type) enclosing() Parent { return t.parent }

func (t *Type) get(name string) (object, bool) {
	child, ok := t.children[name]
	return child, ok
}

// add attaches child under t, implementing spec.md §4.1's Namespace.add:
// reject a duplicate sibling name, reject a duplicate field id among
// *Field children, detach child from any previous parent, then run
// child.onAdd. A failing onAdd rolls the attachment back so t is left
// exactly as it was before the call.
func (t *Type) add(child object) error {
	name := child.Name()
	if _, exists := t.children[name]; exists {
		return &DuplicateNameError{Namespace: t.FullName(), Name: name}
	}
	if f, ok := child.(*Field); ok {
		if _, dup := t.fieldIDs[f.ID]; dup {
			return &DuplicateFieldNumberError{Message: t.FullName(), Number: f.ID}
		}
	}
	if prev := child.objParent(); prev != nil && prev != Parent(t) {
		if err := prev.remove(child); err != nil {
			return err
		}
	}

	t.children[name] = child
	t.order = append(t.order, child)
	switch c := child.(type) {
	case *Field:
		t.fieldIDs[c.ID] = c
		t.fieldsArray = append(t.fieldsArray, c)
	case *OneOf:
		t.oneofsArray = append(t.oneofsArray, c)
	}
	child.setParent(t)

	if err := child.onAdd(t); err != nil {
		t.removeChild(child)
		child.setParent(nil)
		return err
	}
	return nil
}

func (t *Type) remove(child object) error {
	name := child.Name()
	existing, ok := t.children[name]
	if !ok || existing != child {
		return &NotFoundError{Namespace: t.FullName(), Name: name}
	}
	child.onRemove(t)
	t.removeChild(child)
	child.setParent(nil)
	return nil
}

func (t *Type) removeChild(child object) {
	name := child.Name()
	delete(t.children, name)
	for i, c := range t.order {
		if c == child {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	switch c := child.(type) {
	case *Field:
		delete(t.fieldIDs, c.ID)
		for i, f := range t.fieldsArray {
			if f == c {
				t.fieldsArray = append(t.fieldsArray[:i], t.fieldsArray[i+1:]...)
				break
			}
		}
	case *OneOf:
		for i, o := range t.oneofsArray {
			if o == c {
				t.oneofsArray = append(t.oneofsArray[:i], t.oneofsArray[i+1:]...)
				break
			}
		}
	}
}

// Add attaches a *Field, *OneOf, *Type, or *Enum as a direct child of t.
func (t *Type) Add(child any) error {
	o, ok := child.(object)
	if !ok {
		return &TypeError{Op: "Type.Add", Expected: "schema object", Got: child}
	}
	return t.add(o)
}

// Remove detaches a direct child of t.
func (t *Type) Remove(child any) error {
	o, ok := child.(object)
	if !ok {
		return &TypeError{Op: "Type.Remove", Expected: "schema object", Got: child}
	}
	return t.remove(o)
}

// Get performs a direct (non-dotted) child lookup.
func (t *Type) Get(name string) (any, bool) { return t.get(name) }

// Fields returns this message's declared fields, in the declaration order
// established by Add (which, for oneof-owned fields, is promotion order —
// not wire id order), matching fieldsArray from spec.md §4.1.
func (t *Type) Fields() []*Field { return append([]*Field(nil), t.fieldsArray...) }

// OneOfs returns this message's declared oneofs in declaration order,
// matching oneofsArray from spec.md §4.1.
func (t *Type) OneOfs() []*OneOf { return append([]*OneOf(nil), t.oneofsArray...) }

// NestedTypes returns this message's nested message types in declaration
// order.
func (t *Type) NestedTypes() []*Type {
	var out []*Type
	for _, c := range t.order {
		if nt, ok := c.(*Type); ok {
			out = append(out, nt)
		}
	}
	return out
}

// NestedEnums returns this message's nested enums in declaration order.
func (t *Type) NestedEnums() []*Enum {
	var out []*Enum
	for _, c := range t.order {
		if e, ok := c.(*Enum); ok {
			out = append(out, e)
		}
	}
	return out
}

// FieldByID returns the field with the given wire tag number, if any.
func (t *Type) FieldByID(id int32) (*Field, bool) {
	f, ok := t.fieldIDs[id]
	return f, ok
}

// FieldByName returns the direct field child with the given name, if any.
func (t *Type) FieldByName(name string) (*Field, bool) {
	c, ok := t.children[name]
	if !ok {
		return nil, false
	}
	f, ok := c.(*Field)
	return f, ok
}

var _ object = (*Type)(nil)
var _ Parent = (*Type)(nil)
