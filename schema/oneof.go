package schema

// OneOf is a group of fields of which at most one may carry a value in any
// given message instance. A OneOf can be built in isolation — given a
// name and a set of fields — before it has any message parent; attaching
// it to a Type promotes every field it currently owns into that Type as a
// first-class child, per spec.md §4.1.
type OneOf struct {
	base

	declared []string // field names claimed by this oneof, in declaration order
	owned    []*Field // fields added directly to this oneof
}

// NewOneOf constructs a detached OneOf claiming the given field names.
// Names may name fields that do not exist yet; Add attaches the concrete
// Field objects as they become available.
func NewOneOf(name string, declaredNames []string, options map[string]any) *OneOf {
	return &OneOf{
		base:     base{name: name, options: options},
		declared: append([]string(nil), declaredNames...),
	}
}

// FullName returns the dotted path of this oneof within its Registry.
func (o *OneOf) FullName() FullName {
	if o.parent == nil {
		return FullName(o.name)
	}
	return o.parent.FullName().Append(o.name)
}

// Fields returns the fields currently owned by this oneof, in the order
// they were added.
func (o *OneOf) Fields() []*Field { return append([]*Field(nil), o.owned...) }

// Add claims field for this oneof. If field currently belongs to a message
// (field.parent != nil), it is detached from that message first. field's
// membership is then recorded (partOf set), but field.parent is left
// alone — unless this oneof is itself already attached to a message, in
// which case field is immediately promoted into that message too, so the
// final shape (field is a child of the message, and partOf still points
// here) is identical no matter which order Add and message-attachment
// happen in.
func (o *OneOf) Add(field any) error {
	f, ok := field.(*Field)
	if !ok {
		return &TypeError{Op: "OneOf.Add", Expected: "*schema.Field", Got: field}
	}
	for _, existing := range o.owned {
		if existing == f {
			return nil // already owned; Add is idempotent for the same field.
		}
	}
	if f.parent != nil {
		if err := f.parent.remove(f); err != nil {
			return err
		}
	}
	o.owned = append(o.owned, f)
	if !containsString(o.declared, f.name) {
		o.declared = append(o.declared, f.name)
	}
	f.partOf = o

	if o.parent != nil && f.parent == nil {
		if err := o.parent.add(f); err != nil {
			return err
		}
	}
	return nil
}

// Remove releases field from this oneof. It is an error if field is not
// currently owned by o. If field is a child of a message, it is detached
// from that message as well; field.partOf is cleared.
func (o *OneOf) Remove(field *Field) error {
	idx := -1
	for i, existing := range o.owned {
		if existing == field {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &NotFoundError{Namespace: o.FullName(), Name: field.name}
	}
	o.owned = append(o.owned[:idx], o.owned[idx+1:]...)
	o.declared = removeString(o.declared, field.name)
	if field.parent != nil {
		if err := field.parent.remove(field); err != nil {
			return err
		}
	}
	field.partOf = nil
	return nil
}

// onAdd promotes every currently-owned field that lacks a message parent
// into the newly attached parent, implementing the lazy-promotion rule
// from spec.md §4.1. If one promotion fails, the fields already promoted
// by this call are removed from parent again before the error is returned.
func (o *OneOf) onAdd(parent Parent) error {
	var promoted []*Field
	for _, f := range o.owned {
		if f.parent == nil {
			if err := parent.add(f); err != nil {
				for _, p := range promoted {
					_ = parent.remove(p)
				}
				return err
			}
			promoted = append(promoted, f)
		}
	}
	return nil
}

// onRemove detaches every owned field from the message before the oneof
// itself is detached, so a removed oneof never leaves orphaned fields
// behind in the old parent.
func (o *OneOf) onRemove(parent Parent) {
	for _, f := range o.owned {
		if f.parent == parent {
			_ = parent.remove(f)
		}
	}
}

func containsString(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func removeString(ss []string, s string) []string {
	out := ss[:0]
	for _, x := range ss {
		if x != s {
			out = append(out, x)
		}
	}
	return out
}

var _ object = (*OneOf)(nil)
