package schema

// Parent is implemented by every node capable of owning children: *Type and
// the root *Registry. It is the namespace half of the ReflectionObject
// contract described in spec.md §4.1.
type Parent interface {
	FullName() FullName

	// get performs a direct child lookup (no path walking).
	get(name string) (object, bool)

	// add attaches child under this parent, rejecting a duplicate sibling
	// name, detaching child from any previous parent first. It fires
	// child.onAdd on success.
	add(child object) error

	// remove detaches child, firing child.onRemove. It is an error if
	// child is not currently a child of this parent.
	remove(child object) error

	// enclosing returns the scope one level up, or nil at the root. Used
	// by lookup to walk upward when a dotted path doesn't resolve at the
	// current scope.
	enclosing() Parent
}

// object is implemented by every named schema entity: Enum, Field, OneOf,
// and Type. It mirrors spec.md §3's abstract ReflectionObject: a name, an
// options map, and a weak parent back-reference with onAdd/onRemove
// lifecycle hooks fired by Parent.add/remove.
type object interface {
	Name() string
	Options() map[string]any

	objParent() Parent
	setParent(Parent)

	// onAdd/onRemove run the type-specific attach/detach behavior (e.g.
	// OneOf's lazy field promotion). The default, inherited via embedding
	// base, is a no-op.
	onAdd(Parent) error
	onRemove(Parent)
}

// base is embedded by every concrete schema entity to supply the common
// ReflectionObject bookkeeping, matching the "detached by default, parent
// set on attach" lifecycle from spec.md §3.
type base struct {
	name    string
	options map[string]any
	parent  Parent
}

func (b *base) Name() string             { return b.name }
func (b *base) Options() map[string]any  { return b.options }
func (b *base) objParent() Parent        { return b.parent }
func (b *base) setParent(p Parent)       { b.parent = p }
func (b *base) onAdd(Parent) error       { return nil }
func (b *base) onRemove(Parent)          {}

// detachFromCurrentParent removes o from whatever Parent currently owns it,
// if any. Type.add and Registry.add perform the same detach inline before
// re-parenting rather than calling this helper.
func detachFromCurrentParent(o object) error {
	if p := o.objParent(); p != nil {
		return p.remove(o)
	}
	return nil
}
