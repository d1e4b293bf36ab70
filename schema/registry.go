package schema

import "golang.org/x/sync/errgroup"

// Registry is the root of a schema graph: a namespace of top-level message
// Types and Enums with no name of its own. It is the caller-constructed
// replacement for a package-level global registry, per the teacher's
// protoregistry.Types/protoregistry.Files shape minus the global default
// instance.
type Registry struct {
	children map[string]object
	order    []object
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{children: make(map[string]object)}
}

// FullName is always empty for the root registry.
func (r *Registry) FullName() FullName { return "" }

func (r *Registry) enclosing() Parent { return nil }

func (r *Registry) get(name string) (object, bool) {
	child, ok := r.children[name]
	return child, ok
}

func (r *Registry) add(child object) error {
	name := child.Name()
	if _, exists := r.children[name]; exists {
		return &DuplicateNameError{Namespace: r.FullName(), Name: name}
	}
	if prev := child.objParent(); prev != nil && prev != Parent(r) {
		if err := prev.remove(child); err != nil {
			return err
		}
	}
	r.children[name] = child
	r.order = append(r.order, child)
	child.setParent(r)
	if err := child.onAdd(r); err != nil {
		delete(r.children, name)
		r.order = r.order[:len(r.order)-1]
		child.setParent(nil)
		return err
	}
	return nil
}

func (r *Registry) remove(child object) error {
	name := child.Name()
	existing, ok := r.children[name]
	if !ok || existing != child {
		return &NotFoundError{Namespace: r.FullName(), Name: name}
	}
	child.onRemove(r)
	delete(r.children, name)
	for i, c := range r.order {
		if c == child {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	child.setParent(nil)
	return nil
}

// Register adds a top-level *Type or *Enum to the registry.
func (r *Registry) Register(top any) error {
	o, ok := top.(object)
	if !ok {
		return &TypeError{Op: "Registry.Register", Expected: "*schema.Type or *schema.Enum", Got: top}
	}
	return r.add(o)
}

// Unregister removes a top-level *Type or *Enum from the registry.
func (r *Registry) Unregister(top any) error {
	o, ok := top.(object)
	if !ok {
		return &TypeError{Op: "Registry.Unregister", Expected: "*schema.Type or *schema.Enum", Got: top}
	}
	return r.remove(o)
}

// TypeByName returns a registered top-level Type, walking into nested
// message scopes for a dotted name.
func (r *Registry) TypeByName(name string) (*Type, bool) {
	obj, ok := lookup(r, name)
	if !ok {
		return nil, false
	}
	t, ok := obj.(*Type)
	return t, ok
}

// EnumByName returns a registered top-level Enum, walking into nested
// message scopes for a dotted name.
func (r *Registry) EnumByName(name string) (*Enum, bool) {
	obj, ok := lookup(r, name)
	if !ok {
		return nil, false
	}
	e, ok := obj.(*Enum)
	return e, ok
}

// Types returns the top-level message types in registration order.
func (r *Registry) Types() []*Type {
	var out []*Type
	for _, c := range r.order {
		if t, ok := c.(*Type); ok {
			out = append(out, t)
		}
	}
	return out
}

// Enums returns the top-level enums in registration order.
func (r *Registry) Enums() []*Enum {
	var out []*Enum
	for _, c := range r.order {
		if e, ok := c.(*Enum); ok {
			out = append(out, e)
		}
	}
	return out
}

// Seal resolves every field reachable from the registry's top-level types,
// in parallel, returning the first ResolveError encountered (if any). It
// mirrors the teacher's errgroup-based fan-out used for concurrent work
// with a shared first-error result, adapted here to schema resolution
// instead of network calls.
func (r *Registry) Seal() error {
	fields := collectFields(r.Types())
	var g errgroup.Group
	for _, f := range fields {
		f := f
		g.Go(f.Resolve)
	}
	return g.Wait()
}

func collectFields(types []*Type) []*Field {
	var out []*Field
	for _, t := range types {
		out = append(out, t.Fields()...)
		out = append(out, collectFields(t.NestedTypes())...)
	}
	return out
}

var _ Parent = (*Registry)(nil)
