package schema

import "fmt"

// Validate walks the registry's top-level types and checks the invariants
// spec.md §8 names as testable properties, as a dedicated pre-use step
// separate from Resolve/Seal (grounded in prototype/validate.go's existence
// as its own pass rather than folded into resolution). It assumes Seal has
// already been called; an unresolved field is reported as a validation
// failure rather than attempted here.
func (r *Registry) Validate() error {
	for _, t := range r.Types() {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks name uniqueness, field id uniqueness, oneof ownership
// consistency (property #2: every oneof-owned field is a child of the
// oneof's parent, never both a child and absent, never neither), and that
// every field has been resolved, recursing into nested types.
func (t *Type) Validate() error {
	seen := make(map[string]bool, len(t.children))
	for _, c := range t.order {
		if seen[c.Name()] {
			return &DuplicateNameError{Namespace: t.FullName(), Name: c.Name()}
		}
		seen[c.Name()] = true
	}

	ids := make(map[int32]bool, len(t.fieldsArray))
	for _, f := range t.fieldsArray {
		if ids[f.ID] {
			return &DuplicateFieldNumberError{Message: t.FullName(), Number: f.ID}
		}
		ids[f.ID] = true
		if !f.Resolved() {
			return &ResolveError{Field: f.FullName(), TypeName: f.TypeName}
		}
		if f.partOf != nil {
			if f.parent != Parent(t) {
				return fmt.Errorf("schema: field %s claims oneof %s but is not a child of %s",
					f.FullName(), f.partOf.Name(), t.FullName())
			}
		}
	}
	for _, o := range t.oneofsArray {
		for _, owned := range o.owned {
			if owned.parent != Parent(t) {
				return fmt.Errorf("schema: oneof %s owns field %s which is not a child of %s",
					o.FullName(), owned.Name(), t.FullName())
			}
		}
	}
	for _, nt := range t.NestedTypes() {
		if err := nt.Validate(); err != nil {
			return err
		}
	}
	return nil
}
