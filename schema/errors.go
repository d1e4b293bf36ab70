package schema

import "fmt"

// TypeError reports that an argument passed to a graph operation was not of
// the expected shape, e.g. OneOf.Add given a non-*Field.
type TypeError struct {
	Op       string
	Expected string
	Got      any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("schema: %s: expected %s, got %T", e.Op, e.Expected, e.Got)
}

// DuplicateNameError reports that Parent.add would create a same-named
// sibling.
type DuplicateNameError struct {
	Namespace FullName
	Name      string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("schema: %q already defined in %q", e.Name, e.Namespace)
}

// DuplicateFieldNumberError reports that a Field's id collides with another
// field already owned (directly or via a promoted OneOf) by the same
// message Type. Spec.md §3 requires id uniqueness per enclosing message but
// names no dedicated error kind for it; this is kept distinct from
// DuplicateNameError because the colliding fields need not share a name.
type DuplicateFieldNumberError struct {
	Message FullName
	Number  int32
}

func (e *DuplicateFieldNumberError) Error() string {
	return fmt.Sprintf("schema: field number %d already used in message %q", e.Number, e.Message)
}

// NotFoundError reports that a remove or lookup target does not exist in
// the expected parent.
type NotFoundError struct {
	Namespace FullName
	Name      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schema: %q not found in %q", e.Name, e.Namespace)
}

// ResolveError reports that a Field's named type reference could not be
// found from its enclosing scope.
type ResolveError struct {
	Field    FullName
	TypeName string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("schema: field %q: cannot resolve type %q", e.Field, e.TypeName)
}
