package schema

// lookup implements spec.md §4.1's Namespace.lookup: a dotted-path walk
// starting at scope, trying each ancestor scope in turn until a match is
// found. At each ancestor, the full dotted path is resolved as a chain of
// direct child lookups (so "pkg.Outer.Inner" can match a nested Type two
// levels down from wherever the walk currently is).
func lookup(scope Parent, path string) (object, bool) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil, false
	}
	for s := scope; s != nil; s = s.enclosing() {
		if obj, ok := lookupSegments(s, segments); ok {
			return obj, true
		}
	}
	return nil, false
}

func lookupSegments(scope Parent, segments []string) (object, bool) {
	var cur object
	curParent := scope
	for i, seg := range segments {
		child, ok := curParent.get(seg)
		if !ok {
			return nil, false
		}
		cur = child
		if i == len(segments)-1 {
			break
		}
		next, ok := child.(Parent)
		if !ok {
			return nil, false
		}
		curParent = next
	}
	return cur, cur != nil
}
