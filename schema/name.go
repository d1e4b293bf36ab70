package schema

import "strings"

// FullName is a dotted path uniquely identifying a declaration within a
// Registry, e.g. "pkg.Outer.Inner".
type FullName string

// Append returns the FullName produced by appending a single path segment.
func (n FullName) Append(name string) FullName {
	if n == "" {
		return FullName(name)
	}
	return n + "." + FullName(name)
}

// splitPath breaks a dotted path into its component names.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
