// Package codegen implements the code-builder facility from spec.md
// §4.4/§2 row 6: a small line-buffer used to render a specialized
// encoder's dispatch table as Go source text, for a caller to inspect,
// diff, or drop into a golden file. Go has no runtime evaluator, so this
// text is never compiled and executed at runtime — the actual specialized
// execution path (package encode's cached closure table) is built
// directly, not through this text. The P(args...) line-builder idiom and
// variadic-concatenation-per-call convention follow
// cmd/protoc-gen-go/internal_gengo's g.P(...) calls throughout oneof.go
// and reflect.go.
package codegen

import (
	"bytes"
	"fmt"

	"golang.org/x/tools/imports"
)

// Builder accumulates source lines with g.P-style variadic concatenation:
// each call to P joins its arguments (stringified) into one line.
type Builder struct {
	buf    bytes.Buffer
	indent int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// P appends one line built by concatenating the string form of each
// argument, prefixed by the current indentation. P() with no arguments
// emits a blank line, matching g.P()'s use as a paragraph break in the
// teacher's generator calls.
func (b *Builder) P(args ...any) {
	for i := 0; i < b.indent; i++ {
		b.buf.WriteString("\t")
	}
	for _, a := range args {
		fmt.Fprint(&b.buf, a)
	}
	b.buf.WriteByte('\n')
}

// In increases the indentation of subsequent P calls by one tab.
func (b *Builder) In() { b.indent++ }

// Out decreases the indentation of subsequent P calls by one tab.
func (b *Builder) Out() {
	if b.indent > 0 {
		b.indent--
	}
}

// Format runs the accumulated source through golang.org/x/tools/imports,
// which both gofmt-formats it and resolves/sorts its import block —
// exactly the step cmd/protoc-gen-go applies to generated .pb.go text
// before writing it out.
func (b *Builder) Format() ([]byte, error) {
	return imports.Process("", b.buf.Bytes(), nil)
}

// String returns the unformatted accumulated source, for callers that
// want to inspect the raw P() output before (or instead of) formatting.
func (b *Builder) String() string { return b.buf.String() }
