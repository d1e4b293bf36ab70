// Package encode implements spec.md §4.3/§4.4's two encoder paths: a
// reflective encoder that walks a schema.Type's fieldsArray directly, and
// a specialized path that caches a per-field closure dispatch table built
// once per Type (component 6 in spec.md §2's table — the codegen package
// additionally renders that same dispatch as inspectable Go source text).
// Both paths share the same field-emission rules and must be byte
// identical, per spec.md §8 property 7.
package encode

// Options configures Marshal. Deterministic controls map-key ordering,
// mirrored from blastbao-protobuf-go__encode.go's MarshalOptions.Deterministic:
// protocore doesn't carry that file's other knobs (AllowPartial,
// UseCachedSize) because there is no size-caching path here and partial
// messages are not a concept this core's required-field emission rule
// distinguishes.
type Options struct {
	// Deterministic, when true, sorts map entries by key before encoding
	// (spec.md §4.3's "each key in insertion order of the key listing" is
	// the default; Deterministic overrides it with a stable sort: strings
	// lexicographically, integers numerically, false before true), so two
	// maps holding the same entries in different insertion orders encode
	// to the same bytes.
	Deterministic bool
}
