package wire

// WireType is the 3-bit on-wire framing classifier from spec.md §6. The
// wire package defines its own copy rather than importing schema's Kind-
// to-WireType table: per spec.md §1, the Writer is an external
// collaborator the encoder treats as a black box, so it carries only the
// wire-level vocabulary, not the schema's kind model.
type WireType uint8

const (
	VarintType WireType = 0
	Fixed64Type WireType = 1
	BytesType   WireType = 2
	Fixed32Type WireType = 5
)
