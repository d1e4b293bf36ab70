package encode

import (
	"sync"

	"github.com/gopherbuf/protocore/instance"
	"github.com/gopherbuf/protocore/schema"
	"github.com/gopherbuf/protocore/wire"
)

// fieldFunc is one specialized per-field encoder, closing over the exact
// *schema.Field it was built for so a call site never has to re-dispatch
// on f.IsMap/f.Rule/f.Kind() the way marshalField does on every call.
type fieldFunc func(w *wire.Writer, msg *instance.Message, opts Options) error

type specialized struct {
	fieldFns []fieldFunc
}

var (
	specializedMu    sync.RWMutex
	specializedCache = map[*schema.Type]*specialized{}
)

// getSpecialized returns the cached specialized encoder for t, building
// and caching it on first use — the runtime-dispatch-table stand-in for
// the source's "synthesize at first use" code generation, following
// proto/properties.go's sync.RWMutex-guarded cache idiom (instance's
// prototypeFor uses the identical pattern for the same reason: Go has no
// runtime eval to synthesize actual machine code into).
func getSpecialized(t *schema.Type) *specialized {
	specializedMu.RLock()
	s, ok := specializedCache[t]
	specializedMu.RUnlock()
	if ok {
		return s
	}

	specializedMu.Lock()
	defer specializedMu.Unlock()
	if s, ok := specializedCache[t]; ok {
		return s
	}
	s = buildSpecialized(t)
	specializedCache[t] = s
	return s
}

// buildSpecialized compiles one fieldFunc per field, in fieldsArray order.
// Each closure captures its field directly; at call time the switch that
// marshalField performs on every reflective call has already been
// resolved once, here, at build time. The closures call the exact same
// marshalScalarField/marshalRepeated/marshalMap/marshalSingularMessage
// helpers the reflective path uses, which is what makes byte-identity
// with the reflective path (spec.md §8 property 7) structural rather than
// incidental: there is only one encoding of each field shape, just two
// ways of reaching it.
func buildSpecialized(t *schema.Type) *specialized {
	fields := t.Fields()
	fns := make([]fieldFunc, len(fields))
	for i, f := range fields {
		f := f
		switch {
		case f.IsMap:
			fns[i] = func(w *wire.Writer, msg *instance.Message, opts Options) error {
				v, err := msg.Get(f.Name())
				if err != nil {
					return err
				}
				return marshalMap(w, f, v, opts)
			}
		case f.Rule == schema.Repeated:
			fns[i] = func(w *wire.Writer, msg *instance.Message, opts Options) error {
				v, err := msg.Get(f.Name())
				if err != nil {
					return err
				}
				return marshalRepeated(w, f, v, opts)
			}
		case f.Kind() == schema.MessageKind:
			fns[i] = func(w *wire.Writer, msg *instance.Message, opts Options) error {
				v, err := msg.Get(f.Name())
				if err != nil {
					return err
				}
				return marshalSingularMessage(w, msg, f, v, opts)
			}
		case f.Kind().IsScalar() || f.Kind() == schema.EnumKind:
			fns[i] = func(w *wire.Writer, msg *instance.Message, opts Options) error {
				v, err := msg.Get(f.Name())
				if err != nil {
					return err
				}
				return marshalScalarField(w, f, v)
			}
		default:
			fns[i] = func(w *wire.Writer, msg *instance.Message, opts Options) error {
				return &EncodeError{Field: string(f.FullName()), Reason: "field has no resolved kind"}
			}
		}
	}
	return &specialized{fieldFns: fns}
}

// MarshalSpecialized encodes msg using the cached specialized path
// (spec.md §4.4), building it on first use for msg's Type. Its contract
// and output are identical to Marshal for every input.
func MarshalSpecialized(msg *instance.Message, opts Options) ([]byte, error) {
	w := wire.NewWriter()
	s := getSpecialized(msg.Type())
	for _, fn := range s.fieldFns {
		if err := fn(w, msg, opts); err != nil {
			return nil, err
		}
	}
	return w.Finish(), nil
}
