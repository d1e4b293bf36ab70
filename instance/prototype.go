// Package instance implements the message instance model from spec.md
// §4.2: a fixed-shape record per Type with per-field get/set accessors
// that enforce oneof mutual exclusion and default-value normalization,
// built once per schema.Type and shared by every instance of that type —
// the design note §9 calls for "one concrete message struct per Type ...
// or retain a reflective instance keyed by a small-integer field-index to
// preserve the fixed shape". protocore takes the latter: a prototype
// (field name -> slot index, oneof membership) is computed once per Type
// and cached, the way proto/properties.go memoizes a struct's field
// Properties behind a mutex instead of a sync.Once on the Type itself
// (avoiding any instance-package-specific field on schema.Type).
package instance

import (
	"sync"

	"github.com/gopherbuf/protocore/schema"
)

type prototype struct {
	typ    *schema.Type
	fields []*schema.Field   // slot index -> field, in fieldsArray order
	byName map[string]int    // field name -> slot index

	// oneofSlots maps a oneof name to the slot indices of the fields it
	// claims. Set does not consult it: it resets only the one sibling
	// recorded in Message.currentSet.
	oneofSlots map[string][]int
	// slotOneof maps a slot index to the oneof name claiming it, if any.
	slotOneof map[int]string
}

var (
	prototypesMu sync.RWMutex
	prototypes   = map[*schema.Type]*prototype{}
)

// prototypeFor returns the cached prototype for t, building and caching
// it on first use.
func prototypeFor(t *schema.Type) *prototype {
	prototypesMu.RLock()
	p, ok := prototypes[t]
	prototypesMu.RUnlock()
	if ok {
		return p
	}

	prototypesMu.Lock()
	defer prototypesMu.Unlock()
	if p, ok := prototypes[t]; ok {
		return p
	}
	p = buildPrototype(t)
	prototypes[t] = p
	return p
}

func buildPrototype(t *schema.Type) *prototype {
	fields := t.Fields()
	p := &prototype{
		typ:        t,
		fields:     fields,
		byName:     make(map[string]int, len(fields)),
		oneofSlots: make(map[string][]int),
		slotOneof:  make(map[int]string),
	}
	for i, f := range fields {
		p.byName[f.Name()] = i
		if o := f.PartOf(); o != nil {
			p.oneofSlots[o.Name()] = append(p.oneofSlots[o.Name()], i)
			p.slotOneof[i] = o.Name()
		}
	}
	return p
}
