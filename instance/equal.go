package instance

import "reflect"

// Equal reports whether a and b are structurally equal: same Type,
// and every field slot (including nested messages, compared recursively)
// holds an equal value. Grounded in proto/equal.go's presence in the
// teacher, implemented over the accessor/slot model rather than struct-tag
// reflection since a Message has no exported fields to compare directly.
func Equal(a, b *Message) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.proto.typ != b.proto.typ {
		return false
	}
	if len(a.currentSet) != len(b.currentSet) {
		return false
	}
	for k, v := range a.currentSet {
		if bv, ok := b.currentSet[k]; !ok || bv != v {
			return false
		}
	}
	for i := range a.slots {
		if !equalValue(a.slots[i], b.slots[i]) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	am, aIsMsg := a.(*Message)
	bm, bIsMsg := b.(*Message)
	if aIsMsg || bIsMsg {
		if !aIsMsg || !bIsMsg {
			return false
		}
		return Equal(am, bm)
	}

	as, aIsSlice := a.([]any)
	bs, bIsSlice := b.([]any)
	if aIsSlice || bIsSlice {
		if !aIsSlice || !bIsSlice || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !equalValue(as[i], bs[i]) {
				return false
			}
		}
		return true
	}

	ae, aIsMap := a.([]MapEntry)
	be, bIsMap := b.([]MapEntry)
	if aIsMap || bIsMap {
		if !aIsMap || !bIsMap || len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if !equalValue(ae[i].Key, be[i].Key) || !equalValue(ae[i].Value, be[i].Value) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(a, b)
}
