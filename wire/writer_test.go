package wire

import (
	"bytes"
	"testing"
)

func TestVarint(t *testing.T) {
	cases := []struct {
		x    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{150, []byte{0x96, 0x01}},
		{300, []byte{0xac, 0x02}},
	}
	for _, c := range cases {
		w := NewWriter()
		w.Varint(c.x)
		if got := w.Finish(); !bytes.Equal(got, c.want) {
			t.Errorf("Varint(%d) = % x, want % x", c.x, got, c.want)
		}
	}
}

func TestZigzag(t *testing.T) {
	w := NewWriter()
	w.Zigzag32(-1)
	if got, want := w.Finish(), []byte{0x01}; !bytes.Equal(got, want) {
		t.Errorf("Zigzag32(-1) = % x, want % x", got, want)
	}

	w = NewWriter()
	w.Zigzag64(-2)
	if got, want := w.Finish(), []byte{0x03}; !bytes.Equal(got, want) {
		t.Errorf("Zigzag64(-2) = % x, want % x", got, want)
	}
}

func TestFixed(t *testing.T) {
	w := NewWriter()
	w.Fixed32(1)
	if got, want := w.Finish(), []byte{0x01, 0x00, 0x00, 0x00}; !bytes.Equal(got, want) {
		t.Errorf("Fixed32(1) = % x, want % x", got, want)
	}

	w = NewWriter()
	w.Fixed64(1)
	if got, want := w.Finish(), []byte{0x01, 0, 0, 0, 0, 0, 0, 0}; !bytes.Equal(got, want) {
		t.Errorf("Fixed64(1) = % x, want % x", got, want)
	}
}

func TestTag(t *testing.T) {
	w := NewWriter()
	w.Tag(1, VarintType)
	if got, want := w.Finish(), []byte{0x08}; !bytes.Equal(got, want) {
		t.Errorf("Tag(1, varint) = % x, want % x", got, want)
	}
}

// TestForkLdelimSingleByteLength covers the common case where the
// reserved single byte is enough (spec.md §8 scenario S4's map entries).
func TestForkLdelimSingleByteLength(t *testing.T) {
	w := NewWriter()
	w.Tag(7, BytesType)
	w.Fork()
	w.Tag(1, BytesType)
	w.String("a")
	w.Tag(2, VarintType)
	w.Varint(1)
	w.Ldelim()

	want := []byte{0x3a, 0x05, 0x0a, 0x01, 0x61, 0x10, 0x01}
	if got := w.Finish(); !bytes.Equal(got, want) {
		t.Errorf("map entry = % x, want % x", got, want)
	}
}

// TestForkLdelimLengthShift covers the case where the payload exceeds 127
// bytes and the speculative single-byte length must grow, shifting the
// payload right.
func TestForkLdelimLengthShift(t *testing.T) {
	w := NewWriter()
	w.Fork()
	for i := 0; i < 200; i++ {
		w.buf = append(w.buf, 'x')
	}
	w.Ldelim()

	got := w.Finish()
	if len(got) != 2+200 {
		t.Fatalf("len = %d, want %d", len(got), 2+200)
	}
	if got[0] != 0xc8 || got[1] != 0x01 {
		t.Fatalf("length prefix = % x, want varint(200) = c8 01", got[:2])
	}
}

func TestLdelimWithoutForkPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling Ldelim with no open Fork")
		}
	}()
	NewWriter().Ldelim()
}

// TestOpenTracksForkNestingDepth covers spec.md §8 property 8: Open()
// reports the live nesting depth, zero only once every Fork has a
// matching Ldelim.
func TestOpenTracksForkNestingDepth(t *testing.T) {
	w := NewWriter()
	if w.Open() != 0 {
		t.Fatalf("Open() = %d on a fresh Writer, want 0", w.Open())
	}
	w.Fork()
	w.Fork()
	if w.Open() != 2 {
		t.Fatalf("Open() = %d after two Forks, want 2", w.Open())
	}
	w.Ldelim()
	if w.Open() != 1 {
		t.Fatalf("Open() = %d after one Ldelim, want 1", w.Open())
	}
	w.Ldelim()
	if w.Open() != 0 {
		t.Fatalf("Open() = %d after closing every Fork, want 0", w.Open())
	}
	w.Finish()
}

func TestLenGrowsWithWrites(t *testing.T) {
	w := NewWriter()
	if w.Len() != 0 {
		t.Fatalf("Len() = %d on a fresh Writer, want 0", w.Len())
	}
	w.Tag(1, VarintType)
	if w.Len() != 1 {
		t.Fatalf("Len() = %d after Tag, want 1", w.Len())
	}
	w.Fork()
	if w.Len() != 1+speculativeLength {
		t.Fatalf("Len() = %d after Fork, want %d", w.Len(), 1+speculativeLength)
	}
}

func TestFinishWithOpenForkPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling Finish with an open Fork")
		}
	}()
	w := NewWriter()
	w.Fork()
	w.Finish()
}

// TestPackedRepeatedScalars covers spec.md §8 scenario S3.
func TestPackedRepeatedScalars(t *testing.T) {
	w := NewWriter()
	w.Tag(3, BytesType)
	w.Fork()
	for _, v := range []uint64{1, 2, 150} {
		w.Varint(v)
	}
	w.Ldelim()

	want := []byte{0x1a, 0x04, 0x01, 0x02, 0x96, 0x01}
	if got := w.Finish(); !bytes.Equal(got, want) {
		t.Errorf("packed repeated = % x, want % x", got, want)
	}
}
