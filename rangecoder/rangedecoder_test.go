package rangecoder

import (
	"bytes"
	"testing"
)

func newGoldenDecoder(t *testing.T) *Decoder {
	t.Helper()
	d := NewDecoder(bytes.NewReader(goldenBytes))
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return d
}

func TestDecoderStart(t *testing.T) {
	d := newGoldenDecoder(t)
	if d.Length() != 4294967295 {
		t.Errorf("length = %d, want 4294967295", d.Length())
	}
	if d.Value() != 2908556787 {
		t.Errorf("value = %d, want 2908556787", d.Value())
	}
}

func TestReadBits32(t *testing.T) {
	d := newGoldenDecoder(t)
	v, err := d.ReadBits(32)
	if err != nil {
		t.Fatalf("ReadBits: %v", err)
	}
	if v != 3142626653 {
		t.Errorf("ReadBits(32) = %d, want 3142626653", v)
	}
}

func TestReadBitsSequence(t *testing.T) {
	d := newGoldenDecoder(t)

	steps := []struct {
		bits       uint
		wantValue  uint32
		wantLength uint32
	}{
		{1, 1, 2147483647},
		{2, 1, 536870911},
		{3, 3, 67108863},
		{8, 87, 67108608},
	}

	for _, s := range steps {
		v, err := d.ReadBits(s.bits)
		if err != nil {
			t.Fatalf("ReadBits(%d): %v", s.bits, err)
		}
		if v != s.wantValue {
			t.Errorf("ReadBits(%d) = %d, want %d", s.bits, v, s.wantValue)
		}
		if d.Length() != s.wantLength {
			t.Errorf("after ReadBits(%d) length = %d, want %d", s.bits, d.Length(), s.wantLength)
		}
	}
}

func TestDecodeBitSequence(t *testing.T) {
	d := newGoldenDecoder(t)
	m := &BitModel{}
	m.Init()

	want := []int{
		1, 0, 1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 0, 1, 0, 0,
		0, 0, 1, 1, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 0,
		0, 0, 0, 0, 0, 0, 1, 1, 1, 0, 1, 0, 0, 0, 0, 0,
		1, 1, 1, 1, 1, 0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0,
	}

	for i, w := range want {
		b, err := d.DecodeBit(m)
		if err != nil {
			t.Fatalf("DecodeBit[%d]: %v", i, err)
		}
		if b != w {
			t.Errorf("DecodeBit[%d] = %d, want %d", i, b, w)
		}
		if d.Length() < acMinLength {
			t.Errorf("DecodeBit[%d]: length invariant violated: %d", i, d.Length())
		}
	}
}

func TestDecodeSymbolSequence(t *testing.T) {
	d := newGoldenDecoder(t)
	m := NewSymbolModel(8)
	m.Init()

	want := []int{
		5, 3, 2, 5, 6, 6, 7, 2, 6, 5, 1, 6, 5, 3, 5, 3,
		4, 7, 7, 3, 6, 6, 5, 1, 6, 7, 3, 5, 6, 7, 7, 4,
		6, 6, 5, 6, 7, 6, 1, 5, 7, 6, 5, 5, 6, 7, 7, 6,
		5, 5, 7, 7, 0, 5, 7, 6, 6, 6, 6, 2, 5, 5, 5, 7,
	}

	for i, w := range want {
		s, err := d.DecodeSymbol(m)
		if err != nil {
			t.Fatalf("DecodeSymbol[%d]: %v", i, err)
		}
		if s != w {
			t.Errorf("DecodeSymbol[%d] = %d, want %d", i, s, w)
		}
		if d.Length() < acMinLength {
			t.Errorf("DecodeSymbol[%d]: length invariant violated: %d", i, d.Length())
		}
	}
}

func TestSymbolModelInitTable(t *testing.T) {
	m := NewSymbolModel(256)
	m.Init()

	if m.distribution[0] != 0 {
		t.Errorf("distribution[0] = %d, want 0", m.distribution[0])
	}
	if m.distribution[32] != 4096 {
		t.Errorf("distribution[32] = %d, want 4096", m.distribution[32])
	}
	if m.distribution[255] != 32640 {
		t.Errorf("distribution[255] = %d, want 32640", m.distribution[255])
	}

	if m.decoderTable[0] != 0 {
		t.Errorf("decoderTable[0] = %d, want 0", m.decoderTable[0])
	}
	if m.decoderTable[32] != 127 {
		t.Errorf("decoderTable[32] = %d, want 127", m.decoderTable[32])
	}
	if m.decoderTable[65] != 255 {
		t.Errorf("decoderTable[65] = %d, want 255", m.decoderTable[65])
	}
}

func TestSymbolModelMonotonic(t *testing.T) {
	m := NewSymbolModel(64)
	m.Init()

	prev := uint32(0)
	if m.distribution[0] != 0 {
		t.Fatalf("distribution[0] = %d, want 0", m.distribution[0])
	}
	for i, v := range m.distribution {
		if v < prev {
			t.Fatalf("distribution[%d] = %d < distribution[%d-1] = %d", i, v, i, prev)
		}
		prev = v
	}
}
