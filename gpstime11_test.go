package laz

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestDecodeRawGPSTime11RoundTrip(t *testing.T) {
	want := 123456.789
	var raw [8]byte
	binary.LittleEndian.PutUint64(raw[:], math.Float64bits(want))

	g := decodeRawGPSTime11(raw[:])
	if got := g.Seconds(); got != want {
		t.Errorf("Seconds() = %v, want %v", got, want)
	}
}

func TestGPSTime11SecondsZero(t *testing.T) {
	var g GPSTime11
	if got := g.Seconds(); got != 0 {
		t.Errorf("Seconds() = %v, want 0", got)
	}
}

func TestGPSTime11DecoderInitSeedsFromFirst(t *testing.T) {
	dec := newGPSTime11Decoder(nil)
	first := GPSTime11(math.Float64bits(42.0))
	dec.init(first)

	if dec.lastGpstime[0] != uint64(first) {
		t.Errorf("lastGpstime[0] = %d, want %d", dec.lastGpstime[0], uint64(first))
	}
	for i := 1; i < 4; i++ {
		if dec.lastGpstime[i] != 0 {
			t.Errorf("lastGpstime[%d] = %d, want 0", i, dec.lastGpstime[i])
		}
	}
	if dec.last != 0 || dec.next != 0 {
		t.Errorf("last/next = %d/%d, want 0/0", dec.last, dec.next)
	}
	for i, d := range dec.lastGpstimeDiff {
		if d != 0 {
			t.Errorf("lastGpstimeDiff[%d] = %d, want 0", i, d)
		}
	}
}
