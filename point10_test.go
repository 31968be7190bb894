package laz

import "testing"

func TestPoint10BitfieldAccessors(t *testing.T) {
	p := Point10{Bitfield: 0b1_1_011_010}
	if got := p.ReturnNum(); got != 0b010 {
		t.Errorf("ReturnNum() = %d, want %d", got, 0b010)
	}
	if got := p.NumReturns(); got != 0b011 {
		t.Errorf("NumReturns() = %d, want %d", got, 0b011)
	}
	if got := p.ScanDirFlag(); got != 1 {
		t.Errorf("ScanDirFlag() = %d, want 1", got)
	}
	if got := p.EdgeOfFlightLine(); got != 1 {
		t.Errorf("EdgeOfFlightLine() = %d, want 1", got)
	}
}

func TestPoint10BitfieldAccessorsAllClear(t *testing.T) {
	p := Point10{Bitfield: 0}
	if p.ReturnNum() != 0 || p.NumReturns() != 0 || p.ScanDirFlag() != 0 || p.EdgeOfFlightLine() != 0 {
		t.Errorf("expected all-zero fields for zero bitfield, got %+v", p)
	}
}

func TestDecodeRawPoint10(t *testing.T) {
	raw := []byte{
		0x01, 0x00, 0x00, 0x00, // X = 1
		0x02, 0x00, 0x00, 0x00, // Y = 2
		0x03, 0x00, 0x00, 0x00, // Z = 3
		0x0A, 0x00, // intensity = 10
		0b00_1_010_01,          // bitfield
		5,                      // classification
		6,                      // scan angle rank
		7,                      // user data
		0x0B, 0x00, // point source id = 11
	}

	p := decodeRawPoint10(raw)

	want := Point10{
		X: 1, Y: 2, Z: 3,
		Intensity:       10,
		Bitfield:        0b00_1_010_01,
		Classification:  5,
		Scan_angle_rank: 6,
		User_data:       7,
		Point_source_id: 11,
	}
	if p != want {
		t.Errorf("decodeRawPoint10() = %+v, want %+v", p, want)
	}
}

// numberReturnMap and numberReturnLevel are indexed [num_returns][return_num]
// and must be square, symmetric under swapping num_returns/return_num is not
// required, but the diagonal (num_returns == return_num) of the level table
// is always zero: a point that is the Nth of N returns has no height offset.
func TestNumberReturnLevelDiagonalIsZero(t *testing.T) {
	for n := 0; n < 8; n++ {
		if got := numberReturnLevel[n][n]; got != 0 {
			t.Errorf("numberReturnLevel[%d][%d] = %d, want 0", n, n, got)
		}
	}
}

func TestNumberReturnMapAndLevelBounds(t *testing.T) {
	for n := 0; n < 8; n++ {
		for r := 0; r < 8; r++ {
			if m := numberReturnMap[n][r]; m < 0 || m > 15 {
				t.Errorf("numberReturnMap[%d][%d] = %d out of range [0,15]", n, r, m)
			}
			if el := numberReturnLevel[n][r]; el < 0 || el > 7 {
				t.Errorf("numberReturnLevel[%d][%d] = %d out of range [0,7]", n, r, el)
			}
		}
	}
}

func TestU32ZeroBit0(t *testing.T) {
	cases := map[int]int{0: 0, 1: 0, 2: 2, 3: 2, 19: 18, 20: 20}
	for in, want := range cases {
		if got := u32ZeroBit0(in); got != want {
			t.Errorf("u32ZeroBit0(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestU8Fold(t *testing.T) {
	if got := u8Fold(250 + 10); got != byte(260%256) {
		t.Errorf("u8Fold(260) = %d, want %d", got, byte(260%256))
	}
	if got := u8Fold(-1); got != 0xFF {
		t.Errorf("u8Fold(-1) = %d, want 0xFF", got)
	}
}
