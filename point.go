package laz

import (
	"encoding/binary"
	"math"
)

// Point10 is the LAS point data record format 0 payload that LASzip's
// POINT10 item compresses: 20 bytes of geometry, return metadata, and
// classification. Fields mirror the on-disk layout field-for-field rather
// than grouping them into nested structs, matching the byte-for-byte
// reconstruction the predictive decoder performs.
type Point10 struct {
	X, Y, Z         uint32
	Intensity       uint16
	Bitfield        byte
	Classification  byte
	Scan_angle_rank byte
	User_data       byte
	Point_source_id uint16
}

// ReturnNum is the 3-bit return number packed into the low bits of Bitfield.
func (p Point10) ReturnNum() int { return int(p.Bitfield & 0x07) }

// NumReturns is the 3-bit total return count packed into Bitfield.
func (p Point10) NumReturns() int { return int((p.Bitfield >> 3) & 0x07) }

// ScanDirFlag is the scan direction bit packed into Bitfield.
func (p Point10) ScanDirFlag() int { return int((p.Bitfield >> 6) & 0x01) }

// EdgeOfFlightLine is the edge-of-flight-line bit packed into Bitfield.
func (p Point10) EdgeOfFlightLine() int { return int((p.Bitfield >> 7) & 0x01) }

// decodeRawPoint10 reads the uncompressed 20-byte POINT10 layout used to
// seed each chunk's predictive state.
func decodeRawPoint10(b []byte) Point10 {
	return Point10{
		X:               binary.LittleEndian.Uint32(b[0:4]),
		Y:               binary.LittleEndian.Uint32(b[4:8]),
		Z:               binary.LittleEndian.Uint32(b[8:12]),
		Intensity:       binary.LittleEndian.Uint16(b[12:14]),
		Bitfield:        b[14],
		Classification:  b[15],
		Scan_angle_rank: b[16],
		User_data:       b[17],
		Point_source_id: binary.LittleEndian.Uint16(b[18:20]),
	}
}

// rawPoint10Size is the uncompressed byte width of a POINT10 item.
const rawPoint10Size = 20

// GPSTime11 is the LASzip GPSTIME11 item: the raw IEEE-754 double bit
// pattern of the point's GPS time. It is kept as the raw bit pattern through
// decode (the predictive state machine operates on the integer
// representation, per the reference reader) and only converted to a
// floating-point seconds value when a point is emitted.
type GPSTime11 uint64

// Seconds returns the stored GPS time in seconds, in whichever encoding
// (GPS week time or Adjusted Standard GPS Time) the header's
// Global_encoding bit 0 selects.
func (g GPSTime11) Seconds() float64 {
	return math.Float64frombits(uint64(g))
}

func decodeRawGPSTime11(b []byte) GPSTime11 {
	return GPSTime11(binary.LittleEndian.Uint64(b[0:8]))
}

// rawGPSTime11Size is the uncompressed byte width of a GPSTIME11 item.
const rawGPSTime11Size = 8

// Record is one fully decoded point, combining the POINT10 geometry/
// classification fields with the GPSTIME11 time, scaled and offset per the
// file header into real-world coordinates and seconds.
type Record struct {
	X, Y, Z float64

	Intensity       uint16
	ReturnNum       int
	NumReturns      int
	ScanDirFlag     int
	EdgeOfFlightLine int
	Classification  byte
	ScanAngleRank   byte
	UserData        byte
	PointSourceID   uint16
	GPSTime         float64
}

// newRecord scales a decoded POINT10/GPSTIME11 pair by the header's
// scale/offset factors into a real-world point record.
func newRecord(h *Header, p Point10, t GPSTime11) Record {
	return Record{
		X: float64(int32(p.X))*h.X_scale_factor + h.X_offset,
		Y: float64(int32(p.Y))*h.Y_scale_factor + h.Y_offset,
		Z: float64(int32(p.Z))*h.Z_scale_factor + h.Z_offset,

		Intensity:        p.Intensity,
		ReturnNum:        p.ReturnNum(),
		NumReturns:       p.NumReturns(),
		ScanDirFlag:      p.ScanDirFlag(),
		EdgeOfFlightLine: p.EdgeOfFlightLine(),
		Classification:   p.Classification,
		ScanAngleRank:    p.Scan_angle_rank,
		UserData:         p.User_data,
		PointSourceID:    p.Point_source_id,
		GPSTime:          t.Seconds(),
	}
}
