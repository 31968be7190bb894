package laz

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/samber/lo"
)

// LASzip VLR record id, per the LAS specification's user-defined VLR range.
const laszipVlrRecordID = 22204

// Compressor values carried in the LASzip VLR.
const (
	CompressorNone            = 0
	CompressorPointwise       = 1
	CompressorPointwiseChunked = 2
	CompressorLayeredChunked  = 3
)

// CoderArithmetic is the only coder id this decoder understands.
const CoderArithmetic = 0

// Item type ids used by the LASzip VLR's item table.
const (
	ItemTypePoint10   = 6
	ItemTypeGPSTime11 = 7
)

// registeredItems lists the (type, version) pairs this decoder can drive;
// only POINT10 v2 and GPSTIME11 v2 are implemented (RGB, BYTE, WAVEPACKET,
// and POINT14 are extension points the LASzip format defines but this
// decoder does not yet decode).
var registeredItems = []laszipItemKey{
	{ItemTypePoint10, 2},
	{ItemTypeGPSTime11, 2},
}

type laszipItemKey struct {
	Type    uint16
	Version uint16
}

func isRegisteredItem(typ, version uint16) bool {
	return lo.Contains(registeredItems, laszipItemKey{typ, version})
}

// Header is the fixed-layout LAS 1.2/1.3/1.4 header. Field names mirror the
// LAS specification's own section names rather than Go naming convention,
// since these are external wire fields, not derived Go identifiers.
type Header struct {
	File_signature      [4]byte
	File_source_id      uint16
	Global_encoding     uint16
	Guid_data_1         uint32
	Guid_data_2         uint16
	Guid_data_3         uint16
	Guid_data_4         [8]byte
	Version_major       byte
	Version_minor       byte
	System_identifier   [32]byte
	Generating_software [32]byte
	File_creation_day   uint16
	File_creation_year  uint16
	Header_size         uint16
	Offset_to_point_data uint32
	Number_of_vlrs       uint32
	Point_data_format_id byte
	Point_data_record_length uint16
	Number_of_point_records  uint32
	Number_of_points_by_return [5]uint32
	X_scale_factor, Y_scale_factor, Z_scale_factor float64
	X_offset, Y_offset, Z_offset                   float64
	Max_x, Min_x, Max_y, Min_y, Max_z, Min_z       float64

	// LAS 1.3+
	Start_of_waveform_data_packet_record uint64

	// LAS 1.4+
	Start_of_first_extended_vlr        uint64
	Number_of_extended_vlrs            uint32
	Number_of_point_records_64         uint64
	Number_of_points_by_return_64      [15]uint64
}

// NumPoints returns the point count, preferring the 64-bit LAS 1.4 count
// when the file carries one.
func (h *Header) NumPoints() uint64 {
	if h.Version_major == 1 && h.Version_minor >= 4 && h.Number_of_point_records_64 > 0 {
		return h.Number_of_point_records_64
	}
	return uint64(h.Number_of_point_records)
}

// VariableLengthRecord is a LAS VLR: a user-defined, tagged data block
// following the fixed header.
type VariableLengthRecord struct {
	Reserved      uint16
	User_id       [16]byte
	Record_id     uint16
	Record_length uint16
	Description   [32]byte
	Data          []byte
}

// LaszipItem describes one per-point-record item LASzip multiplexes: its
// type id, raw byte size, and codec version.
type LaszipItem struct {
	Type    uint16
	Size    uint16
	Version uint16
}

// LaszipVLR is the parsed payload of the LASzip VLR (record id 22204),
// describing how the point stream beyond the header is chunked and coded.
type LaszipVLR struct {
	Compressor              uint16
	Coder                   uint16
	Version_major           byte
	Version_minor           byte
	Version_revision        uint16
	Options                 uint32
	Chunk_size              int32
	Number_of_special_evlrs int64
	Offset_to_special_evlrs int64
	Items                   []LaszipItem
	User_data               []byte
}

func readField(stream Stream, v any) error {
	if err := binary.Read(stream, binary.LittleEndian, v); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return nil
}

// DecodeHeader reads the fixed LAS header, version-gated 1.3/1.4
// extensions, and every following VLR, returning the LASzip VLR
// specifically since it is the only one this decoder interprets.
func DecodeHeader(stream Stream) (*Header, *LaszipVLR, error) {
	h := &Header{}

	fields := []any{
		&h.File_signature, &h.File_source_id, &h.Global_encoding,
		&h.Guid_data_1, &h.Guid_data_2, &h.Guid_data_3, &h.Guid_data_4,
		&h.Version_major, &h.Version_minor,
		&h.System_identifier, &h.Generating_software,
		&h.File_creation_day, &h.File_creation_year,
		&h.Header_size, &h.Offset_to_point_data, &h.Number_of_vlrs,
		&h.Point_data_format_id, &h.Point_data_record_length,
		&h.Number_of_point_records, &h.Number_of_points_by_return,
		&h.X_scale_factor, &h.Y_scale_factor, &h.Z_scale_factor,
		&h.X_offset, &h.Y_offset, &h.Z_offset,
		&h.Max_x, &h.Min_x, &h.Max_y, &h.Min_y, &h.Max_z, &h.Min_z,
	}
	for _, f := range fields {
		if err := readField(stream, f); err != nil {
			return nil, nil, err
		}
	}

	if string(h.File_signature[:]) != "LASF" {
		return nil, nil, ErrInvalidSignature
	}
	if h.Version_major != 1 {
		return nil, nil, ErrUnsupportedVersion
	}

	if h.Version_minor >= 3 {
		if err := readField(stream, &h.Start_of_waveform_data_packet_record); err != nil {
			return nil, nil, err
		}
	}
	if h.Version_minor >= 4 {
		for _, f := range []any{
			&h.Start_of_first_extended_vlr,
			&h.Number_of_extended_vlrs,
			&h.Number_of_point_records_64,
			&h.Number_of_points_by_return_64,
		} {
			if err := readField(stream, f); err != nil {
				return nil, nil, err
			}
		}
	}

	// Header_size may exceed the fixed fields read above: writers are
	// permitted to pad the header with extra reserved space. Seek to the
	// declared size rather than assuming the VLR section follows directly.
	if _, err := stream.Seek(int64(h.Header_size), io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
	}

	var laszip *LaszipVLR
	for i := uint32(0); i < h.Number_of_vlrs; i++ {
		vlr, err := decodeVLR(stream)
		if err != nil {
			return nil, nil, err
		}
		if vlr.Record_id == laszipVlrRecordID {
			laszip, err = decodeLaszipVLR(vlr.Data)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	if laszip == nil {
		return nil, nil, ErrMissingLaszipVlr
	}

	// clear the "compressed" bit so point_data_format_id matches the LAS
	// point data format it's describing.
	h.Point_data_format_id &= 0b01111111

	return h, laszip, nil
}

func decodeVLR(stream Stream) (VariableLengthRecord, error) {
	var vlr VariableLengthRecord

	for _, f := range []any{
		&vlr.Reserved, &vlr.User_id, &vlr.Record_id, &vlr.Record_length, &vlr.Description,
	} {
		if err := readField(stream, f); err != nil {
			return vlr, err
		}
	}

	vlr.Data = make([]byte, vlr.Record_length)
	if err := readField(stream, &vlr.Data); err != nil {
		return vlr, err
	}

	return vlr, nil
}

func decodeLaszipVLR(data []byte) (*LaszipVLR, error) {
	const fixedSize = 2 + 2 + 1 + 1 + 2 + 4 + 4 + 8 + 8 + 2
	if len(data) < fixedSize {
		return nil, fmt.Errorf("%w: LASzip VLR too short", ErrInvalidChunkTable)
	}

	v := &LaszipVLR{}
	off := 0

	v.Compressor = binary.LittleEndian.Uint16(data[off:])
	off += 2
	v.Coder = binary.LittleEndian.Uint16(data[off:])
	off += 2
	v.Version_major = data[off]
	off++
	v.Version_minor = data[off]
	off++
	v.Version_revision = binary.LittleEndian.Uint16(data[off:])
	off += 2
	v.Options = binary.LittleEndian.Uint32(data[off:])
	off += 4
	v.Chunk_size = int32(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	v.Number_of_special_evlrs = int64(binary.LittleEndian.Uint64(data[off:]))
	off += 8
	v.Offset_to_special_evlrs = int64(binary.LittleEndian.Uint64(data[off:]))
	off += 8
	numberOfItems := binary.LittleEndian.Uint16(data[off:])
	off += 2

	v.Items = make([]LaszipItem, numberOfItems)
	for i := range v.Items {
		if off+6 > len(data) {
			return nil, fmt.Errorf("%w: LASzip VLR item table truncated", ErrInvalidChunkTable)
		}
		v.Items[i] = LaszipItem{
			Type:    binary.LittleEndian.Uint16(data[off:]),
			Size:    binary.LittleEndian.Uint16(data[off+2:]),
			Version: binary.LittleEndian.Uint16(data[off+4:]),
		}
		off += 6
	}

	v.User_data = data[off:]

	if err := validateLaszipVLR(v); err != nil {
		return nil, err
	}

	return v, nil
}

func validateLaszipVLR(v *LaszipVLR) error {
	if v.Compressor == CompressorPointwise || v.Compressor > CompressorLayeredChunked {
		return ErrUnsupportedCompressor
	}
	if v.Coder != CoderArithmetic {
		return ErrUnsupportedCoder
	}
	for _, item := range v.Items {
		if !isRegisteredItem(item.Type, item.Version) {
			return fmt.Errorf("%w: type=%d version=%d", ErrUnknownItem, item.Type, item.Version)
		}
	}
	return nil
}
