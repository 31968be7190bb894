package laz

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildLaszipVLRData encodes the LASzip VLR payload (the Data field of the
// VLR carrying record id 22204) for a pointwise-chunked file with POINT10 +
// GPSTIME11 items.
func buildLaszipVLRData(t *testing.T, chunkSize int32) []byte {
	t.Helper()
	var buf bytes.Buffer
	fields := []any{
		uint16(CompressorPointwiseChunked), // Compressor
		uint16(CoderArithmetic),            // Coder
		byte(2), byte(0), uint16(0),        // version major/minor/revision
		uint32(0),         // options
		chunkSize,         // chunk size
		int64(0), int64(0), // special evlr count/offset
		uint16(2), // number of items
		uint16(ItemTypePoint10), uint16(20), uint16(2),
		uint16(ItemTypeGPSTime11), uint16(8), uint16(2),
	}
	for _, f := range fields {
		if err := binary.Write(&buf, binary.LittleEndian, f); err != nil {
			t.Fatalf("encoding laszip VLR field: %v", err)
		}
	}
	return buf.Bytes()
}

// buildMinimalLas encodes a bare LAS 1.2 header plus a single LASzip VLR
// declaring two point records, returning the full byte buffer.
func buildMinimalLas(t *testing.T, chunkSize int32) []byte {
	t.Helper()
	return buildMinimalLasN(t, chunkSize, 2)
}

// buildMinimalLasN is buildMinimalLas parameterized over the declared point
// count, for tests that need to control how many points a single chunk
// spans.
func buildMinimalLasN(t *testing.T, chunkSize int32, numPoints uint32) []byte {
	t.Helper()

	vlrData := buildLaszipVLRData(t, chunkSize)
	vlrTotalSize := 2 + 16 + 2 + 2 + 32 + len(vlrData)
	headerSize := 227
	offsetToPointData := headerSize + vlrTotalSize

	var buf bytes.Buffer

	write := func(v any) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("encoding header field: %v", err)
		}
	}

	var sig [4]byte
	copy(sig[:], "LASF")
	write(sig)
	write(uint16(0))                 // file source id
	write(uint16(0))                 // global encoding
	write(uint32(0))                 // guid 1
	write(uint16(0))                 // guid 2
	write(uint16(0))                 // guid 3
	write([8]byte{})                 // guid 4
	write(byte(1))                   // version major
	write(byte(2))                   // version minor
	write([32]byte{})                // system identifier
	write([32]byte{})                // generating software
	write(uint16(1))                 // file creation day
	write(uint16(2024))              // file creation year
	write(uint16(headerSize))        // header size
	write(uint32(offsetToPointData)) // offset to point data
	write(uint32(1))                 // number of vlrs
	write(byte(0x80 | 3))            // point data format id, compressed bit set, format 3
	write(uint16(34))                // point data record length
	write(numPoints)                 // number of point records
	write([5]uint32{numPoints, 0, 0, 0, 0}) // points by return
	write(float64(0.01))             // x scale
	write(float64(0.01))             // y scale
	write(float64(0.01))             // z scale
	write(float64(0))                // x offset
	write(float64(0))                // y offset
	write(float64(0))                // z offset
	write(float64(100))              // max x
	write(float64(0))                // min x
	write(float64(100))              // max y
	write(float64(0))                // min y
	write(float64(100))              // max z
	write(float64(0))                // min z

	// VLR
	write(uint16(0))    // reserved
	var userID [16]byte
	copy(userID[:], "laszip encoded")
	write(userID)
	write(uint16(laszipVlrRecordID))
	write(uint16(len(vlrData)))
	write([32]byte{})
	write(vlrData)

	return buf.Bytes()
}

func TestDecodeHeaderValid(t *testing.T) {
	raw := buildMinimalLas(t, 5000)
	stream := bytes.NewReader(raw)

	h, vlr, err := DecodeHeader(stream)
	if err != nil {
		t.Fatalf("DecodeHeader() error = %v", err)
	}

	if string(h.File_signature[:]) != "LASF" {
		t.Errorf("File_signature = %q, want LASF", h.File_signature)
	}
	if h.Version_major != 1 || h.Version_minor != 2 {
		t.Errorf("version = %d.%d, want 1.2", h.Version_major, h.Version_minor)
	}
	if h.Point_data_format_id != 3 {
		t.Errorf("Point_data_format_id = %d, want 3 (compressed bit cleared)", h.Point_data_format_id)
	}
	if h.NumPoints() != 2 {
		t.Errorf("NumPoints() = %d, want 2", h.NumPoints())
	}
	if vlr.Compressor != CompressorPointwiseChunked {
		t.Errorf("Compressor = %d, want %d", vlr.Compressor, CompressorPointwiseChunked)
	}
	if vlr.Chunk_size != 5000 {
		t.Errorf("Chunk_size = %d, want 5000", vlr.Chunk_size)
	}
	if len(vlr.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(vlr.Items))
	}
	if vlr.Items[0].Type != ItemTypePoint10 || vlr.Items[1].Type != ItemTypeGPSTime11 {
		t.Errorf("Items = %+v, want POINT10 then GPSTIME11", vlr.Items)
	}
}

func TestDecodeHeaderBadSignature(t *testing.T) {
	raw := buildMinimalLas(t, 5000)
	raw[0] = 'X'
	stream := bytes.NewReader(raw)

	_, _, err := DecodeHeader(stream)
	if err != ErrInvalidSignature {
		t.Errorf("DecodeHeader() error = %v, want %v", err, ErrInvalidSignature)
	}
}

func TestDecodeHeaderUnsupportedVersion(t *testing.T) {
	raw := buildMinimalLas(t, 5000)
	raw[24] = 2 // version_major offset: 4+2+2+4+2+2+8 = 24
	stream := bytes.NewReader(raw)

	_, _, err := DecodeHeader(stream)
	if err != ErrUnsupportedVersion {
		t.Errorf("DecodeHeader() error = %v, want %v", err, ErrUnsupportedVersion)
	}
}

func TestDecodeHeaderUnknownItem(t *testing.T) {
	raw := buildMinimalLas(t, 5000)

	// The LASzip VLR's item table sits at the very end of its data block,
	// itself at the tail of the single VLR following the 227-byte header
	// and 54-byte VLR fixed fields. Flip the first item's version byte so
	// it no longer matches a registered (type, version) pair.
	firstItemVersionOffset := 227 + 54 + (len(raw) - (227 + 54) - 12) + 4
	raw[firstItemVersionOffset] = 0xFF

	stream := bytes.NewReader(raw)
	_, _, err := DecodeHeader(stream)
	if err == nil {
		t.Fatal("DecodeHeader() error = nil, want ErrUnknownItem")
	}
}
