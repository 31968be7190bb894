package laz

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// buildSingleChunkTable encodes the chunk-table-pointer-and-header layout
// for the degenerate one-chunk case: no compressed chunk sizes follow since
// a single chunk's size is simply "the rest of the file".
func buildSingleChunkTable(t *testing.T) []byte {
	t.Helper()
	buf := make([]byte, 20)
	binary.LittleEndian.PutUint64(buf[0:8], 8) // pointer: chunk table starts right after itself
	binary.LittleEndian.PutUint32(buf[8:12], 0) // version
	binary.LittleEndian.PutUint32(buf[12:16], 1) // number of chunks
	// 4 arbitrary bytes consumed by the range decoder's Start(), never
	// actually decoded against since the loop below runs zero times.
	copy(buf[16:20], []byte{0, 0, 0, 0})
	return buf
}

func TestReadChunkTableSingleChunk(t *testing.T) {
	raw := buildSingleChunkTable(t)
	stream := bytes.NewReader(raw)

	table, err := readChunkTable(stream)
	if err != nil {
		t.Fatalf("readChunkTable() error = %v", err)
	}

	if table.count() != 1 {
		t.Fatalf("count() = %d, want 1", table.count())
	}
	if table.starts[0] != 8 {
		t.Errorf("starts[0] = %d, want 8", table.starts[0])
	}

	pos, err := stream.Seek(0, 1)
	if err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if pos != 8 {
		t.Errorf("stream left at %d, want 8 (chunksStart)", pos)
	}
}

func TestReadChunkTableBadVersion(t *testing.T) {
	raw := buildSingleChunkTable(t)
	binary.LittleEndian.PutUint32(raw[8:12], 1) // non-zero version
	stream := bytes.NewReader(raw)

	_, err := readChunkTable(stream)
	if !errors.Is(err, ErrInvalidChunkTable) {
		t.Errorf("readChunkTable() error = %v, want %v", err, ErrInvalidChunkTable)
	}
}

func TestReadChunkTableTruncatedPointer(t *testing.T) {
	stream := bytes.NewReader([]byte{1, 2, 3})
	_, err := readChunkTable(stream)
	if err == nil {
		t.Fatal("readChunkTable() error = nil, want truncated-stream error")
	}
}

func TestReadChunkTableTruncatedHeader(t *testing.T) {
	raw := make([]byte, 10)
	binary.LittleEndian.PutUint64(raw[0:8], 8)
	stream := bytes.NewReader(raw)

	_, err := readChunkTable(stream)
	if err == nil {
		t.Fatal("readChunkTable() error = nil, want truncated-stream error")
	}
}
