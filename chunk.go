package laz

import (
	"encoding/binary"

	"github.com/go-laz/laz/rangecoder"
)

// chunkTable holds the absolute byte offset of every chunk's first point,
// decoded once at open time from the range-coded chunk table that precedes
// the compressed point stream.
type chunkTable struct {
	starts []int64
}

// readChunkTable reads the 8-byte chunk-table pointer immediately preceding
// the compressed section, follows it, decodes the chunk count and sizes,
// and restores the stream position to the start of the first chunk.
func readChunkTable(stream Stream) (chunkTable, error) {
	var pointerBuf [8]byte
	if _, err := stream.Read(pointerBuf[:]); err != nil {
		return chunkTable{}, wrapDecodeError(rangecoder.ErrTruncatedStream, -1, -1)
	}
	chunkTableStart := int64(binary.LittleEndian.Uint64(pointerBuf[:]))

	chunksStart, err := stream.Seek(0, 1) // io.SeekCurrent
	if err != nil {
		return chunkTable{}, wrapDecodeError(rangecoder.ErrTruncatedStream, -1, -1)
	}

	if _, err := stream.Seek(chunkTableStart, 0); err != nil {
		return chunkTable{}, wrapDecodeError(rangecoder.ErrTruncatedStream, -1, -1)
	}

	var hdr [8]byte
	if _, err := stream.Read(hdr[:]); err != nil {
		return chunkTable{}, wrapDecodeError(rangecoder.ErrTruncatedStream, -1, -1)
	}
	version := binary.LittleEndian.Uint32(hdr[0:4])
	if version != 0 {
		return chunkTable{}, &LazError{Kind: ErrInvalidChunkTable, PointIndex: -1, ChunkIndex: -1}
	}
	numberChunks := binary.LittleEndian.Uint32(hdr[4:8])

	dec := rangecoder.NewDecoder(stream)
	if err := dec.Start(); err != nil {
		return chunkTable{}, wrapDecodeError(err, -1, -1)
	}

	ic := rangecoder.NewIntegerCompressor(dec, 32, 2, 0, 0)
	ic.InitDecompressor()

	starts := make([]int64, 0, numberChunks)
	starts = append(starts, chunksStart)

	chunkSize := uint32(0)
	for i := uint32(0); i+1 < numberChunks; i++ {
		var err error
		chunkSize, err = ic.Decompress(chunkSize, 1)
		if err != nil {
			return chunkTable{}, wrapDecodeError(err, -1, int(i))
		}
		starts = append(starts, starts[len(starts)-1]+int64(chunkSize))
	}

	if _, err := stream.Seek(chunksStart, 0); err != nil {
		return chunkTable{}, wrapDecodeError(rangecoder.ErrTruncatedStream, -1, -1)
	}

	return chunkTable{starts: starts}, nil
}

func (c chunkTable) count() int {
	return len(c.starts)
}
