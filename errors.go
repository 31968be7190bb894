package laz

import (
	"errors"
	"fmt"

	"github.com/go-laz/laz/rangecoder"
)

var ErrInvalidSignature = errors.New("laz: invalid LAS file signature")
var ErrUnsupportedVersion = errors.New("laz: unsupported LAS version")
var ErrMissingLaszipVlr = errors.New("laz: missing LASzip variable length record")
var ErrUnsupportedCompressor = errors.New("laz: unsupported LASzip compressor")
var ErrUnsupportedCoder = errors.New("laz: unsupported LASzip coder")
var ErrUnknownItem = errors.New("laz: unregistered item type/version")
var ErrInvalidChunkTable = errors.New("laz: invalid chunk table")
var ErrTruncatedStream = errors.New("laz: truncated stream")
var ErrCorruption = errors.New("laz: corrupt stream")
var ErrIoFailure = errors.New("laz: i/o failure")

// LazError wraps one of the sentinel errors above with the point index
// reached when the stream desynchronized or ran out, and the chunk index
// that was being decoded, when known. All errors are terminal: the LazFile
// that produced one must not be reused.
type LazError struct {
	Kind       error
	PointIndex int64
	ChunkIndex int
}

func (e *LazError) Error() string {
	return fmt.Sprintf("%v (point %d, chunk %d)", e.Kind, e.PointIndex, e.ChunkIndex)
}

func (e *LazError) Unwrap() error {
	return e.Kind
}

// wrapDecodeError maps the range coder's lower-level sentinels onto this
// package's, attaching the current point/chunk position.
func wrapDecodeError(err error, pointIndex int64, chunkIndex int) error {
	if err == nil {
		return nil
	}

	kind := ErrIoFailure
	switch {
	case errors.Is(err, rangecoder.ErrTruncatedStream):
		kind = ErrTruncatedStream
	case errors.Is(err, rangecoder.ErrCorruption):
		kind = ErrCorruption
	}

	return &LazError{Kind: kind, PointIndex: pointIndex, ChunkIndex: chunkIndex}
}
