package laz

import (
	"errors"
	"io"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

var ErrCreatePointArrayTdb = errors.New("laz: error creating tiledb point array")
var ErrWritePointArrayTdb = errors.New("laz: error writing tiledb point array")

// PointSink batches decoded Records into a sparse TileDB array keyed on
// X/Y, flushing once FlushSize points have accumulated.
type PointSink struct {
	ctx       *tiledb.Context
	uri       string
	flushSize int
	batch     *pointBatch
}

// NewPointArray creates the backing sparse TileDB array for a file's
// decoded points. The bounds are passed to pointSparseSchema, whose X/Y
// domain spans the full float64 range regardless of them.
func NewPointArray(ctx *tiledb.Context, uri string, bounds Bounds) error {
	schema, err := pointSparseSchema(ctx, bounds)
	if err != nil {
		return errors.Join(ErrCreatePointArrayTdb, err)
	}
	defer schema.Free()

	array, err := tiledb.NewArray(ctx, uri)
	if err != nil {
		return errors.Join(ErrCreatePointArrayTdb, err)
	}
	defer array.Free()

	if err := array.Create(schema); err != nil {
		return errors.Join(ErrCreatePointArrayTdb, err)
	}

	return nil
}

// NewPointSink opens a PointSink against an already-created array.
func NewPointSink(ctx *tiledb.Context, uri string, flushSize int) *PointSink {
	return &PointSink{
		ctx:       ctx,
		uri:       uri,
		flushSize: flushSize,
		batch:     newPointBatch(flushSize),
	}
}

// Add appends a decoded record to the current batch, flushing once
// flushSize is reached.
func (s *PointSink) Add(r Record) error {
	s.batch.append(r)
	if s.batch.len() >= s.flushSize {
		return s.Flush()
	}
	return nil
}

// Flush writes any buffered points to the array and resets the batch.
func (s *PointSink) Flush() error {
	if s.batch.len() == 0 {
		return nil
	}

	array, err := ArrayOpen(s.ctx, s.uri, tiledb.TILEDB_WRITE)
	if err != nil {
		return errors.Join(ErrWritePointArrayTdb, err)
	}
	defer array.Close()
	defer array.Free()

	query, err := tiledb.NewQuery(s.ctx, array)
	if err != nil {
		return errors.Join(ErrWritePointArrayTdb, err)
	}
	defer query.Free()

	if err := query.SetLayout(tiledb.TILEDB_UNORDERED); err != nil {
		return errors.Join(ErrWritePointArrayTdb, err)
	}

	if err := setStructFieldBuffers(query, s.batch); err != nil {
		return errors.Join(ErrWritePointArrayTdb, err)
	}

	if err := query.Submit(); err != nil {
		return errors.Join(ErrWritePointArrayTdb, err)
	}

	s.batch = newPointBatch(s.flushSize)
	return nil
}

// Close flushes any remaining buffered points.
func (s *PointSink) Close() error {
	return s.Flush()
}

// DecodeToArray streams every point from a LazFile into a freshly created
// TileDB sparse array, flushing every flushSize points.
func DecodeToArray(ctx *tiledb.Context, f *LazFile, uri string, flushSize int) (uint64, error) {
	if err := NewPointArray(ctx, uri, f.Summary().Bounds); err != nil {
		return 0, err
	}

	sink := NewPointSink(ctx, uri, flushSize)

	var n uint64
	for {
		rec, err := f.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, err
		}
		if err := sink.Add(rec); err != nil {
			return n, err
		}
		n++
	}

	if err := sink.Close(); err != nil {
		return n, err
	}

	return n, nil
}
